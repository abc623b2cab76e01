package brackets

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrTooFewGroups       = errors.New("at least 2 groups are required")
	ErrNotEnoughTeams     = errors.New("not enough teams to fill the groups")
	ErrNotEnoughEntrants  = errors.New("at least 2 entrants are required for an elimination round")
	ErrRoundNotComplete   = errors.New("elimination round has unconfirmed matches")
	ErrBracketEmpty       = errors.New("bracket has no matches")
	ErrBracketNotResolved = errors.New("bracket is not resolved to a single champion")
	ErrGroupNotReady      = errors.New("group has unconfirmed matches")
	ErrGroupTooSmall      = errors.New("group has fewer teams than qualifying places")
)

// RandSource is satisfied by *math/rand.Rand; tests pass a fixed seed.
type RandSource interface {
	Shuffle(n int, swap func(i, j int))
	Intn(n int) int
}

// IDFunc produces unique match ids.
type IDFunc func() string

func NewMatchID() string {
	return uuid.NewString()
}

// SeedFunc returns, per team id, the global ranking position of the team's best
// member (0-based, lower is stronger). Teams missing from the map are unranked.
type SeedFunc func(teamIDs []string) (map[string]int, error)
