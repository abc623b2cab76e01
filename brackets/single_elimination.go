package brackets

import (
	"fmt"
	"slices"

	"github.com/Dosada05/beach-tournament/models"
)

// QualifiersPerGroup is how many teams of each group enter the bracket.
const QualifiersPerGroup = 2

type SingleEliminationGenerator struct {
	newID IDFunc
}

func NewSingleEliminationGenerator(newID IDFunc) *SingleEliminationGenerator {
	if newID == nil {
		newID = NewMatchID
	}
	return &SingleEliminationGenerator{newID: newID}
}

// Qualifiers takes the first perGroup teams of every group's final order.
func Qualifiers(groupOrders [][]string, perGroup int) ([]string, error) {
	entrants := make([]string, 0, len(groupOrders)*perGroup)
	for i, order := range groupOrders {
		if len(order) < perGroup {
			return nil, fmt.Errorf("%w: %s has %d teams", ErrGroupTooSmall, models.GroupLabel(i), len(order))
		}
		entrants = append(entrants, order[:perGroup]...)
	}
	return entrants, nil
}

// FirstRound shuffles the entrants and pairs them consecutively as round 1.
// nextSeq stamps the confirmation order of byes created here.
func (g *SingleEliminationGenerator) FirstRound(entrants []string, rng RandSource, nextSeq func() int) ([]*models.Match, error) {
	if len(entrants) < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrNotEnoughEntrants, len(entrants))
	}
	order := slices.Clone(entrants)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return g.pair(1, order, nextSeq), nil
}

// NextRound pairs the winners of a completed round in the order their matches
// were confirmed.
func (g *SingleEliminationGenerator) NextRound(round []*models.Match, nextSeq func() int) ([]*models.Match, error) {
	if len(round) == 0 {
		return nil, ErrBracketEmpty
	}
	winners, err := Winners(round)
	if err != nil {
		return nil, err
	}
	if len(winners) < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrNotEnoughEntrants, len(winners))
	}
	return g.pair(round[0].Round+1, winners, nextSeq), nil
}

// Winners lists the winners of a round sorted by confirmation order.
func Winners(round []*models.Match) ([]string, error) {
	done := slices.Clone(round)
	for _, m := range done {
		if !m.Confirmed {
			return nil, fmt.Errorf("%w: match %s", ErrRoundNotComplete, m.ID)
		}
	}
	slices.SortStableFunc(done, func(a, b *models.Match) int {
		return a.ConfirmedSeq - b.ConfirmedSeq
	})
	winners := make([]string, len(done))
	for i, m := range done {
		winners[i] = m.Winner
	}
	return winners, nil
}

// Champion returns the winner of a bracket resolved down to one confirmed final.
func Champion(b *models.Bracket) (string, error) {
	last := b.LastRound()
	if last == 0 {
		return "", ErrBracketEmpty
	}
	final := b.Round(last)
	if len(final) != 1 || !final[0].Confirmed {
		return "", ErrBracketNotResolved
	}
	return final[0].Winner, nil
}

// pair builds one round; a trailing odd entrant gets a bye that is confirmed
// immediately and therefore leads the next round's order.
func (g *SingleEliminationGenerator) pair(round int, entrants []string, nextSeq func() int) []*models.Match {
	matches := make([]*models.Match, 0, (len(entrants)+1)/2)
	for i := 0; i+1 < len(entrants); i += 2 {
		matches = append(matches, &models.Match{
			ID:    g.newID(),
			TeamA: entrants[i],
			TeamB: entrants[i+1],
			Phase: models.PhaseElimination,
			Round: round,
			Sets:  []models.SetScore{},
		})
	}
	if len(entrants)%2 == 1 {
		holder := entrants[len(entrants)-1]
		matches = append(matches, &models.Match{
			ID:           g.newID(),
			TeamA:        holder,
			Phase:        models.PhaseElimination,
			Round:        round,
			Sets:         []models.SetScore{},
			Confirmed:    true,
			Winner:       holder,
			ConfirmedSeq: nextSeq(),
			Bye:          true,
		})
	}
	return matches
}
