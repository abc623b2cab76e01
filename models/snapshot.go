package models

import (
	"fmt"
	"time"
)

// SnapshotVersion is bumped when the stored layout changes incompatibly.
const SnapshotVersion = 1

// Group is a round-robin pool.
type Group struct {
	Label   string   `json:"label"`
	TeamIDs []string `json:"team_ids"`
	Matches []*Match `json:"matches"`
}

// GroupLabel names groups A..H, then falls back to numbers.
func GroupLabel(index int) string {
	const letters = "ABCDEFGH"
	if index >= 0 && index < len(letters) {
		return "Group " + string(letters[index])
	}
	return fmt.Sprintf("Group %d", index+1)
}

func (g *Group) AllConfirmed() bool {
	for _, m := range g.Matches {
		if !m.Confirmed {
			return false
		}
	}
	return true
}

// Bracket holds elimination matches ordered by round, then by creation.
type Bracket struct {
	Matches []*Match `json:"matches"`
}

// LastRound is zero for an empty bracket.
func (b *Bracket) LastRound() int {
	last := 0
	for _, m := range b.Matches {
		if m.Round > last {
			last = m.Round
		}
	}
	return last
}

func (b *Bracket) Round(round int) []*Match {
	var out []*Match
	for _, m := range b.Matches {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out
}

// Snapshot is the complete engine state that is loaded and saved as a unit.
type Snapshot struct {
	Version    int              `json:"version"`
	Phase      TournamentPhase  `json:"phase"`
	Config     TournamentConfig `json:"config"`
	Athletes   []*Athlete       `json:"athletes"`
	Teams      []*Team          `json:"teams"`
	Groups     []*Group         `json:"groups"`
	Bracket    Bracket          `json:"bracket"`
	Podium     []PodiumEntry    `json:"podium"`
	ChampionID string           `json:"champion_id,omitempty"`
	ConfirmSeq int              `json:"confirm_seq"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func NewSnapshot() *Snapshot {
	s := &Snapshot{}
	s.Normalize()
	return s
}

// Normalize fills fields missing from older or partial snapshots.
func (s *Snapshot) Normalize() {
	if s.Version == 0 {
		s.Version = SnapshotVersion
	}
	if !s.Phase.Valid() {
		s.Phase = PhaseSetup
	}
	def := DefaultTournamentConfig()
	if s.Config.PlayersPerTeam == 0 {
		s.Config.PlayersPerTeam = def.PlayersPerTeam
	}
	if !s.Config.SetFormat.Valid() {
		s.Config.SetFormat = def.SetFormat
	}
	if s.Config.MaxPoints == 0 {
		s.Config.MaxPoints = def.MaxPoints
	}
	if s.Athletes == nil {
		s.Athletes = []*Athlete{}
	}
	if s.Teams == nil {
		s.Teams = []*Team{}
	}
	if s.Groups == nil {
		s.Groups = []*Group{}
	}
	if s.Bracket.Matches == nil {
		s.Bracket.Matches = []*Match{}
	}
	if s.Podium == nil {
		s.Podium = []PodiumEntry{}
	}
	for _, a := range s.Athletes {
		if a.Stats.History == nil {
			a.Stats.History = []Placement{}
		}
	}
}

func (s *Snapshot) AthleteByID(id string) *Athlete {
	for _, a := range s.Athletes {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *Snapshot) TeamByID(id string) *Team {
	for _, t := range s.Teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// TeamOf returns the team the athlete is rostered on in the current tournament.
func (s *Snapshot) TeamOf(athleteID string) *Team {
	for _, t := range s.Teams {
		if t.HasAthlete(athleteID) {
			return t
		}
	}
	return nil
}

// MatchByID searches group matches first, then the bracket.
func (s *Snapshot) MatchByID(id string) *Match {
	for _, g := range s.Groups {
		for _, m := range g.Matches {
			if m.ID == id {
				return m
			}
		}
	}
	for _, m := range s.Bracket.Matches {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// AllMatches lists group matches followed by bracket matches.
func (s *Snapshot) AllMatches() []*Match {
	var out []*Match
	for _, g := range s.Groups {
		out = append(out, g.Matches...)
	}
	return append(out, s.Bracket.Matches...)
}
