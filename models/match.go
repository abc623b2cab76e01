package models

type MatchPhase string

const (
	PhaseGroup       MatchPhase = "group"
	PhaseElimination MatchPhase = "elimination"
)

// SetScore is one set as (points of team A, points of team B).
type SetScore struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Match holds a result only once Confirmed; Winner is set iff Confirmed.
type Match struct {
	ID        string     `json:"id"`
	TeamA     string     `json:"team_a"`
	TeamB     string     `json:"team_b,omitempty"`
	Phase     MatchPhase `json:"phase"`
	Group     *int       `json:"group,omitempty"`
	Round     int        `json:"round,omitempty"`
	Sets      []SetScore `json:"sets"`
	SetsA     int        `json:"sets_a"`
	SetsB     int        `json:"sets_b"`
	Confirmed bool       `json:"confirmed"`
	Winner    string     `json:"winner,omitempty"`

	// ConfirmedSeq orders confirmations across the whole tournament.
	ConfirmedSeq int `json:"confirmed_seq,omitempty"`

	// Bye marks an elimination slot with a single entrant that advances unplayed.
	Bye bool `json:"bye,omitempty"`
}

func (m *Match) Involves(teamID string) bool {
	return m.TeamA == teamID || m.TeamB == teamID
}

// Loser is empty for unconfirmed matches and byes.
func (m *Match) Loser() string {
	if !m.Confirmed || m.Bye {
		return ""
	}
	if m.Winner == m.TeamA {
		return m.TeamB
	}
	return m.TeamA
}

// PointTotals sums the set scores per side.
func (m *Match) PointTotals() (a, b int) {
	for _, s := range m.Sets {
		a += s.A
		b += s.B
	}
	return a, b
}
