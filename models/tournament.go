package models

// TournamentPhase only moves forward, except for an explicit reset.
type TournamentPhase string

const (
	PhaseSetup            TournamentPhase = "setup"
	PhaseGroupStage       TournamentPhase = "group_stage"
	PhaseEliminationStage TournamentPhase = "elimination"
	PhaseAwarded          TournamentPhase = "awarded"
)

var phaseOrder = map[TournamentPhase]int{
	PhaseSetup:            0,
	PhaseGroupStage:       1,
	PhaseEliminationStage: 2,
	PhaseAwarded:          3,
}

func (p TournamentPhase) Valid() bool {
	_, ok := phaseOrder[p]
	return ok
}

// Next returns the only phase reachable from p, false for the last one.
func (p TournamentPhase) Next() (TournamentPhase, bool) {
	switch p {
	case PhaseSetup:
		return PhaseGroupStage, true
	case PhaseGroupStage:
		return PhaseEliminationStage, true
	case PhaseEliminationStage:
		return PhaseAwarded, true
	default:
		return "", false
	}
}

const (
	MinTeamsToStart   = 4
	MinPlayersPerTeam = 2
	MaxPlayersPerTeam = 4
)

// TournamentConfig is edited during setup only.
type TournamentConfig struct {
	Name            string    `json:"name"`
	Date            string    `json:"date,omitempty"`
	PlayersPerTeam  int       `json:"players_per_team"`
	SetFormat       SetFormat `json:"set_format"`
	MaxPoints       int       `json:"max_points"`
	UseRankingSeeds bool      `json:"use_ranking_seeds"`
}

func DefaultTournamentConfig() TournamentConfig {
	return TournamentConfig{
		PlayersPerTeam: MinPlayersPerTeam,
		SetFormat:      FormatSingleSet,
		MaxPoints:      DefaultMaxPoints,
	}
}

// PodiumEntry is a final placement handed to the ranking.
type PodiumEntry struct {
	Position int    `json:"position"`
	TeamID   string `json:"team_id"`
}
