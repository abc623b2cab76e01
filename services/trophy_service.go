package services

import "github.com/Dosada05/beach-tournament/models"

// ConditionHolds interprets one declarative trophy condition against lifetime stats.
// Unknown kinds never hold.
func ConditionHolds(c models.Condition, s models.LifetimeStats) bool {
	switch c.Kind {
	case models.CondTournamentsAtLeast:
		return float64(s.Tournaments) >= c.Threshold
	case models.CondWinsAtLeast:
		return float64(s.Wins) >= c.Threshold
	case models.CondPodiumsAtLeast:
		return float64(s.Podiums()) >= c.Threshold
	case models.CondSetsWonAtLeast:
		return float64(s.SetsWon) >= c.Threshold
	case models.CondPointsPerSetAbove:
		return s.SetsPlayed() >= c.MinSample && s.PointsPerSet() > c.Threshold
	case models.CondWinRateAbove:
		return s.Tournaments >= c.MinSample && s.WinRate() > c.Threshold
	default:
		return false
	}
}

// EvaluateTrophies reports the unlock state of every catalog entry, in catalog order.
func EvaluateTrophies(s models.LifetimeStats) []models.TrophyStatus {
	out := make([]models.TrophyStatus, len(models.TrophyCatalog))
	for i, t := range models.TrophyCatalog {
		out[i] = models.TrophyStatus{Trophy: t, Unlocked: ConditionHolds(t.Condition, s)}
	}
	return out
}
