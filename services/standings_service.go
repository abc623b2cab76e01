package services

import (
	"slices"

	"github.com/Dosada05/beach-tournament/models"
)

// Match points awarded per confirmed match. There are no draws.
const (
	PointsForWin  = 3
	PointsForLoss = 1
)

// ComputeStandings orders teamIDs by match points, set difference and point
// difference, all descending. Remaining ties keep the order of teamIDs.
// Only confirmed matches between two listed teams count; byes are ignored.
func ComputeStandings(teamIDs []string, matches []*models.Match) []models.Standing {
	rows := make([]models.Standing, len(teamIDs))
	index := make(map[string]int, len(teamIDs))
	for i, id := range teamIDs {
		rows[i].TeamID = id
		index[id] = i
	}

	for _, m := range matches {
		if !m.Confirmed || m.Bye {
			continue
		}
		ia, okA := index[m.TeamA]
		ib, okB := index[m.TeamB]
		if !okA || !okB {
			continue
		}
		pointsA, pointsB := m.PointTotals()
		credit(&rows[ia], m.Winner == m.TeamA, m.SetsA, m.SetsB, pointsA, pointsB)
		credit(&rows[ib], m.Winner == m.TeamB, m.SetsB, m.SetsA, pointsB, pointsA)
	}

	slices.SortStableFunc(rows, func(a, b models.Standing) int {
		if a.MatchPoints != b.MatchPoints {
			return b.MatchPoints - a.MatchPoints
		}
		if a.SetDifference != b.SetDifference {
			return b.SetDifference - a.SetDifference
		}
		return b.PointDifference - a.PointDifference
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// TeamStats folds every confirmed non-bye match of the tournament into per-team totals.
func TeamStats(matches []*models.Match) map[string]models.TeamStandingStats {
	stats := make(map[string]models.TeamStandingStats)
	add := func(teamID string, won bool, setsFor, setsAgainst, pointsFor, pointsAgainst int) {
		s := stats[teamID]
		if won {
			s.Wins++
			s.MatchPoints += PointsForWin
		} else {
			s.Losses++
			s.MatchPoints += PointsForLoss
		}
		s.SetsWon += setsFor
		s.SetsLost += setsAgainst
		s.PointsScored += pointsFor
		s.PointsConceded += pointsAgainst
		stats[teamID] = s
	}
	for _, m := range matches {
		if !m.Confirmed || m.Bye {
			continue
		}
		pointsA, pointsB := m.PointTotals()
		add(m.TeamA, m.Winner == m.TeamA, m.SetsA, m.SetsB, pointsA, pointsB)
		add(m.TeamB, m.Winner == m.TeamB, m.SetsB, m.SetsA, pointsB, pointsA)
	}
	return stats
}

func credit(row *models.Standing, won bool, setsFor, setsAgainst, pointsFor, pointsAgainst int) {
	row.Played++
	if won {
		row.Wins++
		row.MatchPoints += PointsForWin
	} else {
		row.Losses++
		row.MatchPoints += PointsForLoss
	}
	row.SetsWon += setsFor
	row.SetsLost += setsAgainst
	row.SetDifference = row.SetsWon - row.SetsLost
	row.PointsScored += pointsFor
	row.PointsConceded += pointsAgainst
	row.PointDifference = row.PointsScored - row.PointsConceded
}
