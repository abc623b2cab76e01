package services

import (
	"errors"
	"math"
	"slices"

	"github.com/Dosada05/beach-tournament/brackets"
	"github.com/Dosada05/beach-tournament/models"
)

const (
	MinRating        = 45
	MaxRating        = 99
	winBonusPerTitle = 2
	maxWinBonus      = 10

	// pointsPerPlace is the ranking score step between consecutive placements.
	pointsPerPlace = 10
	// legacyMinTeamCount is the team count assumed for history entries recorded
	// without one when the current tournament has fewer teams.
	legacyMinTeamCount = 4
)

var ErrNoRankingData = errors.New("no athlete has played a tournament yet")

// Attack and defense weigh most; setting least.
var ratingWeights = [6]float64{1.3, 1.2, 1.0, 1.0, 0.9, 0.6}

// podiumBoost caps the random attribute increase by final position.
var podiumBoost = map[int]int{1: 3, 2: 2, 3: 1}

// ApplyTournamentResults folds the tournament into every rostered athlete's lifetime
// stats exactly once. Team totals are read from Team.Stats.
func ApplyTournamentResults(snap *models.Snapshot, podium []models.PodiumEntry, rng brackets.RandSource) {
	name := snap.Config.Name
	teamCount := len(snap.Teams)

	merged := make(map[string]bool)
	for _, team := range snap.Teams {
		for _, aid := range team.AthleteIDs {
			a := snap.AthleteByID(aid)
			if a == nil || merged[aid] {
				continue
			}
			a.Stats.SetsWon += team.Stats.SetsWon
			a.Stats.SetsLost += team.Stats.SetsLost
			a.Stats.PointsScored += team.Stats.PointsScored
			a.Stats.PointsConceded += team.Stats.PointsConceded
			merged[aid] = true
		}
	}

	placed := make(map[string]bool)
	for _, entry := range podium {
		team := snap.TeamByID(entry.TeamID)
		if team == nil {
			continue
		}
		for _, aid := range team.AthleteIDs {
			a := snap.AthleteByID(aid)
			if a == nil || placed[aid] {
				continue
			}
			placed[aid] = true
			a.Stats.Tournaments++
			if entry.Position == 1 {
				a.Stats.Wins++
			} else {
				a.Stats.Losses++
			}
			a.Stats.History = append(a.Stats.History, models.Placement{Tournament: name, Position: entry.Position, TeamCount: teamCount})
			boostAttributes(&a.Stats.Attributes, podiumBoost[entry.Position], rng)
		}
	}

	for _, team := range snap.Teams {
		for _, aid := range team.AthleteIDs {
			a := snap.AthleteByID(aid)
			if a == nil || placed[aid] {
				continue
			}
			placed[aid] = true
			a.Stats.Tournaments++
			a.Stats.Losses++
			a.Stats.History = append(a.Stats.History, models.Placement{Tournament: name, Position: teamCount / 2, TeamCount: teamCount})
		}
	}
}

func boostAttributes(attrs *models.SkillAttributes, boost int, rng brackets.RandSource) {
	if boost <= 0 {
		return
	}
	for _, v := range attrs.Pointers() {
		*v = min(models.MaxAttribute, *v+rng.Intn(boost+1))
	}
}

// PlacementScore is the ranking contribution of finishing at position among teamCount teams.
func PlacementScore(position, teamCount int) int {
	return max(0, pointsPerPlace*teamCount-pointsPerPlace*(position-1))
}

// RankingScore sums PlacementScore over the history. Entries without a stored team
// count use currentTeamCount, but never less than legacyMinTeamCount.
func RankingScore(stats models.LifetimeStats, currentTeamCount int) int {
	score := 0
	for _, p := range stats.History {
		n := p.TeamCount
		if n == 0 {
			n = max(currentTeamCount, legacyMinTeamCount)
		}
		score += PlacementScore(p.Position, n)
	}
	return score
}

// Rating maps attributes and titles to MinRating..MaxRating.
func Rating(stats models.LifetimeStats) int {
	var weighted, total float64
	for i, v := range stats.Attributes.Values() {
		weighted += float64(v) * ratingWeights[i]
		total += ratingWeights[i]
	}
	bonus := min(maxWinBonus, stats.Wins*winBonusPerTitle)
	return min(MaxRating, max(MinRating, int(weighted/total+float64(bonus))))
}

func CardTierFor(rating int) models.CardTier {
	switch {
	case rating < 50:
		return models.CardBronzeCommon
	case rating < 55:
		return models.CardBronzeRare
	case rating < 60:
		return models.CardSilverCommon
	case rating < 65:
		return models.CardSilverRare
	case rating < 70:
		return models.CardGoldCommon
	case rating < 75:
		return models.CardGoldRare
	case rating < 80:
		return models.CardHero
	case rating < 85:
		return models.CardLegend
	default:
		return models.CardOlympus
	}
}

// BuildRanking orders every athlete with at least one tournament by score, gold
// medals, silver medals and win rate, all descending. Ties keep roster order.
func BuildRanking(athletes []*models.Athlete, currentTeamCount int) []models.RankingEntry {
	entries := make([]models.RankingEntry, 0, len(athletes))
	for _, a := range athletes {
		s := a.Stats
		if s.Tournaments == 0 {
			continue
		}
		gold, silver, bronze := s.Medals()
		rating := Rating(s)
		entries = append(entries, models.RankingEntry{
			AthleteID:      a.ID,
			Name:           a.Name,
			Score:          RankingScore(s, currentTeamCount),
			Tournaments:    s.Tournaments,
			Wins:           s.Wins,
			Losses:         s.Losses,
			SetsWon:        s.SetsWon,
			SetsLost:       s.SetsLost,
			PointsScored:   s.PointsScored,
			PointsConceded: s.PointsConceded,
			PointsPerSet:   round(s.PointsPerSet(), 2),
			SetRatio:       round(s.SetRatio(), 2),
			WinRate:        round(s.WinRate(), 1),
			Gold:           gold,
			Silver:         silver,
			Bronze:         bronze,
			History:        slices.Clone(s.History),
			Rating:         rating,
			Card:           CardTierFor(rating),
		})
	}

	slices.SortStableFunc(entries, func(a, b models.RankingEntry) int {
		switch {
		case a.Score != b.Score:
			return b.Score - a.Score
		case a.Gold != b.Gold:
			return b.Gold - a.Gold
		case a.Silver != b.Silver:
			return b.Silver - a.Silver
		case a.WinRate > b.WinRate:
			return -1
		case a.WinRate < b.WinRate:
			return 1
		}
		return 0
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

// SeedPositions returns each team's best member ranking position (0-based).
// It fails with ErrNoRankingData when nobody is ranked yet.
func SeedPositions(snap *models.Snapshot) brackets.SeedFunc {
	return func(teamIDs []string) (map[string]int, error) {
		ranking := BuildRanking(snap.Athletes, len(snap.Teams))
		if len(ranking) == 0 {
			return nil, ErrNoRankingData
		}
		athletePos := make(map[string]int, len(ranking))
		for i, e := range ranking {
			athletePos[e.AthleteID] = i
		}
		positions := make(map[string]int)
		for _, id := range teamIDs {
			team := snap.TeamByID(id)
			if team == nil {
				continue
			}
			for _, aid := range team.AthleteIDs {
				p, ok := athletePos[aid]
				if !ok {
					continue
				}
				if best, seen := positions[id]; !seen || p < best {
					positions[id] = p
				}
			}
		}
		return positions, nil
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
