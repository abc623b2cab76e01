package services

import (
	"fmt"

	"github.com/Dosada05/beach-tournament/brackets"
	"github.com/Dosada05/beach-tournament/models"
)

// ValidateSet checks one set against its point limit. A set is decided when a side
// reached the limit with a two-point margin, or when a side ran past limit+CapMargin,
// in which case the higher score wins with any margin.
func ValidateSet(score models.SetScore, limit int) error {
	fail := func(reason string) error {
		return &InvalidScoreError{SetIndex: -1, Score: score, Reason: reason}
	}
	if score.A < 0 || score.B < 0 {
		return fail("scores cannot be negative")
	}
	if score.A == score.B {
		return fail("a set cannot end in a tie")
	}
	high, low := score.A, score.B
	if low > high {
		high, low = low, high
	}
	if high < limit {
		return fail(fmt.Sprintf("winner must reach %d points", limit))
	}
	if high-low < 2 && high <= limit+models.CapMargin {
		return fail("winning margin must be at least 2 points")
	}
	return nil
}

// ResolveMatch validates the set list against the format and confirms the match.
// The match is left untouched when an error is returned.
func ResolveMatch(cfg models.TournamentConfig, m *models.Match, sets []models.SetScore) error {
	if len(sets) == 0 {
		return &InvalidScoreError{SetIndex: -1, Reason: "no sets recorded"}
	}
	needed := cfg.SetFormat.SetsToWin()
	if cfg.SetFormat == models.FormatSingleSet && len(sets) != 1 {
		return &InvalidScoreError{SetIndex: -1, Reason: fmt.Sprintf("single set format takes exactly 1 set, got %d", len(sets))}
	}

	setsA, setsB := 0, 0
	for i, s := range sets {
		if setsA == needed || setsB == needed {
			return &InvalidScoreError{SetIndex: i, Score: s, Reason: "match was already decided"}
		}
		if err := ValidateSet(s, cfg.SetFormat.SetLimit(i, cfg.MaxPoints)); err != nil {
			scoreErr := err.(*InvalidScoreError)
			scoreErr.SetIndex = i
			return scoreErr
		}
		if s.A > s.B {
			setsA++
		} else {
			setsB++
		}
	}
	if setsA < needed && setsB < needed {
		return &InvalidScoreError{SetIndex: -1, Reason: fmt.Sprintf("no side won %d sets", needed)}
	}

	m.Sets = append([]models.SetScore(nil), sets...)
	m.SetsA, m.SetsB = setsA, setsB
	m.Confirmed = true
	if setsA > setsB {
		m.Winner = m.TeamA
	} else {
		m.Winner = m.TeamB
	}
	return nil
}

// SimulateSet plays random rallies until the set is decided by ValidateSet's rules.
func SimulateSet(rng brackets.RandSource, limit int) models.SetScore {
	var s models.SetScore
	for {
		if rng.Intn(2) == 0 {
			s.A++
		} else {
			s.B++
		}
		if ValidateSet(s, limit) == nil {
			return s
		}
	}
}

// SimulateSets produces a set list that ResolveMatch accepts for cfg.
func SimulateSets(rng brackets.RandSource, cfg models.TournamentConfig) []models.SetScore {
	needed := cfg.SetFormat.SetsToWin()
	var sets []models.SetScore
	setsA, setsB := 0, 0
	for setsA < needed && setsB < needed {
		s := SimulateSet(rng, cfg.SetFormat.SetLimit(len(sets), cfg.MaxPoints))
		sets = append(sets, s)
		if s.A > s.B {
			setsA++
		} else {
			setsB++
		}
	}
	return sets
}
