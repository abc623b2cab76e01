package services

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/Dosada05/beach-tournament/models"
)

func TestPlacementScore(t *testing.T) {
	tests := []struct {
		position, teams, want int
	}{
		{1, 8, 80},
		{2, 8, 70},
		{3, 8, 60},
		{4, 8, 50},
		{8, 8, 10},
		{9, 8, 0},
		{20, 8, 0},
		{1, 4, 40},
	}
	for _, tt := range tests {
		if got := PlacementScore(tt.position, tt.teams); got != tt.want {
			t.Errorf("PlacementScore(%d, %d) = %d, want %d", tt.position, tt.teams, got, tt.want)
		}
	}
}

func TestPlacementScoreMonotonic(t *testing.T) {
	for n := 2; n <= 16; n++ {
		for p := 1; p < n+3; p++ {
			if PlacementScore(p, n) < PlacementScore(p+1, n) {
				t.Fatalf("score rose from position %d to %d with %d teams", p, p+1, n)
			}
			if PlacementScore(p, n) > PlacementScore(p, n+1) {
				t.Fatalf("score fell at position %d going from %d to %d teams", p, n, n+1)
			}
		}
	}
}

func TestRankingScoreLegacyTeamCount(t *testing.T) {
	stats := models.LifetimeStats{History: []models.Placement{
		{Tournament: "old", Position: 1},
		{Tournament: "new", Position: 2, TeamCount: 8},
	}}
	// Legacy entry uses max(current, 4) teams.
	if got := RankingScore(stats, 2); got != 40+70 {
		t.Errorf("expected 110 with 2 current teams, got %d", got)
	}
	if got := RankingScore(stats, 6); got != 60+70 {
		t.Errorf("expected 130 with 6 current teams, got %d", got)
	}
}

func TestRating(t *testing.T) {
	attrs := func(v int) models.SkillAttributes {
		return models.SkillAttributes{Attack: v, Defense: v, Block: v, Reception: v, Serve: v, Setting: v}
	}
	tests := []struct {
		name  string
		stats models.LifetimeStats
		want  int
	}{
		{"floor", models.LifetimeStats{Attributes: attrs(10)}, MinRating},
		{"flat attributes", models.LifetimeStats{Attributes: attrs(60)}, 60},
		{"title bonus", models.LifetimeStats{Attributes: attrs(60), Wins: 2}, 64},
		{"bonus capped", models.LifetimeStats{Attributes: attrs(60), Wins: 9}, 70},
		{"ceiling", models.LifetimeStats{Attributes: attrs(99), Wins: 5}, MaxRating},
		{"weights favor attack", models.LifetimeStats{Attributes: models.SkillAttributes{Attack: 90, Defense: 50, Block: 50, Reception: 50, Serve: 50, Setting: 50}}, 58},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rating(tt.stats); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestCardTierFor(t *testing.T) {
	tests := []struct {
		rating int
		want   models.CardTier
	}{
		{45, models.CardBronzeCommon},
		{50, models.CardBronzeRare},
		{57, models.CardSilverCommon},
		{64, models.CardSilverRare},
		{65, models.CardGoldCommon},
		{74, models.CardGoldRare},
		{75, models.CardHero},
		{84, models.CardLegend},
		{99, models.CardOlympus},
	}
	for _, tt := range tests {
		if got := CardTierFor(tt.rating); got != tt.want {
			t.Errorf("CardTierFor(%d) = %s, want %s", tt.rating, got, tt.want)
		}
	}
}

func TestBuildRanking(t *testing.T) {
	athletes := []*models.Athlete{
		{ID: "newbie", Name: "Newbie"},
		{ID: "silver", Name: "Silver", Stats: models.LifetimeStats{
			Tournaments: 1, Losses: 1, SetsWon: 3, SetsLost: 2, PointsScored: 100,
			History: []models.Placement{{Tournament: "T1", Position: 2, TeamCount: 8}},
		}},
		{ID: "gold", Name: "Gold", Stats: models.LifetimeStats{
			Tournaments: 1, Wins: 1, SetsWon: 5, SetsLost: 0, PointsScored: 105,
			History: []models.Placement{{Tournament: "T1", Position: 1, TeamCount: 8}},
		}},
		{ID: "bronze", Name: "Bronze", Stats: models.LifetimeStats{
			Tournaments: 2, Losses: 2, SetsWon: 2, SetsLost: 3, PointsScored: 100,
			History: []models.Placement{{Tournament: "T1", Position: 3, TeamCount: 4}, {Tournament: "T2", Position: 4, TeamCount: 8}},
		}},
	}

	ranking := BuildRanking(athletes, 8)
	if len(ranking) != 3 {
		t.Fatalf("expected 3 ranked athletes, got %d", len(ranking))
	}
	want := []string{"gold", "silver", "bronze"}
	for i, e := range ranking {
		if e.AthleteID != want[i] || e.Position != i+1 {
			t.Fatalf("expected %v, got %s at position %d", want, e.AthleteID, e.Position)
		}
	}

	gold := ranking[0]
	if gold.Score != 80 || gold.Gold != 1 || gold.WinRate != 100 {
		t.Errorf("unexpected gold entry: %+v", gold)
	}
	if gold.PointsPerSet != 21 || gold.SetRatio != 5 {
		t.Errorf("unexpected gold ratios: %+v", gold)
	}
	silver := ranking[1]
	if silver.PointsPerSet != 20 || silver.SetRatio != 1.5 || silver.Silver != 1 {
		t.Errorf("unexpected silver entry: %+v", silver)
	}
	bronze := ranking[2]
	if bronze.Score != 20+50 || bronze.Bronze != 1 || bronze.SetRatio != 0.67 {
		t.Errorf("unexpected bronze entry: %+v", bronze)
	}
}

func TestBuildRankingTieBreaks(t *testing.T) {
	athletes := []*models.Athlete{
		{ID: "two-silvers", Stats: models.LifetimeStats{Tournaments: 2, Losses: 2,
			History: []models.Placement{{Position: 2, TeamCount: 4}, {Position: 2, TeamCount: 4}}}},
		{ID: "one-gold", Stats: models.LifetimeStats{Tournaments: 2, Wins: 1, Losses: 1,
			History: []models.Placement{{Position: 1, TeamCount: 4}, {Position: 3, TeamCount: 4}}}},
	}
	ranking := BuildRanking(athletes, 4)
	if ranking[0].AthleteID != "one-gold" {
		t.Fatalf("expected gold medals to break the score tie, got %s first", ranking[0].AthleteID)
	}
}

func newRosterSnapshot(teams int) *models.Snapshot {
	snap := models.NewSnapshot()
	snap.Config.Name = "Test Open"
	for i := 0; i < teams; i++ {
		team := &models.Team{ID: fmt.Sprintf("t%d", i+1), Name: fmt.Sprintf("Team %d", i+1)}
		for j := 0; j < 2; j++ {
			a := &models.Athlete{
				ID:   fmt.Sprintf("a%d-%d", i+1, j+1),
				Name: fmt.Sprintf("Athlete %d-%d", i+1, j+1),
				Stats: models.LifetimeStats{
					History:    []models.Placement{},
					Attributes: models.SkillAttributes{Attack: 98, Defense: 60, Block: 60, Reception: 60, Serve: 60, Setting: 60},
				},
			}
			snap.Athletes = append(snap.Athletes, a)
			team.AthleteIDs = append(team.AthleteIDs, a.ID)
		}
		team.Stats = models.TeamStandingStats{SetsWon: i + 1, SetsLost: 1, PointsScored: 40, PointsConceded: 30}
		snap.Teams = append(snap.Teams, team)
	}
	return snap
}

func TestApplyTournamentResults(t *testing.T) {
	snap := newRosterSnapshot(8)
	podium := []models.PodiumEntry{
		{Position: 1, TeamID: "t1"},
		{Position: 2, TeamID: "t2"},
		{Position: 3, TeamID: "t3"},
		{Position: 3, TeamID: "t4"},
	}
	ApplyTournamentResults(snap, podium, rand.New(rand.NewSource(11)))

	tests := []struct {
		athlete  string
		position int
		wins     int
		losses   int
		setsWon  int
	}{
		{"a1-1", 1, 1, 0, 1},
		{"a2-2", 2, 0, 1, 2},
		{"a3-1", 3, 0, 1, 3},
		{"a4-2", 3, 0, 1, 4},
		{"a5-1", 4, 0, 1, 5},
		{"a8-2", 4, 0, 1, 8},
	}
	for _, tt := range tests {
		a := snap.AthleteByID(tt.athlete)
		s := a.Stats
		if s.Tournaments != 1 || s.Wins != tt.wins || s.Losses != tt.losses {
			t.Errorf("%s: unexpected record %+v", tt.athlete, s)
		}
		if len(s.History) != 1 || s.History[0] != (models.Placement{Tournament: "Test Open", Position: tt.position, TeamCount: 8}) {
			t.Errorf("%s: unexpected history %+v", tt.athlete, s.History)
		}
		if s.SetsWon != tt.setsWon || s.SetsLost != 1 || s.PointsScored != 40 || s.PointsConceded != 30 {
			t.Errorf("%s: team totals not merged: %+v", tt.athlete, s)
		}
	}

	for _, a := range snap.Athletes {
		attrs := a.Stats.Attributes
		if attrs.Attack > models.MaxAttribute {
			t.Errorf("%s: attack above cap: %d", a.ID, attrs.Attack)
		}
		if attrs.Defense < 60 {
			t.Errorf("%s: attributes must never decrease", a.ID)
		}
	}
	for _, id := range []string{"a5-1", "a8-2"} {
		if got := snap.AthleteByID(id).Stats.Attributes.Defense; got != 60 {
			t.Errorf("%s: non-podium athlete boosted to %d", id, got)
		}
	}
}

func TestApplyTournamentResultsMergesOnce(t *testing.T) {
	snap := newRosterSnapshot(4)
	// A corrupted roster lists the same athlete twice.
	snap.Teams[0].AthleteIDs = []string{"a1-1", "a1-1"}
	podium := []models.PodiumEntry{{Position: 1, TeamID: "t1"}, {Position: 1, TeamID: "t1"}}

	ApplyTournamentResults(snap, podium, rand.New(rand.NewSource(1)))

	s := snap.AthleteByID("a1-1").Stats
	if s.Tournaments != 1 || s.Wins != 1 || len(s.History) != 1 || s.SetsWon != 1 {
		t.Fatalf("athlete merged more than once: %+v", s)
	}
}

func TestSeedPositions(t *testing.T) {
	snap := newRosterSnapshot(4)
	if _, err := SeedPositions(snap)([]string{"t1", "t2"}); !errors.Is(err, ErrNoRankingData) {
		t.Fatalf("expected ErrNoRankingData, got %v", err)
	}

	snap.AthleteByID("a2-2").Stats.Tournaments = 1
	snap.AthleteByID("a2-2").Stats.History = []models.Placement{{Position: 1, TeamCount: 8}}
	snap.AthleteByID("a3-1").Stats.Tournaments = 1
	snap.AthleteByID("a3-1").Stats.History = []models.Placement{{Position: 2, TeamCount: 8}}

	positions, err := SeedPositions(snap)([]string{"t1", "t2", "t3", "t4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if positions["t2"] != 0 || positions["t3"] != 1 {
		t.Errorf("unexpected positions: %v", positions)
	}
	if _, ok := positions["t1"]; ok {
		t.Errorf("unranked team t1 got a position")
	}
}
