package services

import (
	"testing"

	"github.com/Dosada05/beach-tournament/models"
)

func played(a, b string, sets ...models.SetScore) *models.Match {
	m := &models.Match{ID: a + "-" + b, TeamA: a, TeamB: b}
	for _, s := range sets {
		if s.A > s.B {
			m.SetsA++
		} else {
			m.SetsB++
		}
	}
	m.Sets = sets
	m.Confirmed = true
	if m.SetsA > m.SetsB {
		m.Winner = a
	} else {
		m.Winner = b
	}
	return m
}

func order(rows []models.Standing) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.TeamID
	}
	return ids
}

func TestComputeStandings(t *testing.T) {
	tests := []struct {
		name    string
		teams   []string
		matches []*models.Match
		want    []string
	}{
		{
			name:  "match points first",
			teams: []string{"a", "b", "c"},
			matches: []*models.Match{
				played("a", "b", models.SetScore{A: 21, B: 15}),
				played("a", "c", models.SetScore{A: 21, B: 19}),
				played("c", "b", models.SetScore{A: 21, B: 10}),
			},
			want: []string{"a", "c", "b"},
		},
		{
			name:  "point difference breaks a three-way tie",
			teams: []string{"b", "c", "a"},
			matches: []*models.Match{
				played("a", "b", models.SetScore{A: 21, B: 10}),
				played("b", "c", models.SetScore{A: 21, B: 19}),
				played("c", "a", models.SetScore{A: 21, B: 15}),
			},
			want: []string{"a", "c", "b"},
		},
		{
			name:  "set difference before point difference",
			teams: []string{"a", "b", "c", "d"},
			matches: []*models.Match{
				played("a", "c", models.SetScore{A: 21, B: 0}, models.SetScore{A: 0, B: 21}, models.SetScore{A: 15, B: 0}),
				played("b", "d", models.SetScore{A: 21, B: 19}, models.SetScore{A: 21, B: 19}),
			},
			want: []string{"b", "a", "c", "d"},
		},
		{
			name:  "unconfirmed and bye ignored",
			teams: []string{"a", "b"},
			matches: []*models.Match{
				{ID: "x", TeamA: "a", TeamB: "b"},
				{ID: "bye", TeamA: "a", Bye: true, Confirmed: true, Winner: "a"},
			},
			want: []string{"a", "b"},
		},
		{
			name:    "no matches keeps input order",
			teams:   []string{"c", "a", "b"},
			matches: nil,
			want:    []string{"c", "a", "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ComputeStandings(tt.teams, tt.matches)
			got := order(rows)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("expected order %v, got %v", tt.want, got)
				}
				if rows[i].Position != i+1 {
					t.Errorf("row %d has position %d", i, rows[i].Position)
				}
			}
		})
	}
}

func TestComputeStandingsTotals(t *testing.T) {
	rows := ComputeStandings([]string{"a", "b"}, []*models.Match{
		played("a", "b", models.SetScore{A: 21, B: 15}, models.SetScore{A: 18, B: 21}, models.SetScore{A: 15, B: 12}),
	})
	a, b := rows[0], rows[1]
	if a.TeamID != "a" || a.MatchPoints != PointsForWin || b.MatchPoints != PointsForLoss {
		t.Fatalf("unexpected match points: %+v %+v", a, b)
	}
	if a.Played != 1 || a.Wins != 1 || b.Losses != 1 {
		t.Errorf("unexpected win/loss counts: %+v %+v", a, b)
	}
	if a.SetsWon != 2 || a.SetsLost != 1 || a.SetDifference != 1 || b.SetDifference != -1 {
		t.Errorf("unexpected sets: %+v %+v", a, b)
	}
	if a.PointsScored != 54 || a.PointsConceded != 48 || a.PointDifference != 6 || b.PointDifference != -6 {
		t.Errorf("unexpected points: %+v %+v", a, b)
	}
}

func TestTeamStatsSkipsUnplayed(t *testing.T) {
	stats := TeamStats([]*models.Match{
		played("a", "b", models.SetScore{A: 21, B: 15}),
		played("b", "c", models.SetScore{A: 21, B: 17}),
		{ID: "open", TeamA: "a", TeamB: "c"},
		{ID: "bye", TeamA: "c", Bye: true, Confirmed: true, Winner: "c"},
	})
	if stats["a"].Wins != 1 || stats["b"].Wins != 1 || stats["b"].Losses != 1 || stats["c"].Losses != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats["b"].MatchPoints != PointsForWin+PointsForLoss {
		t.Errorf("expected b to have %d match points, got %d", PointsForWin+PointsForLoss, stats["b"].MatchPoints)
	}
	if stats["c"].PointsScored != 17 || stats["c"].Wins != 0 {
		t.Errorf("bye counted for c: %+v", stats["c"])
	}
}
