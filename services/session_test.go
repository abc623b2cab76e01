package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Dosada05/beach-tournament/brackets"
	"github.com/Dosada05/beach-tournament/models"
	"github.com/Dosada05/beach-tournament/repositories"
)

type recordedEvents struct {
	mu    sync.Mutex
	types []string
}

func (r *recordedEvents) Broadcast(eventType string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, eventType)
}

func (r *recordedEvents) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.types {
		if t == eventType {
			n++
		}
	}
	return n
}

type memoryLeaderboard struct {
	entries  []models.RankingEntry
	replaced int
}

func (m *memoryLeaderboard) Replace(ctx context.Context, entries []models.RankingEntry) error {
	m.entries = append([]models.RankingEntry(nil), entries...)
	m.replaced++
	return nil
}

func (m *memoryLeaderboard) Top(ctx context.Context, limit int) ([]models.RankingEntry, error) {
	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	return m.entries[:limit], nil
}

func newTestSession(t *testing.T) (*Session, repositories.SnapshotRepository, *recordedEvents, *memoryLeaderboard) {
	t.Helper()
	repo := repositories.NewFileSnapshotRepository(filepath.Join(t.TempDir(), "snapshot.json"))
	events := &recordedEvents{}
	board := &memoryLeaderboard{}
	session := NewSession(repo, board, events, rand.New(rand.NewSource(21)), nil)
	return session, repo, events, board
}

func TestSessionPersistsMutations(t *testing.T) {
	ctx := context.Background()
	session, repo, events, _ := newTestSession(t)

	athlete, err := session.RegisterAthlete(ctx, "Marta", "Sole")
	if err != nil {
		t.Fatalf("RegisterAthlete: %v", err)
	}

	reloaded := NewSession(repo, nil, nil, rand.New(rand.NewSource(1)), nil)
	athletes, err := reloaded.Athletes(ctx)
	if err != nil {
		t.Fatalf("Athletes: %v", err)
	}
	if len(athletes) != 1 || athletes[0].ID != athlete.ID {
		t.Fatalf("athlete not persisted: %+v", athletes)
	}
	if events.count(brackets.EventRosterChanged) != 1 {
		t.Errorf("expected one roster event, got %v", events.types)
	}
}

func TestSessionDoesNotSaveFailedOperations(t *testing.T) {
	ctx := context.Background()
	session, repo, events, _ := newTestSession(t)

	if _, err := session.RegisterAthlete(ctx, "Marta", "Sole"); err != nil {
		t.Fatalf("RegisterAthlete: %v", err)
	}
	before, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := session.StartTournament(ctx); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected transition error, got %v", err)
	}
	if _, err := session.RegisterAthlete(ctx, "marta", "sole"); !errors.Is(err, ErrAthleteNameConflict) {
		t.Fatalf("expected name conflict, got %v", err)
	}

	after, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) || len(after.Athletes) != 1 || after.Phase != models.PhaseSetup {
		t.Fatal("failed operations changed the stored snapshot")
	}
	if events.count(brackets.EventPhaseChanged) != 0 {
		t.Error("failed start published a phase event")
	}
}

func TestSessionTournamentLifecycle(t *testing.T) {
	ctx := context.Background()
	session, _, events, board := newTestSession(t)

	for i := 0; i < 4; i++ {
		a, err := session.RegisterAthlete(ctx, fmt.Sprintf("Left%d", i), "Side")
		if err != nil {
			t.Fatalf("RegisterAthlete: %v", err)
		}
		b, err := session.RegisterAthlete(ctx, fmt.Sprintf("Right%d", i), "Side")
		if err != nil {
			t.Fatalf("RegisterAthlete: %v", err)
		}
		if _, err := session.RegisterTeam(ctx, "", []string{a.ID, b.ID}); err != nil {
			t.Fatalf("RegisterTeam: %v", err)
		}
	}
	cfg := models.DefaultTournamentConfig()
	cfg.Name = "Lido Open"
	if _, err := session.UpdateConfig(ctx, cfg); err != nil {
		t.Fatalf("UpdateConfig: %v", err)
	}

	snap, err := session.StartTournament(ctx)
	if err != nil {
		t.Fatalf("StartTournament: %v", err)
	}
	for _, g := range snap.Groups {
		for _, m := range g.Matches {
			if _, err := session.SimulateMatch(ctx, m.ID); err != nil {
				t.Fatalf("SimulateMatch: %v", err)
			}
		}
	}
	snap, err = session.AdvancePhase(ctx)
	if err != nil {
		t.Fatalf("AdvancePhase: %v", err)
	}
	for _, m := range snap.Bracket.Matches {
		if _, err := session.SimulateMatch(ctx, m.ID); err != nil {
			t.Fatalf("SimulateMatch: %v", err)
		}
	}
	rounds, err := session.Bracket(ctx)
	if err != nil {
		t.Fatalf("Bracket: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected semi-finals and final, got %d rounds", len(rounds))
	}
	if events.count(brackets.EventBracketUpdated) != 1 {
		t.Errorf("expected one bracket update, got %d", events.count(brackets.EventBracketUpdated))
	}
	if _, err := session.SimulateMatch(ctx, rounds[1].Matches[0].ID); err != nil {
		t.Fatalf("SimulateMatch final: %v", err)
	}

	snap, err = session.AdvancePhase(ctx)
	if err != nil || snap.Phase != models.PhaseAwarded {
		t.Fatalf("expected awarded, got %v", err)
	}
	if board.replaced != 1 || len(board.entries) != 8 {
		t.Fatalf("ranking cache not refreshed: replaced=%d entries=%d", board.replaced, len(board.entries))
	}
	top, err := session.TopRanking(ctx, 3)
	if err != nil {
		t.Fatalf("TopRanking: %v", err)
	}
	if len(top) != 3 || top[0].Position != 1 {
		t.Fatalf("unexpected top ranking %+v", top)
	}
	if events.count(brackets.EventPhaseChanged) != 3 {
		t.Errorf("expected 3 phase events, got %d", events.count(brackets.EventPhaseChanged))
	}

	if _, err := session.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	athletes, _ := session.Athletes(ctx)
	if len(athletes) != 8 {
		t.Errorf("expected athletes kept after reset, got %d", len(athletes))
	}
}

func TestSessionTopRankingWithoutCache(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewFileSnapshotRepository(filepath.Join(t.TempDir(), "snapshot.json"))
	snap := models.NewSnapshot()
	for i := 0; i < 5; i++ {
		snap.Athletes = append(snap.Athletes, &models.Athlete{
			ID:   fmt.Sprintf("a%d", i),
			Name: fmt.Sprintf("Athlete %d", i),
			Stats: models.LifetimeStats{Tournaments: 1,
				History: []models.Placement{{Tournament: "T", Position: i + 1, TeamCount: 8}}},
		})
	}
	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	session := NewSession(repo, nil, nil, rand.New(rand.NewSource(1)), nil)
	top, err := session.TopRanking(ctx, 2)
	if err != nil {
		t.Fatalf("TopRanking: %v", err)
	}
	if len(top) != 2 || top[0].AthleteID != "a0" || top[1].AthleteID != "a1" {
		t.Fatalf("unexpected top ranking %+v", top)
	}
	if err := session.WarmLeaderboard(ctx); err != nil {
		t.Fatalf("WarmLeaderboard without cache: %v", err)
	}
}

func TestSessionBackup(t *testing.T) {
	ctx := context.Background()
	session, _, _, _ := newTestSession(t)
	if _, err := session.RegisterAthlete(ctx, "Nora", "Onda"); err != nil {
		t.Fatalf("RegisterAthlete: %v", err)
	}

	backup := repositories.NewFileSnapshotRepository(filepath.Join(t.TempDir(), "backups", "copy.json"))
	if err := session.Backup(ctx, backup); err != nil {
		t.Fatalf("Backup: %v", err)
	}
	copied, err := backup.Load(ctx)
	if err != nil {
		t.Fatalf("Load backup: %v", err)
	}
	if len(copied.Athletes) != 1 || copied.Athletes[0].Name != "Nora Onda" {
		t.Fatalf("unexpected backup contents %+v", copied.Athletes)
	}
	if err := session.Backup(ctx, nil); err == nil {
		t.Fatal("expected an error without a backup target")
	}
}
