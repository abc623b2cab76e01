package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/beach-tournament/brackets"
	"github.com/Dosada05/beach-tournament/models"
	"github.com/Dosada05/beach-tournament/repositories"
)

// EventPublisher is satisfied by *brackets.Hub.
type EventPublisher interface {
	Broadcast(eventType string, payload any)
}

// Session is the single writer around the engine. Every call loads the snapshot,
// runs one operation on a TournamentService, saves on success and then notifies
// the leaderboard cache and spectators. Calls are serialized.
type Session struct {
	mu          sync.Mutex
	repo        repositories.SnapshotRepository
	leaderboard repositories.LeaderboardRepository
	events      EventPublisher
	rng         brackets.RandSource
	newID       brackets.IDFunc
	logger      *slog.Logger
}

// NewSession accepts nil leaderboard and events.
func NewSession(
	repo repositories.SnapshotRepository,
	leaderboard repositories.LeaderboardRepository,
	events EventPublisher,
	rng brackets.RandSource,
	logger *slog.Logger,
) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		repo:        repo,
		leaderboard: leaderboard,
		events:      events,
		rng:         rng,
		newID:       brackets.NewMatchID,
		logger:      logger,
	}
}

// update runs fn against a freshly loaded snapshot and saves it when fn succeeds.
func (s *Session) update(ctx context.Context, fn func(ts *TournamentService) error) (*TournamentService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	ts := NewTournamentService(snap, s.rng, s.newID)
	if err := fn(ts); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, ts.Snapshot()); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return ts, nil
}

func (s *Session) view(ctx context.Context) (*TournamentService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return NewTournamentService(snap, s.rng, s.newID), nil
}

func (s *Session) publish(eventType string, payload any) {
	if s.events != nil {
		s.events.Broadcast(eventType, payload)
	}
}

// refreshLeaderboard failures are logged only; the snapshot stays authoritative.
func (s *Session) refreshLeaderboard(ctx context.Context, ts *TournamentService) {
	if s.leaderboard == nil {
		return
	}
	if err := s.leaderboard.Replace(ctx, ts.Ranking()); err != nil {
		s.logger.Warn("failed to refresh ranking cache", "error", err)
	}
}

// --- mutations ---

func (s *Session) RegisterAthlete(ctx context.Context, firstName, lastName string) (*models.Athlete, error) {
	var athlete *models.Athlete
	_, err := s.update(ctx, func(ts *TournamentService) (err error) {
		athlete, err = ts.RegisterAthlete(firstName, lastName)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("athlete registered", "athlete_id", athlete.ID, "name", athlete.Name)
	s.publish(brackets.EventRosterChanged, athlete)
	return athlete, nil
}

func (s *Session) RemoveAthlete(ctx context.Context, athleteID string) error {
	if _, err := s.update(ctx, func(ts *TournamentService) error { return ts.RemoveAthlete(athleteID) }); err != nil {
		return err
	}
	s.logger.Info("athlete removed", "athlete_id", athleteID)
	s.publish(brackets.EventRosterChanged, map[string]string{"removed_athlete_id": athleteID})
	return nil
}

func (s *Session) RegisterTeam(ctx context.Context, name string, athleteIDs []string) (*models.Team, error) {
	var team *models.Team
	_, err := s.update(ctx, func(ts *TournamentService) (err error) {
		team, err = ts.RegisterTeam(name, athleteIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("team registered", "team_id", team.ID, "name", team.Name)
	s.publish(brackets.EventRosterChanged, team)
	return team, nil
}

func (s *Session) RemoveTeam(ctx context.Context, teamID string) error {
	if _, err := s.update(ctx, func(ts *TournamentService) error { return ts.RemoveTeam(teamID) }); err != nil {
		return err
	}
	s.logger.Info("team removed", "team_id", teamID)
	s.publish(brackets.EventRosterChanged, map[string]string{"removed_team_id": teamID})
	return nil
}

func (s *Session) UpdateConfig(ctx context.Context, cfg models.TournamentConfig) (*models.TournamentConfig, error) {
	ts, err := s.update(ctx, func(ts *TournamentService) error { return ts.UpdateConfig(cfg) })
	if err != nil {
		return nil, err
	}
	updated := ts.Snapshot().Config
	s.logger.Info("tournament config updated", "name", updated.Name, "format", updated.SetFormat, "max_points", updated.MaxPoints)
	return &updated, nil
}

func (s *Session) StartTournament(ctx context.Context) (*models.Snapshot, error) {
	var schedule *brackets.GroupSchedule
	ts, err := s.update(ctx, func(ts *TournamentService) (err error) {
		schedule, err = ts.StartTournament()
		return err
	})
	if err != nil {
		return nil, err
	}
	if schedule.SeedErr != nil {
		s.logger.Warn("ranking seeding unavailable, groups drawn at random", "error", schedule.SeedErr)
	}
	s.logger.Info("tournament started", "name", ts.Snapshot().Config.Name, "teams", len(ts.Snapshot().Teams),
		"groups", len(schedule.Groups), "seeded", schedule.Seeded)
	s.publish(brackets.EventPhaseChanged, ts.Snapshot())
	return ts.Snapshot(), nil
}

func (s *Session) AdvancePhase(ctx context.Context) (*models.Snapshot, error) {
	var phase models.TournamentPhase
	ts, err := s.update(ctx, func(ts *TournamentService) (err error) {
		phase, err = ts.AdvancePhase()
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("tournament phase advanced", "phase", phase)
	if phase == models.PhaseAwarded {
		s.logger.Info("tournament awarded", "champion_id", ts.Snapshot().ChampionID)
		s.refreshLeaderboard(ctx, ts)
	}
	s.publish(brackets.EventPhaseChanged, ts.Snapshot())
	return ts.Snapshot(), nil
}

func (s *Session) Reset(ctx context.Context) (*models.Snapshot, error) {
	ts, err := s.update(ctx, func(ts *TournamentService) error {
		ts.Reset()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("tournament reset", "athletes", len(ts.Snapshot().Athletes))
	s.publish(brackets.EventReset, ts.Snapshot())
	return ts.Snapshot(), nil
}

func (s *Session) SubmitMatchResult(ctx context.Context, matchID string, sets []models.SetScore) (*models.Match, error) {
	return s.confirmMatch(ctx, matchID, func(ts *TournamentService) (*models.Match, error) {
		return ts.SubmitMatchResult(matchID, sets)
	})
}

func (s *Session) SimulateMatch(ctx context.Context, matchID string) (*models.Match, error) {
	return s.confirmMatch(ctx, matchID, func(ts *TournamentService) (*models.Match, error) {
		return ts.SimulateMatch(matchID)
	})
}

func (s *Session) confirmMatch(ctx context.Context, matchID string, fn func(ts *TournamentService) (*models.Match, error)) (*models.Match, error) {
	var (
		match       *models.Match
		roundsAfter int
		roundsPrior int
	)
	ts, err := s.update(ctx, func(ts *TournamentService) (err error) {
		roundsPrior = ts.Snapshot().Bracket.LastRound()
		match, err = fn(ts)
		roundsAfter = ts.Snapshot().Bracket.LastRound()
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("match confirmed", "match_id", match.ID, "winner", match.Winner, "sets", fmt.Sprintf("%d-%d", match.SetsA, match.SetsB))
	s.publish(brackets.EventMatchConfirmed, match)
	if roundsAfter > roundsPrior {
		s.logger.Info("elimination round created", "round", roundsAfter)
		s.publish(brackets.EventBracketUpdated, ts.Bracket())
	}
	return match, nil
}

// --- queries ---

func (s *Session) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	ts, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return ts.Snapshot(), nil
}

func (s *Session) GroupStandings(ctx context.Context, groupIndex int) ([]models.Standing, error) {
	ts, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return ts.GroupStandings(groupIndex)
}

func (s *Session) Bracket(ctx context.Context) ([]BracketRound, error) {
	ts, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return ts.Bracket(), nil
}

func (s *Session) Ranking(ctx context.Context) ([]models.RankingEntry, error) {
	ts, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return ts.Ranking(), nil
}

// TopRanking reads the cache and falls back to computing from the snapshot.
func (s *Session) TopRanking(ctx context.Context, limit int) ([]models.RankingEntry, error) {
	if s.leaderboard != nil {
		entries, err := s.leaderboard.Top(ctx, limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			s.logger.Warn("ranking cache read failed", "error", err)
		}
	}
	entries, err := s.Ranking(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// WarmLeaderboard fills the ranking cache from the stored snapshot.
func (s *Session) WarmLeaderboard(ctx context.Context) error {
	if s.leaderboard == nil {
		return nil
	}
	ts, err := s.view(ctx)
	if err != nil {
		return err
	}
	return s.leaderboard.Replace(ctx, ts.Ranking())
}

func (s *Session) Athletes(ctx context.Context) ([]*models.Athlete, error) {
	ts, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return ts.Snapshot().Athletes, nil
}

func (s *Session) AthleteProfile(ctx context.Context, athleteID string) (*AthleteProfile, error) {
	ts, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return ts.AthleteProfile(athleteID)
}

func (s *Session) Trophies(ctx context.Context, athleteID string) ([]models.TrophyStatus, error) {
	ts, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return ts.Trophies(athleteID)
}

// Backup copies the current snapshot to target.
func (s *Session) Backup(ctx context.Context, target repositories.SnapshotRepository) error {
	if target == nil {
		return errors.New("no backup target configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot for backup: %w", err)
	}
	if err := target.Save(ctx, snap); err != nil {
		return fmt.Errorf("save backup to %s: %w", target.Name(), err)
	}
	return nil
}
