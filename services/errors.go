package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/beach-tournament/models"
)

// Error categories, matched with errors.Is by handlers.
var (
	ErrNotFound               = errors.New("not found")
	ErrValidationFailed       = errors.New("validation failed")
	ErrInvalidScore           = errors.New("invalid score")
	ErrInvalidStateTransition = errors.New("invalid tournament phase transition")
)

var (
	// Unknown ids
	ErrAthleteNotFound = fmt.Errorf("athlete %w", ErrNotFound)
	ErrTeamNotFound    = fmt.Errorf("team %w", ErrNotFound)
	ErrMatchNotFound   = fmt.Errorf("match %w", ErrNotFound)
	ErrGroupNotFound   = fmt.Errorf("group %w", ErrNotFound)

	// Roster rules
	ErrAthleteNameRequired  = errors.New("athlete first name is required")
	ErrAthleteNameConflict  = errors.New("an athlete with this name already exists")
	ErrAthleteHasHistory    = errors.New("athlete has tournament history and cannot be removed")
	ErrAthleteRostered      = errors.New("athlete is on a team of the current tournament")
	ErrAthleteOnAnotherTeam = errors.New("athlete is already on another team")
	ErrDuplicateAthlete     = errors.New("athlete listed twice on the same team")
	ErrTeamSizeMismatch     = errors.New("team size does not match the players-per-team setting")

	// Configuration and lifecycle
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrNotEnoughTeams         = errors.New("not enough teams to start the tournament")
	ErrInvalidPlayersPerTeam  = errors.New("players per team is out of range")
	ErrInvalidSetFormat       = errors.New("unknown set format")
	ErrInvalidMaxPoints       = errors.New("max points per set is out of range")
	ErrSetupOnly              = errors.New("operation is only allowed during setup")
	ErrWrongPhaseForMatch     = errors.New("match cannot be played in the current phase")
	ErrResultLocked           = errors.New("match result can no longer be changed")
	ErrByeMatch               = errors.New("bye matches take no result")

	// Auth
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
)

// ValidationError reports malformed input. Err optionally carries a specific sentinel.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := e.Reason
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, msg)
	}
	return "validation failed: " + msg
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }
func (e *ValidationError) Unwrap() error        { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// InvalidScoreError reports a result that breaks the set format or margin rules.
// SetIndex is -1 when the problem concerns the set list as a whole.
type InvalidScoreError struct {
	SetIndex int
	Score    models.SetScore
	Reason   string
}

func (e *InvalidScoreError) Error() string {
	if e.SetIndex < 0 {
		return "invalid score: " + e.Reason
	}
	return fmt.Sprintf("invalid score in set %d (%d-%d): %s", e.SetIndex+1, e.Score.A, e.Score.B, e.Reason)
}

func (e *InvalidScoreError) Is(target error) bool { return target == ErrInvalidScore }

// StateTransitionError reports an out-of-order phase change or an unmet precondition.
// An empty To means the operation itself is not allowed in phase From.
type StateTransitionError struct {
	From   models.TournamentPhase
	To     models.TournamentPhase
	Reason string
	Err    error
}

func (e *StateTransitionError) Error() string {
	msg := e.Reason
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.To == "" {
		return fmt.Sprintf("not allowed in phase %s: %s", e.From, msg)
	}
	return fmt.Sprintf("cannot move from %s to %s: %s", e.From, e.To, msg)
}

func (e *StateTransitionError) Is(target error) bool { return target == ErrInvalidStateTransition }
func (e *StateTransitionError) Unwrap() error        { return e.Err }
