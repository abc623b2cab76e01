package services

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Dosada05/beach-tournament/brackets"
	"github.com/Dosada05/beach-tournament/models"
)

// New athletes start with every attribute drawn from this range.
const (
	newAthleteMinAttribute = 40
	newAthleteMaxAttribute = 75
)

// TournamentService runs every engine operation against one snapshot.
// It is not safe for concurrent use; callers serialize access.
type TournamentService struct {
	snap    *models.Snapshot
	rng     brackets.RandSource
	newID   brackets.IDFunc
	groups  *brackets.RoundRobinGenerator
	bracket *brackets.SingleEliminationGenerator
	now     func() time.Time

	lastSchedule *brackets.GroupSchedule
}

func NewTournamentService(snap *models.Snapshot, rng brackets.RandSource, newID brackets.IDFunc) *TournamentService {
	if snap == nil {
		snap = models.NewSnapshot()
	}
	snap.Normalize()
	if newID == nil {
		newID = brackets.NewMatchID
	}
	return &TournamentService{
		snap:    snap,
		rng:     rng,
		newID:   newID,
		groups:  brackets.NewRoundRobinGenerator(newID),
		bracket: brackets.NewSingleEliminationGenerator(newID),
		now:     time.Now,
	}
}

// BracketRound groups the elimination matches of one round.
type BracketRound struct {
	Round   int             `json:"round"`
	Matches []*models.Match `json:"matches"`
}

type AthleteProfile struct {
	Athlete  *models.Athlete       `json:"athlete"`
	Team     *models.Team          `json:"team,omitempty"`
	Ranking  *models.RankingEntry  `json:"ranking,omitempty"`
	Rating   int                   `json:"rating"`
	Card     models.CardTier       `json:"card"`
	Trophies []models.TrophyStatus `json:"trophies"`
}

func (s *TournamentService) Snapshot() *models.Snapshot {
	return s.snap
}

func (s *TournamentService) Phase() models.TournamentPhase {
	return s.snap.Phase
}

// --- roster ---

func (s *TournamentService) RegisterAthlete(firstName, lastName string) (*models.Athlete, error) {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first == "" {
		return nil, invalid("first_name", ErrAthleteNameRequired)
	}
	name := models.FullName(first, last)
	for _, a := range s.snap.Athletes {
		if strings.EqualFold(a.Name, name) {
			return nil, invalid("name", ErrAthleteNameConflict)
		}
	}

	athlete := &models.Athlete{
		ID:        s.newID(),
		Name:      name,
		FirstName: first,
		LastName:  last,
		Stats:     models.LifetimeStats{History: []models.Placement{}},
	}
	for _, v := range athlete.Stats.Attributes.Pointers() {
		*v = newAthleteMinAttribute + s.rng.Intn(newAthleteMaxAttribute-newAthleteMinAttribute+1)
	}
	s.snap.Athletes = append(s.snap.Athletes, athlete)
	s.touch()
	return athlete, nil
}

// RemoveAthlete only deletes athletes that never played and are not rostered.
func (s *TournamentService) RemoveAthlete(athleteID string) error {
	a := s.snap.AthleteByID(athleteID)
	if a == nil {
		return ErrAthleteNotFound
	}
	if a.Stats.Tournaments > 0 || len(a.Stats.History) > 0 {
		return invalid("athlete_id", ErrAthleteHasHistory)
	}
	if s.snap.TeamOf(athleteID) != nil {
		return invalid("athlete_id", ErrAthleteRostered)
	}
	s.snap.Athletes = slices.DeleteFunc(s.snap.Athletes, func(x *models.Athlete) bool { return x.ID == athleteID })
	s.touch()
	return nil
}

// RegisterTeam adds a team during setup. An empty name is generated from the
// members' first names joined by "/".
func (s *TournamentService) RegisterTeam(name string, athleteIDs []string) (*models.Team, error) {
	if err := s.requireSetup(); err != nil {
		return nil, err
	}
	if len(athleteIDs) != s.snap.Config.PlayersPerTeam {
		return nil, &ValidationError{
			Field:  "athlete_ids",
			Reason: fmt.Sprintf("a team needs %d athletes, got %d", s.snap.Config.PlayersPerTeam, len(athleteIDs)),
			Err:    ErrTeamSizeMismatch,
		}
	}

	seen := make(map[string]bool, len(athleteIDs))
	names := make([]string, 0, len(athleteIDs))
	for _, aid := range athleteIDs {
		if seen[aid] {
			return nil, invalid("athlete_ids", ErrDuplicateAthlete)
		}
		seen[aid] = true
		a := s.snap.AthleteByID(aid)
		if a == nil {
			return nil, ErrAthleteNotFound
		}
		if other := s.snap.TeamOf(aid); other != nil {
			return nil, &ValidationError{
				Field:  "athlete_ids",
				Reason: fmt.Sprintf("%s already plays for %s", a.Name, other.Name),
				Err:    ErrAthleteOnAnotherTeam,
			}
		}
		names = append(names, a.ShortName())
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.Join(names, "/")
	}
	team := &models.Team{ID: s.newID(), Name: name, AthleteIDs: slices.Clone(athleteIDs)}
	s.snap.Teams = append(s.snap.Teams, team)
	s.touch()
	return team, nil
}

func (s *TournamentService) RemoveTeam(teamID string) error {
	if err := s.requireSetup(); err != nil {
		return err
	}
	if s.snap.TeamByID(teamID) == nil {
		return ErrTeamNotFound
	}
	s.snap.Teams = slices.DeleteFunc(s.snap.Teams, func(t *models.Team) bool { return t.ID == teamID })
	s.touch()
	return nil
}

// UpdateConfig replaces the tournament configuration during setup.
func (s *TournamentService) UpdateConfig(cfg models.TournamentConfig) error {
	if err := s.requireSetup(); err != nil {
		return err
	}
	if cfg.PlayersPerTeam < models.MinPlayersPerTeam || cfg.PlayersPerTeam > models.MaxPlayersPerTeam {
		return &ValidationError{
			Field:  "players_per_team",
			Reason: fmt.Sprintf("must be between %d and %d", models.MinPlayersPerTeam, models.MaxPlayersPerTeam),
			Err:    ErrInvalidPlayersPerTeam,
		}
	}
	if !cfg.SetFormat.Valid() {
		return invalid("set_format", ErrInvalidSetFormat)
	}
	if cfg.MaxPoints < models.MinMaxPoints || cfg.MaxPoints > models.MaxMaxPoints {
		return &ValidationError{
			Field:  "max_points",
			Reason: fmt.Sprintf("must be between %d and %d", models.MinMaxPoints, models.MaxMaxPoints),
			Err:    ErrInvalidMaxPoints,
		}
	}
	for _, t := range s.snap.Teams {
		if len(t.AthleteIDs) != cfg.PlayersPerTeam {
			return &ValidationError{
				Field:  "players_per_team",
				Reason: fmt.Sprintf("team %s has %d athletes", t.Name, len(t.AthleteIDs)),
				Err:    ErrTeamSizeMismatch,
			}
		}
	}
	cfg.Name = strings.TrimSpace(cfg.Name)
	s.snap.Config = cfg
	s.touch()
	return nil
}

// --- phases ---

// StartTournament moves setup to the group stage and reports how groups were seeded.
func (s *TournamentService) StartTournament() (*brackets.GroupSchedule, error) {
	if err := s.TransitionTo(models.PhaseGroupStage); err != nil {
		return nil, err
	}
	return s.lastSchedule, nil
}

// AdvancePhase moves to the only phase reachable from the current one.
func (s *TournamentService) AdvancePhase() (models.TournamentPhase, error) {
	next, ok := s.snap.Phase.Next()
	if !ok {
		return s.snap.Phase, &StateTransitionError{From: s.snap.Phase, Reason: "tournament is already awarded"}
	}
	if err := s.TransitionTo(next); err != nil {
		return s.snap.Phase, err
	}
	return next, nil
}

// TransitionTo changes phase if target is the next one and its precondition holds.
// On error the snapshot is unchanged.
func (s *TournamentService) TransitionTo(target models.TournamentPhase) error {
	from := s.snap.Phase
	next, ok := from.Next()
	if !ok || target != next {
		return &StateTransitionError{From: from, To: target, Reason: "phases move forward one step at a time"}
	}

	var err error
	switch target {
	case models.PhaseGroupStage:
		err = s.startGroupStage()
	case models.PhaseEliminationStage:
		err = s.startElimination()
	case models.PhaseAwarded:
		err = s.award()
	}
	if err != nil {
		return err
	}
	s.snap.Phase = target
	s.touch()
	return nil
}

func (s *TournamentService) startGroupStage() error {
	transitionErr := func(reason string, err error) error {
		return &StateTransitionError{From: models.PhaseSetup, To: models.PhaseGroupStage, Reason: reason, Err: err}
	}
	if strings.TrimSpace(s.snap.Config.Name) == "" {
		return transitionErr("", invalid("name", ErrTournamentNameRequired))
	}
	if len(s.snap.Teams) < models.MinTeamsToStart {
		reason := fmt.Sprintf("at least %d teams are required, %d registered", models.MinTeamsToStart, len(s.snap.Teams))
		return transitionErr(reason, &ValidationError{Field: "teams", Reason: reason, Err: ErrNotEnoughTeams})
	}

	teamIDs := make([]string, len(s.snap.Teams))
	for i, t := range s.snap.Teams {
		teamIDs[i] = t.ID
	}
	var seed brackets.SeedFunc
	if s.snap.Config.UseRankingSeeds {
		seed = SeedPositions(s.snap)
	}
	schedule, err := s.groups.ScheduleGroups(teamIDs, GroupCount(len(teamIDs)), seed, s.rng)
	if err != nil {
		return &ValidationError{Field: "groups", Reason: err.Error(), Err: err}
	}

	for _, t := range s.snap.Teams {
		t.Stats = models.TeamStandingStats{}
	}
	s.snap.Groups = schedule.Groups
	s.snap.Bracket = models.Bracket{Matches: []*models.Match{}}
	s.snap.Podium = []models.PodiumEntry{}
	s.snap.ChampionID = ""
	s.snap.ConfirmSeq = 0
	s.lastSchedule = schedule
	return nil
}

// GroupCount is one group per four teams, never fewer than two.
func GroupCount(teams int) int {
	return max(2, teams/4)
}

func (s *TournamentService) startElimination() error {
	transitionErr := func(err error) error {
		return &StateTransitionError{From: models.PhaseGroupStage, To: models.PhaseEliminationStage, Err: err}
	}
	orders := make([][]string, len(s.snap.Groups))
	for i, g := range s.snap.Groups {
		if !g.AllConfirmed() {
			return transitionErr(fmt.Errorf("%s: %w", g.Label, brackets.ErrGroupNotReady))
		}
		for _, row := range ComputeStandings(s.registrationOrder(g.TeamIDs), g.Matches) {
			orders[i] = append(orders[i], row.TeamID)
		}
	}
	entrants, err := brackets.Qualifiers(orders, brackets.QualifiersPerGroup)
	if err != nil {
		return transitionErr(err)
	}
	firstRound, err := s.bracket.FirstRound(entrants, s.rng, s.nextSeq)
	if err != nil {
		return transitionErr(err)
	}
	s.snap.Bracket = models.Bracket{Matches: firstRound}
	return nil
}

func (s *TournamentService) award() error {
	champion, err := brackets.Champion(&s.snap.Bracket)
	if err != nil {
		return &StateTransitionError{From: models.PhaseEliminationStage, To: models.PhaseAwarded, Err: err}
	}
	podium := s.podium(champion)
	s.refreshTeamStats()
	ApplyTournamentResults(s.snap, podium, s.rng)
	s.snap.Podium = podium
	s.snap.ChampionID = champion
	return nil
}

// podium ranks the champion 1st, the final loser 2nd and both semi-final losers 3rd.
func (s *TournamentService) podium(champion string) []models.PodiumEntry {
	podium := []models.PodiumEntry{{Position: 1, TeamID: champion}}
	last := s.snap.Bracket.LastRound()
	for _, m := range s.snap.Bracket.Round(last) {
		if loser := m.Loser(); loser != "" {
			podium = append(podium, models.PodiumEntry{Position: 2, TeamID: loser})
		}
	}
	if last > 1 {
		for _, m := range s.snap.Bracket.Round(last - 1) {
			if loser := m.Loser(); loser != "" {
				podium = append(podium, models.PodiumEntry{Position: 3, TeamID: loser})
			}
		}
	}
	return podium
}

// Reset starts a new tournament in setup, keeping the athlete roster and its stats.
func (s *TournamentService) Reset() {
	athletes := s.snap.Athletes
	fresh := models.NewSnapshot()
	fresh.Athletes = athletes
	*s.snap = *fresh
	s.lastSchedule = nil
	s.touch()
}

// --- matches ---

// SubmitMatchResult confirms a match. Group results may be corrected until the
// group stage ends; elimination results are final once the next round exists.
func (s *TournamentService) SubmitMatchResult(matchID string, sets []models.SetScore) (*models.Match, error) {
	m := s.snap.MatchByID(matchID)
	if m == nil {
		return nil, ErrMatchNotFound
	}
	if m.Bye {
		return nil, invalid("match_id", ErrByeMatch)
	}
	phase := s.snap.Phase
	switch m.Phase {
	case models.PhaseGroup:
		if phase != models.PhaseGroupStage {
			return nil, &StateTransitionError{From: phase, Err: ErrWrongPhaseForMatch}
		}
	case models.PhaseElimination:
		if phase != models.PhaseEliminationStage {
			return nil, &StateTransitionError{From: phase, Err: ErrWrongPhaseForMatch}
		}
		if m.Confirmed && m.Round < s.snap.Bracket.LastRound() {
			return nil, &StateTransitionError{From: phase, Err: ErrResultLocked}
		}
	}

	if err := ResolveMatch(s.snap.Config, m, sets); err != nil {
		return nil, err
	}
	m.ConfirmedSeq = s.nextSeq()
	s.refreshTeamStats()
	if m.Phase == models.PhaseElimination {
		if err := s.extendBracket(); err != nil {
			return nil, err
		}
	}
	s.touch()
	return m, nil
}

// SimulateMatch confirms a match with randomly played sets.
func (s *TournamentService) SimulateMatch(matchID string) (*models.Match, error) {
	return s.SubmitMatchResult(matchID, SimulateSets(s.rng, s.snap.Config))
}

// extendBracket adds the next round once the current one is fully confirmed.
func (s *TournamentService) extendBracket() error {
	round := s.snap.Bracket.Round(s.snap.Bracket.LastRound())
	for _, m := range round {
		if !m.Confirmed {
			return nil
		}
	}
	if len(round) == 1 && !round[0].Bye {
		return nil
	}
	next, err := s.bracket.NextRound(round, s.nextSeq)
	if err != nil {
		return fmt.Errorf("build next elimination round: %w", err)
	}
	s.snap.Bracket.Matches = append(s.snap.Bracket.Matches, next...)
	return nil
}

func (s *TournamentService) refreshTeamStats() {
	stats := TeamStats(s.snap.AllMatches())
	for _, t := range s.snap.Teams {
		t.Stats = stats[t.ID]
	}
}

func (s *TournamentService) nextSeq() int {
	s.snap.ConfirmSeq++
	return s.snap.ConfirmSeq
}

// --- queries ---

func (s *TournamentService) GroupStandings(groupIndex int) ([]models.Standing, error) {
	if groupIndex < 0 || groupIndex >= len(s.snap.Groups) {
		return nil, ErrGroupNotFound
	}
	g := s.snap.Groups[groupIndex]
	rows := ComputeStandings(s.registrationOrder(g.TeamIDs), g.Matches)
	for i := range rows {
		rows[i].TeamName = s.TeamName(rows[i].TeamID)
	}
	return rows, nil
}

func (s *TournamentService) Bracket() []BracketRound {
	last := s.snap.Bracket.LastRound()
	rounds := make([]BracketRound, 0, last)
	for r := 1; r <= last; r++ {
		rounds = append(rounds, BracketRound{Round: r, Matches: s.snap.Bracket.Round(r)})
	}
	return rounds
}

func (s *TournamentService) Ranking() []models.RankingEntry {
	return BuildRanking(s.snap.Athletes, len(s.snap.Teams))
}

func (s *TournamentService) Trophies(athleteID string) ([]models.TrophyStatus, error) {
	a := s.snap.AthleteByID(athleteID)
	if a == nil {
		return nil, ErrAthleteNotFound
	}
	return EvaluateTrophies(a.Stats), nil
}

func (s *TournamentService) AthleteProfile(athleteID string) (*AthleteProfile, error) {
	a := s.snap.AthleteByID(athleteID)
	if a == nil {
		return nil, ErrAthleteNotFound
	}
	rating := Rating(a.Stats)
	profile := &AthleteProfile{
		Athlete:  a,
		Team:     s.snap.TeamOf(athleteID),
		Rating:   rating,
		Card:     CardTierFor(rating),
		Trophies: EvaluateTrophies(a.Stats),
	}
	for _, e := range s.Ranking() {
		if e.AthleteID == athleteID {
			entry := e
			profile.Ranking = &entry
			break
		}
	}
	return profile, nil
}

// registrationOrder sorts team ids the way the teams were registered. Unknown
// ids go last in their given order.
func (s *TournamentService) registrationOrder(teamIDs []string) []string {
	rank := make(map[string]int, len(s.snap.Teams))
	for i, t := range s.snap.Teams {
		rank[t.ID] = i
	}
	ordered := slices.Clone(teamIDs)
	slices.SortStableFunc(ordered, func(a, b string) int {
		ra, okA := rank[a]
		rb, okB := rank[b]
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	return ordered
}

// TeamName falls back to the id for unknown teams.
func (s *TournamentService) TeamName(teamID string) string {
	if t := s.snap.TeamByID(teamID); t != nil {
		return t.Name
	}
	return teamID
}

func (s *TournamentService) requireSetup() error {
	if s.snap.Phase != models.PhaseSetup {
		return &StateTransitionError{From: s.snap.Phase, Err: ErrSetupOnly}
	}
	return nil
}

func (s *TournamentService) touch() {
	s.snap.UpdatedAt = s.now().UTC()
}
