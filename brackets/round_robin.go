package brackets

import (
	"fmt"
	"slices"

	"github.com/Dosada05/beach-tournament/models"
)

type RoundRobinGenerator struct {
	newID IDFunc
}

func NewRoundRobinGenerator(newID IDFunc) *RoundRobinGenerator {
	if newID == nil {
		newID = NewMatchID
	}
	return &RoundRobinGenerator{newID: newID}
}

// GroupSchedule is the result of distributing teams into groups.
// Seeded is false when seeding was not requested or fell back to a shuffle.
type GroupSchedule struct {
	Groups  []*models.Group
	Seeded  bool
	SeedErr error
}

// ScheduleGroups distributes teamIDs into groupCount groups by striding
// (team i goes to group i mod K) and generates every group's matches.
// With a nil seed the order is a uniform shuffle; otherwise teams are ordered by
// their best member's ranking position, unranked last. A failing seed degrades to
// the shuffle and is reported in SeedErr.
func (g *RoundRobinGenerator) ScheduleGroups(teamIDs []string, groupCount int, seed SeedFunc, rng RandSource) (*GroupSchedule, error) {
	if groupCount < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrTooFewGroups, groupCount)
	}
	if len(teamIDs) < groupCount*2 {
		return nil, fmt.Errorf("%w: %d teams for %d groups", ErrNotEnoughTeams, len(teamIDs), groupCount)
	}

	schedule := &GroupSchedule{}
	order := slices.Clone(teamIDs)

	if seed != nil {
		positions, err := seed(order)
		if err != nil {
			schedule.SeedErr = err
		} else {
			seedOrder(order, positions)
			schedule.Seeded = true
		}
	}
	if !schedule.Seeded {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	schedule.Groups = make([]*models.Group, groupCount)
	for i := range schedule.Groups {
		schedule.Groups[i] = &models.Group{Label: models.GroupLabel(i), TeamIDs: []string{}}
	}
	for i, teamID := range order {
		grp := schedule.Groups[i%groupCount]
		grp.TeamIDs = append(grp.TeamIDs, teamID)
	}
	for i, grp := range schedule.Groups {
		grp.Matches = g.GroupMatches(i, grp.TeamIDs)
	}
	return schedule, nil
}

// GroupMatches pairs every unordered couple of teams exactly once.
func (g *RoundRobinGenerator) GroupMatches(groupIndex int, teamIDs []string) []*models.Match {
	matches := make([]*models.Match, 0, len(teamIDs)*(len(teamIDs)-1)/2)
	for i := 0; i < len(teamIDs); i++ {
		for j := i + 1; j < len(teamIDs); j++ {
			idx := groupIndex
			matches = append(matches, &models.Match{
				ID:    g.newID(),
				TeamA: teamIDs[i],
				TeamB: teamIDs[j],
				Phase: models.PhaseGroup,
				Group: &idx,
				Sets:  []models.SetScore{},
			})
		}
	}
	return matches
}

// seedOrder sorts stably by ranking position; missing teams go last.
func seedOrder(order []string, positions map[string]int) {
	slices.SortStableFunc(order, func(a, b string) int {
		pa, okA := positions[a]
		pb, okB := positions[b]
		switch {
		case okA && okB:
			return pa - pb
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}
