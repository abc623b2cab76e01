package models

import "strings"

// MaxAttribute is the ceiling of every skill attribute.
const MaxAttribute = 99

// SkillAttributes are only read by the rating formula.
type SkillAttributes struct {
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	Block     int `json:"block"`
	Reception int `json:"reception"`
	Serve     int `json:"serve"`
	Setting   int `json:"setting"`
}

// Values returns the attributes in rating-weight order.
func (a SkillAttributes) Values() [6]int {
	return [6]int{a.Attack, a.Defense, a.Block, a.Reception, a.Serve, a.Setting}
}

// Pointers exposes the attributes for in-place updates, same order as Values.
func (a *SkillAttributes) Pointers() [6]*int {
	return [6]*int{&a.Attack, &a.Defense, &a.Block, &a.Reception, &a.Serve, &a.Setting}
}

// Placement is one entry of an athlete's tournament history.
// TeamCount is zero for entries recorded before the field existed.
type Placement struct {
	Tournament string `json:"tournament"`
	Position   int    `json:"position"`
	TeamCount  int    `json:"team_count,omitempty"`
}

type LifetimeStats struct {
	Tournaments    int             `json:"tournaments"`
	Wins           int             `json:"wins"`
	Losses         int             `json:"losses"`
	SetsWon        int             `json:"sets_won"`
	SetsLost       int             `json:"sets_lost"`
	PointsScored   int             `json:"points_scored"`
	PointsConceded int             `json:"points_conceded"`
	History        []Placement     `json:"history"`
	Attributes     SkillAttributes `json:"attributes"`
}

// Medals counts podium finishes by position.
func (s LifetimeStats) Medals() (gold, silver, bronze int) {
	for _, p := range s.History {
		switch p.Position {
		case 1:
			gold++
		case 2:
			silver++
		case 3:
			bronze++
		}
	}
	return gold, silver, bronze
}

func (s LifetimeStats) Podiums() int {
	gold, silver, bronze := s.Medals()
	return gold + silver + bronze
}

func (s LifetimeStats) SetsPlayed() int {
	return s.SetsWon + s.SetsLost
}

// WinRate is a percentage; zero tournaments yields zero.
func (s LifetimeStats) WinRate() float64 {
	if s.Tournaments == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Tournaments) * 100
}

// PointsPerSet divides scored points by sets played (at least one).
func (s LifetimeStats) PointsPerSet() float64 {
	return float64(s.PointsScored) / float64(max(s.SetsPlayed(), 1))
}

// SetRatio divides sets won by sets lost (at least one).
func (s LifetimeStats) SetRatio() float64 {
	return float64(s.SetsWon) / float64(max(s.SetsLost, 1))
}

// Athlete belongs to the global roster and outlives single tournaments.
type Athlete struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name,omitempty"`
	Stats     LifetimeStats `json:"stats"`
}

// FullName joins first and last name the way the roster displays them.
func FullName(firstName, lastName string) string {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if lastName == "" {
		return firstName
	}
	return strings.TrimSpace(firstName + " " + lastName)
}

// ShortName is the first word of the display name, used for team auto-naming.
func (a *Athlete) ShortName() string {
	if a.FirstName != "" {
		return strings.Fields(a.FirstName)[0]
	}
	fields := strings.Fields(a.Name)
	if len(fields) == 0 {
		return a.Name
	}
	return fields[0]
}
