package models

// TeamStandingStats are per-tournament and start at zero for every new team.
type TeamStandingStats struct {
	MatchPoints    int `json:"match_points"`
	Wins           int `json:"wins"`
	Losses         int `json:"losses"`
	SetsWon        int `json:"sets_won"`
	SetsLost       int `json:"sets_lost"`
	PointsScored   int `json:"points_scored"`
	PointsConceded int `json:"points_conceded"`
}

func (s TeamStandingStats) SetDifference() int {
	return s.SetsWon - s.SetsLost
}

func (s TeamStandingStats) PointDifference() int {
	return s.PointsScored - s.PointsConceded
}

type Team struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	AthleteIDs []string          `json:"athlete_ids"`
	Stats      TeamStandingStats `json:"stats"`
}

func (t *Team) HasAthlete(athleteID string) bool {
	for _, id := range t.AthleteIDs {
		if id == athleteID {
			return true
		}
	}
	return false
}
