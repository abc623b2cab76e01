package models

// Standing is one computed row of a group table. It is never stored.
type Standing struct {
	Position        int    `json:"position"`
	TeamID          string `json:"team_id"`
	TeamName        string `json:"team_name,omitempty"`
	Played          int    `json:"played"`
	Wins            int    `json:"wins"`
	Losses          int    `json:"losses"`
	MatchPoints     int    `json:"match_points"`
	SetsWon         int    `json:"sets_won"`
	SetsLost        int    `json:"sets_lost"`
	SetDifference   int    `json:"set_difference"`
	PointsScored    int    `json:"points_scored"`
	PointsConceded  int    `json:"points_conceded"`
	PointDifference int    `json:"point_difference"`
}
