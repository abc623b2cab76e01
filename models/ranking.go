package models

// CardTier is the collectible card band derived from the rating.
type CardTier string

const (
	CardBronzeCommon CardTier = "bronze_common"
	CardBronzeRare   CardTier = "bronze_rare"
	CardSilverCommon CardTier = "silver_common"
	CardSilverRare   CardTier = "silver_rare"
	CardGoldCommon   CardTier = "gold_common"
	CardGoldRare     CardTier = "gold_rare"
	CardHero         CardTier = "hero"
	CardLegend       CardTier = "legend"
	CardOlympus      CardTier = "olympus"
)

// RankingEntry is recomputed from Athlete.Stats on every query.
type RankingEntry struct {
	Position       int         `json:"position"`
	AthleteID      string      `json:"athlete_id"`
	Name           string      `json:"name"`
	Score          int         `json:"score"`
	Tournaments    int         `json:"tournaments"`
	Wins           int         `json:"wins"`
	Losses         int         `json:"losses"`
	SetsWon        int         `json:"sets_won"`
	SetsLost       int         `json:"sets_lost"`
	PointsScored   int         `json:"points_scored"`
	PointsConceded int         `json:"points_conceded"`
	PointsPerSet   float64     `json:"points_per_set"`
	SetRatio       float64     `json:"set_ratio"`
	WinRate        float64     `json:"win_rate"`
	Gold           int         `json:"gold"`
	Silver         int         `json:"silver"`
	Bronze         int         `json:"bronze"`
	History        []Placement `json:"history"`
	Rating         int         `json:"rating"`
	Card           CardTier    `json:"card"`
}
