package models

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// ConditionKind tags the statistic a trophy condition reads.
type ConditionKind string

const (
	CondTournamentsAtLeast ConditionKind = "tournaments_at_least"
	CondWinsAtLeast        ConditionKind = "wins_at_least"
	CondPodiumsAtLeast     ConditionKind = "podiums_at_least"
	CondSetsWonAtLeast     ConditionKind = "sets_won_at_least"
	CondPointsPerSetAbove  ConditionKind = "points_per_set_above"
	CondWinRateAbove       ConditionKind = "win_rate_above"
)

// Condition is a declarative unlock rule. MinSample guards the ratio kinds:
// sets played for points-per-set, tournaments for win rate.
type Condition struct {
	Kind      ConditionKind `json:"kind"`
	Threshold float64       `json:"threshold"`
	MinSample int           `json:"min_sample,omitempty"`
}

type Trophy struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Rarity      Rarity    `json:"rarity"`
	Condition   Condition `json:"condition"`
}

// TrophyStatus pairs a catalog entry with its current unlock state.
type TrophyStatus struct {
	Trophy   Trophy `json:"trophy"`
	Unlocked bool   `json:"unlocked"`
}

// TrophyCatalog is static configuration and must not be modified at runtime.
var TrophyCatalog = []Trophy{
	{ID: "rookie", Name: "Rookie", Description: "Play your first tournament", Rarity: RarityCommon,
		Condition: Condition{Kind: CondTournamentsAtLeast, Threshold: 1}},
	{ID: "amateur", Name: "Amateur", Description: "Play 5 tournaments", Rarity: RarityCommon,
		Condition: Condition{Kind: CondTournamentsAtLeast, Threshold: 5}},
	{ID: "debutant", Name: "Debutant", Description: "Reach a podium (top 3)", Rarity: RarityUncommon,
		Condition: Condition{Kind: CondPodiumsAtLeast, Threshold: 1}},
	{ID: "expert", Name: "Expert", Description: "Win your first tournament", Rarity: RarityUncommon,
		Condition: Condition{Kind: CondWinsAtLeast, Threshold: 1}},
	{ID: "champion", Name: "Champion", Description: "Win 3 tournaments", Rarity: RarityRare,
		Condition: Condition{Kind: CondWinsAtLeast, Threshold: 3}},
	{ID: "hero", Name: "Hero", Description: "Win 5 tournaments", Rarity: RarityRare,
		Condition: Condition{Kind: CondWinsAtLeast, Threshold: 5}},
	{ID: "legend", Name: "Legend", Description: "Win 10 tournaments", Rarity: RarityEpic,
		Condition: Condition{Kind: CondWinsAtLeast, Threshold: 10}},
	{ID: "olympus", Name: "Olympus", Description: "Collect 20 medals", Rarity: RarityLegendary,
		Condition: Condition{Kind: CondPodiumsAtLeast, Threshold: 20}},
	{ID: "iron_man", Name: "Iron Man", Description: "Win 50 sets in your career", Rarity: RarityRare,
		Condition: Condition{Kind: CondSetsWonAtLeast, Threshold: 50}},
	{ID: "sniper", Name: "Sniper", Description: "Score more than 2.0 points per set (min 10 sets)", Rarity: RarityUncommon,
		Condition: Condition{Kind: CondPointsPerSetAbove, Threshold: 2.0, MinSample: 10}},
	{ID: "veteran", Name: "Veteran", Description: "Play 10 tournaments", Rarity: RarityRare,
		Condition: Condition{Kind: CondTournamentsAtLeast, Threshold: 10}},
	{ID: "dominator", Name: "Dominator", Description: "Win rate above 80% (min 5 tournaments)", Rarity: RarityEpic,
		Condition: Condition{Kind: CondWinRateAbove, Threshold: 80, MinSample: 5}},
}
