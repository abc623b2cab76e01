package models

// SetFormat decides how many sets a match is played over.
type SetFormat string

const (
	FormatSingleSet   SetFormat = "single_set"
	FormatBestOfThree SetFormat = "best_of_three"
)

const (
	// TieBreakPoints is the limit of the deciding third set.
	TieBreakPoints = 15
	// CapMargin is how far past the limit a set may run before the margin rule is waived.
	CapMargin = 6

	DefaultMaxPoints = 21
	MinMaxPoints     = 11
	MaxMaxPoints     = 30
)

func (f SetFormat) Valid() bool {
	return f == FormatSingleSet || f == FormatBestOfThree
}

// SetsToWin is the number of sets that decides a match.
func (f SetFormat) SetsToWin() int {
	if f == FormatBestOfThree {
		return 2
	}
	return 1
}

// SetLimit returns the point limit of the set at index (0-based).
func (f SetFormat) SetLimit(index, maxPoints int) int {
	if f == FormatBestOfThree && index == 2 {
		return TieBreakPoints
	}
	return maxPoints
}
