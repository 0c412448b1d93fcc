package scoring

import (
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

// NumBurnoutItems is the number of answers in the burnout inventory.
const NumBurnoutItems = 22

// MaxBurnoutAnswer is the highest valid raw answer.
const MaxBurnoutAnswer = 6

// Item groupings are 1-based inventory item numbers. The groupings are
// fixed and non-overlapping; items outside all three lists do not count
// toward any dimension.
var (
	exhaustionItems        = []int{1, 2, 3, 6, 8, 13, 14, 16, 20}
	depersonalizationItems = []int{5, 10, 11, 15, 22}
	accomplishmentItems    = []int{4, 7, 9, 12, 17, 18, 19, 21}
)

var (
	exhaustionThresholds        = Thresholds{Medium: 27, High: 41}
	depersonalizationThresholds = Thresholds{Medium: 9, High: 15}
	// Accomplishment runs on an inverted scale: a higher raw score is the
	// better outcome, so low raw totals band as "low" (the concerning end).
	accomplishmentThresholds = Thresholds{Medium: 31, High: 39}
)

// BurnoutResult is the derived part of a burnout submission.
type BurnoutResult struct {
	ExhaustionTotal        int32
	DepersonalizationTotal int32
	AccomplishmentTotal    int32

	ExhaustionLevel        domain.CategoryBand
	DepersonalizationLevel domain.CategoryBand
	AccomplishmentLevel    domain.CategoryBand
}

// ScoreBurnout reduces the 22 raw answers (each in 0..6) to the three
// dimension totals and bands each dimension independently.
func ScoreBurnout(answers []int32) (BurnoutResult, error) {
	if len(answers) != NumBurnoutItems {
		return BurnoutResult{}, domain.NewValidationError("expected %d answers, got %d", NumBurnoutItems, len(answers))
	}

	for i, answer := range answers {
		if answer < 0 || answer > MaxBurnoutAnswer {
			return BurnoutResult{}, domain.NewValidationError("answer %d must be between 0 and %d, got %d", i+1, MaxBurnoutAnswer, answer)
		}
	}

	result := BurnoutResult{
		ExhaustionTotal:        sumItems(answers, exhaustionItems),
		DepersonalizationTotal: sumItems(answers, depersonalizationItems),
		AccomplishmentTotal:    sumItems(answers, accomplishmentItems),
	}

	result.ExhaustionLevel = Band(result.ExhaustionTotal, exhaustionThresholds)
	result.DepersonalizationLevel = Band(result.DepersonalizationTotal, depersonalizationThresholds)
	result.AccomplishmentLevel = Band(result.AccomplishmentTotal, accomplishmentThresholds)

	return result, nil
}

func sumItems(answers []int32, items []int) int32 {
	var total int32
	for _, item := range items {
		total += answers[item-1]
	}
	return total
}
