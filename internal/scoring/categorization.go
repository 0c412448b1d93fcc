package scoring

import (
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

// NumCategorizationItems is the number of sub-scores in the patient
// workload rubric.
const NumCategorizationItems = 5

var categorizationThresholds = Thresholds{Medium: 6, High: 11}

var workloadLabels = map[domain.CategoryBand]string{
	domain.BandLow:    "0-1",
	domain.BandMedium: "2-3 + Night",
	domain.BandHigh:   "3-4 + Night",
}

// CategorizationResult is the derived part of a patient categorization.
type CategorizationResult struct {
	TotalScore    int32
	Category      domain.CategoryBand
	WorkloadLabel string
}

// ScoreCategorization sums the five sub-scores (each constrained to 1, 3 or
// 5, so the total spans 5-25) and bands the total. It is a pure function of
// its input; creates and edits both call it, nothing is patched
// incrementally.
func ScoreCategorization(items []int32) (CategorizationResult, error) {
	if len(items) != NumCategorizationItems {
		return CategorizationResult{}, domain.NewValidationError("expected %d sub-scores, got %d", NumCategorizationItems, len(items))
	}

	var total int32
	for i, item := range items {
		if item != 1 && item != 3 && item != 5 {
			return CategorizationResult{}, domain.NewValidationError("sub-score %d must be 1, 3 or 5, got %d", i+1, item)
		}
		total += item
	}

	band := Band(total, categorizationThresholds)

	return CategorizationResult{
		TotalScore:    total,
		Category:      band,
		WorkloadLabel: workloadLabels[band],
	}, nil
}
