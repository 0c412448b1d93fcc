// Package scoring holds the deterministic classifiers: pure functions from
// raw sub-scores to 3-band levels. Nothing here touches storage.
package scoring

import (
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

// Thresholds is an ascending 3-band split: values below Medium are low,
// values from Medium up to but excluding High are medium, the rest high.
type Thresholds struct {
	Medium int32
	High   int32
}

// Band classifies value against t.
func Band(value int32, t Thresholds) domain.CategoryBand {
	switch {
	case value >= t.High:
		return domain.BandHigh
	case value >= t.Medium:
		return domain.BandMedium
	default:
		return domain.BandLow
	}
}
