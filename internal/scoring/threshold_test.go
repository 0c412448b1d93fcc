package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

func TestBand(t *testing.T) {
	thresholds := Thresholds{Medium: 6, High: 11}

	assert.Equal(t, domain.BandLow, Band(0, thresholds))
	assert.Equal(t, domain.BandLow, Band(5, thresholds))
	assert.Equal(t, domain.BandMedium, Band(6, thresholds))
	assert.Equal(t, domain.BandMedium, Band(10, thresholds))
	assert.Equal(t, domain.BandHigh, Band(11, thresholds))
	assert.Equal(t, domain.BandHigh, Band(100, thresholds))
}
