package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

func TestScoreCategorization(t *testing.T) {
	tests := []struct {
		name      string
		items     []int32
		wantTotal int32
		wantBand  domain.CategoryBand
		wantLabel string
	}{
		{"all minimum", []int32{1, 1, 1, 1, 1}, 5, domain.BandLow, "0-1"},
		{"lower medium edge", []int32{1, 1, 1, 1, 3}, 7, domain.BandMedium, "2-3 + Night"},
		{"upper medium edge", []int32{1, 1, 1, 3, 3}, 9, domain.BandMedium, "2-3 + Night"},
		{"lower high edge", []int32{1, 1, 3, 3, 3}, 11, domain.BandHigh, "3-4 + Night"},
		{"all maximum", []int32{5, 5, 5, 5, 5}, 25, domain.BandHigh, "3-4 + Night"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScoreCategorization(tt.items)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.TotalScore)
			assert.Equal(t, tt.wantBand, result.Category)
			assert.Equal(t, tt.wantLabel, result.WorkloadLabel)
		})
	}
}

func TestScoreCategorizationRejectsBadInput(t *testing.T) {
	var validationErr *domain.ValidationError

	_, err := ScoreCategorization([]int32{1, 3, 5})
	require.ErrorAs(t, err, &validationErr)

	_, err = ScoreCategorization([]int32{1, 2, 3, 4, 5})
	require.ErrorAs(t, err, &validationErr)

	_, err = ScoreCategorization([]int32{1, 1, 1, 1, 0})
	require.ErrorAs(t, err, &validationErr)
}

func TestScoreCategorizationIsDeterministic(t *testing.T) {
	items := []int32{3, 5, 1, 3, 5}

	first, err := ScoreCategorization(items)
	require.NoError(t, err)
	second, err := ScoreCategorization(items)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
