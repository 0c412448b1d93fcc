package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

// answersWithTotal builds a full answer set where the given dimension items
// sum to total and every other item is 0. The groupings do not overlap, so
// the other two dimensions always total 0.
func answersWithTotal(t *testing.T, items []int, total int32) []int32 {
	t.Helper()

	answers := make([]int32, NumBurnoutItems)
	remaining := total
	for _, item := range items {
		v := remaining
		if v > MaxBurnoutAnswer {
			v = MaxBurnoutAnswer
		}
		answers[item-1] = v
		remaining -= v
	}
	require.Zero(t, remaining, "dimension cannot reach total %d", total)
	return answers
}

func TestScoreBurnoutExhaustionLevels(t *testing.T) {
	tests := []struct {
		total int32
		want  domain.CategoryBand
	}{
		{26, domain.BandLow},
		{27, domain.BandMedium},
		{40, domain.BandMedium},
		{41, domain.BandHigh},
	}

	for _, tt := range tests {
		result, err := ScoreBurnout(answersWithTotal(t, exhaustionItems, tt.total))
		require.NoError(t, err)
		assert.Equal(t, tt.total, result.ExhaustionTotal)
		assert.Equal(t, tt.want, result.ExhaustionLevel, "exhaustion total %d", tt.total)
	}
}

func TestScoreBurnoutDepersonalizationLevels(t *testing.T) {
	tests := []struct {
		total int32
		want  domain.CategoryBand
	}{
		{8, domain.BandLow},
		{9, domain.BandMedium},
		{14, domain.BandMedium},
		{15, domain.BandHigh},
	}

	for _, tt := range tests {
		result, err := ScoreBurnout(answersWithTotal(t, depersonalizationItems, tt.total))
		require.NoError(t, err)
		assert.Equal(t, tt.total, result.DepersonalizationTotal)
		assert.Equal(t, tt.want, result.DepersonalizationLevel, "depersonalization total %d", tt.total)
	}
}

func TestScoreBurnoutAccomplishmentInvertedScale(t *testing.T) {
	// higher raw accomplishment is the better outcome
	tests := []struct {
		total int32
		want  domain.CategoryBand
	}{
		{30, domain.BandLow},
		{31, domain.BandMedium},
		{38, domain.BandMedium},
		{39, domain.BandHigh},
	}

	for _, tt := range tests {
		result, err := ScoreBurnout(answersWithTotal(t, accomplishmentItems, tt.total))
		require.NoError(t, err)
		assert.Equal(t, tt.total, result.AccomplishmentTotal)
		assert.Equal(t, tt.want, result.AccomplishmentLevel, "accomplishment total %d", tt.total)
	}
}

func TestScoreBurnoutDimensionsAreIndependent(t *testing.T) {
	answers := make([]int32, NumBurnoutItems)
	for i := range answers {
		answers[i] = 6
	}

	result, err := ScoreBurnout(answers)
	require.NoError(t, err)

	assert.Equal(t, int32(6*len(exhaustionItems)), result.ExhaustionTotal)
	assert.Equal(t, int32(6*len(depersonalizationItems)), result.DepersonalizationTotal)
	assert.Equal(t, int32(6*len(accomplishmentItems)), result.AccomplishmentTotal)

	// the three groupings partition all 22 items without overlap
	assert.Equal(t, NumBurnoutItems, len(exhaustionItems)+len(depersonalizationItems)+len(accomplishmentItems))
}

func TestScoreBurnoutRejectsBadInput(t *testing.T) {
	var validationErr *domain.ValidationError

	_, err := ScoreBurnout(make([]int32, 21))
	require.ErrorAs(t, err, &validationErr)

	answers := make([]int32, NumBurnoutItems)
	answers[3] = 7
	_, err = ScoreBurnout(answers)
	require.ErrorAs(t, err, &validationErr)

	answers[3] = -1
	_, err = ScoreBurnout(answers)
	require.ErrorAs(t, err, &validationErr)
}

func TestScoreBurnoutIsDeterministic(t *testing.T) {
	answers := answersWithTotal(t, exhaustionItems, 33)

	first, err := ScoreBurnout(answers)
	require.NoError(t, err)
	second, err := ScoreBurnout(answers)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
