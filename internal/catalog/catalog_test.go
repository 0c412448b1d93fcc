package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

func TestForLine(t *testing.T) {
	nursing, ok := ForLine(domain.ServiceLineNursing)
	require.True(t, ok)
	assert.True(t, nursing.Sessioned)
	assert.ElementsMatch(t, []domain.ShiftKind{domain.ShiftDay, domain.ShiftNight, domain.ShiftFullDay}, nursing.ShiftKinds)

	kine, ok := ForLine(domain.ServiceLineKinesiology)
	require.True(t, ok)
	assert.False(t, kine.Sessioned)
	assert.ElementsMatch(t, []domain.ShiftKind{domain.ShiftFullDay, domain.Shift22Hours, domain.Shift12Hours}, kine.ShiftKinds)

	_, ok = ForLine(domain.ServiceLine("radiology"))
	assert.False(t, ok)
}

func TestAllowsShiftKind(t *testing.T) {
	nursing, _ := ForLine(domain.ServiceLineNursing)
	assert.True(t, nursing.AllowsShiftKind(domain.ShiftNight))
	assert.False(t, nursing.AllowsShiftKind(domain.Shift12Hours))

	kine, _ := ForLine(domain.ServiceLineKinesiology)
	assert.True(t, kine.AllowsShiftKind(domain.Shift12Hours))
	assert.False(t, kine.AllowsShiftKind(domain.ShiftNight))
}

func TestProcedureLookups(t *testing.T) {
	nursing, _ := ForLine(domain.ServiceLineNursing)

	assert.True(t, nursing.IsValidProcedure("wound care"))
	assert.False(t, nursing.IsValidProcedure("respiratory therapy")) // kinesiology-only
	assert.False(t, nursing.IsValidProcedure("coffee break"))

	assert.True(t, nursing.RequiresPatient("wound care"))
	assert.False(t, nursing.RequiresPatient("shift handover"))
	assert.True(t, nursing.RequiresPatient("unknown procedure"))
}

func TestAllLinesMatchesLookups(t *testing.T) {
	all := AllLines()
	require.Len(t, all, 2)

	// the listing endpoint and validation share one table
	for _, line := range all {
		for _, p := range line.Procedures {
			assert.True(t, line.IsValidProcedure(p.Name))
			assert.Equal(t, p.RequiresPatient, line.RequiresPatient(p.Name))
		}
	}
}
