package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucin-dev/workload-tracker/backend/internal/catalog"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

func ptr(s string) *string {
	return &s
}

func TestIsValidPatientReference(t *testing.T) {
	valid := []string{"1234567-8", "12345678-9", "12345678-k", "12345678-K"}
	for _, ref := range valid {
		assert.True(t, IsValidPatientReference(ref), ref)
	}

	invalid := []string{"", "123456-7", "123456789-0", "12345678", "12345678-", "abcdefg-1", "12345678-x"}
	for _, ref := range invalid {
		assert.False(t, IsValidPatientReference(ref), ref)
	}
}

func TestValidateEntries(t *testing.T) {
	nursing, ok := catalog.ForLine(domain.ServiceLineNursing)
	require.True(t, ok)

	tests := []struct {
		name    string
		entries []domain.ProcedureEntry
		wantErr string
	}{
		{
			name: "valid batch",
			entries: []domain.ProcedureEntry{
				{Name: "wound care", Duration: "01:30", PatientReference: ptr("1234567-8")},
				{Name: "shift handover", Duration: "00:45"},
			},
		},
		{
			name:    "empty batch",
			entries: nil,
			wantErr: "must not be empty",
		},
		{
			name: "unknown procedure",
			entries: []domain.ProcedureEntry{
				{Name: "coffee break", Duration: "00:15"},
			},
			wantErr: "not a valid",
		},
		{
			name: "tolerant duration rejected at the boundary",
			entries: []domain.ProcedureEntry{
				{Name: "shift handover", Duration: "1h 30m"},
			},
			wantErr: "must be HH:MM",
		},
		{
			name: "missing required patient",
			entries: []domain.ProcedureEntry{
				{Name: "wound care", Duration: "01:30"},
			},
			wantErr: "requires a patient reference",
		},
		{
			name: "malformed patient reference",
			entries: []domain.ProcedureEntry{
				{Name: "wound care", Duration: "01:30", PatientReference: ptr("not-a-ref")},
			},
			wantErr: "malformed patient reference",
		},
		{
			name: "optional patient still validated when present",
			entries: []domain.ProcedureEntry{
				{Name: "shift handover", Duration: "00:30", PatientReference: ptr("bad")},
			},
			wantErr: "malformed patient reference",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntries(nursing, tt.entries)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
