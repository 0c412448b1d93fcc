package utils

import (
	"regexp"

	"github.com/ucin-dev/workload-tracker/backend/internal/catalog"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"github.com/ucin-dev/workload-tracker/backend/internal/timefmt"
)

// patient references follow the national-ID form: 7-8 digits, a dash and a
// verification digit (or K)
var patientReferenceRe = regexp.MustCompile(`^\d{7,8}-[\dkK]$`)

func IsValidPatientReference(reference string) bool {
	return patientReferenceRe.MatchString(reference)
}

// ValidateEntries checks a procedure entry batch against the service line's
// catalog: the batch must be non-empty, every name whitelisted, durations in
// canonical HH:MM, and a well-formed patient reference present wherever the
// procedure requires one.
func ValidateEntries(line *catalog.Line, entries []domain.ProcedureEntry) error {
	if len(entries) == 0 {
		return domain.NewValidationError("entry batch must not be empty")
	}

	for i, entry := range entries {
		if !line.IsValidProcedure(entry.Name) {
			return domain.NewValidationError("entry %d: %q is not a valid %s procedure", i+1, entry.Name, line.ServiceLine)
		}

		if !timefmt.IsCanonical(entry.Duration) {
			return domain.NewValidationError("entry %d: duration %q must be HH:MM", i+1, entry.Duration)
		}

		hasPatient := entry.PatientReference != nil && *entry.PatientReference != ""
		if line.RequiresPatient(entry.Name) && !hasPatient {
			return domain.NewValidationError("entry %d: %q requires a patient reference", i+1, entry.Name)
		}
		if hasPatient && !IsValidPatientReference(*entry.PatientReference) {
			return domain.NewValidationError("entry %d: malformed patient reference %q", i+1, *entry.PatientReference)
		}
	}

	return nil
}
