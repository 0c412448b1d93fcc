package domain

import (
	"time"
)

// CategoryBand is the 3-band level shared by the categorization rubric, the
// burnout dimensions and the staffing-ratio banding.
type CategoryBand string

const (
	BandLow    CategoryBand = "low"
	BandMedium CategoryBand = "medium"
	BandHigh   CategoryBand = "high"
)

// PatientCategorization is a scored workload snapshot for one patient on one
// date. The five sub-scores are caller-supplied; total, category and label
// are always derived server-side.
type PatientCategorization struct {
	ID               int64        `json:"id"`
	PatientReference string       `json:"patientReference"`
	StaffMemberID    int64        `json:"staffMemberId"`
	AssessmentDate   time.Time    `json:"assessmentDate"`
	Items            []int32      `json:"items"` // 5 sub-scores, each in {1,3,5}
	TotalScore       int32        `json:"totalScore"`
	Category         CategoryBand `json:"category"`
	WorkloadLabel    string       `json:"workloadLabel"`
	CreatedAt        time.Time    `json:"createdAt"`
	Version          int32        `json:"-"`
}
