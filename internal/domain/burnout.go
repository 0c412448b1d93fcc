package domain

import (
	"time"
)

// BurnoutSubmission is a staff member's one-time 22-item inventory response,
// reduced to three dimension totals with independently banded levels.
type BurnoutSubmission struct {
	ID            int64     `json:"id"`
	StaffMemberID int64     `json:"staffMemberId"`
	SubmittedAt   time.Time `json:"submittedAt"`
	Answers       []int32   `json:"answers"` // 22 answers, each in 0..6

	ExhaustionTotal        int32        `json:"exhaustionTotal"`
	DepersonalizationTotal int32        `json:"depersonalizationTotal"`
	AccomplishmentTotal    int32        `json:"accomplishmentTotal"`
	ExhaustionLevel        CategoryBand `json:"exhaustionLevel"`
	DepersonalizationLevel CategoryBand `json:"depersonalizationLevel"`
	AccomplishmentLevel    CategoryBand `json:"accomplishmentLevel"`
}
