package domain

import (
	"time"
)

// ServiceLine distinguishes the two registration variants: nursing shifts are
// explicit sessions created up front, kinesiology shifts are resolved from
// the (staff, line, date, shift) tuple on first append.
type ServiceLine string

const (
	ServiceLineNursing     ServiceLine = "nursing"
	ServiceLineKinesiology ServiceLine = "kinesiology"
)

type ShiftKind string

const (
	ShiftDay     ShiftKind = "day"
	ShiftNight   ShiftKind = "night"
	ShiftFullDay ShiftKind = "24h"
	Shift22Hours ShiftKind = "22h"
	Shift12Hours ShiftKind = "12h"
)

type ShiftSession struct {
	ID                 int64            `json:"id"`
	StaffMemberID      int64            `json:"staffMemberId"`
	ServiceLine        ServiceLine      `json:"serviceLine"`
	ShiftKind          ShiftKind        `json:"shiftKind"`
	ServiceDate        time.Time        `json:"serviceDate"` // calendar date, no time component
	CachedTotalMinutes int32            `json:"totalMinutes"`
	CreatedAt          time.Time        `json:"createdAt"`
	Version            int32            `json:"-"`
	Entries            []ProcedureEntry `json:"entries"`
}

type ProcedureEntry struct {
	ID               int64   `json:"id"`
	SessionID        int64   `json:"sessionId"`
	Name             string  `json:"name"`
	Duration         string  `json:"duration"` // canonical HH:MM
	PatientReference *string `json:"patientReference,omitempty"`
	Note             *string `json:"note,omitempty"`
}
