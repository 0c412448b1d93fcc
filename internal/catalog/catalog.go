// Package catalog is the single source for per-service-line procedure
// whitelists, the "no patient needed" exclusion lists and the allowed shift
// kinds. Both entry validation and the listing endpoints read from here, so
// the two can never drift apart.
package catalog

import (
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

type Procedure struct {
	Name            string `json:"name"`
	RequiresPatient bool   `json:"requiresPatient"`
}

type Line struct {
	ServiceLine domain.ServiceLine `json:"serviceLine"`
	ShiftKinds  []domain.ShiftKind `json:"shiftKinds"`
	// Sessioned lines create their session explicitly and enforce one
	// session per (staff, line, date, shift). Non-sessioned lines synthesize the
	// session from that tuple on first append.
	Sessioned  bool        `json:"sessioned"`
	Procedures []Procedure `json:"procedures"`

	procedureIndex map[string]Procedure
}

var lines = map[domain.ServiceLine]*Line{
	domain.ServiceLineNursing: {
		ServiceLine: domain.ServiceLineNursing,
		ShiftKinds:  []domain.ShiftKind{domain.ShiftDay, domain.ShiftNight, domain.ShiftFullDay},
		Sessioned:   true,
		Procedures: []Procedure{
			{Name: "medication administration", RequiresPatient: true},
			{Name: "vital signs monitoring", RequiresPatient: true},
			{Name: "wound care", RequiresPatient: true},
			{Name: "endotracheal suctioning", RequiresPatient: true},
			{Name: "enteral feeding", RequiresPatient: true},
			{Name: "patient repositioning", RequiresPatient: true},
			{Name: "central line care", RequiresPatient: true},
			{Name: "blood sampling", RequiresPatient: true},
			{Name: "patient admission", RequiresPatient: true},
			{Name: "patient transfer", RequiresPatient: true},
			{Name: "shift handover", RequiresPatient: false},
			{Name: "administrative work", RequiresPatient: false},
			{Name: "equipment check", RequiresPatient: false},
			{Name: "unit restocking", RequiresPatient: false},
		},
	},
	domain.ServiceLineKinesiology: {
		ServiceLine: domain.ServiceLineKinesiology,
		ShiftKinds:  []domain.ShiftKind{domain.ShiftFullDay, domain.Shift22Hours, domain.Shift12Hours},
		Sessioned:   false,
		Procedures: []Procedure{
			{Name: "respiratory therapy", RequiresPatient: true},
			{Name: "chest physiotherapy", RequiresPatient: true},
			{Name: "ventilation weaning", RequiresPatient: true},
			{Name: "early mobilization", RequiresPatient: true},
			{Name: "passive mobilization", RequiresPatient: true},
			{Name: "airway clearance", RequiresPatient: true},
			{Name: "extubation support", RequiresPatient: true},
			{Name: "equipment maintenance", RequiresPatient: false},
			{Name: "team meeting", RequiresPatient: false},
		},
	},
}

func init() {
	for _, line := range lines {
		line.procedureIndex = make(map[string]Procedure, len(line.Procedures))
		for _, p := range line.Procedures {
			line.procedureIndex[p.Name] = p
		}
	}
}

// ForLine returns the catalog line for a service line.
func ForLine(serviceLine domain.ServiceLine) (*Line, bool) {
	line, ok := lines[serviceLine]
	return line, ok
}

// AllLines returns every catalog line, for the listing endpoint.
func AllLines() []*Line {
	return []*Line{
		lines[domain.ServiceLineNursing],
		lines[domain.ServiceLineKinesiology],
	}
}

func (l *Line) AllowsShiftKind(kind domain.ShiftKind) bool {
	for _, k := range l.ShiftKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (l *Line) IsValidProcedure(name string) bool {
	_, ok := l.procedureIndex[name]
	return ok
}

// RequiresPatient reports whether entries for the named procedure must carry
// a patient reference. Unknown names require one; validation rejects them
// before this matters.
func (l *Line) RequiresPatient(name string) bool {
	p, ok := l.procedureIndex[name]
	if !ok {
		return true
	}
	return p.RequiresPatient
}
