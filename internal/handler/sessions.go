package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ucin-dev/workload-tracker/backend/internal/catalog"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"github.com/ucin-dev/workload-tracker/backend/internal/report"
	"github.com/ucin-dev/workload-tracker/backend/internal/utils"
)

const dateLayout = "2006-01-02"

type entryRequest struct {
	Name             string  `json:"name" validate:"required"`
	Duration         string  `json:"duration" validate:"required"`
	PatientReference *string `json:"patientReference"`
	Note             *string `json:"note"`
}

func toEntries(reqs []entryRequest) []domain.ProcedureEntry {
	entries := make([]domain.ProcedureEntry, len(reqs))
	for i, req := range reqs {
		entries[i] = domain.ProcedureEntry{
			Name:             req.Name,
			Duration:         req.Duration,
			PatientReference: req.PatientReference,
			Note:             req.Note,
		}
	}
	return entries
}

// resolveEntryPatients checks every referenced patient against the patient
// directory before anything is written; an unknown reference surfaces as a
// NotFoundError, never a silently dangling row.
func (h *Handler) resolveEntryPatients(entries []domain.ProcedureEntry) error {
	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry.PatientReference == nil || *entry.PatientReference == "" {
			continue
		}
		reference := *entry.PatientReference
		if _, ok := seen[reference]; ok {
			continue
		}
		seen[reference] = struct{}{}

		if _, err := h.repository.GetPatientByReference(reference); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var req struct {
		StaffMemberID *int64         `json:"staffMemberId"`
		ServiceLine   string         `json:"serviceLine" validate:"required,oneof=nursing kinesiology"`
		ShiftKind     string         `json:"shiftKind" validate:"required"`
		ServiceDate   string         `json:"serviceDate" validate:"required,datetime=2006-01-02"`
		Entries       []entryRequest `json:"entries" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	line, _ := catalog.ForLine(domain.ServiceLine(req.ServiceLine))
	if !line.Sessioned {
		h.domainError(w, r, domain.NewValidationError("%s entries are appended by shift, not registered as explicit sessions", line.ServiceLine))
		return
	}
	if !line.AllowsShiftKind(domain.ShiftKind(req.ShiftKind)) {
		h.domainError(w, r, domain.NewValidationError("shift kind %q is not valid for the %s line", req.ShiftKind, line.ServiceLine))
		return
	}

	entries := toEntries(req.Entries)
	if err := utils.ValidateEntries(line, entries); err != nil {
		h.domainError(w, r, err)
		return
	}
	if err := h.resolveEntryPatients(entries); err != nil {
		h.domainError(w, r, err)
		return
	}

	// sessions are logged for oneself unless an administrator says otherwise
	ownerID := actor.StaffMemberID
	if req.StaffMemberID != nil {
		ownerID = *req.StaffMemberID
	}
	if !actor.CanManage(ownerID) {
		h.domainError(w, r, &domain.ForbiddenError{Message: "cannot register a session for another staff member"})
		return
	}

	serviceDate, _ := time.Parse(dateLayout, req.ServiceDate)

	session := &domain.ShiftSession{
		StaffMemberID: ownerID,
		ServiceLine:   line.ServiceLine,
		ShiftKind:     domain.ShiftKind(req.ShiftKind),
		ServiceDate:   serviceDate,
		Entries:       entries,
	}

	if err := h.repository.CreateSession(session); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift session registered", session)
}

// AppendEntriesByShift is the flat-entry variant: the session is addressed
// by its (staff, line, date, shift) tuple and created on first use, so
// cumulative totals can grow past a calendar day.
func (h *Handler) AppendEntriesByShift(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var req struct {
		ServiceLine string         `json:"serviceLine" validate:"required,oneof=nursing kinesiology"`
		ShiftKind   string         `json:"shiftKind" validate:"required"`
		ServiceDate string         `json:"serviceDate" validate:"required,datetime=2006-01-02"`
		Entries     []entryRequest `json:"entries" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	line, _ := catalog.ForLine(domain.ServiceLine(req.ServiceLine))
	if line.Sessioned {
		h.domainError(w, r, domain.NewValidationError("%s sessions are created explicitly, not by appending", line.ServiceLine))
		return
	}
	if !line.AllowsShiftKind(domain.ShiftKind(req.ShiftKind)) {
		h.domainError(w, r, domain.NewValidationError("shift kind %q is not valid for the %s line", req.ShiftKind, line.ServiceLine))
		return
	}

	entries := toEntries(req.Entries)
	if err := utils.ValidateEntries(line, entries); err != nil {
		h.domainError(w, r, err)
		return
	}
	if err := h.resolveEntryPatients(entries); err != nil {
		h.domainError(w, r, err)
		return
	}

	serviceDate, _ := time.Parse(dateLayout, req.ServiceDate)

	session, err := h.repository.ResolveOrCreateSession(actor.StaffMemberID, line.ServiceLine, domain.ShiftKind(req.ShiftKind), serviceDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.AddEntries(session.ID, entries); err != nil {
		h.domainError(w, r, err)
		return
	}

	session, err = h.repository.GetSessionByID(session.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "entries registered", session)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(ShiftSessionCtx).(*domain.ShiftSession)
	h.successResponse(w, r, "shift session fetched", session)
}

func (h *Handler) AddEntries(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	session := r.Context().Value(ShiftSessionCtx).(*domain.ShiftSession)
	if !actor.CanManage(session.StaffMemberID) {
		h.domainError(w, r, &domain.ForbiddenError{Message: "only the owner or an administrator may modify a session"})
		return
	}

	var req struct {
		Entries []entryRequest `json:"entries" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	line, _ := catalog.ForLine(session.ServiceLine)
	entries := toEntries(req.Entries)
	if err := utils.ValidateEntries(line, entries); err != nil {
		h.domainError(w, r, err)
		return
	}
	if err := h.resolveEntryPatients(entries); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.AddEntries(session.ID, entries); err != nil {
		h.domainError(w, r, err)
		return
	}

	session, err = h.repository.GetSessionByID(session.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "entries added", session)
}

func (h *Handler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	session := r.Context().Value(ShiftSessionCtx).(*domain.ShiftSession)
	if !actor.CanManage(session.StaffMemberID) {
		h.domainError(w, r, &domain.ForbiddenError{Message: "only the owner or an administrator may modify a session"})
		return
	}

	entryIDParam := chi.URLParam(r, "entryID")
	entryID, err := strconv.ParseInt(entryIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid entry id")
		return
	}

	if err := h.repository.RemoveEntry(session.ID, entryID); err != nil {
		h.domainError(w, r, err)
		return
	}

	session, err = h.repository.GetSessionByID(session.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "entry removed", session)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	session := r.Context().Value(ShiftSessionCtx).(*domain.ShiftSession)
	if !actor.CanManage(session.StaffMemberID) {
		h.domainError(w, r, &domain.ForbiddenError{Message: "only the owner or an administrator may delete a session"})
		return
	}

	if err := h.repository.DeleteSession(session.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift session deleted", nil)
}

func (h *Handler) GetMySessions(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	window := report.MonthWindow(time.Now())
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		from, err := time.Parse(dateLayout, fromParam)
		if err != nil {
			h.errorResponse(w, r, "invalid from date")
			return
		}
		window.From = from
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		to, err := time.Parse(dateLayout, toParam)
		if err != nil {
			h.errorResponse(w, r, "invalid to date")
			return
		}
		window.To = to
	}

	sessions, err := h.repository.GetSessionsByStaffMember(actor.StaffMemberID, window.From, window.To)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift sessions fetched", sessions)
}
