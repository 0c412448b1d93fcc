package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"github.com/ucin-dev/workload-tracker/backend/internal/scoring"
)

func (h *Handler) CreateCategorization(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var req struct {
		PatientReference string  `json:"patientReference" validate:"required,patientref"`
		AssessmentDate   string  `json:"assessmentDate" validate:"required,datetime=2006-01-02"`
		Items            []int32 `json:"items" validate:"required,len=5"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := h.repository.GetPatientByReference(req.PatientReference); err != nil {
		h.domainError(w, r, err)
		return
	}

	result, err := scoring.ScoreCategorization(req.Items)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	assessmentDate, _ := time.Parse(dateLayout, req.AssessmentDate)

	categorization := &domain.PatientCategorization{
		PatientReference: req.PatientReference,
		StaffMemberID:    actor.StaffMemberID,
		AssessmentDate:   assessmentDate,
		Items:            req.Items,
		TotalScore:       result.TotalScore,
		Category:         result.Category,
		WorkloadLabel:    result.WorkloadLabel,
	}

	if err := h.repository.CreateCategorization(categorization); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "patient categorization registered", categorization)
}

func (h *Handler) GetCategorization(w http.ResponseWriter, r *http.Request) {
	categorization := r.Context().Value(CategorizationCtx).(*domain.PatientCategorization)
	h.successResponse(w, r, "patient categorization fetched", categorization)
}

// UpdateCategorization replaces the five sub-scores and re-derives every
// aggregate from scratch. The identity of the snapshot (patient, date,
// author) never changes on edit.
func (h *Handler) UpdateCategorization(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	categorization := r.Context().Value(CategorizationCtx).(*domain.PatientCategorization)
	if !actor.CanManage(categorization.StaffMemberID) {
		h.domainError(w, r, &domain.ForbiddenError{Message: "only the author or an administrator may edit a categorization"})
		return
	}

	var req struct {
		Items []int32 `json:"items" validate:"required,len=5"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := scoring.ScoreCategorization(req.Items)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	categorization.Items = req.Items
	categorization.TotalScore = result.TotalScore
	categorization.Category = result.Category
	categorization.WorkloadLabel = result.WorkloadLabel

	if err := h.repository.UpdateCategorization(categorization); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "patient categorization updated", categorization)
}

func (h *Handler) GetPatientCategorizations(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	if _, err := h.repository.GetPatientByReference(reference); err != nil {
		h.domainError(w, r, err)
		return
	}

	categorizations, err := h.repository.GetCategorizationsByPatient(reference)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "patient categorizations fetched", categorizations)
}
