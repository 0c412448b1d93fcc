package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

func (h *Handler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.repository.GetAllPatients()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "patients fetched", patients)
}

func (h *Handler) ResolvePatient(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	patient, err := h.repository.GetPatientByReference(reference)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "patient fetched", patient)
}

func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reference string `json:"reference" validate:"required,patientref"`
		FullName  string `json:"fullName" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	patient := &domain.Patient{
		Reference: req.Reference,
		FullName:  req.FullName,
		IsActive:  true,
	}

	if err := h.repository.CreatePatient(patient); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "patient registered", patient)
}
