package handler

import (
	"net/http"

	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"github.com/ucin-dev/workload-tracker/backend/internal/scoring"
)

// SubmitBurnoutInventory records the actor's one-time 22-item inventory.
// A second submission is refused with the timestamp of the first.
func (h *Handler) SubmitBurnoutInventory(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var req struct {
		Answers []int32 `json:"answers" validate:"required,len=22"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := scoring.ScoreBurnout(req.Answers)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	submission := &domain.BurnoutSubmission{
		StaffMemberID: actor.StaffMemberID,
		Answers:       req.Answers,

		ExhaustionTotal:        result.ExhaustionTotal,
		DepersonalizationTotal: result.DepersonalizationTotal,
		AccomplishmentTotal:    result.AccomplishmentTotal,
		ExhaustionLevel:        result.ExhaustionLevel,
		DepersonalizationLevel: result.DepersonalizationLevel,
		AccomplishmentLevel:    result.AccomplishmentLevel,
	}

	if err := h.repository.CreateBurnoutSubmission(submission); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "burnout inventory submitted", submission)
}

func (h *Handler) GetMyBurnoutSubmission(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	submission, err := h.repository.GetBurnoutSubmissionByStaffMember(actor.StaffMemberID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "burnout submission fetched", submission)
}
