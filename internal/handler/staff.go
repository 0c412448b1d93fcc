package handler

import (
	"net/http"

	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"github.com/ucin-dev/workload-tracker/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllStaffMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.repository.GetAllStaffMembers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff members fetched", members)
}

func (h *Handler) CreateStaffMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		FullName string `json:"fullName" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Role     string `json:"role" validate:"required,oneof=nurse kinesiologist administrator"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	password := utils.GenerateRandomPassword(h.config.NewStaff.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	staff := &domain.StaffMember{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         domain.Role(req.Role),
	}

	if err := h.repository.CreateStaffMember(staff); err != nil {
		h.domainError(w, r, err)
		return
	}

	// the welcome mail carries the generated password; fired after the
	// insert committed
	mailData := domain.WelcomeMailData{
		FullName: req.FullName,
		Username: req.Username,
		Password: password,
	}
	if err := h.publishMail("welcome", staff.Email, mailData); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff member created", staff)
}

func (h *Handler) GetStaffMember(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffMemberCtx).(*domain.StaffMember)
	h.successResponse(w, r, "staff member fetched", staff)
}

func (h *Handler) UpdateStaffMember(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffMemberCtx).(*domain.StaffMember)

	var req struct {
		Email    *string `json:"email" validate:"omitempty,email"`
		Role     *string `json:"role" validate:"omitempty,oneof=nurse kinesiologist administrator"`
		IsActive *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Role != nil {
		staff.Role = domain.Role(*req.Role)
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateStaffMember(staff); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff member updated", staff)
}

func (h *Handler) DeleteStaffMember(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffMemberCtx).(*domain.StaffMember)

	if staff.Username == h.config.InitialAdmin.Username {
		h.errorResponse(w, r, "the initial administrator cannot be removed")
		return
	}

	if err := h.repository.DeleteStaffMember(staff.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff member removed", nil)
}
