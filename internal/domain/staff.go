package domain

import (
	"time"
)

type Role string

const (
	RoleNurse         Role = "nurse"
	RoleKinesiologist Role = "kinesiologist"
	RoleAdministrator Role = "administrator"
)

type StaffMember struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// Actor is the caller identity handed to the engine on every mutating call.
// The engine performs no credential checks, only ownership checks.
type Actor struct {
	StaffMemberID int64
	Role          Role
}

// CanManage reports whether the actor may mutate records owned by ownerID.
func (a Actor) CanManage(ownerID int64) bool {
	return a.Role == RoleAdministrator || a.StaffMemberID == ownerID
}
