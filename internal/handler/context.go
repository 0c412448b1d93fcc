package handler

type ctxKey string

const (
	RoleCtxKey        ctxKey = "role"
	SubCtxKey         ctxKey = "sub"
	MyInfoCtx         ctxKey = "myInfo"
	StaffMemberCtx    ctxKey = "staffMember"
	ShiftSessionCtx   ctxKey = "shiftSession"
	CategorizationCtx ctxKey = "categorization"
)
