package handler

type ContextKey string

var (
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	CompanyCtxKey   ContextKey = "company"
	MyInfoCtx       ContextKey = "myInfo"
	UserInfoCtx     ContextKey = "userInfo"
	EmployeeInfoCtx ContextKey = "employeeInfo"
)
