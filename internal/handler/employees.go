package handler

import (
	"net/http"

	"github.com/workforce-hub/hrms/backend/internal/domain"
	"github.com/workforce-hub/hrms/backend/internal/utils"
)

// GetEmployees 只返回本公司的员工，companyId 参数必须与会话一致
func (h *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	company := companyID(r)
	if q := r.URL.Query().Get("companyId"); q != "" && q != company {
		h.errorResponse(w, r, http.StatusForbidden, "Permission denied")
		return
	}

	employees, err := h.repository.ListEmployees(company)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Employees retrieved", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          string `json:"id" validate:"omitempty,max=64"`
		CompanyID   string `json:"companyId"`
		Name        string `json:"name" validate:"required,max=100"`
		Email       string `json:"email" validate:"required,email,max=100"`
		Department  string `json:"department" validate:"max=100"`
		Position    string `json:"position" validate:"max=100"`
		Status      string `json:"status" validate:"omitempty,oneof=present absent on-leave unknown"`
		Avatar      string `json:"avatar" validate:"max=4"`
		AvatarColor string `json:"avatarColor" validate:"omitempty,hexcolor"`
		Phone       string `json:"phone" validate:"omitempty,phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	company := companyID(r)
	if req.CompanyID != "" && req.CompanyID != company {
		h.errorResponse(w, r, http.StatusForbidden, "Permission denied")
		return
	}

	avatar := req.Avatar
	if avatar == "" {
		avatar = utils.AvatarFromName(req.Name)
	}

	employee, err := h.repository.CreateEmployee(&domain.Employee{
		ID:          req.ID,
		CompanyID:   company,
		Name:        req.Name,
		Email:       req.Email,
		Department:  req.Department,
		Position:    req.Position,
		Status:      domain.EmployeeStatus(req.Status),
		Avatar:      avatar,
		AvatarColor: req.AvatarColor,
		Phone:       req.Phone,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.createdResponse(w, r, "Employee created successfully", employee)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)
	h.successResponse(w, r, "Employee retrieved", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name" validate:"omitempty,max=100"`
		Email       *string `json:"email" validate:"omitempty,email,max=100"`
		Department  *string `json:"department" validate:"omitempty,max=100"`
		Position    *string `json:"position" validate:"omitempty,max=100"`
		Status      *string `json:"status" validate:"omitempty,oneof=present absent on-leave unknown"`
		Avatar      *string `json:"avatar" validate:"omitempty,max=4"`
		AvatarColor *string `json:"avatarColor" validate:"omitempty,hexcolor"`
		Phone       *string `json:"phone" validate:"omitempty,phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	patch := domain.EmployeePatch{
		Name:        req.Name,
		Email:       req.Email,
		Department:  req.Department,
		Position:    req.Position,
		Avatar:      req.Avatar,
		AvatarColor: req.AvatarColor,
		Phone:       req.Phone,
	}
	if req.Status != nil {
		status := domain.EmployeeStatus(*req.Status)
		patch.Status = &status
	}

	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	updated, err := h.repository.UpdateEmployee(employee.ID, patch)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "Employee updated successfully", updated)
}

type attendanceRequest struct {
	Time string `json:"time" validate:"omitempty,max=32"`
}

// readAttendanceTime 读取签到或签退时间，请求体为空时使用服务器当前时间
func (h *Handler) readAttendanceTime(r *http.Request) (string, error) {
	var req attendanceRequest
	if r.ContentLength != 0 {
		if err := h.readJSON(r, &req); err != nil {
			return "", err
		}
		if err := h.validate.Struct(req); err != nil {
			return "", err
		}
	}

	if req.Time == "" {
		return h.now().Format(h.config.Auth.CheckTimeFormat), nil
	}
	return req.Time, nil
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	checkInTime, err := h.readAttendanceTime(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	updated, err := h.repository.CheckIn(employee.ID, checkInTime)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "Checked in successfully", updated)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	checkOutTime, err := h.readAttendanceTime(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	updated, err := h.repository.CheckOut(employee.ID, checkOutTime)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "Checked out successfully", updated)
}
