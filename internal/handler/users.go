package handler

import (
	"net/http"

	"github.com/workforce-hub/hrms/backend/internal/domain"
)

// GetUsers 带 email 或 loginId 参数时查找单个用户，否则返回全部用户
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	loginID := r.URL.Query().Get("loginId")

	if email != "" || loginID != "" {
		user, err := h.repository.FindUser(email, loginID)
		if err != nil {
			h.domainError(w, r, err)
			return
		}
		h.successResponse(w, r, "User found", user)
		return
	}

	users, err := h.repository.ListUsers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Users retrieved", users)
}

func (h *Handler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)
	h.successResponse(w, r, "User retrieved", user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       *string `json:"email" validate:"omitempty,email,max=100"`
		Name        *string `json:"name" validate:"omitempty,min=2,max=50,personname"`
		CompanyName *string `json:"companyName" validate:"omitempty,min=2,max=100,companyname"`
		Avatar      *string `json:"avatar" validate:"omitempty,max=4"`
		Phone       *string `json:"phone" validate:"omitempty,phone"`
		Logo        *string `json:"logo"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user := r.Context().Value(UserInfoCtx).(*domain.User)

	updated, err := h.repository.UpdateUser(user.LoginID, domain.UserPatch{
		Email:       req.Email,
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Avatar:      req.Avatar,
		Phone:       req.Phone,
		Logo:        req.Logo,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "User updated successfully", updated)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if err := h.repository.DeleteUser(user.LoginID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "User deleted successfully", nil)
}
