package handler

import (
	"errors"
	"net/http"

	"github.com/workforce-hub/hrms/backend/internal/domain"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	h.successResponse(w, r, "Profile retrieved", myInfo)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8,max=50,strongpassword"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.VerifyPassword(myInfo.LoginID, req.OldPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.errorResponse(w, r, http.StatusBadRequest, "Old password is incorrect")
			return
		}
		h.domainError(w, r, err)
		return
	}

	if _, err := h.repository.UpdateUser(myInfo.LoginID, domain.UserPatch{Password: &req.NewPassword}); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "Password updated successfully", nil)
}
