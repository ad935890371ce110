package user_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ms-parcels/internal/logger"
	"ms-parcels/internal/models"
	"ms-parcels/internal/utils"
)

type UserService interface {
	RecordLogin(user models.User) (*models.UpsertResult, error)
}

type Handler struct {
	UserService UserService
	Logger      *logger.Logger
}

// RecordLogin handles the login ping. The same endpoint serves first
// sign-in (insert) and returning sign-in (last_login refresh).
func (h *Handler) RecordLogin(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if user.Email == "" {
		utils.WriteError(w, http.StatusBadRequest, "email is required", nil)
		return
	}

	result, err := h.UserService.RecordLogin(user)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("USER", fmt.Sprintf("Failed to record login for %s: %v", user.Email, err))
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to record login", err)
		return
	}

	message := "last login updated"
	if result.Created {
		message = "user created"
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(message, result))
}
