package parcel_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-parcels/internal/logger"
	"ms-parcels/internal/models"
	"ms-parcels/internal/utils"
)

type ParcelService interface {
	CreateParcel(parcel models.Parcel) (*models.Parcel, error)
	ListParcels(ownerEmail string) ([]models.Parcel, error)
	DeleteParcel(id string) (int64, error)
}

type Handler struct {
	ParcelService ParcelService
	Logger        *logger.Logger
}

// ListParcels serves the owner-scoped listing. The route is wrapped by
// the auth gateway, which has already checked that the email query
// parameter matches the verified principal.
func (h *Handler) ListParcels(w http.ResponseWriter, r *http.Request) {
	ownerEmail := r.URL.Query().Get("email")

	parcels, err := h.ParcelService.ListParcels(ownerEmail)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("PARCEL", fmt.Sprintf("Failed to list parcels for %s: %v", ownerEmail, err))
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch parcels", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if parcels == nil {
		parcels = []models.Parcel{}
	}
	json.NewEncoder(w).Encode(parcels)
}

func (h *Handler) CreateParcel(w http.ResponseWriter, r *http.Request) {
	var parcel models.Parcel
	if err := json.NewDecoder(r.Body).Decode(&parcel); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	created, err := h.ParcelService.CreateParcel(parcel)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("PARCEL", fmt.Sprintf("Failed to create parcel: %v", err))
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to create parcel", err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("parcel created", created))
}

func (h *Handler) DeleteParcel(w http.ResponseWriter, r *http.Request) {
	parcelID := chi.URLParam(r, "parcelID")

	removed, err := h.ParcelService.DeleteParcel(parcelID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("PARCEL", fmt.Sprintf("Failed to delete parcel %s: %v", parcelID, err))
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to delete parcel", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("parcel deleted", map[string]int64{
		"deletedCount": removed,
	}))
}
