package override

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/storecast/storecast/internal/rest"
	"github.com/storecast/storecast/internal/utils"
)

type OverrideDTO struct {
	Date    string   `json:"date"`
	Amount  *float64 `json:"amount"`
	Applied bool     `json:"applied"`
}

type OverrideHandler struct {
	service Service
	loc     *time.Location
}

func NewOverrideHandler(service Service, loc *time.Location) *OverrideHandler {
	return &OverrideHandler{
		service: service,
		loc:     loc,
	}
}

func (h *OverrideHandler) PutOverride(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var overrideRequest OverrideDTO
	if err := json.NewDecoder(r.Body).Decode(&overrideRequest); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		return
	}

	date, err := utils.ParseDate(overrideRequest.Date, h.loc)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "Date must be in YYYY-MM-DD format",
		})
		return
	}
	if overrideRequest.Amount == nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Missing amount",
		})
		return
	}

	storedOverride, err := h.service.Put(r.Context(), date, decimal.NewFromFloat(*overrideRequest.Amount))
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidDate) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: err.Error(),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(overrideToDTO(storedOverride)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *OverrideHandler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	overrides, err := h.service.ListAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	overridesDTO := make([]OverrideDTO, 0, len(overrides))
	for _, override := range overrides {
		overridesDTO = append(overridesDTO, overrideToDTO(override))
	}

	if err := json.NewEncoder(w).Encode(overridesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *OverrideHandler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	dateString := mux.Vars(r)["date"]
	date, err := utils.ParseDate(dateString, h.loc)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "Date must be in YYYY-MM-DD format",
		})
		return
	}

	if err := h.service.Delete(r.Context(), date); err != nil {
		if errors.Is(err, ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: err.Error(),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func overrideToDTO(override Override) OverrideDTO {
	amount := override.Amount.InexactFloat64()
	return OverrideDTO{
		Date:    utils.FormatDate(override.Date),
		Amount:  &amount,
		Applied: override.Applied,
	}
}
