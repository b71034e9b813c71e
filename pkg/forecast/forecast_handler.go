package forecast

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/storecast/storecast/internal/rest"
	"github.com/storecast/storecast/internal/utils"
)

type ProjectionEntryDTO struct {
	Date           string  `json:"date"`
	Day            string  `json:"day"`
	Amount         float64 `json:"amount"`
	IsOverride     bool    `json:"isOverride"`
	BaselineAmount float64 `json:"baselineAmount"`
}

type ForecastHandler struct {
	service Service
	loc     *time.Location
}

func NewForecastHandler(service Service, loc *time.Location) *ForecastHandler {
	return &ForecastHandler{
		service: service,
		loc:     loc,
	}
}

func (h *ForecastHandler) GetProjection(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	start, err := utils.ParseDate(r.URL.Query().Get("startDate"), h.loc)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid startDate format",
			Details: "Start date must be in YYYY-MM-DD format",
		})
		return
	}
	end, err := utils.ParseDate(r.URL.Query().Get("endDate"), h.loc)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid endDate format",
			Details: "End date must be in YYYY-MM-DD format",
		})
		return
	}

	entries, err := h.service.QueryProjection(r.Context(), start, end)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: err.Error(),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ProjectionEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, ProjectionEntryDTO{
			Date:           utils.FormatDate(entry.Date),
			Day:            entry.Day,
			Amount:         entry.Amount.InexactFloat64(),
			IsOverride:     entry.IsOverride,
			BaselineAmount: entry.BaselineAmount.InexactFloat64(),
		})
	}

	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
