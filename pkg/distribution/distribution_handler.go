package distribution

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/storecast/storecast/internal/rest"
)

type DayWeightDTO struct {
	Day     string  `json:"day"`
	Percent float64 `json:"percent"`
}

type DistributionHandler struct {
	service Service
}

func NewDistributionHandler(service Service) *DistributionHandler {
	return &DistributionHandler{service: service}
}

func (h *DistributionHandler) ListWeights(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	weights, err := h.service.ListAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(weightsToDTO(weights)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *DistributionHandler) PutWeights(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dtos []DayWeightDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		return
	}

	weights := make([]DayWeight, 0, len(dtos))
	for _, dto := range dtos {
		weights = append(weights, DayWeight{Day: dto.Day, Percent: decimal.NewFromFloat(dto.Percent)})
	}

	stored, err := h.service.BulkUpsert(r.Context(), weights)
	if err != nil {
		if errors.Is(err, ErrUnknownDay) || errors.Is(err, ErrInvalidPercent) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: err.Error(),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(weightsToDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func weightsToDTO(weights []DayWeight) []DayWeightDTO {
	dtos := make([]DayWeightDTO, 0, len(weights))
	for _, weight := range weights {
		dtos = append(dtos, DayWeightDTO{Day: weight.Day, Percent: weight.Percent.InexactFloat64()})
	}
	return dtos
}
