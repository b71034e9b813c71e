package baseline

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/storecast/storecast/internal/rest"
)

type BaselineDTO struct {
	Day    string  `json:"day"`
	Amount float64 `json:"amount"`
}

type amountRequest struct {
	Amount *float64 `json:"amount"`
}

type BaselineHandler struct {
	service Service
}

func NewBaselineHandler(service Service) *BaselineHandler {
	return &BaselineHandler{service: service}
}

func (h *BaselineHandler) ListBaselines(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	baselines, err := h.service.ListAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(baselinesToDTO(baselines)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BaselineHandler) GetBaseline(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	day := mux.Vars(r)["day"]

	b, err := h.service.Get(r.Context(), day)
	if err != nil {
		if errors.Is(err, ErrUnknownDay) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Unknown weekday name",
				Details: "Day must be one of Monday through Saturday",
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(baselineToDTO(b)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BaselineHandler) UpsertBaseline(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	day := mux.Vars(r)["day"]

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		return
	}
	if req.Amount == nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Missing amount",
		})
		return
	}

	b, err := h.service.Upsert(r.Context(), day, decimal.NewFromFloat(*req.Amount))
	if err != nil {
		if errors.Is(err, ErrUnknownDay) || errors.Is(err, ErrInvalidAmount) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: err.Error(),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(baselineToDTO(b)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BaselineHandler) BulkUpsertBaselines(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dtos []BaselineDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		return
	}

	entries := make([]Baseline, 0, len(dtos))
	for _, dto := range dtos {
		entries = append(entries, Baseline{Day: dto.Day, Amount: decimal.NewFromFloat(dto.Amount)})
	}

	baselines, err := h.service.BulkUpsert(r.Context(), entries)
	if err != nil {
		if errors.Is(err, ErrUnknownDay) || errors.Is(err, ErrInvalidAmount) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: err.Error(),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(baselinesToDTO(baselines)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func baselineToDTO(b Baseline) BaselineDTO {
	return BaselineDTO{Day: b.Day, Amount: b.Amount.InexactFloat64()}
}

func baselinesToDTO(baselines []Baseline) []BaselineDTO {
	dtos := make([]BaselineDTO, 0, len(baselines))
	for _, b := range baselines {
		dtos = append(dtos, baselineToDTO(b))
	}
	return dtos
}
