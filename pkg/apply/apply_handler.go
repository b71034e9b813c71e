package apply

import (
	"encoding/json"
	"net/http"

	"github.com/storecast/storecast/internal/utils"
)

type FailureDTO struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type ResultDTO struct {
	WindowStart  string       `json:"windowStart"`
	WindowEnd    string       `json:"windowEnd"`
	AppliedCount int          `json:"appliedCount"`
	Failures     []FailureDTO `json:"failures"`
}

// ApplyHandler exposes the manual trigger used for operational replay; it runs
// the exact same core the background scheduler runs.
type ApplyHandler struct {
	service Service
}

func NewApplyHandler(service Service) *ApplyHandler {
	return &ApplyHandler{service: service}
}

func (h *ApplyHandler) TriggerApplication(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	result, err := h.service.RunWeeklyApplication(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(resultToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func resultToDTO(result Result) ResultDTO {
	failures := make([]FailureDTO, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, FailureDTO{
			Date:   utils.FormatDate(f.Date),
			Reason: f.Reason,
		})
	}
	return ResultDTO{
		WindowStart:  utils.FormatDate(result.Window.Start),
		WindowEnd:    utils.FormatDate(result.Window.End),
		AppliedCount: result.AppliedCount,
		Failures:     failures,
	}
}
