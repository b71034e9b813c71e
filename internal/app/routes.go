package app

import (
	"github.com/gorilla/mux"
	"github.com/storecast/storecast/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Overrides
	r.HandleFunc("/api/override", deps.OverrideHandler.GetOverrides).Methods("GET")
	r.HandleFunc("/api/override", deps.OverrideHandler.PutOverride).Methods("PUT")
	r.HandleFunc("/api/override/{date}", deps.OverrideHandler.DeleteOverride).Methods("DELETE")

	// Baselines
	r.HandleFunc("/api/baseline", deps.BaselineHandler.ListBaselines).Methods("GET")
	r.HandleFunc("/api/baseline", deps.BaselineHandler.BulkUpsertBaselines).Methods("PUT")
	r.HandleFunc("/api/baseline/{day}", deps.BaselineHandler.GetBaseline).Methods("GET")
	r.HandleFunc("/api/baseline/{day}", deps.BaselineHandler.UpsertBaseline).Methods("PUT")

	// Forecast projection and manual application trigger
	r.HandleFunc("/api/forecast", deps.ForecastHandler.GetProjection).Queries("startDate", "{startDate}", "endDate", "{endDate}").Methods("GET")
	r.HandleFunc("/api/forecast/apply", deps.ApplyHandler.TriggerApplication).Methods("POST")

	// Day-weight distribution configuration
	r.HandleFunc("/api/distribution", deps.DistributionHandler.ListWeights).Methods("GET")
	r.HandleFunc("/api/distribution", deps.DistributionHandler.PutWeights).Methods("PUT")
}
