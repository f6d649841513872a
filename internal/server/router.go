package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the API mux. Middleware is applied by the caller.
func Routes(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/water", h.HandleAddWater)
	mux.HandleFunc("GET /api/water/today", h.HandleTodayWater)

	mux.HandleFunc("POST /api/body-metrics", h.HandleAddBodyMetric)
	mux.HandleFunc("GET /api/body-metrics/latest", h.HandleLatestBodyMetric)

	mux.HandleFunc("POST /api/quick-logs", h.HandleAddQuickLog)
	mux.HandleFunc("GET /api/quick-logs", h.HandleListQuickLogs)

	mux.HandleFunc("GET /api/goals", h.HandleGoals)
	mux.HandleFunc("PUT /api/goals", h.HandleUpdateGoal)

	mux.HandleFunc("POST /api/session/start", h.HandleStartSession)
	mux.HandleFunc("POST /api/session/end", h.HandleEndSession)
	mux.HandleFunc("POST /api/session/heart-rate", h.HandleHeartRate)
	mux.HandleFunc("POST /api/session/energy", h.HandleEnergy)
	mux.HandleFunc("GET /api/session", h.HandleGetSession)

	mux.HandleFunc("GET /api/stats", h.HandleStats)
	mux.HandleFunc("GET /api/workouts", h.HandleWorkouts)

	mux.HandleFunc("POST /api/sync", h.HandleSync)
	mux.HandleFunc("GET /api/sync/export", h.HandleExport)

	mux.HandleFunc("DELETE /api/data", h.HandleClearData)

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
