// internal/app/routes.go
package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	hh "github.com/denilsonjj/sistema-erp-sub001/internal/handlers/http"
	"github.com/denilsonjj/sistema-erp-sub001/internal/middleware"
)

// RegisterRoutes amarra todos os endpoints do servidor principal.
func RegisterRoutes(r *mux.Router) {
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)

	r.HandleFunc("/healthz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/readyz", hh.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/login", hh.LoginHandler).Methods(http.MethodPost, http.MethodOptions)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/maquinas", hh.ListMachinesHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/maquinas/{id}/linha-do-tempo", hh.MachineTimelineHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/frota/paradas", hh.FleetDowntimeHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/frota/linha-do-tempo", hh.FleetTimelineHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/frota/resumo", hh.FleetSummaryHandler).Methods(http.MethodGet, http.MethodPost, http.MethodOptions)
	api.HandleFunc("/frota/resumo/stream", hh.FleetSummaryStreamHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tanque", hh.TankStatusHandler).Methods(http.MethodGet, http.MethodOptions)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminJWTAuth)
	admin.HandleFunc("/maquinas", hh.AdminListMachines).Methods(http.MethodGet)
}
