// internal/server/router.go
// Servidor de relatórios (porta separada, autenticado por API key)

package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/denilsonjj/sistema-erp-sub001/internal/middleware"
	mysqlrepo "github.com/denilsonjj/sistema-erp-sub001/internal/repositories/mysql"
	"github.com/denilsonjj/sistema-erp-sub001/internal/services"
	"github.com/denilsonjj/sistema-erp-sub001/internal/util"
)

// NewReportRouter monta o router chi dos relatórios internos. Os
// relatórios batem direto nos repos; não passam pelo servidor principal.
func NewReportRouter(db *sql.DB, capacityLiters, criticalLiters float64) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Auth)

	machines := &mysqlrepo.MachineRepo{DB: db}
	fuel := &mysqlrepo.FuelRepo{DB: db}
	clk := util.RealClock{}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/relatorios", func(cr chi.Router) {
		cr.Get("/paradas", func(w http.ResponseWriter, req *http.Request) {
			ctx, cancel := context.WithTimeout(req.Context(), 10*time.Second)
			defer cancel()

			// ?status=... (repetível) restringe o recorte do relatório
			filter := mysqlrepo.MachineFilter{Statuses: req.URL.Query()["status"]}
			all, err := machines.List(ctx, filter)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}
			stopped := services.FilterStopped(all)
			rep := services.ComputeDowntimeMetrics(stopped, all, clk.Now())

			writeJSON(w, rep)
		})

		cr.Get("/tanque", func(w http.ResponseWriter, req *http.Request) {
			ctx, cancel := context.WithTimeout(req.Context(), 10*time.Second)
			defer cancel()

			deliveries, err := fuel.Deliveries(ctx)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}
			logs, err := fuel.DieselConsumption(ctx)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}

			writeJSON(w, services.ComputeTankStatus(deliveries, logs, capacityLiters, criticalLiters))
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
