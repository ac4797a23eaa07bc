// internal/handlers/http/downtime_handler.go
// Relatório de paradas da frota (por máquina + agregado)

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/denilsonjj/sistema-erp-sub001/internal/metrics"
	mysqlrepo "github.com/denilsonjj/sistema-erp-sub001/internal/repositories/mysql"
	"github.com/denilsonjj/sistema-erp-sub001/internal/services"
	"github.com/denilsonjj/sistema-erp-sub001/internal/util"
)

// inject do app
var (
	machineRepo *mysqlrepo.MachineRepo
	clk         util.Clock = util.RealClock{}
)

func SetMachineRepo(r *mysqlrepo.MachineRepo) { machineRepo = r }

// SetClock troca o relógio injetado (testes usam util.FixedClock).
func SetClock(c util.Clock) { clk = c }

func FleetDowntimeHandler(w http.ResponseWriter, r *http.Request) {
	if machineRepo == nil {
		http.Error(w, "machine repo not configured", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 6*time.Second)
	defer cancel()

	all, err := machineRepo.List(ctx, mysqlrepo.MachineFilter{})
	if err != nil {
		writeDBError(w, err)
		return
	}

	// "now" capturado uma única vez por requisição
	now := clk.Now()
	stopped := services.FilterStopped(all)
	rep := services.ComputeDowntimeMetrics(stopped, all, now)

	field := services.SortField(strings.TrimSpace(r.URL.Query().Get("sort")))
	if field == "" {
		field = services.SortByDaysStopped
	}
	asc := strings.EqualFold(r.URL.Query().Get("order"), "asc")
	services.SortDowntimeRows(rep.PerMachine, field, asc)

	metrics.DowntimeComputations.Inc()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rep)
}

func writeAppError(w http.ResponseWriter, status int, e util.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   e.Code,
		"message": e.Message,
	})
}

func writeDBError(w http.ResponseWriter, err error) {
	writeAppError(w, http.StatusBadRequest, util.AppError{Code: "db_error", Message: err.Error()})
}
