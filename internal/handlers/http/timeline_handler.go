// internal/handlers/http/timeline_handler.go
// Linha do tempo normalizada, por máquina e da frota inteira

package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/denilsonjj/sistema-erp-sub001/internal/metrics"
	mysqlrepo "github.com/denilsonjj/sistema-erp-sub001/internal/repositories/mysql"
	"github.com/denilsonjj/sistema-erp-sub001/internal/services"
	"github.com/denilsonjj/sistema-erp-sub001/internal/util"
)

func MachineTimelineHandler(w http.ResponseWriter, r *http.Request) {
	if machineRepo == nil {
		http.Error(w, "machine repo not configured", http.StatusServiceUnavailable)
		return
	}
	id := mux.Vars(r)["id"]
	if id == "" {
		writeAppError(w, http.StatusBadRequest, util.BadInput("machine id required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 6*time.Second)
	defer cancel()

	m, err := machineRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeAppError(w, http.StatusNotFound, util.NotFound("machine not found"))
			return
		}
		writeDBError(w, err)
		return
	}

	events := services.BuildTimeline(m, clk.Now(), limitParam(r))
	metrics.TimelineBuilds.WithLabelValues("machine").Inc()
	metrics.TimelineEvents.Add(float64(len(events)))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"machine_id": m.ID,
		"prefix":     m.Prefix,
		"events":     events,
	})
}

func FleetTimelineHandler(w http.ResponseWriter, r *http.Request) {
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

	events := services.BuildFleetTimeline(all, clk.Now(), limitParam(r))
	metrics.TimelineBuilds.WithLabelValues("fleet").Inc()
	metrics.TimelineEvents.Add(float64(len(events)))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"events": events})
}

func limitParam(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
