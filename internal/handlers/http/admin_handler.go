// internal/handlers/http/admin_handler.go
// Endpoints administrativos (atrás do JWT): snapshots completos

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	mysqlrepo "github.com/denilsonjj/sistema-erp-sub001/internal/repositories/mysql"
)

// AdminListMachines devolve os snapshots crus, com todas as coleções
// (leituras, paradas, apontamentos, abastecimentos). Pesado de
// propósito: é a visão de auditoria.
func AdminListMachines(w http.ResponseWriter, r *http.Request) {
	if machineRepo == nil {
		http.Error(w, "machine repo not configured", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	machines, err := machineRepo.List(ctx, mysqlrepo.MachineFilter{Limit: 500})
	if err != nil {
		writeDBError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"machines": machines})
}
