// internal/handlers/http/machines_handler.go
// Listagem de máquinas (snapshot resumido)

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	mysqlrepo "github.com/denilsonjj/sistema-erp-sub001/internal/repositories/mysql"
	"github.com/denilsonjj/sistema-erp-sub001/internal/services"
)

type machineSummary struct {
	ID            string `json:"id"`
	Prefix        string `json:"prefix"`
	Name          string `json:"name"`
	Model         string `json:"model,omitempty"`
	Brand         string `json:"brand,omitempty"`
	Status        string `json:"status"`
	Stopped       bool   `json:"stopped"`
	PendingIssues int    `json:"pending_issues"`
}

func ListMachinesHandler(w http.ResponseWriter, r *http.Request) {
	if machineRepo == nil {
		http.Error(w, "machine repo not configured", http.StatusServiceUnavailable)
		return
	}

	q := r.URL.Query()
	f := mysqlrepo.MachineFilter{
		Prefix: strings.TrimSpace(q.Get("prefix")),
		Status: strings.TrimSpace(q.Get("status")),
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			f.Offset = n
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 6*time.Second)
	defer cancel()

	machines, err := machineRepo.List(ctx, f)
	if err != nil {
		writeDBError(w, err)
		return
	}

	out := make([]machineSummary, 0, len(machines))
	for _, m := range machines {
		out = append(out, machineSummary{
			ID:            m.ID,
			Prefix:        m.Prefix,
			Name:          m.Name,
			Model:         m.Model,
			Brand:         m.Brand,
			Status:        string(m.Status),
			Stopped:       services.IsStopped(m.Status),
			PendingIssues: len(m.PendingIssues),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
