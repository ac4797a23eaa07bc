// internal/handlers/http/fuel_handler.go
// Estado do tanque de diesel

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	mysqlrepo "github.com/denilsonjj/sistema-erp-sub001/internal/repositories/mysql"
	"github.com/denilsonjj/sistema-erp-sub001/internal/services"
)

// inject do app
var (
	fuelRepo     *mysqlrepo.FuelRepo
	tankCapacity float64
	tankCritical float64
)

func SetFuelRepo(r *mysqlrepo.FuelRepo) { fuelRepo = r }

func SetTankLimits(capacityLiters, criticalLiters float64) {
	tankCapacity = capacityLiters
	tankCritical = criticalLiters
}

func TankStatusHandler(w http.ResponseWriter, r *http.Request) {
	if fuelRepo == nil {
		http.Error(w, "fuel repo not configured", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 6*time.Second)
	defer cancel()

	deliveries, err := fuelRepo.Deliveries(ctx)
	if err != nil {
		writeDBError(w, err)
		return
	}
	consumption, err := fuelRepo.DieselConsumption(ctx)
	if err != nil {
		writeDBError(w, err)
		return
	}

	st := services.ComputeTankStatus(deliveries, consumption, tankCapacity, tankCritical)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}
