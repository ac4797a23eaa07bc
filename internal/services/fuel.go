// internal/services/fuel.go
// Razão do tanque de diesel: entregas menos consumo, contra a capacidade

package services

import (
	"github.com/shopspring/decimal"

	"github.com/denilsonjj/sistema-erp-sub001/internal/models"
)

// TankStatus é o estado corrente do tanque para os painéis.
type TankStatus struct {
	CurrentLevel  float64 `json:"current_level"` // litros
	Percentage    float64 `json:"percentage"`    // 0–100
	BelowCritical bool    `json:"below_critical"`
}

// ComputeTankStatus soma entregas, subtrai o diesel consumido nos
// abastecimentos e compara com capacidade e limite crítico. A soma usa
// decimal para não acumular erro de ponto flutuante no razão.
func ComputeTankStatus(deliveries []models.FuelDelivery, logs []models.SupplyLog, capacityLiters, criticalLiters float64) TankStatus {
	level := decimal.Zero
	for _, d := range deliveries {
		level = level.Add(decimal.NewFromFloat(d.Liters))
	}
	for _, l := range logs {
		level = level.Sub(decimal.NewFromFloat(l.Diesel))
	}

	cur, _ := level.Float64()
	st := TankStatus{CurrentLevel: cur}
	if capacityLiters > 0 {
		pct := cur / capacityLiters * 100
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		st.Percentage = pct
	}
	st.BelowCritical = cur < criticalLiters
	return st
}
