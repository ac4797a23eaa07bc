// internal/repositories/mysql/fuel_repo.go
// Repo do tanque de diesel: entregas e consumo lançado nos abastecimentos

package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/denilsonjj/sistema-erp-sub001/internal/models"
)

type FuelRepo struct{ DB *sql.DB }

// Deliveries lista as entregas de diesel registradas para o tanque.
func (r *FuelRepo) Deliveries(ctx context.Context) ([]models.FuelDelivery, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT COALESCE(DATE_FORMAT(delivery_date, '%Y-%m-%d'), ''), liters, COALESCE(supplier, '')
		FROM fuel_deliveries
		ORDER BY delivery_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("query fuel deliveries: %w", err)
	}
	defer rows.Close()

	var out []models.FuelDelivery
	for rows.Next() {
		var d models.FuelDelivery
		if err := rows.Scan(&d.Date, &d.Liters, &d.Supplier); err != nil {
			return nil, fmt.Errorf("scan fuel delivery: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DieselConsumption lista o diesel lançado em todos os abastecimentos
// da frota (só data e litros; o razão não precisa do restante).
func (r *FuelRepo) DieselConsumption(ctx context.Context) ([]models.SupplyLog, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT COALESCE(DATE_FORMAT(log_ts, '%Y-%m-%dT%H:%i:%s'), ''), COALESCE(diesel, 0)
		FROM supply_logs
		WHERE diesel > 0
		ORDER BY log_ts ASC`)
	if err != nil {
		return nil, fmt.Errorf("query diesel consumption: %w", err)
	}
	defer rows.Close()

	var out []models.SupplyLog
	for rows.Next() {
		var l models.SupplyLog
		if err := rows.Scan(&l.Date, &l.Diesel); err != nil {
			return nil, fmt.Errorf("scan diesel consumption: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
