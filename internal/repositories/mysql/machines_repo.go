// internal/repositories/mysql/machines_repo.go
// Repo de snapshot das máquinas: carrega a máquina e as coleções
// associadas (leituras, paradas, apontamentos, abastecimentos).
// O núcleo de cálculo nunca toca o banco; só recebe estes snapshots.

package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/denilsonjj/sistema-erp-sub001/internal/models"
)

type MachineRepo struct{ DB *sql.DB }

type MachineFilter struct {
	Prefix   string
	Status   string
	Statuses []string // filtro IN; ignorado quando vazio
	Limit    int
	Offset   int
}

const machineColumns = `
	id, prefix, name, model, brand, hours, monthly_hours, status,
	COALESCE(DATE_FORMAT(status_change_date, '%Y-%m-%d'), ''),
	COALESCE(TIME_FORMAT(last_status_change_time, '%H:%i'), '')`

// List devolve os snapshots completos da frota.
func (r *MachineRepo) List(ctx context.Context, f MachineFilter) ([]models.Machine, error) {
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	q := `SELECT` + machineColumns + ` FROM machines WHERE 1=1`
	args := []any{}
	if f.Prefix != "" {
		q += ` AND prefix LIKE ?`
		args = append(args, "%"+f.Prefix+"%")
	}
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, f.Status)
	}
	if len(f.Statuses) > 0 {
		q += ` AND status IN (` + placeholders(len(f.Statuses)) + `)`
		for _, s := range f.Statuses {
			args = append(args, s)
		}
	}
	q += ` ORDER BY prefix ASC LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query machines: %w", err)
	}
	defer rows.Close()

	var out []models.Machine
	for rows.Next() {
		m, err := scanMachine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows machines: %w", err)
	}

	for i := range out {
		if err := r.loadCollections(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Get devolve o snapshot de uma máquina; util.NotFound fica a cargo do
// handler (aqui devolvemos sql.ErrNoRows embrulhado).
func (r *MachineRepo) Get(ctx context.Context, id string) (models.Machine, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT`+machineColumns+` FROM machines WHERE id = ?`, id)
	m, err := scanMachine(row)
	if err != nil {
		return models.Machine{}, fmt.Errorf("get machine %s: %w", id, err)
	}
	if err := r.loadCollections(ctx, &m); err != nil {
		return models.Machine{}, err
	}
	return m, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanMachine(rs rowScanner) (models.Machine, error) {
	var m models.Machine
	var model, brand, status sql.NullString
	if err := rs.Scan(
		&m.ID, &m.Prefix, &m.Name, &model, &brand,
		&m.Hours, &m.MonthlyHours, &status,
		&m.StatusChangeDate, &m.LastStatusChangeTime,
	); err != nil {
		return models.Machine{}, fmt.Errorf("scan machine: %w", err)
	}
	m.Model = model.String
	m.Brand = brand.String
	m.Status = models.ParseStatus(status.String)
	return m, nil
}

func (r *MachineRepo) loadCollections(ctx context.Context, m *models.Machine) error {
	var err error
	if m.Readings, err = r.readings(ctx, m.ID); err != nil {
		return err
	}
	if m.StoppageHistory, err = r.stoppages(ctx, m.ID); err != nil {
		return err
	}
	if m.PendingIssues, err = r.pendingIssues(ctx, m.ID); err != nil {
		return err
	}
	if m.ResolvedIssues, err = r.resolvedIssues(ctx, m.ID); err != nil {
		return err
	}
	if m.SupplyLogs, err = r.supplyLogs(ctx, m.ID); err != nil {
		return err
	}
	return nil
}

func (r *MachineRepo) readings(ctx context.Context, id string) ([]models.Reading, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT COALESCE(DATE_FORMAT(reading_date, '%Y-%m-%d'), ''), value, COALESCE(status, '')
		FROM machine_readings
		WHERE machine_id = ?
		ORDER BY reading_date ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	var out []models.Reading
	for rows.Next() {
		var rd models.Reading
		var status string
		if err := rows.Scan(&rd.Date, &rd.Value, &status); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		rd.Status = models.ParseStatus(status)
		out = append(out, rd)
	}
	return out, rows.Err()
}

func (r *MachineRepo) stoppages(ctx context.Context, id string) ([]models.StoppageRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT
			COALESCE(DATE_FORMAT(start_date, '%Y-%m-%d'), ''),
			COALESCE(TIME_FORMAT(start_time, '%H:%i'), ''),
			COALESCE(DATE_FORMAT(end_date, '%Y-%m-%d'), ''),
			COALESCE(TIME_FORMAT(end_time, '%H:%i'), ''),
			reason, COALESCE(description, '')
		FROM stoppage_history
		WHERE machine_id = ?
		ORDER BY start_date ASC, start_time ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("query stoppages: %w", err)
	}
	defer rows.Close()

	var out []models.StoppageRecord
	for rows.Next() {
		var s models.StoppageRecord
		var reason string
		if err := rows.Scan(&s.StartDate, &s.StartTime, &s.EndDate, &s.EndTime, &reason, &s.Description); err != nil {
			return nil, fmt.Errorf("scan stoppage: %w", err)
		}
		s.Reason = models.ParseStatus(reason)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *MachineRepo) pendingIssues(ctx context.Context, id string) ([]models.PendingIssue, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id,
			COALESCE(DATE_FORMAT(issue_date, '%Y-%m-%d'), ''),
			COALESCE(TIME_FORMAT(issue_time, '%H:%i'), ''),
			description, COALESCE(reported_by, '')
		FROM pending_issues
		WHERE machine_id = ?
		ORDER BY issue_date ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("query pending issues: %w", err)
	}
	defer rows.Close()

	var out []models.PendingIssue
	for rows.Next() {
		var p models.PendingIssue
		if err := rows.Scan(&p.ID, &p.Date, &p.Time, &p.Description, &p.ReportedBy); err != nil {
			return nil, fmt.Errorf("scan pending issue: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *MachineRepo) resolvedIssues(ctx context.Context, id string) ([]models.ResolvedIssue, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id,
			COALESCE(DATE_FORMAT(original_date, '%Y-%m-%d'), ''),
			COALESCE(TIME_FORMAT(original_time, '%H:%i'), ''),
			COALESCE(DATE_FORMAT(resolved_date, '%Y-%m-%d'), ''),
			COALESCE(TIME_FORMAT(resolved_time, '%H:%i'), ''),
			description, COALESCE(reported_by, '')
		FROM resolved_issues
		WHERE machine_id = ?
		ORDER BY resolved_date ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("query resolved issues: %w", err)
	}
	defer rows.Close()

	var out []models.ResolvedIssue
	for rows.Next() {
		var ri models.ResolvedIssue
		if err := rows.Scan(&ri.ID, &ri.OriginalDate, &ri.OriginalTime,
			&ri.ResolvedDate, &ri.ResolvedTime, &ri.Description, &ri.ReportedBy); err != nil {
			return nil, fmt.Errorf("scan resolved issue: %w", err)
		}
		out = append(out, ri)
	}
	return out, rows.Err()
}

func (r *MachineRepo) supplyLogs(ctx context.Context, id string) ([]models.SupplyLog, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT COALESCE(DATE_FORMAT(log_ts, '%Y-%m-%dT%H:%i:%s'), ''),
			COALESCE(diesel, 0), COALESCE(arla, 0), lubrication
		FROM supply_logs
		WHERE machine_id = ?
		ORDER BY log_ts ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("query supply logs: %w", err)
	}
	defer rows.Close()

	var out []models.SupplyLog
	for rows.Next() {
		var l models.SupplyLog
		var lub sql.NullString
		if err := rows.Scan(&l.Date, &l.Diesel, &l.Arla, &lub); err != nil {
			return nil, fmt.Errorf("scan supply log: %w", err)
		}
		if lub.Valid && lub.String != "" {
			var parsed models.Lubrication
			// JSON ilegível não derruba o snapshot; o registro sai sem lubrificação
			if err := json.Unmarshal([]byte(lub.String), &parsed); err == nil {
				l.Lubrication = &parsed
			}
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
