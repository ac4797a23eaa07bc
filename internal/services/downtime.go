// internal/services/downtime.go
// Agregação de paradas: métricas por máquina e da frota

package services

import (
	"math"
	"sort"
	"time"

	"github.com/denilsonjj/sistema-erp-sub001/internal/models"
)

// StoppedStatuses é o conjunto nomeado de status que contam como
// máquina parada para fins de disponibilidade.
var StoppedStatuses = map[models.MachineStatus]bool{
	models.StatusManutencao:       true,
	models.StatusProblemaMecanico: true,
}

// IsStopped informa se o status entra na contagem de paradas.
func IsStopped(s models.MachineStatus) bool { return StoppedStatuses[s] }

// FilterStopped separa as máquinas paradas do snapshot completo.
func FilterStopped(all []models.Machine) []models.Machine {
	var out []models.Machine
	for _, m := range all {
		if IsStopped(m.Status) {
			out = append(out, m)
		}
	}
	return out
}

// MachineDowntime é a linha por máquina do relatório de paradas.
type MachineDowntime struct {
	MachineID       string               `json:"machine_id"`
	Prefix          string               `json:"prefix"`
	Name            string               `json:"name"`
	Status          models.MachineStatus `json:"status"`
	StatusSince     string               `json:"status_since"` // YYYY-MM-DD
	StatusSinceTime string               `json:"status_since_time,omitempty"`
	HoursStopped    float64              `json:"hours_stopped"`
	DaysStopped     int                  `json:"days_stopped"`
	DurationLabel   string               `json:"duration_label"`
	PendingIssues   int                  `json:"pending_issues"`
}

// FleetDowntime é o bloco agregado da frota.
type FleetDowntime struct {
	TotalFleet          int     `json:"total_fleet"`
	StoppedCount        int     `json:"stopped_count"`
	AvailabilityPercent float64 `json:"availability_percent"`
	AverageHoursStopped float64 `json:"average_hours_stopped"`
	TotalHoursSum       float64 `json:"total_hours_sum"`
	PendingIssuesCount  int     `json:"pending_issues_count"`
}

type DowntimeReport struct {
	PerMachine []MachineDowntime `json:"per_machine"`
	Fleet      FleetDowntime     `json:"fleet"`
}

// ComputeDowntimeMetrics deriva o relatório de paradas a partir dos
// snapshots. "now" é sempre injetado pelo chamador (determinismo).
func ComputeDowntimeMetrics(stopped, all []models.Machine, now time.Time) DowntimeReport {
	rep := DowntimeReport{PerMachine: make([]MachineDowntime, 0, len(stopped))}

	var totalHours float64
	for _, m := range stopped {
		hours := math.Floor(WorkingHoursBetween(m.StatusChangeDate, m.LastStatusChangeTime, now))
		row := MachineDowntime{
			MachineID:       m.ID,
			Prefix:          m.Prefix,
			Name:            m.Name,
			Status:          m.Status,
			StatusSince:     m.StatusChangeDate,
			StatusSinceTime: m.LastStatusChangeTime,
			HoursStopped:    hours,
			DaysStopped:     DaysStoppedFloor(hours),
			DurationLabel:   FormatDowntime(hours),
			PendingIssues:   len(m.PendingIssues),
		}
		totalHours += hours
		rep.PerMachine = append(rep.PerMachine, row)
	}

	fleet := FleetDowntime{
		TotalFleet:    len(all),
		StoppedCount:  len(stopped),
		TotalHoursSum: totalHours,
	}
	if fleet.TotalFleet > 0 {
		fleet.AvailabilityPercent = float64(fleet.TotalFleet-fleet.StoppedCount) / float64(fleet.TotalFleet) * 100
	}
	if fleet.StoppedCount > 0 {
		fleet.AverageHoursStopped = totalHours / float64(fleet.StoppedCount)
	}
	for _, m := range all {
		fleet.PendingIssuesCount += len(m.PendingIssues)
	}
	rep.Fleet = fleet
	return rep
}

// SortField seleciona a coluna de ordenação do relatório.
type SortField string

const (
	SortByDaysStopped SortField = "days_stopped"
	SortByStatusDate  SortField = "status_since"
)

// SortDowntimeRows ordena in-place, de forma estável, pela coluna pedida.
// Datas ilegíveis comparam como época 0, sem erro.
func SortDowntimeRows(rows []MachineDowntime, field SortField, asc bool) {
	less := func(i, j int) bool { return rows[i].DaysStopped < rows[j].DaysStopped }
	if field == SortByStatusDate {
		less = func(i, j int) bool {
			return dateOrEpoch(rows[i].StatusSince).Before(dateOrEpoch(rows[j].StatusSince))
		}
	}
	if asc {
		sort.SliceStable(rows, less)
		return
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(j, i) })
}

func dateOrEpoch(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}
