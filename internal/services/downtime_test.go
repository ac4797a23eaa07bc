// internal/services/downtime_test.go

package services

import (
	"testing"
	"time"

	"github.com/denilsonjj/sistema-erp-sub001/internal/models"
)

func stoppedMachine(id, since, sinceTime string, status models.MachineStatus) models.Machine {
	return models.Machine{
		ID:                   id,
		Prefix:               "TR-" + id,
		Name:                 "Trator " + id,
		Status:               status,
		StatusChangeDate:     since,
		LastStatusChangeTime: sinceTime,
	}
}

func TestComputeDowntimeMetricsPerMachine(t *testing.T) {
	now := at("2024-01-03T18:00")
	m := stoppedMachine("1", "2024-01-01", "07:00", models.StatusManutencao)

	rep := ComputeDowntimeMetrics([]models.Machine{m}, []models.Machine{m}, now)
	if len(rep.PerMachine) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rep.PerMachine))
	}
	row := rep.PerMachine[0]
	if row.HoursStopped != 27 {
		t.Errorf("HoursStopped = %v, want 27", row.HoursStopped)
	}
	if row.DaysStopped != 3 {
		t.Errorf("DaysStopped = %d, want 3", row.DaysStopped)
	}
	if row.DurationLabel != "3d 0h" {
		t.Errorf("DurationLabel = %q, want %q", row.DurationLabel, "3d 0h")
	}
}

func TestComputeDowntimeMetricsFleet(t *testing.T) {
	now := at("2024-01-03T18:00")

	all := make([]models.Machine, 0, 10)
	for i := 0; i < 7; i++ {
		all = append(all, models.Machine{ID: "op", Status: models.StatusOperando})
	}
	stopped := []models.Machine{
		stoppedMachine("1", "2024-01-01", "07:00", models.StatusManutencao),       // 27h
		stoppedMachine("2", "2024-01-03", "07:00", models.StatusProblemaMecanico), // 9h
		stoppedMachine("3", "2024-01-03", "13:00", models.StatusManutencao),       // 5h
	}
	all = append(all, stopped...)
	all[0].PendingIssues = []models.PendingIssue{{ID: "a"}, {ID: "b"}}

	rep := ComputeDowntimeMetrics(stopped, all, now)
	f := rep.Fleet
	if f.TotalFleet != 10 || f.StoppedCount != 3 {
		t.Fatalf("fleet counts = %d/%d, want 10/3", f.TotalFleet, f.StoppedCount)
	}
	if f.AvailabilityPercent != 70.0 {
		t.Errorf("AvailabilityPercent = %v, want 70", f.AvailabilityPercent)
	}
	if f.TotalHoursSum != 41 {
		t.Errorf("TotalHoursSum = %v, want 41", f.TotalHoursSum)
	}
	if want := 41.0 / 3.0; f.AverageHoursStopped != want {
		t.Errorf("AverageHoursStopped = %v, want %v", f.AverageHoursStopped, want)
	}
	if f.PendingIssuesCount != 2 {
		t.Errorf("PendingIssuesCount = %d, want 2", f.PendingIssuesCount)
	}
}

func TestComputeDowntimeMetricsEmptyDenominators(t *testing.T) {
	rep := ComputeDowntimeMetrics(nil, nil, time.Now())
	if rep.Fleet.AvailabilityPercent != 0 {
		t.Errorf("empty fleet availability = %v, want 0", rep.Fleet.AvailabilityPercent)
	}
	if rep.Fleet.AverageHoursStopped != 0 {
		t.Errorf("empty average = %v, want 0", rep.Fleet.AverageHoursStopped)
	}
}

func TestFilterStopped(t *testing.T) {
	all := []models.Machine{
		{ID: "1", Status: models.StatusOperando},
		{ID: "2", Status: models.StatusManutencao},
		{ID: "3", Status: models.StatusDisponivel},
		{ID: "4", Status: models.StatusProblemaMecanico},
	}
	got := FilterStopped(all)
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "4" {
		t.Fatalf("FilterStopped = %+v", got)
	}
}

func TestSortDowntimeRowsByDays(t *testing.T) {
	rows := []MachineDowntime{
		{MachineID: "a", DaysStopped: 1},
		{MachineID: "b", DaysStopped: 3},
		{MachineID: "c", DaysStopped: 2},
		{MachineID: "d", DaysStopped: 3}, // empate com "b": ordem relativa preservada
	}
	SortDowntimeRows(rows, SortByDaysStopped, false)
	got := rows[0].MachineID + rows[1].MachineID + rows[2].MachineID + rows[3].MachineID
	if got != "bdca" {
		t.Errorf("desc order = %q, want %q", got, "bdca")
	}

	SortDowntimeRows(rows, SortByDaysStopped, true)
	got = rows[0].MachineID + rows[1].MachineID + rows[2].MachineID + rows[3].MachineID
	if got != "acbd" {
		t.Errorf("asc order = %q, want %q", got, "acbd")
	}
}

func TestSortDowntimeRowsMalformedDateComparesAsEpoch(t *testing.T) {
	rows := []MachineDowntime{
		{MachineID: "ok", StatusSince: "2024-01-05"},
		{MachineID: "bad", StatusSince: "??"},
	}
	SortDowntimeRows(rows, SortByStatusDate, true)
	if rows[0].MachineID != "bad" {
		t.Errorf("malformed date should sort first ascending, got %q", rows[0].MachineID)
	}
}
