// internal/services/timeline_test.go

package services

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/denilsonjj/sistema-erp-sub001/internal/models"
)

func TestStoppageEventsPairedExit(t *testing.T) {
	m := models.Machine{
		StoppageHistory: []models.StoppageRecord{{
			StartDate: "2024-01-01", StartTime: "08:00",
			EndDate: "2024-01-02", EndTime: "10:00",
			Reason:      models.StatusManutencao,
			Description: "Troca de correia",
		}},
	}
	events := BuildTimeline(m, at("2024-03-01T12:00"), 0)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	// ordem decrescente: saída primeiro
	exit, entry := events[0], events[1]
	if exit.Kind != KindRetomada || exit.Date != "2024-01-02" {
		t.Errorf("exit = %+v", exit)
	}
	if !strings.Contains(exit.Description, "1 dia(s)") || !strings.Contains(exit.Description, "2h") {
		t.Errorf("exit description missing wall-clock duration: %q", exit.Description)
	}
	if entry.Kind != EventKind(models.StatusManutencao) || entry.Date != "2024-01-01" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestStoppageOpenIntervalEmitsOnlyEntry(t *testing.T) {
	m := models.Machine{
		StoppageHistory: []models.StoppageRecord{{
			StartDate: "2024-01-01", StartTime: "08:00",
			Reason: models.StatusProblemaMecanico,
		}},
	}
	events := BuildTimeline(m, at("2024-03-01T12:00"), 0)
	if len(events) != 1 {
		t.Fatalf("expected 1 event for open interval, got %d", len(events))
	}
	if events[0].Kind != EventKind(models.StatusProblemaMecanico) {
		t.Errorf("kind = %q", events[0].Kind)
	}
}

func TestResolvedIssueDurationRoundTrip(t *testing.T) {
	m := models.Machine{
		ResolvedIssues: []models.ResolvedIssue{{
			ID:           "i1",
			OriginalDate: "2024-01-01", OriginalTime: "08:00",
			ResolvedDate: "2024-01-02", ResolvedTime: "10:00",
			Description: "Vazamento hidráulico",
		}},
	}
	events := BuildTimeline(m, at("2024-03-01T12:00"), 0)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	res := events[0]
	if res.Kind != KindResolucao {
		t.Fatalf("first event kind = %q, want resolução", res.Kind)
	}
	if !strings.Contains(res.Description, "1 dia(s)") || !strings.Contains(res.Description, "2h") {
		t.Errorf("resolution description = %q", res.Description)
	}
	if events[1].Kind != KindObservacao {
		t.Errorf("second event kind = %q, want observação", events[1].Kind)
	}
}

func TestPendingIssueUndated(t *testing.T) {
	m := models.Machine{
		PendingIssues: []models.PendingIssue{{
			ID: "p1", Date: "2024-02-01", Time: "09:30",
			Description: "Pneu desgastado", ReportedBy: "José",
		}},
	}
	events := BuildTimeline(m, at("2024-03-01T12:00"), 0)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Kind != KindObservacao || !strings.Contains(events[0].Description, "José") {
		t.Errorf("event = %+v", events[0])
	}
}

func TestDescendingOrderWithTimeTieBreak(t *testing.T) {
	m := models.Machine{
		PendingIssues: []models.PendingIssue{
			{ID: "a", Date: "2024-01-10", Time: "09:00", Description: "a"},
			{ID: "b", Date: "2024-01-10", Time: "14:00", Description: "b"},
			{ID: "c", Date: "2024-01-10", Time: "", Description: "c"},
			{ID: "d", Date: "2024-01-11", Time: "06:00", Description: "d"},
		},
	}
	events := BuildTimeline(m, at("2024-03-01T12:00"), 0)
	var got []string
	for _, e := range events {
		got = append(got, e.Description)
	}
	want := []string{"d", "b", "a", "c"} // hora vazia é a mais antiga do dia
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestProductionRollup(t *testing.T) {
	m := models.Machine{
		Readings: []models.Reading{
			{Date: "2024-01-05", Value: 100},
			{Date: "2024-01-20", Value: 140},
			{Date: "2024-02-10", Value: 160},
		},
	}
	events := BuildTimeline(m, at("2024-03-15T12:00"), 0)
	if len(events) != 2 {
		t.Fatalf("expected 2 production events, got %d", len(events))
	}
	feb, jan := events[0], events[1]

	if jan.Date != "2024-01-31" || jan.Time != "18:00" {
		t.Errorf("january closing = %s %s", jan.Date, jan.Time)
	}
	if !strings.Contains(jan.Title, "Janeiro de 2024") {
		t.Errorf("january title = %q", jan.Title)
	}
	if !strings.HasPrefix(jan.Description, "40 ") {
		t.Errorf("january worked = %q, want 40", jan.Description)
	}

	if feb.Date != "2024-02-29" || feb.Time != "18:00" {
		t.Errorf("february closing = %s %s", feb.Date, feb.Time)
	}
	if !strings.HasPrefix(feb.Description, "20 ") {
		t.Errorf("february worked = %q, want 20", feb.Description)
	}
}

func TestProductionRollupCurrentMonthDatedAtLastReading(t *testing.T) {
	m := models.Machine{
		Readings: []models.Reading{
			{Date: "2024-03-02", Value: 10},
			{Date: "2024-03-09", Value: 25},
		},
	}
	events := BuildTimeline(m, at("2024-03-15T12:00"), 0)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Date != "2024-03-09" {
		t.Errorf("current month event dated %s, want last reading date", events[0].Date)
	}
	// primeiro mês observado credita produção zero
	if !strings.HasPrefix(events[0].Description, "0 ") {
		t.Errorf("first observed month worked = %q, want 0", events[0].Description)
	}
}

func TestProductionRollupSuppressesNegativeDelta(t *testing.T) {
	m := models.Machine{
		Readings: []models.Reading{
			{Date: "2024-01-20", Value: 140},
			{Date: "2024-02-10", Value: 90}, // horímetro regrediu
			{Date: "2024-03-10", Value: 95},
		},
	}
	events := BuildTimeline(m, at("2024-05-01T12:00"), 0)
	for _, e := range events {
		if e.Date[:7] == "2024-02" {
			t.Fatalf("negative month should be suppressed, got %+v", e)
		}
	}
	// março usa o baseline de fevereiro (90): 95-90 = 5
	found := false
	for _, e := range events {
		if e.Date[:7] == "2024-03" {
			found = true
			if !strings.HasPrefix(e.Description, "5 ") {
				t.Errorf("march worked = %q, want 5", e.Description)
			}
		}
	}
	if !found {
		t.Fatal("march event missing")
	}
}

func TestSupplyEventDescription(t *testing.T) {
	m := models.Machine{
		SupplyLogs: []models.SupplyLog{{
			Date:   "2024-02-05T10:30:00",
			Diesel: 120,
			Arla:   20,
			Lubrication: &models.Lubrication{
				Grease:    true,
				EngineOil: &models.OilService{Action: "Troca", Type: "15W40", Amount: 12},
				Filters:   []models.FilterChange{{Name: "Filtro de ar", Quantity: 2}},
			},
		}},
	}
	events := BuildTimeline(m, at("2024-03-01T12:00"), 0)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Date != "2024-02-05" || e.Time != "10:30" {
		t.Errorf("timestamp split = %s %s", e.Date, e.Time)
	}
	for _, frag := range []string{"Diesel: 120 L", "Arla: 20 L", "Graxa", "Troca de óleo do motor (15W40, 12 L)", "2x Filtro de ar"} {
		if !strings.Contains(e.Description, frag) {
			t.Errorf("description %q missing %q", e.Description, frag)
		}
	}
}

func TestMalformedRecordDoesNotAbortBatch(t *testing.T) {
	m := models.Machine{
		StoppageHistory: []models.StoppageRecord{
			{StartDate: "not-a-date", EndDate: "also-bad", Reason: models.StatusManutencao},
			{StartDate: "2024-01-05", StartTime: "08:00", Reason: models.StatusManutencao},
		},
	}
	events := BuildTimeline(m, at("2024-03-01T12:00"), 0)
	// registro ruim ainda emite eventos de melhor esforço, sem duração
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for _, e := range events {
		if e.Kind == KindRetomada && strings.Contains(e.Description, "Duração") {
			t.Errorf("malformed pair must not carry a duration: %q", e.Description)
		}
	}
}

func TestBuildTimelineLimit(t *testing.T) {
	m := models.Machine{
		PendingIssues: []models.PendingIssue{
			{Date: "2024-01-01", Description: "1"},
			{Date: "2024-01-02", Description: "2"},
			{Date: "2024-01-03", Description: "3"},
		},
	}
	events := BuildTimeline(m, at("2024-03-01T12:00"), 2)
	if len(events) != 2 {
		t.Fatalf("limit ignored, got %d events", len(events))
	}
	if events[0].Description != "3" {
		t.Errorf("limit must keep the most recent events, got %+v", events)
	}
}

func TestBuildFleetTimelineTagsMachine(t *testing.T) {
	fleet := []models.Machine{
		{Prefix: "TR-01", PendingIssues: []models.PendingIssue{{Date: "2024-01-02", Description: "x"}}},
		{Prefix: "TR-02", PendingIssues: []models.PendingIssue{{Date: "2024-01-03", Description: "y"}}},
	}
	events := BuildFleetTimeline(fleet, at("2024-03-01T12:00"), 0)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Machine != "TR-02" || events[1].Machine != "TR-01" {
		t.Errorf("machine tags = %q, %q", events[0].Machine, events[1].Machine)
	}
}

func TestBuildTimelineIdempotent(t *testing.T) {
	m := models.Machine{
		Readings: []models.Reading{
			{Date: "2024-01-05", Value: 100},
			{Date: "2024-02-10", Value: 160},
		},
		StoppageHistory: []models.StoppageRecord{{
			StartDate: "2024-01-10", StartTime: "08:00",
			EndDate: "2024-01-10", EndTime: "16:00",
			Reason: models.StatusManutencao,
		}},
		SupplyLogs: []models.SupplyLog{{Date: "2024-02-05T10:30:00", Diesel: 100}},
	}
	now := at("2024-03-01T12:00")

	a, err := json.Marshal(BuildTimeline(m, now, 0))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(BuildTimeline(m, now, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("timeline not byte-identical for identical inputs")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		start, end string
		want       string
	}{
		{"2024-01-01T08:00", "2024-01-02T10:00", "1 dia(s) 2h"},
		{"2024-01-01T08:00", "2024-01-01T08:45", "45min"},
		{"2024-01-01T08:00", "2024-01-01T10:30", "2h 30min"},
		{"2024-01-01T08:00", "2024-01-01T08:00", "Menos de 1 min"},
		{"2024-01-02T08:00", "2024-01-01T08:00", "Menos de 1 min"},
	}
	for _, tt := range tests {
		got := FormatElapsed(at(tt.start), at(tt.end))
		if got != tt.want {
			t.Errorf("FormatElapsed(%s, %s) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}
