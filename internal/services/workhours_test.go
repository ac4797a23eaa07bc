// internal/services/workhours_test.go

package services

import (
	"testing"
	"time"
)

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWorkingHoursBetween(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		startTime string
		end       time.Time
		want      float64
	}{
		{"manha inteira", "2024-01-01", "07:00", at("2024-01-01T11:00"), 4.0},
		{"atravessa o almoco", "2024-01-01", "09:00", at("2024-01-01T15:00"), 4.0},
		{"tres dias", "2024-01-01", "07:00", at("2024-01-03T18:00"), 27.0},
		{"fim antes do inicio", "2024-01-02", "07:00", at("2024-01-01T18:00"), 0},
		{"instantes iguais", "2024-01-01", "07:00", at("2024-01-01T07:00"), 0},
		{"fora das janelas", "2024-01-01", "11:30", at("2024-01-01T12:30"), 0},
		{"antes da manha", "2024-01-01", "05:00", at("2024-01-01T08:00"), 1.0},
		{"tarde ate o fim do dia", "2024-01-01", "16:00", at("2024-01-01T23:59"), 2.0},
		{"hora vazia assume meia-noite", "2024-01-01", "", at("2024-01-01T11:00"), 4.0},
		{"data ilegivel", "01/01/2024", "07:00", at("2024-01-03T18:00"), 0},
		{"dois dias sem intermediario", "2024-01-01", "13:00", at("2024-01-02T11:00"), 9.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorkingHoursBetween(tt.startDate, tt.startTime, tt.end)
			if got != tt.want {
				t.Errorf("WorkingHoursBetween(%s %s, %v) = %v, want %v",
					tt.startDate, tt.startTime, tt.end, got, tt.want)
			}
		})
	}
}

func TestWorkingHoursMultiDayUsesCalendarDays(t *testing.T) {
	// 20 dias cheios entre as pontas: 9h + 20*9h + 9h
	got := WorkingHoursBetween("2024-01-01", "07:00", at("2024-01-22T18:00"))
	if got != 9.0+20*9.0+9.0 {
		t.Errorf("expected %v, got %v", 9.0+20*9.0+9.0, got)
	}
}

func TestDaysStoppedFloor(t *testing.T) {
	tests := []struct {
		hours float64
		want  int
	}{
		{0, 0}, {-5, 0}, {8.9, 0}, {9, 1}, {17.9, 1}, {18, 2}, {27, 3}, {100, 11},
	}
	for _, tt := range tests {
		if got := DaysStoppedFloor(tt.hours); got != tt.want {
			t.Errorf("DaysStoppedFloor(%v) = %d, want %d", tt.hours, got, tt.want)
		}
	}

	// monotônico não-decrescente
	prev := 0
	for h := 0.0; h <= 200; h += 0.5 {
		d := DaysStoppedFloor(h)
		if d < prev {
			t.Fatalf("DaysStoppedFloor nao monotonico em h=%v: %d < %d", h, d, prev)
		}
		prev = d
	}
}

func TestFormatDowntime(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0h"},
		{5, "5h"},
		{8.9, "8h"},
		{9, "1d 0h"},
		{13, "1d 4h"},
		{27, "3d 0h"},
		{-3, "0h"},
	}
	for _, tt := range tests {
		if got := FormatDowntime(tt.hours); got != tt.want {
			t.Errorf("FormatDowntime(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}
