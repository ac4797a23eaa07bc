// internal/services/workhours.go
// Relógio de horas úteis: dois turnos fixos por dia (07:00–11:00, 13:00–18:00)

package services

import (
	"fmt"
	"math"
	"time"
)

// Janelas de turno em minutos desde a meia-noite.
const (
	morningStartMin   = 7 * 60
	morningEndMin     = 11 * 60
	afternoonStartMin = 13 * 60
	afternoonEndMin   = 18 * 60

	// FullWorkdayHours é o total de horas úteis de um dia cheio.
	FullWorkdayHours = 9.0
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// WorkingHoursBetween calcula as horas úteis decorridas entre o início
// (data calendário + hora opcional, "00:00" quando vazia) e o instante
// final. Datas ilegíveis e intervalos invertidos rendem 0; nenhum erro
// é propagado.
func WorkingHoursBetween(startDate, startTime string, end time.Time) float64 {
	day, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 0
	}
	hh, mm := 0, 0
	if startTime != "" {
		if t, terr := time.Parse(timeLayout, startTime); terr == nil {
			hh, mm = t.Hour(), t.Minute()
		}
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), hh, mm, 0, 0, end.Location())
	if !start.Before(end) {
		return 0
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()

	days := calendarDaysBetween(start, end)
	if days == 0 {
		return float64(windowOverlapMinutes(startMin, endMin)) / 60
	}

	// Primeiro dia parcial + dias cheios intermediários + último dia parcial.
	firstDay := windowOverlapMinutes(startMin, 24*60)
	lastDay := windowOverlapMinutes(0, endMin)
	return float64(firstDay+lastDay)/60 + FullWorkdayHours*float64(days-1)
}

// DaysStoppedFloor converte horas úteis em dias úteis inteiros (9h/dia).
func DaysStoppedFloor(hours float64) int {
	if hours <= 0 {
		return 0
	}
	return int(math.Floor(hours / FullWorkdayHours))
}

// FormatDowntime monta o rótulo "{d}d {h}h" (ou só "{h}h" sem dia cheio).
func FormatDowntime(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	d := DaysStoppedFloor(hours)
	if d > 0 {
		rem := int(math.Floor(hours - float64(d)*FullWorkdayHours))
		return fmt.Sprintf("%dd %dh", d, rem)
	}
	return fmt.Sprintf("%dh", int(math.Floor(hours)))
}

// calendarDaysBetween conta a diferença de datas de calendário, não o
// tempo decorrido dividido por 24h (evita deriva com horas parciais).
func calendarDaysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// windowOverlapMinutes soma a interseção de [fromMin, toMin) com os dois turnos.
func windowOverlapMinutes(fromMin, toMin int) int {
	return overlapMinutes(fromMin, toMin, morningStartMin, morningEndMin) +
		overlapMinutes(fromMin, toMin, afternoonStartMin, afternoonEndMin)
}

func overlapMinutes(aStart, aEnd, bStart, bEnd int) int {
	s := max(aStart, bStart)
	e := min(aEnd, bEnd)
	if e > s {
		return e - s
	}
	return 0
}
