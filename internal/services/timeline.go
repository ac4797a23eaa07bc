// internal/services/timeline.go
// Linha do tempo unificada: normaliza cinco fontes de evento em uma só
// sequência cronológica decrescente

package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/denilsonjj/sistema-erp-sub001/internal/models"
)

// EventKind é o conjunto fechado de tipos de evento da linha do tempo.
// Entradas de parada usam o próprio status como kind.
type EventKind string

const (
	KindRetomada      EventKind = "Retomada"
	KindObservacao    EventKind = "Observação"
	KindResolucao     EventKind = "Resolução"
	KindProducao      EventKind = "Produção"
	KindAbastecimento EventKind = "Abastecimento"
)

// NormalizedEvent é a representação única de qualquer evento da frota.
type NormalizedEvent struct {
	Date        string    `json:"date"`           // YYYY-MM-DD
	Time        string    `json:"time,omitempty"` // HH:MM
	Kind        EventKind `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Machine     string    `json:"machine,omitempty"` // prefixo, na visão de frota
}

// BuildTimeline monta a sequência ordenada de eventos de uma máquina.
// Registros com data ilegível não abortam o restante; o evento sai com
// os campos que puderam ser lidos. limit <= 0 devolve tudo.
func BuildTimeline(m models.Machine, now time.Time, limit int) []NormalizedEvent {
	events := collectEvents(m, now)
	sortEventsDesc(events)
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

// BuildFleetTimeline funde as linhas do tempo de toda a frota.
func BuildFleetTimeline(machines []models.Machine, now time.Time, limit int) []NormalizedEvent {
	var events []NormalizedEvent
	for _, m := range machines {
		for _, ev := range collectEvents(m, now) {
			ev.Machine = m.Prefix
			events = append(events, ev)
		}
	}
	sortEventsDesc(events)
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

// collectEvents emite na ordem fixa das regras (paradas, pendências,
// resolvidos, produção, abastecimento); empates exatos de data+hora
// preservam esta ordem via sort estável.
func collectEvents(m models.Machine, now time.Time) []NormalizedEvent {
	var events []NormalizedEvent
	events = append(events, stoppageEvents(m.StoppageHistory)...)
	events = append(events, pendingIssueEvents(m.PendingIssues)...)
	events = append(events, resolvedIssueEvents(m.ResolvedIssues)...)
	events = append(events, productionEvents(m.Readings, now)...)
	events = append(events, supplyEvents(m.SupplyLogs)...)
	return events
}

// sortEventsDesc: data decrescente; empate quebra pela hora (string
// HH:MM) decrescente, hora vazia valendo como a mais antiga.
func sortEventsDesc(events []NormalizedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date > events[j].Date
		}
		return events[i].Time > events[j].Time
	})
}

// ---- regra 1: histórico de paradas ----

func stoppageEvents(history []models.StoppageRecord) []NormalizedEvent {
	var events []NormalizedEvent
	for _, s := range history {
		events = append(events, NormalizedEvent{
			Date:        s.StartDate,
			Time:        s.StartTime,
			Kind:        EventKind(s.Reason),
			Title:       string(s.Reason),
			Description: s.Description,
		})
		if s.Open() {
			// intervalo aberto: só o evento de entrada, sem duração
			continue
		}
		desc := fmt.Sprintf("Fim de %s", strings.ToLower(string(s.Reason)))
		if dur := elapsedLabel(s.StartDate, s.StartTime, s.EndDate, s.EndTime); dur != "" {
			desc += ". Duração: " + dur
		}
		events = append(events, NormalizedEvent{
			Date:        s.EndDate,
			Time:        s.EndTime,
			Kind:        KindRetomada,
			Title:       "Retomada de operação",
			Description: desc,
		})
	}
	return events
}

// ---- regra 2: apontamentos pendentes ----

func pendingIssueEvents(issues []models.PendingIssue) []NormalizedEvent {
	var events []NormalizedEvent
	for _, i := range issues {
		desc := i.Description
		if i.ReportedBy != "" {
			desc += fmt.Sprintf(" (por %s)", i.ReportedBy)
		}
		events = append(events, NormalizedEvent{
			Date:        i.Date,
			Time:        i.Time,
			Kind:        KindObservacao,
			Title:       "Apontamento pendente",
			Description: desc,
		})
	}
	return events
}

// ---- regra 3: apontamentos resolvidos (dois eventos por registro) ----

func resolvedIssueEvents(issues []models.ResolvedIssue) []NormalizedEvent {
	var events []NormalizedEvent
	for _, i := range issues {
		origDesc := i.Description
		if i.ReportedBy != "" {
			origDesc += fmt.Sprintf(" (por %s)", i.ReportedBy)
		}
		events = append(events, NormalizedEvent{
			Date:        i.OriginalDate,
			Time:        i.OriginalTime,
			Kind:        KindObservacao,
			Title:       "Apontamento de campo",
			Description: origDesc,
		})

		resDesc := i.Description
		if dur := elapsedLabel(i.OriginalDate, i.OriginalTime, i.ResolvedDate, i.ResolvedTime); dur != "" {
			resDesc += ". Resolvido em " + dur
		}
		events = append(events, NormalizedEvent{
			Date:        i.ResolvedDate,
			Time:        i.ResolvedTime,
			Kind:        KindResolucao,
			Title:       "Apontamento resolvido",
			Description: resDesc,
		})
	}
	return events
}

// ---- regra 4: fechamento mensal de produção ----

var monthNamesPT = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var monthTitleCaser = cases.Title(language.BrazilianPortuguese)

// productionEvents agrupa leituras por mês calendário e emite um evento
// por mês com o delta de horímetro. O baseline é a última leitura do mês
// anterior com leituras; o primeiro mês observado credita produção zero.
// Deltas negativos (leitura fora de ordem) são suprimidos.
func productionEvents(readings []models.Reading, now time.Time) []NormalizedEvent {
	type monthAgg struct {
		key        string // YYYY-MM
		firstValue float64
		lastValue  float64
		lastDate   string
	}

	sorted := make([]models.Reading, 0, len(readings))
	for _, r := range readings {
		if _, err := time.Parse(dateLayout, r.Date); err != nil {
			continue // leitura sem data legível não entra no fechamento
		}
		sorted = append(sorted, r)
	}
	// YYYY-MM-DD ordena lexicograficamente em ordem cronológica
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	var months []*monthAgg
	byKey := map[string]*monthAgg{}
	for _, r := range sorted {
		key := r.Date[:7]
		agg, ok := byKey[key]
		if !ok {
			agg = &monthAgg{key: key, firstValue: r.Value}
			byKey[key] = agg
			months = append(months, agg)
		}
		agg.lastValue = r.Value
		agg.lastDate = r.Date
	}

	currentKey := now.Format("2006-01")
	var events []NormalizedEvent
	prevLast := math.NaN()
	for _, agg := range months {
		startValue := agg.firstValue
		if !math.IsNaN(prevLast) {
			startValue = prevLast
		}
		worked := agg.lastValue - startValue
		prevLast = agg.lastValue
		if worked < 0 {
			continue
		}

		date, hour := monthClosingInstant(agg.key, agg.lastDate, currentKey)
		events = append(events, NormalizedEvent{
			Date:        date,
			Time:        hour,
			Kind:        KindProducao,
			Title:       "Produção de " + monthLabelPT(agg.key),
			Description: formatNumber(worked) + " horas trabalhadas",
		})
	}
	return events
}

// monthClosingInstant data o fechamento no último dia do mês às 18:00;
// o mês corrente usa a data da última leitura.
func monthClosingInstant(key, lastDate, currentKey string) (string, string) {
	if key == currentKey {
		return lastDate, ""
	}
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return lastDate, ""
	}
	lastDay := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return lastDay.Format(dateLayout), "18:00"
}

// monthLabelPT monta "Janeiro de 2024" a partir de "2024-01".
func monthLabelPT(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	name := monthTitleCaser.String(monthNamesPT[int(t.Month())-1])
	return fmt.Sprintf("%s de %d", name, t.Year())
}

// ---- regra 5: abastecimento e lubrificação ----

func supplyEvents(logs []models.SupplyLog) []NormalizedEvent {
	var events []NormalizedEvent
	for _, l := range logs {
		date, hour := splitTimestamp(l.Date)
		events = append(events, NormalizedEvent{
			Date:        date,
			Time:        hour,
			Kind:        KindAbastecimento,
			Title:       "Abastecimento",
			Description: supplyDescription(l),
		})
	}
	return events
}

func supplyDescription(l models.SupplyLog) string {
	var parts []string
	if l.Diesel > 0 {
		parts = append(parts, fmt.Sprintf("Diesel: %s L", formatNumber(l.Diesel)))
	}
	if l.Arla > 0 {
		parts = append(parts, fmt.Sprintf("Arla: %s L", formatNumber(l.Arla)))
	}
	if lub := l.Lubrication; lub != nil {
		if lub.Grease {
			parts = append(parts, "Graxa")
		}
		parts = append(parts, oilPart("óleo do motor", lub.EngineOil)...)
		parts = append(parts, oilPart("óleo hidráulico", lub.HydraulicOil)...)
		parts = append(parts, oilPart("óleo de transmissão", lub.TransmissionOil)...)
		parts = append(parts, oilPart("óleo do diferencial", lub.DifferentialOil)...)
		if len(lub.Filters) > 0 {
			names := make([]string, 0, len(lub.Filters))
			for _, f := range lub.Filters {
				names = append(names, fmt.Sprintf("%dx %s", f.Quantity, f.Name))
			}
			parts = append(parts, "Filtros: "+strings.Join(names, ", "))
		}
	}
	return strings.Join(parts, " | ")
}

func oilPart(label string, o *models.OilService) []string {
	if o == nil {
		return nil
	}
	p := fmt.Sprintf("%s de %s", o.Action, label)
	var detail []string
	if o.Type != "" {
		detail = append(detail, o.Type)
	}
	if o.Amount > 0 {
		detail = append(detail, formatNumber(o.Amount)+" L")
	}
	if len(detail) > 0 {
		p += " (" + strings.Join(detail, ", ") + ")"
	}
	return []string{p}
}

// ---- auxiliares temporais ----

// parseDateTime interpreta data + hora opcional; hora ilegível degrada
// para 00:00, data ilegível invalida o instante.
func parseDateTime(date, hm string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	if hm == "" {
		return d, true
	}
	t, err := time.Parse(timeLayout, hm)
	if err != nil {
		return d, true
	}
	return d.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), true
}

// elapsedLabel devolve a duração relógio-de-parede entre as duas pontas,
// ou "" quando alguma ponta não pôde ser lida.
func elapsedLabel(startDate, startTime, endDate, endTime string) string {
	s, ok := parseDateTime(startDate, startTime)
	if !ok {
		return ""
	}
	e, ok := parseDateTime(endDate, endTime)
	if !ok {
		return ""
	}
	return FormatElapsed(s, e)
}

// FormatElapsed renderiza "{n} dia(s) {h}h {m}min" omitindo componentes
// zerados; intervalos nulos ou invertidos viram "Menos de 1 min".
func FormatElapsed(start, end time.Time) string {
	d := end.Sub(start)
	if d <= 0 {
		return "Menos de 1 min"
	}
	totalMin := int(d.Minutes())
	days := totalMin / (24 * 60)
	hours := (totalMin % (24 * 60)) / 60
	mins := totalMin % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d dia(s)", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dmin", mins))
	}
	if len(parts) == 0 {
		return "Menos de 1 min"
	}
	return strings.Join(parts, " ")
}

// splitTimestamp separa um timestamp ISO-like em (data, hora) de
// melhor esforço; entradas curtas rendem campos vazios.
func splitTimestamp(ts string) (string, string) {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format(dateLayout), t.Format(timeLayout)
		}
	}
	if t, err := time.Parse(dateLayout, ts); err == nil {
		return t.Format(dateLayout), ""
	}
	if len(ts) >= 10 {
		return ts[:10], ""
	}
	return ts, ""
}

// formatNumber imprime inteiros sem casa decimal e fracionários com uma.
func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
