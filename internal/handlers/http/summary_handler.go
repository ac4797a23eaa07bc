// internal/handlers/http/summary_handler.go
// Resumo narrativo da frota: monta o relatório de paradas e pede ao LLM
// um parágrafo em português; sem LLM configurado sai um texto determinístico.

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/denilsonjj/sistema-erp-sub001/internal/llm"
	mysqlrepo "github.com/denilsonjj/sistema-erp-sub001/internal/repositories/mysql"
	"github.com/denilsonjj/sistema-erp-sub001/internal/services"
	"github.com/denilsonjj/sistema-erp-sub001/internal/util/sse"
)

// inject do app (pode ficar nil: o resumo degrada, nunca falha)
var llmClient llm.Client

func SetLLMClient(c llm.Client) { llmClient = c }

const summarySystemPrompt = "Você é um assistente de gestão de frota de obra. " +
	"Resuma em um parágrafo curto, em português, a situação de paradas da frota. " +
	"Cite disponibilidade, máquinas paradas há mais tempo e pendências. Não invente números."

func FleetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	rep, ok := summaryReport(w, r)
	if !ok {
		return
	}

	text := fallbackSummary(rep)
	source := "static"
	if llmClient != nil {
		if answer, err := llmClient.Answer(r.Context(), summarySystemPrompt, summaryPrompt(rep)); err == nil && answer != "" {
			text, source = answer, llmClient.Model()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"summary": text,
		"source":  source,
		"fleet":   rep.Fleet,
	})
}

// FleetSummaryStreamHandler envia o resumo via SSE, token a token quando
// há LLM; caso contrário, um único evento com o texto determinístico.
func FleetSummaryStreamHandler(w http.ResponseWriter, r *http.Request) {
	rep, ok := summaryReport(w, r)
	if !ok {
		return
	}

	flusher := sse.PrepareSSE(w)

	if llmClient == nil {
		_ = sse.WriteEvent(w, flusher, "summary", fallbackSummary(rep))
		_ = sse.WriteEvent(w, flusher, "done", "ok")
		return
	}

	_, err := llmClient.AnswerStream(r.Context(), summarySystemPrompt, summaryPrompt(rep),
		func(delta string) error {
			return sse.WriteEvent(w, flusher, "delta", delta)
		})
	if err != nil {
		_ = sse.WriteEvent(w, flusher, "summary", fallbackSummary(rep))
	}
	_ = sse.WriteEvent(w, flusher, "done", "ok")
}

func summaryReport(w http.ResponseWriter, r *http.Request) (services.DowntimeReport, bool) {
	if machineRepo == nil {
		http.Error(w, "machine repo not configured", http.StatusServiceUnavailable)
		return services.DowntimeReport{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 6*time.Second)
	defer cancel()

	all, err := machineRepo.List(ctx, mysqlrepo.MachineFilter{})
	if err != nil {
		writeDBError(w, err)
		return services.DowntimeReport{}, false
	}

	now := clk.Now()
	rep := services.ComputeDowntimeMetrics(services.FilterStopped(all), all, now)
	services.SortDowntimeRows(rep.PerMachine, services.SortByDaysStopped, false)
	return rep, true
}

func summaryPrompt(rep services.DowntimeReport) string {
	var sb strings.Builder
	f := rep.Fleet
	fmt.Fprintf(&sb, "Frota: %d máquinas, %d paradas, disponibilidade %.1f%%, %d pendências.\n",
		f.TotalFleet, f.StoppedCount, f.AvailabilityPercent, f.PendingIssuesCount)
	for _, m := range rep.PerMachine {
		fmt.Fprintf(&sb, "- %s (%s): %s desde %s, parada há %s, %d pendências\n",
			m.Prefix, m.Name, m.Status, m.StatusSince, m.DurationLabel, m.PendingIssues)
	}
	return sb.String()
}

// fallbackSummary é o texto sem LLM: os mesmos números, sem narrativa.
func fallbackSummary(rep services.DowntimeReport) string {
	f := rep.Fleet
	s := fmt.Sprintf("Disponibilidade da frota: %.1f%% (%d de %d máquinas operando). ",
		f.AvailabilityPercent, f.TotalFleet-f.StoppedCount, f.TotalFleet)
	if f.StoppedCount > 0 {
		worst := rep.PerMachine[0]
		s += fmt.Sprintf("%d máquina(s) parada(s), somando %.0f horas úteis; a mais antiga é %s (%s). ",
			f.StoppedCount, f.TotalHoursSum, worst.Prefix, worst.DurationLabel)
	}
	if f.PendingIssuesCount > 0 {
		s += fmt.Sprintf("%d apontamento(s) de campo pendente(s).", f.PendingIssuesCount)
	}
	return strings.TrimSpace(s)
}
