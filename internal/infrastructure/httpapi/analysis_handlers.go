package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/waelttf/UniqueRequest/internal/analysis"
	"github.com/waelttf/UniqueRequest/internal/domain"
	"github.com/waelttf/UniqueRequest/internal/usecase"
)

// handleAnalysis serves the per-mode analysis surface:
//
//	POST   /api/analysis/{mode}/run                    full rebuild from the traffic source
//	GET    /api/analysis/{mode}/results[?q=pattern]    list retained records
//	DELETE /api/analysis/{mode}/results                clear the mode's registry
//	DELETE /api/analysis/{mode}/results/{seq}          remove one entry
//	GET    /api/analysis/{mode}/results/{seq}/exchange retained exchange behind an entry
//	GET    /api/analysis/{mode}/results/{seq}/replay   host/port/tls/raw-request tuple
func (d *Deps) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/analysis/"), "/")
	if len(parts) < 2 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found", nil)
		return
	}
	mode, ok := domain.ParseMode(parts[0])
	if !ok {
		writeError(w, http.StatusNotFound, "MODE_UNKNOWN", "unknown analysis mode", map[string]any{"mode": parts[0]})
		return
	}
	switch {
	case len(parts) == 2 && parts[1] == "run":
		d.handleRun(w, r, mode)
	case len(parts) == 2 && parts[1] == "results":
		d.handleResults(w, r, mode)
	case len(parts) >= 3 && parts[1] == "results":
		seq, err := strconv.Atoi(parts[2])
		if err != nil || seq < 1 {
			writeError(w, http.StatusBadRequest, "SEQ_INVALID", "sequence id must be a positive integer", map[string]any{"seq": parts[2]})
			return
		}
		d.handleEntry(w, r, mode, seq, parts[3:])
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found", nil)
	}
}

func (d *Deps) handleRun(w http.ResponseWriter, r *http.Request, mode domain.Mode) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "unsupported method", nil)
		return
	}
	var stats analysis.RunStats
	var err error
	switch mode {
	case domain.ModeNormal:
		filters := analysis.NormalFilters{
			PostOnly:           d.Cfg.FilterPostOnly,
			GetOnly:            d.Cfg.FilterGetOnly,
			NoStaticExtensions: d.Cfg.FilterNoStaticExt,
		}
		if body, rerr := io.ReadAll(r.Body); rerr == nil && len(body) > 0 {
			if jerr := json.Unmarshal(body, &filters); jerr != nil {
				writeError(w, http.StatusBadRequest, "FILTERS_INVALID", jerr.Error(), nil)
				return
			}
		}
		stats, err = d.Svc.RunNormal(r.Context(), filters)
	case domain.ModeGraphQL:
		stats, err = d.Svc.RunGraphQL(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "RUN_FAILED", err.Error(), map[string]any{"mode": mode})
		return
	}
	d.Metrics.AnalysisRunsTotal.WithLabelValues(string(mode)).Inc()
	d.Metrics.RecordsRetained.WithLabelValues(string(mode)).Set(float64(stats.Retained))
	d.Metrics.ExchangesSkippedTotal.WithLabelValues(string(mode), "excluded").Add(float64(stats.Dropped))
	d.Metrics.ExchangesSkippedTotal.WithLabelValues(string(mode), "duplicate").Add(float64(stats.Duplicates))
	d.Logger.Info().Str("mode", string(mode)).Int("retained", stats.Retained).
		Int("dropped", stats.Dropped).Int("duplicates", stats.Duplicates).Msg("analysis run completed")
	if d.Monitor != nil {
		d.Monitor.Broadcast(MonitorEvent{Type: "run_completed", Mode: string(mode), Count: stats.Retained})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

func (d *Deps) handleResults(w http.ResponseWriter, r *http.Request, mode domain.Mode) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		switch mode {
		case domain.ModeNormal:
			items := d.Svc.NormalResults(q)
			_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "total": len(items)})
		case domain.ModeGraphQL:
			items := d.Svc.GraphQLResults(q)
			_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "total": len(items)})
		}
	case http.MethodDelete:
		if err := d.Svc.ClearAll(mode); err != nil {
			writeError(w, http.StatusInternalServerError, "RESULTS_CLEAR_FAILED", err.Error(), map[string]any{"mode": mode})
			return
		}
		if d.Monitor != nil {
			d.Monitor.Broadcast(MonitorEvent{Type: "results_cleared", Mode: string(mode)})
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "unsupported method", nil)
	}
}

func (d *Deps) handleEntry(w http.ResponseWriter, r *http.Request, mode domain.Mode, seq int, rest []string) {
	if len(rest) == 0 {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "unsupported method", nil)
			return
		}
		if err := d.Svc.RemoveEntry(mode, seq); err != nil {
			writeEntryError(w, mode, seq, err)
			return
		}
		if d.Monitor != nil {
			d.Monitor.Broadcast(MonitorEvent{Type: "entry_removed", Mode: string(mode), Seq: seq})
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "unsupported method", nil)
		return
	}
	switch rest[0] {
	case "exchange":
		ex, err := d.Svc.GetExchange(mode, seq)
		if err != nil {
			writeEntryError(w, mode, seq, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ex)
	case "replay":
		target, err := d.Svc.ExportForReplay(mode, seq)
		if err != nil {
			writeEntryError(w, mode, seq, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(target)
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found", nil)
	}
}

func writeEntryError(w http.ResponseWriter, mode domain.Mode, seq int, err error) {
	if errors.Is(err, usecase.ErrEntryNotFound) {
		writeError(w, http.StatusNotFound, "ENTRY_NOT_FOUND", "no entry with that sequence id", map[string]any{"mode": mode, "seq": seq})
		return
	}
	writeError(w, http.StatusInternalServerError, "ENTRY_LOOKUP_FAILED", err.Error(), map[string]any{"mode": mode, "seq": seq})
}
