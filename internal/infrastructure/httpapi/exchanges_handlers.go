package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/waelttf/UniqueRequest/internal/domain"
)

// handleExchanges serves the traffic-source surface:
//
//	POST   /api/exchanges  ingest one captured exchange
//	GET    /api/exchanges  list the current store
//	DELETE /api/exchanges  clear the store
func (d *Deps) handleExchanges(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var ex domain.Exchange
		if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
			writeError(w, http.StatusBadRequest, "EXCHANGE_INVALID", err.Error(), nil)
			return
		}
		if ex.URL == "" && ex.Path == "" {
			writeError(w, http.StatusBadRequest, "EXCHANGE_INVALID", "url or path required", nil)
			return
		}
		if err := d.Svc.Ingest(r.Context(), ex); err != nil {
			writeError(w, http.StatusInternalServerError, "EXCHANGE_INGEST_FAILED", err.Error(), nil)
			return
		}
		d.Metrics.ExchangesIngestedTotal.Inc()
		if d.Monitor != nil {
			d.Monitor.Broadcast(MonitorEvent{Type: "exchange_ingested"})
		}
		w.WriteHeader(http.StatusAccepted)
	case http.MethodGet:
		exs, err := d.Svc.Exchanges(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "EXCHANGES_LIST_FAILED", err.Error(), nil)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"items": exs, "total": len(exs)})
	case http.MethodDelete:
		if err := d.Svc.ClearExchanges(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "EXCHANGES_CLEAR_FAILED", err.Error(), nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "unsupported method", nil)
	}
}
