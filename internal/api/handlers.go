package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"commercehub/internal/webhook"
)

// SignatureHeader carries the payment platform's timestamped HMAC.
const SignatureHeader = "Webhook-Signature"

const maxBodyBytes = 1 << 20 // 1MB, matches the platform's payload cap

type Handlers struct {
	engine *webhook.Engine
	log    *slog.Logger
}

func NewHandlers(engine *webhook.Engine, log *slog.Logger) *Handlers {
	return &Handlers{
		engine: engine,
		log:    log.With("component", "webhook_api"),
	}
}

// HandleDelivery is the inbound webhook endpoint. It reads the raw body
// (the verifier needs the exact bytes that were signed) and translates the
// engine outcome into the response contract the platform retries on.
func (h *Handlers) HandleDelivery(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.log.Warn("failed to read delivery body", "error", err)
		http.Error(w, "unable to read request body", http.StatusBadRequest)
		return
	}

	outcome := h.engine.Process(r.Context(), body, r.Header.Get(SignatureHeader))
	writeOutcome(w, outcome)
}

func writeOutcome(w http.ResponseWriter, o webhook.Outcome) {
	w.Header().Set("Content-Type", "application/json")

	switch o.Status {
	case webhook.StatusProcessed:
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"processed": true})
	case webhook.StatusDuplicate:
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"processed": false, "duplicate": true})
	case webhook.StatusContended:
		// Another attempt is in flight; ask the platform to try again later.
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "retryable": true})
	case webhook.StatusFailedRetryable:
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "retryable": true})
	default:
		kind := webhook.KindOf(o.Err)
		if kind == webhook.KindAuthentication || kind == webhook.KindValidation {
			w.WriteHeader(http.StatusBadRequest)
		} else {
			// Handler-logic failures are acknowledged so the platform stops
			// redelivering a genuine bug; the engine already alerted.
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": false, "retryable": false})
	}
}
