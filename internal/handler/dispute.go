package handler

import (
	"context"
	"encoding/json"
	"log/slog"

	"commercehub/internal/notify"
	"commercehub/internal/webhook"
)

type disputePayload struct {
	ID            string `json:"id"`
	ChargeID      string `json:"charge"`
	MerchantID    string `json:"merchant_id"`
	Amount        int64  `json:"amount"`
	Reason        string `json:"reason"`
	EvidenceDueBy int64  `json:"evidence_due_by"`
}

// DisputeCreated raises a high-priority alert to the owning merchant with
// the disputed amount and the evidence deadline. Disputes carry hard
// deadlines, so the alert outranks ordinary notifications.
type DisputeCreated struct {
	notifier notify.Enqueuer
	log      *slog.Logger
}

func NewDisputeCreated(notifier notify.Enqueuer, log *slog.Logger) *DisputeCreated {
	return &DisputeCreated{
		notifier: notifier,
		log:      log.With("handler", "dispute_created"),
	}
}

func (h *DisputeCreated) Handle(ctx context.Context, ev webhook.Event) error {
	var dispute disputePayload
	if err := json.Unmarshal(ev.Data, &dispute); err != nil {
		return payloadErr(ev, err)
	}

	h.log.Warn("dispute opened against merchant",
		"dispute_id", dispute.ID,
		"charge_id", dispute.ChargeID,
		"merchant_id", dispute.MerchantID,
		"amount", dispute.Amount,
		"evidence_due_by", dispute.EvidenceDueBy,
	)

	task := notify.Task{
		Type:       "dispute_alert",
		Priority:   notify.PriorityHigh,
		MerchantID: dispute.MerchantID,
		Payload:    ev.Data,
	}
	if err := h.notifier.Enqueue(ctx, task); err != nil {
		return webhook.Dependency(err)
	}

	return nil
}
