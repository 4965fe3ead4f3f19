package handler

import (
	"context"
	"encoding/json"
	"log/slog"

	"commercehub/internal/domain/payout"
	"commercehub/internal/notify"
	"commercehub/internal/webhook"
)

type payoutPayload struct {
	ID             string `json:"id"`
	MerchantID     string `json:"merchant_id"`
	Amount         int64  `json:"amount"`
	Status         string `json:"status"`
	FailureMessage string `json:"failure_message"`
}

// PayoutPaid records a completed payout.
type PayoutPaid struct {
	payouts PayoutStore
	log     *slog.Logger
}

func NewPayoutPaid(payouts PayoutStore, log *slog.Logger) *PayoutPaid {
	return &PayoutPaid{
		payouts: payouts,
		log:     log.With("handler", "payout_paid"),
	}
}

func (h *PayoutPaid) Handle(ctx context.Context, ev webhook.Event) error {
	var p payoutPayload
	if err := json.Unmarshal(ev.Data, &p); err != nil {
		return payloadErr(ev, err)
	}

	if err := h.payouts.UpdatePayoutStatus(ctx, p.ID, payout.StatusPaid, ""); err != nil {
		return storeErr(err)
	}

	h.log.Info("payout completed", "payout_id", p.ID, "merchant_id", p.MerchantID, "amount", p.Amount)
	return nil
}

// PayoutFailed records the failure and raises a high-priority alert to the
// owning merchant, since failed payouts usually mean stale bank details.
type PayoutFailed struct {
	payouts  PayoutStore
	notifier notify.Enqueuer
	log      *slog.Logger
}

func NewPayoutFailed(payouts PayoutStore, notifier notify.Enqueuer, log *slog.Logger) *PayoutFailed {
	return &PayoutFailed{
		payouts:  payouts,
		notifier: notifier,
		log:      log.With("handler", "payout_failed"),
	}
}

func (h *PayoutFailed) Handle(ctx context.Context, ev webhook.Event) error {
	var p payoutPayload
	if err := json.Unmarshal(ev.Data, &p); err != nil {
		return payloadErr(ev, err)
	}

	if err := h.payouts.UpdatePayoutStatus(ctx, p.ID, payout.StatusFailed, p.FailureMessage); err != nil {
		return storeErr(err)
	}

	h.log.Error("payout failed", "payout_id", p.ID, "merchant_id", p.MerchantID, "reason", p.FailureMessage)

	task := notify.Task{
		Type:       "payout_failed_alert",
		Priority:   notify.PriorityHigh,
		MerchantID: p.MerchantID,
		Payload:    ev.Data,
	}
	if err := h.notifier.Enqueue(ctx, task); err != nil {
		return webhook.Dependency(err)
	}

	return nil
}

type transferPayload struct {
	ID         string `json:"id"`
	MerchantID string `json:"merchant_id"`
	Status     string `json:"status"`
}

// TransferUpdated tracks marketplace transfer lifecycle changes.
type TransferUpdated struct {
	payouts PayoutStore
	log     *slog.Logger
}

func NewTransferUpdated(payouts PayoutStore, log *slog.Logger) *TransferUpdated {
	return &TransferUpdated{
		payouts: payouts,
		log:     log.With("handler", "transfer_updated"),
	}
}

func (h *TransferUpdated) Handle(ctx context.Context, ev webhook.Event) error {
	var t transferPayload
	if err := json.Unmarshal(ev.Data, &t); err != nil {
		return payloadErr(ev, err)
	}

	if err := h.payouts.UpdateTransferStatus(ctx, t.ID, t.Status); err != nil {
		return storeErr(err)
	}

	h.log.Info("transfer status updated", "transfer_id", t.ID, "status", t.Status)
	return nil
}
