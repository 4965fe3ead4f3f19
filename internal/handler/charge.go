package handler

import (
	"context"
	"encoding/json"
	"log/slog"

	"commercehub/internal/domain/order"
	"commercehub/internal/notify"
	"commercehub/internal/webhook"
)

type chargePayload struct {
	ID             string `json:"id"`
	MerchantID     string `json:"merchant_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	FailureMessage string `json:"failure_message"`
}

// ChargeSucceeded marks the owning order paid, credits the merchant's
// revenue counters and enqueues a receipt.
type ChargeSucceeded struct {
	orders    OrderStore
	merchants MerchantStore
	notifier  notify.Enqueuer
	log       *slog.Logger
}

func NewChargeSucceeded(orders OrderStore, merchants MerchantStore, notifier notify.Enqueuer, log *slog.Logger) *ChargeSucceeded {
	return &ChargeSucceeded{
		orders:    orders,
		merchants: merchants,
		notifier:  notifier,
		log:       log.With("handler", "charge_succeeded"),
	}
}

func (h *ChargeSucceeded) Handle(ctx context.Context, ev webhook.Event) error {
	var charge chargePayload
	if err := json.Unmarshal(ev.Data, &charge); err != nil {
		return payloadErr(ev, err)
	}

	// Setting PAID twice is a row-level no-op; only the revenue counter
	// depends on the event-level dedup guarantee.
	if err := h.orders.UpdateStatusByChargeID(ctx, charge.ID, order.StatusPaid); err != nil {
		return storeErr(err)
	}

	if err := h.merchants.AddRevenue(ctx, charge.MerchantID, charge.Amount); err != nil {
		return storeErr(err)
	}

	task := notify.Task{
		Type:       "receipt",
		MerchantID: charge.MerchantID,
		Payload:    ev.Data,
	}
	if err := h.notifier.Enqueue(ctx, task); err != nil {
		return webhook.Dependency(err)
	}

	h.log.Info("order marked paid", "charge_id", charge.ID, "merchant_id", charge.MerchantID, "amount", charge.Amount)
	return nil
}

// ChargeFailed marks the owning order failed and notifies the merchant with
// the reported reason.
type ChargeFailed struct {
	orders   OrderStore
	notifier notify.Enqueuer
	log      *slog.Logger
}

func NewChargeFailed(orders OrderStore, notifier notify.Enqueuer, log *slog.Logger) *ChargeFailed {
	return &ChargeFailed{
		orders:   orders,
		notifier: notifier,
		log:      log.With("handler", "charge_failed"),
	}
}

func (h *ChargeFailed) Handle(ctx context.Context, ev webhook.Event) error {
	var charge chargePayload
	if err := json.Unmarshal(ev.Data, &charge); err != nil {
		return payloadErr(ev, err)
	}

	if err := h.orders.UpdateStatusByChargeID(ctx, charge.ID, order.StatusFailed); err != nil {
		return storeErr(err)
	}

	task := notify.Task{
		Type:       "payment_failed",
		MerchantID: charge.MerchantID,
		Payload:    ev.Data,
	}
	if err := h.notifier.Enqueue(ctx, task); err != nil {
		return webhook.Dependency(err)
	}

	h.log.Info("order marked failed", "charge_id", charge.ID, "reason", charge.FailureMessage)
	return nil
}
