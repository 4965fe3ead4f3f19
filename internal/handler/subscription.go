package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"commercehub/internal/domain/subscription"
	"commercehub/internal/notify"
	"commercehub/internal/webhook"
)

type subscriptionPayload struct {
	ID               string `json:"id"`
	MerchantID       string `json:"merchant_id"`
	PlanID           string `json:"plan_id"`
	Status           string `json:"status"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
}

// SubscriptionUpdated upserts the subscription state on the owning account.
// Registered for both creation and update events, since an upsert covers both.
type SubscriptionUpdated struct {
	subs SubscriptionStore
	log  *slog.Logger
}

func NewSubscriptionUpdated(subs SubscriptionStore, log *slog.Logger) *SubscriptionUpdated {
	return &SubscriptionUpdated{
		subs: subs,
		log:  log.With("handler", "subscription_updated"),
	}
}

func (h *SubscriptionUpdated) Handle(ctx context.Context, ev webhook.Event) error {
	var p subscriptionPayload
	if err := json.Unmarshal(ev.Data, &p); err != nil {
		return payloadErr(ev, err)
	}

	sub := &subscription.Subscription{
		ExternalID:       p.ID,
		MerchantID:       p.MerchantID,
		PlanID:           p.PlanID,
		Status:           p.Status,
		CurrentPeriodEnd: time.Unix(p.CurrentPeriodEnd, 0).UTC(),
	}

	if err := h.subs.Upsert(ctx, sub); err != nil {
		return storeErr(err)
	}

	h.log.Info("subscription upserted", "subscription_id", p.ID, "status", p.Status)
	return nil
}

// SubscriptionDeleted clears the linkage and tells the merchant their plan
// was cancelled.
type SubscriptionDeleted struct {
	subs     SubscriptionStore
	notifier notify.Enqueuer
	log      *slog.Logger
}

func NewSubscriptionDeleted(subs SubscriptionStore, notifier notify.Enqueuer, log *slog.Logger) *SubscriptionDeleted {
	return &SubscriptionDeleted{
		subs:     subs,
		notifier: notifier,
		log:      log.With("handler", "subscription_deleted"),
	}
}

func (h *SubscriptionDeleted) Handle(ctx context.Context, ev webhook.Event) error {
	var p subscriptionPayload
	if err := json.Unmarshal(ev.Data, &p); err != nil {
		return payloadErr(ev, err)
	}

	if err := h.subs.Remove(ctx, p.ID); err != nil {
		return storeErr(err)
	}

	task := notify.Task{
		Type:       "subscription_cancelled",
		MerchantID: p.MerchantID,
		Payload:    ev.Data,
	}
	if err := h.notifier.Enqueue(ctx, task); err != nil {
		return webhook.Dependency(err)
	}

	h.log.Info("subscription removed", "subscription_id", p.ID)
	return nil
}
