package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"commercehub/internal/domain/account"
	"commercehub/internal/infrastructure/postgres"
	"commercehub/internal/notify"
	"commercehub/internal/webhook"
)

type accountPayload struct {
	ID             string `json:"id"`
	MerchantID     string `json:"merchant_id"`
	ChargesEnabled bool   `json:"charges_enabled"`
	PayoutsEnabled bool   `json:"payouts_enabled"`
	Requirements   struct {
		CurrentlyDue []string `json:"currently_due"`
	} `json:"requirements"`
}

// AccountUpdated persists the payee account's capability flags. The one-time
// activation notification fires only on the transition into fully enabled,
// which requires reading the previously persisted flags before writing; the
// read and write run in one transaction so a concurrent update cannot slip
// between them.
type AccountUpdated struct {
	tx       postgres.Transactor
	accounts AccountStore
	notifier notify.Enqueuer
	log      *slog.Logger
}

func NewAccountUpdated(tx postgres.Transactor, accounts AccountStore, notifier notify.Enqueuer, log *slog.Logger) *AccountUpdated {
	return &AccountUpdated{
		tx:       tx,
		accounts: accounts,
		notifier: notifier,
		log:      log.With("handler", "account_updated"),
	}
}

func (h *AccountUpdated) Handle(ctx context.Context, ev webhook.Event) error {
	var payload accountPayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		return payloadErr(ev, err)
	}

	updated := &account.Account{
		ExternalID:     payload.ID,
		MerchantID:     payload.MerchantID,
		ChargesEnabled: payload.ChargesEnabled,
		PayoutsEnabled: payload.PayoutsEnabled,
		Requirements:   payload.Requirements.CurrentlyDue,
		UpdatedAt:      time.Now().UTC(),
	}

	var activated bool

	err := h.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		prior, err := h.accounts.GetByExternalID(txCtx, payload.ID)
		if err != nil && !errors.Is(err, postgres.ErrNotFound) {
			return err
		}

		wasEnabled := prior != nil && prior.FullyEnabled()
		activated = !wasEnabled && updated.FullyEnabled()

		return h.accounts.UpsertCapabilities(txCtx, updated)
	})
	if err != nil {
		return storeErr(err)
	}

	if activated {
		task := notify.Task{
			Type:       "account_activated",
			MerchantID: payload.MerchantID,
			Payload:    ev.Data,
		}
		if err := h.notifier.Enqueue(ctx, task); err != nil {
			return webhook.Dependency(err)
		}
		h.log.Info("payment account fully enabled", "account_id", payload.ID, "merchant_id", payload.MerchantID)
	}

	return nil
}
