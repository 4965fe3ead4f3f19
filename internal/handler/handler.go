// Package handler contains the business logic for each webhook event
// category. Handlers mutate domain records through the storage interfaces
// below and enqueue notifications; they never touch the dedup marker.
package handler

import (
	"context"
	"errors"
	"fmt"

	"commercehub/internal/domain/account"
	"commercehub/internal/domain/subscription"
	"commercehub/internal/infrastructure/postgres"
	"commercehub/internal/webhook"
)

// Storage interfaces are deliberately narrow so each handler states exactly
// what it touches and tests can swap in doubles.

type OrderStore interface {
	UpdateStatusByChargeID(ctx context.Context, chargeID string, status string) error
}

type MerchantStore interface {
	AddRevenue(ctx context.Context, merchantID string, amountCents int64) error
}

type AccountStore interface {
	GetByExternalID(ctx context.Context, externalID string) (*account.Account, error)
	UpsertCapabilities(ctx context.Context, a *account.Account) error
}

type PayoutStore interface {
	UpdatePayoutStatus(ctx context.Context, externalID, status, failureMessage string) error
	UpdateTransferStatus(ctx context.Context, externalID, status string) error
}

type SubscriptionStore interface {
	Upsert(ctx context.Context, s *subscription.Subscription) error
	Remove(ctx context.Context, externalID string) error
}

// storeErr classifies a Domain Storage failure. A missing record is a
// business-rule violation (terminal, alerted); anything else is assumed to
// be the storage collaborator being unavailable (retryable).
func storeErr(err error) error {
	if errors.Is(err, postgres.ErrNotFound) {
		return err
	}
	return webhook.Dependency(err)
}

// payloadErr marks an undecodable payload as terminal.
func payloadErr(ev webhook.Event, err error) error {
	return webhook.Validation(fmt.Errorf("decode %s payload for event %s: %w", ev.Type, ev.ID, err))
}
