package postgres

import (
	"context"
	"fmt"

	"commercehub/internal/domain/subscription"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

// Upsert writes the latest subscription state keyed by the platform's
// subscription id; repeated identical writes are value-idempotent.
func (r *SubscriptionRepository) Upsert(ctx context.Context, s *subscription.Subscription) error {
	const sql = `
		INSERT INTO subscriptions (external_id, merchant_id, plan_id, status, current_period_end, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (external_id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			status = EXCLUDED.status,
			current_period_end = EXCLUDED.current_period_end,
			updated_at = NOW()
	`

	_, err := pickExecutor(ctx, r.pool).Exec(ctx, sql,
		s.ExternalID, s.MerchantID, s.PlanID, s.Status, s.CurrentPeriodEnd)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	return nil
}

// Remove clears the subscription linkage after a deletion event. Removing an
// already-removed subscription is a no-op, not an error.
func (r *SubscriptionRepository) Remove(ctx context.Context, externalID string) error {
	const sql = `DELETE FROM subscriptions WHERE external_id = $1`

	_, err := pickExecutor(ctx, r.pool).Exec(ctx, sql, externalID)
	if err != nil {
		return fmt.Errorf("remove subscription: %w", err)
	}

	return nil
}
