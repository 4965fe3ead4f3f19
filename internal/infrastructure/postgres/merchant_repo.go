package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MerchantRepository struct {
	pool *pgxpool.Pool
}

func NewMerchantRepository(pool *pgxpool.Pool) *MerchantRepository {
	return &MerchantRepository{pool: pool}
}

// AddRevenue bumps the merchant's aggregate revenue counters. Not
// value-idempotent, so callers must only invoke it once per event; the
// event-level dedup marker provides that guarantee.
func (r *MerchantRepository) AddRevenue(ctx context.Context, merchantID string, amountCents int64) error {
	const sql = `
		UPDATE merchants
		SET gross_revenue_cents = gross_revenue_cents + $2,
		    sales_count = sales_count + 1,
		    updated_at = NOW()
		WHERE id = $1
	`

	cmdTag, err := pickExecutor(ctx, r.pool).Exec(ctx, sql, merchantID, amountCents)
	if err != nil {
		return fmt.Errorf("add merchant revenue: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("merchant %s: %w", merchantID, ErrNotFound)
	}

	return nil
}
