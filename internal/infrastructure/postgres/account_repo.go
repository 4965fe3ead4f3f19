package postgres

import (
	"context"
	"errors"
	"fmt"

	"commercehub/internal/domain/account"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// GetByExternalID returns the persisted capability flags for the platform
// account. Reads inside a transaction see the transaction's snapshot, which
// the account.updated handler relies on for its read-then-write sequence.
func (r *AccountRepository) GetByExternalID(ctx context.Context, externalID string) (*account.Account, error) {
	const sql = `
		SELECT external_id, merchant_id, charges_enabled, payouts_enabled, requirements, updated_at
		FROM payment_accounts
		WHERE external_id = $1
	`

	var row interface {
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	} = r.pool
	if tx := GetTx(ctx); tx != nil {
		row = tx
	}

	var a account.Account
	err := row.QueryRow(ctx, sql, externalID).Scan(
		&a.ExternalID, &a.MerchantID, &a.ChargesEnabled, &a.PayoutsEnabled,
		&a.Requirements, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("payment account %s: %w", externalID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment account: %w", err)
	}

	return &a, nil
}

// UpsertCapabilities writes the latest capability flags, last-write-wins per
// field. Repeating an identical write is a no-op by value.
func (r *AccountRepository) UpsertCapabilities(ctx context.Context, a *account.Account) error {
	const sql = `
		INSERT INTO payment_accounts (external_id, merchant_id, charges_enabled, payouts_enabled, requirements, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (external_id) DO UPDATE SET
			charges_enabled = EXCLUDED.charges_enabled,
			payouts_enabled = EXCLUDED.payouts_enabled,
			requirements = EXCLUDED.requirements,
			updated_at = NOW()
	`

	_, err := pickExecutor(ctx, r.pool).Exec(ctx, sql,
		a.ExternalID, a.MerchantID, a.ChargesEnabled, a.PayoutsEnabled, a.Requirements)
	if err != nil {
		return fmt.Errorf("upsert payment account capabilities: %w", err)
	}

	return nil
}
