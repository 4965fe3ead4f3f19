package account

import "time"

// Account mirrors a merchant's payee account on the payment platform.
// Capability flags are overwritten from each account.updated event;
// the activation notification depends on the previously persisted flags,
// so callers must read before writing.
type Account struct {
	ExternalID     string    `json:"external_id"`
	MerchantID     string    `json:"merchant_id"`
	ChargesEnabled bool      `json:"charges_enabled"`
	PayoutsEnabled bool      `json:"payouts_enabled"`
	Requirements   []string  `json:"requirements"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullyEnabled reports whether the account can both accept payments and
// receive payouts with no outstanding requirements.
func (a *Account) FullyEnabled() bool {
	return a.ChargesEnabled && a.PayoutsEnabled && len(a.Requirements) == 0
}
