package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"commercehub/internal/domain/account"
	"commercehub/internal/domain/subscription"
	"commercehub/internal/infrastructure/postgres"
	"commercehub/internal/notify"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeOrders struct {
	statuses map[string]string
	err      error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{statuses: make(map[string]string)}
}

func (f *fakeOrders) UpdateStatusByChargeID(_ context.Context, chargeID, status string) error {
	if f.err != nil {
		return f.err
	}
	if _, exists := f.statuses[chargeID]; !exists {
		return fmt.Errorf("order for charge %s: %w", chargeID, postgres.ErrNotFound)
	}
	f.statuses[chargeID] = status
	return nil
}

type fakeMerchants struct {
	revenue map[string]int64
	sales   map[string]int
	err     error
}

func newFakeMerchants() *fakeMerchants {
	return &fakeMerchants{revenue: make(map[string]int64), sales: make(map[string]int)}
}

func (f *fakeMerchants) AddRevenue(_ context.Context, merchantID string, amountCents int64) error {
	if f.err != nil {
		return f.err
	}
	f.revenue[merchantID] += amountCents
	f.sales[merchantID]++
	return nil
}

type fakeAccounts struct {
	accounts  map[string]*account.Account
	getErr    error
	upsertErr error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{accounts: make(map[string]*account.Account)}
}

func (f *fakeAccounts) GetByExternalID(_ context.Context, externalID string) (*account.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, exists := f.accounts[externalID]
	if !exists {
		return nil, fmt.Errorf("payment account %s: %w", externalID, postgres.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAccounts) UpsertCapabilities(_ context.Context, a *account.Account) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	copied := *a
	f.accounts[a.ExternalID] = &copied
	return nil
}

type payoutUpdate struct {
	externalID     string
	status         string
	failureMessage string
}

type fakePayouts struct {
	payouts   []payoutUpdate
	transfers []payoutUpdate
	err       error
}

func (f *fakePayouts) UpdatePayoutStatus(_ context.Context, externalID, status, failureMessage string) error {
	if f.err != nil {
		return f.err
	}
	f.payouts = append(f.payouts, payoutUpdate{externalID, status, failureMessage})
	return nil
}

func (f *fakePayouts) UpdateTransferStatus(_ context.Context, externalID, status string) error {
	if f.err != nil {
		return f.err
	}
	f.transfers = append(f.transfers, payoutUpdate{externalID: externalID, status: status})
	return nil
}

type fakeSubs struct {
	subs    map[string]*subscription.Subscription
	removed []string
	err     error
}

func newFakeSubs() *fakeSubs {
	return &fakeSubs{subs: make(map[string]*subscription.Subscription)}
}

func (f *fakeSubs) Upsert(_ context.Context, s *subscription.Subscription) error {
	if f.err != nil {
		return f.err
	}
	copied := *s
	f.subs[s.ExternalID] = &copied
	return nil
}

func (f *fakeSubs) Remove(_ context.Context, externalID string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.subs, externalID)
	f.removed = append(f.removed, externalID)
	return nil
}

type fakeEnqueuer struct {
	tasks []notify.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, task notify.Task) error {
	if f.err != nil {
		return f.err
	}
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeEnqueuer) byType(taskType string) []notify.Task {
	var matched []notify.Task
	for _, task := range f.tasks {
		if task.Type == taskType {
			matched = append(matched, task)
		}
	}
	return matched
}

// fakeTx runs the function without a real transaction.
type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error {
	return tFunc(ctx)
}
