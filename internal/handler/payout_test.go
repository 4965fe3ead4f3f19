package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"commercehub/internal/domain/payout"
	"commercehub/internal/notify"
	"commercehub/internal/webhook"

	"github.com/stretchr/testify/require"
)

func TestPayoutPaidUpdatesStatus(t *testing.T) {
	payouts := &fakePayouts{}
	h := NewPayoutPaid(payouts, testLogger())

	ev := webhook.Event{
		ID:   "evt_1",
		Type: "payout.paid",
		Data: json.RawMessage(`{"id":"po_1","merchant_id":"m_1","amount":12000}`),
	}
	require.NoError(t, h.Handle(context.Background(), ev))

	require.Len(t, payouts.payouts, 1)
	require.Equal(t, "po_1", payouts.payouts[0].externalID)
	require.Equal(t, payout.StatusPaid, payouts.payouts[0].status)
}

func TestPayoutFailedAlertsMerchant(t *testing.T) {
	payouts := &fakePayouts{}
	enq := &fakeEnqueuer{}
	h := NewPayoutFailed(payouts, enq, testLogger())

	ev := webhook.Event{
		ID:   "evt_2",
		Type: "payout.failed",
		Data: json.RawMessage(`{"id":"po_1","merchant_id":"m_1","amount":12000,"failure_message":"account closed"}`),
	}
	require.NoError(t, h.Handle(context.Background(), ev))

	require.Len(t, payouts.payouts, 1)
	require.Equal(t, payout.StatusFailed, payouts.payouts[0].status)
	require.Equal(t, "account closed", payouts.payouts[0].failureMessage)

	alerts := enq.byType("payout_failed_alert")
	require.Len(t, alerts, 1)
	require.Equal(t, notify.PriorityHigh, alerts[0].Priority)
	require.Equal(t, "m_1", alerts[0].MerchantID)
}

func TestTransferUpdatedTracksStatus(t *testing.T) {
	payouts := &fakePayouts{}
	h := NewTransferUpdated(payouts, testLogger())

	ev := webhook.Event{
		ID:   "evt_3",
		Type: "transfer.updated",
		Data: json.RawMessage(`{"id":"tr_1","merchant_id":"m_1","status":"IN_TRANSIT"}`),
	}
	require.NoError(t, h.Handle(context.Background(), ev))

	require.Len(t, payouts.transfers, 1)
	require.Equal(t, "tr_1", payouts.transfers[0].externalID)
	require.Equal(t, "IN_TRANSIT", payouts.transfers[0].status)
}

func TestPayoutStorageOutageIsRetryable(t *testing.T) {
	payouts := &fakePayouts{err: errors.New("connection refused")}
	h := NewPayoutPaid(payouts, testLogger())

	ev := webhook.Event{ID: "evt_1", Type: "payout.paid", Data: json.RawMessage(`{"id":"po_1"}`)}
	err := h.Handle(context.Background(), ev)
	require.Equal(t, webhook.KindDependencyUnavailable, webhook.KindOf(err))
}
