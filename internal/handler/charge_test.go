package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"commercehub/internal/domain/order"
	"commercehub/internal/webhook"

	"github.com/stretchr/testify/require"
)

func chargeEvent(id, eventType, object string) webhook.Event {
	return webhook.Event{ID: id, Type: eventType, Data: json.RawMessage(object)}
}

func TestChargeSucceededMarksOrderPaid(t *testing.T) {
	orders := newFakeOrders()
	orders.statuses["ch_X"] = order.StatusPending
	merchants := newFakeMerchants()
	enq := &fakeEnqueuer{}
	h := NewChargeSucceeded(orders, merchants, enq, testLogger())

	ev := chargeEvent("evt_1", "charge.succeeded",
		`{"id":"ch_X","merchant_id":"m_1","amount":100,"currency":"usd"}`)
	require.NoError(t, h.Handle(context.Background(), ev))

	require.Equal(t, order.StatusPaid, orders.statuses["ch_X"])
	require.Equal(t, int64(100), merchants.revenue["m_1"])
	require.Equal(t, 1, merchants.sales["m_1"])

	receipts := enq.byType("receipt")
	require.Len(t, receipts, 1)
	require.Equal(t, "m_1", receipts[0].MerchantID)
}

func TestChargeSucceededIsValueIdempotent(t *testing.T) {
	orders := newFakeOrders()
	orders.statuses["ch_X"] = order.StatusPaid
	h := NewChargeSucceeded(orders, newFakeMerchants(), &fakeEnqueuer{}, testLogger())

	ev := chargeEvent("evt_1", "charge.succeeded", `{"id":"ch_X","merchant_id":"m_1","amount":100}`)
	require.NoError(t, h.Handle(context.Background(), ev))
	require.Equal(t, order.StatusPaid, orders.statuses["ch_X"])
}

func TestChargeSucceededUnknownOrderIsTerminal(t *testing.T) {
	h := NewChargeSucceeded(newFakeOrders(), newFakeMerchants(), &fakeEnqueuer{}, testLogger())

	ev := chargeEvent("evt_1", "charge.succeeded", `{"id":"ch_missing","merchant_id":"m_1","amount":100}`)
	err := h.Handle(context.Background(), ev)
	require.Error(t, err)
	require.Equal(t, webhook.KindHandlerLogic, webhook.KindOf(err))
}

func TestChargeSucceededStorageOutageIsRetryable(t *testing.T) {
	orders := newFakeOrders()
	orders.err = errors.New("connection refused")
	h := NewChargeSucceeded(orders, newFakeMerchants(), &fakeEnqueuer{}, testLogger())

	ev := chargeEvent("evt_1", "charge.succeeded", `{"id":"ch_X","merchant_id":"m_1","amount":100}`)
	err := h.Handle(context.Background(), ev)
	require.Equal(t, webhook.KindDependencyUnavailable, webhook.KindOf(err))
}

func TestChargeSucceededMalformedPayloadIsTerminal(t *testing.T) {
	h := NewChargeSucceeded(newFakeOrders(), newFakeMerchants(), &fakeEnqueuer{}, testLogger())

	ev := chargeEvent("evt_1", "charge.succeeded", `"not an object"`)
	err := h.Handle(context.Background(), ev)
	require.Equal(t, webhook.KindValidation, webhook.KindOf(err))
}

func TestChargeFailedNotifiesWithReason(t *testing.T) {
	orders := newFakeOrders()
	orders.statuses["ch_X"] = order.StatusPending
	enq := &fakeEnqueuer{}
	h := NewChargeFailed(orders, enq, testLogger())

	ev := chargeEvent("evt_2", "charge.failed",
		`{"id":"ch_X","merchant_id":"m_1","failure_message":"card declined"}`)
	require.NoError(t, h.Handle(context.Background(), ev))

	require.Equal(t, order.StatusFailed, orders.statuses["ch_X"])

	failures := enq.byType("payment_failed")
	require.Len(t, failures, 1)

	var payload struct {
		FailureMessage string `json:"failure_message"`
	}
	require.NoError(t, json.Unmarshal(failures[0].Payload, &payload))
	require.Equal(t, "card declined", payload.FailureMessage)
}
