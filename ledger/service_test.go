package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"feeportal/gateway"
	"feeportal/model"
)

const (
	testKeyID  = "rzp_test_key"
	testSecret = "rzp_test_secret"
)

func validCreateReq() CreateOrderRequest {
	return CreateOrderRequest{
		UserID: 7,
		Amount: 500.00,
		Name:   "Asha Rao",
		Email:  "asha@example.edu",
		Phone:  "9876543210",
		Regno:  "20CS101",
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateOrderRequest)
	}{
		{"zero amount", func(r *CreateOrderRequest) { r.Amount = 0 }},
		{"negative amount", func(r *CreateOrderRequest) { r.Amount = -10 }},
		{"missing name", func(r *CreateOrderRequest) { r.Name = "" }},
		{"missing email", func(r *CreateOrderRequest) { r.Email = "" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			store := new(StoreMock)
			gw := new(GatewayMock)
			svc := NewService(store, gw, nil, nil, testKeyID, testSecret)

			req := validCreateReq()
			tt.mutate(&req)

			resp, err := svc.CreateOrder(ctx, req)
			require.Nil(t, resp)
			require.ErrorIs(t, err, ErrValidation)
			gw.AssertNotCalled(t, "CreateOrder")
			store.AssertNotCalled(t, "CreateEntry")
		})
	}
}

func TestCreateOrder_ScalesToPaiseAndPersists(t *testing.T) {
	ctx := context.Background()

	store := new(StoreMock)
	gw := new(GatewayMock)
	svc := NewService(store, gw, nil, nil, testKeyID, testSecret)

	gw.On("CreateOrder", ctx, int64(50000), "INR", mock.AnythingOfType("string"), mock.Anything).
		Return(&gateway.Order{ID: "order_abc", Amount: 50000, Currency: "INR", Status: "created"}, nil)
	store.On("CreateEntry", ctx, mock.MatchedBy(func(e *model.LedgerEntry) bool {
		return e.OrderID == "order_abc" &&
			e.Status == model.StatusCreated &&
			e.Amount == 500.00 &&
			e.Currency == "INR" &&
			e.FeeType == "General" &&
			e.PaymentID == "" &&
			e.Signature == "" &&
			e.Email == "asha@example.edu"
	})).Return(nil)

	resp, err := svc.CreateOrder(ctx, validCreateReq())
	require.NoError(t, err)
	require.Equal(t, "order_abc", resp.Order.ID)
	require.Equal(t, int64(50000), resp.Order.Amount)
	require.Equal(t, testKeyID, resp.Key)

	gw.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestCreateOrder_FeeTypeOverride(t *testing.T) {
	ctx := context.Background()

	store := new(StoreMock)
	gw := new(GatewayMock)
	svc := NewService(store, gw, nil, nil, testKeyID, testSecret)

	gw.On("CreateOrder", ctx, int64(125050), "INR", mock.Anything, mock.Anything).
		Return(&gateway.Order{ID: "order_hostel"}, nil)
	store.On("CreateEntry", ctx, mock.MatchedBy(func(e *model.LedgerEntry) bool {
		return e.FeeType == "Hostel"
	})).Return(nil)

	req := validCreateReq()
	req.Amount = 1250.50 // rounds to 125050 paise
	req.FeeType = "Hostel"

	_, err := svc.CreateOrder(ctx, req)
	require.NoError(t, err)
	gw.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestCreateOrder_GatewayError(t *testing.T) {
	ctx := context.Background()

	store := new(StoreMock)
	gw := new(GatewayMock)
	svc := NewService(store, gw, nil, nil, testKeyID, testSecret)

	gw.On("CreateOrder", ctx, int64(50000), "INR", mock.Anything, mock.Anything).
		Return(nil, errors.New("gateway down"))

	resp, err := svc.CreateOrder(ctx, validCreateReq())
	require.Nil(t, resp)
	require.ErrorIs(t, err, ErrExternal)
	store.AssertNotCalled(t, "CreateEntry")
}

func TestCreateOrder_IdempotencyKeyReuse(t *testing.T) {
	ctx := context.Background()

	store := new(StoreMock)
	gw := new(GatewayMock)
	guard := new(GuardMock)
	svc := NewService(store, gw, nil, guard, testKeyID, testSecret)

	guard.On("AcquireIdempotency", ctx, "key-1").Return(false, nil)

	req := validCreateReq()
	req.IdempotencyKey = "key-1"

	resp, err := svc.CreateOrder(ctx, req)
	require.Nil(t, resp)
	require.ErrorIs(t, err, ErrConflict)
	gw.AssertNotCalled(t, "CreateOrder")
	store.AssertNotCalled(t, "CreateEntry")
}

func TestVerifyAndReconcile_MissingFields(t *testing.T) {
	store := new(StoreMock)
	svc := NewService(store, new(GatewayMock), nil, nil, testKeyID, testSecret)

	for _, req := range []VerifyRequest{
		{PaymentID: "pay_1", Signature: "sig"},
		{OrderID: "order_1", Signature: "sig"},
		{OrderID: "order_1", PaymentID: "pay_1"},
	} {
		err := svc.VerifyAndReconcile(context.Background(), req)
		require.ErrorIs(t, err, ErrValidation)
	}
	store.AssertNotCalled(t, "FindByOrderID")
}

func TestVerifyAndReconcile_BadSignature(t *testing.T) {
	store := new(StoreMock)
	svc := NewService(store, new(GatewayMock), nil, nil, testKeyID, testSecret)

	err := svc.VerifyAndReconcile(context.Background(), VerifyRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_abc",
		Signature: "deadbeef",
	})
	require.ErrorIs(t, err, ErrAuthenticity)

	// a tampered confirmation must not touch the store
	store.AssertNotCalled(t, "FindByOrderID")
	store.AssertNotCalled(t, "MarkPaid")
	store.AssertNotCalled(t, "ApplyBalance")
}

func TestVerifyAndReconcile_Success(t *testing.T) {
	ctx := context.Background()
	sig := gateway.ExpectedSignature("order_abc", "pay_abc", testSecret)

	store := new(StoreMock)
	producer := new(PublisherMock)
	svc := NewService(store, new(GatewayMock), producer, nil, testKeyID, testSecret)

	entry := &model.LedgerEntry{
		ID: "e1", UserID: 7, OrderID: "order_abc",
		Amount: 500.00, Email: "asha@example.edu", Regno: "20CS101",
		Status: model.StatusCreated,
	}
	store.On("FindByOrderID", ctx, "order_abc").Return(entry, nil)
	store.On("MarkPaid", ctx, "order_abc", "pay_abc", sig).Return(true, nil)
	store.On("ApplyBalance", ctx, uint(7), 500.00).Return(nil)
	producer.On("PublishPaymentPaid", mock.MatchedBy(func(evt PaymentPaidEvent) bool {
		return evt.OrderID == "order_abc" && evt.PaymentID == "pay_abc" &&
			evt.UserID == 7 && evt.Amount == 500.00
	})).Return(nil)

	err := svc.VerifyAndReconcile(ctx, VerifyRequest{
		OrderID: "order_abc", PaymentID: "pay_abc", Signature: sig,
	})
	require.NoError(t, err)
	store.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestVerifyAndReconcile_DuplicateIsNoOp(t *testing.T) {
	ctx := context.Background()
	sig := gateway.ExpectedSignature("order_abc", "pay_abc", testSecret)

	store := new(StoreMock)
	producer := new(PublisherMock)
	svc := NewService(store, new(GatewayMock), producer, nil, testKeyID, testSecret)

	entry := &model.LedgerEntry{ID: "e1", UserID: 7, OrderID: "order_abc", Amount: 500.00, Status: model.StatusPaid}
	store.On("FindByOrderID", ctx, "order_abc").Return(entry, nil)
	store.On("MarkPaid", ctx, "order_abc", "pay_abc", sig).Return(false, nil)

	err := svc.VerifyAndReconcile(ctx, VerifyRequest{
		OrderID: "order_abc", PaymentID: "pay_abc", Signature: sig,
	})
	require.NoError(t, err)

	// balance applied exactly once per order id: second delivery does nothing
	store.AssertNotCalled(t, "ApplyBalance")
	producer.AssertNotCalled(t, "PublishPaymentPaid")
}

func TestVerifyAndReconcile_UnknownOrder(t *testing.T) {
	ctx := context.Background()
	sig := gateway.ExpectedSignature("order_missing", "pay_1", testSecret)

	store := new(StoreMock)
	svc := NewService(store, new(GatewayMock), nil, nil, testKeyID, testSecret)

	store.On("FindByOrderID", ctx, "order_missing").Return(nil, ErrNotFound)

	err := svc.VerifyAndReconcile(ctx, VerifyRequest{
		OrderID: "order_missing", PaymentID: "pay_1", Signature: sig,
	})
	require.ErrorIs(t, err, ErrNotFound)
	store.AssertNotCalled(t, "MarkPaid")
	store.AssertNotCalled(t, "ApplyBalance")
}

func TestVerifyAndReconcile_PublishFailureDoesNotFailPayment(t *testing.T) {
	ctx := context.Background()
	sig := gateway.ExpectedSignature("order_abc", "pay_abc", testSecret)

	store := new(StoreMock)
	producer := new(PublisherMock)
	svc := NewService(store, new(GatewayMock), producer, nil, testKeyID, testSecret)

	entry := &model.LedgerEntry{ID: "e1", UserID: 7, OrderID: "order_abc", Amount: 500.00, Status: model.StatusCreated}
	store.On("FindByOrderID", ctx, "order_abc").Return(entry, nil)
	store.On("MarkPaid", ctx, "order_abc", "pay_abc", sig).Return(true, nil)
	store.On("ApplyBalance", ctx, uint(7), 500.00).Return(nil)
	producer.On("PublishPaymentPaid", mock.Anything).Return(errors.New("broker down"))

	err := svc.VerifyAndReconcile(ctx, VerifyRequest{
		OrderID: "order_abc", PaymentID: "pay_abc", Signature: sig,
	})
	require.NoError(t, err)
}

// End to end through the service: create an order for 500.00, then
// submit the matching confirmation.
func TestOrderThenReconcileScenario(t *testing.T) {
	ctx := context.Background()

	store := new(StoreMock)
	gw := new(GatewayMock)
	producer := new(PublisherMock)
	svc := NewService(store, gw, producer, nil, testKeyID, testSecret)

	var created *model.LedgerEntry
	gw.On("CreateOrder", ctx, int64(50000), "INR", mock.Anything, mock.Anything).
		Return(&gateway.Order{ID: "order_e2e", Amount: 50000, Currency: "INR"}, nil)
	store.On("CreateEntry", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*model.LedgerEntry)
	}).Return(nil)

	resp, err := svc.CreateOrder(ctx, validCreateReq())
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, model.StatusCreated, created.Status)
	require.Equal(t, int64(50000), resp.Order.Amount)

	sig := gateway.ExpectedSignature("order_e2e", "pay_e2e", testSecret)
	store.On("FindByOrderID", ctx, "order_e2e").Return(created, nil)
	store.On("MarkPaid", ctx, "order_e2e", "pay_e2e", sig).Return(true, nil)
	store.On("ApplyBalance", ctx, uint(7), 500.00).Return(nil)
	producer.On("PublishPaymentPaid", mock.Anything).Return(nil)

	err = svc.VerifyAndReconcile(ctx, VerifyRequest{
		OrderID: "order_e2e", PaymentID: "pay_e2e", Signature: sig,
	})
	require.NoError(t, err)
	store.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestMarkFailed_RequiresOrderID(t *testing.T) {
	svc := NewService(new(StoreMock), new(GatewayMock), nil, nil, testKeyID, testSecret)
	require.ErrorIs(t, svc.MarkFailed(context.Background(), ""), ErrValidation)
}
