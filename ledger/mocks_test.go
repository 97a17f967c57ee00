package ledger

import (
	"context"

	"github.com/stretchr/testify/mock"

	"feeportal/gateway"
	"feeportal/model"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) CreateEntry(ctx context.Context, e *model.LedgerEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *StoreMock) FindByOrderID(ctx context.Context, orderID string) (*model.LedgerEntry, error) {
	args := m.Called(ctx, orderID)
	if e, ok := args.Get(0).(*model.LedgerEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) MarkPaid(ctx context.Context, orderID, paymentID, signature string) (bool, error) {
	args := m.Called(ctx, orderID, paymentID, signature)
	return args.Bool(0), args.Error(1)
}

func (m *StoreMock) MarkFailed(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *StoreMock) ApplyBalance(ctx context.Context, userID uint, amount float64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *StoreMock) ListByUser(ctx context.Context, userID uint) ([]model.LedgerEntry, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]model.LedgerEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) ListAll(ctx context.Context) ([]model.LedgerEntry, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]model.LedgerEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type GatewayMock struct {
	mock.Mock
}

func (m *GatewayMock) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]interface{}) (*gateway.Order, error) {
	args := m.Called(ctx, amountPaise, currency, receipt, notes)
	if o, ok := args.Get(0).(*gateway.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishPaymentPaid(evt PaymentPaidEvent) error {
	args := m.Called(evt)
	return args.Error(0)
}

type GuardMock struct {
	mock.Mock
}

func (m *GuardMock) AcquireIdempotency(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
