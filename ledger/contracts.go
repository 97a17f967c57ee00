package ledger

import (
	"context"

	"feeportal/model"
)

// Store is the persistence contract for ledger entries and payer
// balances.
type Store interface {
	CreateEntry(ctx context.Context, e *model.LedgerEntry) error
	FindByOrderID(ctx context.Context, orderID string) (*model.LedgerEntry, error)
	// MarkPaid transitions an entry to paid only when it is still in
	// created or pending. The bool reports whether this call performed
	// the transition; a duplicate confirmation gets false.
	MarkPaid(ctx context.Context, orderID, paymentID, signature string) (bool, error)
	MarkFailed(ctx context.Context, orderID string) error
	// ApplyBalance adds amount to the payer's cumulative paid figure
	// and decrements their pending amount, clamped at zero.
	ApplyBalance(ctx context.Context, userID uint, amount float64) error
	ListByUser(ctx context.Context, userID uint) ([]model.LedgerEntry, error)
	ListAll(ctx context.Context) ([]model.LedgerEntry, error)
}

// Publisher emits payment lifecycle events. Publishing is best effort;
// the reconciler logs failures and moves on.
type Publisher interface {
	PublishPaymentPaid(evt PaymentPaidEvent) error
}

// IdemGuard deduplicates order creation on a caller-supplied key.
type IdemGuard interface {
	AcquireIdempotency(ctx context.Context, key string) (bool, error)
}

type PaymentPaidEvent struct {
	OrderID   string  `json:"order_id"`
	PaymentID string  `json:"payment_id"`
	UserID    uint    `json:"user_id"`
	Amount    float64 `json:"amount"`
	Email     string  `json:"email"`
	Regno     string  `json:"regno"`
	PaidAt    string  `json:"paid_at"`
}
