package model

import "time"

const (
	StatusCreated = "created"
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
)

// LedgerEntry is one payment attempt, created when a gateway order is
// opened and transitioned to paid/failed exactly once. PaymentID and
// Signature are set only when status flips to paid.
type LedgerEntry struct {
	ID        string `gorm:"primaryKey" json:"id"` // uuid
	UserID    uint   `json:"user_id"`
	OrderID   string `gorm:"uniqueIndex" json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`

	Amount   float64 `json:"amount"` // rupees
	Currency string  `json:"currency"`
	FeeType  string  `json:"fee_type"`

	Status        string `json:"status"` // created | pending | paid | failed
	PaymentMethod string `json:"payment_method"`

	// payer snapshot, denormalized at order creation
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Regno string `json:"regno"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
