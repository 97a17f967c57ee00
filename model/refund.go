package model

import "time"

const (
	RefundRequested = "requested"
	RefundApproved  = "approved"
	RefundRejected  = "rejected"
)

// Refund is a request against a paid ledger entry. Approval never
// regresses the ledger entry itself; the entry stays paid and the
// refund row records the reversal.
type Refund struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `json:"user_id"`
	LedgerID  string     `json:"ledger_id"`
	OrderID   string     `json:"order_id"`
	Amount    float64    `json:"amount"`
	Reason    string     `json:"reason"`
	Status    string     `json:"status"` // requested | approved | rejected
	CreatedAt time.Time  `json:"created_at"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}
