package model

import "time"

type Student struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Regno    string `gorm:"uniqueIndex" json:"regno"`
	Course   string `json:"course"`
	Year     int    `json:"year"`
	Role     string `json:"role"` // "student" or "admin"

	// AmountPaid only ever grows; PendingAmount only ever shrinks
	// (clamped at zero) and is an estimate, not a derived balance.
	AmountPaid    float64 `json:"amount_paid"`
	PendingAmount float64 `json:"pending_amount"`

	CreatedAt time.Time `json:"created_at"`
}
