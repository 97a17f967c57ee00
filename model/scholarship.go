package model

import "time"

const (
	ScholarshipApplied  = "applied"
	ScholarshipApproved = "approved"
	ScholarshipRejected = "rejected"
)

type Scholarship struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `json:"user_id"`
	Type        string     `json:"type"` // merit | need | sports
	Reason      string     `json:"reason"`
	DocumentURL string     `json:"document_url"`
	Amount      float64    `json:"amount"` // granted amount, set on approval
	Status      string     `json:"status"` // applied | approved | rejected
	CreatedAt   time.Time  `json:"created_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}
