package model

import "time"

const (
	TicketOpen   = "open"
	TicketClosed = "closed"
)

type Ticket struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Reply     string    `json:"reply"`
	Status    string    `json:"status"` // open | closed
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
