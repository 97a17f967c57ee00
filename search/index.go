package search

import (
	"context"
	"fmt"
	"log"

	"feeportal/model"
)

const (
	IndexStudents      = "students"
	IndexLedger        = "ledger"
	IndexAnnouncements = "announcements"
)

// Indexing is best effort everywhere it is called from: a write that
// cannot reach Elasticsearch only costs admin search freshness.

func (c *Client) IndexStudent(ctx context.Context, s *model.Student) {
	doc := map[string]interface{}{
		"id":             s.ID,
		"name":           s.Name,
		"email":          s.Email,
		"regno":          s.Regno,
		"course":         s.Course,
		"year":           s.Year,
		"amount_paid":    s.AmountPaid,
		"pending_amount": s.PendingAmount,
	}
	if err := c.index(ctx, IndexStudents, fmt.Sprintf("%d", s.ID), doc); err != nil {
		log.Printf("index student %d: %v", s.ID, err)
	}
}

func (c *Client) IndexLedgerEntry(ctx context.Context, e *model.LedgerEntry) {
	doc := map[string]interface{}{
		"id":         e.ID,
		"order_id":   e.OrderID,
		"payment_id": e.PaymentID,
		"user_id":    e.UserID,
		"regno":      e.Regno,
		"email":      e.Email,
		"amount":     e.Amount,
		"fee_type":   e.FeeType,
		"status":     e.Status,
	}
	if err := c.index(ctx, IndexLedger, e.ID, doc); err != nil {
		log.Printf("index ledger entry %s: %v", e.ID, err)
	}
}

func (c *Client) IndexAnnouncement(ctx context.Context, a *model.Announcement) {
	doc := map[string]interface{}{
		"id":    a.ID,
		"title": a.Title,
		"body":  a.Body,
	}
	if err := c.index(ctx, IndexAnnouncements, fmt.Sprintf("%d", a.ID), doc); err != nil {
		log.Printf("index announcement %d: %v", a.ID, err)
	}
}
