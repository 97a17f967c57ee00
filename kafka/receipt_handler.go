package kafka

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"feeportal/ledger"
	"feeportal/mailer"
	"feeportal/model"
	"feeportal/pdf"
)

type paymentPaidEnvelope struct {
	EventType string                  `json:"event_type"`
	Data      ledger.PaymentPaidEvent `json:"data"`
}

// PaymentPaidHandler renders and emails the receipt for a confirmed
// payment. It runs off the request path; every failure here is logged
// and swallowed because the payment itself already succeeded.
func PaymentPaidHandler(db *gorm.DB, renderer *pdf.Renderer, sender mailer.Sender) func([]byte) {
	return func(msg []byte) {
		var envelope paymentPaidEnvelope
		if err := json.Unmarshal(msg, &envelope); err != nil {
			log.Printf("invalid payment.paid payload: %v", err)
			return
		}

		orderID := envelope.Data.OrderID
		var entry model.LedgerEntry
		if err := db.Where("order_id = ?", orderID).First(&entry).Error; err != nil {
			log.Printf("payment.paid order_id=%s: ledger entry lookup failed: %v", orderID, err)
			return
		}

		receipt, err := renderer.Build(&entry)
		if err != nil {
			log.Printf("payment.paid order_id=%s: receipt render failed: %v", orderID, err)
			return
		}

		err = sender.Send(mailer.Message{
			To:      entry.Email,
			Subject: fmt.Sprintf("Fee Receipt %s", pdf.ReceiptNumber(&entry)),
			HTML: fmt.Sprintf(
				"<p>Dear %s,</p><p>Your payment of Rs. %.2f towards %s has been received. The receipt is attached.</p>",
				entry.Name, entry.Amount, entry.FeeType,
			),
			AttachmentName: pdf.Filename(entry.Regno, entry.PaymentID, time.Now()),
			Attachment:     receipt,
		})
		if err != nil {
			log.Printf("payment.paid order_id=%s: receipt mail failed: %v", orderID, err)
			return
		}

		log.Printf("receipt sent order_id=%s email=%s", orderID, entry.Email)
	}
}
