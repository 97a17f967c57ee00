package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Order is the gateway order as handed back to the browser so it can
// open the checkout widget.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// OrderCreator is the slice of the gateway this service depends on.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]interface{}) (*Order, error)
}

type Razorpay struct {
	client *razorpay.Client
	KeyID  string
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{
		client: razorpay.NewClient(keyID, keySecret),
		KeyID:  keyID,
	}
}

func (r *Razorpay) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]interface{}) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := r.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := body["id"].(string)
	status, _ := body["status"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create: no order id in response")
	}

	return &Order{
		ID:       id,
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  receipt,
		Status:   status,
	}, nil
}
