package ledger

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"feeportal/gateway"
	"feeportal/model"
)

type Service struct {
	store    Store
	gateway  gateway.OrderCreator
	producer Publisher
	guard    IdemGuard

	keyID  string // public key the browser needs to open checkout
	secret string // shared secret for confirmation signatures
}

func NewService(store Store, gw gateway.OrderCreator, producer Publisher, guard IdemGuard, keyID, secret string) *Service {
	return &Service{
		store:    store,
		gateway:  gw,
		producer: producer,
		guard:    guard,
		keyID:    keyID,
		secret:   secret,
	}
}

type CreateOrderRequest struct {
	UserID  uint    `json:"user_id"`
	Amount  float64 `json:"amount"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Regno   string  `json:"regno"`
	FeeType string  `json:"fee_type"`

	// Optional; when set, a reused key is rejected instead of opening
	// a second order.
	IdempotencyKey string `json:"-"`
}

type CreateOrderResponse struct {
	Order *gateway.Order     `json:"order"`
	Key   string             `json:"key"`
	Entry *model.LedgerEntry `json:"entry"`
}

type VerifyRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// CreateOrder opens a gateway order and records the pending ledger
// entry for it.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	if req.IdempotencyKey != "" && s.guard != nil {
		ok, err := s.guard.AcquireIdempotency(ctx, req.IdempotencyKey)
		if err != nil {
			log.Printf("component=ledger method=CreateOrder idem_key=%s err=%v", req.IdempotencyKey, err)
		} else if !ok {
			return nil, fmt.Errorf("%w: order already created for this key", ErrConflict)
		}
	}

	feeType := req.FeeType
	if feeType == "" {
		feeType = "General"
	}

	id := uuid.NewString()
	paise := int64(math.Round(req.Amount * 100))

	order, err := s.gateway.CreateOrder(ctx, paise, "INR", id, map[string]interface{}{
		"regno":    req.Regno,
		"fee_type": feeType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternal, err)
	}

	entry := &model.LedgerEntry{
		ID:       id,
		UserID:   req.UserID,
		OrderID:  order.ID,
		Amount:   req.Amount,
		Currency: "INR",
		FeeType:  feeType,
		Status:   model.StatusCreated,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Regno:    req.Regno,
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	return &CreateOrderResponse{Order: order, Key: s.keyID, Entry: entry}, nil
}

// VerifyAndReconcile checks the checkout confirmation signature and, on
// the first valid confirmation for an order, flips the entry to paid
// and applies the amount to the payer's balance. A duplicate
// confirmation verifies cleanly but mutates nothing.
func (s *Service) VerifyAndReconcile(ctx context.Context, req VerifyRequest) error {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return fmt.Errorf("%w: order id, payment id and signature are required", ErrValidation)
	}

	if !gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.secret) {
		return ErrAuthenticity
	}

	return s.reconcile(ctx, req.OrderID, req.PaymentID, req.Signature)
}

// ReconcileCaptured handles a webhook-sourced confirmation. The body
// signature has already been verified by the caller.
func (s *Service) ReconcileCaptured(ctx context.Context, orderID, paymentID, signature string) error {
	if orderID == "" || paymentID == "" {
		return fmt.Errorf("%w: order id and payment id are required", ErrValidation)
	}
	return s.reconcile(ctx, orderID, paymentID, signature)
}

func (s *Service) reconcile(ctx context.Context, orderID, paymentID, signature string) error {
	entry, err := s.store.FindByOrderID(ctx, orderID)
	if err != nil {
		log.Printf("component=ledger method=reconcile order_id=%s err=%v", orderID, err)
		return err
	}

	transitioned, err := s.store.MarkPaid(ctx, orderID, paymentID, signature)
	if err != nil {
		return err
	}
	if !transitioned {
		// Already paid; exactly-once balance application relies on the
		// status-guarded update, so there is nothing left to do.
		log.Printf("component=ledger method=reconcile order_id=%s msg=duplicate confirmation ignored", orderID)
		return nil
	}

	if err := s.store.ApplyBalance(ctx, entry.UserID, entry.Amount); err != nil {
		log.Printf("component=ledger method=reconcile order_id=%s user_id=%d err=%v", orderID, entry.UserID, err)
		return err
	}

	if s.producer != nil {
		evt := PaymentPaidEvent{
			OrderID:   orderID,
			PaymentID: paymentID,
			UserID:    entry.UserID,
			Amount:    entry.Amount,
			Email:     entry.Email,
			Regno:     entry.Regno,
			PaidAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.producer.PublishPaymentPaid(evt); err != nil {
			// Receipt delivery must never fail a confirmed payment.
			log.Printf("component=ledger method=reconcile order_id=%s msg=publish failed err=%v", orderID, err)
		}
	}

	return nil
}

// MarkFailed records a checkout the payer abandoned or the gateway
// declined. Entries already paid are left alone by the store guard.
func (s *Service) MarkFailed(ctx context.Context, orderID string) error {
	if orderID == "" {
		return fmt.Errorf("%w: order id is required", ErrValidation)
	}
	return s.store.MarkFailed(ctx, orderID)
}

func (s *Service) ListByUser(ctx context.Context, userID uint) ([]model.LedgerEntry, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]model.LedgerEntry, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) FindByOrderID(ctx context.Context, orderID string) (*model.LedgerEntry, error) {
	return s.store.FindByOrderID(ctx, orderID)
}
