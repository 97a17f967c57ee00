package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"feeportal/cache"
	"feeportal/gateway"
	"feeportal/ledger"
	"feeportal/model"
	"feeportal/pdf"
	"feeportal/search"
)

const listAllCacheKey = "payments:all"

type PaymentController struct {
	Svc           *ledger.Service
	Cache         *cache.Cache
	Search        *search.Client
	Renderer      *pdf.Renderer
	WebhookSecret string

	// deadline for the admin listing query; the store answers
	// ErrUnavailable when it blows, which maps to 503
	ListTimeout time.Duration
}

func NewPaymentController(svc *ledger.Service, c *cache.Cache, s *search.Client, r *pdf.Renderer, webhookSecret string) *PaymentController {
	return &PaymentController{
		Svc:           svc,
		Cache:         c,
		Search:        s,
		Renderer:      r,
		WebhookSecret: webhookSecret,
		ListTimeout:   3 * time.Second,
	}
}

func (pc *PaymentController) CreateOrder(c *fiber.Ctx) error {
	var req ledger.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	req.UserID = userID(c)
	req.IdempotencyKey = c.Get("Idempotency-Key")

	resp, err := pc.Svc.CreateOrder(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}

	if pc.Search != nil {
		pc.Search.IndexLedgerEntry(c.Context(), resp.Entry)
	}

	return c.Status(201).JSON(fiber.Map{
		"order": resp.Order,
		"key":   resp.Key,
	})
}

func (pc *PaymentController) Verify(c *fiber.Ctx) error {
	var req ledger.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "invalid payload"})
	}

	err := pc.Svc.VerifyAndReconcile(c.Context(), req)
	switch {
	case err == nil:
		pc.afterPaid(c.Context(), req.OrderID)
		return c.JSON(fiber.Map{"success": true, "message": "Payment verified successfully"})
	case errors.Is(err, ledger.ErrAuthenticity):
		// no detail about which part failed
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Invalid signature"})
	case errors.Is(err, ledger.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, ledger.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "message": "order not found"})
	default:
		return c.Status(500).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
}

// Webhook handles gateway callbacks. The body is authenticated with
// the x-razorpay-signature header before anything is parsed out of it.
func (pc *PaymentController) Webhook(c *fiber.Ctx) error {
	body := c.Body()
	sig := c.Get("X-Razorpay-Signature")
	if !gateway.VerifyWebhookSignature(body, sig, pc.WebhookSecret) {
		return c.Status(400).JSON(fiber.Map{"error": "invalid webhook signature"})
	}

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid webhook payload"})
	}

	entity := event.Payload.Payment.Entity
	switch event.Event {
	case "payment.captured":
		if err := pc.Svc.ReconcileCaptured(c.Context(), entity.OrderID, entity.ID, sig); err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				// logged inside the service; acknowledge so the
				// gateway stops redelivering
				return c.JSON(fiber.Map{"status": "ignored"})
			}
			return fail(c, err)
		}
		pc.afterPaid(c.Context(), entity.OrderID)
	case "payment.failed":
		if err := pc.Svc.MarkFailed(c.Context(), entity.OrderID); err != nil {
			log.Printf("webhook payment.failed order_id=%s err=%v", entity.OrderID, err)
		}
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func (pc *PaymentController) List(c *fiber.Ctx) error {
	list, err := pc.Svc.ListByUser(c.Context(), userID(c))
	if err != nil {
		return fail(c, err)
	}
	if list == nil {
		list = []model.LedgerEntry{}
	}
	return c.JSON(list)
}

func (pc *PaymentController) ListAll(c *fiber.Ctx) error {
	var cached []model.LedgerEntry
	if pc.Cache != nil && pc.Cache.GetJSON(c.Context(), listAllCacheKey, &cached) {
		return c.JSON(cached)
	}

	ctx, cancel := context.WithTimeout(c.Context(), pc.ListTimeout)
	defer cancel()

	list, err := pc.Svc.ListAll(ctx)
	if err != nil {
		return fail(c, err)
	}
	if list == nil {
		list = []model.LedgerEntry{}
	}
	if pc.Cache != nil {
		pc.Cache.SetJSON(c.Context(), listAllCacheKey, list)
	}
	return c.JSON(list)
}

// Receipt renders the PDF for a paid entry on demand.
func (pc *PaymentController) Receipt(c *fiber.Ctx) error {
	orderID := c.Params("orderID")

	entry, err := pc.Svc.FindByOrderID(c.Context(), orderID)
	if err != nil {
		return fail(c, err)
	}
	if entry.UserID != userID(c) && !isAdmin(c) {
		return c.Status(403).JSON(fiber.Map{"error": "forbidden"})
	}
	if entry.Status != model.StatusPaid {
		return c.Status(409).JSON(fiber.Map{"error": "receipt available only for paid entries"})
	}

	receipt, err := pc.Renderer.Build(entry)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not render receipt"})
	}

	filename := pdf.Filename(entry.Regno, entry.PaymentID, time.Now())
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(receipt)
}

func (pc *PaymentController) afterPaid(ctx context.Context, orderID string) {
	entry, err := pc.Svc.FindByOrderID(ctx, orderID)
	if err != nil {
		return
	}
	if pc.Cache != nil {
		pc.Cache.Invalidate(ctx, listAllCacheKey)
	}
	if pc.Search != nil {
		pc.Search.IndexLedgerEntry(ctx, entry)
	}
}
