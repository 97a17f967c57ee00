package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feeportal/model"
)

type RefundController struct {
	DB *gorm.DB
}

func NewRefundController(db *gorm.DB) *RefundController {
	return &RefundController{DB: db}
}

// Request opens a refund against one of the caller's paid ledger
// entries. The ledger entry itself never leaves paid status.
func (rc *RefundController) Request(c *fiber.Ctx) error {
	var body struct {
		OrderID string `json:"order_id"`
		Reason  string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.OrderID == "" || body.Reason == "" {
		return c.Status(400).JSON(fiber.Map{"error": "order_id and reason are required"})
	}

	var entry model.LedgerEntry
	if err := rc.DB.Where("order_id = ?", body.OrderID).First(&entry).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "ledger entry not found"})
	}
	if entry.UserID != userID(c) {
		return c.Status(403).JSON(fiber.Map{"error": "forbidden"})
	}
	if entry.Status != model.StatusPaid {
		return c.Status(409).JSON(fiber.Map{"error": "only paid entries are refundable"})
	}

	var existing model.Refund
	err := rc.DB.Where("order_id = ? AND status IN ?", body.OrderID,
		[]string{model.RefundRequested, model.RefundApproved}).First(&existing).Error
	if err == nil {
		return c.Status(409).JSON(fiber.Map{"error": "refund already requested for this order"})
	}

	r := model.Refund{
		UserID:   entry.UserID,
		LedgerID: entry.ID,
		OrderID:  entry.OrderID,
		Amount:   entry.Amount,
		Reason:   body.Reason,
		Status:   model.RefundRequested,
	}
	if err := rc.DB.Create(&r).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(r)
}

func (rc *RefundController) Mine(c *fiber.Ctx) error {
	var list []model.Refund
	if err := rc.DB.Where("user_id = ?", userID(c)).Order("created_at DESC").Find(&list).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

func (rc *RefundController) ListAll(c *fiber.Ctx) error {
	var list []model.Refund
	if err := rc.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

func (rc *RefundController) Decide(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Status != model.RefundApproved && body.Status != model.RefundRejected {
		return c.Status(400).JSON(fiber.Map{"error": "status must be approved or rejected"})
	}

	var r model.Refund
	if err := rc.DB.First(&r, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "refund not found"})
	}
	if r.Status != model.RefundRequested {
		return c.Status(409).JSON(fiber.Map{"error": "refund already decided"})
	}

	now := time.Now()
	r.Status = body.Status
	r.DecidedAt = &now
	if err := rc.DB.Save(&r).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	logActivity(rc.DB, c, "refund.decide", map[string]interface{}{
		"refund_id": r.ID, "order_id": r.OrderID, "status": r.Status, "amount": r.Amount,
	})
	return c.JSON(r)
}
