package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feeportal/model"
)

type ScholarshipController struct {
	DB *gorm.DB
}

func NewScholarshipController(db *gorm.DB) *ScholarshipController {
	return &ScholarshipController{DB: db}
}

func (sc *ScholarshipController) Apply(c *fiber.Ctx) error {
	var body struct {
		Type        string `json:"type"`
		Reason      string `json:"reason"`
		DocumentURL string `json:"document_url"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Type == "" || body.Reason == "" {
		return c.Status(400).JSON(fiber.Map{"error": "type and reason are required"})
	}

	s := model.Scholarship{
		UserID:      userID(c),
		Type:        body.Type,
		Reason:      body.Reason,
		DocumentURL: body.DocumentURL,
		Status:      model.ScholarshipApplied,
	}
	if err := sc.DB.Create(&s).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(s)
}

func (sc *ScholarshipController) Mine(c *fiber.Ctx) error {
	var list []model.Scholarship
	if err := sc.DB.Where("user_id = ?", userID(c)).Order("created_at DESC").Find(&list).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

func (sc *ScholarshipController) ListAll(c *fiber.Ctx) error {
	var list []model.Scholarship
	if err := sc.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

// Decide approves or rejects an application. Approval credits the
// granted amount against the student's pending balance, clamped at
// zero like every other pending decrement.
func (sc *ScholarshipController) Decide(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var body struct {
		Status string  `json:"status"`
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Status != model.ScholarshipApproved && body.Status != model.ScholarshipRejected {
		return c.Status(400).JSON(fiber.Map{"error": "status must be approved or rejected"})
	}
	if body.Status == model.ScholarshipApproved && body.Amount <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "approved amount must be positive"})
	}

	var s model.Scholarship
	if err := sc.DB.First(&s, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "scholarship not found"})
	}
	if s.Status != model.ScholarshipApplied {
		return c.Status(409).JSON(fiber.Map{"error": "scholarship already decided"})
	}

	now := time.Now()
	s.Status = body.Status
	s.Amount = body.Amount
	s.DecidedAt = &now
	if err := sc.DB.Save(&s).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	if body.Status == model.ScholarshipApproved {
		err := sc.DB.Model(&model.Student{}).
			Where("id = ?", s.UserID).
			Update("pending_amount", gorm.Expr("GREATEST(pending_amount - ?, 0)", body.Amount)).Error
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
	}

	logActivity(sc.DB, c, "scholarship.decide", map[string]interface{}{
		"scholarship_id": s.ID, "user_id": s.UserID, "status": s.Status, "amount": s.Amount,
	})
	return c.JSON(s)
}
