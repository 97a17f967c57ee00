package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feeportal/model"
)

type TicketController struct {
	DB *gorm.DB
}

func NewTicketController(db *gorm.DB) *TicketController {
	return &TicketController{DB: db}
}

func (tc *TicketController) Create(c *fiber.Ctx) error {
	var body struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Subject == "" || body.Message == "" {
		return c.Status(400).JSON(fiber.Map{"error": "subject and message are required"})
	}

	t := model.Ticket{
		UserID:  userID(c),
		Subject: body.Subject,
		Message: body.Message,
		Status:  model.TicketOpen,
	}
	if err := tc.DB.Create(&t).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(t)
}

func (tc *TicketController) Mine(c *fiber.Ctx) error {
	var list []model.Ticket
	if err := tc.DB.Where("user_id = ?", userID(c)).Order("created_at DESC").Find(&list).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

func (tc *TicketController) ListAll(c *fiber.Ctx) error {
	var list []model.Ticket
	if err := tc.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

func (tc *TicketController) Reply(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var body struct {
		Reply string `json:"reply"`
		Close bool   `json:"close"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Reply == "" {
		return c.Status(400).JSON(fiber.Map{"error": "reply is required"})
	}

	var t model.Ticket
	if err := tc.DB.First(&t, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "ticket not found"})
	}

	t.Reply = body.Reply
	if body.Close {
		t.Status = model.TicketClosed
	}
	if err := tc.DB.Save(&t).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	logActivity(tc.DB, c, "ticket.reply", map[string]interface{}{
		"ticket_id": t.ID, "closed": body.Close,
	})
	return c.JSON(t)
}
