package controller

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"feeportal/ledger"
	"feeportal/model"
)

// errToHTTP maps the ledger error taxonomy onto status codes.
func errToHTTP(err error) int {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		return fiber.StatusNotFound
	// tampered signatures get a status distinct from plain bad input
	case errors.Is(err, ledger.ErrAuthenticity):
		return fiber.StatusUnauthorized
	case errors.Is(err, ledger.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, ledger.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, ledger.ErrExternal):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(errToHTTP(err)).JSON(fiber.Map{"error": err.Error()})
}

func userID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("user_id").(uint); ok {
		return id
	}
	return 0
}

func isAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("user_role").(string)
	return role == "admin"
}

// logActivity appends an admin console action to the audit trail.
// Failures are logged, never surfaced.
func logActivity(db *gorm.DB, c *fiber.Ctx, action string, details map[string]interface{}) {
	js, err := json.Marshal(details)
	if err != nil {
		js = []byte("{}")
	}
	entry := model.ActivityLog{
		AdminID: userID(c),
		Action:  action,
		Details: datatypes.JSON(js),
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("activity log %s: %v", action, err)
	}
}
