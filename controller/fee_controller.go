package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"feeportal/model"
)

type FeeController struct {
	DB *gorm.DB
}

func NewFeeController(db *gorm.DB) *FeeController {
	return &FeeController{DB: db}
}

type feeBody struct {
	Course     string         `json:"course"`
	Year       int            `json:"year"`
	Components datatypes.JSON `json:"components"`
	Total      float64        `json:"total"`
}

func (fc *FeeController) Create(c *fiber.Ctx) error {
	var body feeBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Course == "" || body.Total <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "course and a positive total are required"})
	}

	fs := model.FeeStructure{
		Course:     body.Course,
		Year:       body.Year,
		Components: body.Components,
		Total:      body.Total,
	}
	if err := fc.DB.Create(&fs).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	logActivity(fc.DB, c, "fee.create", map[string]interface{}{
		"fee_id": fs.ID, "course": fs.Course, "year": fs.Year, "total": fs.Total,
	})
	return c.Status(201).JSON(fs)
}

func (fc *FeeController) List(c *fiber.Ctx) error {
	var list []model.FeeStructure
	if err := fc.DB.Order("course, year").Find(&list).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

func (fc *FeeController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var body feeBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	var fs model.FeeStructure
	if err := fc.DB.First(&fs, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "fee structure not found"})
	}

	fs.Course = body.Course
	fs.Year = body.Year
	fs.Components = body.Components
	fs.Total = body.Total
	if err := fc.DB.Save(&fs).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	logActivity(fc.DB, c, "fee.update", map[string]interface{}{"fee_id": fs.ID})
	return c.JSON(fs)
}

func (fc *FeeController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	res := fc.DB.Delete(&model.FeeStructure{}, id)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "fee structure not found"})
	}

	logActivity(fc.DB, c, "fee.delete", map[string]interface{}{"fee_id": id})
	return c.JSON(fiber.Map{"message": "deleted"})
}

// Assign adds the structure's total to the pending amount of every
// student in the matching course/year.
func (fc *FeeController) Assign(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var fs model.FeeStructure
	if err := fc.DB.First(&fs, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "fee structure not found"})
	}

	res := fc.DB.Model(&model.Student{}).
		Where("course = ? AND year = ?", fs.Course, fs.Year).
		Update("pending_amount", gorm.Expr("pending_amount + ?", fs.Total))
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": res.Error.Error()})
	}

	logActivity(fc.DB, c, "fee.assign", map[string]interface{}{
		"fee_id": fs.ID, "course": fs.Course, "year": fs.Year, "students": res.RowsAffected,
	})
	return c.JSON(fiber.Map{"assigned": res.RowsAffected})
}
