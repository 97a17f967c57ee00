package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feeportal/cache"
	"feeportal/model"
	"feeportal/search"
)

const announcementsCacheKey = "announcements:all"

type AnnouncementController struct {
	DB     *gorm.DB
	Cache  *cache.Cache
	Search *search.Client
}

func NewAnnouncementController(db *gorm.DB, c *cache.Cache, s *search.Client) *AnnouncementController {
	return &AnnouncementController{DB: db, Cache: c, Search: s}
}

func (ac *AnnouncementController) Create(c *fiber.Ctx) error {
	var body struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Title == "" || body.Body == "" {
		return c.Status(400).JSON(fiber.Map{"error": "title and body are required"})
	}

	a := model.Announcement{
		Title:    body.Title,
		Body:     body.Body,
		PostedBy: userID(c),
	}
	if err := ac.DB.Create(&a).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	ac.invalidateAndIndex(c, &a)
	logActivity(ac.DB, c, "announcement.create", map[string]interface{}{"announcement_id": a.ID})
	return c.Status(201).JSON(a)
}

func (ac *AnnouncementController) List(c *fiber.Ctx) error {
	var cached []model.Announcement
	if ac.Cache != nil && ac.Cache.GetJSON(c.Context(), announcementsCacheKey, &cached) {
		return c.JSON(cached)
	}

	var list []model.Announcement
	if err := ac.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if list == nil {
		list = []model.Announcement{}
	}
	if ac.Cache != nil {
		ac.Cache.SetJSON(c.Context(), announcementsCacheKey, list)
	}
	return c.JSON(list)
}

func (ac *AnnouncementController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var body struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Title == "" || body.Body == "" {
		return c.Status(400).JSON(fiber.Map{"error": "title and body are required"})
	}

	var a model.Announcement
	if err := ac.DB.First(&a, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "announcement not found"})
	}

	a.Title = body.Title
	a.Body = body.Body
	if err := ac.DB.Save(&a).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	ac.invalidateAndIndex(c, &a)
	logActivity(ac.DB, c, "announcement.update", map[string]interface{}{"announcement_id": a.ID})
	return c.JSON(a)
}

func (ac *AnnouncementController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	res := ac.DB.Delete(&model.Announcement{}, id)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "announcement not found"})
	}

	if ac.Cache != nil {
		ac.Cache.Invalidate(c.Context(), announcementsCacheKey)
	}
	logActivity(ac.DB, c, "announcement.delete", map[string]interface{}{"announcement_id": id})
	return c.JSON(fiber.Map{"message": "deleted"})
}

func (ac *AnnouncementController) invalidateAndIndex(c *fiber.Ctx, a *model.Announcement) {
	if ac.Cache != nil {
		ac.Cache.Invalidate(c.Context(), announcementsCacheKey)
	}
	if ac.Search != nil {
		ac.Search.IndexAnnouncement(c.Context(), a)
	}
}
