package model

import (
	"time"

	"gorm.io/datatypes"
)

// FeeStructure is the assessed fee for a course/year combination.
// Components holds the per-head breakup (tuition, hostel, exam, ...)
// as free-form JSON since the breakup differs per course.
type FeeStructure struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Course     string         `json:"course"`
	Year       int            `json:"year"`
	Components datatypes.JSON `json:"components"`
	Total      float64        `json:"total"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
