package controller

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"feeportal/mailer"
	"feeportal/model"
	"feeportal/search"
)

type AdminController struct {
	DB     *gorm.DB
	Mailer mailer.Sender
	Search *search.Client
}

func NewAdminController(db *gorm.DB, m mailer.Sender, s *search.Client) *AdminController {
	return &AdminController{DB: db, Mailer: m, Search: s}
}

// SendReminders emails every student with a pending balance. Individual
// delivery failures are counted, not fatal.
func (ad *AdminController) SendReminders(c *fiber.Ctx) error {
	var students []model.Student
	if err := ad.DB.Where("pending_amount > 0").Find(&students).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	sent, failed := 0, 0
	for _, s := range students {
		err := ad.Mailer.Send(mailer.Message{
			To:      s.Email,
			Subject: "Fee payment reminder",
			HTML: fmt.Sprintf(
				"<p>Dear %s,</p><p>You have an outstanding fee balance of Rs. %.2f. Please pay at the earliest through the fee portal.</p>",
				s.Name, s.PendingAmount,
			),
		})
		if err != nil {
			log.Printf("reminder to %s failed: %v", s.Email, err)
			failed++
			continue
		}
		sent++
	}

	logActivity(ad.DB, c, "admin.reminders", map[string]interface{}{"sent": sent, "failed": failed})
	return c.JSON(fiber.Map{"sent": sent, "failed": failed})
}

// MassEmail sends an arbitrary message to every student, optionally
// filtered by course.
func (ad *AdminController) MassEmail(c *fiber.Ctx) error {
	var body struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
		Course  string `json:"course"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Subject == "" || body.Message == "" {
		return c.Status(400).JSON(fiber.Map{"error": "subject and message are required"})
	}

	q := ad.DB.Where("role = ?", "student")
	if body.Course != "" {
		q = q.Where("course = ?", body.Course)
	}
	var students []model.Student
	if err := q.Find(&students).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	sent, failed := 0, 0
	for _, s := range students {
		err := ad.Mailer.Send(mailer.Message{To: s.Email, Subject: body.Subject, HTML: body.Message})
		if err != nil {
			log.Printf("mass email to %s failed: %v", s.Email, err)
			failed++
			continue
		}
		sent++
	}

	logActivity(ad.DB, c, "admin.mass_email", map[string]interface{}{
		"subject": body.Subject, "course": body.Course, "sent": sent, "failed": failed,
	})
	return c.JSON(fiber.Map{"sent": sent, "failed": failed})
}

// ImportCSV bulk-creates students from an uploaded file with the
// columns: email,name,regno,phone,course,year,pending. The first row is
// treated as a header. Rows that fail validation or collide with an
// existing account are skipped and reported.
func (ad *AdminController) ImportCSV(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "could not open file"})
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 7

	created, skipped := 0, 0
	var skippedRows []int
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			skipped++
			skippedRows = append(skippedRows, row)
			continue
		}
		if row == 1 { // header
			continue
		}

		email, name, regno := record[0], record[1], record[2]
		phone, course := record[3], record[4]
		year, _ := strconv.Atoi(record[5])
		pending, _ := strconv.ParseFloat(record[6], 64)

		if !mailer.ValidAddress(email) || name == "" || regno == "" {
			skipped++
			skippedRows = append(skippedRows, row)
			continue
		}

		// initial password is the registration number; students are
		// expected to reset it on first login
		hashed, err := bcrypt.GenerateFromPassword([]byte(regno), bcrypt.DefaultCost)
		if err != nil {
			skipped++
			skippedRows = append(skippedRows, row)
			continue
		}

		student := model.Student{
			Name:          name,
			Email:         email,
			Password:      string(hashed),
			Phone:         phone,
			Regno:         regno,
			Course:        course,
			Year:          year,
			Role:          "student",
			PendingAmount: pending,
		}
		if err := ad.DB.Create(&student).Error; err != nil {
			skipped++
			skippedRows = append(skippedRows, row)
			continue
		}
		if ad.Search != nil {
			ad.Search.IndexStudent(c.Context(), &student)
		}
		created++
	}

	logActivity(ad.DB, c, "admin.import_csv", map[string]interface{}{
		"file": fh.Filename, "created": created, "skipped": skipped,
	})
	return c.JSON(fiber.Map{"created": created, "skipped": skipped, "skipped_rows": skippedRows})
}

func (ad *AdminController) Activities(c *fiber.Ctx) error {
	var list []model.ActivityLog
	if err := ad.DB.Order("created_at DESC").Limit(200).Find(&list).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

// SearchIndex queries Elasticsearch over the students, ledger or
// announcements index.
func (ad *AdminController) SearchIndex(c *fiber.Ctx) error {
	index := c.Query("index", search.IndexStudents)
	q := c.Query("q")
	if q == "" {
		return c.Status(400).JSON(fiber.Map{"error": "q is required"})
	}
	switch index {
	case search.IndexStudents, search.IndexLedger, search.IndexAnnouncements:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "unknown index"})
	}

	hits, err := ad.Search.Search(c.Context(), index, q)
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"hits": hits})
}

// Students lists all registered students for the console.
func (ad *AdminController) Students(c *fiber.Ctx) error {
	var list []model.Student
	if err := ad.DB.Order("regno").Find(&list).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}
