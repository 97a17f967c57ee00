package controller

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"feeportal/cache"
	"feeportal/mailer"
	"feeportal/model"
	"feeportal/search"
)

type AuthController struct {
	DB        *gorm.DB
	Cache     *cache.Cache
	Mailer    mailer.Sender
	Search    *search.Client
	JWTSecret string
}

func NewAuthController(db *gorm.DB, c *cache.Cache, m mailer.Sender, s *search.Client, secret string) *AuthController {
	return &AuthController{DB: db, Cache: c, Mailer: m, Search: s, JWTSecret: secret}
}

func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		Regno    string `json:"regno"`
		Course   string `json:"course"`
		Year     int    `json:"year"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Name == "" || body.Password == "" || body.Regno == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name, password and regno are required"})
	}
	if !mailer.ValidAddress(body.Email) {
		return c.Status(400).JSON(fiber.Map{"error": "invalid email address"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not hash password"})
	}

	student := model.Student{
		Name:     body.Name,
		Email:    body.Email,
		Password: string(hashed),
		Phone:    body.Phone,
		Regno:    body.Regno,
		Course:   body.Course,
		Year:     body.Year,
		Role:     "student",
	}

	// seed the pending amount from the fee structure for the course
	var fs model.FeeStructure
	err = ac.DB.Where("course = ? AND year = ?", body.Course, body.Year).First(&fs).Error
	if err == nil {
		student.PendingAmount = fs.Total
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ac.DB.Create(&student).Error; err != nil {
		return c.Status(409).JSON(fiber.Map{"error": "email or regno already registered"})
	}

	if ac.Search != nil {
		ac.Search.IndexStudent(c.Context(), &student)
	}

	return c.Status(201).JSON(student)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	var student model.Student
	if err := ac.DB.Where("email = ?", body.Email).First(&student).Error; err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "invalid credentials"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(body.Password)); err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "invalid credentials"})
	}

	claims := jwt.MapClaims{
		"sub":   student.ID,
		"email": student.Email,
		"role":  student.Role,
		"regno": student.Regno,
		"exp":   time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(ac.JWTSecret))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not sign token"})
	}

	return c.JSON(fiber.Map{"access_token": signed, "user": student})
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	var student model.Student
	if err := ac.DB.First(&student, userID(c)).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "student not found"})
	}
	return c.JSON(student)
}

func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil || body.Email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "email is required"})
	}

	var student model.Student
	if err := ac.DB.Where("email = ?", body.Email).First(&student).Error; err != nil {
		// same response either way so the endpoint cannot be used to
		// probe registered addresses
		return c.JSON(fiber.Map{"message": "if the account exists, an OTP has been sent"})
	}

	code, err := otpCode()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not generate otp"})
	}
	if err := ac.Cache.SetOTP(c.Context(), body.Email, code); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not store otp"})
	}

	err = ac.Mailer.Send(mailer.Message{
		To:      body.Email,
		Subject: "Password reset code",
		HTML:    fmt.Sprintf("<p>Your one-time code is <b>%s</b>. It expires in 5 minutes.</p>", code),
	})
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"error": "could not send otp email"})
	}

	return c.JSON(fiber.Map{"message": "if the account exists, an OTP has been sent"})
}

func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		OTP      string `json:"otp"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Email == "" || body.OTP == "" || body.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "email, otp and password are required"})
	}

	code, err := ac.Cache.ConsumeOTP(c.Context(), body.Email)
	if err != nil || code != body.OTP {
		return c.Status(401).JSON(fiber.Map{"error": "invalid or expired otp"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not hash password"})
	}

	res := ac.DB.Model(&model.Student{}).Where("email = ?", body.Email).Update("password", string(hashed))
	if res.Error != nil || res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "student not found"})
	}

	return c.JSON(fiber.Map{"message": "password updated"})
}

func otpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
