package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"feeportal/cache"
	"feeportal/config"
	"feeportal/controller"
	"feeportal/gateway"
	kafkax "feeportal/kafka"
	"feeportal/ledger"
	"feeportal/mailer"
	"feeportal/model"
	"feeportal/pdf"
	"feeportal/routes"
	"feeportal/search"
)

var DB *gorm.DB

// ======================
// INIT DATABASE
// ======================
func initDB(cfg *config.Config) {
	dsn := "host=" + cfg.DBHost +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPass +
		" dbname=" + cfg.DBName +
		" port=" + cfg.DBPort +
		" sslmode=disable TimeZone=UTC"

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect db:", err)
	}

	if err := DB.AutoMigrate(
		&model.Student{},
		&model.LedgerEntry{},
		&model.FeeStructure{},
		&model.Scholarship{},
		&model.Refund{},
		&model.Ticket{},
		&model.Announcement{},
		&model.ActivityLog{},
	); err != nil {
		log.Fatal(err)
	}
}

func main() {
	cfg := config.Load()
	initDB(cfg)

	rdb := cache.Connect(cfg.RedisAddr, cfg.RedisPass)
	producer := kafkax.NewProducer(cfg.KafkaBroker)
	consumer := kafkax.NewConsumer(cfg.KafkaBroker)

	gw := gateway.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	store := ledger.NewGormStore(DB)
	svc := ledger.NewService(store, gw, producer, rdb, cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	sender := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	renderer := pdf.NewRenderer(
		cfg.InstitutionName, cfg.InstitutionAddress,
		cfg.BankName, cfg.BankAccount, cfg.BankIFSC, cfg.BankBranch,
	)
	es := search.NewClient(cfg.ElasticURL)

	// receipt delivery runs off the request path
	consumer.Consume(kafkax.TopicPaymentPaid, kafkax.PaymentPaidHandler(DB, renderer, sender))

	app := fiber.New()
	app.Use(logger.New())

	routes.Register(app, routes.Controllers{
		Auth:         controller.NewAuthController(DB, rdb, sender, es, cfg.JWTSecret),
		Payment:      controller.NewPaymentController(svc, rdb, es, renderer, cfg.RazorpayWebhookSecret),
		Fee:          controller.NewFeeController(DB),
		Scholarship:  controller.NewScholarshipController(DB),
		Refund:       controller.NewRefundController(DB),
		Ticket:       controller.NewTicketController(DB),
		Announcement: controller.NewAnnouncementController(DB, rdb, es),
		Admin:        controller.NewAdminController(DB, sender, es),
	}, cfg.JWTSecret)

	log.Println("HTTP server running on port " + cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("fiber error:", err)
	}
}
