package routes

import (
	"github.com/gofiber/fiber/v2"

	"feeportal/controller"
	"feeportal/middleware"
)

type Controllers struct {
	Auth         *controller.AuthController
	Payment      *controller.PaymentController
	Fee          *controller.FeeController
	Scholarship  *controller.ScholarshipController
	Refund       *controller.RefundController
	Ticket       *controller.TicketController
	Announcement *controller.AnnouncementController
	Admin        *controller.AdminController
}

func Register(app *fiber.App, ctl Controllers, jwtSecret string) {
	auth := middleware.AuthRequired(jwtSecret)
	admin := middleware.RoleRequired("admin")

	api := app.Group("/api")

	// =========================
	// AUTH
	// =========================
	a := api.Group("/auth")
	a.Post("/signup", ctl.Auth.Signup)
	a.Post("/login", ctl.Auth.Login)
	a.Post("/forgot-password", ctl.Auth.ForgotPassword)
	a.Post("/reset-password", ctl.Auth.ResetPassword)
	a.Get("/me", auth, ctl.Auth.Me)

	// =========================
	// PAYMENTS
	// =========================
	p := api.Group("/payment")
	p.Post("/order", auth, ctl.Payment.CreateOrder)
	p.Post("/verify", auth, ctl.Payment.Verify)
	p.Post("/webhook", ctl.Payment.Webhook) // gateway-authenticated, no JWT
	p.Get("/", auth, ctl.Payment.List)
	p.Get("/all", auth, admin, ctl.Payment.ListAll)
	p.Get("/:orderID/receipt", auth, ctl.Payment.Receipt)

	// =========================
	// FEE STRUCTURES
	// =========================
	f := api.Group("/fees")
	f.Get("/", auth, ctl.Fee.List)
	f.Post("/", auth, admin, ctl.Fee.Create)
	f.Put("/:id", auth, admin, ctl.Fee.Update)
	f.Delete("/:id", auth, admin, ctl.Fee.Delete)
	f.Post("/:id/assign", auth, admin, ctl.Fee.Assign)

	// =========================
	// SCHOLARSHIPS
	// =========================
	s := api.Group("/scholarships")
	s.Post("/", auth, ctl.Scholarship.Apply)
	s.Get("/", auth, ctl.Scholarship.Mine)
	s.Get("/all", auth, admin, ctl.Scholarship.ListAll)
	s.Post("/:id/decide", auth, admin, ctl.Scholarship.Decide)

	// =========================
	// REFUNDS
	// =========================
	r := api.Group("/refunds")
	r.Post("/", auth, ctl.Refund.Request)
	r.Get("/", auth, ctl.Refund.Mine)
	r.Get("/all", auth, admin, ctl.Refund.ListAll)
	r.Post("/:id/decide", auth, admin, ctl.Refund.Decide)

	// =========================
	// SUPPORT TICKETS
	// =========================
	t := api.Group("/tickets")
	t.Post("/", auth, ctl.Ticket.Create)
	t.Get("/", auth, ctl.Ticket.Mine)
	t.Get("/all", auth, admin, ctl.Ticket.ListAll)
	t.Post("/:id/reply", auth, admin, ctl.Ticket.Reply)

	// =========================
	// ANNOUNCEMENTS
	// =========================
	an := api.Group("/announcements")
	an.Get("/", auth, ctl.Announcement.List)
	an.Post("/", auth, admin, ctl.Announcement.Create)
	an.Put("/:id", auth, admin, ctl.Announcement.Update)
	an.Delete("/:id", auth, admin, ctl.Announcement.Delete)

	// =========================
	// ADMIN CONSOLE
	// =========================
	ad := api.Group("/admin", auth, admin)
	ad.Get("/students", ctl.Admin.Students)
	ad.Post("/reminders", ctl.Admin.SendReminders)
	ad.Post("/mass-email", ctl.Admin.MassEmail)
	ad.Post("/import", ctl.Admin.ImportCSV)
	ad.Get("/activities", ctl.Admin.Activities)
	ad.Get("/search", ctl.Admin.SearchIndex)
}
