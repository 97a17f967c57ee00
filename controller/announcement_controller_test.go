package controller

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func announcementApp(ac *AnnouncementController) *fiber.App {
	app := fiber.New()
	app.Post("/api/announcements", ac.Create)
	app.Put("/api/announcements/:id", ac.Update)
	return app
}

// Create and Update both require a title and a body; an update with
// blank fields must be rejected instead of blanking the stored row.
// The DB is nil on purpose: rejection happens before any lookup.
func TestAnnouncementValidation(t *testing.T) {
	ac := &AnnouncementController{}
	app := announcementApp(ac)

	tests := []struct {
		name   string
		method string
		url    string
		body   string
	}{
		{"create empty title", "POST", "/api/announcements", `{"title":"","body":"Fee deadline extended"}`},
		{"create empty body", "POST", "/api/announcements", `{"title":"Notice","body":""}`},
		{"update empty title", "PUT", "/api/announcements/1", `{"title":"","body":"Fee deadline extended"}`},
		{"update empty body", "PUT", "/api/announcements/1", `{"title":"Notice","body":""}`},
		{"update empty payload", "PUT", "/api/announcements/1", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, 400, resp.StatusCode)
		})
	}
}
