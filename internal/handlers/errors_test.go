package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/patirananta462-byte/papersharehub/pkg/apperrors"
)

func newErrorTestApp() *fiber.App {
	flash := NewFlash(session.New())
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(flash)})

	dbDown := apperrors.NewStorageError("find by category", errors.New("database is locked"))
	app.Get("/", func(c *fiber.Ctx) error { return flash.Render(c, nil) })
	app.Get("/category/:name", func(c *fiber.Ctx) error { return dbDown })
	app.Post("/category/:name", func(c *fiber.Ctx) error { return dbDown })
	app.Get("/view/:name", func(c *fiber.Ctx) error {
		return apperrors.NewFileStoreError("open", "a.pdf", errors.New("permission denied"))
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("unexpected") })
	return app
}

func TestStorageFailureOnViewRedirectsHome(t *testing.T) {
	app := newErrorTestApp()

	for _, target := range []string{"/category/JEE", "/view/a.pdf"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
		if err != nil {
			t.Fatalf("GET %s: %v", target, err)
		}
		expectRedirect(t, resp, "/")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range resp.Cookies() {
			req.AddCookie(c)
		}
		home, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("GET /: %v", err)
		}
		env := decode(t, home, nil)
		if len(env.Notices) != 1 || env.Notices[0].Level != "error" || env.Notices[0].Message != loadFailedNotice {
			t.Errorf("%s: notices = %+v", target, env.Notices)
		}
	}
}

func TestErrorsThatStayServerErrors(t *testing.T) {
	app := newErrorTestApp()

	tests := []struct {
		method, target string
	}{
		{http.MethodPost, "/category/JEE"},
		{http.MethodGet, "/boom"},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil), -1)
		if err != nil {
			t.Fatalf("%s %s: %v", tt.method, tt.target, err)
		}
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("%s %s: status = %d, want 500", tt.method, tt.target, resp.StatusCode)
		}
	}
}
