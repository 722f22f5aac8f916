package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/patirananta462-byte/papersharehub/internal/logger"
	"github.com/patirananta462-byte/papersharehub/pkg/apperrors"
)

const loadFailedNotice = "Something went wrong loading that page. Please try again."

// ErrorHandler renders errors that escape a handler. An oversized request
// body is sent back to the upload form with a notice, and a storage failure
// on a GET view sends the visitor home with one. Home itself answers 500.
func ErrorHandler(flash *Flash) fiber.ErrorHandler {
	log := logger.For("http")

	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		switch code {
		case fiber.StatusRequestEntityTooLarge:
			return flash.Redirect(c, "/upload", "error", "File upload failed. Please try again.")
		case fiber.StatusNotFound:
			return c.Status(code).JSON(fiber.Map{
				"error": "Page not found",
				"code":  code,
			})
		}

		if isStorageFailure(err) && c.Method() == fiber.MethodGet && c.Path() != "/" {
			log.Error().Err(err).Str("path", c.Path()).Msg("❌ view failed, redirecting home")
			return flash.Redirect(c, "/", "error", loadFailedNotice)
		}

		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("❌ request failed")
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  code,
		})
	}
}

func isStorageFailure(err error) bool {
	var storageErr *apperrors.StorageError
	var fileErr *apperrors.FileStoreError
	return errors.As(err, &storageErr) || errors.As(err, &fileErr)
}
