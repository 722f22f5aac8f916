package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/patirananta462-byte/papersharehub/internal/models"
	"github.com/patirananta462-byte/papersharehub/internal/services"
	"github.com/patirananta462-byte/papersharehub/pkg/apperrors"
)

type UploadHandler struct {
	uploadService services.UploadService
	flash         *Flash
}

func NewUploadHandler(uploadService services.UploadService, flash *Flash) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		flash:         flash,
	}
}

// HandleForm returns what the upload form needs to render.
func (h *UploadHandler) HandleForm(c *fiber.Ctx) error {
	extensions := make([]string, 0, len(services.AllowedExtensions))
	for ext := range services.AllowedExtensions {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)

	return h.flash.Render(c, fiber.Map{
		"categories":         models.Categories,
		"allowed_extensions": extensions,
	})
}

func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	in := services.UploadInput{
		ExamName:     c.FormValue("exam_name"),
		Category:     c.FormValue("category"),
		ResourceType: c.FormValue("resource_type"),
		Year:         c.FormValue("year"),
		Description:  c.FormValue("description"),
	}

	fileHeader, err := c.FormFile("file")
	if err == nil && fileHeader != nil {
		src, err := fileHeader.Open()
		if err != nil {
			return h.flash.Redirect(c, "/upload", "error", fmt.Sprintf("Upload failed: %v", err))
		}
		defer closeFile(src)

		in.Filename = fileHeader.Filename
		in.Size = fileHeader.Size
		in.Content = src
	}

	result, err := h.uploadService.Upload(in)
	if err != nil {
		var ve *apperrors.ValidationError
		if errors.As(err, &ve) {
			return h.flash.Redirect(c, "/upload", "error", ve.Message)
		}
		return h.flash.Redirect(c, "/upload", "error", fmt.Sprintf("Upload failed: %v", err))
	}

	return h.flash.Redirect(c, CategoryPath(result.Category), "success",
		fmt.Sprintf("Upload successful! Your %s has been added.", result.Paper.ResourceType))
}

func closeFile(f multipart.File) {
	_ = f.Close()
}
