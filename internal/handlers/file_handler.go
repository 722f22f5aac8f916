package handlers

import (
	"errors"
	"io/fs"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/patirananta462-byte/papersharehub/internal/services"
)

type FileHandler struct {
	storage services.StorageService
	flash   *Flash
}

func NewFileHandler(storage services.StorageService, flash *Flash) *FileHandler {
	return &FileHandler{
		storage: storage,
		flash:   flash,
	}
}

// HandleView previews PDFs, images and text inline; every other type is sent
// as a download.
func (h *FileHandler) HandleView(c *fiber.Ctx) error {
	name, path, ok, err := h.lookup(c)
	if !ok {
		return err
	}

	switch services.Extension(name) {
	case "pdf":
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+name+`"`)
		if err := c.SendFile(path); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		return nil
	case "jpg", "jpeg", "png", "gif":
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+name+`"`)
		return c.SendFile(path)
	case "txt":
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+name+`"`)
		if err := c.SendFile(path); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return nil
	default:
		h.flash.Add(c, "error", "This file type cannot be previewed. Downloading instead.")
		return c.Download(path, name)
	}
}

func (h *FileHandler) HandleDownload(c *fiber.Ctx) error {
	name, path, ok, err := h.lookup(c)
	if !ok {
		return err
	}
	return c.Download(path, name)
}

// lookup resolves the stored name in the URL. When ok is false the response
// has already been decided and err is what the handler should return.
func (h *FileHandler) lookup(c *fiber.Ctx) (name, path string, ok bool, err error) {
	name, err = pathParam(c, "filename")
	if err != nil {
		return "", "", false, err
	}

	path, err = h.storage.ResolvePath(name)
	if err != nil {
		return "", "", false, h.flash.Redirect(c, "/papers", "error", "File not found: "+err.Error())
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return "", "", false, h.flash.Redirect(c, "/papers", "error", "File not found: "+name)
		}
		return "", "", false, err
	}
	return name, path, true, nil
}
