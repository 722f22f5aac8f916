package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/patirananta462-byte/papersharehub/internal/logger"
)

const noticesKey = "notices"

type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Flash carries one-shot notices across a redirect in the visitor's session.
type Flash struct {
	store *session.Store
	log   zerolog.Logger
}

func NewFlash(store *session.Store) *Flash {
	store.RegisterType([]Notice{})
	return &Flash{store: store, log: logger.For("flash")}
}

func (f *Flash) Add(c *fiber.Ctx, level, message string) {
	sess, err := f.store.Get(c)
	if err != nil {
		f.log.Warn().Err(err).Msg("session unavailable, notice dropped")
		return
	}

	notices, _ := sess.Get(noticesKey).([]Notice)
	sess.Set(noticesKey, append(notices, Notice{Level: level, Message: message}))
	if err := sess.Save(); err != nil {
		f.log.Warn().Err(err).Msg("failed to save session")
	}
}

// Pop returns and clears the pending notices.
func (f *Flash) Pop(c *fiber.Ctx) []Notice {
	sess, err := f.store.Get(c)
	if err != nil {
		return nil
	}

	notices, _ := sess.Get(noticesKey).([]Notice)
	if len(notices) == 0 {
		return nil
	}
	sess.Delete(noticesKey)
	if err := sess.Save(); err != nil {
		f.log.Warn().Err(err).Msg("failed to save session")
	}
	return notices
}

// Redirect queues a notice and sends the visitor to location.
func (f *Flash) Redirect(c *fiber.Ctx, location, level, message string) error {
	f.Add(c, level, message)
	return c.Redirect(location, fiber.StatusFound)
}

// page is the JSON envelope of every view.
type page struct {
	Notices []Notice    `json:"notices,omitempty"`
	Data    interface{} `json:"data"`
}

func (f *Flash) Render(c *fiber.Ctx, data interface{}) error {
	return c.JSON(page{Notices: f.Pop(c), Data: data})
}
