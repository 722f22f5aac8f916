package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, papers *PaperHandler, uploads *UploadHandler, files *FileHandler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/", papers.HandleHome)
	app.Get("/categories", papers.HandleCategories)
	app.Get("/category/:name", papers.HandleCategory)
	app.Get("/exam/:category/:exam", papers.HandleExam)
	app.Get("/papers", papers.HandlePapers)
	app.Get("/resources", papers.HandleResources)
	app.Get("/paper/:id", papers.HandlePaper)
	app.Get("/sitemap.xml", papers.HandleSitemap)
	app.Get("/robots.txt", papers.HandleRobots)

	app.Get("/upload", uploads.HandleForm)
	app.Post("/upload", uploads.HandleUpload)

	app.Get("/view/:filename", files.HandleView)
	app.Get("/download/:filename", files.HandleDownload)
}
