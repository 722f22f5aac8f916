package handlers

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/patirananta462-byte/papersharehub/internal/models"
	"github.com/patirananta462-byte/papersharehub/internal/repositories"
	"github.com/patirananta462-byte/papersharehub/internal/services"
	"github.com/patirananta462-byte/papersharehub/pkg/apperrors"
)

type PaperHandler struct {
	query   services.QueryService
	flash   *Flash
	siteURL string
}

func NewPaperHandler(query services.QueryService, flash *Flash, siteURL string) *PaperHandler {
	return &PaperHandler{
		query:   query,
		flash:   flash,
		siteURL: strings.TrimRight(siteURL, "/"),
	}
}

func (h *PaperHandler) HandleHome(c *fiber.Ctx) error {
	stats, err := h.query.HomeStats()
	if err != nil {
		return err
	}
	return h.flash.Render(c, stats)
}

func (h *PaperHandler) HandleCategories(c *fiber.Ctx) error {
	counts, err := h.query.CategoryCounts()
	if err != nil {
		return err
	}
	return h.flash.Render(c, fiber.Map{"categories": counts})
}

func (h *PaperHandler) HandleCategory(c *fiber.Ctx) error {
	category, err := pathParam(c, "name")
	if err != nil {
		return err
	}

	listing, err := h.query.CategoryListing(category)
	if err != nil {
		return err
	}
	return h.flash.Render(c, listing)
}

func (h *PaperHandler) HandleExam(c *fiber.Ctx) error {
	category, err := pathParam(c, "category")
	if err != nil {
		return err
	}
	exam, err := pathParam(c, "exam")
	if err != nil {
		return err
	}

	listing, err := h.query.ExamListing(category, exam)
	if errors.Is(err, apperrors.ErrNotFound) {
		return h.flash.Redirect(c, CategoryPath(category), "error", "No papers found for this exam")
	}
	if err != nil {
		return err
	}
	return h.flash.Render(c, listing)
}

func (h *PaperHandler) HandlePapers(c *fiber.Ctx) error {
	filter := repositories.SearchFilter{
		Term:         strings.TrimSpace(c.Query("search")),
		Category:     c.Query("category"),
		ResourceType: c.Query("resource_type"),
	}

	papers, err := h.query.Search(filter)
	if err != nil {
		return err
	}
	return h.flash.Render(c, models.SearchListing{
		SearchQuery:  filter.Term,
		Category:     filter.Category,
		ResourceType: filter.ResourceType,
		Papers:       papers,
	})
}

func (h *PaperHandler) HandleResources(c *fiber.Ctx) error {
	listing, err := h.query.Resources(c.Query("type", services.ResourceTypeAll))
	if err != nil {
		return err
	}
	return h.flash.Render(c, listing)
}

func (h *PaperHandler) HandlePaper(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return fiber.ErrNotFound
	}

	detail, err := h.query.PaperDetail(uint(id))
	if errors.Is(err, apperrors.ErrNotFound) {
		return h.flash.Redirect(c, "/papers", "error", "Paper not found")
	}
	if err != nil {
		return err
	}
	return h.flash.Render(c, detail)
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (h *PaperHandler) HandleSitemap(c *fiber.Ctx) error {
	entries, err := h.query.Sitemap()
	if err != nil {
		return err
	}

	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: h.siteURL + "/"},
			{Loc: h.siteURL + "/categories"},
			{Loc: h.siteURL + "/papers"},
		},
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     fmt.Sprintf("%s/paper/%d", h.siteURL, e.ID),
			LastMod: e.UploadDate.UTC().Format("2006-01-02"),
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(append([]byte(xml.Header), body...))
}

func (h *PaperHandler) HandleRobots(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(fmt.Sprintf("User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml", h.siteURL))
}

// CategoryPath builds /category/{name}; names such as "SSC CGL/CHSL" contain
// a slash and must be escaped as one segment.
func CategoryPath(category string) string {
	return "/category/" + url.PathEscape(category)
}

func pathParam(c *fiber.Ctx, key string) (string, error) {
	v, err := url.PathUnescape(c.Params(key))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "malformed path parameter "+key)
	}
	return v, nil
}
