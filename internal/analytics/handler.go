package analytics

import "github.com/gofiber/fiber/v2"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.dashboard)
	app.Get("/api/analytics", h.apiSummary)
}

func (h *Handler) dashboard(c *fiber.Ctx) error {
	summary := h.service.Summary(c.UserContext())
	return c.Render("dashboard", fiber.Map{
		"Title":     "Dashboard",
		"Tab":       "dashboard",
		"Summary":   summary,
		"MaxDaily":  summary.MaxDaily(),
		"MaxHourly": summary.MaxHourly(),
	}, "layout")
}

func (h *Handler) apiSummary(c *fiber.Ctx) error {
	return c.JSON(h.service.Summary(c.UserContext()))
}
