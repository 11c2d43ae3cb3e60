package store

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/users", h.getUsers)
	app.Post("/users", h.createUser)
	app.Get("/users/:id", h.getUser)
	app.Put("/users/:id", h.updateUser)
	app.Delete("/users/:id", h.deleteUser)
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return notFound(c)
	}
	slog.ErrorContext(c.UserContext(), "store request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	records, err := h.service.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(records)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	record, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(record)
}

func (h *Handler) createUser(c *fiber.Ctx) error {
	payload := new(Draft)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	record, err := h.service.Create(c.UserContext(), *payload)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	payload := new(Draft)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	record, err := h.service.Update(c.UserContext(), c.Params("id"), *payload)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(record)
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	record, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(record)
}
