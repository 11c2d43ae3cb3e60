package user

import (
	"errors"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service       *Service
	deleteConfirm bool
}

// NewHandler builds the list view handler. deleteConfirm selects which
// delete flow the table links to; both flows stay mounted.
func NewHandler(service *Service, deleteConfirm bool) *Handler {
	return &Handler{service: service, deleteConfirm: deleteConfirm}
}

func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/users", h.list)
	app.Get("/users/new", h.newForm)
	app.Post("/users", h.create)
	app.Get("/users/:id/edit", h.editForm)
	app.Post("/users/:id", h.update)

	// immediate delete
	app.Post("/users/:id/delete", h.deleteNow)
	// delete behind a confirmation dialog
	app.Get("/users/:id/delete", h.confirmDelete)
	app.Post("/users/:id/delete/confirm", h.deleteConfirmed)

	app.Get("/api/users", h.apiList)
}

type pageLink struct {
	Label   int
	URL     string
	Current bool
}

type sortLink struct {
	URL    string
	Active bool
	Arrow  string
}

type sizeOption struct {
	Value    int
	URL      string
	Selected bool
}

type formField struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Required bool
	Error    string
}

func requestQuery(c *fiber.Ctx) Query {
	values, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	return ParseQuery(values)
}

// listURL rebuilds a list URL from an encoded query, so redirects never
// leave /users.
func (h *Handler) listURL(encoded string) string {
	values, _ := url.ParseQuery(encoded)
	q := ParseQuery(values).Normalize(h.service.PageSize())
	return "/users?" + q.Encode()
}

func (h *Handler) list(c *fiber.Ctx) error {
	q := requestQuery(c).Normalize(h.service.PageSize())
	page := h.service.List(c.UserContext(), q)
	q.Page = page.Index

	links := make([]pageLink, 0, page.Pages)
	for i := 0; i < page.Pages; i++ {
		target := q
		target.Page = i
		links = append(links, pageLink{Label: i + 1, URL: "/users?" + target.Encode(), Current: i == page.Index})
	}

	sorts := make(map[string]sortLink, len(sortKeys))
	for key := range sortKeys {
		target := q
		target.SortKey = key
		target.SortOrder = Asc
		link := sortLink{}
		if q.SortKey == key {
			link.Active = true
			if q.SortOrder == Asc {
				target.SortOrder = Desc
				link.Arrow = "▲"
			} else {
				link.Arrow = "▼"
			}
		}
		link.URL = "/users?" + target.Encode()
		sorts[key] = link
	}

	sizes := make([]sizeOption, 0, len(PageSizes))
	for _, size := range PageSizes {
		target := q
		target.PageSize = size
		sizes = append(sizes, sizeOption{Value: size, URL: "/users?" + target.Encode(), Selected: size == q.PageSize})
	}

	return c.Render("users", fiber.Map{
		"Title":         "Users List",
		"Tab":           "users",
		"Query":         q,
		"Page":          page,
		"PageLinks":     links,
		"Sorts":         sorts,
		"Sizes":         sizes,
		"DeleteConfirm": h.deleteConfirm,
		"Return":        q.Encode(),
	}, "layout")
}

func (h *Handler) apiList(c *fiber.Ctx) error {
	q := requestQuery(c).Normalize(h.service.PageSize())
	return c.JSON(h.service.List(c.UserContext(), q))
}

func (h *Handler) renderForm(c *fiber.Ctx, form *Form, ret string, verr *ValidationError) error {
	draft := form.Draft()
	errs := map[Field]string{}
	if verr != nil {
		errs = verr.Fields
	}
	fields := []formField{
		{Name: string(FieldName), Label: "Name", Type: "text", Required: true},
		{Name: string(FieldEmail), Label: "Email", Type: "email"},
		{Name: string(FieldAvatar), Label: "Avatar URL", Type: "text"},
		{Name: string(FieldLocation), Label: "Location", Type: "text"},
		{Name: string(FieldAge), Label: "Age", Type: "number"},
	}
	for i := range fields {
		f := Field(fields[i].Name)
		fields[i].Value = draft.Get(f)
		fields[i].Error = errs[f]
	}

	data := fiber.Map{
		"Title":       "Create User",
		"Tab":         "users",
		"Editing":     form.Editing(),
		"Action":      "/users",
		"Submit":      "Create",
		"Fields":      fields,
		"Gender":      draft.Gender,
		"GenderError": errs[FieldGender],
		"Dirty":       form.IsDirty(),
		"Return":      ret,
		"CancelURL":   h.listURL(ret),
	}
	if form.Editing() {
		data["Title"] = "Edit User"
		data["Action"] = "/users/" + url.PathEscape(form.Original().ID)
		data["Submit"] = "Update"
	}
	if verr != nil {
		c.Status(fiber.StatusUnprocessableEntity)
	}
	return c.Render("form", data, "layout")
}

func (h *Handler) newForm(c *fiber.Ctx) error {
	form := NewForm()
	form.Open(nil)
	return h.renderForm(c, form, c.Query("return"), nil)
}

func (h *Handler) editForm(c *fiber.Ctx) error {
	target := h.service.Find(c.UserContext(), c.Params("id"))
	if target == nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	form := NewForm()
	form.Open(target)
	return h.renderForm(c, form, c.Query("return"), nil)
}

func (h *Handler) create(c *fiber.Ctx) error {
	form := NewForm()
	form.Open(nil)
	return h.submit(c, form)
}

func (h *Handler) update(c *fiber.Ctx) error {
	target := h.service.Find(c.UserContext(), c.Params("id"))
	if target == nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	form := NewForm()
	form.Open(target)
	return h.submit(c, form)
}

// submit replays the posted fields onto the open form. The page's oninput
// hook sets dirty=1 once the user touches any field; without it the posted
// values are ignored, the same as a modal closed without edits.
func (h *Handler) submit(c *fiber.Ctx, form *Form) error {
	ret := c.FormValue("return")
	if dirty, _ := strconv.ParseBool(c.FormValue("dirty")); dirty {
		for _, f := range Fields {
			if err := form.Set(f, c.FormValue(string(f))); err != nil {
				return err
			}
		}
	}

	outcome, err := h.service.Submit(c.UserContext(), form)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return h.renderForm(c, form, ret, verr)
		}
		return err
	}

	slog.InfoContext(c.UserContext(), "user form submitted", "outcome", outcome.String())
	return c.Redirect(h.listURL(ret), fiber.StatusSeeOther)
}

func (h *Handler) deleteNow(c *fiber.Ctx) error {
	h.service.Delete(c.UserContext(), c.Params("id"))
	return c.Redirect(h.listURL(c.FormValue("return")), fiber.StatusSeeOther)
}

func (h *Handler) confirmDelete(c *fiber.Ctx) error {
	target := h.service.Find(c.UserContext(), c.Params("id"))
	if target == nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	ret := c.Query("return")
	return c.Render("confirm", fiber.Map{
		"Title":     "Confirm Deletion",
		"Tab":       "users",
		"User":      target,
		"Action":    "/users/" + url.PathEscape(target.ID) + "/delete/confirm",
		"Return":    ret,
		"CancelURL": h.listURL(ret),
	}, "layout")
}

func (h *Handler) deleteConfirmed(c *fiber.Ctx) error {
	h.service.Delete(c.UserContext(), c.Params("id"))
	return c.Redirect(h.listURL(c.FormValue("return")), fiber.StatusSeeOther)
}
