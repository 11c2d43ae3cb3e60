package user_test

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/user-dashboard/internal/server"
	"github.com/wichananm65/user-dashboard/internal/store"
	"github.com/wichananm65/user-dashboard/internal/user"
	"github.com/wichananm65/user-dashboard/internal/web"
)

func seedRecords() []store.Record {
	return []store.Record{
		{ID: "1", Name: "Charlie", Email: "charlie@example.com", Location: "Berlin", Age: "30", CreatedAt: "2025-07-01T09:00:00.000Z"},
		{ID: "2", Name: "Alice", Email: "alice@example.com", Location: "Paris", Age: "25", CreatedAt: "2025-07-03T09:00:00.000Z"},
		{ID: "3", Name: "Bob", Gender: "Male", Location: "Oslo", CreatedAt: "2025-07-02T09:00:00.000Z"},
	}
}

func makeDashboard(t *testing.T, deleteConfirm bool) (*fiber.App, *user.Client) {
	t.Helper()
	client := user.NewClient(newStoreServer(t, seedRecords()), 0)
	app := server.New(server.Options{Views: web.NewViews(time.UTC)})
	user.NewHandler(user.NewService(client, time.UTC, 10), deleteConfirm).RegisterRoutes(app)
	return app, client
}

func body(t *testing.T, app *fiber.App, method, target string, form url.Values) (int, string, string) {
	t.Helper()
	var reader io.Reader
	if form != nil {
		reader = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, reader)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, res.Header.Get("Location"), string(b)
}

func TestListPage(t *testing.T) {
	app, _ := makeDashboard(t, true)

	code, _, html := body(t, app, "GET", "/users?q=example&sort=name&order=asc", nil)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !strings.Contains(html, "Alice") || !strings.Contains(html, "Charlie") {
		t.Fatalf("expected matching users in the table")
	}
	if strings.Contains(html, "<strong>Bob</strong>") {
		t.Fatalf("Bob has no email and should be filtered out")
	}
	if strings.Index(html, "Alice") > strings.Index(html, "Charlie") {
		t.Fatalf("expected Alice before Charlie")
	}
	if !strings.Contains(html, "/users/1/delete?return=") {
		t.Fatalf("expected the confirmation delete link")
	}
}

func TestAPIList(t *testing.T) {
	app, _ := makeDashboard(t, true)

	code, _, js := body(t, app, "GET", "/api/users?size=5&sort=createdAt&order=desc", nil)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !strings.Contains(js, `"total":3`) || !strings.Contains(js, `"size":5`) {
		t.Fatalf("unexpected page json %s", js)
	}
	if strings.Index(js, `"Alice"`) > strings.Index(js, `"Bob"`) {
		t.Fatalf("expected newest first: %s", js)
	}
}

func TestCreateThroughForm(t *testing.T) {
	app, client := makeDashboard(t, true)

	code, _, html := body(t, app, "GET", "/users/new", nil)
	if code != fiber.StatusOK || !strings.Contains(html, "Create User") {
		t.Fatalf("expected the create form, got %d", code)
	}

	form := url.Values{"dirty": {"1"}, "name": {"Dora"}, "email": {"dora@example.com"}, "age": {"41"}, "gender": {"female"}, "return": {"q=dora"}}
	code, loc, _ := body(t, app, "POST", "/users", form)
	if code != fiber.StatusSeeOther {
		t.Fatalf("expected a redirect, got %d", code)
	}
	if !strings.HasPrefix(loc, "/users?") || !strings.Contains(loc, "q=dora") {
		t.Fatalf("expected a redirect back to the filtered list, got %q", loc)
	}

	found := false
	for _, u := range client.List(context.Background()) {
		if u.Name == "Dora" && u.Gender == "female" {
			found = true
		}
	}
	if !found {
		t.Fatalf("created user not in the store")
	}
}

func TestCreateInvalidRerendersForm(t *testing.T) {
	app, client := makeDashboard(t, true)

	form := url.Values{"dirty": {"1"}, "name": {""}, "email": {"nope"}}
	code, _, html := body(t, app, "POST", "/users", form)
	if code != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if !strings.Contains(html, "is required") {
		t.Fatalf("expected a field error in the form")
	}
	if n := len(client.List(context.Background())); n != 3 {
		t.Fatalf("nothing should be created, store has %d", n)
	}
}

func TestUntouchedEditMakesNoUpdate(t *testing.T) {
	app, client := makeDashboard(t, true)

	form := url.Values{"dirty": {"0"}, "name": {"Changed"}}
	code, _, _ := body(t, app, "POST", "/users/1", form)
	if code != fiber.StatusSeeOther {
		t.Fatalf("expected a redirect, got %d", code)
	}
	if got := client.Get(context.Background(), "1"); got == nil || got.Name != "Charlie" {
		t.Fatalf("untouched form must not update, got %+v", got)
	}
}

func TestEditUpdatesRecord(t *testing.T) {
	app, client := makeDashboard(t, true)

	code, _, html := body(t, app, "GET", "/users/1/edit", nil)
	if code != fiber.StatusOK || !strings.Contains(html, `value="Charlie"`) {
		t.Fatalf("expected the edit form prefilled, got %d", code)
	}

	form := url.Values{"dirty": {"1"}, "name": {"Charles"}, "email": {"charlie@example.com"}, "location": {"Berlin"}, "age": {"30"}}
	if code, _, _ := body(t, app, "POST", "/users/1", form); code != fiber.StatusSeeOther {
		t.Fatalf("expected a redirect, got %d", code)
	}
	got := client.Get(context.Background(), "1")
	if got == nil || got.Name != "Charles" || got.CreatedAt != "2025-07-01T09:00:00.000Z" {
		t.Fatalf("unexpected updated record %+v", got)
	}
}

func TestEditMissingUser(t *testing.T) {
	app, _ := makeDashboard(t, true)

	code, _, html := body(t, app, "GET", "/users/99/edit", nil)
	if code != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if !strings.Contains(html, "User not found") {
		t.Fatalf("expected the error page")
	}
}

func TestDeleteFlows(t *testing.T) {
	app, client := makeDashboard(t, false)

	_, _, html := body(t, app, "GET", "/users", nil)
	if !strings.Contains(html, `action="/users/1/delete"`) {
		t.Fatalf("expected the immediate delete form")
	}

	code, _, _ := body(t, app, "POST", "/users/1/delete", url.Values{"return": {"page=0"}})
	if code != fiber.StatusSeeOther {
		t.Fatalf("expected a redirect, got %d", code)
	}
	if client.Get(context.Background(), "1") != nil {
		t.Fatalf("user 1 should be deleted")
	}

	code, _, html = body(t, app, "GET", "/users/2/delete", nil)
	if code != fiber.StatusOK || !strings.Contains(html, "Are you sure you want to delete Alice") {
		t.Fatalf("expected the confirmation page, got %d", code)
	}
	if client.Get(context.Background(), "2") == nil {
		t.Fatalf("opening the confirmation must not delete")
	}

	code, _, _ = body(t, app, "POST", "/users/2/delete/confirm", url.Values{})
	if code != fiber.StatusSeeOther {
		t.Fatalf("expected a redirect, got %d", code)
	}
	if client.Get(context.Background(), "2") != nil {
		t.Fatalf("user 2 should be deleted")
	}
}

func TestRedirectStaysOnList(t *testing.T) {
	app, _ := makeDashboard(t, true)

	_, loc, _ := body(t, app, "POST", "/users/3/delete", url.Values{"return": {"//evil.example/x"}})
	if !strings.HasPrefix(loc, "/users?") {
		t.Fatalf("redirect must stay on the list, got %q", loc)
	}
}

func TestEditKeepsUnlistedGender(t *testing.T) {
	app, client := makeDashboard(t, true)

	code, _, html := body(t, app, "GET", "/users/3/edit", nil)
	if code != fiber.StatusOK || !strings.Contains(html, `<option value="Male" selected>`) {
		t.Fatalf("expected the stored gender to stay selectable, got %d", code)
	}

	form := url.Values{"dirty": {"1"}, "name": {"Robert"}, "location": {"Oslo"}, "gender": {"Male"}}
	if code, _, _ := body(t, app, "POST", "/users/3", form); code != fiber.StatusSeeOther {
		t.Fatalf("expected a redirect, got %d", code)
	}
	got := client.Get(context.Background(), "3")
	if got == nil || got.Name != "Robert" || got.Gender != "Male" {
		t.Fatalf("unexpected updated record %+v", got)
	}
}
