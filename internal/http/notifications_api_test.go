package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"hooks/internal/domain"
	"hooks/internal/http/handlers"
	"hooks/internal/store"
)

func notificationsApp(t *testing.T) (*fiber.App, *store.Notifications) {
	t.Helper()
	notes := store.NewNotifications(&store.MemorySnapshot{}, nil, zap.NewNop())
	notes.Start(context.Background())

	h := &handlers.NotificationHandler{Store: notes}
	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/notifications", h.Feed)
	api.Post("/notifications", h.Add)
	api.Post("/notifications/read-all", h.MarkAllRead)
	api.Post("/notifications/:id/read", h.MarkRead)
	api.Delete("/notifications/:id", h.Delete)
	api.Delete("/notifications", h.ClearAll)
	return app, notes
}

type feedResp struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

func getFeed(t *testing.T, app *fiber.App) feedResp {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/notifications", nil))
	if err != nil {
		t.Fatal(err)
	}
	var out feedResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	return out
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestFeedStartsWithWelcomeNotifications(t *testing.T) {
	app, _ := notificationsApp(t)

	feed := getFeed(t, app)
	if len(feed.Notifications) != 2 {
		t.Fatalf("expected 2 seeded notifications, got %d", len(feed.Notifications))
	}
	if feed.UnreadCount != 2 {
		t.Fatalf("expected unread 2, got %d", feed.UnreadCount)
	}
	if feed.Notifications[0].Title != "Welcome to Hooks!" {
		t.Fatalf("unexpected first notification: %s", feed.Notifications[0].Title)
	}
}

func TestAddPrependsAndDefaults(t *testing.T) {
	app, _ := notificationsApp(t)

	resp := postJSON(t, app, "/api/v1/notifications",
		`{"title":"Order shipped","message":"On its way","type":"bogus","priority":"bogus"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created domain.Notification
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.Type != domain.NotificationSystem || created.Priority != domain.PriorityMedium {
		t.Fatalf("unrecognized type/priority must default, got %s/%s", created.Type, created.Priority)
	}

	feed := getFeed(t, app)
	if len(feed.Notifications) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(feed.Notifications))
	}
	if feed.Notifications[0].ID != created.ID {
		t.Fatal("new notification must be first (newest-first feed)")
	}
}

func TestAddRejectsIncompleteDrafts(t *testing.T) {
	app, _ := notificationsApp(t)

	for _, body := range []string{`{}`, `{"title":"x"}`, `{"message":"y"}`, `{not json`} {
		resp := postJSON(t, app, "/api/v1/notifications", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestMarkReadAndReadAll(t *testing.T) {
	app, _ := notificationsApp(t)

	resp := postJSON(t, app, "/api/v1/notifications/1/read", "")
	var out struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.UnreadCount != 1 {
		t.Fatalf("expected unread 1 after one read, got %d", out.UnreadCount)
	}

	// Re-marking the same id changes nothing.
	resp = postJSON(t, app, "/api/v1/notifications/1/read", "")
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.UnreadCount != 1 {
		t.Fatalf("expected unread to stay 1, got %d", out.UnreadCount)
	}

	resp = postJSON(t, app, "/api/v1/notifications/read-all", "")
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.UnreadCount != 0 {
		t.Fatalf("expected unread 0 after read-all, got %d", out.UnreadCount)
	}
}

func TestDeleteAndClearAll(t *testing.T) {
	app, notes := notificationsApp(t)

	req := httptest.NewRequest("DELETE", "/api/v1/notifications/2", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}
	feed := getFeed(t, app)
	if len(feed.Notifications) != 1 {
		t.Fatalf("expected 1 notification after delete, got %d", len(feed.Notifications))
	}
	if feed.UnreadCount != 1 {
		t.Fatalf("deleting an unread notification lowers the count, got %d", feed.UnreadCount)
	}

	// Deleting an absent id is a no-op.
	req = httptest.NewRequest("DELETE", "/api/v1/notifications/does-not-exist", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}
	if n := notes.UnreadCount(); n != 1 {
		t.Fatalf("expected unread 1, got %d", n)
	}

	req = httptest.NewRequest("DELETE", "/api/v1/notifications", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}
	feed = getFeed(t, app)
	if len(feed.Notifications) != 0 || feed.UnreadCount != 0 {
		t.Fatalf("expected empty feed, got %d/%d", len(feed.Notifications), feed.UnreadCount)
	}
}
