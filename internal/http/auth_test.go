package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/crypto/bcrypt"

	"hooks/internal/http/handlers"
	"hooks/internal/repos"
	"hooks/internal/services"
)

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func authApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(t.TempDir() + "/auth_http_test.db")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{Max: 3, Expiration: time.Minute}), authH.Login)
	app.Post("/signup", authH.SignUp)
	app.Post("/logout", authH.Logout)
	return app
}

func postAuthForm(t *testing.T, app *fiber.App, path, csrfTok, form string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader("csrf="+csrfTok+"&"+form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(t.TempDir() + "/hash_test.db")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "Passw0rd!") {
			t.Fatal("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd!")); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestLoginSuccessFailAndThrottle(t *testing.T) {
	app := authApp(t)

	respForm, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := extractCookie(respForm, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	resp := postAuthForm(t, app, "/login", csrfTok, "email=alice@hooks.test&password=wrongpass!")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", resp.StatusCode)
	}

	resp = postAuthForm(t, app, "/login", csrfTok, "email=alice@hooks.test&password=Passw0rd!")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on success, got %d", resp.StatusCode)
	}
	if extractCookie(resp, "sid") == "" {
		t.Fatal("login must set the session cookie")
	}

	// Third attempt exhausts the limiter; the fourth is throttled.
	postAuthForm(t, app, "/login", csrfTok, "email=alice@hooks.test&password=wrongpass!")
	resp = postAuthForm(t, app, "/login", csrfTok, "email=alice@hooks.test&password=wrongpass!")
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after throttle, got %d", resp.StatusCode)
	}
}

func TestSignUpFlow(t *testing.T) {
	app := authApp(t)

	respForm, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := extractCookie(respForm, "csrf_")

	// Short password rejected before any account exists.
	resp := postAuthForm(t, app, "/signup", csrfTok, "email=carol@hooks.test&name=Carol&password=12345")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", resp.StatusCode)
	}

	resp = postAuthForm(t, app, "/signup", csrfTok, "email=carol@hooks.test&name=Carol&password=hunter22")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on signup, got %d", resp.StatusCode)
	}
	if extractCookie(resp, "sid") == "" {
		t.Fatal("signup must leave the user signed in")
	}

	// Same email again is taken.
	resp = postAuthForm(t, app, "/signup", csrfTok, "email=carol@hooks.test&name=Carol&password=hunter22")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", resp.StatusCode)
	}
}

func TestLogoutExpiresSession(t *testing.T) {
	app := authApp(t)

	respForm, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := extractCookie(respForm, "csrf_")

	resp := postAuthForm(t, app, "/login", csrfTok, "email=bob@hooks.test&password=Passw0rd!")
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("no session cookie after login")
	}

	req := httptest.NewRequest("POST", "/logout", strings.NewReader("csrf="+csrfTok))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on logout, got %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "sid" && c.Expires.After(time.Now()) {
			t.Fatal("logout must expire the session cookie")
		}
	}
}
