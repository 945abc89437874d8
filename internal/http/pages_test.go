package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"hooks/internal/http/handlers"
	"hooks/internal/repos"
	"hooks/internal/services"
)

func pagesApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(t.TempDir() + "/pages_test.db")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}

	cat := fixtureCatalog()
	prodH := &handlers.ProductHandler{Catalog: cat}
	searchH := &handlers.SearchHandler{Catalog: cat}
	pagesH := &handlers.PagesHandler{Catalog: cat}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	app.Get("/", prodH.Home)
	app.Get("/products", prodH.List)
	app.Get("/product/:id", prodH.Detail)
	app.Get("/search", searchH.Search)
	app.Get("/deals", pagesH.Deals)
	app.Get("/support", pagesH.Support)
	app.Get("/orders", handlers.RequireUser(authSvc), pagesH.Orders)
	return app
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestPublicPagesRender(t *testing.T) {
	app := pagesApp(t)

	for _, path := range []string{"/", "/products", "/deals", "/support", "/search", "/product/1"} {
		resp := get(t, app, path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestProductDetailUnknownAndInvalid(t *testing.T) {
	app := pagesApp(t)

	for _, path := range []string{"/product/999", "/product/abc", "/product/-1"} {
		resp := get(t, app, path)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.StatusCode)
		}
	}
}

func TestSearchPageValidation(t *testing.T) {
	app := pagesApp(t)

	resp := get(t, app, "/search?q=laptop")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Laptop Pro") {
		t.Fatal("expected full match set in the results page")
	}

	resp = get(t, app, "/search?q=%3Cscript%3E")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for disallowed characters, got %d", resp.StatusCode)
	}
}

func TestAccountPagesRequireLogin(t *testing.T) {
	app := pagesApp(t)

	resp := get(t, app, "/orders")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect to login, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected /login redirect, got %s", loc)
	}
}
