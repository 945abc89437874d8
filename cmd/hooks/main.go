package main

import (
	"context"
	stdlog "log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"hooks/internal/catalog"
	"hooks/internal/config"
	"hooks/internal/domain"
	"hooks/internal/http/handlers"
	applog "hooks/internal/log"
	"hooks/internal/realtime"
	"hooks/internal/repos"
	"hooks/internal/services"
	"hooks/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal("Failed to load config:", err)
	}

	zl, err := applog.Init(cfg.LogLevel)
	if err != nil {
		stdlog.Fatal("Failed to init logger:", err)
	}
	defer zl.Sync()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		zl.Fatal("open database", zap.Error(err))
	}

	// Catalog: generated sample set, replaced by the backend copy when the
	// best-effort fetch succeeds with rows.
	cat := catalog.New(catalog.Generate(rand.New(rand.NewSource(time.Now().UnixNano()))))
	prodRepo := repos.NewProductRepo(db)
	fetchCtx, cancelFetch := context.WithTimeout(context.Background(), 5*time.Second)
	cat.Refresh(fetchCtx, prodRepo, zl)
	cancelFetch()

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Stores
	cart := store.NewCart()
	snapshot := newSnapshot(cfg, zl)
	notes := store.NewNotifications(snapshot, toastAlerter(zl), zl)
	notes.Start(context.Background())

	// Realtime channel: soft dependency, wired only when brokers are set.
	var consumer *realtime.Consumer
	if cfg.KafkaBrokers != "" {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		consumer = realtime.NewConsumer(brokers, cfg.KafkaTopic, "hooks-storefront", notes, zl)
		consumer.Start(context.Background())
		zl.Info("notification channel consumer started",
			zap.Strings("brokers", brokers), zap.String("topic", cfg.KafkaTopic))
	} else {
		zl.Info("no brokers configured, notifications run local-only")
	}

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			// JSON API is driven by same-origin fetch; forms carry the token.
			return strings.HasPrefix(c.Path(), "/api/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")

	// ---------- App handlers ----------
	deps := handlers.NewDeps(cat, cart, notes, authSvc)

	// Public pages
	app.Get("/", deps.ProductHandler.Home)
	app.Get("/products", deps.ProductHandler.List)
	app.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.SearchHandler.Search)
	app.Get("/deals", deps.PagesHandler.Deals)
	app.Get("/support", deps.PagesHandler.Support)

	// Product pages
	app.Get("/product", func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	})
	app.Get("/product/:id", deps.ProductHandler.Detail)

	// API
	api := app.Group("/api/v1")
	api.Get("/suggest", limiter.New(limiter.Config{Max: 30, Expiration: 30 * time.Second}), deps.SearchHandler.Suggest)
	api.Get("/availability", deps.ProductHandler.Availability)
	api.Get("/cart", deps.CartHandler.State)
	api.Get("/notifications", deps.NotificationHandler.Feed)
	api.Post("/notifications", deps.NotificationHandler.Add)
	api.Post("/notifications/read-all", deps.NotificationHandler.MarkAllRead)
	api.Post("/notifications/:id/read", deps.NotificationHandler.MarkRead)
	api.Delete("/notifications/:id", deps.NotificationHandler.Delete)
	api.Delete("/notifications", deps.NotificationHandler.ClearAll)

	// Cart
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Post("/cart/clear", deps.CartHandler.Clear)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Post("/signup", authH.SignUp)
	app.Post("/logout", authH.Logout)

	// Account pages
	app.Get("/orders", handlers.RequireUser(authSvc), deps.PagesHandler.Orders)
	app.Get("/profile", handlers.RequireUser(authSvc), deps.PagesHandler.Profile)
	app.Get("/settings", handlers.RequireUser(authSvc), deps.PagesHandler.Settings)

	// Health, metrics & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	// ---------- Run & graceful shutdown ----------
	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting server", zap.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zl.Fatal("server failed", zap.Error(err))
	case <-quit:
	}

	zl.Info("shutting down")
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			zl.Warn("channel consumer close failed", zap.Error(err))
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		zl.Warn("forced shutdown", zap.Error(err))
	}
	zl.Info("server exited")
}

// toastAlerter is the best-effort user-visible alert. The web UI polls the
// feed endpoint, so server-side the alert is an audit log line.
func toastAlerter(zl *zap.Logger) store.Alerter {
	return store.AlertFunc(func(n domain.Notification) error {
		zl.Info("toast",
			zap.String("id", n.ID),
			zap.String("type", string(n.Type)),
			zap.String("message", n.Message))
		return nil
	})
}

// newSnapshot picks the snapshot backend: redis when configured, else the
// local file (the localStorage stand-in).
func newSnapshot(cfg *config.Config, zl *zap.Logger) store.Snapshot {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		zl.Info("notification snapshot in redis", zap.String("addr", cfg.RedisAddr))
		return store.NewRedisSnapshot(client, "notifications")
	}
	zl.Info("notification snapshot in file", zap.String("path", cfg.SnapshotFile))
	return store.NewFileSnapshot(cfg.SnapshotFile)
}
