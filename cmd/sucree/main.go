package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"sucree/internal/blob"
	"sucree/internal/config"
	"sucree/internal/http/handlers"
	applog "sucree/internal/log"
	"sucree/internal/repos"
	"sucree/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	blobs, err := blobStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	pin, tokens, err := authenticators(cfg)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: cfg.MaxBodyBytes,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			applog.Error(c, "server.error", err, map[string]any{"code": code})
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(code).JSON(fiber.Map{"error": "Something went wrong. Please try again."})
			}
			if rerr := c.Status(code).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(code).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/uploads/")
		},
	}))

	// ---------- Uploaded images ----------
	uploadDir := cfg.UploadDir
	if abs, err := filepath.Abs(uploadDir); err == nil {
		uploadDir = abs
	}
	log.Printf("[static] /uploads -> %s", uploadDir)
	app.Get("/uploads/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "uploads.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "uploads.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(uploadDir, clean), true)
	})
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, blobs, pin, tokens)
	deps.Mount(app, handlers.UnlockLimiter(5, 10*time.Minute))
	go sweepSessions(deps.Sessions)

	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}

func blobStore(cfg config.Config) (blob.Store, error) {
	if cfg.CloudinaryURL != "" {
		log.Printf("[blob] cloudinary backend")
		return blob.NewCloudinaryStore(cfg.CloudinaryURL, "sucree")
	}
	log.Printf("[blob] disk backend at %s", cfg.UploadDir)
	return blob.NewDiskStore(cfg.UploadDir), nil
}

// authenticators returns the PIN checker used by the session gate and the
// bearer token checker for admin routes (nil when no tokens are configured).
func authenticators(cfg config.Config) (services.Authenticator, services.Authenticator, error) {
	var pin *services.StaticSecret
	if cfg.AdminPINHash != "" {
		pin = services.NewStaticSecretHash(cfg.AdminPINHash)
	} else {
		var err error
		if pin, err = services.NewStaticSecret(cfg.AdminPIN); err != nil {
			return nil, nil, err
		}
	}
	if len(cfg.AdminTokens) == 0 {
		return pin, nil, nil
	}
	tokens := services.NewTokenSet(cfg.AdminTokens...)
	return services.AnyOf{pin, tokens}, tokens, nil
}

func sweepSessions(s *handlers.Sessions) {
	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	for now := range t.C {
		if n := s.Sweep(now); n > 0 {
			applog.Info(nil, "session.sweep", map[string]any{"dropped": n, "live": s.Len()})
		}
	}
}
