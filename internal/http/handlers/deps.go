package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jmoiron/sqlx"

	"sucree/internal/blob"
	"sucree/internal/config"
	applog "sucree/internal/log"
	"sucree/internal/repos"
	"sucree/internal/services"
)

// sessionTTL is how long an idle visitor keeps cart and admin gate.
const sessionTTL = 12 * time.Hour

type Deps struct {
	Sessions        *Sessions
	Tokens          services.Authenticator
	CatalogHandler  *CatalogHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	SettingsHandler *SettingsHandler
	UploadHandler   *UploadHandler
	CartHandler     *CartHandler
	AdminHandler    *AdminHandler
}

// NewDeps wires repositories and services. pin unlocks the session gate;
// tokens (may be nil) authorize bearer requests to admin routes.
func NewDeps(db *sqlx.DB, cfg config.Config, blobs blob.Store, pin, tokens services.Authenticator) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)

	settingsSvc := services.NewSettingsService(settingsRepo, blobs, cfg.StoreName)
	catSvc := services.NewCategoryService(catRepo, blobs)
	prodSvc := services.NewProductService(prodRepo, blobs)
	catalogSvc := services.NewCatalogService(prodRepo, catRepo, settingsSvc)

	sessions := NewSessions(pin, sessionTTL)
	return &Deps{
		Sessions:        sessions,
		Tokens:          tokens,
		CatalogHandler:  &CatalogHandler{Catalog: catalogSvc, BaseURL: cfg.PublicBaseURL},
		CategoryHandler: &CategoryHandler{Cats: catSvc, Sessions: sessions},
		ProductHandler:  &ProductHandler{Prods: prodSvc},
		SettingsHandler: &SettingsHandler{Settings: settingsSvc},
		UploadHandler:   &UploadHandler{Blobs: blobs},
		CartHandler:     &CartHandler{Catalog: catalogSvc, WhatsApp: services.WhatsApp{Phone: cfg.WhatsAppPhone}},
		AdminHandler:    &AdminHandler{},
	}
}

// Mount registers the storefront page and the JSON API on app.
// unlockLimit guards PIN attempts; pass nil to leave them unthrottled.
func (d *Deps) Mount(app *fiber.App, unlockLimit fiber.Handler) {
	if unlockLimit == nil {
		unlockLimit = func(c *fiber.Ctx) error { return c.Next() }
	}
	app.Use(d.Sessions.Middleware())
	app.Get("/", d.CatalogHandler.Home)

	api := app.Group("/api")
	admin := RequireAdmin(d.Tokens)

	api.Get("/catalog", d.CatalogHandler.View)
	api.Get("/categories", d.CategoryHandler.List)
	api.Post("/categories", admin, d.CategoryHandler.Save)
	api.Delete("/categories", admin, d.CategoryHandler.Delete)
	api.Get("/products", d.ProductHandler.List)
	api.Post("/products", admin, d.ProductHandler.Save)
	api.Delete("/products", admin, d.ProductHandler.Delete)
	api.Get("/settings", d.SettingsHandler.Get)
	api.Post("/settings", admin, d.SettingsHandler.Save)
	api.Post("/upload", admin, d.UploadHandler.Upload)

	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart", d.CartHandler.Add)
	api.Post("/cart/quantity", d.CartHandler.UpdateQuantity)
	api.Delete("/cart", d.CartHandler.Remove)
	api.Post("/cart/checkout", d.CartHandler.Checkout)

	api.Get("/admin/session", d.AdminHandler.Status)
	api.Post("/admin/session", unlockLimit, d.AdminHandler.Unlock)
	api.Delete("/admin/session", d.AdminHandler.Lock)
}

// UnlockLimiter throttles PIN attempts per client IP.
func UnlockLimiter(attempts int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        attempts,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|unlock"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.unlock.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	})
}
