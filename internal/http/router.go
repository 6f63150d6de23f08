package http

import (
	"strings"
	"time"

	"github.com/creator-marketplace/backend/internal/config"
	"github.com/creator-marketplace/backend/internal/http/handlers"
	"github.com/creator-marketplace/backend/internal/middleware"
	"github.com/creator-marketplace/backend/internal/rbac"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handlers struct {
	Draft    *handlers.DraftHandler
	Campaign *handlers.CampaignHandler
	Meta     *handlers.MetaHandler
	WSHub    *handlers.WSHub
}

// SetupRouter mounts every route. rdb may be nil, which disables rate
// limiting.
func SetupRouter(app *fiber.App, cfg *config.Config, log *zap.Logger, rdb *redis.Client, h Handlers) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.Metrics())
	app.Use(middleware.LoggerMiddleware(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// Meta (public, no auth required)
	api.Get("/meta/categories", h.Meta.GetCategories)
	api.Get("/meta/platforms", h.Meta.GetPlatforms)
	api.Get("/meta/regions", h.Meta.GetRegions)
	api.Get("/meta/languages", h.Meta.GetLanguages)

	protected := api.Group("", middleware.AuthMiddleware(cfg, log))
	if rdb != nil {
		protected.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))
	}

	// Drafts
	drafts := protected.Group("/drafts", middleware.RequirePermission(rbac.PermAuthorDraft))
	drafts.Post("", h.Draft.CreateDraft)
	drafts.Get("/:id", h.Draft.GetDraft)
	drafts.Patch("/:id", h.Draft.UpdateDraft)
	drafts.Post("/:id/save", h.Draft.SaveDraft)
	drafts.Post("/:id/steps/next", h.Draft.NextStep)
	drafts.Post("/:id/steps/previous", h.Draft.PreviousStep)
	drafts.Put("/:id/steps/:step", h.Draft.GoToStep)
	drafts.Get("/:id/validate", h.Draft.ValidateDraft)
	drafts.Get("/:id/preview", h.Draft.PreviewDraft)
	drafts.Get("/:id/history", h.Draft.GetHistory)
	drafts.Post("/:id/publish", middleware.RequirePermission(rbac.PermPublishCampaign), h.Draft.PublishDraft)

	// Campaigns
	campaigns := protected.Group("/campaigns", middleware.RequirePermission(rbac.PermBrowseCampaigns))
	campaigns.Get("", h.Campaign.ListCampaigns)
	campaigns.Get("/:id", h.Campaign.GetCampaign)
	campaigns.Post("/:id/status", middleware.RequirePermission(rbac.PermManageCampaign), h.Campaign.UpdateStatus)

	// WebSocket
	if h.WSHub != nil {
		app.Use("/ws", handlers.WSUpgradeMiddleware())
		app.Get("/ws", websocket.New(h.WSHub.HandleWS))
	}
}
