package handler

import (
	"log/slog"
	"net/http"

	"course-checkout/internal/domain/ratelimit"
	"course-checkout/internal/handler/api"
	"course-checkout/internal/handler/middleware"
	"course-checkout/internal/infra/metrics"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/jwt"
	"course-checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Checkout *api.CheckoutHandler
	Webhook  *api.WebhookHandler
	Admin    *api.AdminHandler
}

func NewHandlers(checkout *api.CheckoutHandler, webhook *api.WebhookHandler, admin *api.AdminHandler) Handlers {
	return Handlers{Checkout: checkout, Webhook: webhook, Admin: admin}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, limiter usecase.RateLimiter, authMiddleware *middleware.AuthMiddleware, jwtService *jwt.Service, m *metrics.Metrics, clk clock.Clock) error {
	if err := setupMiddleware(engine, cfg, logger); err != nil {
		return err
	}

	checkoutPolicy := ratelimit.Policy{Limit: cfg.RateLimit.CheckoutLimit, Window: cfg.RateLimit.CheckoutWindow}
	webhookPolicy := ratelimit.Policy{Limit: cfg.RateLimit.WebhookLimit, Window: cfg.RateLimit.WebhookWindow}
	for _, p := range []ratelimit.Policy{checkoutPolicy, webhookPolicy} {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		stripe := apiGroup.Group("/stripe")
		addRoutes(stripe, []route{
			{
				Method:  http.MethodPost,
				Path:    "/create-checkout",
				Handler: h.Checkout.CreateCheckout,
				Mw:      []gin.HandlerFunc{middleware.RateLimit(limiter, "checkout", checkoutPolicy, clk)},
			},
			{
				Method:  http.MethodGet,
				Path:    "/checkout-session/:id",
				Handler: h.Checkout.GetSession,
				Mw:      []gin.HandlerFunc{middleware.RateLimit(limiter, "checkout-session", checkoutPolicy, clk)},
			},
		})

		addRoutes(apiGroup.Group("/webhook"), []route{
			{
				Method:  http.MethodPost,
				Path:    "/stripe",
				Handler: h.Webhook.Stripe,
				Mw:      []gin.HandlerFunc{middleware.RateLimit(limiter, "stripe-webhook", webhookPolicy, clk)},
			},
		})

		if jwtService.Enabled() {
			admin := apiGroup.Group("/admin")
			admin.Use(authMiddleware.RequireAdmin())
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/webhook-events", Handler: h.Admin.ListEvents},
				{Method: http.MethodGet, Path: "/webhook-events/:id", Handler: h.Admin.GetEvent},
				{Method: http.MethodDelete, Path: "/webhook-events/:id", Handler: h.Admin.ReleaseEvent},
			})
		} else {
			logger.Info("JWT_SECRET not set, admin API disabled")
		}
	}

	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) error {
	engine.RemoteIPHeaders = []string{"X-Forwarded-For", "X-Real-IP"}
	if err := engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return err
	}

	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler())
	return nil
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
