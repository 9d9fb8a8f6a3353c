package api

import (
	"log/slog"
	"net/http"
	"time"

	_ "github.com/Domenick1991/cardoctor/internal/docs"
	"github.com/Domenick1991/cardoctor/internal/metrics"
	"github.com/Domenick1991/cardoctor/internal/middleware"
	"github.com/Domenick1991/cardoctor/internal/service/catalog"
	"github.com/Domenick1991/cardoctor/internal/service/checkout"
	"github.com/Domenick1991/cardoctor/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const banner = "Car doctor server"

type TokenCodec interface {
	TokenIssuer
	middleware.Verifier
}

type RouterConfig struct {
	TrustedOrigin         string
	Cookie                session.CookieOptions
	RequireOwnerFilter    bool
	ProtectCheckoutWrites bool
	SwaggerEnabled        bool
}

type Deps struct {
	Catalog   catalog.CatalogUseCase
	Checkouts checkout.CheckoutUseCase
	Codec     TokenCodec
	// Metrics may be nil; the /metrics route is then not mounted.
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

func NewRouter(cfg RouterConfig, deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		deps.Metrics.GinMiddleware(),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.TrustedOrigin},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, banner)
	})

	authOpts := []middleware.AuthOption{middleware.WithLogger(logger)}
	var failures middleware.FailureRecorder
	if deps.Metrics != nil {
		failures = deps.Metrics
		authOpts = append(authOpts, middleware.WithFailureRecorder(deps.Metrics))
	}
	gate := middleware.GinRequireAuth(middleware.NewAuthMiddleware(deps.Codec, cfg.Cookie, authOpts...))

	guards := CheckoutGuards{
		List: []gin.HandlerFunc{
			gate,
			middleware.RequireOwner("email", middleware.OwnerOptions{
				RequireFilter: cfg.RequireOwnerFilter,
				Failures:      failures,
			}),
		},
	}
	if cfg.ProtectCheckoutWrites {
		guards.Write = []gin.HandlerFunc{gate}
	}

	NewAuthHandler(deps.Codec, cfg.Cookie, logger).Register(router)
	NewServiceHandler(deps.Catalog, logger).Register(router.Group("/services"))
	NewCheckoutHandler(deps.Checkouts, logger).Register(router.Group("/checkout"), guards)

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	if cfg.SwaggerEnabled {
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}

	return router
}
