package routes

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/auth"
	"github.com/junaidrashid-git/teazen/config"
	adminController "github.com/junaidrashid-git/teazen/controllers/admin"
	"github.com/junaidrashid-git/teazen/media"
	"github.com/junaidrashid-git/teazen/metrics"
	"github.com/junaidrashid-git/teazen/middleware"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/session"
	"github.com/junaidrashid-git/teazen/store"
	"github.com/junaidrashid-git/teazen/views"
	"github.com/rs/zerolog"
)

// Deps is everything the handlers are built from.
type Deps struct {
	Config   *config.Config
	Log      zerolog.Logger
	Store    store.Store
	Services *services.Services
	Sessions session.Store
	Codec    *auth.SessionCodec
	Metrics  *metrics.Metrics
	Hub      *adminController.Hub
	Uploads  *media.Store
	// Web holds templates/ and static/.
	Web fs.FS
}

// SetupRoutes is the single entry-point that wires up the storefront, the
// account pages and the back-office.
func SetupRoutes(r *gin.Engine, d *Deps) error {
	renderer, err := views.NewRenderer(d.Web)
	if err != nil {
		return err
	}
	r.HTMLRender = renderer
	r.MaxMultipartMemory = 8 << 20

	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(),
		middleware.Metrics(d.Metrics),
	)
	if origins := d.Config.AllowedOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.CSRFHeader},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 1️⃣ Assets and machine endpoints, no session
	static, err := fs.Sub(d.Web, "static")
	if err != nil {
		return err
	}
	r.StaticFS("/static", http.FS(static))
	r.Static(media.URLPrefix, d.Uploads.Root())
	r.GET("/healthz", health(d.Store))
	r.GET("/metrics", middleware.ValidateAPIKey(d.Config.MetricsAPIKey), gin.WrapH(d.Metrics.Handler()))

	// 2️⃣ Pages, with session, identity and CSRF
	site := []gin.HandlerFunc{
		middleware.NewSessions(d.Codec, d.Sessions, d.Config.CookieSecure).Handler(),
		middleware.Identity(d.Services.Identity),
		middleware.CartBadge(d.Services.Cart),
		middleware.CSRF(d.Codec),
	}
	pages := r.Group("/", site...)

	SetupShopRoutes(pages, d)
	SetupAuthRoutes(pages, d)
	SetupUserRoutes(pages, d)

	// 3️⃣ Back-office (staff and superusers)
	manage := pages.Group("/manage", middleware.RequireAdmin())
	SetupAdminRoutes(manage, d)
	SetupOrderRoutes(manage, d)

	r.NoRoute(append(site, func(c *gin.Context) {
		views.Error(c, http.StatusNotFound, "")
	})...)
	return nil
}

func health(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.Ping(c.Request.Context()); err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("❌ health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
