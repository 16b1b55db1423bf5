package routes

import (
	"net/http"
	"time"

	"hussboss/handlers"
	"hussboss/middleware"
	"hussboss/services/pages"
	"hussboss/utils"
	"hussboss/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configure the engine beyond the handlers themselves.
type Options struct {
	Registry          *pages.Registry
	SlotSecret        []byte
	SecureCookies     bool
	RequestsPerMinute int
	AllowOrigins      []string
	Logger            *zap.Logger
}

// NewEngine builds the gin engine with the page renderer, the global
// middleware and every route.
func NewEngine(hb *handlers.HandlerBundle, opts Options) (*gin.Engine, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.NewRateLimiter(opts.RequestsPerMinute).Middleware())

	RegisterRoutes(r, hb, opts)
	return r, nil
}

// RegisterSystemRoutes registers health, metrics and static assets.
func RegisterSystemRoutes(r *gin.Engine) {
	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.StaticFS("/static", http.FS(views.Static()))
}

// RegisterPageRoutes registers the browser facing pages. Every page runs
// inside the browser's slot.
func RegisterPageRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	site := r.Group("")
	site.Use(middleware.BrowserSlot(opts.Registry, opts.SlotSecret, opts.SecureCookies))
	{
		site.GET("/", hb.Pages.Home)
		site.GET("/services", hb.Pages.Services)
		site.GET("/search", hb.Pages.Listings)
		site.GET("/about", hb.Pages.About)

		site.GET("/register", hb.Register.Page)
		site.POST("/register", hb.Register.Submit)

		site.GET("/login", hb.Auth.LoginPage)
		site.POST("/login", hb.Auth.Login)
		site.GET("/signup", hb.Auth.SignupPage)
		site.POST("/signup", hb.Auth.Signup)
		site.POST("/logout", hb.Auth.Logout)
		site.GET("/profile", middleware.RequireSession("/login"), hb.Auth.Profile)

		site.GET("/admin/login", hb.Auth.AdminLoginPage)
		site.POST("/admin/login", hb.Auth.AdminLogin)
	}

	book := site.Group("/book")
	{
		book.POST("/choose", hb.Booking.Choose)
		book.POST("/open", hb.Booking.Open)
		book.POST("/select/:id", hb.Booking.Select)
		book.POST("/close", hb.Booking.Close)
		book.POST("/submit", hb.Booking.Submit)
	}

	admin := site.Group("/admin")
	admin.Use(middleware.AdminGuard("/admin/login"))
	{
		admin.GET("", hb.Admin.Dashboard)
		admin.POST("/requests/:id/assign", hb.Admin.Assign)
	}
}

// RegisterAPIRoutes registers the JSON lookups used by the search bar.
func RegisterAPIRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	{
		api.GET("/catalog/services", hb.Catalog.Services)
		api.GET("/catalog/locations", hb.Catalog.Locations)
	}
}

// RegisterRoutes centralizes registration of all endpoints.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	RegisterSystemRoutes(r)
	RegisterPageRoutes(r, hb, opts)
	RegisterAPIRoutes(r, hb, opts)
}
