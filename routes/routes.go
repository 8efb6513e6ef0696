package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/pcease-api/config"
	"github.com/LovationAdmin/pcease-api/handlers"
	"github.com/LovationAdmin/pcease-api/middleware"
	"github.com/LovationAdmin/pcease-api/repository"
	"github.com/LovationAdmin/pcease-api/services"
	"github.com/LovationAdmin/pcease-api/utils"
)

const Version = "1.0.0"

// Deps is everything the router needs from the process.
type Deps struct {
	Settings config.Settings
	Store    *repository.Store
	Limiter  middleware.CounterStore
	Hub      *handlers.ForumHub
}

func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	utils.SafeInfo("🌍 CORS: allowing origins %v", d.Settings.FrontendURLs)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     d.Settings.FrontendURLs,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.Use(middleware.RequestLogger())
	if d.Limiter != nil {
		router.Use(middleware.RateLimiter(d.Limiter, d.Settings.RateLimitPerMinute, time.Minute))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	auth := services.NewAuthService(d.Store.Users, d.Settings.JWTSecret, d.Settings.TokenTTL)
	catalog := services.NewCatalogService(d.Store.Components)
	var publisher services.EventPublisher
	if d.Hub != nil {
		publisher = d.Hub
	}
	forum := services.NewForumService(d.Store.Threads, publisher)
	builds := services.NewSavedBuildService(d.Store.SavedBuilds)

	v1 := router.Group("/api/v1")
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(auth))

	SetupAuthRoutes(v1, auth)
	SetupCatalogRoutes(v1, protected, catalog)
	SetupAdvisorRoutes(v1, catalog)
	SetupForumRoutes(v1, protected, forum, d.Hub)
	SetupSavedBuildRoutes(protected, builds)

	return router
}

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, auth *services.AuthService) {
	h := &handlers.AuthHandler{Auth: auth}

	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
}

// SetupCatalogRoutes mounts catalog reads publicly and writes behind auth.
func SetupCatalogRoutes(public, protected *gin.RouterGroup, catalog *services.CatalogService) {
	h := &handlers.ComponentHandler{Catalog: catalog}

	public.GET("/components", h.List)
	public.GET("/components/grouped", h.Grouped)
	public.GET("/components/:category/:id", h.Get)
	public.GET("/categories", h.Categories)
	public.GET("/stats", h.Stats)

	protected.POST("/components", h.Create)
}

func SetupAdvisorRoutes(rg *gin.RouterGroup, catalog *services.CatalogService) {
	h := &handlers.AdvisorHandler{Catalog: catalog}

	rg.POST("/recommendations", h.Recommend)
	rg.GET("/presets", h.Presets)
	rg.POST("/presets/:id/apply", h.ApplyPreset)
	rg.POST("/builds/check", h.CheckBuild)
	rg.POST("/builds/export", h.ExportBuild)
}

func SetupForumRoutes(public, protected *gin.RouterGroup, forum *services.ForumService, hub *handlers.ForumHub) {
	h := &handlers.ForumHandler{Forum: forum}

	public.GET("/threads", h.List)
	public.GET("/threads/:id", h.Get)
	if hub != nil {
		public.GET("/ws/threads", hub.HandleWS)
		public.GET("/ws/threads/:id", hub.HandleWS)
	}

	protected.POST("/threads", h.Create)
	protected.DELETE("/threads/:id", h.Delete)
	protected.POST("/threads/:id/replies", h.Reply)
}

func SetupSavedBuildRoutes(protected *gin.RouterGroup, builds *services.SavedBuildService) {
	h := &handlers.SavedBuildHandler{Builds: builds}

	protected.GET("/saved-builds", h.List)
	protected.POST("/saved-builds", h.Create)
	protected.PUT("/saved-builds/:id", h.Update)
	protected.DELETE("/saved-builds/:id", h.Delete)
}
