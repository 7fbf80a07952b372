package api

import (
	"bulletin/internal/storage"
	"strings"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(h *HTTPHandler, store storage.Storage) *gin.Engine {
	r := gin.New()
	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware(h.cfg.CORSAllowedOrigins))
	r.Use(gin.Recovery())

	r.GET("/health", h.Health)

	apiGroup := r.Group("/api")
	apiGroup.GET("/health", h.Health)

	authn := h.AuthMiddleware()

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/login", h.loginLimiter.Middleware(), h.Login)
	authGroup.GET("/me", authn, h.Me)
	authGroup.GET("/verify", authn, h.Verify)
	authGroup.PUT("/profile", authn, h.UpdateProfile)
	authGroup.PUT("/password", authn, h.ChangePassword)

	announcements := apiGroup.Group("/announcements")
	announcements.GET("", h.ListAnnouncements)
	announcements.GET("/all", authn, h.ListAllAnnouncements)
	announcements.GET("/:id", h.GetAnnouncement)
	announcements.POST("", authn, h.CreateAnnouncement)
	announcements.PUT("/:id", authn, h.UpdateAnnouncement)
	announcements.DELETE("/:id", authn, h.DeleteAnnouncement)

	events := apiGroup.Group("/events")
	events.GET("", h.ListEvents)
	events.GET("/all", authn, h.ListAllEvents)
	events.GET("/:id", h.GetEvent)
	events.POST("", authn, h.CreateEvent)
	events.PUT("/:id", authn, h.UpdateEvent)
	events.DELETE("/:id", authn, h.DeleteEvent)

	posters := apiGroup.Group("/posters")
	posters.GET("", h.ListPosters)
	posters.GET("/all", authn, h.ListAllPosters)
	posters.GET("/category/:category", h.ListPostersByCategory)
	posters.GET("/theme/latest", h.LatestThemePoster)
	posters.GET("/:id", h.GetPoster)
	posters.POST("", authn, h.CreatePoster)
	posters.PUT("/:id", authn, h.UpdatePoster)
	posters.DELETE("/:id", authn, h.DeletePoster)

	apiGroup.POST("/upload", authn, h.Upload)

	// Self-target checks run before the role check so a self-targeted role
	// change is a 400 whatever the caller's role.
	users := apiGroup.Group("/users")
	users.Use(authn)
	users.GET("", h.RequireSuperAdmin(), h.ListUsers)
	users.POST("", h.RequireSuperAdmin(), h.CreateUser)
	users.GET("/:id", h.RequireSuperAdmin(), h.GetUser)
	users.PUT("/:id", h.ForbidSelfTarget(), h.RequireSuperAdmin(), h.UpdateUser)
	users.DELETE("/:id", h.ForbidSelfTarget(), h.RequireSuperAdmin(), h.DeleteUser)
	users.POST("/:id/reset-password", h.RequireSuperAdmin(), h.ResetPassword)

	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := normalisePublicBase(h.cfg.StoragePublicBaseURL)
		if strings.HasPrefix(publicPrefix, "/") {
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	return r
}
