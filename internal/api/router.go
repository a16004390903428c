package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/socialapi/socialapi/internal/auth"
	"github.com/socialapi/socialapi/internal/catalog"
	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/internal/social"
	"github.com/socialapi/socialapi/pkg/config"
	"github.com/socialapi/socialapi/pkg/logging"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Router sets up API routes
type Router struct {
	social  *social.Service
	catalog *catalog.Service
	tokens  *auth.TokenManager
	checks  map[string]HealthChecker
	logger  *zap.Logger
}

// NewRouter creates a new API router. checks are reported by the health endpoints.
func NewRouter(socialSvc *social.Service, catalogSvc *catalog.Service, tokens *auth.TokenManager, checks map[string]HealthChecker) *Router {
	registerValidators()
	return &Router{
		social:  socialSvc,
		catalog: catalogSvc,
		tokens:  tokens,
		checks:  checks,
		logger:  logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// NewEngine builds a gin engine with the common middleware and all routes
func (r *Router) NewEngine(corsCfg config.CORSConfig) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), requestLogger())

	origins := corsCfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	engine.Use(cors.New(corsConfig))

	r.SetupRoutes(engine)
	return engine
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	public := engine.Group("/api/v1", authenticate(r.tokens, false))
	private := engine.Group("/api/v1", authenticate(r.tokens, true))

	// Accounts
	public.POST("/auth/register", handle("register", http.StatusCreated, r.register))
	public.POST("/auth/login", handle("login", http.StatusOK, r.login))
	private.GET("/auth/profile", handle("profile", http.StatusOK, r.profile))
	private.PATCH("/auth/profile", handle("update_profile", http.StatusOK, r.updateProfile))
	private.PUT("/auth/profile", handle("update_profile", http.StatusOK, r.updateProfile))

	// Users and the follow graph
	public.GET("/users/:id", handle("get_user", http.StatusOK, r.getUser))
	public.GET("/users/:id/followers", handle("list_followers", http.StatusOK, r.listFollowers))
	public.GET("/users/:id/following", handle("list_following", http.StatusOK, r.listFollowing))
	private.POST("/users/:id/follow", handle("follow", http.StatusOK, r.follow))
	private.POST("/users/:id/unfollow", handle("unfollow", http.StatusOK, r.unfollow))

	// Posts, comments and likes
	public.GET("/posts", handle("list_posts", http.StatusOK, r.listPosts))
	private.POST("/posts", handle("create_post", http.StatusCreated, r.createPost))
	public.GET("/posts/:id", handle("get_post", http.StatusOK, r.getPost))
	private.PUT("/posts/:id", handle("update_post", http.StatusOK, r.replacePost))
	private.PATCH("/posts/:id", handle("update_post", http.StatusOK, r.updatePost))
	private.DELETE("/posts/:id", handle("delete_post", http.StatusNoContent, r.deletePost))

	public.GET("/posts/:id/comments", handle("list_comments", http.StatusOK, r.listComments))
	private.POST("/posts/:id/comments", handle("create_comment", http.StatusCreated, r.createComment))
	public.GET("/comments/:id", handle("get_comment", http.StatusOK, r.getComment))
	private.PUT("/comments/:id", handle("update_comment", http.StatusOK, r.updateComment))
	private.PATCH("/comments/:id", handle("update_comment", http.StatusOK, r.updateComment))
	private.DELETE("/comments/:id", handle("delete_comment", http.StatusNoContent, r.deleteComment))

	private.POST("/posts/:id/like", handle("like", http.StatusCreated, r.like))
	private.POST("/posts/:id/unlike", handle("unlike", http.StatusOK, r.unlike))
	public.GET("/posts/:id/likes", handle("likes", http.StatusOK, r.likes))

	private.GET("/feed", handle("feed", http.StatusOK, r.feed))

	// Notifications
	private.GET("/notifications", handle("list_notifications", http.StatusOK, r.listNotifications))
	private.GET("/notifications/unread", handle("unread_notifications", http.StatusOK, r.unreadNotifications))
	private.POST("/notifications/:id/read", handle("mark_read", http.StatusOK, r.markRead))
	private.POST("/notifications/read-all", handle("mark_all_read", http.StatusOK, r.markAllRead))

	// Library catalog. Reads are public, librarians curate, admins manage.
	curators := private.Group("", r.requireRole(models.RoleLibrarian, models.RoleAdmin))
	admins := private.Group("", r.requireRole(models.RoleAdmin))

	admins.PUT("/users/:id/role", handle("set_role", http.StatusOK, r.setRole))

	public.GET("/authors", handle("list_authors", http.StatusOK, r.listAuthors))
	curators.POST("/authors", handle("create_author", http.StatusCreated, r.createAuthor))
	public.GET("/authors/:id", handle("get_author", http.StatusOK, r.getAuthor))
	curators.PUT("/authors/:id", handle("update_author", http.StatusOK, r.updateAuthor))
	curators.PATCH("/authors/:id", handle("update_author", http.StatusOK, r.updateAuthor))
	admins.DELETE("/authors/:id", handle("delete_author", http.StatusNoContent, r.deleteAuthor))

	public.GET("/books", handle("list_books", http.StatusOK, r.listBooks))
	curators.POST("/books", handle("create_book", http.StatusCreated, r.createBook))
	public.GET("/books/:id", handle("get_book", http.StatusOK, r.getBook))
	curators.PUT("/books/:id", handle("update_book", http.StatusOK, r.updateBook))
	admins.DELETE("/books/:id", handle("delete_book", http.StatusNoContent, r.deleteBook))

	public.GET("/libraries", handle("list_libraries", http.StatusOK, r.listLibraries))
	admins.POST("/libraries", handle("create_library", http.StatusCreated, r.createLibrary))
	public.GET("/libraries/:id", handle("get_library", http.StatusOK, r.getLibrary))
	public.GET("/libraries/:id/books", handle("library_books", http.StatusOK, r.libraryBooks))
	curators.POST("/libraries/:id/books", handle("add_library_book", http.StatusOK, r.addLibraryBook))
	public.GET("/libraries/:id/librarian", handle("get_librarian", http.StatusOK, r.getLibrarian))
	admins.POST("/libraries/:id/librarian", handle("assign_librarian", http.StatusCreated, r.assignLibrarian))
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}
	for name, check := range r.checks {
		if err := check.Health(ctx); err != nil {
			r.logger.Warn("Health check failed", zap.String("check", name), zap.Error(err))
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "OK"
	}

	body := gin.H{
		"status":  "OK",
		"service": "socialapi",
		"checks":  checks,
	}
	if status != http.StatusOK {
		body["status"] = "DEGRADED"
	}
	c.JSON(status, body)
}
