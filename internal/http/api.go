package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"notekeeper/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users       service.UserService
	notes       service.NoteService
	health      Pinger
	logger      logrus.FieldLogger
	realm       string
	allowOrigin string
}

func NewHandler(users service.UserService, notes service.NoteService, health Pinger, logger logrus.FieldLogger, realm, allowOrigin string) *Handler {
	if realm == "" {
		realm = "notekeeper"
	}
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return &Handler{
		users:       users,
		notes:       notes,
		health:      health,
		logger:      logger,
		realm:       realm,
		allowOrigin: allowOrigin,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestID(), requestLogger(h.logger), h.corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", h.healthCheck)

		auth := api.Group("/auth")
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)

		notes := api.Group("/notes", h.requireAuth())
		notes.POST("", h.createNote)
		notes.GET("", h.listNotes)
		notes.GET("/:id", h.getNote)
		notes.PUT("/:id", h.updateNote)
		notes.DELETE("/:id", h.deleteNote)
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", h.allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		h.log(c).WithError(err).Error("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
