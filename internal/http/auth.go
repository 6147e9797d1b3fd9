package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"notekeeper/internal/domain"
	"notekeeper/internal/service"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,max=72"`
}

// loginRequest carries no binding rules. Missing or oversized credentials
// are a failed login, not a malformed body.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			h.log(c).WithField("username", req.Username).Info("username already exists")
		}
		h.writeError(c, err)
		return
	}

	h.log(c).WithField("user", user.Username).Info("user registered")
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!"})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	principal, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.log(c).WithField("username", req.Username).Warn("login rejected")
		}
		h.writeError(c, err)
		return
	}

	h.log(c).WithField("user", principal.Username).Info("user logged in")
	c.JSON(http.StatusOK, gin.H{"message": "User logged in successfully!"})
}

// requireAuth authenticates every request from its Basic credentials. No
// session state survives the request.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			h.unauthorized(c, "Authentication required")
			return
		}

		principal, err := h.users.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				h.log(c).WithField("username", username).Warn("basic auth rejected")
			}
			h.writeError(c, err)
			return
		}

		c.Set(principalKey, *principal)
		c.Next()
	}
}

// currentUser resolves the request principal to its user record. On failure
// the response has already been written.
func (h *Handler) currentUser(c *gin.Context) (*domain.User, bool) {
	value, _ := c.Get(principalKey)
	principal, ok := value.(domain.Principal)
	if !ok {
		h.unauthorized(c, "Authentication required")
		return nil, false
	}

	user, err := h.users.CurrentUser(c.Request.Context(), principal)
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	return user, true
}
