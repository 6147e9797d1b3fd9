package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"notekeeper/internal/service"
)

// writeError maps service errors onto status codes. Anything unrecognised is
// logged and reported as a bare 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateUsername):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Username already exists."})
	case errors.Is(err, service.ErrInvalidInput):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		h.unauthorized(c, "Invalid username or password")
	case errors.Is(err, service.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Note not found"})
	case errors.Is(err, service.ErrInvariantViolation):
		h.log(c).WithError(err).Error("authenticated principal without user record")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	default:
		h.log(c).WithError(err).Error("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func (h *Handler) unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", h.realm))
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": bindingMessage(err)})
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", field))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", field))
		}
	}
	return strings.Join(msgs, ", ")
}
