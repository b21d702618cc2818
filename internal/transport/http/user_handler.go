package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/mkravets/accounts/internal/domain/accounts/errors"
	"github.com/mkravets/accounts/internal/token"
	"github.com/mkravets/accounts/internal/transport/http/middleware"
	"github.com/mkravets/accounts/internal/user/dto"
	usersvc "github.com/mkravets/accounts/internal/user/service"
)

type UserHandler struct {
	svc usersvc.Service
	log *zap.Logger
}

func NewUserHandler(svc usersvc.Service, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// RegisterRoutes mounts the profile API behind the auth gate.
func (h *UserHandler) RegisterRoutes(r gin.IRouter, codec *token.Codec) {
	g := r.Group("/api/users", middleware.AuthGate(codec))
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	uid, ok := middleware.Subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
		return
	}

	profile, err := h.svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid, ok := middleware.Subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
		return
	}

	var body dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.svc.UpdateProfile(c.Request.Context(), uid, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case domainErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domainErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
	default:
		h.log.Error("user handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
