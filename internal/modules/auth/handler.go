package auth

import (
	"net/http"
	"time"

	"coworkspace/internal/middleware"
	"coworkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// logoutCookieTTL keeps the "none" cookie briefly so browsers drop the token.
const logoutCookieTTL = 10 * time.Second

// Handler manages the HTTP side of authentication
type Handler struct {
	service      *Service
	tokenTTL     time.Duration
	cookieSecure bool
}

func NewHandler(service *Service, tokenTTL time.Duration, cookieSecure bool) *Handler {
	return &Handler{service: service, tokenTTL: tokenTTL, cookieSecure: cookieSecure}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/me", h.GetMe)
		authGroup.GET("/logout", h.Logout)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.setTokenCookie(c, token, int(h.tokenTTL.Seconds()))
	response.Success(c, http.StatusCreated, gin.H{
		"user":  toPublic(user),
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please provide an email and password")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.setTokenCookie(c, token, int(h.tokenTTL.Seconds()))
	response.Success(c, http.StatusOK, gin.H{
		"user":  toPublic(user),
		"token": token,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authorized to access this route")
		return
	}

	user, err := h.service.Me(c.Request.Context(), identity)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toPublic(user))
}

func (h *Handler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "none", int(logoutCookieTTL.Seconds()))
	response.Success(c, http.StatusOK, gin.H{})
}

func (h *Handler) setTokenCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, value, maxAge, "/", "", h.cookieSecure, true)
}
