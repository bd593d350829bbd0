package loyalty

import (
	"net/http"

	"coworkspace/internal/middleware"
	"coworkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/loyalty", h.GetMine)
}

func (h *Handler) GetMine(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authorized to access this route")
		return
	}

	counter, err := h.service.Get(c.Request.Context(), identity.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, counter)
}
