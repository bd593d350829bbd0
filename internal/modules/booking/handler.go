package booking

import (
	"net/http"
	"strconv"

	"coworkspace/internal/domain"
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
	protected.GET("/bookings", h.ListBookings)
	protected.GET("/bookings/:id", h.GetBooking)
	protected.PUT("/bookings/:id", h.UpdateBooking)
	protected.DELETE("/bookings/:id", h.DeleteBooking)
	protected.PUT("/bookings/:id/checkin", h.CheckIn)

	protected.GET("/workingspaces/:id/bookings", h.ListSpaceBookings)
	protected.POST("/workingspaces/:id/bookings", h.CreateBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	spaceID, ok := idParam(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), identity, spaceID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) GetBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), identity, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), identity, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

func (h *Handler) CheckIn(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	b, err := h.service.CheckIn(c.Request.Context(), identity, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListBookings(c *gin.Context) {
	h.list(c, 0)
}

func (h *Handler) ListSpaceBookings(c *gin.Context) {
	spaceID, ok := idParam(c)
	if !ok {
		return
	}
	h.list(c, spaceID)
}

func (h *Handler) list(c *gin.Context, spaceID int64) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}
	if spaceID > 0 {
		q.WorkingSpaceID = spaceID
	}

	res, err := h.service.List(c.Request.Context(), identity, q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, http.StatusOK, res.Bookings, int(res.Total), res.Pagination)
}

func identityOrAbort(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authorized to access this route")
		return domain.Identity{}, false
	}
	return identity, true
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
