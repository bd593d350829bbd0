package ledger

import (
	"net/http"
	"strconv"

	"coworkspace/internal/middleware"
	"coworkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultEntryLimit = 25
	maxEntryLimit     = 100
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts balance reads on protected and the top-up on the
// admin group.
func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	protected.GET("/ledger/balance", h.GetBalance)
	protected.GET("/ledger/entries", h.ListEntries)
	admin.POST("/users/:id/balance", h.TopUp)
}

type TopUpRequest struct {
	Amount *int64 `json:"amount" binding:"required,gte=0"`
}

func (h *Handler) GetBalance(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authorized to access this route")
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), identity.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user_id": identity.UserID, "balance": balance})
}

func (h *Handler) ListEntries(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authorized to access this route")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultEntryLimit)))
	if limit <= 0 || limit > maxEntryLimit {
		limit = defaultEntryLimit
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	entries, total, err := h.service.ListEntries(c.Request.Context(), identity.UserID, limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entries": entries, "total": total, "limit": limit, "offset": offset})
}

// TopUp credits a user's balance.
func (h *Handler) TopUp(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Amount must be a non-negative number")
		return
	}

	entry, err := h.service.UpdateBalance(c.Request.Context(), userID, *req.Amount)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user_id": userID, "balance": entry.BalanceAfter, "entry": entry})
}
