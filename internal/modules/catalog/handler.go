package catalog

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

// RegisterRoutes mounts reads on protected and mutations on admin.
func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	protected.GET("/workingspaces", h.ListSpaces)
	protected.GET("/workingspaces/:id", h.GetSpace)

	admin.POST("/workingspaces", h.CreateSpace)
	admin.PUT("/workingspaces/:id", h.UpdateSpace)
	admin.DELETE("/workingspaces/:id", h.DeleteSpace)
}

func (h *Handler) ListSpaces(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	params, err := ParseListParams(c.Request.URL.Query())
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	res, err := h.service.List(c.Request.Context(), identity, params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var data any = res.Spaces
	if len(params.Query.Select) > 0 {
		data = project(res.Spaces, params.Query.Select)
	}
	response.List(c, http.StatusOK, data, int(res.Total), res.Pagination)
}

func (h *Handler) GetSpace(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	ws, err := h.service.Get(c.Request.Context(), identity, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ws)
}

func (h *Handler) CreateSpace(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ws, err := h.service.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ws)
}

func (h *Handler) UpdateSpace(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ws, err := h.service.Update(c.Request.Context(), identity, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ws)
}

func (h *Handler) DeleteSpace(c *gin.Context) {
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

// project keeps only the selected fields of each space. id is always kept.
func project(spaces []domain.WorkingSpace, fields []string) []gin.H {
	out := make([]gin.H, 0, len(spaces))
	for _, ws := range spaces {
		row := gin.H{"id": ws.ID}
		for _, f := range fields {
			switch f {
			case "name":
				row["name"] = ws.Name
			case "address":
				row["address"] = ws.Address
			case "telephone":
				row["telephone"] = ws.Telephone
			case "schedule":
				row["schedule"] = ws.Schedule
			case "price":
				row["price"] = ws.Price
			case "created_at":
				row["created_at"] = ws.CreatedAt
			case "updated_at":
				row["updated_at"] = ws.UpdatedAt
			}
		}
		out = append(out, row)
	}
	return out
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
