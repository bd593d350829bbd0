package catalog

import "coworkspace/internal/domain"

type CreateSpaceRequest struct {
	Name      string                 `json:"name" binding:"required,max=255"`
	Address   string                 `json:"address" binding:"max=512"`
	Telephone string                 `json:"telephone" binding:"required,max=14,telephone"`
	Schedule  *domain.WeeklySchedule `json:"schedule"`
	Price     *int64                 `json:"price" binding:"required,gte=0"`
}

// UpdateSpaceRequest is a partial update; nil fields are left unchanged.
type UpdateSpaceRequest struct {
	Name      *string                `json:"name" binding:"omitempty,min=1,max=255"`
	Address   *string                `json:"address" binding:"omitempty,max=512"`
	Telephone *string                `json:"telephone" binding:"omitempty,max=14,telephone"`
	Schedule  *domain.WeeklySchedule `json:"schedule"`
	Price     *int64                 `json:"price" binding:"omitempty,gte=0"`
}
