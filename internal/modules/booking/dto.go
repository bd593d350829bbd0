package booking

import (
	"time"

	"coworkspace/internal/domain"
	"coworkspace/internal/pkg/pagination"
)

type CreateBookingRequest struct {
	BookingDate time.Time `json:"booking_date" binding:"required"`
	PaymentType string    `json:"payment_type" binding:"omitempty,oneof=cash coupon"`
}

// UpdateBookingRequest is a partial update; nil fields are left unchanged.
type UpdateBookingRequest struct {
	BookingDate   *time.Time `json:"booking_date"`
	Status        *string    `json:"status"`
	PaymentStatus *string    `json:"payment_status"`
	PaymentType   *string    `json:"payment_type"`
}

type ListQuery struct {
	Page           int        `form:"page"`
	Limit          int        `form:"limit"`
	UserID         int64      `form:"user_id"`
	WorkingSpaceID int64      `form:"working_space_id"`
	Status         string     `form:"status"`
	PaymentStatus  string     `form:"payment_status"`
	From           *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To             *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type ListResult struct {
	Bookings   []domain.Booking
	Total      int64
	Pagination pagination.Links
}
