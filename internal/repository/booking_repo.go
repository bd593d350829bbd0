package repository

import (
	"context"
	"time"

	"coworkspace/internal/database"
	"coworkspace/internal/domain"

	"gorm.io/gorm"
)

// BookingFilter narrows a booking listing. Zero values mean no condition.
type BookingFilter struct {
	UserID         int64
	WorkingSpaceID int64
	Status         domain.BookingStatus
	PaymentStatus  domain.PaymentStatus
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if err := database.Conn(ctx, r.db).Omit("User", "WorkingSpace").Create(b).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := database.Conn(ctx, r.db).
		Preload("WorkingSpace").
		First(&b, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// Update writes the mutable columns of b. Cost, owner and space are never
// rewritten.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	res := database.Conn(ctx, r.db).
		Model(&domain.Booking{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"booking_date":   b.BookingDate.UTC(),
			"booking_day":    b.BookingDay,
			"status":         b.Status,
			"payment_status": b.PaymentStatus,
			"payment_type":   b.PaymentType,
		})
	if res.Error != nil {
		if database.IsUniqueViolation(res.Error) {
			return ErrDuplicate
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus moves a booking from one status to another and reports
// ErrNotFound when the row is gone or no longer in the expected status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	res := database.Conn(ctx, r.db).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	res := database.Conn(ctx, r.db).Delete(&domain.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns bookings newest first with the filtered total.
func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, int64, error) {
	q := database.Conn(ctx, r.db).Model(&domain.Booking{})
	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.WorkingSpaceID > 0 {
		q = q.Where("working_space_id = ?", f.WorkingSpaceID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.From != nil {
		q = q.Where("booking_date >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("booking_date < ?", f.To.UTC())
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	find := q.Session(&gorm.Session{}).Preload("WorkingSpace").Order("created_at DESC").Order("id DESC")
	if f.Limit > 0 {
		find = find.Limit(f.Limit).Offset(f.Offset)
	}

	var bookings []domain.Booking
	if err := find.Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ExistsReservedInRange reports whether the space holds a reserved booking
// with booking_date in [start, end). excludeID skips one booking.
func (r *BookingRepository) ExistsReservedInRange(ctx context.Context, spaceID int64, start, end time.Time, excludeID int64) (bool, error) {
	var cnt int64
	q := database.Conn(ctx, r.db).
		Model(&domain.Booking{}).
		Where("working_space_id = ? AND status = ?", spaceID, domain.BookingReserved).
		Where("booking_date >= ? AND booking_date < ?", start.UTC(), end.UTC())
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// CountFutureReserved counts the user's reserved bookings dated after now.
func (r *BookingRepository) CountFutureReserved(ctx context.Context, userID int64, now time.Time, excludeID int64) (int64, error) {
	var cnt int64
	q := database.Conn(ctx, r.db).
		Model(&domain.Booking{}).
		Where("user_id = ? AND status = ? AND booking_date > ?", userID, domain.BookingReserved, now.UTC())
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}
