package booking

import (
	"context"
	"fmt"
	"time"

	"coworkspace/internal/domain"
)

// DefaultQuota is the number of future reserved bookings a non-admin may
// hold at once.
const DefaultQuota = 3

type conflictStore interface {
	ExistsReservedInRange(ctx context.Context, spaceID int64, start, end time.Time, excludeID int64) (bool, error)
	CountFutureReserved(ctx context.Context, userID int64, now time.Time, excludeID int64) (int64, error)
}

// ConflictChecker decides whether a space is free on a calendar day and
// whether the caller may hold another reservation. It only reads.
type ConflictChecker struct {
	store conflictStore
	quota int64
	now   func() time.Time
}

func NewConflictChecker(store conflictStore, quota int) *ConflictChecker {
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &ConflictChecker{store: store, quota: int64(quota), now: time.Now}
}

// CheckAvailability fails with ErrConflict when another reserved booking
// of the space falls on the same UTC day as date, and with
// ErrQuotaExceeded when a non-admin already holds quota future
// reservations. excludeID skips the booking being moved.
func (c *ConflictChecker) CheckAvailability(ctx context.Context, identity domain.Identity, spaceID int64, date time.Time, excludeID int64) error {
	start, end := domain.DayBounds(date)
	taken, err := c.store.ExistsReservedInRange(ctx, spaceID, start, end, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrConflict
	}

	if identity.IsAdmin() {
		return nil
	}
	n, err := c.store.CountFutureReserved(ctx, identity.UserID, c.now(), excludeID)
	if err != nil {
		return err
	}
	if n >= c.quota {
		return ErrQuotaExceeded.WithMessage(fmt.Sprintf("User %d has already made %d bookings", identity.UserID, n))
	}
	return nil
}
