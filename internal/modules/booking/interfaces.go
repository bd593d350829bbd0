package booking

import (
	"context"
	"time"

	"coworkspace/internal/domain"
	"coworkspace/internal/repository"

	"github.com/google/uuid"
)

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
	ExistsReservedInRange(ctx context.Context, spaceID int64, start, end time.Time, excludeID int64) (bool, error)
	CountFutureReserved(ctx context.Context, userID int64, now time.Time, excludeID int64) (int64, error)
}

type SpaceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkingSpace, error)
}

// UserLocker serializes concurrent creates of the same user.
type UserLocker interface {
	LockByID(ctx context.Context, id int64) (*domain.User, error)
}

type Ledger interface {
	ReserveFunds(ctx context.Context, userID, amount int64) (*domain.LedgerEntry, error)
	AttachBooking(ctx context.Context, entryID uuid.UUID, bookingID int64) error
}

type Loyalty interface {
	RecordBookingCreated(ctx context.Context, userID int64) (*domain.Collect, error)
}

type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
