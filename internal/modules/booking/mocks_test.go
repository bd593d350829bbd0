package booking

import (
	"context"
	"time"

	"coworkspace/internal/domain"
	"coworkspace/internal/events"
	"coworkspace/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingRepository) List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) ExistsReservedInRange(ctx context.Context, spaceID int64, start, end time.Time, excludeID int64) (bool, error) {
	args := m.Called(ctx, spaceID, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) CountFutureReserved(ctx context.Context, userID int64, now time.Time, excludeID int64) (int64, error) {
	args := m.Called(ctx, userID, now, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

type MockSpaceReader struct {
	mock.Mock
}

func (m *MockSpaceReader) GetByID(ctx context.Context, id int64) (*domain.WorkingSpace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkingSpace), args.Error(1)
}

type MockUserLocker struct {
	mock.Mock
}

func (m *MockUserLocker) LockByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ReserveFunds(ctx context.Context, userID, amount int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedger) AttachBooking(ctx context.Context, entryID uuid.UUID, bookingID int64) error {
	return m.Called(ctx, entryID, bookingID).Error(0)
}

type MockLoyalty struct {
	mock.Mock
}

func (m *MockLoyalty) RecordBookingCreated(ctx context.Context, userID int64) (*domain.Collect, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collect), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e events.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockPublisher) Close() error { return nil }

// inlineTx runs fn without a transaction.
type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
