package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"coworkspace/internal/domain"
	"coworkspace/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:database_test_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := Connect(dsn, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func seedSpaceAndUser(t *testing.T, db *gorm.DB) (*domain.User, *domain.WorkingSpace) {
	t.Helper()
	user := &domain.User{Name: "U", Email: "u@example.com", Telephone: "0812345678", PasswordHash: "x", Role: domain.RoleUser}
	require.NoError(t, db.Create(user).Error)
	space := &domain.WorkingSpace{Name: "Hub", Telephone: "0812345678", Price: 100, Schedule: domain.DefaultWeeklySchedule()}
	require.NoError(t, db.Create(space).Error)
	return user, space
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgres("postgresql://localhost/db"))
	assert.False(t, IsPostgres("coworkspace.db"))
	assert.False(t, IsPostgres("file::memory:?cache=shared"))
}

func TestMigrate_ReservedBookingUniquePerSpaceDay(t *testing.T) {
	db := setupTestDB(t)
	user, space := seedSpaceAndUser(t, db)

	first := &domain.Booking{UserID: user.ID, WorkingSpaceID: space.ID, Status: domain.BookingReserved, PaymentStatus: domain.PaymentUnpaid, PaymentType: domain.PaymentCash, Cost: 100}
	first.SetBookingDate(time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, db.Create(first).Error)

	second := &domain.Booking{UserID: user.ID, WorkingSpaceID: space.ID, Status: domain.BookingReserved, PaymentStatus: domain.PaymentUnpaid, PaymentType: domain.PaymentCash, Cost: 100}
	second.SetBookingDate(time.Date(2030, 6, 1, 17, 30, 0, 0, time.UTC))
	err := db.Create(second).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	// A canceled booking does not hold the day.
	canceled := &domain.Booking{UserID: user.ID, WorkingSpaceID: space.ID, Status: domain.BookingCanceled, PaymentStatus: domain.PaymentUnpaid, PaymentType: domain.PaymentCash, Cost: 100}
	canceled.SetBookingDate(time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, db.Create(canceled).Error)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, Migrate(db))
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	tm := NewTxManager(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := tm.WithinTx(ctx, func(ctx context.Context) error {
		assert.True(t, InTx(ctx))
		if err := Conn(ctx, db).Create(&domain.WorkingSpace{Name: "Temp", Telephone: "0812345678", Price: 1}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&domain.WorkingSpace{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestTxManager_NestedJoinsOuter(t *testing.T) {
	db := setupTestDB(t)
	tm := NewTxManager(db)

	err := tm.WithinTx(context.Background(), func(ctx context.Context) error {
		return tm.WithinTx(ctx, func(inner context.Context) error {
			return Conn(inner, db).Create(&domain.WorkingSpace{Name: "Nested", Telephone: "0812345678", Price: 1}).Error
		})
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.WorkingSpace{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.False(t, InTx(context.Background()))
}
