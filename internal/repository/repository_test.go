package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"coworkspace/internal/database"
	"coworkspace/internal/domain"
	"coworkspace/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repository_test_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, repo *UserRepository, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: "N", Email: email, Telephone: "0812345678", PasswordHash: "hash", Balance: 100}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func createSpace(t *testing.T, repo *WorkingSpaceRepository, name string, price int64) *domain.WorkingSpace {
	t.Helper()
	ws := &domain.WorkingSpace{Name: name, Address: "Main st", Telephone: "0812345678", Price: price, Schedule: domain.DefaultWeeklySchedule()}
	require.NoError(t, repo.Create(context.Background(), ws))
	return ws
}

func reserved(userID, spaceID int64, day time.Time) *domain.Booking {
	b := &domain.Booking{
		UserID:         userID,
		WorkingSpaceID: spaceID,
		Status:         domain.BookingReserved,
		PaymentStatus:  domain.PaymentUnpaid,
		PaymentType:    domain.PaymentCash,
		Cost:           100,
	}
	b.SetBookingDate(day)
	return b
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	u := createUser(t, repo, "  Alice@Example.COM ")
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, domain.RoleUser, u.Role)

	byEmail, err := repo.GetByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	locked, err := repo.LockByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), locked.Balance)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Create(ctx, &domain.User{Name: "Dup", Email: "alice@example.com", Telephone: "0812345678", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestWorkingSpaceRepository_ListFiltersSortAndPage(t *testing.T) {
	repo := NewWorkingSpaceRepository(setupTestDB(t))
	ctx := context.Background()
	createSpace(t, repo, "Alpha", 50)
	createSpace(t, repo, "Bravo", 150)
	createSpace(t, repo, "Charlie", 250)

	spaces, total, err := repo.List(ctx, SpaceQuery{
		Filters: []Filter{{Column: "price", Op: OpGte, Values: []any{100}}},
		Sort:    []SortField{{Column: "price", Desc: false}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, spaces, 2)
	assert.Equal(t, "Bravo", spaces[0].Name)
	assert.Equal(t, "Charlie", spaces[1].Name)

	spaces, total, err = repo.List(ctx, SpaceQuery{
		Filters: []Filter{{Column: "name", Op: OpIn, Values: []any{"Alpha", "Charlie"}}},
		Sort:    []SortField{{Column: "name", Desc: true}},
		Select:  []string{"name"},
		Limit:   1,
		Offset:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, spaces, 1)
	assert.Equal(t, "Alpha", spaces[0].Name)
	assert.NotZero(t, spaces[0].ID)
	assert.Zero(t, spaces[0].Price)

	_, _, err = repo.List(ctx, SpaceQuery{Filters: []Filter{{Column: "price", Op: "like", Values: []any{1}}}})
	assert.Error(t, err)
}

func TestWorkingSpaceRepository_UpdateDuplicateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWorkingSpaceRepository(db)
	users := NewUserRepository(db)
	bookings := NewBookingRepository(db)
	ctx := context.Background()

	a := createSpace(t, repo, "Alpha", 50)
	createSpace(t, repo, "Bravo", 60)

	a.Price = 75
	require.NoError(t, repo.Update(ctx, a))
	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(75), got.Price)
	assert.Equal(t, domain.DefaultWeeklySchedule(), got.Schedule)

	a.Name = "Bravo"
	assert.ErrorIs(t, repo.Update(ctx, a), ErrDuplicate)
	assert.ErrorIs(t, repo.Update(ctx, &domain.WorkingSpace{ID: 999, Name: "Zulu"}), ErrNotFound)

	u := createUser(t, users, "u@example.com")
	require.NoError(t, bookings.Create(ctx, reserved(u.ID, a.ID, time.Now().Add(48*time.Hour))))

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, total, err := bookings.List(ctx, BookingFilter{WorkingSpaceID: a.ID})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), ErrNotFound)
}

func TestBookingRepository_ConflictAndQuotaQueries(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	spaces := NewWorkingSpaceRepository(db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	u := createUser(t, users, "u@example.com")
	ws := createSpace(t, spaces, "Hub", 100)
	day := time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)
	b := reserved(u.ID, ws.ID, day)
	require.NoError(t, repo.Create(ctx, b))

	start, end := domain.DayBounds(day)
	exists, err := repo.ExistsReservedInRange(ctx, ws.ID, start, end, 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsReservedInRange(ctx, ws.ID, start, end, b.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsReservedInRange(ctx, ws.ID, end, end.AddDate(0, 0, 1), 0)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, repo.Create(ctx, reserved(u.ID, ws.ID, day.Add(5*time.Hour))), ErrDuplicate)

	past := reserved(u.ID, ws.ID, time.Now().AddDate(0, 0, -3))
	require.NoError(t, repo.Create(ctx, past))

	cnt, err := repo.CountFutureReserved(ctx, u.ID, time.Now(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	require.NoError(t, repo.UpdateStatus(ctx, b.ID, domain.BookingReserved, domain.BookingCheckedIn))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, b.ID, domain.BookingReserved, domain.BookingCheckedIn), ErrNotFound)

	cnt, err = repo.CountFutureReserved(ctx, u.ID, time.Now(), 0)
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

func TestBookingRepository_ListAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	spaces := NewWorkingSpaceRepository(db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	u1 := createUser(t, users, "a@example.com")
	u2 := createUser(t, users, "b@example.com")
	ws := createSpace(t, spaces, "Hub", 100)

	first := reserved(u1.ID, ws.ID, time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, first))
	second := reserved(u2.ID, ws.ID, time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, second))
	third := reserved(u1.ID, ws.ID, time.Date(2030, 1, 3, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, third))

	all, total, err := repo.List(ctx, BookingFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID)
	require.NotNil(t, all[0].WorkingSpace)
	assert.Equal(t, "Hub", all[0].WorkingSpace.Name)

	mine, total, err := repo.List(ctx, BookingFilter{UserID: u1.ID, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, mine, 1)
	assert.Equal(t, third.ID, mine[0].ID)

	from := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2030, 1, 3, 0, 0, 0, 0, time.UTC)
	ranged, _, err := repo.List(ctx, BookingFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, second.ID, ranged[0].ID)

	first.SetBookingDate(time.Date(2030, 1, 2, 15, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, repo.Update(ctx, first), ErrDuplicate)

	first.SetBookingDate(time.Date(2030, 1, 5, 15, 0, 0, 0, time.UTC))
	first.PaymentStatus = domain.PaymentPaid
	require.NoError(t, repo.Update(ctx, first))
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "2030-01-05", got.BookingDay)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, int64(100), got.Cost)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), ErrNotFound)
}
