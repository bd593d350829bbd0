package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"coworkspace/internal/authz"
	"coworkspace/internal/database"
	"coworkspace/internal/domain"
	"coworkspace/internal/middleware"
	"coworkspace/internal/pkg/apperror"
	"coworkspace/internal/pkg/logger"
	"coworkspace/internal/pkg/validator"
	"coworkspace/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	admin = domain.Identity{UserID: 1, Role: domain.RoleAdmin}
	user  = domain.Identity{UserID: 2, Role: domain.RoleUser}
)

func setup(t *testing.T) (*gorm.DB, *Service) {
	t.Helper()
	dsn := "file:catalog_test_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := database.Connect(dsn, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db, NewService(repository.NewWorkingSpaceRepository(db), authz.NewGuard(), logger.Discard())
}

func price(v int64) *int64 { return &v }

func TestService_CreateRequiresAdmin(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()
	req := CreateSpaceRequest{Name: "Loft", Telephone: "0812345678", Price: price(100)}

	_, err := svc.Create(ctx, user, req)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	ws, err := svc.Create(ctx, admin, req)
	require.NoError(t, err)
	assert.Equal(t, int64(100), ws.Price)
	assert.Equal(t, domain.DefaultWeeklySchedule(), ws.Schedule)

	_, err = svc.Create(ctx, admin, req)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestService_CreateRejectsBadSchedule(t *testing.T) {
	_, svc := setup(t)
	s := domain.DefaultWeeklySchedule()
	s.Tuesday = domain.DaySchedule{Open: domain.ClockTime{Hour: 25}, Close: domain.ClockTime{Hour: 26}}

	_, err := svc.Create(context.Background(), admin, CreateSpaceRequest{Name: "Bad", Telephone: "0812345678", Price: price(1), Schedule: &s})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestService_UpdateAndDelete(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	ws, err := svc.Create(ctx, admin, CreateSpaceRequest{Name: "Hub", Telephone: "0812345678", Price: price(50)})
	require.NoError(t, err)

	_, err = svc.Update(ctx, user, ws.ID, UpdateSpaceRequest{Price: price(10)})
	assert.ErrorIs(t, err, authz.ErrForbidden)

	updated, err := svc.Update(ctx, admin, ws.ID, UpdateSpaceRequest{Price: price(75)})
	require.NoError(t, err)
	assert.Equal(t, int64(75), updated.Price)
	assert.Equal(t, "Hub", updated.Name)

	_, err = svc.Update(ctx, admin, 9999, UpdateSpaceRequest{Price: price(1)})
	assert.ErrorIs(t, err, ErrNotFound)

	b := &domain.Booking{UserID: 1, WorkingSpaceID: ws.ID, Status: domain.BookingReserved, PaymentStatus: domain.PaymentUnpaid, PaymentType: domain.PaymentCash, Cost: 75}
	b.SetBookingDate(time.Now().Add(48 * time.Hour))
	require.NoError(t, db.Omit("User", "WorkingSpace").Create(b).Error)

	assert.ErrorIs(t, svc.Delete(ctx, user, ws.ID), authz.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, admin, ws.ID))
	assert.ErrorIs(t, svc.Delete(ctx, admin, ws.ID), ErrNotFound)

	var left int64
	require.NoError(t, db.Model(&domain.Booking{}).Where("working_space_id = ?", ws.ID).Count(&left).Error)
	assert.Zero(t, left)
}

func TestService_ListFiltersAndPaginates(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()
	for i, p := range []int64{50, 100, 150, 200} {
		_, err := svc.Create(ctx, admin, CreateSpaceRequest{Name: "S" + strconv.Itoa(i), Telephone: "0812345678", Price: price(p)})
		require.NoError(t, err)
	}

	params, err := ParseListParams(url.Values{"price[gte]": {"100"}, "sort": {"price"}, "limit": {"2"}})
	require.NoError(t, err)
	res, err := svc.List(ctx, user, params)
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.Total)
	require.Len(t, res.Spaces, 2)
	assert.Equal(t, int64(100), res.Spaces[0].Price)
	assert.Equal(t, int64(150), res.Spaces[1].Price)
	require.NotNil(t, res.Pagination.Next)
	assert.Equal(t, 2, res.Pagination.Next.Page)
	assert.Nil(t, res.Pagination.Prev)
}

func newRouter(svc *Service, identity domain.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	_ = validator.RegisterGin()
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, identity)
		c.Next()
	})
	adm := api.Group("")
	adm.Use(middleware.AdminOnly(authz.NewGuard()))
	NewHandler(svc).RegisterRoutes(api, adm)
	return r
}

func TestHandler_CreateAndSelect(t *testing.T) {
	_, svc := setup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workingspaces",
		strings.NewReader(`{"name":"Loft","address":"1 Main st","telephone":"081-234-5678","price":120}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(svc, admin).ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	newRouter(svc, user).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/workingspaces?select=name", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Loft"`)
	assert.NotContains(t, w.Body.String(), `"price"`)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestHandler_Rejections(t *testing.T) {
	_, svc := setup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workingspaces",
		strings.NewReader(`{"name":"Loft","telephone":"0812345678","price":1}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(svc, user).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/workingspaces",
		strings.NewReader(`{"name":"Loft","telephone":"not-a-phone","price":1}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(svc, admin).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	newRouter(svc, user).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/workingspaces?password=x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	newRouter(svc, user).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/workingspaces/42", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
