// Package app assembles repositories, services and handlers into the HTTP
// router served by cmd/api.
package app

import (
	"context"
	"net/http"
	"time"

	"coworkspace/internal/authz"
	"coworkspace/internal/config"
	"coworkspace/internal/database"
	"coworkspace/internal/events"
	"coworkspace/internal/middleware"
	"coworkspace/internal/modules/auth"
	"coworkspace/internal/modules/booking"
	"coworkspace/internal/modules/catalog"
	"coworkspace/internal/modules/ledger"
	"coworkspace/internal/modules/loyalty"
	"coworkspace/internal/pkg/jwt"
	"coworkspace/internal/pkg/response"
	"coworkspace/internal/pkg/validator"
	"coworkspace/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    logrus.FieldLogger
	Redis  *redis.Client
	Events events.Publisher
}

// NewRouter wires every module onto /api/v1. Redis and Events may be nil.
func NewRouter(d Deps) (*gin.Engine, error) {
	if err := validator.RegisterGin(); err != nil {
		return nil, err
	}
	if d.Events == nil {
		d.Events = events.NoopPublisher{}
	}
	cfg := d.Config

	userRepo := repository.NewUserRepository(d.DB)
	spaceRepo := repository.NewWorkingSpaceRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)

	guard := authz.NewGuard()
	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	ledgerService := ledger.NewService(d.DB)
	loyaltyService := loyalty.NewService(d.DB)

	authHandler := auth.NewHandler(
		auth.NewService(userRepo, tokens, cfg.InitialBalance, d.Log),
		cfg.JWTTTL,
		cfg.CookieSecure,
	)
	catalogHandler := catalog.NewHandler(catalog.NewService(spaceRepo, guard, d.Log))
	bookingHandler := booking.NewHandler(booking.NewService(booking.Deps{
		Bookings: bookingRepo,
		Spaces:   spaceRepo,
		Users:    userRepo,
		Ledger:   ledgerService,
		Loyalty:  loyaltyService,
		Tx:       database.NewTxManager(d.DB),
		Guard:    guard,
		Events:   d.Events,
		Log:      d.Log,
		Quota:    cfg.BookingQuota,
	}))
	ledgerHandler := ledger.NewHandler(ledgerService)
	loyaltyHandler := loyalty.NewHandler(loyaltyService)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.ErrorLogger(d.Log),
		middleware.SecureHeaders(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(cfg.RateLimit, d.Redis, d.Log),
	)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", health(d.DB))
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(tokens))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			loyaltyHandler.RegisterRoutes(protected)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly(guard))

			catalogHandler.RegisterRoutes(protected, admin)
			ledgerHandler.RegisterRoutes(protected, admin)
		}
	}
	return r, nil
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Database is unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
