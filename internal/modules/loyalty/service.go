package loyalty

import (
	"context"
	"errors"
	"time"

	"coworkspace/internal/database"
	"coworkspace/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service keeps one booking counter per user. Counters are created on the
// first booking and never decremented.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RecordBookingCreated adds one to the user's counter, creating it at 1.
func (s *Service) RecordBookingCreated(ctx context.Context, userID int64) (*domain.Collect, error) {
	conn := database.Conn(ctx, s.db)
	row := &domain.Collect{UserID: userID, Count: 1}
	err := conn.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count":      gorm.Expr("collects.count + 1"),
			"updated_at": time.Now().UTC(),
		}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}

	var out domain.Collect
	if err := conn.Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns the user's counter, or a zero counter when none exists.
func (s *Service) Get(ctx context.Context, userID int64) (*domain.Collect, error) {
	var out domain.Collect
	err := database.Conn(ctx, s.db).Where("user_id = ?", userID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.Collect{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
