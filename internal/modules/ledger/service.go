package ledger

import (
	"context"
	"errors"
	"fmt"

	"coworkspace/internal/database"
	"coworkspace/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service moves money on user balances and keeps an entry per movement.
// Calls join the transaction carried by ctx, if any.
type Service struct {
	db *gorm.DB
	tx *database.TxManager
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, tx: database.NewTxManager(db)}
}

// ReserveFunds debits amount from the user when the balance covers it.
// The check and the debit are a single conditional UPDATE, so concurrent
// debits of the same user cannot both pass on the same balance.
func (s *Service) ReserveFunds(ctx context.Context, userID, amount int64) (*domain.LedgerEntry, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	var entry *domain.LedgerEntry
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		conn := database.Conn(ctx, s.db)
		res := conn.Model(&domain.User{}).
			Where("id = ? AND balance >= ?", userID, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if _, err := s.Balance(ctx, userID); err != nil {
				return err
			}
			return ErrInsufficientFunds
		}

		var err error
		entry, err = s.record(ctx, userID, amount, domain.LedgerDebit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateBalance credits a non-negative delta.
func (s *Service) UpdateBalance(ctx context.Context, userID, delta int64) (*domain.LedgerEntry, error) {
	if delta < 0 {
		return nil, ErrInvalidAmount
	}

	var entry *domain.LedgerEntry
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		res := database.Conn(ctx, s.db).Model(&domain.User{}).
			Where("id = ?", userID).
			Update("balance", gorm.Expr("balance + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}

		var err error
		entry, err = s.record(ctx, userID, delta, domain.LedgerCredit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// AttachBooking links a debit entry to the booking it paid for.
func (s *Service) AttachBooking(ctx context.Context, entryID uuid.UUID, bookingID int64) error {
	return database.Conn(ctx, s.db).Model(&domain.LedgerEntry{}).
		Where("id = ?", entryID).
		Update("booking_id", bookingID).Error
}

func (s *Service) Balance(ctx context.Context, userID int64) (int64, error) {
	var u domain.User
	err := database.Conn(ctx, s.db).Select("id", "balance").First(&u, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return u.Balance, nil
}

func (s *Service) ListEntries(ctx context.Context, userID int64, limit, offset int) ([]domain.LedgerEntry, int64, error) {
	q := database.Conn(ctx, s.db).Model(&domain.LedgerEntry{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []domain.LedgerEntry
	find := q.Session(&gorm.Session{}).Order("created_at desc")
	if limit > 0 {
		find = find.Limit(limit).Offset(offset)
	}
	if err := find.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *Service) record(ctx context.Context, userID, amount int64, typ domain.LedgerEntryType) (*domain.LedgerEntry, error) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	entry := &domain.LedgerEntry{UserID: userID, Amount: amount, Type: typ, BalanceAfter: balance}
	if err := database.Conn(ctx, s.db).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("record %s entry: %w", typ, err)
	}
	return entry, nil
}
