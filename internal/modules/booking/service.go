package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coworkspace/internal/authz"
	"coworkspace/internal/domain"
	"coworkspace/internal/events"
	"coworkspace/internal/pkg/pagination"
	"coworkspace/internal/repository"

	"github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

type Deps struct {
	Bookings BookingRepository
	Spaces   SpaceReader
	Users    UserLocker
	Ledger   Ledger
	Loyalty  Loyalty
	Tx       TxRunner
	Guard    *authz.Guard
	Events   events.Publisher
	Log      logrus.FieldLogger
	Quota    int
}

// Service runs the booking lifecycle. Every operation takes the caller's
// identity explicitly.
type Service struct {
	bookings BookingRepository
	spaces   SpaceReader
	users    UserLocker
	ledger   Ledger
	loyalty  Loyalty
	tx       TxRunner
	guard    *authz.Guard
	checker  *ConflictChecker
	events   events.Publisher
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewService(d Deps) *Service {
	if d.Guard == nil {
		d.Guard = authz.NewGuard()
	}
	if d.Events == nil {
		d.Events = events.NoopPublisher{}
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	return &Service{
		bookings: d.Bookings,
		spaces:   d.Spaces,
		users:    d.Users,
		ledger:   d.Ledger,
		loyalty:  d.Loyalty,
		tx:       d.Tx,
		guard:    d.Guard,
		checker:  NewConflictChecker(d.Bookings, d.Quota),
		events:   d.Events,
		log:      d.Log,
		now:      time.Now,
	}
}

// Create reserves spaceID for the caller on the requested day. The debit,
// the booking row and the loyalty increment commit together or not at all.
func (s *Service) Create(ctx context.Context, identity domain.Identity, spaceID int64, req CreateBookingRequest) (*domain.Booking, error) {
	space, err := s.spaces.GetByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, err
	}
	if err := s.guard.CanAccess(identity, authz.NoOwner, authz.AnyRole...); err != nil {
		return nil, err
	}

	if req.BookingDate.IsZero() {
		return nil, ErrValidation.WithMessage("booking_date is required")
	}
	paymentType := domain.PaymentCash
	if req.PaymentType != "" {
		paymentType = domain.PaymentType(req.PaymentType)
		if !paymentType.Valid() {
			return nil, ErrValidation.WithMessage("Invalid payment_type")
		}
	}

	b := &domain.Booking{
		UserID:         identity.UserID,
		WorkingSpaceID: space.ID,
		Status:         domain.BookingReserved,
		PaymentStatus:  domain.PaymentUnpaid,
		PaymentType:    paymentType,
		Cost:           space.Price,
	}
	b.SetBookingDate(req.BookingDate)
	if !space.Schedule.OpenOn(b.BookingDate) {
		return nil, ErrSpaceClosed
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.LockByID(ctx, identity.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := s.checker.CheckAvailability(ctx, identity, space.ID, b.BookingDate, 0); err != nil {
			return err
		}

		entry, err := s.ledger.ReserveFunds(ctx, identity.UserID, space.Price)
		if err != nil {
			return err
		}
		if err := s.bookings.Create(ctx, b); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrConflict
			}
			return fmt.Errorf("create booking: %w", err)
		}
		if err := s.ledger.AttachBooking(ctx, entry.ID, b.ID); err != nil {
			return fmt.Errorf("attach ledger entry: %w", err)
		}
		if _, err := s.loyalty.RecordBookingCreated(ctx, identity.UserID); err != nil {
			return fmt.Errorf("record loyalty: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.WorkingSpace = space
	s.log.WithFields(logrus.Fields{
		"booking_id":       b.ID,
		"user_id":          b.UserID,
		"working_space_id": b.WorkingSpaceID,
		"booking_day":      b.BookingDay,
		"cost":             b.Cost,
	}).Info("booking created")
	s.publish(ctx, events.BookingCreated, b)
	return b, nil
}

func (s *Service) Get(ctx context.Context, identity domain.Identity, id int64) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CanAccess(identity, b.UserID, authz.AnyRole...); err != nil {
		return nil, err
	}
	return b, nil
}

// Update applies a partial change. Moving a reserved booking to another
// day re-runs the availability and quota checks without counting itself.
func (s *Service) Update(ctx context.Context, identity domain.Identity, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	var out *domain.Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		if err := s.guard.CanAccess(identity, b.UserID, authz.AnyRole...); err != nil {
			return err
		}

		if req.Status != nil {
			next := domain.BookingStatus(*req.Status)
			if !next.Valid() {
				return ErrValidation.WithMessage("Invalid status " + *req.Status)
			}
			if !b.Status.CanTransitionTo(next) {
				return ErrInvalidTransition.WithMessage(fmt.Sprintf("Cannot change status from %s to %s", b.Status, next))
			}
			b.Status = next
		}
		if req.PaymentStatus != nil {
			ps := domain.PaymentStatus(*req.PaymentStatus)
			if !ps.Valid() {
				return ErrValidation.WithMessage("Invalid payment_status " + *req.PaymentStatus)
			}
			b.PaymentStatus = ps
		}
		if req.PaymentType != nil {
			pt := domain.PaymentType(*req.PaymentType)
			if !pt.Valid() {
				return ErrValidation.WithMessage("Invalid payment_type " + *req.PaymentType)
			}
			b.PaymentType = pt
		}

		moved := false
		if req.BookingDate != nil {
			if req.BookingDate.IsZero() {
				return ErrValidation.WithMessage("booking_date must not be empty")
			}
			prevDay := b.BookingDay
			prevDate := b.BookingDate
			b.SetBookingDate(*req.BookingDate)
			moved = b.BookingDay != prevDay || !b.BookingDate.Equal(prevDate)
		}
		if moved && b.Status == domain.BookingReserved {
			if b.WorkingSpace != nil && !b.WorkingSpace.Schedule.OpenOn(b.BookingDate) {
				return ErrSpaceClosed
			}
			if err := s.checker.CheckAvailability(ctx, identity, b.WorkingSpaceID, b.BookingDate, b.ID); err != nil {
				return err
			}
		}

		if err := s.bookings.Update(ctx, b); err != nil {
			switch {
			case errors.Is(err, repository.ErrDuplicate):
				return ErrConflict
			case errors.Is(err, repository.ErrNotFound):
				return ErrNotFound
			}
			return fmt.Errorf("update booking: %w", err)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the booking. The paid amount is not refunded and the
// loyalty counter keeps its value.
func (s *Service) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.CanAccess(identity, b.UserID, authz.AnyRole...); err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}

	s.log.WithFields(logrus.Fields{"booking_id": id, "deleted_by": identity.UserID}).Info("booking deleted")
	s.publish(ctx, events.BookingDeleted, b)
	return nil
}

func (s *Service) CheckIn(ctx context.Context, identity domain.Identity, id int64) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CanAccess(identity, b.UserID, authz.AnyRole...); err != nil {
		return nil, err
	}
	if b.Status != domain.BookingReserved {
		return nil, ErrInvalidTransition.WithMessage(fmt.Sprintf("Cannot check in a %s booking", b.Status))
	}

	if err := s.bookings.UpdateStatus(ctx, id, domain.BookingReserved, domain.BookingCheckedIn); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Changed or removed since it was read.
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("check in booking: %w", err)
	}
	b.Status = domain.BookingCheckedIn
	s.publish(ctx, events.BookingCheckedIn, b)
	return b, nil
}

// List returns the caller's bookings, or every booking for admins, newest
// first.
func (s *Service) List(ctx context.Context, identity domain.Identity, q ListQuery) (*ListResult, error) {
	if err := s.guard.CanAccess(identity, authz.NoOwner, authz.AnyRole...); err != nil {
		return nil, err
	}

	page, limit := pagination.Normalize(q.Page, q.Limit)
	f := repository.BookingFilter{
		WorkingSpaceID: q.WorkingSpaceID,
		From:           q.From,
		To:             q.To,
		Limit:          limit,
		Offset:         pagination.Offset(page, limit),
	}
	if identity.IsAdmin() {
		f.UserID = q.UserID
	} else {
		f.UserID = identity.UserID
	}
	if q.Status != "" {
		f.Status = domain.BookingStatus(q.Status)
		if !f.Status.Valid() {
			return nil, ErrValidation.WithMessage("Invalid status " + q.Status)
		}
	}
	if q.PaymentStatus != "" {
		f.PaymentStatus = domain.PaymentStatus(q.PaymentStatus)
		if !f.PaymentStatus.Valid() {
			return nil, ErrValidation.WithMessage("Invalid payment_status " + q.PaymentStatus)
		}
	}

	bookings, total, err := s.bookings.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return &ListResult{
		Bookings:   bookings,
		Total:      total,
		Pagination: pagination.Build(page, limit, total),
	}, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound.WithMessage(fmt.Sprintf("No booking with the id of %d", id))
		}
		return nil, err
	}
	return b, nil
}

// publish runs after commit and never fails the caller.
func (s *Service) publish(ctx context.Context, typ string, b *domain.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.Publish(ctx, events.NewBookingEvent(typ, b, s.now())); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"event":      typ,
			"booking_id": b.ID,
		}).Warn("publish booking event failed")
	}
}
