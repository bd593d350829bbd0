package domain

import "time"

type BookingStatus string

const (
	BookingReserved  BookingStatus = "reserved"
	BookingCheckedIn BookingStatus = "checkedIn"
	BookingCanceled  BookingStatus = "canceled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingReserved, BookingCheckedIn, BookingCanceled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving from s
// to next. Staying in the same state is always allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	return s == BookingReserved && (next == BookingCheckedIn || next == BookingCanceled)
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentUnpaid || s == PaymentPaid
}

type PaymentType string

const (
	PaymentCash   PaymentType = "cash"
	PaymentCoupon PaymentType = "coupon"
)

func (t PaymentType) Valid() bool {
	return t == PaymentCash || t == PaymentCoupon
}

const bookingDayLayout = "2006-01-02"

type Booking struct {
	ID             int64         `json:"id" gorm:"primaryKey"`
	UserID         int64         `json:"user_id" gorm:"not null;index"`
	WorkingSpaceID int64         `json:"working_space_id" gorm:"not null;index"`
	BookingDate    time.Time     `json:"booking_date" gorm:"not null;index"`
	BookingDay     string        `json:"booking_day" gorm:"type:varchar(10);not null"`
	Status         BookingStatus `json:"status" gorm:"type:varchar(16);not null;default:reserved;index"`
	PaymentStatus  PaymentStatus `json:"payment_status" gorm:"type:varchar(16);not null;default:unpaid"`
	PaymentType    PaymentType   `json:"payment_type" gorm:"type:varchar(16);not null;default:cash"`
	Cost           int64         `json:"cost" gorm:"not null"`
	CreatedAt      time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time     `json:"updated_at"`

	User         *User         `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	WorkingSpace *WorkingSpace `json:"working_space,omitempty" gorm:"foreignKey:WorkingSpaceID;constraint:OnDelete:CASCADE"`
}

// SetBookingDate normalizes the date to UTC second precision and derives
// the calendar day key used by the per-day uniqueness constraint.
func (b *Booking) SetBookingDate(t time.Time) {
	b.BookingDate = t.UTC().Truncate(time.Second)
	b.BookingDay = b.BookingDate.Format(bookingDayLayout)
}

// DayBounds returns the half-open UTC day [start, end) containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
