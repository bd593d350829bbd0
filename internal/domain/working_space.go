package domain

import (
	"fmt"
	"time"
)

type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t ClockTime) minutes() int { return t.Hour*60 + t.Minute }

func (t ClockTime) valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

func (t ClockTime) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

type DaySchedule struct {
	ClosedAllDay bool      `json:"closed_all_day"`
	Open         ClockTime `json:"open"`
	Close        ClockTime `json:"close"`
}

type WeeklySchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

func (w WeeklySchedule) Day(d time.Weekday) DaySchedule {
	switch d {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// Validate returns the first malformed weekday, if any.
func (w WeeklySchedule) Validate() error {
	for d := time.Sunday; d <= time.Saturday; d++ {
		day := w.Day(d)
		if day.ClosedAllDay {
			continue
		}
		if !day.Open.valid() || !day.Close.valid() {
			return fmt.Errorf("%s: hour must be 0-23 and minute 0-59", d)
		}
		if day.Open.minutes() >= day.Close.minutes() {
			return fmt.Errorf("%s: open %s must be before close %s", d, day.Open, day.Close)
		}
	}
	return nil
}

// OpenOn reports whether the space accepts reservations on the UTC
// calendar day of t.
func (w WeeklySchedule) OpenOn(t time.Time) bool {
	return !w.Day(t.UTC().Weekday()).ClosedAllDay
}

func DefaultWeeklySchedule() WeeklySchedule {
	day := DaySchedule{Open: ClockTime{Hour: 9}, Close: ClockTime{Hour: 21}}
	return WeeklySchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day, Friday: day,
		Saturday: day, Sunday: day,
	}
}

type WorkingSpace struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Address   string         `json:"address" gorm:"type:varchar(512)"`
	Telephone string         `json:"telephone" gorm:"type:varchar(16);not null"`
	Schedule  WeeklySchedule `json:"schedule" gorm:"type:text;serializer:json"`
	Price     int64          `json:"price" gorm:"not null;index;check:price >= 0"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
}
