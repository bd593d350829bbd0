package booking

import "coworkspace/internal/pkg/apperror"

var (
	ErrNotFound          = apperror.New(apperror.KindNotFound, "Booking not found")
	ErrSpaceNotFound     = apperror.New(apperror.KindNotFound, "Working space not found")
	ErrUserNotFound      = apperror.New(apperror.KindNotFound, "User not found")
	ErrConflict          = apperror.New(apperror.KindConflict, "Working space is already reserved for this day")
	ErrQuotaExceeded     = apperror.New(apperror.KindQuotaExceeded, "Reservation limit reached")
	ErrInvalidTransition = apperror.New(apperror.KindInvalidTransition, "Invalid booking status transition")
	ErrValidation        = apperror.New(apperror.KindValidation, "Invalid booking request")
	ErrSpaceClosed       = apperror.New(apperror.KindValidation, "Working space is closed on the requested day")
)
