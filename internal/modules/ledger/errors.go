package ledger

import "coworkspace/internal/pkg/apperror"

var (
	ErrInvalidAmount     = apperror.New(apperror.KindValidation, "Amount must be a non-negative number")
	ErrInsufficientFunds = apperror.New(apperror.KindInsufficientFunds, "Insufficient balance")
	ErrUserNotFound      = apperror.New(apperror.KindNotFound, "User not found")
)
