package auth

import "coworkspace/internal/pkg/apperror"

var (
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthenticated, "Invalid credentials")
	ErrEmailAlreadyExists = apperror.New(apperror.KindValidation, "This email is already registered")
	ErrUserNotFound       = apperror.New(apperror.KindNotFound, "User not found")
)
