package catalog

import "coworkspace/internal/pkg/apperror"

var (
	ErrNotFound      = apperror.New(apperror.KindNotFound, "Working space not found")
	ErrDuplicateName = apperror.New(apperror.KindValidation, "A working space with this name already exists")
	ErrValidation    = apperror.New(apperror.KindValidation, "Invalid working space")
	ErrInvalidQuery  = apperror.New(apperror.KindValidation, "Invalid query parameters")
)
