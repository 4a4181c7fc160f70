package services

import (
	"errors"

	"looped/internal/repositories"
)

// Sentinel errors the handlers map onto HTTP statuses. ErrNotFound is shared
// with the repository layer so a soft-deleted row surfaces the same way as an
// absent one.
var (
	ErrNotFound           = repositories.ErrNotFound
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrForbidden          = errors.New("forbidden")
)
