package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors returned by the services. Callers match them with
// errors.Is; the wrapped text is safe to show to API clients.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrAlreadyMember      = errors.New("user is already a member of this company")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrProductInUse       = errors.New("product is referenced by appointments")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

func forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

// translate maps gorm's record-not-found onto ErrNotFound for entity.
func translate(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity)
	}
	return err
}
