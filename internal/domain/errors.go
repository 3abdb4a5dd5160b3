package domain

import "errors"

var (
	ErrPartnerNotFound   = errors.New("partner not found")
	ErrPartnerEmailTaken = errors.New("a partner with this email already exists")
	ErrInvalidID         = errors.New("invalid id")
	ErrNameRequired      = errors.New("name is required")
	ErrEmailRequired     = errors.New("email is required")
	ErrInvalidRate       = errors.New("commission rate must be between 0 and 100")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrMissingOrderID    = errors.New("order id is required")
	ErrInvalidAmount     = errors.New("invalid monetary amount")
)
