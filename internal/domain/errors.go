package domain

import "errors"

var (
	ErrTransport       = errors.New("divination backend unavailable")
	ErrUnsuccessful    = errors.New("divination backend reported failure")
	ErrReadingNotFound = errors.New("reading not found")
	ErrInvalidWish     = errors.New("wish must be between 2 and 200 characters")
	ErrInvalidNumbers  = errors.New("exactly 3 numbers between 1 and 99 are required")
	ErrInvalidOffering = errors.New("unsupported offering token or amount")
)
