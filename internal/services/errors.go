package services

import "errors"

// Expected business-rule violations. Handlers map these to HTTP statuses;
// anything else is a storage/transport failure and surfaces as a 5xx.
var (
	ErrBadCreds           = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfSwap           = errors.New("cannot swap with your own item")
	ErrItemUnavailable    = errors.New("item is not available")
	ErrAlreadyRequested   = errors.New("a pending request for this item already exists")
	ErrAlreadyResolved    = errors.New("request has already been resolved")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrInvalidState       = errors.New("operation not valid for the current status")
	ErrConflict           = errors.New("lost a concurrent update, please retry")
)
