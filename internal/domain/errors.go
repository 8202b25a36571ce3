package domain

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrInvalidImageFormat   = errors.New("invalid image format")
	ErrInvalidOperation     = errors.New("invalid operation")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrSaveFailed           = errors.New("save failed")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrNotFound             = errors.New("not found")
	ErrOutOfStock           = errors.New("product out of stock")
	ErrEmptyCart            = errors.New("cart is empty")
)
