package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart indicates an operation that needs at least one cart line.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidTransition indicates a checkout step was called out of order.
	ErrInvalidTransition = errors.New("invalid checkout transition")
)
