package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the given id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateOrderNumber is returned when an insert collides with the
	// unique index on orders.order_number.
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
)
