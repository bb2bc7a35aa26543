package sales

import "errors"

var (
	// ErrNotFound is returned when a sale with the given ID is not found
	// in the owner's records.
	ErrNotFound = errors.New("sale not found")

	// ErrEmptyID is returned when trying to store a sale with an empty ID.
	ErrEmptyID = errors.New("empty sale ID")

	// ErrEmptyItems is returned when a sale request contains no items.
	ErrEmptyItems = errors.New("sale must have at least one item")

	// ErrInvalidQuantity is returned when any requested quantity is below 1.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")

	// ErrInvalidPaymentMethod is returned for a payment method outside
	// cash, card and upi.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrDuplicateReceipt is returned by the storage layer when a receipt
	// number is already taken. It is the uniqueness backstop behind the
	// generator and stays internal to the engine.
	ErrDuplicateReceipt = errors.New("receipt number already exists")

	// ErrTransientCommit is returned when a sale could not be committed for
	// a transient reason. No state was changed and the caller may retry the
	// whole request.
	ErrTransientCommit = errors.New("sale could not be committed, retry")
)
