package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a business-rule failure. Codes are stable and drive the
// HTTP status mapping in the response package.
type ErrorCode string

const (
	// CodeRentTime signals an invalid rental period (start not strictly
	// before end, or start already in the past at submission).
	CodeRentTime ErrorCode = "rent_time"

	// CodeItemUnavailable signals a booking attempt against an item whose
	// owner has switched availability off.
	CodeItemUnavailable ErrorCode = "item_unavailable"

	// CodeOwnItem signals an owner trying to book their own item.
	CodeOwnItem ErrorCode = "own_item"

	// CodeAlreadyDecided signals a repeated decision on a booking that has
	// already left WAITING.
	CodeAlreadyDecided ErrorCode = "already_decided"

	// CodeValidation is the generic input-validation failure.
	CodeValidation ErrorCode = "validation"

	// CodeOwnership signals that the caller lacks the required relationship
	// to the object. Surfaced as not-found so existence is not leaked.
	CodeOwnership ErrorCode = "ownership"

	// CodeNotFound signals an absent entity.
	CodeNotFound ErrorCode = "not_found"

	// CodeConflict signals a uniqueness or concurrent-modification conflict.
	CodeConflict ErrorCode = "conflict"

	// CodeUnknownState signals that a booking list category resolved to no
	// registered search strategy. This is a server-side configuration gap,
	// not bad input, and maps to an internal error.
	CodeUnknownState ErrorCode = "unknown_state"
)

// Error is the typed business error returned by domain and application code.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewRentTimeError creates a rental-period constraint error.
func NewRentTimeError(message string) *Error {
	return &Error{Code: CodeRentTime, Message: message}
}

// NewItemUnavailableError creates an item-unavailable error.
func NewItemUnavailableError(itemID string) *Error {
	return &Error{Code: CodeItemUnavailable, Message: fmt.Sprintf("item %s is not available for booking", itemID)}
}

// NewOwnItemError creates an own-item booking error.
func NewOwnItemError() *Error {
	return &Error{Code: CodeOwnItem, Message: "owner cannot book their own item"}
}

// NewAlreadyDecidedError creates a repeated-decision error.
func NewAlreadyDecidedError(bookingID string) *Error {
	return &Error{Code: CodeAlreadyDecided, Message: fmt.Sprintf("booking %s has already been decided", bookingID)}
}

// NewValidationError creates a generic validation error.
func NewValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NewOwnershipError creates an ownership/relationship error.
func NewOwnershipError(message string) *Error {
	return &Error{Code: CodeOwnership, Message: message}
}

// NewNotFoundError creates a not-found error for the given entity and id.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewConflictError creates a conflict error.
func NewConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// NewUnknownStateError creates an unknown-state error carrying the raw
// category value that failed to resolve.
func NewUnknownStateError(state string) *Error {
	return &Error{Code: CodeUnknownState, Message: fmt.Sprintf("Unknown state: %s", state)}
}

// CodeOf extracts the ErrorCode from err, or the empty code if err is not a
// business error.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsCode reports whether err is a business error with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
