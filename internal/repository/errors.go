// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver-specific errors. For example, ErrEmailExists and ErrPhoneExists
// identify which unique constraint rejected a registration, while
// ErrInvalidResetCode signals that a compare-then-clear of a pending reset
// code matched no row.
package repository

import "errors"

// ErrEmailExists is returned when an insert collides with the unique
// index on users.email. Handlers should translate this into a field
// error on "email".
var ErrEmailExists = errors.New("email already exists")

// ErrPhoneExists is returned when an insert collides with the unique
// index on users.phone. Handlers should translate this into a field
// error on "phone".
var ErrPhoneExists = errors.New("phone already exists")

// ErrInvalidResetCode is returned when consuming a reset code matched no
// row: the user has no pending reset, the supplied code is wrong, or a
// concurrent reset already consumed it. Callers must not distinguish
// these causes to the outside.
var ErrInvalidResetCode = errors.New("invalid reset code")
