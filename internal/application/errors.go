package application

import (
	"errors"

	"github.com/samber/oops"

	"github.com/ericfisherdev/personauth/internal/domain/port/driven"
)

// Error codes attached to service failures.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUserNotFound = "USER_NOT_FOUND"
)

// errValidation reports malformed or missing input for field.
func errValidation(field, format string, args ...any) error {
	return oops.Code(CodeValidation).
		With("field", field).
		Errorf(format, args...)
}

// errNotFound reports an unknown person id.
func errNotFound(id int64) error {
	return oops.Code(CodeNotFound).
		With("id", id).
		Errorf("person %d not found", id)
}

// errUserNotFound reports an unknown login to the authentication layer.
func errUserNotFound(login string) error {
	return oops.Code(CodeUserNotFound).
		With("login", login).
		Errorf("user %q not found", login)
}

// IsValidation returns true if err is a VALIDATION_ERROR.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsNotFound returns true if err is a NOT_FOUND error.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsUserNotFound returns true if err is a USER_NOT_FOUND error.
func IsUserNotFound(err error) bool {
	return hasCode(err, CodeUserNotFound)
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	return oopsErr.Code() == code
}

// storeNotFound converts a store-level ErrPersonNotFound, which can surface
// when a record disappears between the existence check and the write.
func storeNotFound(err error, id int64) error {
	if errors.Is(err, driven.ErrPersonNotFound) {
		return errNotFound(id)
	}
	return err
}
