package errors

import (
	"fmt"
	"reflect"
)

type Error interface {
	error
	New(args ...any) BaseError
}

type BaseError struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`

	messageFormat string
}

func (e BaseError) Error() string {
	return e.Message
}

// New returns a copy of the error with its message formatted from args.
// The receiver is left untouched so package-level errors can be shared between requests.
func (e BaseError) New(args ...any) BaseError {

	e.Message = e.messageFormat
	if len(args) > 0 {
		e.Message = fmt.Sprintf(e.messageFormat, args...)
	}

	return e
}

// Is reports whether target is a BaseError with the same code, so errors.Is works across wrapping.
func (e BaseError) Is(target error) bool {

	asserted, ok := target.(BaseError)
	if !ok {
		return false
	}

	return e.Code == asserted.Code
}

func (e BaseError) IsNil() bool {
	return reflect.ValueOf(e).IsZero()
}

func TryAssertError(err error) (BaseError, bool) {

	asserted, ok := err.(BaseError)
	return asserted, ok
}

func IsError(err error, expectedError BaseError) bool {

	asserted, ok := err.(BaseError)
	if !ok {
		return false
	}

	return asserted.Code == expectedError.Code && asserted.Message == expectedError.Message
}

func new(errorCode int, name string, messageFormat string) Error {

	return BaseError{Code: errorCode, Name: name, Message: messageFormat, messageFormat: messageFormat}
}
