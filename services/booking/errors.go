package booking

import "fmt"

// BookingError carries a stable code for handler mapping.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newBookingError(code, msg string) error {
	return &BookingError{Code: code, Message: msg}
}
