package payment

import "fmt"

// PaymentError carries a stable code and whether the caller may retry the
// same operation. Processor failures during capture are retryable because
// the transaction stays authorized; refusals of illegal transitions are not.
type PaymentError struct {
	Code      string
	Message   string
	Retryable bool
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newPaymentError(code, msg string, retryable bool) error {
	return &PaymentError{Code: code, Message: msg, Retryable: retryable}
}

// IsRetryable reports whether err is a PaymentError flagged retryable.
func IsRetryable(err error) bool {
	pe, ok := err.(*PaymentError)
	return ok && pe.Retryable
}
