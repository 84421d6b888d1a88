package invoice

// InvoiceError is a client-facing invoice failure.
type InvoiceError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *InvoiceError) Error() string { return e.Message }

func newInvoiceError(code, message string) *InvoiceError {
	return &InvoiceError{Code: code, Message: message}
}
