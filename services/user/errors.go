package user

// UserError is a client-facing account failure.
type UserError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *UserError) Error() string { return e.Message }

func newUserError(code, message string) *UserError {
	return &UserError{Code: code, Message: message}
}
