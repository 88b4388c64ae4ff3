package usecase

import "errors"

// DomainError is a caller mistake; handlers map it to a 4xx.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

var ErrNoLeads = &DomainError{Code: "NO_LEADS", Message: "leads array is required"}
