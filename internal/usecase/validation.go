package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateBulkSendInput turns validator failures into a DomainError.
// A missing or empty leads list is always ErrNoLeads.
func ValidateBulkSendInput(in BulkSendInput) error {
	if len(in.Leads) == 0 {
		return ErrNoLeads
	}
	return validateStruct(in)
}

func ValidateSendEmailInput(in SendEmailInput) error {
	return validateStruct(in)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
	}
	return &DomainError{Code: "VALIDATION_ERROR", Message: strings.Join(msgs, "; ")}
}
