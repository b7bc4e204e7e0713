// Package services holds the business layer between the HTTP surface and the
// store. Services validate input, map missing identifiers to NOT_FOUND
// errors, and log through the request-scoped logger.
package services

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rmaia/flashdecks/internal/errors"
)

var validate = validator.New()

// validationError converts a validator error into an AppError describing the
// first failing field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errors.NewValidationError(strings.ToLower(fe.Field()), "failed on rule '"+fe.Tag()+"'")
	}
	return errors.NewValidationError("request", err.Error())
}
