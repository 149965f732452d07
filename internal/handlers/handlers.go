// Package handlers carries the HTTP layer: thin role-gated endpoints that
// decode, validate, dispatch to services and write the uniform envelope.
package handlers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/habib-153/oddlogy-server/internal/apperror"
)

var validate = validator.New()

// validateStruct maps validator failures onto a single BAD_REQUEST message.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
		return apperror.BadRequest(fmt.Sprintf("Invalid or missing fields: %s", strings.Join(fields, ", ")))
	}
	return apperror.BadRequest("Invalid request payload")
}
