package api

import (
	"bulletin/internal/auth"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName reports validation failures under the wire name of a field.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// bindJSON decodes and validates the request body, writing the error
// response itself when it fails. The body is cached so earlier middleware
// may already have read it.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindBodyWith(obj, binding.JSON)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		ValidationFailed(c, validationDetails(verrs))
		return false
	}
	InvalidPayload(c)
	return false
}

func validationDetails(verrs validator.ValidationErrors) []FieldError {
	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	default:
		return field + " is invalid"
	}
}

// fieldErrors builds details for checks done outside struct validation.
func fieldErrors(field, message string) []FieldError {
	return []FieldError{{Field: field, Message: message}}
}

// validNewPassword applies the password policy to a newly chosen password and
// writes a validation error naming field when it fails.
func validNewPassword(c *gin.Context, field, password string) bool {
	if err := auth.ValidateNewPassword(password); err != nil {
		ValidationFailed(c, fieldErrors(field, err.Error()))
		return false
	}
	return true
}
