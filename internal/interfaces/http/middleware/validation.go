package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pupuk/storefront/internal/interfaces/http/dto"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]*$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// SetupValidator makes validation errors report JSON (or form) field names
// and registers the "phone" and "slug" tags.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	_ = v.RegisterValidation("phone", validatePhone)
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
}

// validatePhone accepts local or international numbers written with the
// usual separators, as long as they carry at least four digits.
func validatePhone(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if !phonePattern.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 4 && digits <= 15
}

// FormatValidationErrors formats validation errors into a standard response.
// Anything that is not a validator error (e.g. malformed JSON) is reported
// as a bad request.
func FormatValidationErrors(err error, requestID string) (int, dto.Response) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidJSON, "Malformed request body", requestID)
	}

	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	return http.StatusBadRequest, dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes the response for a binding error
func HandleValidationError(c *gin.Context, err error) {
	status, body := FormatValidationErrors(err, GetRequestID(c))
	c.JSON(status, body)
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "url":
		return "Invalid URL format"
	case "email":
		return "Invalid email address"
	case "phone":
		return "Invalid phone number"
	case "slug":
		return "Use lowercase letters, digits and single dashes"
	default:
		return "Invalid value"
	}
}
