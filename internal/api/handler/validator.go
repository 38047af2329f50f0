package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/pkg/password"
)

// regnumPattern matches farm registration numbers: 5-20 alphanumeric
// characters or dashes (e.g. "AGR-20491", "green-farm-01").
var regnumPattern = regexp.MustCompile(`^[A-Za-z0-9-]{5,20}$`)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Violations surface as a single VALIDATION_ERROR carrying one entry per
// offending field, named after its json tag.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	// Report json field names instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// strongpassword: at least 8 chars with upper, lower, digit and special.
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return password.IsStrong(fl.Field().String())
	})

	// regnum: farm registration number format.
	_ = v.RegisterValidation("regnum", func(fl validator.FieldLevel) bool {
		return regnumPattern.MatchString(fl.Field().String())
	})

	// futuredate: zero value passes (optional fields), otherwise must be in the future.
	_ = v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return t.IsZero() || t.After(time.Now())
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]domain.FieldError, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, domain.FieldError{
					Field:   fieldPath(fe),
					Message: fieldMessage(fe),
				})
			}
			return domain.NewValidationError(fields...)
		}
		return err
	}
	return nil
}

// fieldPath strips the top-level struct name from the namespace, leaving a
// dotted json path like "items.0.quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// fieldMessage converts a single ValidationError into a human-readable message.
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	case "e164":
		return field + " must be a valid phone number in E.164 format"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "regnum":
		return field + " must be 5-20 alphanumeric characters or dashes"
	case "strongpassword":
		return field + " must be at least 8 characters with uppercase, lowercase, number and special character"
	case "futuredate":
		return field + " must be a date in the future"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
