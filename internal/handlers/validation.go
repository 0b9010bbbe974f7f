package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding tags used by the request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}

	// Report json names ("customer.email") instead of Go field names.
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

	if err := v.RegisterValidation("currency_code", validateCurrencyCode); err != nil {
		return fmt.Errorf("register currency_code: %w", err)
	}
	if err := v.RegisterValidation("currency_position", validateCurrencyPosition); err != nil {
		return fmt.Errorf("register currency_position: %w", err)
	}
	return nil
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return domain.CurrencyCode(fl.Field().String()).Normalize().IsSupported()
}

func validateCurrencyPosition(fl validator.FieldLevel) bool {
	return domain.CurrencyPosition(strings.ToLower(strings.TrimSpace(fl.Field().String()))).IsValid()
}

// bindingErrorMessage turns a bind error into a short, field-specific message.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request format: " + err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldPath(fe)+": "+fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s entries", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "currency_code":
		return "unsupported currency"
	case "currency_position":
		return "must be 'before' or 'after'"
	default:
		return "failed '" + fe.Tag() + "' validation"
	}
}
