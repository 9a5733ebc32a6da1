// Package account handles traveller registration: input validation and a
// simulated submit that stores the user locally.
package account

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"tripsee/internal/domain"
)

const MinPasswordLength = 8

// Registration is the payload collected by the sign-up form.
type Registration struct {
	Name            string `json:"name" validate:"required,min=2,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldLabels = map[string]string{
	"name":            "name",
	"email":           "email",
	"password":        "password",
	"confirmPassword": "password confirmation",
}

// Normalized trims the name and lowercases the email. Passwords are kept as
// typed.
func (r Registration) Normalized() Registration {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return r
}

// Validate returns the first problem as a domain.ValidationError keyed by the
// form field.
func (r Registration) Validate() error {
	r = r.Normalized()
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fieldError(fieldErrs[0])
		}
		return domain.ValidationError{Msg: "invalid registration", Err: err}
	}
	if err := CheckPasswordStrength(r.Password); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return domain.ValidationError{Field: "confirmPassword", Msg: "passwords do not match"}
	}
	return nil
}

func fieldError(fe validator.FieldError) error {
	field := fe.Field()
	label := fieldLabels[field]
	if label == "" {
		label = field
	}
	var msg string
	switch fe.Tag() {
	case "required":
		msg = label + " is required"
	case "email":
		msg = "enter a valid email address"
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		msg = label + " is invalid"
	}
	return domain.ValidationError{Field: field, Msg: msg, Err: fe}
}

// CheckPasswordStrength enforces the minimum length and the required
// character classes. The message names every missing class.
func CheckPasswordStrength(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return domain.ValidationError{
			Field: "password",
			Msg:   fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		}
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	var missing []string
	if !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if !hasDigit {
		missing = append(missing, "one digit")
	}
	if len(missing) == 0 {
		return nil
	}
	return domain.ValidationError{
		Field: "password",
		Msg:   "password must contain at least " + strings.Join(missing, " and "),
	}
}
