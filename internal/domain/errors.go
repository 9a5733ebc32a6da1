package domain

import (
	"errors"
	"fmt"
)

// ValidationError is a recoverable, field-level input error. Forms show Msg
// next to the field and block submission.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// ServiceError is returned by the simulated service calls (registration,
// destination search). The UI shows it as a blocking alert.
type ServiceError struct {
	Op  string
	Msg string
	Err error
}

func (e ServiceError) Error() string {
	switch {
	case e.Op != "" && e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Op != "":
		return fmt.Sprintf("%s failed", e.Op)
	default:
		return "service error"
	}
}

func (e ServiceError) Unwrap() error { return e.Err }

// NotFoundError reports a missing trip, item or user.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e NotFoundError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsService(err error) bool {
	var target ServiceError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

// FieldOf returns the field name of a ValidationError, or "".
func FieldOf(err error) string {
	var target ValidationError
	if errors.As(err, &target) {
		return target.Field
	}
	return ""
}
