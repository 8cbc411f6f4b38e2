package service

import "errors"

// ValidationError marks bad caller input. It is surfaced synchronously and
// never retried, unlike external-service or store failures.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
