package inference

import "errors"

// ErrorKind discriminates validation failures
type ErrorKind string

const (
	// KindMissingField covers a malformed, empty or non-object body as well
	// as an object without "features".
	KindMissingField   ErrorKind = "missing_field"
	KindWrongType      ErrorKind = "wrong_type"
	KindInvalidElement ErrorKind = "invalid_element"
)

// MissingFeaturesMessage is reported for every KindMissingField failure
const MissingFeaturesMessage = "Missing 'features' in body"

// ValidationError is returned when a request body does not describe a
// feature vector.
type ValidationError struct {
	Kind    ErrorKind
	Message string
	// Index of the offending element for KindInvalidElement, -1 otherwise
	Index int
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidationError unwraps err into a *ValidationError if it is one
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
