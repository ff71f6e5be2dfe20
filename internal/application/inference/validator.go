package inference

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/tidwall/gjson"
)

const featuresKey = "features"

// Validator turns raw request bodies into feature vectors
type Validator struct{}

// NewValidator creates a new request validator
func NewValidator() *Validator {
	return &Validator{}
}

// Feature is one validated input value
type Feature struct {
	Value float64
	// Integer holds the exact value of an integer literal, nil otherwise
	Integer *big.Int
}

// ParseFeatures validates body and returns its features in order.
// An empty "features" array yields an empty, non-nil slice.
func (v *Validator) ParseFeatures(body []byte) ([]Feature, error) {
	// Malformed and empty bodies are indistinguishable from a missing key
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return nil, missingField()
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, missingField()
	}

	raw, ok := lastMember(doc, featuresKey)
	if !ok {
		return nil, missingField()
	}

	if !raw.IsArray() {
		return nil, &ValidationError{
			Kind:    KindWrongType,
			Message: fmt.Sprintf("features must be a list of numbers, got %s", describe(raw)),
			Index:   -1,
		}
	}

	elements := raw.Array()
	features := make([]Feature, 0, len(elements))
	for i, elem := range elements {
		if err := v.validateElement(i, elem); err != nil {
			return nil, err
		}
		features = append(features, Feature{
			Value:   elem.Num,
			Integer: integerLiteral(elem.Raw),
		})
	}

	return features, nil
}

// validateElement validates a single feature value
func (v *Validator) validateElement(index int, elem gjson.Result) error {
	if elem.Type != gjson.Number {
		return &ValidationError{
			Kind:    KindInvalidElement,
			Message: fmt.Sprintf("features must be a list of numbers: element %d is %s", index, describe(elem)),
			Index:   index,
		}
	}

	// gjson saturates out of range literals such as 1e400 to ±Inf
	if math.IsInf(elem.Num, 0) || math.IsNaN(elem.Num) {
		return &ValidationError{
			Kind:    KindInvalidElement,
			Message: fmt.Sprintf("features must be a list of numbers: element %d is out of range", index),
			Index:   index,
		}
	}

	return nil
}

// lastMember returns the value of key in obj. A repeated key resolves to its
// last occurrence.
func lastMember(obj gjson.Result, key string) (gjson.Result, bool) {
	var (
		value gjson.Result
		found bool
	)
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			value, found = v, true
		}
		return true
	})
	return value, found
}

// integerLiteral parses a JSON number without fraction or exponent
func integerLiteral(raw string) *big.Int {
	if strings.ContainsAny(raw, ".eE") {
		return nil
	}
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil
	}
	return n
}

func missingField() *ValidationError {
	return &ValidationError{
		Kind:    KindMissingField,
		Message: MissingFeaturesMessage,
		Index:   -1,
	}
}

// describe names the JSON type of r for error messages
func describe(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "a boolean"
	case gjson.Number:
		return "a number"
	case gjson.String:
		return "a string"
	}
	if r.IsArray() {
		return "an array"
	}
	return "an object"
}
