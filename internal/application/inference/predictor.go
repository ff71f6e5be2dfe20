package inference

import "math/big"

// Prediction is the outcome of a successful inference
type Prediction struct {
	Value        float64
	FeatureCount int
}

// Predictor validates request bodies and computes predictions
type Predictor struct {
	validator *Validator
}

// NewPredictor creates a new predictor
func NewPredictor(validator *Validator) *Predictor {
	return &Predictor{validator: validator}
}

// Predict parses body and returns the mean of its features. The returned
// error is always a *ValidationError.
func (p *Predictor) Predict(body []byte) (*Prediction, error) {
	features, err := p.validator.ParseFeatures(body)
	if err != nil {
		return nil, err
	}

	return &Prediction{
		Value:        Mean(features),
		FeatureCount: len(features),
	}, nil
}

// Mean returns the arithmetic mean of features, or 0 for an empty slice.
// The sum is exact: integer literals contribute their exact value and
// floats their exact binary value. Only the quotient is rounded to float64.
func Mean(features []Feature) float64 {
	if len(features) == 0 {
		return 0
	}

	sum := new(big.Rat)
	term := new(big.Rat)
	for _, f := range features {
		if f.Integer != nil {
			term.SetInt(f.Integer)
		} else if term.SetFloat64(f.Value) == nil {
			// NaN and ±Inf are rejected by the validator
			continue
		}
		sum.Add(sum, term)
	}

	mean, _ := sum.Quo(sum, new(big.Rat).SetInt64(int64(len(features)))).Float64()
	return mean
}
