// Package inference implements request validation and the prediction itself.
//
// A request body is inspected as a generic JSON value and only coerced into
// a typed feature vector once every type check has passed:
//   - the body must be a JSON object carrying a "features" key
//   - "features" must be an array
//   - every element must be a JSON number
//
// Failures are reported as *ValidationError with a Kind discriminant.
// The predictor computes the arithmetic mean of the features. Both types are
// stateless and safe for concurrent use.
package inference
