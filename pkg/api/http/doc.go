// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - Predictions (POST /predict)
//   - Health checks (GET /health)
//   - Prometheus metrics (GET /metrics, optional)
package http
