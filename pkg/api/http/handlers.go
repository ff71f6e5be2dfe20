package http

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/aescanero/predictor/internal/application/inference"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PredictionResponse is the body of a successful prediction
type PredictionResponse struct {
	Prediction float64 `json:"prediction"`
}

// MarshalJSON always writes the prediction as a float literal, so a whole
// number comes out as 2.0 rather than 2.
func (r PredictionResponse) MarshalJSON() ([]byte, error) {
	return []byte(`{"prediction":` + formatFloat(r.Prediction) + `}`), nil
}

// formatFloat renders v the shortest way that round-trips, using exponent
// notation below 1e-4 and from 1e16 upward.
func formatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		// Mean never yields these; null keeps the body valid JSON
		return "null"
	}

	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		format = 'e'
	}

	s := strconv.FormatFloat(v, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// HealthResponse is the body of a health check
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handlePredict validates the request body and returns the mean of its features
func (s *Server) handlePredict(c *gin.Context) {
	body, err := s.readBody(c)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.metrics.RecordRejection("body_too_large")
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: "request body too large",
			})
			return
		}

		// An unreadable body is treated like a malformed one
		s.logger.Debug("failed to read request body",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		body = nil
	}

	pred, err := s.predictor.Predict(body)
	if err != nil {
		reason := "invalid_request"
		if verr, ok := inference.AsValidationError(err); ok {
			reason = string(verr.Kind)
		}

		s.logger.Debug("prediction rejected",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("reason", reason),
			zap.Error(err))
		s.metrics.RecordRejection(reason)

		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	s.metrics.RecordPrediction(pred.FeatureCount)
	c.JSON(http.StatusOK, PredictionResponse{
		Prediction: pred.Value,
	})
}

// readBody reads the request body, capped at maxBodyBytes when set
func (s *Server) readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}

	reader := c.Request.Body
	if s.maxBodyBytes > 0 {
		reader = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
	}

	return io.ReadAll(reader)
}

// handleNotFound handles requests to unknown paths
func (s *Server) handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error: "not found",
	})
}

// handleMethodNotAllowed handles requests with an unsupported method
func (s *Server) handleMethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
		Error: "method not allowed",
	})
}
