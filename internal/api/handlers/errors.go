// Package handlers provides HTTP request handlers for the attestd gateway.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/concave-dev/attest/internal/apierror"
	"github.com/concave-dev/attest/internal/authflow"
	"github.com/concave-dev/attest/internal/batch"
	"github.com/gin-gonic/gin"
)

// Represents an error in API responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// StatusFor maps an error returned by a flow to a response status.
//
// Local validation failures are 400 and calls made on the wrong flow step are
// 409. Upstream 4xx responses pass through with their status; any other
// upstream or transport failure is 502, and a request that ran out of time
// is 504.
func StatusFor(err error) int {
	if batch.IsValidationError(err) || authflow.IsInputError(err) {
		return http.StatusBadRequest
	}
	var stepErr *authflow.StepError
	if errors.As(err, &stepErr) {
		return http.StatusConflict
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return apierror.HTTPStatus(err)
}

// respondError writes err as an ErrorResponse.
func respondError(c *gin.Context, err error) {
	c.JSON(StatusFor(err), ErrorResponse{Error: apierror.Message(err)})
}

// respondBadRequest reports a body that could not be bound.
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Invalid request body",
		Details: err.Error(),
	})
}
