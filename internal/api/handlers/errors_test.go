package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/concave-dev/attest/internal/apierror"
	"github.com/concave-dev/attest/internal/authflow"
	"github.com/concave-dev/attest/internal/batch"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"form validation", &batch.ValidationError{Message: "Please enter a batch name"}, http.StatusBadRequest},
		{"wrapped form validation", &batch.StepError{Step: batch.StepValidate, Err: &batch.ValidationError{Message: "x"}}, http.StatusBadRequest},
		{"auth input", &authflow.InputError{Message: "email is required"}, http.StatusBadRequest},
		{"wrong step", &authflow.StepError{Action: "verify code", Step: authflow.StepDone}, http.StatusConflict},
		{"upstream 401", &apierror.Error{StatusCode: 401, Message: "Invalid verification code"}, http.StatusUnauthorized},
		{"upstream 500", &apierror.Error{StatusCode: 500, Message: "boom"}, http.StatusBadGateway},
		{"timeout", fmt.Errorf("list batches: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"plain", errors.New("connection refused"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
