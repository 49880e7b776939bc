package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestConstructorsMapToStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Car"), CodeNotFound, http.StatusNotFound},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("bad range", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"unauthorized", Unauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("not yours"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("overlap"), CodeConflict, http.StatusConflict},
		{"invalid transition", InvalidTransition("cancelled", "confirmed"), CodeInvalidTransition, http.StatusConflict},
		{"internal", Internal("boom", errors.New("cause")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.StatusCode())
			}
		})
	}
}

func TestInvalidTransitionDetails(t *testing.T) {
	err := InvalidTransition("cancelled", "confirmed")

	if err.Details["from"] != "cancelled" || err.Details["to"] != "confirmed" {
		t.Errorf("expected from/to details, got %v", err.Details)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("driver failure")
	err := Internal("query failed", cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be discoverable with errors.Is")
	}
}

func TestAsAppError(t *testing.T) {
	plain := errors.New("something broke")
	appErr := AsAppError(plain)

	if appErr.Code != CodeInternal {
		t.Errorf("expected plain errors to map to internal, got %s", appErr.Code)
	}
	if appErr.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", appErr.StatusCode())
	}

	known := Conflict("overlap")
	if AsAppError(known) != known {
		t.Error("expected AppError to pass through unchanged")
	}
}
