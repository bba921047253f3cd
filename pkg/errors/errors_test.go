package errors

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "booking not found",
			},
			expected: "NOT_FOUND: booking not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("connection refused"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if unwrapped := errors.Unwrap(appErr); unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestValidation_CarriesField(t *testing.T) {
	err := Validation("RoomId", "room does not exist or is inactive")

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Details["field"] != "RoomId" {
		t.Errorf("expected field 'RoomId', got %v", err.Details["field"])
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestIntervalConflict_CarriesRoomAndBounds(t *testing.T) {
	start := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	err := IntervalConflict("68a1f2e9c3d4b5a697881234", start, end)

	if err.Code != CodeConflict {
		t.Errorf("expected code %s, got %s", CodeConflict, err.Code)
	}
	if err.Details["room_id"] != "68a1f2e9c3d4b5a697881234" {
		t.Errorf("expected room_id in details, got %v", err.Details["room_id"])
	}
	if err.Details["start_time"] != "2026-03-15T09:00:00Z" {
		t.Errorf("expected RFC3339 start_time, got %v", err.Details["start_time"])
	}
}

func TestInvalidTransition_CarriesFromTo(t *testing.T) {
	err := InvalidTransition("cancelled", "confirmed")

	if err.Code != CodeInvalidTransition {
		t.Errorf("expected code %s, got %s", CodeInvalidTransition, err.Code)
	}
	if err.Details["from"] != "cancelled" || err.Details["to"] != "confirmed" {
		t.Errorf("expected from/to pair in details, got %v", err.Details)
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, err.HTTPStatus)
	}
}

func TestIsCode(t *testing.T) {
	conflict := Conflict("room is busy")

	if !IsCode(conflict, CodeConflict) {
		t.Errorf("IsCode should match the conflict code")
	}
	if IsCode(conflict, CodeNotFound) {
		t.Errorf("IsCode should not match a different code")
	}
	if IsCode(errors.New("plain"), CodeConflict) {
		t.Errorf("IsCode should not match a non-AppError")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFoundWithID("Booking", "abc123")
	if got := AsAppError(appErr); got != appErr {
		t.Errorf("AsAppError should return the same AppError")
	}

	plain := errors.New("boom")
	wrapped := AsAppError(plain)
	if wrapped.Code != CodeInternal {
		t.Errorf("expected plain errors to become %s, got %s", CodeInternal, wrapped.Code)
	}
	if !errors.Is(wrapped, plain) {
		t.Errorf("wrapped error should preserve the cause")
	}
}
