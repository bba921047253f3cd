package lifecycle

import (
	"testing"

	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from model.BookingStatus
		to   model.BookingStatus
		want bool
	}{
		{"pending to confirmed", model.StatusPending, model.StatusConfirmed, true},
		{"pending to cancelled", model.StatusPending, model.StatusCancelled, true},
		{"confirmed to cancelled", model.StatusConfirmed, model.StatusCancelled, true},
		{"confirmed to pending", model.StatusConfirmed, model.StatusPending, false},
		{"cancelled to pending", model.StatusCancelled, model.StatusPending, false},
		{"cancelled to confirmed", model.StatusCancelled, model.StatusConfirmed, false},
		{"pending to pending", model.StatusPending, model.StatusPending, false},
		{"confirmed to confirmed", model.StatusConfirmed, model.StatusConfirmed, false},
		{"cancelled to cancelled", model.StatusCancelled, model.StatusCancelled, false},
		{"unknown status", model.BookingStatus("archived"), model.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestTransition_SetsCancelledAt(t *testing.T) {
	booking := &model.Booking{Status: model.StatusConfirmed}

	if err := Transition(booking, model.StatusCancelled); err != nil {
		t.Fatalf("Transition() unexpected error: %v", err)
	}

	if booking.Status != model.StatusCancelled {
		t.Errorf("status = %q, want %q", booking.Status, model.StatusCancelled)
	}
	if booking.CancelledAt == nil {
		t.Error("expected CancelledAt to be set")
	}
}

func TestTransition_IllegalMove(t *testing.T) {
	booking := &model.Booking{Status: model.StatusCancelled}

	err := Transition(booking, model.StatusConfirmed)
	if err == nil {
		t.Fatal("expected error for cancelled -> confirmed")
	}

	appErr := apperrors.AsAppError(err)
	if appErr == nil {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeInvalidTransition {
		t.Errorf("code = %q, want %q", appErr.Code, apperrors.CodeInvalidTransition)
	}
	if appErr.Details["from"] != "cancelled" || appErr.Details["to"] != "confirmed" {
		t.Errorf("details = %v, want from=cancelled to=confirmed", appErr.Details)
	}
}

func TestTransition_SameStatusRejected(t *testing.T) {
	booking := &model.Booking{Status: model.StatusConfirmed}

	err := Transition(booking, model.StatusConfirmed)
	if err == nil {
		t.Fatal("expected error for confirmed -> confirmed")
	}
	if !apperrors.IsCode(err, apperrors.CodeInvalidTransition) {
		t.Errorf("expected invalid transition code, got %v", err)
	}
	if booking.Status != model.StatusConfirmed {
		t.Errorf("status mutated on rejected transition: %q", booking.Status)
	}
}

func TestValidInitial(t *testing.T) {
	if !ValidInitial(model.StatusPending) {
		t.Error("pending should be a valid initial status")
	}
	if !ValidInitial(model.StatusConfirmed) {
		t.Error("confirmed should be a valid initial status")
	}
	if ValidInitial(model.StatusCancelled) {
		t.Error("cancelled should not be a valid initial status")
	}
}
