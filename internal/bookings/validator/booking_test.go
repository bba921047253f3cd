package validator

import (
	"context"
	"testing"
	"time"

	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

type stubDirectory struct {
	rooms map[string]*model.Room
}

func (d *stubDirectory) GetRoom(_ context.Context, id string) (*model.Room, error) {
	room, ok := d.rooms[id]
	if !ok {
		return nil, apperrors.NotFoundWithID("Room", id)
	}
	return room, nil
}

func testConfig() *config.Config {
	return &config.Config{
		BusinessDayStart: "08:00",
		BusinessDayEnd:   "16:00",
		Log: logger.New(logger.Config{
			Level:   logger.ERROR,
			Format:  logger.TEXT,
			Service: "test",
		}),
	}
}

const testRoomID = "65f1a2b3c4d5e6f7a8b9c0d1"

func testRoom(active bool, capacity int) *model.Room {
	return &model.Room{
		ID:       testRoomID,
		Name:     "War Room",
		Location: "HQ / Floor 3",
		Capacity: capacity,
		IsActive: active,
	}
}

func validBooking() *model.Booking {
	return &model.Booking{
		RoomID:      testRoomID,
		Title:       "Sprint planning",
		RequestedBy: "ada",
		StartTime:   time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Attendees:   4,
		Status:      model.StatusPending,
	}
}

func newTestValidator(dir *stubDirectory) *BookingValidator {
	return NewBookingValidator(dir, testConfig())
}

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()
	appErr := apperrors.AsAppError(err)
	if appErr == nil {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != apperrors.CodeValidation {
		t.Fatalf("code = %q, want %q", appErr.Code, apperrors.CodeValidation)
	}
	if got := appErr.Details["field"]; got != field {
		t.Errorf("field = %v, want %q", got, field)
	}
}

func TestValidate_OK(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*model.Room{testRoomID: testRoom(true, 10)}}
	v := newTestValidator(dir)

	room, err := v.Validate(context.Background(), validBooking())
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if room == nil || room.ID != testRoomID {
		t.Fatalf("expected resolved room %s, got %+v", testRoomID, room)
	}
}

func TestValidate_UnknownRoom(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*model.Room{}}
	v := newTestValidator(dir)

	_, err := v.Validate(context.Background(), validBooking())
	assertValidationField(t, err, "RoomId")
}

func TestValidate_InactiveRoom(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*model.Room{testRoomID: testRoom(false, 10)}}
	v := newTestValidator(dir)

	_, err := v.Validate(context.Background(), validBooking())
	assertValidationField(t, err, "RoomId")
}

// An inactive room combined with a malformed interval must still report the
// room first; rules are checked in a fixed order.
func TestValidate_RoomRuleWinsOverInterval(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*model.Room{testRoomID: testRoom(false, 10)}}
	v := newTestValidator(dir)

	b := validBooking()
	b.StartTime, b.EndTime = b.EndTime, b.StartTime

	_, err := v.Validate(context.Background(), b)
	assertValidationField(t, err, "RoomId")
}

func TestValidate_EndNotAfterStart(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*model.Room{testRoomID: testRoom(true, 10)}}
	v := newTestValidator(dir)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{
			"zero length",
			time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			"inverted",
			time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			b.StartTime, b.EndTime = tt.start, tt.end
			_, err := v.Validate(context.Background(), b)
			assertValidationField(t, err, "EndTime")
		})
	}
}

func TestValidate_BusinessHours(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*model.Room{testRoomID: testRoom(true, 10)}}
	v := newTestValidator(dir)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		field string
	}{
		{
			"starts before opening",
			time.Date(2026, 9, 1, 7, 30, 0, 0, time.UTC),
			time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
			"StartTime",
		},
		{
			"ends after closing",
			time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 1, 16, 30, 0, 0, time.UTC),
			"EndTime",
		},
		{
			"entirely outside",
			time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC),
			"StartTime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			b.StartTime, b.EndTime = tt.start, tt.end
			_, err := v.Validate(context.Background(), b)
			assertValidationField(t, err, tt.field)
		})
	}
}

/// Ending exactly at closing time is legal: the end bound is exclusive.
func TestValidate_EndAtClosingBoundary(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*model.Room{testRoomID: testRoom(true, 10)}}
	v := newTestValidator(dir)

	b := validBooking()
	b.StartTime = time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	b.EndTime = time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC)

	if _, err := v.Validate(context.Background(), b); err != nil {
		t.Fatalf("Validate() unexpected error for end at closing time: %v", err)
	}
}

func TestValidate_CapacityExceeded(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*model.Room{testRoomID: testRoom(true, 3)}}
	v := newTestValidator(dir)

	b := validBooking()
	b.Attendees = 4

	_, err := v.Validate(context.Background(), b)
	assertValidationField(t, err, "Capacity")
}

// Struct-shape failures report the same field names the business rules
// use, not the Go struct field names.
func TestValidate_StructFieldNameRegister(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*model.Room{testRoomID: testRoom(true, 10)}}
	v := newTestValidator(dir)

	tests := []struct {
		name    string
		mutate  func(b *model.Booking)
		field   string
		message string
	}{
		{
			name:    "missing room",
			mutate:  func(b *model.Booking) { b.RoomID = "" },
			field:   "RoomId",
			message: "is required",
		},
		{
			name:    "title too short",
			mutate:  func(b *model.Booking) { b.Title = "x" },
			field:   "Title",
			message: "must be at least 2",
		},
		{
			name:    "too many attendees",
			mutate:  func(b *model.Booking) { b.Attendees = 501 },
			field:   "Attendees",
			message: "must be at most 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			_, err := v.Validate(context.Background(), b)
			assertValidationField(t, err, tt.field)
			appErr := apperrors.AsAppError(err)
			if appErr.Message != tt.message {
				t.Errorf("message = %q, want %q", appErr.Message, tt.message)
			}
		})
	}
}

// The business window is evaluated in the timestamp's own offset, not the
// server's location.
func TestValidate_WindowUsesLocalOffset(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*model.Room{testRoomID: testRoom(true, 10)}}
	v := newTestValidator(dir)

	tz := time.FixedZone("UTC+5", 5*3600)
	b := validBooking()
	b.StartTime = time.Date(2026, 9, 1, 9, 0, 0, 0, tz)
	b.EndTime = time.Date(2026, 9, 1, 10, 0, 0, 0, tz)

	if _, err := v.Validate(context.Background(), b); err != nil {
		t.Fatalf("Validate() unexpected error for local business hours: %v", err)
	}
}
