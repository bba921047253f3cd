package validator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

// RoomDirectory resolves room IDs against the room catalog. The rooms
// service satisfies this; tests supply their own.
type RoomDirectory interface {
	GetRoom(ctx context.Context, id string) (*model.Room, error)
}

// BookingValidator checks a booking against the room catalog and the
// business rules, in a fixed order so callers always see the first
// failing rule:
//
//  1. the room must exist and be active
//  2. the interval must be well formed (end strictly after start)
//  3. the interval must sit inside the business day window
//  4. attendees must fit the room's capacity
//
// On success the resolved room is returned so the caller can snapshot
// its capacity and location without a second lookup.
type BookingValidator struct {
	validate *validator.Validate
	rooms    RoomDirectory
	cfg      *config.Config
	logger   *logger.Logger
}

func NewBookingValidator(rooms RoomDirectory, cfg *config.Config) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		rooms:    rooms,
		cfg:      cfg,
		logger:   cfg.Log,
	}
}

func (v *BookingValidator) Validate(ctx context.Context, booking *model.Booking) (*model.Room, error) {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return nil, apperrors.Validation(fieldName(first), fieldMessage(first))
		}
		return nil, apperrors.Validation("Booking", err.Error())
	}

	room, err := v.rooms.GetRoom(ctx, booking.RoomID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) || apperrors.IsCode(err, apperrors.CodeInvalidInput) {
			return nil, apperrors.Validation("RoomId", fmt.Sprintf("room %q does not exist", booking.RoomID))
		}
		return nil, apperrors.Internal("Failed to resolve room", err)
	}
	if !room.IsActive {
		return nil, apperrors.Validation("RoomId", fmt.Sprintf("room %q is not active", booking.RoomID))
	}

	if !booking.EndTime.After(booking.StartTime) {
		return nil, apperrors.Validation("EndTime", "end_time must be strictly after start_time")
	}

	if err := v.checkBusinessWindow(booking.StartTime, booking.EndTime); err != nil {
		return nil, err
	}

	if booking.Attendees > room.Capacity {
		return nil, apperrors.Validation("Capacity", fmt.Sprintf(
			"attendees (%d) exceed room capacity (%d)", booking.Attendees, room.Capacity,
		))
	}

	return room, nil
}

// fieldName keeps struct-shape failures in the same field-name register
// the business rules report, so callers see one naming scheme.
func fieldName(fe validator.FieldError) string {
	if fe.Field() == "RoomID" {
		return "RoomId"
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "mongodb":
		return "must be a valid object ID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

// checkBusinessWindow requires both bounds inside the daily window,
// evaluated in each timestamp's own offset. An interval ending exactly at
// closing time is allowed since the end bound is exclusive.
func (v *BookingValidator) checkBusinessWindow(start, end time.Time) error {
	openMin, closeMin := v.cfg.BusinessWindow()

	startMin := start.Hour()*60 + start.Minute()
	if startMin < openMin || startMin >= closeMin {
		return apperrors.Validation("StartTime", fmt.Sprintf(
			"start_time %s is outside business hours (%s-%s)",
			start.Format("15:04"), v.cfg.BusinessDayStart, v.cfg.BusinessDayEnd,
		))
	}

	endMin := end.Hour()*60 + end.Minute()
	if endMin > closeMin || endMin <= openMin {
		return apperrors.Validation("EndTime", fmt.Sprintf(
			"end_time %s is outside business hours (%s-%s)",
			end.Format("15:04"), v.cfg.BusinessDayStart, v.cfg.BusinessDayEnd,
		))
	}

	// A booking cannot span midnight into another business day.
	if end.YearDay() != start.YearDay() || end.Year() != start.Year() {
		return apperrors.Validation("EndTime", "booking must start and end on the same day")
	}

	return nil
}
