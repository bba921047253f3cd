package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

type RoomValidator struct {
	validate *validator.Validate
}

func NewRoomValidator() *RoomValidator {
	return &RoomValidator{
		validate: validator.New(),
	}
}

func (v *RoomValidator) Validate(room *model.Room) error {
	if err := v.validate.Struct(room); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return apperrors.Validation(first.Field(), fmt.Sprintf("failed %q constraint", first.Tag()))
		}
		return apperrors.Validation("Room", err.Error())
	}
	return nil
}

func (v *RoomValidator) ValidateUpdate(update *model.RoomUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return apperrors.Validation(first.Field(), fmt.Sprintf("failed %q constraint", first.Tag()))
		}
		return apperrors.Validation("RoomUpdate", err.Error())
	}
	return nil
}
