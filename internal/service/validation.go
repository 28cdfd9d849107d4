package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/availability"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/go-playground/validator/v10"
)

var inputValidator = validator.New(validator.WithRequiredStructEnabled())

// validateInput проверяет поля брони по тегам validate; формат даты и времени проверяет движок
func validateInput(input model.CreateBookingInput) error {
	err := inputValidator.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", availability.ErrInvalidInput, err)
	}

	failed := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed = append(failed, fe.Field()+" "+fe.Tag())
	}
	return fmt.Errorf("%w: %s", availability.ErrInvalidInput, strings.Join(failed, ", "))
}
