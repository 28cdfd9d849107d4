package formatting

import (
	"fmt"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// BookingQRPayload строка, которую сотрудник считывает со смартфона гостя
func BookingQRPayload(booking *model.Booking) string {
	return fmt.Sprintf("booking:%d:%s", booking.ID, booking.ConfirmationCode)
}

// GenerateBookingQR PNG с кодом подтверждения брони
func GenerateBookingQR(booking *model.Booking) ([]byte, error) {
	png, err := qrcode.Encode(BookingQRPayload(booking), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode booking qr: %w", err)
	}
	return png, nil
}
