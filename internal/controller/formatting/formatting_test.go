package formatting

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/hours"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluralizeGuests(t *testing.T) {
	cases := map[int]string{1: "гость", 2: "гостя", 4: "гостя", 5: "гостей", 11: "гостей", 12: "гостей", 21: "гость", 22: "гостя"}
	for n, want := range cases {
		assert.Equal(t, want, PluralizeGuests(n), "n=%d", n)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Пн, 19 октября", FormatDate("2026-10-19"))
	assert.Equal(t, "not-a-date", FormatDate("not-a-date"))
	assert.Equal(t, "Сб 17.10", DateButtonLabel(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)))
}

func TestRussianDays_GroupHours(t *testing.T) {
	got := hours.Group("Monday: 9-17, Tuesday: 9-17, Wednesday: 9-17, Saturday: 10-14", RussianDays)
	assert.Equal(t, "Пн - Ср: 9-17, Сб: 10-14", got)
}

func TestGetBookingStatusDisplay_CoversAllStatuses(t *testing.T) {
	for _, status := range model.AllBookingStatuses {
		assert.NotEqual(t, "Неизвестно", GetBookingStatusDisplay(status).Text, string(status))
	}
	assert.Equal(t, "Неизвестно", GetBookingStatusDisplay("archived").Text)
}

func TestFormatBooking(t *testing.T) {
	table := "t2"
	b := &model.Booking{
		Date:             "2026-10-19",
		Time:             "19:00",
		PartySize:        3,
		Status:           model.BookingStatusConfirmed,
		TableID:          &table,
		ConfirmationCode: "ABCD2345",
		CustomerName:     "Анна",
		SpecialRequests:  "у окна",
		Restaurant:       &model.Restaurant{Name: "Пельменная"},
	}

	guest := FormatBooking(b)
	assert.Contains(t, guest, "Пельменная")
	assert.Contains(t, guest, "Пн, 19 октября, 19:00")
	assert.Contains(t, guest, "3 гостя")
	assert.Contains(t, guest, "ABCD2345")

	staff := FormatBookingForStaff(b)
	assert.Contains(t, staff, "стол t2")
	assert.Contains(t, staff, "у окна")
	assert.NotContains(t, staff, "📞")
}

func TestFormatStats(t *testing.T) {
	stats := &model.RestaurantBookingStats{
		Total:            4,
		ByStatus:         map[model.BookingStatus]int{model.BookingStatusNoShow: 1, model.BookingStatusCompleted: 3},
		TotalGuests:      10,
		NoShowRate:       0.25,
		AveragePartySize: 2.5,
	}

	text := FormatStats("Пельменная", stats)

	assert.Contains(t, text, "Всего: 4 брони, 10 гостей")
	assert.Contains(t, text, "Неявки: 25.0%")
	assert.Contains(t, text, "Средний размер компании: 2.5")
}

func TestGenerateFloorPlanImage(t *testing.T) {
	plan := &model.FloorPlan{
		Name: "Основной зал",
		Tables: []model.Table{
			{ID: "t1", Name: "1", Capacity: 2, IsActive: true, Shape: model.TableShapeRound, X: 0, Y: 0, Width: 60, Height: 60},
			{ID: "t2", Name: "2", Capacity: 4, IsActive: true, Shape: model.TableShapeRectangle, X: 120, Y: 0, Width: 100, Height: 60, Rotation: 90},
			{ID: "t3", Name: "3", Capacity: 6, IsActive: false, Shape: model.TableShapeSquare, X: 0, Y: 150, Width: 80, Height: 80},
		},
		Elements: []model.FloorPlanElement{
			{ID: "e1", Type: model.ElementBar, Label: "Бар", X: 250, Y: 0, Width: 40, Height: 200},
		},
	}

	data, err := GenerateFloorPlanImage(plan, map[string]bool{"t2": true}, "Основной зал, 19:00")

	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, planImageWidth, img.Bounds().Dx())
	assert.Equal(t, planImageHeight, img.Bounds().Dy())
}

func TestGenerateFloorPlanImage_Empty(t *testing.T) {
	_, err := GenerateFloorPlanImage(nil, nil, "")
	assert.ErrorIs(t, err, ErrEmptyFloorPlan)

	_, err = GenerateFloorPlanImage(&model.FloorPlan{}, nil, "")
	assert.ErrorIs(t, err, ErrEmptyFloorPlan)
}

func TestGenerateBookingQR(t *testing.T) {
	booking := &model.Booking{ID: 42, ConfirmationCode: "K3QZ7M2A"}
	assert.Equal(t, "booking:42:K3QZ7M2A", BookingQRPayload(booking))

	data, err := GenerateBookingQR(booking)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, qrSize, img.Bounds().Dx())
}
