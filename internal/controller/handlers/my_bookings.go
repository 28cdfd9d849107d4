package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/availability"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/formatting"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleMyBookings показывает предстоящие брони пользователя с кнопками отмены
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	bookings, err := h.bookingService.ListUserBookings(ctx, user.ID)
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}

	upcoming := upcomingBookings(bookings, h.bookingService.Engine().Today())
	if len(upcoming) == 0 {
		h.sendMessage(ctx, b, chatID, "📭 У вас нет предстоящих броней.\n\nЗабронировать: /book")
		return
	}

	h.attachRestaurants(ctx, upcoming)

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 Ваши брони (%d):", len(upcoming))
	kb := keyboard.NewBuilder()
	for _, booking := range upcoming {
		sb.WriteString("\n\n")
		sb.WriteString(formatting.FormatBooking(booking))
		if availability.CanTransition(booking.Status, model.BookingStatusCancelled) {
			label := fmt.Sprintf("❌ Отменить %s %s", formatting.FormatDate(booking.Date), booking.Time)
			kb.Row(keyboard.Button(label, fmt.Sprintf("%s%d", CallbackCancelBooking, booking.ID)))
		}
	}

	h.sendWithKeyboard(ctx, b, chatID, sb.String(), kb.Build())
}

// upcomingBookings брони с сегодняшнего дня, которые ещё не завершены
func upcomingBookings(bookings []*model.Booking, today string) []*model.Booking {
	var result []*model.Booking
	for _, booking := range bookings {
		if booking.Date >= today && !availability.IsTerminal(booking.Status) {
			result = append(result, booking)
		}
	}
	return result
}

// attachRestaurants подставляет рестораны в брони для карточек
func (h *Handlers) attachRestaurants(ctx context.Context, bookings []*model.Booking) {
	cache := make(map[int64]*model.Restaurant)
	for _, booking := range bookings {
		restaurant, ok := cache[booking.RestaurantID]
		if !ok {
			var err error
			restaurant, err = h.restaurantService.GetRestaurant(ctx, booking.RestaurantID)
			if err != nil {
				h.logger.Warn("Failed to load restaurant for booking",
					zap.Int64("booking_id", booking.ID),
					zap.Error(err))
			}
			cache[booking.RestaurantID] = restaurant
		}
		booking.Restaurant = restaurant
	}
}

// handleCancelBookingCallback просит подтвердить отмену
func (h *Handlers) handleCancelBookingCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	id, err := parseIDData(callback.Data, CallbackCancelBooking)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}
	msg := callbackMessage(callback)
	if msg == nil {
		h.callbackError(ctx, b, callback, ErrNoMessage)
		return
	}

	booking, err := h.bookingService.GetBooking(ctx, id)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}
	h.attachRestaurants(ctx, []*model.Booking{booking})

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✅ Да, отменить", fmt.Sprintf("%s%d", CallbackConfirmCancel, id))).
		Build()
	h.sendWithKeyboard(ctx, b, msg.Chat.ID, "Отменить бронь?\n\n"+formatting.FormatBooking(booking), kb)
	answerCallback(ctx, b, callback.ID, "")
}

// handleConfirmCancelCallback отменяет бронь от имени владельца
func (h *Handlers) handleConfirmCancelCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	id, err := parseIDData(callback.Data, CallbackConfirmCancel)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}
	msg := callbackMessage(callback)
	if msg == nil {
		h.callbackError(ctx, b, callback, ErrNoMessage)
		return
	}
	user, ok := h.requireCallbackUser(ctx, b, callback)
	if !ok {
		return
	}

	booking, err := h.bookingService.CancelByUser(ctx, id, user.ID)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}
	h.attachRestaurants(ctx, []*model.Booking{booking})

	h.editMessage(ctx, b, msg, "✅ Бронь отменена.\n\n"+formatting.FormatBooking(booking), nil)
	answerCallback(ctx, b, callback.ID, "Бронь отменена")

	if booking.Restaurant != nil {
		h.notifyStaff(ctx, b, booking.Restaurant, "❌ Гость отменил бронь на "+formatting.FormatDate(booking.Date)+"\n\n"+formatting.FormatBookingForStaff(booking), nil)
	}
}
