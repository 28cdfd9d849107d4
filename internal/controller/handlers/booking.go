package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/availability"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/formatting"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const (
	maxNameLength     = 100
	maxRequestsLength = 500
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{5,19}$`)

// handleSlotCallback запоминает выбранный слот и начинает диалог оформления
func (h *Handlers) handleSlotCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := callbackMessage(callback)
	if msg == nil {
		h.callbackError(ctx, b, callback, ErrNoMessage)
		return
	}
	ref, err := parseBookingRef(callback.Data)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}
	user, ok := h.requireCallbackUser(ctx, b, callback)
	if !ok {
		return
	}

	telegramID := callback.From.ID
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetData(telegramID, state.KeyRestaurantID, ref.RestaurantID)
	h.stateManager.SetData(telegramID, state.KeyDate, ref.Date)
	h.stateManager.SetData(telegramID, state.KeyTime, ref.Time)
	h.stateManager.SetData(telegramID, state.KeyPartySize, int64(ref.PartySize))
	h.stateManager.SetState(telegramID, state.StateBookingName)

	text := fmt.Sprintf("📅 %s, %s · 👥 %d\n\n✍️ На чьё имя бронь?", formatting.FormatDate(ref.Date), ref.Time, ref.PartySize)
	if name := user.DisplayName(); name != "" {
		text += fmt.Sprintf("\n\nНапример: %s", name)
	}
	h.editMessage(ctx, b, msg, text, nil)
	answerCallback(ctx, b, callback.ID, "")
}

func (h *Handlers) handleBookingNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	name := strings.TrimSpace(update.Message.Text)

	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("❌ Имя должно быть от 1 до %d символов. Попробуйте ещё раз:", maxNameLength))
		return
	}

	h.stateManager.SetData(telegramID, state.KeyName, name)
	h.stateManager.SetState(telegramID, state.StateBookingPhone)

	text := "📞 Телефон для связи (например, +7 999 123-45-67):"
	if user, err := h.userService.GetByTelegramID(ctx, telegramID); err == nil && user != nil && user.Phone != "" {
		text += fmt.Sprintf("\n\nИли отправьте «+», чтобы использовать %s", user.Phone)
	}
	h.sendMessage(ctx, b, chatID, text)
}

func (h *Handlers) handleBookingPhoneStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	phone := strings.TrimSpace(update.Message.Text)

	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	if phone == "+" && user.Phone != "" {
		phone = user.Phone
	}
	if !phonePattern.MatchString(phone) {
		h.sendMessage(ctx, b, chatID, "❌ Не похоже на номер телефона. Попробуйте ещё раз:")
		return
	}

	if phone != user.Phone {
		if err := h.userService.SetPhone(ctx, user, phone); err != nil {
			// номер в профиле не обязателен для брони
			h.logger.Warn("Failed to save phone", zap.Int64("telegram_id", telegramID), zap.Error(err))
		}
	}

	h.stateManager.SetData(telegramID, state.KeyPhone, phone)
	h.stateManager.SetState(telegramID, state.StateBookingRequests)

	kb := keyboard.NewBuilder().Row(keyboard.Button("Без пожеланий", CallbackSkipRequests)).Build()
	h.sendWithKeyboard(ctx, b, chatID, "💬 Есть пожелания? Детский стул, столик у окна, повод.\nНапишите их или нажмите кнопку.", kb)
}

func (h *Handlers) handleBookingRequestsStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	requests := strings.TrimSpace(update.Message.Text)

	if utf8.RuneCountInString(requests) > maxRequestsLength {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("❌ Не больше %d символов. Сократите, пожалуйста:", maxRequestsLength))
		return
	}

	h.stateManager.SetData(telegramID, state.KeyRequests, requests)
	h.showBookingSummary(ctx, b, chatID, telegramID)
}

// handleSkipRequestsCallback пропускает шаг с пожеланиями
func (h *Handlers) handleSkipRequestsCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID
	if h.stateManager.GetState(telegramID) != state.StateBookingRequests {
		h.callbackError(ctx, b, callback, ErrDialogExpired)
		return
	}
	msg := callbackMessage(callback)
	if msg == nil {
		h.callbackError(ctx, b, callback, ErrNoMessage)
		return
	}

	h.stateManager.SetData(telegramID, state.KeyRequests, "")
	answerCallback(ctx, b, callback.ID, "")
	h.showBookingSummary(ctx, b, msg.Chat.ID, telegramID)
}

func (h *Handlers) showBookingSummary(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	input, err := h.draftInput(telegramID)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.stateManager.SetState(telegramID, state.StateBookingConfirm)

	restaurantName := ""
	if restaurant, err := h.restaurantService.GetRestaurant(ctx, input.RestaurantID); err == nil {
		restaurantName = restaurant.Name
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✅ Забронировать", CallbackConfirm)).
		Row(keyboard.Button("✖️ Отмена", CallbackAbort)).
		Build()

	h.sendWithKeyboard(ctx, b, chatID, formatDraft(restaurantName, input), kb)
}

func formatDraft(restaurantName string, input model.CreateBookingInput) string {
	var sb strings.Builder
	sb.WriteString("Проверьте бронь:\n\n")
	if restaurantName != "" {
		fmt.Fprintf(&sb, "🏠 %s\n", restaurantName)
	}
	fmt.Fprintf(&sb, "📅 %s, %s\n", formatting.FormatDate(input.Date), input.Time)
	fmt.Fprintf(&sb, "👥 %d %s\n", input.PartySize, formatting.PluralizeGuests(input.PartySize))
	fmt.Fprintf(&sb, "✍️ %s\n📞 %s", input.CustomerName, input.CustomerPhone)
	if input.SpecialRequests != "" {
		fmt.Fprintf(&sb, "\n💬 %s", input.SpecialRequests)
	}
	return sb.String()
}

// draftInput собирает бронь из данных диалога
func (h *Handlers) draftInput(telegramID int64) (model.CreateBookingInput, error) {
	restaurantID, ok := h.stateManager.GetInt64(telegramID, state.KeyRestaurantID)
	if !ok {
		return model.CreateBookingInput{}, ErrDialogExpired
	}
	party, ok := h.stateManager.GetInt64(telegramID, state.KeyPartySize)
	if !ok {
		return model.CreateBookingInput{}, ErrDialogExpired
	}

	input := model.CreateBookingInput{
		RestaurantID:    restaurantID,
		Date:            h.stateManager.GetString(telegramID, state.KeyDate),
		Time:            h.stateManager.GetString(telegramID, state.KeyTime),
		PartySize:       int(party),
		CustomerName:    h.stateManager.GetString(telegramID, state.KeyName),
		CustomerPhone:   h.stateManager.GetString(telegramID, state.KeyPhone),
		SpecialRequests: h.stateManager.GetString(telegramID, state.KeyRequests),
	}
	if input.Date == "" || input.Time == "" || input.CustomerName == "" {
		return model.CreateBookingInput{}, ErrDialogExpired
	}
	return input, nil
}

// handleConfirmCallback создаёт бронь; частота попыток ограничена на пользователя
func (h *Handlers) handleConfirmCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID
	msg := callbackMessage(callback)
	if msg == nil {
		h.callbackError(ctx, b, callback, ErrNoMessage)
		return
	}
	if h.stateManager.GetState(telegramID) != state.StateBookingConfirm {
		h.callbackError(ctx, b, callback, ErrDialogExpired)
		return
	}
	user, ok := h.requireCallbackUser(ctx, b, callback)
	if !ok {
		return
	}

	if !h.limiter.Allow(telegramID) {
		h.logger.Warn("Booking rate limit exceeded", zap.Int64("telegram_id", telegramID))
		h.callbackError(ctx, b, callback, ErrRateLimited)
		return
	}

	input, err := h.draftInput(telegramID)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.callbackError(ctx, b, callback, err)
		return
	}
	input.UserID = user.ID

	booking, err := h.bookingService.CreateBooking(ctx, input)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		if errors.Is(err, availability.ErrSlotUnavailable) {
			// диалог не нужен: слот придётся выбрать заново
			h.stateManager.ClearState(telegramID)
			ref := bookingRef{RestaurantID: input.RestaurantID, Date: input.Date, PartySize: input.PartySize}
			h.editMessage(ctx, b, msg, ErrorMessage(err), keyboard.NewBuilder().
				Row(keyboard.Button("🕐 Другое время", ref.partyData(input.PartySize))).
				Build())
		}
		return
	}
	h.stateManager.ClearState(telegramID)

	restaurant, err := h.restaurantService.GetRestaurant(ctx, booking.RestaurantID)
	if err == nil {
		booking.Restaurant = restaurant
	}

	h.editMessage(ctx, b, msg, "🎉 Бронь создана! Ресторан подтвердит её в ближайшее время.\n\n"+formatting.FormatBooking(booking), nil)
	answerCallback(ctx, b, callback.ID, "Готово")
	h.sendBookingQR(ctx, b, msg.Chat.ID, booking)

	if restaurant != nil {
		h.notifyStaff(ctx, b, restaurant, "🆕 Новая бронь на "+formatting.FormatDate(booking.Date)+"\n\n"+formatting.FormatBookingForStaff(booking), statusKeyboard(booking))
	}
}

// sendBookingQR отправляет гостю QR с кодом подтверждения для входа
func (h *Handlers) sendBookingQR(ctx context.Context, b *bot.Bot, chatID int64, booking *model.Booking) {
	image, err := formatting.GenerateBookingQR(booking)
	if err != nil {
		h.logger.Error("Failed to generate booking QR", zap.Int64("booking_id", booking.ID), zap.Error(err))
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: "booking_" + booking.ConfirmationCode + ".png", Data: bytes.NewReader(image)},
		Caption: "🔑 Код брони " + booking.ConfirmationCode + ". Покажите его на входе.",
	})
	if err != nil {
		h.logger.Error("Failed to send booking QR", zap.Int64("booking_id", booking.ID), zap.Error(err))
	}
}

// handleAbortCallback прерывает оформление брони
func (h *Handlers) handleAbortCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	h.stateManager.ClearState(callback.From.ID)
	if msg := callbackMessage(callback); msg != nil {
		h.editMessage(ctx, b, msg, "✖️ Бронирование отменено. Начать заново: /book", nil)
	}
	answerCallback(ctx, b, callback.ID, "")
}
