package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const guestCommandsHelp = "/restaurants - Рестораны и часы работы\n" +
	"/book - Забронировать столик\n" +
	"/mybookings - Мои брони\n" +
	"/cancel - Прервать текущее действие\n" +
	"/help - Справка"

const staffCommandsHelp = "/today - Брони на сегодня\n" +
	"/stats - Статистика\n" +
	"/floorplan - План зала\n" +
	"/sethours - Изменить часы работы\n" +
	"/checkin <код> - Найти бронь по коду с QR"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !userMessage(update) {
		return
	}

	user := update.Message.From

	registeredUser, err := h.userService.RegisterUser(ctx, model.User{
		TelegramID:   user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		LanguageCode: user.LanguageCode,
	})
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "👋 Привет, %s!\n\n", registeredUser.DisplayName())
	sb.WriteString("Здесь можно посмотреть свободные столики и забронировать время в ресторане.\n\n")
	sb.WriteString("Доступные команды:\n")
	sb.WriteString(guestCommandsHelp)

	if staffOf, err := h.restaurantService.StaffRestaurants(ctx, user.ID); err != nil {
		h.logger.Warn("Failed to check staff restaurants", zap.Int64("telegram_id", user.ID), zap.Error(err))
	} else if len(staffOf) > 0 {
		sb.WriteString("\n\nДля сотрудников:\n")
		sb.WriteString(staffCommandsHelp)
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, sb.String())
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		guestCommandsHelp + "\n\n" +
		"Для сотрудников ресторана:\n" +
		staffCommandsHelp + "\n\n" +
		"Чтобы забронировать столик, выберите ресторан, дату, количество гостей и время."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !userMessage(update) {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !userMessage(update) || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются другими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("Text message",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Не понимаю. Используйте /help для списка команд.")
	case state.StateBookingName:
		h.handleBookingNameStep(ctx, b, update)
	case state.StateBookingPhone:
		h.handleBookingPhoneStep(ctx, b, update)
	case state.StateBookingRequests:
		h.handleBookingRequestsStep(ctx, b, update)
	case state.StateBookingConfirm:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Подтвердите бронь кнопкой выше или отправьте /cancel.")
	case state.StateSetHours:
		h.handleSetHoursText(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}
