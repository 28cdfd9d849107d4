package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/availability"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/formatting"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleToday брони ресторана на сегодня с кнопками смены статуса (/today)
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleStaffCommand(ctx, b, update, StaffActionToday)
}

// HandleStats статистика бронирований (/stats)
func (h *Handlers) HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleStaffCommand(ctx, b, update, StaffActionStats)
}

// HandleFloorPlan картинка плана зала с занятыми столами (/floorplan)
func (h *Handlers) HandleFloorPlan(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleStaffCommand(ctx, b, update, StaffActionFloorPlan)
}

// HandleSetHours ввод часов работы (/sethours)
func (h *Handlers) HandleSetHours(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleStaffCommand(ctx, b, update, StaffActionSetHours)
}

// HandleCheckIn находит бронь по коду с QR гостя (/checkin <код>)
func (h *Handlers) HandleCheckIn(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !userMessage(update) {
		return
	}
	chatID := update.Message.Chat.ID

	id, code, err := parseCheckInArg(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, "🔑 Отправьте код с QR гостя: /checkin K3QZ7M2A")
		return
	}

	booking, err := h.bookingService.FindByConfirmationCode(ctx, code)
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}
	if id != 0 && booking.ID != id {
		h.sendError(ctx, b, chatID, fmt.Errorf("%w: code %s does not match booking %d", service.ErrBookingNotFound, code, id))
		return
	}
	restaurant, err := h.staffRestaurant(ctx, booking.RestaurantID, update.Message.From.ID)
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}
	booking.Restaurant = restaurant

	h.logger.Info("Booking looked up by code",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("staff_telegram_id", update.Message.From.ID))
	h.sendWithKeyboard(ctx, b, chatID, fmt.Sprintf("🔑 Бронь #%d, %s\n\n%s", booking.ID, formatting.FormatDate(booking.Date), formatting.FormatBookingForStaff(booking)), statusKeyboard(booking))
}

// handleStaffCommand выполняет действие сразу, если ресторан один, иначе предлагает выбрать
func (h *Handlers) handleStaffCommand(ctx context.Context, b *bot.Bot, update *models.Update, action string) {
	if !userMessage(update) {
		return
	}
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	restaurants, err := h.restaurantService.StaffRestaurants(ctx, telegramID)
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}

	switch len(restaurants) {
	case 0:
		h.sendError(ctx, b, chatID, service.ErrNotStaff)
	case 1:
		h.runStaffAction(ctx, b, chatID, telegramID, action, restaurants[0])
	default:
		kb := keyboard.NewBuilder()
		for _, r := range restaurants {
			kb.Row(keyboard.Button(r.Name, staffData(action, r.ID)))
		}
		h.sendWithKeyboard(ctx, b, chatID, "🏠 Выберите ресторан:", kb.Build())
	}
}

// handleStaffCallback выбор ресторана для действия сотрудника
func (h *Handlers) handleStaffCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	action, restaurantID, err := parseStaffData(callback.Data)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}
	msg := callbackMessage(callback)
	if msg == nil {
		h.callbackError(ctx, b, callback, ErrNoMessage)
		return
	}

	restaurant, err := h.staffRestaurant(ctx, restaurantID, callback.From.ID)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}

	answerCallback(ctx, b, callback.ID, "")
	h.runStaffAction(ctx, b, msg.Chat.ID, callback.From.ID, action, restaurant)
}

// staffRestaurant загружает ресторан и проверяет права сотрудника
func (h *Handlers) staffRestaurant(ctx context.Context, restaurantID, telegramID int64) (*model.Restaurant, error) {
	restaurant, err := h.restaurantService.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.HasStaff(telegramID) {
		return nil, service.ErrNotStaff
	}
	return restaurant, nil
}

func (h *Handlers) runStaffAction(ctx context.Context, b *bot.Bot, chatID, telegramID int64, action string, restaurant *model.Restaurant) {
	switch action {
	case StaffActionToday:
		text, kb, err := h.todayView(ctx, restaurant)
		if err != nil {
			h.sendError(ctx, b, chatID, err)
			return
		}
		h.sendWithKeyboard(ctx, b, chatID, text, kb)

	case StaffActionStats:
		stats, err := h.bookingService.ComputeStats(ctx, restaurant.ID)
		if err != nil {
			h.sendError(ctx, b, chatID, err)
			return
		}
		h.sendMessage(ctx, b, chatID, formatting.FormatStats(restaurant.Name, stats))

	case StaffActionFloorPlan:
		h.sendFloorPlan(ctx, b, chatID, restaurant)

	case StaffActionSetHours:
		h.stateManager.ClearState(telegramID)
		h.stateManager.SetData(telegramID, state.KeyRestaurantID, restaurant.ID)
		h.stateManager.SetState(telegramID, state.StateSetHours)

		current := restaurant.Hours
		if current == "" {
			current = "не указаны"
		}
		h.sendMessage(ctx, b, chatID, fmt.Sprintf(
			"🕐 Сейчас: %s\n\nОтправьте новые часы работы, например:\nMon - Fri: 12:00-23:00, Sat: 12:00-01:00\n\n/cancel - отмена",
			current))
	}
}

// todayView список сегодняшних броней с кнопками доступных переходов
func (h *Handlers) todayView(ctx context.Context, restaurant *model.Restaurant) (string, *models.InlineKeyboardMarkup, error) {
	today := h.bookingService.Engine().Today()
	bookings, err := h.bookingService.ListRestaurantBookings(ctx, restaurant.ID, today)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 %s, %s\n", restaurant.Name, formatting.FormatDate(today))
	if len(bookings) == 0 {
		sb.WriteString("\nБроней на сегодня нет.")
		return sb.String(), nil, nil
	}

	kb := keyboard.NewBuilder()
	for _, booking := range bookings {
		fmt.Fprintf(&sb, "\n#%d %s", booking.ID, formatting.FormatBookingForStaff(booking))
		kb.Row(statusButtons(booking)...)
	}

	if kb.Len() == 0 {
		return sb.String(), nil, nil
	}
	return sb.String(), kb.Build(), nil
}

// statusButtons кнопки переходов брони; для завершённых броней пусто
func statusButtons(booking *model.Booking) []models.InlineKeyboardButton {
	next := availability.NextStatuses(booking.Status)
	if len(next) == 0 {
		return nil
	}
	buttons := make([]models.InlineKeyboardButton, 0, len(next)+1)
	buttons = append(buttons, keyboard.Button(fmt.Sprintf("#%d %s", booking.ID, booking.Time), CallbackNoop))
	for _, to := range next {
		buttons = append(buttons, keyboard.Button(formatting.StatusActionLabel(to), statusData(booking.ID, to)))
	}
	return buttons
}

func statusKeyboard(booking *model.Booking) *models.InlineKeyboardMarkup {
	row := statusButtons(booking)
	if row == nil {
		return nil
	}
	return keyboard.NewBuilder().Row(row...).Build()
}

// handleSetStatusCallback переводит бронь в новый статус от имени сотрудника
func (h *Handlers) handleSetStatusCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	id, status, err := parseStatusData(callback.Data)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}

	current, err := h.bookingService.GetBooking(ctx, id)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}
	restaurant, err := h.staffRestaurant(ctx, current.RestaurantID, callback.From.ID)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}

	booking, err := h.bookingService.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}

	display := formatting.GetBookingStatusDisplay(booking.Status)
	answerCallback(ctx, b, callback.ID, display.Emoji+" "+display.Text)

	if msg := callbackMessage(callback); msg != nil {
		if strings.HasPrefix(msg.Text, "📋") {
			if text, kb, err := h.todayView(ctx, restaurant); err == nil {
				h.editMessage(ctx, b, msg, text, kb)
			}
		} else {
			h.editMessage(ctx, b, msg, formatting.FormatBookingForStaff(booking), statusKeyboard(booking))
		}
	}

	h.notifyGuest(ctx, b, booking, restaurant)
}

// notifyGuest сообщает гостю о решении ресторана
func (h *Handlers) notifyGuest(ctx context.Context, b *bot.Bot, booking *model.Booking, restaurant *model.Restaurant) {
	guest, err := h.userService.GetByID(ctx, booking.UserID)
	if err != nil || guest == nil {
		h.logger.Warn("Failed to load guest for notification", zap.Int64("booking_id", booking.ID), zap.Error(err))
		return
	}
	booking.Restaurant = restaurant
	h.sendMessage(ctx, b, guest.TelegramID, "🔔 Статус брони изменён\n\n"+formatting.FormatBooking(booking))
}

// notifyStaff рассылает сообщение всем сотрудникам ресторана
func (h *Handlers) notifyStaff(ctx context.Context, b *bot.Bot, restaurant *model.Restaurant, text string, kb *models.InlineKeyboardMarkup) {
	for _, staffID := range restaurant.StaffTelegramIDs {
		h.sendWithKeyboard(ctx, b, staffID, text, kb)
	}
}

// sendFloorPlan рисует план зала с занятостью столов на текущий момент
func (h *Handlers) sendFloorPlan(ctx context.Context, b *bot.Bot, chatID int64, restaurant *model.Restaurant) {
	plan, err := h.restaurantService.GetFloorPlan(ctx, restaurant.ID)
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}
	if plan == nil {
		h.sendMessage(ctx, b, chatID, "🗺 План зала ещё не настроен.")
		return
	}

	engine := h.bookingService.Engine()
	now := engine.Now()
	today := availability.DateString(now)
	slotTime := availability.FormatTimeOfDay(now.Hour()*60 + now.Minute())

	occupied, err := h.bookingService.TableOccupancy(ctx, restaurant.ID, today, slotTime)
	if err != nil && !errors.Is(err, availability.ErrInvalidInput) {
		h.sendError(ctx, b, chatID, err)
		return
	}

	title := fmt.Sprintf("%s · %s · %s", restaurant.Name, formatting.FormatDate(today), slotTime)
	image, err := formatting.GenerateFloorPlanImage(plan, occupied, title)
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}

	caption := fmt.Sprintf("🗺 %s, версия %d\nЗанято столов: %d из %d", plan.Name, plan.Version, len(occupied), len(plan.Tables))
	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: "floor_plan.png", Data: bytes.NewReader(image)},
		Caption: caption,
	})
	if err != nil {
		h.logger.Error("Failed to send floor plan", zap.Int64("restaurant_id", restaurant.ID), zap.Error(err))
	}
}

// handleSetHoursText сохраняет часы работы и показывает, как их увидят гости
func (h *Handlers) handleSetHoursText(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	restaurantID, ok := h.stateManager.GetInt64(telegramID, state.KeyRestaurantID)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, ErrDialogExpired)
		return
	}

	if err := h.restaurantService.UpdateHours(ctx, restaurantID, telegramID, text); err != nil {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.stateManager.ClearState(telegramID)

	preview := h.restaurantService.FormattedHours(&model.Restaurant{Hours: text}, formatting.RussianDays)
	h.sendMessage(ctx, b, chatID, "✅ Часы работы сохранены. Гости увидят:\n\n🕐 "+preview)
}
