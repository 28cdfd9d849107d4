package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/availability"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/formatting"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	// максимум дат в выборе, даже если окно бронирования длиннее
	maxDateButtons = 14
	maxPartyButton = 10
)

// HandleRestaurants показывает рестораны с часами работы и кнопками бронирования (/restaurants, /book)
func (h *Handlers) HandleRestaurants(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	restaurants, err := h.restaurantService.ListRestaurants(ctx)
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}
	if len(restaurants) == 0 {
		h.sendMessage(ctx, b, chatID, "🍽 Пока нет ресторанов, открытых для бронирования.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🍽 Рестораны:\n")
	kb := keyboard.NewBuilder()
	for _, r := range restaurants {
		sb.WriteString("\n")
		sb.WriteString(h.restaurantCard(r))
		sb.WriteString("\n")
		kb.Row(keyboard.Button("📅 "+r.Name, fmt.Sprintf("%s%d", CallbackRestaurant, r.ID)))
	}

	h.sendWithKeyboard(ctx, b, chatID, sb.String(), kb.Build())
}

func (h *Handlers) restaurantCard(r *model.Restaurant) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏠 %s", r.Name)
	if r.Address != "" {
		fmt.Fprintf(&sb, "\n📍 %s", r.Address)
	}
	if r.Hours != "" {
		fmt.Fprintf(&sb, "\n🕐 %s", h.restaurantService.FormattedHours(r, formatting.RussianDays))
	}
	return sb.String()
}

// handleRestaurantCallback карточка ресторана и выбор даты
func (h *Handlers) handleRestaurantCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
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

	restaurant, err := h.restaurantService.GetRestaurant(ctx, ref.RestaurantID)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}
	cfg, err := h.restaurantService.GetAvailabilityConfig(ctx, ref.RestaurantID)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}
	if cfg == nil {
		h.callbackError(ctx, b, callback, ErrNoAvailability)
		return
	}

	engine := h.bookingService.Engine()
	now := engine.Now()
	days := min(cfg.AdvanceBookingDays+1, maxDateButtons)

	buttons := make([]models.InlineKeyboardButton, 0, days)
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, i)
		label := formatting.DateButtonLabel(day)
		if i == 0 {
			label = "Сегодня"
		}
		buttons = append(buttons, keyboard.Button(label, ref.dateData(availability.DateString(day))))
	}

	text := h.restaurantCard(restaurant) + "\n\n📅 Выберите дату:"
	h.editMessage(ctx, b, msg, text, keyboard.NewBuilder().Grid(3, buttons...).Build())
	answerCallback(ctx, b, callback.ID, "")
}

// handleDateCallback выбор количества гостей
func (h *Handlers) handleDateCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
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

	buttons := make([]models.InlineKeyboardButton, 0, maxPartyButton)
	for party := 1; party <= maxPartyButton; party++ {
		buttons = append(buttons, keyboard.Button(strconv.Itoa(party), ref.partyData(party)))
	}

	kb := keyboard.NewBuilder().
		Grid(5, buttons...).
		Row(keyboard.Button("⬅️ Другая дата", fmt.Sprintf("%s%d", CallbackRestaurant, ref.RestaurantID))).
		Build()

	text := fmt.Sprintf("📅 %s\n\n👥 Сколько будет гостей?", formatting.FormatDate(ref.Date))
	h.editMessage(ctx, b, msg, text, kb)
	answerCallback(ctx, b, callback.ID, "")
}

// handlePartyCallback показывает слоты на дату для выбранного размера компании
func (h *Handlers) handlePartyCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
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

	day, err := h.bookingService.GetAvailability(ctx, ref.RestaurantID, ref.Date, ref.PartySize)
	if err != nil {
		h.callbackError(ctx, b, callback, err)
		return
	}

	text, kb := slotsView(ref, day)
	h.editMessage(ctx, b, msg, text, kb)
	answerCallback(ctx, b, callback.ID, "")
}

// slotsView текст и клавиатура выбора времени
func slotsView(ref bookingRef, day model.DayAvailability) (string, *models.InlineKeyboardMarkup) {
	header := fmt.Sprintf("📅 %s · 👥 %d %s\n\n", formatting.FormatDate(ref.Date), ref.PartySize, formatting.PluralizeGuests(ref.PartySize))
	back := keyboard.Button("⬅️ Назад", ref.dateData(ref.Date))

	if !day.IsOpen {
		return header + "🚫 В этот день ресторан не принимает брони.", keyboard.NewBuilder().Row(back).Build()
	}

	available := day.AvailableSlots()
	if len(available) == 0 {
		return header + "😔 Свободных мест нет. Попробуйте другую дату или меньше гостей.", keyboard.NewBuilder().Row(back).Build()
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(available))
	for _, slot := range available {
		buttons = append(buttons, keyboard.Button("🕐 "+slot.Time, ref.slotData(slot.Time)))
	}

	kb := keyboard.NewBuilder().Grid(4, buttons...).Row(back).Build()
	return header + "Выберите время:", kb
}
