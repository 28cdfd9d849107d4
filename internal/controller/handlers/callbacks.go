package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleCallbackQuery распределяет нажатия на inline кнопки по обработчикам
func (h *Handlers) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}
	data := callback.Data

	h.logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	case data == CallbackNoop:
		answerCallback(ctx, b, callback.ID, "")

	// ===== Выбор слота =====
	case strings.HasPrefix(data, CallbackRestaurant):
		h.handleRestaurantCallback(ctx, b, callback)
	case strings.HasPrefix(data, CallbackDate):
		h.handleDateCallback(ctx, b, callback)
	case strings.HasPrefix(data, CallbackParty):
		h.handlePartyCallback(ctx, b, callback)
	case strings.HasPrefix(data, CallbackSlot):
		h.handleSlotCallback(ctx, b, callback)

	// ===== Оформление =====
	case data == CallbackSkipRequests:
		h.handleSkipRequestsCallback(ctx, b, callback)
	case data == CallbackConfirm:
		h.handleConfirmCallback(ctx, b, callback)
	case data == CallbackAbort:
		h.handleAbortCallback(ctx, b, callback)

	// ===== Брони гостя =====
	case strings.HasPrefix(data, CallbackCancelBooking):
		h.handleCancelBookingCallback(ctx, b, callback)
	case strings.HasPrefix(data, CallbackConfirmCancel):
		h.handleConfirmCancelCallback(ctx, b, callback)

	// ===== Сотрудники =====
	case strings.HasPrefix(data, CallbackSetStatus):
		h.handleSetStatusCallback(ctx, b, callback)
	case strings.HasPrefix(data, CallbackStaff):
		h.handleStaffCallback(ctx, b, callback)

	default:
		h.logger.Warn("Unknown callback", zap.String("data", data))
		answerCallback(ctx, b, callback.ID, "")
	}
}
