package handlers

import (
	"context"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireUser проверяет что пользователь существует
// Возвращает user и true если OK, nil и false если нет
func (h *Handlers) requireUser(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	if !userMessage(update) {
		return nil, false
	}

	telegramID := update.Message.From.ID
	user, err := h.userService.GetByTelegramID(ctx, telegramID)

	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return nil, false
	}

	if user == nil {
		h.sendError(ctx, b, update.Message.Chat.ID, ErrUserNotFound)
		return nil, false
	}

	return user, true
}

// requireCallbackUser то же для нажатий на кнопки: ошибка показывается во всплывающем окне
func (h *Handlers) requireCallbackUser(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) (*model.User, bool) {
	user, err := h.userService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("telegram_id", callback.From.ID), zap.Error(err))
		answerCallbackAlert(ctx, b, callback.ID, ErrorMessage(err))
		return nil, false
	}
	if user == nil {
		answerCallbackAlert(ctx, b, callback.ID, ErrorMessage(ErrUserNotFound))
		return nil, false
	}
	return user, true
}

// sendError отправляет понятное пользователю сообщение; неожиданные ошибки логируются
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	if !isExpected(err) {
		h.logger.Error("Request failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	h.sendMessage(ctx, b, chatID, ErrorMessage(err))
}

// callbackError отвечает на нажатие всплывающим окном с текстом ошибки
func (h *Handlers) callbackError(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, err error) {
	if !isExpected(err) {
		h.logger.Error("Callback failed",
			zap.String("data", callback.Data),
			zap.Int64("telegram_id", callback.From.ID),
			zap.Error(err))
	}
	answerCallbackAlert(ctx, b, callback.ID, ErrorMessage(err))
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.sendWithKeyboard(ctx, b, chatID, text, nil)
}

// sendWithKeyboard отправляет сообщение с inline клавиатурой
func (h *Handlers) sendWithKeyboard(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// editMessage заменяет текст и клавиатуру сообщения, к которому привязана кнопка
func (h *Handlers) editMessage(ctx context.Context, b *bot.Bot, msg *models.Message, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      text,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.EditMessageText(ctx, params); err != nil {
		h.logger.Error("Failed to edit message",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Int("message_id", msg.ID),
			zap.Error(err),
		)
	}
}
