package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// answerCallback отвечает на callback query (без alert)
func answerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
}

// answerCallbackAlert отвечает на callback query всплывающим окном
func answerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// callbackMessage извлекает сообщение из callback query
func callbackMessage(callback *models.CallbackQuery) *models.Message {
	return callback.Message.Message
}

// userMessage сообщение от пользователя; у постов каналов отправителя нет
func userMessage(update *models.Update) bool {
	return update.Message != nil && update.Message.From != nil
}
