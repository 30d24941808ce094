package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/trivia-bot/internal/service"
)

// buildAnswerKeyboard builds one button row per choice.
// Only as many buttons as there are choices are rendered.
func buildAnswerKeyboard(view *service.QuestionView) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(view.Choices))
	for i, choice := range view.Choices {
		if i >= service.MaxChoices {
			break
		}
		data := buildAnswerCallback(view.SessionID, view.Index, i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(choice, data),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard builds keyboard for the final score screen.
func buildResultKeyboard(result *service.ResultView) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Restart", buildRestartCallback(result.SessionID)),
		),
	)
}
