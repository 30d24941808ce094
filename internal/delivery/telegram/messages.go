// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/trivia-bot/internal/service"
)

const (
	msgWelcome        = "👋 Welcome to Trivia!\n\nAnswer 10 questions from Open Trivia DB and see how many you get right. Loading your first question..."
	msgHelp           = "/quiz - start a new quiz\n/stop - drop the current quiz\n/help - show this message\n\nTap an answer button to answer a question."
	msgUnknownCommand = "Unknown command. Use /quiz to start or /help for the list of commands."
	msgUseButtons     = "Use the answer buttons, or /quiz to start a new quiz."
	msgStopped        = "Quiz stopped. Use /quiz to start a new one."
	msgNoQuiz         = "There is no quiz running. Use /quiz to start one."
	msgInternalError  = "Something went wrong. Please try again later."

	msgCorrect      = "✅ Correct!"
	msgWrongFormat  = "❌ Wrong! Correct answer: %s"
	msgStaleAnswer  = "This question is no longer active."
	maxCallbackText = 200
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// renderQuestion renders the question screen: progress label, category and question.
func renderQuestion(view *service.QuestionView) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("Question: %d/%d", view.Index+1, view.Total)))
	sb.WriteString("\n")
	if view.Category != "" {
		sb.WriteString(italic(view.Category))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(md(view.Question))

	return sb.String()
}

// renderResult renders the final score screen.
func renderResult(result *service.ResultView) string {
	return fmt.Sprintf("%s\n\n%s",
		bold("Game over!"),
		md(fmt.Sprintf("Final score: %d/%d", result.Correct, result.Total)),
	)
}

// answerFeedback is the popup text shown after tapping an answer.
func answerFeedback(res *service.AnswerResult) string {
	if res.IsCorrect {
		return msgCorrect
	}
	return truncate(fmt.Sprintf(msgWrongFormat, res.CorrectAnswer), maxCallbackText)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-1]) + "…"
}
