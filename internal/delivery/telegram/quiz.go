package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-bot/internal/service"
)

// startQuiz requests a new batch of questions for the chat.
// messageID is the screen to reuse, 0 for a new one.
func (h *Handler) startQuiz(ctx context.Context, chatID int64, messageID int) {
	if _, ok := h.inFlight[chatID]; ok {
		h.logger.Debug("questions already requested", zap.Int64("chat_id", chatID))
		return
	}

	h.quizService.Begin(chatID)
	h.fetchSeq++
	seq := h.fetchSeq
	h.inFlight[chatID] = seq
	h.request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	go func() {
		questions := h.fetcher.FetchQuestions(ctx)

		select {
		case h.fetched <- fetchResult{chatID: chatID, messageID: messageID, seq: seq, questions: questions}:
		case <-ctx.Done():
		}
	}()
}

// handleFetched renders the first question once questions arrive.
// An empty batch renders nothing, and so does a fetch abandoned by /stop.
func (h *Handler) handleFetched(res fetchResult) {
	if seq, ok := h.inFlight[res.chatID]; !ok || seq != res.seq {
		h.logger.Debug("dropping abandoned fetch", zap.Int64("chat_id", res.chatID))
		return
	}
	delete(h.inFlight, res.chatID)

	view, err := h.quizService.Complete(res.chatID, res.questions)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoQuestionsAvailable):
			h.logger.Warn("no questions to show", zap.Int64("chat_id", res.chatID))
		case errors.Is(err, service.ErrSessionNotFound):
			h.logger.Debug("no session for fetched questions", zap.Int64("chat_id", res.chatID))
		default:
			h.logger.Error("failed to load questions",
				zap.Int64("chat_id", res.chatID),
				zap.Error(err),
			)
		}
		return
	}

	h.showQuestion(res.chatID, res.messageID, view)
}

// showQuestion edits messageID into the question screen, or sends a new screen when messageID is 0.
func (h *Handler) showQuestion(chatID int64, messageID int, view *service.QuestionView) {
	text := renderQuestion(view)
	kb := buildAnswerKeyboard(view)

	if messageID != 0 {
		edit := newEdit(chatID, messageID, text)
		edit.ReplyMarkup = &kb
		if _, err := h.send(edit); err == nil {
			h.quizService.AttachMessage(chatID, messageID)
		}
		return
	}

	msg := newMessage(chatID, text)
	msg.ReplyMarkup = kb
	sent, err := h.send(msg)
	if err != nil {
		return
	}
	h.quizService.AttachMessage(chatID, sent.MessageID)
}

// showResult edits messageID into the final score screen.
func (h *Handler) showResult(chatID int64, messageID int, result *service.ResultView) {
	edit := newEdit(chatID, messageID, renderResult(result))
	kb := buildResultKeyboard(result)
	edit.ReplyMarkup = &kb
	_, _ = h.send(edit)
}
