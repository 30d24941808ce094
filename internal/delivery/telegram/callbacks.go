package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionAnswer:
		h.handleAnswerCallback(cb, data)
	case actionQuiz:
		h.handleRestartCallback(ctx, cb, data)
	default:
		h.logger.Warn("unknown callback action", zap.String("data", cb.Data))
		h.answerCallback(cb.ID, "")
	}
}

func (h *Handler) handleAnswerCallback(cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	ac, err := parseAnswerCallback(data)
	if err != nil {
		h.logger.Warn("invalid answer callback", zap.Error(err))
		h.answerCallback(cb.ID, "")
		return
	}

	res, err := h.quizService.Answer(chatID, ac.SessionID, ac.QuestionIndex, ac.ChoiceIndex)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound),
			errors.Is(err, service.ErrStaleAnswer),
			errors.Is(err, service.ErrInvalidChoice):
			h.logger.Debug("ignored answer",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		default:
			h.logger.Error("failed to record answer",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
		h.answerCallback(cb.ID, msgStaleAnswer)
		return
	}

	h.answerCallback(cb.ID, answerFeedback(res))

	if res.Result != nil {
		h.showResult(chatID, messageID, res.Result)
		return
	}
	h.showQuestion(chatID, messageID, res.Next)
}

// handleRestartCallback starts a new run on the result screen it was tapped on.
// Result screens of other runs are stale while a run is loading or showing.
func (h *Handler) handleRestartCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID

	sessionID, err := parseRestartCallback(data)
	if err != nil {
		h.logger.Warn("invalid restart callback", zap.Error(err))
		h.answerCallback(cb.ID, "")
		return
	}

	if !h.quizService.CanRestart(chatID, sessionID) {
		h.logger.Debug("ignored restart",
			zap.Int64("chat_id", chatID),
			zap.String("session_id", sessionID.String()),
		)
		h.answerCallback(cb.ID, msgStaleAnswer)
		return
	}

	h.answerCallback(cb.ID, "")
	h.startQuiz(ctx, chatID, cb.Message.MessageID)
}

// answerCallback removes the button "clock" and optionally shows a popup text.
func (h *Handler) answerCallback(callbackID, text string) {
	h.request(tgbotapi.NewCallback(callbackID, text))
}
