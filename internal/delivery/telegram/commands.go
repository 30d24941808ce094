package telegram

import (
	"context"

	"go.uber.org/zap"
)

// handleStart greets the user and starts a quiz.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if _, err := h.send(newPlainMessage(chatID, msgWelcome)); err != nil {
			return err
		}
		h.startQuiz(ctx, chatID, 0)
		return nil
	}
}

// handleQuiz starts a quiz on a new screen.
func (h *Handler) handleQuiz() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.startQuiz(ctx, chatID, 0)
		return nil
	}
}

// handleStop drops the chat's session and abandons its pending fetch.
func (h *Handler) handleStop() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		delete(h.inFlight, chatID)

		text := msgNoQuiz
		if h.quizService.Stop(chatID) {
			h.logger.Info("quiz stopped", zap.Int64("chat_id", chatID))
			text = msgStopped
		}
		_, err := h.send(newPlainMessage(chatID, text))
		return err
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		_, err := h.send(newPlainMessage(chatID, msgHelp))
		return err
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		_, err := h.send(newPlainMessage(chatID, msgUnknownCommand))
		return err
	}
}

func (h *Handler) handleText() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		_, err := h.send(newPlainMessage(chatID, msgUseButtons))
		return err
	}
}
