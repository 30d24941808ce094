package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// errDelivery marks a Bot API call that failed. send has already logged it.
var errDelivery = errors.New("telegram delivery failed")

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed command and tells the user about it.
// Failed deliveries are logged by send and get no second reply.
func (h *Handler) withErrorHandling(command string, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if errors.Is(err, errDelivery) {
			h.logger.Debug("command reply not delivered",
				zap.String("command", command),
				zap.Int64("chat_id", chatID),
			)
			return nil
		}

		h.logger.Error("command failed",
			zap.String("command", command),
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}
