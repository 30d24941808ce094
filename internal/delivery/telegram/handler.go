package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-bot/internal/service"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type QuestionFetcher interface {
	FetchQuestions(ctx context.Context) []entities.Question
}

type QuizService interface {
	Begin(chatID int64) *entities.QuizSession
	Complete(chatID int64, questions []entities.Question) (*service.QuestionView, error)
	Answer(chatID int64, sessionID uuid.UUID, questionIndex, choiceIndex int) (*service.AnswerResult, error)
	CanRestart(chatID int64, sessionID uuid.UUID) bool
	AttachMessage(chatID int64, messageID int)
	Stop(chatID int64) bool
}

// fetchResult carries fetched questions back to the update loop.
type fetchResult struct {
	chatID    int64
	messageID int    // message to edit with the first question; 0 sends a new one
	seq       uint64 // matches inFlight while the fetch is current
	questions []entities.Question
}

type Handler struct {
	bot           BotAPI
	logger        *zap.Logger
	fetcher       QuestionFetcher
	quizService   QuizService
	updateTimeout int

	fetched  chan fetchResult
	inFlight map[int64]uint64 // chat -> seq of the current fetch; touched only by the update loop
	fetchSeq uint64
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	fetcher QuestionFetcher,
	quizService QuizService,
	updateTimeout int,
) *Handler {
	return &Handler{
		bot:           bot,
		logger:        logger.Named("telegram"),
		fetcher:       fetcher,
		quizService:   quizService,
		updateTimeout: updateTimeout,
		fetched:       make(chan fetchResult),
		inFlight:      make(map[int64]uint64),
	}
}

// Run consumes updates and fetch results until ctx is done.
// Sessions are only touched from this loop.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.updateTimeout

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		case res := <-h.fetched:
			h.handleFetched(res)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		_ = h.withErrorHandling("text", h.handleText())(ctx, chatID)
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling("start", h.handleStart())(ctx, chatID)
	case "quiz":
		_ = h.withErrorHandling("quiz", h.handleQuiz())(ctx, chatID)
	case "stop":
		_ = h.withErrorHandling("stop", h.handleStop())(ctx, chatID)
	case "help":
		_ = h.withErrorHandling("help", h.handleHelp())(ctx, chatID)
	default:
		_ = h.withErrorHandling(update.Message.Command(), h.handleUnknown())(ctx, chatID)
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	_, _ = h.send(newPlainMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg, err := h.bot.Send(c)
	if err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return msg, fmt.Errorf("%w: %w", errDelivery, err)
	}
	return msg, nil
}

func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Error("telegram request failed",
			zap.Error(err),
		)
	}
}
