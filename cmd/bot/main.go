package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-bot/internal/config"
	"github.com/aliskhannn/trivia-bot/internal/delivery/telegram"
	"github.com/aliskhannn/trivia-bot/internal/infra/opentdb"
	"github.com/aliskhannn/trivia-bot/internal/logger"
	"github.com/aliskhannn/trivia-bot/internal/service"
	"github.com/aliskhannn/trivia-bot/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	// Route the Bot API library's own output through zap.
	if err := tgbotapi.SetLogger(zap.NewStdLog(lg.Named("tgbotapi"))); err != nil {
		lg.Warn("failed to set bot api logger", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot api", zap.Error(err))
	}
	bot.Debug = cfg.Bot.Debug

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Start the bot and a quiz",
		},
		{
			Command:     "quiz",
			Description: "Start a new quiz",
		},
		{
			Command:     "stop",
			Description: "Stop the current quiz",
		},
		{
			Command:     "help",
			Description: "Help",
		},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	trivia := opentdb.NewClient(opentdb.Config{
		BaseURL: cfg.Trivia.BaseURL,
		Amount:  cfg.Trivia.Amount,
		Timeout: cfg.Trivia.Timeout,
	}, lg)

	quizService := service.NewQuizService(storage.NewQuizStorage(), nil, lg)

	handler := telegram.NewHandler(
		bot,
		lg,
		trivia,
		quizService,
		cfg.Bot.UpdateTimeout,
	)

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("telegram handler failed", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
