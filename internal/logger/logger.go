package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/trivia-bot/internal/config"
)

// New builds a production logger for the production environment and a development one otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zcfg.Build(zap.Fields(zap.String("env", cfg.Env)))
}
