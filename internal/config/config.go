package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid config")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"`       // current application environment (local, dev, production etc)
	LogLevel         string `mapstructure:"log_level"` // overrides the environment's default level when set
	TelegramAPIToken string `mapstructure:"-"`         // Telegram API token loaded from environment
	Bot              Bot    `mapstructure:"bot"`       // bot transport section
	Trivia           Trivia `mapstructure:"trivia"`    // question source section
}

// Bot contains Telegram transport parameters.
type Bot struct {
	Debug         bool `mapstructure:"debug"`          // log raw Bot API traffic
	UpdateTimeout int  `mapstructure:"update_timeout"` // long polling timeout in seconds
}

// Trivia contains question source parameters.
type Trivia struct {
	BaseURL string        `mapstructure:"base_url"` // Open Trivia DB endpoint
	Amount  int           `mapstructure:"amount"`   // questions per quiz
	Timeout time.Duration `mapstructure:"timeout"`  // request timeout
}

// Load reads configuration from config files and environment variables.
// Variables from a .env file in the working directory are applied first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return load("./config")
}

func load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("bot.debug", false)
	v.SetDefault("bot.update_timeout", 60)
	v.SetDefault("trivia.base_url", "https://opentdb.com/api.php")
	v.SetDefault("trivia.amount", 10)
	v.SetDefault("trivia.timeout", "10s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // trivia.amount -> TRIVIA_AMOUNT
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Trivia.Amount <= 0 {
		return fmt.Errorf("%w: trivia.amount must be positive, got %d", ErrInvalidConfig, c.Trivia.Amount)
	}
	if c.Trivia.Timeout <= 0 {
		return fmt.Errorf("%w: trivia.timeout must be positive, got %s", ErrInvalidConfig, c.Trivia.Timeout)
	}
	if c.Bot.UpdateTimeout < 0 {
		return fmt.Errorf("%w: bot.update_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}
