package opentdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
)

const (
	DefaultBaseURL = "https://opentdb.com/api.php"
	DefaultAmount  = 10

	maxBodySize = 1 << 20
)

var (
	ErrInvalidURL       = errors.New("invalid trivia URL")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrResponseCode     = errors.New("trivia API returned an error code")
)

// Response codes documented by Open Trivia DB.
var responseCodes = map[int]string{
	0: "success",
	1: "no results",
	2: "invalid parameter",
	3: "token not found",
	4: "token empty",
	5: "rate limit",
}

func responseCodeText(code int) string {
	if s, ok := responseCodes[code]; ok {
		return s
	}
	return "unknown"
}

// Config holds trivia API client settings.
type Config struct {
	BaseURL string
	Amount  int
	Timeout time.Duration
}

// Client fetches questions from the Open Trivia DB API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	amount     int
	logger     *zap.Logger
}

// NewClient creates a Client, filling zero config values with defaults.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Amount <= 0 {
		cfg.Amount = DefaultAmount
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		amount:     cfg.Amount,
		logger:     logger.Named("opentdb"),
	}
}

// FetchQuestions performs one request and returns the decoded questions.
// Every failure is logged and reported as an empty result.
func (c *Client) FetchQuestions(ctx context.Context) []entities.Question {
	questions, err := c.fetch(ctx)
	if err != nil {
		c.logger.Error("failed to fetch trivia questions", zap.Error(err))
		return nil
	}

	c.logger.Info("received trivia questions", zap.Int("count", len(questions)))
	return questions
}

func (c *Client) fetch(ctx context.Context) ([]entities.Question, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	c.logger.Debug("raw trivia response", zap.ByteString("body", body))

	code, questions, err := decodeResponse(body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if code != 0 {
		return nil, fmt.Errorf("%w: %d (%s)", ErrResponseCode, code, responseCodeText(code))
	}

	return questions, nil
}

func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, c.baseURL)
	}

	q := u.Query()
	q.Set("amount", strconv.Itoa(c.amount))
	u.RawQuery = q.Encode()

	return u.String(), nil
}
