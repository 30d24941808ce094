package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrSessionNotFound      = errors.New("quiz session not found")
	ErrStaleAnswer          = errors.New("answer does not match the question on screen")
	ErrInvalidChoice        = errors.New("invalid choice index")
)

// QuizStorage keeps the session of every chat.
type QuizStorage interface {
	Store(session *entities.QuizSession)
	Get(chatID int64) (*entities.QuizSession, bool)
	Delete(chatID int64) bool
}

// QuestionView is what the screen shows while a question is active.
type QuestionView struct {
	SessionID uuid.UUID
	Index     int // 0-based
	Total     int
	Category  string
	Question  string
	Choices   []string // shuffled, at most MaxChoices
}

// ResultView is what the screen shows once the session is finished.
type ResultView struct {
	SessionID uuid.UUID
	Correct   int
	Total     int
}

// AnswerResult describes the outcome of a tapped answer.
// Exactly one of Next and Result is set.
type AnswerResult struct {
	IsCorrect     bool
	CorrectAnswer string
	Next          *QuestionView
	Result        *ResultView
}

// QuizService drives the quiz state machine of every chat:
// loading -> showing(0) -> ... -> showing(n-1) -> finished.
type QuizService struct {
	storage QuizStorage
	rng     *rand.Rand
	logger  *zap.Logger
}

// NewQuizService creates a QuizService. A nil rng is replaced by a time-seeded one.
func NewQuizService(storage QuizStorage, rng *rand.Rand, logger *zap.Logger) *QuizService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &QuizService{
		storage: storage,
		rng:     rng,
		logger:  logger.Named("quiz"),
	}
}

// Begin returns the session of the chat, creating an empty one if needed.
func (s *QuizService) Begin(chatID int64) *entities.QuizSession {
	if session, ok := s.storage.Get(chatID); ok {
		return session
	}

	session := entities.NewQuizSession(chatID)
	s.storage.Store(session)
	s.logger.Debug("quiz session created", zap.Int64("chat_id", chatID))

	return session
}

// Complete hands fetched questions to the chat's session.
// An empty list leaves the session untouched.
func (s *QuizService) Complete(chatID int64, questions []entities.Question) (*QuestionView, error) {
	session, ok := s.storage.Get(chatID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if len(questions) == 0 {
		s.logger.Warn("no trivia questions received",
			zap.Int64("chat_id", chatID),
			zap.String("status", string(session.Status)),
		)
		return nil, ErrNoQuestionsAvailable
	}

	session.Load(questions)
	s.logger.Info("quiz session loaded",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", session.ID.String()),
		zap.Int("total_questions", session.Total()),
	)

	return s.present(session), nil
}

// Answer scores the choice tapped on question questionIndex of session sessionID
// and moves the session forward.
func (s *QuizService) Answer(chatID int64, sessionID uuid.UUID, questionIndex, choiceIndex int) (*AnswerResult, error) {
	session, ok := s.storage.Get(chatID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if !session.IsActive() || session.ID != sessionID || session.CurrentIndex != questionIndex {
		return nil, ErrStaleAnswer
	}

	if choiceIndex < 0 || choiceIndex >= len(session.Choices) {
		return nil, ErrInvalidChoice
	}

	q, _ := session.Current()
	answer := session.Choices[choiceIndex]
	isCorrect := session.Advance(answer)

	s.logger.Debug("answer received",
		zap.Int64("chat_id", chatID),
		zap.Int("question_index", questionIndex),
		zap.String("answer", answer),
		zap.Bool("correct", isCorrect),
	)

	res := &AnswerResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: q.CorrectAnswer,
	}

	if session.Status == entities.StatusFinished {
		res.Result = resultView(session)
		s.logger.Info("quiz session finished",
			zap.Int64("chat_id", chatID),
			zap.Int("correct_answers", session.CorrectAnswers),
			zap.Int("total_questions", session.Total()),
		)
		return res, nil
	}

	res.Next = s.present(session)
	return res, nil
}

// CanRestart reports whether a Restart tapped on the result screen of session
// sessionID may start a new run. Only the finished session of the chat qualifies,
// or any tap once the chat has no session.
func (s *QuizService) CanRestart(chatID int64, sessionID uuid.UUID) bool {
	session, ok := s.storage.Get(chatID)
	if !ok {
		return true
	}
	return session.ID == sessionID && session.Status == entities.StatusFinished
}

// AttachMessage remembers the message used as the chat's screen.
func (s *QuizService) AttachMessage(chatID int64, messageID int) {
	if session, ok := s.storage.Get(chatID); ok {
		session.MessageID = messageID
	}
}

// Session returns the session of the chat.
func (s *QuizService) Session(chatID int64) (*entities.QuizSession, bool) {
	return s.storage.Get(chatID)
}

// Stop discards the chat's session.
func (s *QuizService) Stop(chatID int64) bool {
	return s.storage.Delete(chatID)
}

// present shuffles the choices of the current question and builds its view.
func (s *QuizService) present(session *entities.QuizSession) *QuestionView {
	q, ok := session.Current()
	if !ok {
		return nil
	}

	session.Choices = ShuffleChoices(q, s.rng)

	return &QuestionView{
		SessionID: session.ID,
		Index:     session.CurrentIndex,
		Total:     session.Total(),
		Category:  q.Category,
		Question:  q.Question,
		Choices:   session.Choices,
	}
}

func resultView(session *entities.QuizSession) *ResultView {
	return &ResultView{
		SessionID: session.ID,
		Correct:   session.CorrectAnswers,
		Total:     session.Total(),
	}
}
