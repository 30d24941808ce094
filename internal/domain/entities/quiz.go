package entities

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the state of a quiz session.
type SessionStatus string

const (
	StatusLoading  SessionStatus = "loading"  // waiting for the first batch of questions
	StatusShowing  SessionStatus = "showing"  // a question is on screen
	StatusFinished SessionStatus = "finished" // final score is on screen
)

// QuizSession represents a single quiz run in a chat.
// It tracks the question list, the current position, the score and the message used as the screen.
type QuizSession struct {
	ID             uuid.UUID     // changes on every load so that old buttons stop working
	ChatID         int64         // chat the session belongs to
	MessageID      int           // message edited in place; 0 until the first render
	Questions      []Question    // questions of the current run
	CurrentIndex   int           // 0-based index of the question on screen
	CorrectAnswers int           // number of correct answers so far
	Status         SessionStatus // loading, showing or finished
	Choices        []string      // shuffled choices of the question on screen
	StartedAt      time.Time     // when the current run was loaded
	CompletedAt    *time.Time    // when the current run was finished (nullable)
}

// NewQuizSession creates an empty session waiting for questions.
func NewQuizSession(chatID int64) *QuizSession {
	return &QuizSession{
		ChatID: chatID,
		Status: StatusLoading,
	}
}

// Load starts a new run over questions, resetting index and score.
func (qs *QuizSession) Load(questions []Question) {
	qs.ID = uuid.New()
	qs.Questions = questions
	qs.CurrentIndex = 0
	qs.CorrectAnswers = 0
	qs.Choices = nil
	qs.Status = StatusShowing
	qs.StartedAt = time.Now()
	qs.CompletedAt = nil
}

// Current returns the question on screen.
func (qs *QuizSession) Current() (Question, bool) {
	if qs.Status != StatusShowing || qs.CurrentIndex < 0 || qs.CurrentIndex >= len(qs.Questions) {
		return Question{}, false
	}
	return qs.Questions[qs.CurrentIndex], true
}

// IsCorrectAnswer compares answer against the correct answer of the question on screen.
func (qs *QuizSession) IsCorrectAnswer(answer string) bool {
	q, ok := qs.Current()
	if !ok {
		return false
	}
	return answer == q.CorrectAnswer
}

// Advance scores answer and moves to the next question.
// Moving past the last question finishes the session.
func (qs *QuizSession) Advance(answer string) bool {
	if qs.Status != StatusShowing {
		return false
	}

	correct := qs.IsCorrectAnswer(answer)
	if correct {
		qs.CorrectAnswers++
	}

	qs.CurrentIndex++
	qs.Choices = nil
	if qs.CurrentIndex >= len(qs.Questions) {
		qs.Complete()
	}

	return correct
}

// Complete marks the session as finished and sets the completion timestamp.
func (qs *QuizSession) Complete() {
	qs.Status = StatusFinished
	now := time.Now()
	qs.CompletedAt = &now
}

// IsActive reports whether the session is showing a question.
func (qs *QuizSession) IsActive() bool {
	return qs.Status == StatusShowing
}

// Total returns the number of questions in the current run.
func (qs *QuizSession) Total() int {
	return len(qs.Questions)
}
