package service

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-bot/internal/storage"
)

func testQuestions() []entities.Question {
	return []entities.Question{
		{Category: "Geography", Question: "Capital of France?", CorrectAnswer: "Paris", IncorrectAnswers: []string{"Rome", "Berlin", "Madrid"}, Type: entities.TypeMultiple},
		{Category: "Science", Question: "The sun is a star.", CorrectAnswer: "True", IncorrectAnswers: []string{"False"}, Type: entities.TypeBoolean},
	}
}

func newTestService(t *testing.T) *QuizService {
	t.Helper()
	return NewQuizService(storage.NewQuizStorage(), rand.New(rand.NewSource(42)), zaptest.NewLogger(t))
}

func indexOf(choices []string, s string) int {
	for i, c := range choices {
		if c == s {
			return i
		}
	}
	return -1
}

func TestQuizServiceFullRun(t *testing.T) {
	svc := newTestService(t)
	const chatID = 10

	session := svc.Begin(chatID)
	if session.Status != entities.StatusLoading {
		t.Fatalf("status = %q, want loading", session.Status)
	}

	view, err := svc.Complete(chatID, testQuestions())
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if view.Index != 0 || view.Total != 2 || view.Question != "Capital of France?" {
		t.Fatalf("unexpected first view: %+v", view)
	}
	if len(view.Choices) != 4 {
		t.Fatalf("got %d choices, want 4", len(view.Choices))
	}

	res, err := svc.Answer(chatID, view.SessionID, 0, indexOf(view.Choices, "Paris"))
	if err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}
	if !res.IsCorrect || res.Next == nil || res.Result != nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Next.Index != 1 || len(res.Next.Choices) != 2 {
		t.Fatalf("unexpected second view: %+v", res.Next)
	}

	res, err = svc.Answer(chatID, view.SessionID, 1, indexOf(res.Next.Choices, "False"))
	if err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}
	if res.IsCorrect || res.CorrectAnswer != "True" {
		t.Errorf("False should be wrong with correct answer True: %+v", res)
	}
	if res.Result == nil || res.Next != nil {
		t.Fatalf("expected final result, got %+v", res)
	}
	if res.Result.Correct != 1 || res.Result.Total != 2 {
		t.Errorf("result = %+v, want 1/2", res.Result)
	}

	session, _ = svc.Session(chatID)
	if session.Status != entities.StatusFinished {
		t.Errorf("status = %q, want finished", session.Status)
	}
}

func TestQuizServiceEmptyFetchLeavesStateUnchanged(t *testing.T) {
	svc := newTestService(t)
	const chatID = 11

	svc.Begin(chatID)
	if _, err := svc.Complete(chatID, nil); !errors.Is(err, ErrNoQuestionsAvailable) {
		t.Fatalf("error = %v, want ErrNoQuestionsAvailable", err)
	}
	session, _ := svc.Session(chatID)
	if session.Status != entities.StatusLoading || session.Total() != 0 {
		t.Fatalf("empty fetch changed a loading session: %+v", session)
	}

	// A finished session stays finished when the restart fetch fails.
	view, _ := svc.Complete(chatID, testQuestions()[:1])
	if _, err := svc.Answer(chatID, view.SessionID, 0, 0); err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}
	before := *session

	if _, err := svc.Complete(chatID, []entities.Question{}); !errors.Is(err, ErrNoQuestionsAvailable) {
		t.Fatalf("error = %v, want ErrNoQuestionsAvailable", err)
	}
	if session.Status != entities.StatusFinished || session.ID != before.ID ||
		session.CorrectAnswers != before.CorrectAnswers || session.CurrentIndex != before.CurrentIndex {
		t.Errorf("empty fetch changed a finished session: before %+v, after %+v", before, *session)
	}
}

func TestQuizServiceRestartResets(t *testing.T) {
	svc := newTestService(t)
	const chatID = 12

	svc.Begin(chatID)
	view, _ := svc.Complete(chatID, testQuestions())
	first := view.SessionID
	res, _ := svc.Answer(chatID, first, 0, indexOf(view.Choices, "Paris"))
	_, _ = svc.Answer(chatID, first, 1, indexOf(res.Next.Choices, "True"))

	// Restart: Begin returns the finished session, Complete loads fresh questions.
	if s := svc.Begin(chatID); s.Status != entities.StatusFinished {
		t.Fatalf("Begin replaced the session: %+v", s)
	}
	view, err := svc.Complete(chatID, testQuestions())
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if view.SessionID == first || view.Index != 0 {
		t.Errorf("restart did not start a new run: %+v", view)
	}
	session, _ := svc.Session(chatID)
	if session.CorrectAnswers != 0 || session.CurrentIndex != 0 || session.Status != entities.StatusShowing {
		t.Errorf("restart did not reset the session: %+v", session)
	}

	// Buttons of the old run are stale now.
	if _, err := svc.Answer(chatID, first, 0, 0); !errors.Is(err, ErrStaleAnswer) {
		t.Errorf("old session answer error = %v, want ErrStaleAnswer", err)
	}
}

func TestQuizServiceAnswerErrors(t *testing.T) {
	svc := newTestService(t)
	const chatID = 13

	if _, err := svc.Answer(chatID, uuid.New(), 0, 0); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("unknown chat error = %v, want ErrSessionNotFound", err)
	}

	svc.Begin(chatID)
	if _, err := svc.Answer(chatID, uuid.Nil, 0, 0); !errors.Is(err, ErrStaleAnswer) {
		t.Errorf("loading session error = %v, want ErrStaleAnswer", err)
	}

	view, _ := svc.Complete(chatID, testQuestions())

	if _, err := svc.Answer(chatID, view.SessionID, 1, 0); !errors.Is(err, ErrStaleAnswer) {
		t.Errorf("wrong question index error = %v, want ErrStaleAnswer", err)
	}
	if _, err := svc.Answer(chatID, view.SessionID, 0, 4); !errors.Is(err, ErrInvalidChoice) {
		t.Errorf("out of range choice error = %v, want ErrInvalidChoice", err)
	}
	if _, err := svc.Answer(chatID, view.SessionID, 0, -1); !errors.Is(err, ErrInvalidChoice) {
		t.Errorf("negative choice error = %v, want ErrInvalidChoice", err)
	}

	session, _ := svc.Session(chatID)
	if session.CurrentIndex != 0 || session.CorrectAnswers != 0 {
		t.Errorf("rejected answers changed the session: %+v", session)
	}
}

func TestQuizServiceScoreNeverExceedsTotal(t *testing.T) {
	svc := newTestService(t)
	const chatID = 14

	svc.Begin(chatID)
	view, _ := svc.Complete(chatID, testQuestions())

	for {
		q, _ := svc.Session(chatID)
		correct := q.Questions[view.Index].CorrectAnswer
		res, err := svc.Answer(chatID, view.SessionID, view.Index, indexOf(view.Choices, correct))
		if err != nil {
			t.Fatalf("Answer returned error: %v", err)
		}
		if res.Result != nil {
			if res.Result.Correct > res.Result.Total || res.Result.Correct != 2 {
				t.Fatalf("result = %+v, want 2/2", res.Result)
			}
			break
		}
		view = res.Next
	}
}

func TestQuizServiceStopAndCompleteAfterStop(t *testing.T) {
	svc := newTestService(t)
	const chatID = 15

	svc.Begin(chatID)
	svc.AttachMessage(chatID, 99)
	if s, _ := svc.Session(chatID); s.MessageID != 99 {
		t.Errorf("MessageID = %d, want 99", s.MessageID)
	}

	if !svc.Stop(chatID) {
		t.Fatalf("Stop returned false")
	}
	if _, err := svc.Complete(chatID, testQuestions()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Complete after Stop error = %v, want ErrSessionNotFound", err)
	}
}

func TestQuizServiceCanRestart(t *testing.T) {
	svc := newTestService(t)
	const chatID = 16

	if !svc.CanRestart(chatID, uuid.New()) {
		t.Error("restart refused for a chat without a session")
	}

	svc.Begin(chatID)
	view, _ := svc.Complete(chatID, testQuestions()[1:])
	if svc.CanRestart(chatID, view.SessionID) {
		t.Error("restart allowed while the session is showing a question")
	}

	res, _ := svc.Answer(chatID, view.SessionID, 0, 0)
	if res.Result == nil || res.Result.SessionID != view.SessionID {
		t.Fatalf("result does not carry the session id: %+v", res.Result)
	}
	if !svc.CanRestart(chatID, view.SessionID) {
		t.Error("restart refused for the finished session")
	}
	if svc.CanRestart(chatID, uuid.New()) {
		t.Error("restart allowed for another session's result screen")
	}
}
