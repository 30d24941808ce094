package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Callback action constants.
const (
	actionAnswer = "answer"
	actionQuiz   = "quiz"
)

// Quiz sub-actions.
const (
	quizRestart = "restart"
)

var ErrInvalidCallback = errors.New("invalid callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildAnswerCallback builds callback data for answering a quiz question.
func buildAnswerCallback(sessionID uuid.UUID, questionIndex, choiceIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			sessionID.String(),
			strconv.Itoa(questionIndex),
			strconv.Itoa(choiceIndex),
		},
	}.encode()
}

// buildRestartCallback builds callback data for restarting the quiz
// from the result screen of session sessionID.
func buildRestartCallback(sessionID uuid.UUID) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizRestart, sessionID.String()},
	}.encode()
}

func parseRestartCallback(cd callbackData) (uuid.UUID, error) {
	if cd.Action != actionQuiz || len(cd.Params) != 2 || cd.Params[0] != quizRestart {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidCallback, cd.Raw)
	}

	sessionID, err := uuid.Parse(cd.Params[1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: session id: %v", ErrInvalidCallback, err)
	}

	return sessionID, nil
}

type answerCallback struct {
	SessionID     uuid.UUID
	QuestionIndex int
	ChoiceIndex   int
}

func parseAnswerCallback(cd callbackData) (answerCallback, error) {
	if cd.Action != actionAnswer || len(cd.Params) != 3 {
		return answerCallback{}, fmt.Errorf("%w: %q", ErrInvalidCallback, cd.Raw)
	}

	sessionID, err := uuid.Parse(cd.Params[0])
	if err != nil {
		return answerCallback{}, fmt.Errorf("%w: session id: %v", ErrInvalidCallback, err)
	}

	questionIndex, err1 := strconv.Atoi(cd.Params[1])
	choiceIndex, err2 := strconv.Atoi(cd.Params[2])
	if err1 != nil || err2 != nil || questionIndex < 0 || choiceIndex < 0 {
		return answerCallback{}, fmt.Errorf("%w: %q", ErrInvalidCallback, cd.Raw)
	}

	return answerCallback{
		SessionID:     sessionID,
		QuestionIndex: questionIndex,
		ChoiceIndex:   choiceIndex,
	}, nil
}
