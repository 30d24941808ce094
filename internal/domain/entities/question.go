package entities

import "strings"

// Question types reported by the trivia API.
const (
	TypeBoolean  = "boolean"
	TypeMultiple = "multiple"
)

// UnknownAnswer replaces a correct answer the API did not send.
const UnknownAnswer = "Unknown"

// MaxIncorrectAnswers is the number of wrong choices shown next to the correct one.
const MaxIncorrectAnswers = 3

var (
	booleanFallback = []string{"True", "False"}
	genericFallback = []string{"Wrong Choice 1", "Wrong Choice 2", "Wrong Choice 3"}
)

// Question is a normalized trivia question.
type Question struct {
	Category         string   // question category, e.g. "Science: Computers"
	Question         string   // question text
	CorrectAnswer    string   // trimmed correct answer
	IncorrectAnswers []string // 0-3 wrong answers, disjoint from CorrectAnswer
	Type             string   // "boolean", "multiple" or anything the API invents
}

// IsBoolean reports whether the question is a true/false question.
func (q Question) IsBoolean() bool {
	return q.Type == TypeBoolean
}

// Choices returns the correct answer followed by the incorrect ones.
func (q Question) Choices() []string {
	choices := make([]string, 0, 1+len(q.IncorrectAnswers))
	choices = append(choices, q.CorrectAnswer)
	choices = append(choices, q.IncorrectAnswers...)
	return choices
}

// FallbackIncorrectAnswers returns placeholder wrong answers for a question
// that arrived without any, excluding the correct answer.
func FallbackIncorrectAnswers(questionType, correctAnswer string) []string {
	set := genericFallback
	if questionType == TypeBoolean {
		set = booleanFallback
	}

	correct := strings.TrimSpace(correctAnswer)
	out := make([]string, 0, len(set))
	for _, s := range set {
		if s != correct {
			out = append(out, s)
		}
	}

	return out
}
