package service

import (
	"math/rand"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
)

// MaxChoices is the number of answer buttons on screen.
const MaxChoices = 1 + entities.MaxIncorrectAnswers

// ShuffleChoices returns the correct and incorrect answers of q in random order.
// The correct answer is always kept; extra incorrect answers are dropped.
func ShuffleChoices(q entities.Question, r *rand.Rand) []string {
	choices := q.Choices()
	if len(choices) > MaxChoices {
		choices = choices[:MaxChoices]
	}

	r.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return choices
}
