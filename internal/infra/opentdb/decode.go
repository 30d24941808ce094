package opentdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
)

var ErrMissingField = errors.New("missing required field")

// apiResponse is the envelope returned by api.php.
type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []rawQuestion `json:"results"`
}

// rawQuestion is a question as it appears on the wire.
// Pointers tell a missing key apart from an empty one.
type rawQuestion struct {
	Category         *string  `json:"category"`
	Type             *string  `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         *string  `json:"question"`
	CorrectAnswer    *string  `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// decodeResponse parses a response body into normalized questions.
func decodeResponse(body []byte) (int, []entities.Question, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, nil, fmt.Errorf("unmarshal response: %w", err)
	}

	questions := make([]entities.Question, 0, len(resp.Results))
	for i, raw := range resp.Results {
		q, err := normalize(raw)
		if err != nil {
			return resp.ResponseCode, nil, fmt.Errorf("result %d: %w", i, err)
		}
		questions = append(questions, q)
	}

	return resp.ResponseCode, questions, nil
}

// normalize decodes HTML entities, trims text, fills in defaults
// and keeps incorrect answers unique and apart from the correct one.
func normalize(raw rawQuestion) (entities.Question, error) {
	switch {
	case raw.Category == nil:
		return entities.Question{}, fmt.Errorf("category: %w", ErrMissingField)
	case raw.Question == nil:
		return entities.Question{}, fmt.Errorf("question: %w", ErrMissingField)
	case raw.Type == nil:
		return entities.Question{}, fmt.Errorf("type: %w", ErrMissingField)
	}

	q := entities.Question{
		Category:      cleanText(*raw.Category),
		Question:      cleanText(*raw.Question),
		Type:          cleanText(*raw.Type),
		CorrectAnswer: entities.UnknownAnswer,
	}

	if raw.CorrectAnswer != nil {
		if a := cleanText(*raw.CorrectAnswer); a != "" {
			q.CorrectAnswer = a
		}
	}

	incorrect := make([]string, 0, len(raw.IncorrectAnswers))
	for _, a := range raw.IncorrectAnswers {
		incorrect = append(incorrect, cleanText(a))
	}

	incorrect = dedupeAnswers(incorrect, q.CorrectAnswer)
	if len(incorrect) == 0 {
		incorrect = entities.FallbackIncorrectAnswers(q.Type, q.CorrectAnswer)
	}

	if len(incorrect) > entities.MaxIncorrectAnswers {
		incorrect = incorrect[:entities.MaxIncorrectAnswers]
	}
	q.IncorrectAnswers = incorrect

	return q, nil
}

// dedupeAnswers drops empty answers, repeats and answers equal to correct.
func dedupeAnswers(answers []string, correct string) []string {
	seen := map[string]bool{correct: true}
	out := answers[:0]
	for _, a := range answers {
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(decodeHTML(s)))
}

var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// decodeHTML renders s as an HTML fragment and returns its text content,
// so entities are decoded and stray markup is dropped.
func decodeHTML(s string) string {
	if !strings.ContainsAny(s, "&<") {
		return s
	}

	nodes, err := html.ParseFragment(strings.NewReader(s), bodyContext)
	if err != nil {
		return html.UnescapeString(s)
	}

	var sb strings.Builder
	for _, n := range nodes {
		writeText(&sb, n)
	}
	return sb.String()
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.DataAtom == atom.Br {
			sb.WriteString("\n")
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
}
