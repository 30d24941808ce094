package opentdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

const okBody = `{
	"response_code": 0,
	"results": [
		{"type":"boolean","difficulty":"easy","category":"General","question":"Q1","correct_answer":"True","incorrect_answers":["False"]},
		{"type":"multiple","difficulty":"easy","category":"General","question":"Q2","correct_answer":"A","incorrect_answers":["B","C","D"]}
	]
}`

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(Config{BaseURL: baseURL, Timeout: 5 * time.Second}, zaptest.NewLogger(t))
}

func TestFetchQuestions(t *testing.T) {
	var gotAmount string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		gotAmount = r.URL.Query().Get("amount")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	questions := newTestClient(t, srv.URL).FetchQuestions(context.Background())

	if gotAmount != "10" {
		t.Errorf("amount = %q, want %q", gotAmount, "10")
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[1].CorrectAnswer != "A" {
		t.Errorf("unexpected question: %+v", questions[1])
	}
}

func TestFetchQuestionsFailuresAreEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: ErrUnexpectedStatus,
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantErr: ErrUnexpectedStatus,
		},
		{
			name: "api response code",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"response_code":1,"results":[]}`))
			},
			wantErr: ErrResponseCode,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>oops</html>`))
			},
		},
		{
			name: "record without required field",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"response_code":0,"results":[{"question":"q"}]}`))
			},
			wantErr: ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := newTestClient(t, srv.URL)

			if questions := c.FetchQuestions(context.Background()); len(questions) != 0 {
				t.Errorf("FetchQuestions returned %d questions, want none", len(questions))
			}

			_, err := c.fetch(context.Background())
			if err == nil {
				t.Fatalf("fetch returned no error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("fetch error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchQuestionsInvalidURL(t *testing.T) {
	c := newTestClient(t, "not a url")

	if questions := c.FetchQuestions(context.Background()); len(questions) != 0 {
		t.Errorf("FetchQuestions returned %d questions, want none", len(questions))
	}
	if _, err := c.fetch(context.Background()); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("fetch error = %v, want ErrInvalidURL", err)
	}
}

func TestFetchQuestionsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	if questions := newTestClient(t, url).FetchQuestions(context.Background()); len(questions) != 0 {
		t.Errorf("FetchQuestions returned %d questions, want none", len(questions))
	}
}

func TestEndpointKeepsExistingQuery(t *testing.T) {
	c := NewClient(Config{BaseURL: "https://opentdb.com/api.php?category=9", Amount: 5}, zaptest.NewLogger(t))

	got, err := c.endpoint()
	if err != nil {
		t.Fatalf("endpoint returned error: %v", err)
	}
	if want := "https://opentdb.com/api.php?amount=5&category=9"; got != want {
		t.Errorf("endpoint() = %q, want %q", got, want)
	}
}
