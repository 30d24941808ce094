package storage

import (
	"sync"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
)

// QuizStorage provides in-memory storage for quiz sessions by chat ID.
type QuizStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.QuizSession
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sessions: make(map[int64]*entities.QuizSession),
	}
}

// Store saves the session under its chat ID, replacing any previous one.
func (s *QuizStorage) Store(session *entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ChatID] = session
}

// Get retrieves the session for a given chat ID.
func (s *QuizStorage) Get(chatID int64) (*entities.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[chatID]
	return session, ok
}

// Delete removes the session for a given chat ID.
func (s *QuizStorage) Delete(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[chatID]
	delete(s.sessions, chatID)
	return ok
}
