package assistant

import (
	"sync"

	"BuyOrWait/internal/model"
)

// QuickQuestions are the canned questions offered to users.
var QuickQuestions = []string{
	"What is the trend?",
	"When will the price be lowest?",
	"Should I buy now or wait?",
	"What is the predicted price after 7 days?",
	"What is the current price?",
	"How much will the price change?",
}

// HistoryWindow is how many recent conversation entries are shown.
const HistoryWindow = 10

// Session is the per-user interactive state: the active selection, its
// analysis and the conversation so far. Not safe for concurrent use.
type Session struct {
	ID       string
	Analysis *model.Analysis
	Log      model.ConversationLog
}

// NewSession creates an empty session.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// Select replaces the active analysis. The conversation is kept.
func (s *Session) Select(a *model.Analysis) {
	s.Analysis = a
}

// Selected reports whether the session has an active analysis.
func (s *Session) Selected() bool {
	return s.Analysis != nil && s.Analysis.Recommendation != nil
}

// Context returns the question context for the active selection.
func (s *Session) Context() Context {
	if s.Analysis == nil {
		return Context{}
	}
	return Context{
		Recommendation: s.Analysis.Recommendation,
		Region:         s.Analysis.Region,
		Commodity:      s.Analysis.Commodity,
	}
}

// Recent returns the last HistoryWindow conversation entries.
func (s *Session) Recent() []model.Message {
	return s.Log.Last(HistoryWindow)
}

// SessionStore keeps sessions by id for the lifetime of the process.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it on first use.
func (s *SessionStore) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = NewSession(id)
		s.sessions[id] = sess
	}
	return sess
}

// Len returns the number of sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
