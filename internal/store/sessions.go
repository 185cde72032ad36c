package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oguzkopan/teletext-sub000/internal/model/session"
)

// Absolute TTLs per session kind. Expiry is fixed at creation and never
// extended by continued use.
const (
	ConversationTTL = 24 * time.Hour
	QuizTTL         = time.Hour
	StoryTTL        = time.Hour
)

// Sessions is the typed facade over the TTL stores for the three session
// kinds. A load of an expired or unknown session reports absent, never an
// error: callers start fresh in both cases.
type Sessions struct {
	now           func() time.Time
	conversations *TTL[session.AIConversation]
	quizzes       *TTL[session.QuizSession]
	stories       *TTL[session.StorySession]
}

// NewSessions creates the session stores on the wall clock.
func NewSessions() *Sessions {
	return NewSessionsClock(time.Now)
}

// NewSessionsClock creates the session stores on a caller-supplied clock.
func NewSessionsClock(now func() time.Time) *Sessions {
	return &Sessions{
		now:           now,
		conversations: NewTTLClock[session.AIConversation](now),
		quizzes:       NewTTLClock[session.QuizSession](now),
		stories:       NewTTLClock[session.StorySession](now),
	}
}

// StartSweepers periodically evicts expired sessions of every kind
// until ctx is cancelled. Correctness never depends on it; reads
// already treat expired entries as absent.
func (s *Sessions) StartSweepers(ctx context.Context, interval time.Duration) {
	s.conversations.StartSweeper(ctx, interval)
	s.quizzes.StartSweeper(ctx, interval)
	s.stories.StartSweeper(ctx, interval)
}

// CreateConversation provisions a conversation with a fresh context ID.
func (s *Sessions) CreateConversation(mode string, params map[string]string) session.AIConversation {
	now := s.now().UTC()
	conv := session.AIConversation{
		ContextID:      uuid.NewString(),
		Mode:           mode,
		Parameters:     params,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	s.conversations.Put(conv.ContextID, conv, ConversationTTL)
	return conv
}

// LoadConversation fetches a live conversation and refreshes its
// LastAccessedAt stamp. The expiry deadline is not moved.
func (s *Sessions) LoadConversation(contextID string) (session.AIConversation, bool) {
	conv, ok := s.conversations.Get(contextID)
	if !ok {
		return session.AIConversation{}, false
	}
	conv.LastAccessedAt = s.now().UTC()
	s.saveConversation(conv)
	return conv, true
}

// SaveConversation persists conv, keeping the deadline fixed at
// CreatedAt + 24h.
func (s *Sessions) SaveConversation(conv session.AIConversation) {
	s.saveConversation(conv)
}

func (s *Sessions) saveConversation(conv session.AIConversation) {
	if deadline, ok := s.conversations.Expiry(conv.ContextID); ok {
		s.conversations.PutUntil(conv.ContextID, conv, deadline)
		return
	}
	s.conversations.PutUntil(conv.ContextID, conv, conv.CreatedAt.Add(ConversationTTL))
}

// DeleteConversation removes a conversation. Deleting an unknown context
// is a no-op.
func (s *Sessions) DeleteConversation(contextID string) {
	s.conversations.Delete(contextID)
}

// CreateQuiz provisions a quiz session over the given question list.
func (s *Sessions) CreateQuiz(questions []session.Question) session.QuizSession {
	quiz := session.QuizSession{
		SessionID: uuid.NewString(),
		Questions: questions,
	}
	s.quizzes.Put(quiz.SessionID, quiz, QuizTTL)
	return quiz
}

// LoadQuiz fetches a live quiz session.
func (s *Sessions) LoadQuiz(sessionID string) (session.QuizSession, bool) {
	return s.quizzes.Get(sessionID)
}

// SaveQuiz persists quiz without extending its original deadline.
func (s *Sessions) SaveQuiz(quiz session.QuizSession) {
	if deadline, ok := s.quizzes.Expiry(quiz.SessionID); ok {
		s.quizzes.PutUntil(quiz.SessionID, quiz, deadline)
		return
	}
	s.quizzes.Put(quiz.SessionID, quiz, QuizTTL)
}

// CreateStory provisions a story session positioned at startNode.
func (s *Sessions) CreateStory(startNode string) session.StorySession {
	story := session.StorySession{
		SessionID:     uuid.NewString(),
		CurrentNodeID: startNode,
		VisitedPath:   []string{startNode},
		Choices:       make(map[string]int),
	}
	s.stories.Put(story.SessionID, story, StoryTTL)
	return story
}

// LoadStory fetches a live story session.
func (s *Sessions) LoadStory(sessionID string) (session.StorySession, bool) {
	return s.stories.Get(sessionID)
}

// SaveStory persists story without extending its original deadline.
func (s *Sessions) SaveStory(story session.StorySession) {
	if deadline, ok := s.stories.Expiry(story.SessionID); ok {
		s.stories.PutUntil(story.SessionID, story, deadline)
		return
	}
	s.stories.Put(story.SessionID, story, StoryTTL)
}
