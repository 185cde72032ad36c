package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oguzkopan/teletext-sub000/internal/model/session"
)

// fakeClock is a settable clock for expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTTLGetBeforeExpiry(t *testing.T) {
	clock := newFakeClock()
	s := NewTTLClock[string](clock.Now)

	s.Put("k", "v", time.Second)
	clock.Advance(900 * time.Millisecond)

	got, ok := s.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", got)
}

func TestTTLGetAfterExpiry(t *testing.T) {
	clock := newFakeClock()
	s := NewTTLClock[string](clock.Now)

	s.Put("k", "v", time.Second)
	clock.Advance(1100 * time.Millisecond)

	_, ok := s.Get("k")
	require.False(t, ok)
	require.Zero(t, s.Len(), "expired entry must be reclaimed on read")
}

func TestTTLPutResetsExpiry(t *testing.T) {
	clock := newFakeClock()
	s := NewTTLClock[string](clock.Now)

	s.Put("k", "v1", time.Second)
	clock.Advance(800 * time.Millisecond)
	s.Put("k", "v2", time.Second)
	clock.Advance(800 * time.Millisecond)

	got, ok := s.Get("k")
	require.True(t, ok)
	require.Equal(t, "v2", got)
}

func TestTTLGetDoesNotRefresh(t *testing.T) {
	clock := newFakeClock()
	s := NewTTLClock[string](clock.Now)

	s.Put("k", "v", time.Second)
	clock.Advance(900 * time.Millisecond)
	_, ok := s.Get("k")
	require.True(t, ok)

	clock.Advance(200 * time.Millisecond)
	_, ok = s.Get("k")
	require.False(t, ok, "reads must not slide the deadline")
}

func TestTTLDelete(t *testing.T) {
	s := NewTTL[int]()
	s.Put("k", 7, time.Minute)
	s.Delete("k")
	_, ok := s.Get("k")
	require.False(t, ok)
}

func TestTTLSweep(t *testing.T) {
	clock := newFakeClock()
	s := NewTTLClock[int](clock.Now)

	s.Put("old", 1, time.Second)
	s.Put("new", 2, time.Hour)
	clock.Advance(2 * time.Second)
	s.Sweep()

	require.Equal(t, 1, s.Len())
	_, ok := s.Get("new")
	require.True(t, ok)
}

func TestSessionExpiryTransparency(t *testing.T) {
	clock := newFakeClock()
	sessions := NewSessionsClock(clock.Now)

	quiz := sessions.CreateQuiz([]session.Question{{Prompt: "q", Options: []string{"a", "b"}, Answer: 0}})
	clock.Advance(QuizTTL + time.Minute)

	_, ok := sessions.LoadQuiz(quiz.SessionID)
	require.False(t, ok, "expired load must look like never created")

	fresh := sessions.CreateQuiz(quiz.Questions)
	require.NotEqual(t, quiz.SessionID, fresh.SessionID)
	loaded, ok := sessions.LoadQuiz(fresh.SessionID)
	require.True(t, ok)
	require.Zero(t, loaded.CurrentIndex)
}

func TestConversationDeadlineIsAbsolute(t *testing.T) {
	clock := newFakeClock()
	sessions := NewSessionsClock(clock.Now)

	conv := sessions.CreateConversation("chat", nil)

	// Keep touching the conversation; the 24h deadline must not move.
	for i := 0; i < 23; i++ {
		clock.Advance(time.Hour)
		loaded, ok := sessions.LoadConversation(conv.ContextID)
		require.True(t, ok)
		conv = loaded
	}
	clock.Advance(2 * time.Hour)
	_, ok := sessions.LoadConversation(conv.ContextID)
	require.False(t, ok)
}

func TestLoadConversationRefreshesLastAccessed(t *testing.T) {
	clock := newFakeClock()
	sessions := NewSessionsClock(clock.Now)

	conv := sessions.CreateConversation("chat", map[string]string{"theme": "space"})
	created := conv.LastAccessedAt
	clock.Advance(10 * time.Minute)

	loaded, ok := sessions.LoadConversation(conv.ContextID)
	require.True(t, ok)
	require.True(t, loaded.LastAccessedAt.After(created))
	require.Equal(t, "space", loaded.Parameters["theme"])
}

func TestSaveConversationKeepsHistory(t *testing.T) {
	sessions := NewSessions()
	conv := sessions.CreateConversation("question", nil)

	conv.History = append(conv.History,
		session.Turn{Role: session.RoleUser, Text: "hello"},
		session.Turn{Role: session.RoleModel, Text: "hi", PageID: "516-1"},
	)
	sessions.SaveConversation(conv)

	loaded, ok := sessions.LoadConversation(conv.ContextID)
	require.True(t, ok)
	require.Len(t, loaded.History, 2)
	require.Equal(t, session.RoleModel, loaded.History[1].Role)
}

func TestDeleteConversation(t *testing.T) {
	sessions := NewSessions()
	conv := sessions.CreateConversation("chat", nil)

	sessions.DeleteConversation(conv.ContextID)
	_, ok := sessions.LoadConversation(conv.ContextID)
	require.False(t, ok)

	// Unknown context is a no-op.
	sessions.DeleteConversation("missing")
}
