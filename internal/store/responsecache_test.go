package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/model/session"
)

func turns(texts ...string) []session.Turn {
	out := make([]session.Turn, 0, len(texts))
	role := session.RoleUser
	for _, text := range texts {
		out = append(out, session.Turn{Role: role, Text: text})
		if role == session.RoleUser {
			role = session.RoleModel
		} else {
			role = session.RoleUser
		}
	}
	return out
}

func TestResponseCacheRoundTrip(t *testing.T) {
	c := NewResponseCache()
	history := turns("hi", "hello")

	_, ok := c.Lookup("tell me a story", history)
	require.False(t, ok)

	c.Store("tell me a story", history, "once upon a time")
	got, ok := c.Lookup("tell me a story", history)
	require.True(t, ok)
	require.Equal(t, "once upon a time", got)
}

func TestResponseCacheExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewResponseCacheClock(clock.Now)

	c.Store("prompt", nil, "text")
	clock.Advance(ResponseTTL + time.Second)

	_, ok := c.Lookup("prompt", nil)
	require.False(t, ok)
}

func TestResponseKeyIgnoresOldHistory(t *testing.T) {
	long := turns("a", "b", "c", "d", "e", "f", "g", "h")
	last5 := long[len(long)-5:]
	require.Equal(t, ResponseKey("p", long), ResponseKey("p", last5),
		"only the last five turns participate in the key")

	require.NotEqual(t, ResponseKey("p", long), ResponseKey("p", long[:5]))
	require.NotEqual(t, ResponseKey("p", nil), ResponseKey("q", nil))
}

func TestResponseKeyRoleSensitive(t *testing.T) {
	a := []session.Turn{{Role: session.RoleUser, Text: "x"}}
	b := []session.Turn{{Role: session.RoleModel, Text: "x"}}
	require.NotEqual(t, ResponseKey("p", a), ResponseKey("p", b))
}

func pageFixture(id string) page.GridPage {
	return page.NewBuilder(id, "TEST").Row("content").Build()
}

func TestPageCacheAccessCount(t *testing.T) {
	c := NewPageCache()
	c.Put(pageFixture("100"))

	for i := 0; i < 3; i++ {
		_, ok := c.Get("100")
		require.True(t, ok)
	}
	require.Equal(t, 3, c.AccessCount("100"))
}

func TestPageCacheExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewPageCacheClock(clock.Now)

	c.Put(pageFixture("201"))
	clock.Advance(PageTTL + time.Second)
	_, ok := c.Get("201")
	require.False(t, ok)
}
