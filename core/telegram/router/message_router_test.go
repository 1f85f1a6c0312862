package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/Dardva/Bot-for-remind/core/telegram/state"
)

type sessionCtx struct {
	tele.Context
	chat   *tele.Chat
	values map[string]interface{}
}

func (s *sessionCtx) Chat() *tele.Chat { return s.chat }
func (s *sessionCtx) Get(key string) interface{} {
	return s.values[key]
}
func (s *sessionCtx) Set(key string, v interface{}) {
	s.values[key] = v
}

type stubFSM struct{ pending bool }

func (s *stubFSM) InProgress(int64) bool             { return s.pending }
func (s *stubFSM) ManagerHandler(tele.Context) error { return nil }

func TestContinuationPendingPrefersInjectedSession(t *testing.T) {
	mgr := state.NewMemoryManager()
	mgr.Begin(1, "await_reply", nil)

	c := &sessionCtx{chat: &tele.Chat{ID: 1}, values: map[string]interface{}{}}

	var got bool
	wrapped := state.WithSession(mgr)(func(c tele.Context) error {
		// The stub disagrees with the session; the injected session wins.
		got = continuationPending(c, &stubFSM{pending: false})
		return nil
	})
	require.NoError(t, wrapped(c))
	assert.True(t, got)
}

func TestContinuationPendingFallsBackToManager(t *testing.T) {
	c := &sessionCtx{chat: &tele.Chat{ID: 1}, values: map[string]interface{}{}}

	assert.True(t, continuationPending(c, &stubFSM{pending: true}))
	assert.False(t, continuationPending(c, &stubFSM{pending: false}))
}
