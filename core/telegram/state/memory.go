package state

import (
	"sync"

	"github.com/Dardva/Bot-for-remind/core/logger"
	tghelpers "github.com/Dardva/Bot-for-remind/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryManager constructs an in-memory Manager implementation.
// Continuations live until consumed or overwritten; nothing expires them.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
	}
}

// Get returns the session for a chat if it exists, otherwise a default idle session.
func (m *memoryManager) Get(chatID int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if session, ok := m.sessions[chatID]; ok {
		return session
	}

	return &Session{State: StateIdle, TempData: make(map[string]interface{})}
}

// Set updates the state for a chat, creating a new session if necessary.
func (m *memoryManager) Set(chatID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[chatID]
	if !ok {
		session = &Session{TempData: make(map[string]interface{})}
		m.sessions[chatID] = session
	}
	session.State = state
}

// Begin registers a continuation with its resumption context, replacing any
// continuation already pending for the chat. Last registration wins; the
// earlier continuation is abandoned silently.
func (m *memoryManager) Begin(chatID int64, st State, data map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := &Session{State: st, TempData: make(map[string]interface{}, len(data))}
	for k, v := range data {
		session.TempData[k] = v
	}
	m.sessions[chatID] = session
}

// End consumes the pending continuation and returns the chat to idle.
func (m *memoryManager) End(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, chatID)
}

// SetTemp stores a temporary key/value pair for the given chat session.
func (m *memoryManager) SetTemp(chatID int64, key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[chatID]
	if !ok {
		session = &Session{TempData: make(map[string]interface{})}
		m.sessions[chatID] = session
	}
	session.TempData[key] = value
}

// GetTemp retrieves a temporary value by key for the given chat session.
func (m *memoryManager) GetTemp(chatID int64, key string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[chatID]
	if !ok {
		return nil, false
	}
	val, ok := session.TempData[key]
	return val, ok
}

// GetTempInt64 retrieves a temporary value by key and asserts it as int64.
func (m *memoryManager) GetTempInt64(chatID int64, key string) (int64, bool) {
	val, found := m.GetTemp(chatID, key)
	if !found {
		return 0, false
	}
	v, ok := val.(int64)
	if !ok {
		return 0, false
	}
	return v, true
}

// ClearTemp removes a temporary key/value pair for the given chat session.
func (m *memoryManager) ClearTemp(chatID int64, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[chatID]
	if ok {
		delete(session.TempData, key)
	}
}

// Clear removes the entire session for a chat.
func (m *memoryManager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, chatID)
}

// SetState sets the FSM state for the given chat.
func (m *memoryManager) SetState(chatID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[chatID]
	if !ok {
		sess = &Session{TempData: make(map[string]interface{})}
		m.sessions[chatID] = sess
	}
	sess.State = st
}

// GetState returns the current FSM state of a chat, or StateIdle if none exists.
func (m *memoryManager) GetState(chatID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[chatID]; ok {
		return sess.State
	}
	return StateIdle
}

// ClearState resets the FSM state to idle for a chat without removing session data.
func (m *memoryManager) ClearState(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[chatID]; ok {
		sess.State = StateIdle
	}
}

// HasState checks if a chat has an active state other than idle.
func (m *memoryManager) HasState(chatID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[chatID]
	return ok && sess.State != StateIdle
}

// InProgress reports whether the chat currently has a pending continuation.
func (m *memoryManager) InProgress(chatID int64) bool {
	return m.HasState(chatID)
}

// ManagerHandler executes the handler function registered for the chat's
// current state, if any. The registered handler is responsible for calling
// End so that the reply is consumed exactly once.
func (m *memoryManager) ManagerHandler(c tele.Context) error {
	chatID := c.Chat().ID
	current := m.GetState(chatID)
	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "tg", "fsm.manager",
		slog.String("status", "ok"),
		slog.Int64("chat_id", chatID),
		slog.String("state", string(current)),
	)

	if handler, ok := fsmHandlers[current]; ok {
		return handler(c)
	}
	return nil
}
