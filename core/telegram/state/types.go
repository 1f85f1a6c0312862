package state

import tele "gopkg.in/telebot.v4"

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no pending continuation for the chat.
	StateIdle State = "idle"
)

// Session stores the pending continuation state and its resumption
// context for a single chat.
type Session struct {
	State    State
	TempData map[string]interface{}
}

// Manager orchestrates per-chat sessions and FSM state transitions.
// A chat is either idle or awaiting exactly one free-text reply; starting
// a new continuation replaces any pending one (last registration wins).
type Manager interface {
	Get(chatID int64) *Session
	Set(chatID int64, state State)
	SetTemp(chatID int64, key string, value interface{})
	ClearTemp(chatID int64, key string)
	GetTemp(chatID int64, key string) (interface{}, bool)
	GetTempInt64(chatID int64, key string) (int64, bool)
	Clear(chatID int64)

	// Begin atomically registers a continuation, replacing state and
	// resumption context of any continuation already pending for the chat.
	Begin(chatID int64, st State, data map[string]interface{})
	// End consumes the pending continuation and returns the chat to idle.
	End(chatID int64)

	// Dialog state
	SetState(chatID int64, st State)
	GetState(chatID int64) State
	HasState(chatID int64) bool
	ClearState(chatID int64)

	InProgress(chatID int64) bool
	ManagerHandler(c tele.Context) error
}
