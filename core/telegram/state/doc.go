// Package state provides a lightweight per-chat FSM/session manager for
// Telegram bots. A chat is Idle or AwaitingReply with a resumption context;
// the next inbound text message resolves the pending continuation.
package state
