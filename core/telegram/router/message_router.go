package router

import (
	"time"

	tg "github.com/Dardva/Bot-for-remind/core/telegram"
	"github.com/Dardva/Bot-for-remind/core/telegram/middleware"
	"github.com/Dardva/Bot-for-remind/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// FSM defines the minimal interface for the continuation manager.
type FSM interface {
	InProgress(chatID int64) bool
	ManagerHandler(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoute builds the handler for inbound free-text messages. A pending
// continuation for the chat consumes the message first; otherwise the text
// is matched against registered commands, then the fallback.
func TextRoute(fsmMgr FSM, reg *tg.Registry, opts TextOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if fsmMgr != nil && c.Chat() != nil && continuationPending(c, fsmMgr) {
			return handleWithSummary(c, "fsm", start, "", "", func() error {
				return fsmMgr.ManagerHandler(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}

// continuationPending prefers the session injected by state.WithSession and
// falls back to asking the manager when the middleware is not installed.
func continuationPending(c tele.Context, fsmMgr FSM) bool {
	if s, ok := state.SessionFrom(c); ok {
		return s.State != state.StateIdle
	}
	return fsmMgr.InProgress(c.Chat().ID)
}
