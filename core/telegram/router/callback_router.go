package router

import (
	"time"

	tg "github.com/Dardva/Bot-for-remind/core/telegram"
	"github.com/Dardva/Bot-for-remind/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// DispatchFunc routes a decoded callback token (verb key plus payload) to the
// application's handler. Unknown verbs must be treated as a no-op, not an error.
type DispatchFunc func(c tele.Context, key, payload string) error

// CallbackOptions customises callback routing.
type CallbackOptions struct {
	Dispatch DispatchFunc
}

// CallbackRoute returns a handler that decodes every inline-button press and
// forwards it to the dispatch function.
func CallbackRoute(opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		key, payload := parseCallback(c.Callback())
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		_ = c.Respond()

		if opts.Dispatch == nil {
			logHandlerSummary(c, name, start, "skip", "ok", nil, extras...)
			return nil
		}

		return handleWithSummary(c, name, start, "", "", func() error {
			return opts.Dispatch(c, key, payload)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
