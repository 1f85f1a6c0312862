// Package handlers binds the Telegram surface to the domain services:
// command entry points, the typed callback dispatcher and the free-text
// conversation continuations.
package handlers

import (
	"context"
	"errors"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/Dardva/Bot-for-remind/bot/images"
	"github.com/Dardva/Bot-for-remind/bot/models"
	"github.com/Dardva/Bot-for-remind/bot/service"
	"github.com/Dardva/Bot-for-remind/bot/storage"
	"github.com/Dardva/Bot-for-remind/core/logger"
	tghelpers "github.com/Dardva/Bot-for-remind/core/telegram/helpers"
	"github.com/Dardva/Bot-for-remind/core/telegram/keyboard"
	"github.com/Dardva/Bot-for-remind/core/telegram/state"
)

// errNoImages stands in for a fetch error when no image client is wired;
// views then go out as plain text with the same keyboard.
var errNoImages = errors.New("images: not configured")

// Handlers owns every user-facing flow. One instance serves the whole bot.
type Handlers struct {
	svc    *service.Services
	fsm    state.Manager
	images *images.Client

	bossIDs map[int64]struct{}

	// RunSweep triggers one join-request purge pass, wired by the app
	// for the admin command.
	RunSweep func(ctx context.Context) (int64, error)
}

// New builds the handler set and registers the continuation states.
func New(svc *service.Services, fsm state.Manager, img *images.Client, bossIDs []int64) *Handlers {
	h := &Handlers{
		svc:     svc,
		fsm:     fsm,
		images:  img,
		bossIDs: make(map[int64]struct{}, len(bossIDs)),
	}
	for _, id := range bossIDs {
		h.bossIDs[id] = struct{}{}
	}
	h.registerContinuations()
	return h
}

func (h *Handlers) isBoss(id int64) bool {
	_, ok := h.bossIDs[id]
	return ok
}

// currentUser resolves the pressing/sending Telegram user to a domain user.
// Flows that reach here always follow /start, so a missing row is a stale
// session and surfaces as NotFound.
func (h *Handlers) currentUser(ctx context.Context, c tele.Context) (models.User, error) {
	sender := c.Sender()
	if sender == nil {
		return models.User{}, storage.ErrNotFound
	}
	return tghelpers.CurrentUser[models.User](ctx, h.svc.Users, sender.ID)
}

// sendView publishes a fresh screen: decorative photo, caption and inline
// keyboard. The previous screen's message is deleted afterwards so each
// chat holds at most one live view; a message that is already gone is not
// an error.
func (h *Handlers) sendView(c tele.Context, caption string, rows [][]keyboard.InlineBtn, prev *tele.Message) error {
	ctx := tghelpers.BuildContext(c)

	var markup *tele.ReplyMarkup
	if len(rows) > 0 {
		markup = keyboard.InlineButtonsRows(rows...)
	}

	var url string
	imgErr := errNoImages
	if h.images != nil {
		url, imgErr = h.images.RandomURL(ctx)
	}

	var err error
	if imgErr == nil {
		photo := &tele.Photo{File: tele.FromURL(url), Caption: caption}
		if markup != nil {
			err = tghelpers.SendPhoto(c, photo, markup)
		} else {
			err = tghelpers.SendPhoto(c, photo)
		}
	} else {
		logger.IMG.LogAttrs(ctx, slog.LevelWarn, "image.unavailable",
			slog.String("err", imgErr.Error()),
		)
		if markup != nil {
			err = tghelpers.SendText(c, caption, &tele.SendOptions{ReplyMarkup: markup})
		} else {
			err = tghelpers.SendText(c, caption)
		}
	}
	if err != nil {
		return err
	}

	if prev != nil {
		if delErr := c.Bot().Delete(prev); delErr != nil {
			logger.TG.LogAttrs(ctx, slog.LevelDebug, "view.delete_previous",
				slog.String("status", "skip"),
				slog.String("err", delErr.Error()),
			)
		}
	}
	return nil
}

// previousView returns the message a callback was pressed on, so the new
// screen can replace it. Command entry points have no previous view.
func previousView(c tele.Context) *tele.Message {
	if c.Callback() != nil {
		return c.Message()
	}
	return nil
}

// notify sends a plain message to another chat. Failures are logged, not
// propagated: the acting user's flow already succeeded.
func (h *Handlers) notify(c tele.Context, chatID int64, text string) {
	if _, err := c.Bot().Send(tele.ChatID(chatID), text); err != nil {
		ctx := tghelpers.BuildContext(c)
		logger.TG.LogAttrs(ctx, slog.LevelWarn, "notify.failed",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
	}
}

// replyErr maps domain errors to polite user messages. Anything unmapped
// is logged and answered generically.
func (h *Handlers) replyErr(c tele.Context, err error) error {
	switch {
	case errors.Is(err, storage.ErrAlreadyExists):
		return tghelpers.SendText(c, "That already exists.")
	case errors.Is(err, storage.ErrNotFound):
		return tghelpers.SendText(c, "Not found. It may have been removed.")
	case errors.Is(err, service.ErrPermissionDenied):
		return tghelpers.SendText(c, "Only the group owner can do that.")
	case errors.Is(err, service.ErrOwnerProtected):
		return tghelpers.SendText(c, "The group owner cannot be removed.")
	case errors.Is(err, service.ErrInvalidInput):
		return tghelpers.SendText(c, "I could not make sense of that, please try again.")
	}
	ctx := tghelpers.BuildContext(c)
	logger.TG.LogAttrs(ctx, slog.LevelError, "handler.error",
		slog.String("err", err.Error()),
	)
	return tghelpers.SendText(c, "Something went wrong, please try again.")
}
