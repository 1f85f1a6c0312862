package handlers

import (
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/Dardva/Bot-for-remind/core/logger"
	tg "github.com/Dardva/Bot-for-remind/core/telegram"
	"github.com/Dardva/Bot-for-remind/core/telegram/commands"
	"github.com/Dardva/Bot-for-remind/core/telegram/format"
	tghelpers "github.com/Dardva/Bot-for-remind/core/telegram/helpers"
	"github.com/Dardva/Bot-for-remind/core/telegram/keyboard"
)

const helpText = `1. /newanimal sends a fresh animal picture.

2. /groups lists your groups: browse, rename, manage members or attach notes.

3. /newgroup creates a group.

4. /notes shows your notes and the shared notes of your groups.

5. /group\_requests shows invitations waiting for you.`

// Register wires every command into the registry.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.cmdStart,
		Description: "Start the bot",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     h.cmdHelp,
		Description: "Command overview",
	})
	reg.RegisterCommand("/newanimal", commands.Command{
		Handler:     h.cmdNewAnimal,
		Description: "Get a new animal picture",
	})
	reg.RegisterCommand("/groups", commands.Command{
		Handler:     h.cmdGroups,
		Description: "Your groups",
	})
	reg.RegisterCommand("/newgroup", commands.Command{
		Handler:     h.cmdNewGroup,
		Description: "Create a group",
	})
	reg.RegisterCommand("/notes", commands.Command{
		Handler:     h.cmdNotes,
		Description: "Your notes",
	})
	reg.RegisterCommand("/group_requests", commands.Command{
		Handler:     h.cmdRequests,
		Description: "Pending invitations",
	})
	reg.RegisterCommand("/sweep", commands.Command{
		Handler:     h.cmdSweep,
		Description: "Purge stale invitations now",
		AdminOnly:   true,
		Hidden:      true,
	})
}

func (h *Handlers) cmdStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	u, created, err := h.svc.Users.Ensure(ctx, sender.ID, sender.Username, sender.FirstName, sender.LastName)
	if err != nil {
		return h.replyErr(c, err)
	}
	if created {
		logger.TG.LogAttrs(ctx, slog.LevelInfo, "user.first_contact",
			slog.Int64("user_id", u.ID),
		)
	}

	name := u.FirstName
	if h.isBoss(sender.ID) {
		name = "Boss"
	}
	if escaped, escErr := format.EscapeMarkdown(name, format.MarkdownV1); escErr == nil {
		name = escaped
	}
	markup := keyboard.ReplyButtons(
		[]string{"/groups", "/notes"},
		[]string{"/newgroup", "/group_requests"},
		[]string{"/newanimal", "/help"},
	)
	greeting := fmt.Sprintf("*%s*! Thanks for switching me on. Look what I found for you.", name)
	if err := tghelpers.SendMD(c, greeting, markup); err != nil {
		return err
	}
	if err := h.sendPicture(c); err != nil {
		return err
	}
	return tghelpers.SendText(c, "Press /help for the command list.")
}

func (h *Handlers) cmdHelp(c tele.Context) error {
	return tghelpers.SendMD(c, helpText)
}

func (h *Handlers) cmdNewAnimal(c tele.Context) error {
	return h.sendPicture(c)
}

func (h *Handlers) cmdGroups(c tele.Context) error {
	return h.renderGroups(c, 1, nil)
}

func (h *Handlers) cmdNewGroup(c tele.Context) error {
	h.fsm.Begin(c.Chat().ID, stateAwaitGroupName, nil)
	return tghelpers.SendText(c, "Send the group name, or 'back'.")
}

func (h *Handlers) cmdNotes(c tele.Context) error {
	return h.renderNotes(c, 1, 0, nil)
}

func (h *Handlers) cmdRequests(c tele.Context) error {
	return h.renderRequests(c, 1, nil)
}

func (h *Handlers) cmdSweep(c tele.Context) error {
	if h.RunSweep == nil {
		return tghelpers.SendText(c, "Sweep is not available.")
	}
	ctx := tghelpers.BuildContext(c)
	n, err := h.RunSweep(ctx)
	if err != nil {
		return h.replyErr(c, err)
	}
	return tghelpers.SendText(c, fmt.Sprintf("Purged %d stale invitations.", n))
}

func (h *Handlers) sendPicture(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	url, err := h.images.RandomURL(ctx)
	if err != nil {
		logger.IMG.LogAttrs(ctx, slog.LevelWarn, "image.unavailable",
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, "The picture box is empty right now, try again later.")
	}
	return tghelpers.SendPhoto(c, &tele.Photo{File: tele.FromURL(url)})
}
