package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ykvlv/birthday-bot/internal/store"
)

// HolidayLookup returns today's holidays; it never fails.
type HolidayLookup interface {
	Today(ctx context.Context, now time.Time) []string
}

// Router wires Telegram updates to command handlers.
type Router struct {
	bot      *tgbotapi.BotAPI
	log      *zap.Logger
	repo     store.Repo
	holidays HolidayLookup
	admins   *AdminChecker

	defaultHour   int
	defaultMinute int
	now           func() time.Time
}

// NewRouter creates a new Telegram router. Chats registered by commands get
// defaultHour:defaultMinute as their fire time.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo, holidays HolidayLookup, defaultHour, defaultMinute int) *Router {
	return &Router{
		bot:           bot,
		log:           log,
		repo:          repo,
		holidays:      holidays,
		admins:        NewAdminChecker(bot, log),
		defaultHour:   defaultHour,
		defaultMinute: defaultMinute,
		now:           time.Now,
	}
}

// HandleUpdate routes a single update to appropriate handler.
// Anything other than a bot command is ignored.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}

	switch msg.Command() {
	case "start":
		r.handleStart(ctx, msg)
	case "add":
		r.handleAdd(ctx, msg)
	case "bday":
		r.handleBday(ctx, msg)
	case "list_my_bdays":
		r.handleListMine(ctx, msg)
	case "del_my_bday":
		r.handleDeleteMine(ctx, msg)
	case "list_bdays":
		r.handleListAll(ctx, msg)
	case "del_bday":
		r.handleDeleteAny(ctx, msg)
	case "enable":
		r.handleSetEnabled(ctx, msg, true)
	case "disable":
		r.handleSetEnabled(ctx, msg, false)
	case "time":
		r.handleTime(ctx, msg)
	case "status":
		r.handleStatus(ctx, msg)
	case "debug_holidays":
		r.handleDebugHolidays(ctx, msg)
	default:
		// Commands meant for other bots in the group.
	}
}

// SendHTML sends an HTML message with link previews disabled.
// This makes Router satisfy delivery.Sender.
func (r *Router) SendHTML(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := r.bot.Send(msg)
	return err
}

// SetCommands publishes the command menu shown by Telegram clients.
func (r *Router) SetCommands() error {
	cmds := make([]tgbotapi.BotCommand, 0, len(commandMenu))
	for _, c := range commandMenu {
		cmds = append(cmds, tgbotapi.BotCommand{Command: c.command, Description: c.description})
	}
	_, err := r.bot.Request(tgbotapi.NewSetMyCommands(cmds...))
	return err
}
