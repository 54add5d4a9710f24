package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ykvlv/birthday-bot/internal/delivery"
	"github.com/ykvlv/birthday-bot/internal/domain"
)

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.log.Warn("reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// fail logs err and tells the user something went wrong.
func (r *Router) fail(msg *tgbotapi.Message, what string, err error) {
	r.log.Error(what, zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	r.sendText(msg.Chat.ID, internalErrText)
}

// register ensures the chat is in the registry with the default time.
func (r *Router) register(ctx context.Context, chatID int64) error {
	return r.repo.RegisterChat(ctx, chatID, r.defaultHour, r.defaultMinute)
}

// requireAdmin replies with a refusal and returns false unless the sender
// may run admin commands here. Private chats never query Telegram.
func (r *Router) requireAdmin(ctx context.Context, msg *tgbotapi.Message) bool {
	if msg.From == nil {
		return false
	}
	private := msg.Chat.IsPrivate()
	status := domain.AdminUnknown
	if !private {
		status = r.admins.Check(ctx, msg.Chat.ID, msg.From.ID)
	}
	if domain.Authorize(status, private) {
		return true
	}
	r.log.Info("admin command refused",
		zap.Int64("chat_id", msg.Chat.ID),
		zap.Int64("user_id", msg.From.ID),
		zap.Stringer("admin", status),
	)
	r.sendText(msg.Chat.ID, adminsOnlyText)
	return false
}

// argID parses the first command argument as a record id, replying with
// usage or an error when it is missing or malformed.
func (r *Router) argID(msg *tgbotapi.Message, usage string) (int64, bool) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		r.sendText(msg.Chat.ID, usage)
		return 0, false
	}
	id, err := domain.ParseID(args[0])
	if err != nil {
		r.sendText(msg.Chat.ID, badIDText)
		return 0, false
	}
	return id, true
}

// --- Chat registry ---

func (r *Router) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	if err := r.register(ctx, msg.Chat.ID); err != nil {
		r.fail(msg, "register chat failed", err)
		return
	}
	r.sendText(msg.Chat.ID, startText)
}

func (r *Router) handleAdd(ctx context.Context, msg *tgbotapi.Message) {
	exists, err := r.repo.ChatExists(ctx, msg.Chat.ID)
	if err != nil {
		r.fail(msg, "chat exists failed", err)
		return
	}
	if exists {
		r.sendText(msg.Chat.ID, chatAlreadyAddedText)
		return
	}
	if err := r.register(ctx, msg.Chat.ID); err != nil {
		r.fail(msg, "register chat failed", err)
		return
	}
	r.sendText(msg.Chat.ID, fmt.Sprintf(chatAddedFmt, msg.Chat.ID))
}

func (r *Router) handleSetEnabled(ctx context.Context, msg *tgbotapi.Message, enabled bool) {
	if !r.requireAdmin(ctx, msg) {
		return
	}
	if err := r.register(ctx, msg.Chat.ID); err != nil {
		r.fail(msg, "register chat failed", err)
		return
	}
	if err := r.repo.SetEnabled(ctx, msg.Chat.ID, enabled); err != nil {
		r.fail(msg, "set enabled failed", err)
		return
	}
	if enabled {
		r.sendText(msg.Chat.ID, enabledText)
	} else {
		r.sendText(msg.Chat.ID, disabledText)
	}
}

func (r *Router) handleTime(ctx context.Context, msg *tgbotapi.Message) {
	if !r.requireAdmin(ctx, msg) {
		return
	}
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		r.sendText(msg.Chat.ID, timeUsageText)
		return
	}
	hour, minute, err := domain.ParseClock(args[0])
	if err != nil {
		r.sendText(msg.Chat.ID, timeBadText)
		return
	}
	if err := r.register(ctx, msg.Chat.ID); err != nil {
		r.fail(msg, "register chat failed", err)
		return
	}
	if err := r.repo.SetTime(ctx, msg.Chat.ID, hour, minute); err != nil {
		r.fail(msg, "set time failed", err)
		return
	}
	r.sendText(msg.Chat.ID, fmt.Sprintf(timeSetFmt, domain.FormatClock(hour, minute)))
}

func (r *Router) handleStatus(ctx context.Context, msg *tgbotapi.Message) {
	c, ok, err := r.repo.GetChat(ctx, msg.Chat.ID, r.defaultHour, r.defaultMinute)
	if err != nil {
		r.fail(msg, "get chat failed", err)
		return
	}
	if !ok {
		r.sendText(msg.Chat.ID, notRegistered)
		return
	}
	r.sendText(msg.Chat.ID, formatStatus(c))
}

// --- Birthdays ---

func (r *Router) handleBday(ctx context.Context, msg *tgbotapi.Message) {
	if err := r.register(ctx, msg.Chat.ID); err != nil {
		r.fail(msg, "register chat failed", err)
		return
	}

	args := strings.Fields(msg.CommandArguments())
	if len(args) < 2 {
		r.sendText(msg.Chat.ID, bdayUsageText)
		return
	}
	date, err := domain.ParseDayMonth(args[0])
	if err != nil {
		r.sendText(msg.Chat.ID, bdayBadDateText)
		return
	}
	if msg.From == nil {
		return
	}
	name := strings.Join(args[1:], " ")

	id, err := r.repo.AddBirthday(ctx, msg.From.ID, msg.Chat.ID, name, date)
	if err != nil {
		r.fail(msg, "add birthday failed", err)
		return
	}
	r.log.Info("birthday added",
		zap.Int64("chat_id", msg.Chat.ID),
		zap.Int64("user_id", msg.From.ID),
		zap.Int64("id", id),
	)
	r.sendText(msg.Chat.ID, fmt.Sprintf(bdaySavedFmt, name, args[0]))
}

func (r *Router) handleListMine(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	list, err := r.repo.ListForUser(ctx, msg.Chat.ID, msg.From.ID)
	if err != nil {
		r.fail(msg, "list user birthdays failed", err)
		return
	}
	if len(list) == 0 {
		r.sendText(msg.Chat.ID, noMineText)
		return
	}
	r.sendText(msg.Chat.ID, formatMine(list))
}

func (r *Router) handleDeleteMine(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	id, ok := r.argID(msg, delMineUsageText)
	if !ok {
		return
	}
	deleted, err := r.repo.DeleteUserBirthday(ctx, msg.Chat.ID, msg.From.ID, id)
	if err != nil {
		r.fail(msg, "delete user birthday failed", err)
		return
	}
	if !deleted {
		r.sendText(msg.Chat.ID, notMineText)
		return
	}
	r.sendText(msg.Chat.ID, fmt.Sprintf(deletedMineFmt, id))
}

func (r *Router) handleListAll(ctx context.Context, msg *tgbotapi.Message) {
	if !r.requireAdmin(ctx, msg) {
		return
	}
	list, err := r.repo.ListForChat(ctx, msg.Chat.ID)
	if err != nil {
		r.fail(msg, "list chat birthdays failed", err)
		return
	}
	if len(list) == 0 {
		r.sendText(msg.Chat.ID, noneInChatText)
		return
	}
	r.sendText(msg.Chat.ID, formatChat(list))
}

func (r *Router) handleDeleteAny(ctx context.Context, msg *tgbotapi.Message) {
	if !r.requireAdmin(ctx, msg) {
		return
	}
	id, ok := r.argID(msg, delAnyUsageText)
	if !ok {
		return
	}
	deleted, err := r.repo.DeleteBirthday(ctx, msg.Chat.ID, id)
	if err != nil {
		r.fail(msg, "delete birthday failed", err)
		return
	}
	if !deleted {
		r.sendText(msg.Chat.ID, notInChatText)
		return
	}
	r.sendText(msg.Chat.ID, fmt.Sprintf(deletedAnyFmt, id))
}

// --- Diagnostics ---

func (r *Router) handleDebugHolidays(ctx context.Context, msg *tgbotapi.Message) {
	holidays := r.holidays.Today(ctx, r.now())
	if len(holidays) == 0 {
		r.sendText(msg.Chat.ID, noHolidaysText)
		return
	}
	r.sendText(msg.Chat.ID, holidaysHeader+delivery.Bullets(holidays))
}
