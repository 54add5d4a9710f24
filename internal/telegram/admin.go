package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ykvlv/birthday-bot/internal/domain"
)

// AdminChecker asks Telegram whether a user administers a chat.
type AdminChecker struct {
	bot *tgbotapi.BotAPI
	log *zap.Logger
}

func NewAdminChecker(bot *tgbotapi.BotAPI, log *zap.Logger) *AdminChecker {
	return &AdminChecker{bot: bot, log: log}
}

// Check returns AdminUnknown when the administrator list cannot be read.
func (c *AdminChecker) Check(_ context.Context, chatID, userID int64) domain.AdminStatus {
	admins, err := c.bot.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		c.log.Warn("get chat administrators failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return domain.AdminUnknown
	}
	for _, a := range admins {
		if a.User != nil && a.User.ID == userID {
			return domain.AdminYes
		}
	}
	return domain.AdminNo
}
