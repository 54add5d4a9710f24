package store

import (
	"context"
	"time"

	"github.com/ykvlv/birthday-bot/internal/domain"
)

// ChatRepo is the chat registry: which chats receive the daily message and when.
type ChatRepo interface {
	// RegisterChat inserts the chat with the given fire time; no-op if it exists.
	RegisterChat(ctx context.Context, chatID int64, defaultHour, defaultMinute int) error
	ChatExists(ctx context.Context, chatID int64) (bool, error)
	// GetChat returns the chat's resolved settings; ok is false if it is not registered.
	GetChat(ctx context.Context, chatID int64, defaultHour, defaultMinute int) (c domain.ChatSetting, ok bool, err error)
	SetEnabled(ctx context.Context, chatID int64, enabled bool) error
	SetTime(ctx context.Context, chatID int64, hour, minute int) error
	// ListAll returns every chat, resolving unset hour/minute to the defaults.
	ListAll(ctx context.Context, defaultHour, defaultMinute int) ([]domain.ChatSetting, error)
}

// BirthdayRepo stores chat-scoped birthdays.
type BirthdayRepo interface {
	AddBirthday(ctx context.Context, userID, chatID int64, name string, date domain.MonthDay) (int64, error)
	ListForChat(ctx context.Context, chatID int64) ([]domain.Birthday, error)
	ListForUser(ctx context.Context, chatID, userID int64) ([]domain.Birthday, error)
	// TodayForChat returns the chat's birthdays whose month-day equals today's.
	TodayForChat(ctx context.Context, chatID int64, today time.Time) ([]domain.Birthday, error)
	// DeleteBirthday removes a record anywhere in the chat.
	DeleteBirthday(ctx context.Context, chatID, id int64) (bool, error)
	// DeleteUserBirthday removes a record only if userID owns it.
	DeleteUserBirthday(ctx context.Context, chatID, userID, id int64) (bool, error)
}

// Repo is the full storage contract.
type Repo interface {
	ChatRepo
	BirthdayRepo
	Close() error
}
