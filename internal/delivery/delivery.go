// Package delivery builds and sends one chat's daily congratulation message.
package delivery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/birthday-bot/internal/domain"
)

// Result is the outcome of one delivery.
type Result string

const (
	Sent  Result = "sent"
	Empty Result = "empty"
)

// Holidays supplies today's holiday names and never fails.
type Holidays interface {
	Today(ctx context.Context, now time.Time) []string
}

// Birthdays supplies the chat's birthdays on a given day.
type Birthdays interface {
	TodayForChat(ctx context.Context, chatID int64, today time.Time) ([]domain.Birthday, error)
}

// Texts writes one congratulation per mention and never fails.
type Texts interface {
	Text(ctx context.Context, mention string) string
}

// Sender delivers an HTML message to a chat.
type Sender interface {
	SendHTML(chatID int64, text string) error
}

// Service assembles and sends daily messages.
type Service struct {
	holidays  Holidays
	birthdays Birthdays
	texts     Texts
	sender    Sender
	log       *zap.Logger
}

func New(h Holidays, b Birthdays, t Texts, s Sender, log *zap.Logger) *Service {
	return &Service{holidays: h, birthdays: b, texts: t, sender: s, log: log}
}

// SendCongrats sends chatID at most one message for the day of now.
// Nothing is sent when there are neither holidays nor birthdays.
func (s *Service) SendCongrats(ctx context.Context, chatID int64, now time.Time) (Result, error) {
	holidays := s.holidays.Today(ctx, now)

	birthdays, err := s.birthdays.TodayForChat(ctx, chatID, now)
	if err != nil {
		return "", fmt.Errorf("birthdays for chat %d: %w", chatID, err)
	}

	lines := make([]string, 0, len(birthdays))
	for _, b := range birthdays {
		lines = append(lines, s.texts.Text(ctx, b.Mention()))
	}

	text := Compose(holidays, lines)
	if text == "" {
		s.log.Debug("nothing to send", zap.Int64("chat_id", chatID))
		return Empty, nil
	}

	if err := s.sender.SendHTML(chatID, text); err != nil {
		return "", fmt.Errorf("send to chat %d: %w", chatID, err)
	}
	s.log.Info("congratulations sent",
		zap.Int64("chat_id", chatID),
		zap.Int("holidays", len(holidays)),
		zap.Int("birthdays", len(lines)),
	)
	return Sent, nil
}

// Compose renders the holiday and birthday sections, separated by a blank
// line. Empty sections are omitted; both empty yields "".
func Compose(holidays, birthdayLines []string) string {
	var sections []string

	if len(holidays) > 0 {
		sections = append(sections, "🎊 Праздники сегодня:\n"+Bullets(holidays))
	}

	if len(birthdayLines) > 0 {
		sections = append(sections, "🎂 Дни рождения сегодня:\n"+strings.Join(birthdayLines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

// Bullets renders one "• item" line per item.
func Bullets(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "• " + it
	}
	return strings.Join(lines, "\n")
}
