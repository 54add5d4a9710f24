package store

import (
	"fmt"

	"github.com/ykvlv/birthday-bot/internal/domain"
)

// rowScanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanChat reads (chat_id, enabled, hour, minute) and resolves NULL times.
func scanChat(sc rowScanner, defaultHour, defaultMinute int) (domain.ChatSetting, error) {
	var (
		chatID       int64
		enabled      int
		hour, minute *int
	)
	if err := sc.Scan(&chatID, &enabled, &hour, &minute); err != nil {
		return domain.ChatSetting{}, err
	}
	h, m := domain.ResolveClock(hour, minute, defaultHour, defaultMinute)
	return domain.ChatSetting{
		ChatID:  chatID,
		Enabled: enabled != 0,
		Hour:    h,
		Minute:  m,
	}, nil
}

// scanBirthday reads (id, user_id, chat_id, name, date).
func scanBirthday(sc rowScanner) (domain.Birthday, error) {
	var (
		b    domain.Birthday
		date string
	)
	if err := sc.Scan(&b.ID, &b.UserID, &b.ChatID, &b.Name, &date); err != nil {
		return domain.Birthday{}, err
	}
	md, err := domain.ParseStoredDate(date)
	if err != nil {
		return domain.Birthday{}, fmt.Errorf("birthday %d: %w", b.ID, err)
	}
	b.Date = md
	return b, nil
}

// boolToInt converts a boolean to 1/0 for the integer enabled column.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
