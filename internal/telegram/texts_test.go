package telegram

import (
	"testing"
	"time"

	"github.com/ykvlv/birthday-bot/internal/domain"
)

func TestFormatLists(t *testing.T) {
	feb6, _ := domain.NewMonthDay(time.February, 6)
	dec31, _ := domain.NewMonthDay(time.December, 31)
	list := []domain.Birthday{
		{ID: 3, UserID: 10, Name: "Иван", Date: feb6},
		{ID: 5, UserID: 11, Name: "Ольга", Date: dec31},
	}

	if got, want := formatMine(list), "Твои дни рождения в этом чате:\n3: 06.02 — Иван\n5: 31.12 — Ольга"; got != want {
		t.Fatalf("formatMine = %q, want %q", got, want)
	}
	if got, want := formatChat(list), "Список дней рождения:\n3: 06.02 — Иван (user_id=10)\n5: 31.12 — Ольга (user_id=11)"; got != want {
		t.Fatalf("formatChat = %q, want %q", got, want)
	}
}

func TestFormatStatus(t *testing.T) {
	got := formatStatus(domain.ChatSetting{ChatID: 1, Enabled: false, Hour: 9, Minute: 5})
	if want := "Ежедневные поздравления: отключены\nВремя: 09:05"; got != want {
		t.Fatalf("formatStatus = %q, want %q", got, want)
	}
}
