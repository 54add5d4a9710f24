package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ykvlv/birthday-bot/internal/domain"
)

type fakeHolidays []string

func (f fakeHolidays) Today(context.Context, time.Time) []string { return f }

type fakeBirthdays struct {
	byChat map[int64][]domain.Birthday
	err    error
}

func (f fakeBirthdays) TodayForChat(_ context.Context, chatID int64, today time.Time) ([]domain.Birthday, error) {
	if f.err != nil {
		return nil, f.err
	}
	return domain.FilterOn(f.byChat[chatID], today), nil
}

type echoTexts struct{}

func (echoTexts) Text(_ context.Context, mention string) string { return "🎉 С днём рождения, " + mention + "!" }

type message struct {
	chatID int64
	text   string
}

type recordingSender struct {
	sent []message
	err  error
}

func (r *recordingSender) SendHTML(chatID int64, text string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, message{chatID, text})
	return nil
}

func ivan(t *testing.T) domain.Birthday {
	t.Helper()
	d, err := domain.NewMonthDay(time.February, 6)
	require.NoError(t, err)
	return domain.Birthday{ID: 1, UserID: 42, ChatID: 100, Name: "Ivan", Date: d}
}

func TestSendCongrats_BirthdayOnly(t *testing.T) {
	sender := &recordingSender{}
	svc := New(fakeHolidays{}, fakeBirthdays{byChat: map[int64][]domain.Birthday{100: {ivan(t)}}}, echoTexts{}, sender, zap.NewNop())

	res, err := svc.SendCongrats(context.Background(), 100, time.Date(2025, time.February, 6, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, Sent, res)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(100), sender.sent[0].chatID)
	assert.Equal(t,
		"🎂 Дни рождения сегодня:\n🎉 С днём рождения, <a href=\"tg://user?id=42\">Ivan</a>!",
		sender.sent[0].text,
	)
	assert.NotContains(t, sender.sent[0].text, "Праздники")
}

func TestSendCongrats_NothingToSend(t *testing.T) {
	sender := &recordingSender{}
	svc := New(fakeHolidays{}, fakeBirthdays{byChat: map[int64][]domain.Birthday{100: {ivan(t)}}}, echoTexts{}, sender, zap.NewNop())

	res, err := svc.SendCongrats(context.Background(), 100, time.Date(2025, time.February, 7, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, Empty, res)
	assert.Empty(t, sender.sent)
}

func TestSendCongrats_HolidaysAndBirthdays(t *testing.T) {
	sender := &recordingSender{}
	svc := New(
		fakeHolidays{"День А", "День Б"},
		fakeBirthdays{byChat: map[int64][]domain.Birthday{100: {ivan(t)}}},
		echoTexts{}, sender, zap.NewNop(),
	)

	_, err := svc.SendCongrats(context.Background(), 100, time.Date(2030, time.February, 6, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t,
		"🎊 Праздники сегодня:\n• День А\n• День Б\n\n🎂 Дни рождения сегодня:\n🎉 С днём рождения, <a href=\"tg://user?id=42\">Ivan</a>!",
		sender.sent[0].text,
	)
}

func TestSendCongrats_Errors(t *testing.T) {
	storeErr := errors.New("db down")
	svc := New(fakeHolidays{"День"}, fakeBirthdays{err: storeErr}, echoTexts{}, &recordingSender{}, zap.NewNop())
	_, err := svc.SendCongrats(context.Background(), 1, time.Now())
	assert.ErrorIs(t, err, storeErr)

	sendErr := errors.New("forbidden")
	svc = New(fakeHolidays{"День"}, fakeBirthdays{}, echoTexts{}, &recordingSender{err: sendErr}, zap.NewNop())
	_, err = svc.SendCongrats(context.Background(), 1, time.Now())
	assert.ErrorIs(t, err, sendErr)
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "", Compose(nil, nil))
	assert.Equal(t, "🎊 Праздники сегодня:\n• Новый год", Compose([]string{"Новый год"}, nil))
	assert.Equal(t, "🎂 Дни рождения сегодня:\nа\nб", Compose(nil, []string{"а", "б"}))
}
