package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ykvlv/birthday-bot/internal/delivery"
	"github.com/ykvlv/birthday-bot/internal/domain"
)

type fakeChats struct {
	chats []domain.ChatSetting
	err   error
}

func (f *fakeChats) RegisterChat(context.Context, int64, int, int) error { return nil }
func (f *fakeChats) ChatExists(context.Context, int64) (bool, error) { return false, nil }
func (f *fakeChats) GetChat(context.Context, int64, int, int) (domain.ChatSetting, bool, error) {
	return domain.ChatSetting{}, false, nil
}
func (f *fakeChats) SetEnabled(context.Context, int64, bool) error { return nil }
func (f *fakeChats) SetTime(context.Context, int64, int, int) error { return nil }
func (f *fakeChats) ListAll(context.Context, int, int) ([]domain.ChatSetting, error) {
	return f.chats, f.err
}

type fakeDeliverer struct {
	mu    sync.Mutex
	calls []int64
	fail  map[int64]error
	panic map[int64]bool
}

func (f *fakeDeliverer) SendCongrats(_ context.Context, chatID int64, _ time.Time) (delivery.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, chatID)
	f.mu.Unlock()
	if f.panic[chatID] {
		panic("boom")
	}
	if err := f.fail[chatID]; err != nil {
		return "", err
	}
	return delivery.Sent, nil
}

func (f *fakeDeliverer) called() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.calls...)
}

func at(hour, minute, second int) time.Time {
	return time.Date(2025, time.February, 6, hour, minute, second, 0, time.Local)
}

func TestTick_ExactMinuteOnly(t *testing.T) {
	chats := &fakeChats{chats: []domain.ChatSetting{
		{ChatID: 1, Enabled: true, Hour: 9, Minute: 0},
	}}
	d := &fakeDeliverer{}
	s := New(chats, d, zap.NewNop(), "* * * * *", 9, 0)

	s.Tick(context.Background(), at(9, 0, 42))
	assert.Equal(t, []int64{1}, d.called())

	s.Tick(context.Background(), at(9, 1, 0))
	s.Tick(context.Background(), at(8, 59, 59))
	s.Tick(context.Background(), at(21, 0, 0))
	assert.Equal(t, []int64{1}, d.called(), "only 09:00 fires")
}

func TestTick_DisabledNeverSends(t *testing.T) {
	chats := &fakeChats{chats: []domain.ChatSetting{
		{ChatID: 1, Enabled: false, Hour: 9, Minute: 0},
	}}
	d := &fakeDeliverer{}
	s := New(chats, d, zap.NewNop(), "* * * * *", 9, 0)

	s.Tick(context.Background(), at(9, 0, 0))
	assert.Empty(t, d.called())
}

func TestTick_FailureIsolatedPerChat(t *testing.T) {
	chats := &fakeChats{chats: []domain.ChatSetting{
		{ChatID: 1, Enabled: true, Hour: 9, Minute: 0},
		{ChatID: 2, Enabled: true, Hour: 9, Minute: 0},
		{ChatID: 3, Enabled: true, Hour: 9, Minute: 0},
	}}
	d := &fakeDeliverer{
		fail:  map[int64]error{1: errors.New("blocked by user")},
		panic: map[int64]bool{2: true},
	}
	s := New(chats, d, zap.NewNop(), "* * * * *", 9, 0)

	require.NotPanics(t, func() { s.Tick(context.Background(), at(9, 0, 0)) })
	assert.Equal(t, []int64{1, 2, 3}, d.called())
}

func TestTick_ListFailureEndsTick(t *testing.T) {
	d := &fakeDeliverer{}
	s := New(&fakeChats{err: errors.New("db locked")}, d, zap.NewNop(), "* * * * *", 9, 0)

	s.Tick(context.Background(), at(9, 0, 0))
	assert.Empty(t, d.called())
}

func TestTick_LogsTickID(t *testing.T) {
	chats := &fakeChats{chats: []domain.ChatSetting{
		{ChatID: 1, Enabled: true, Hour: 9, Minute: 0},
	}}
	d := &fakeDeliverer{fail: map[int64]error{1: errors.New("blocked by user")}}
	core, logs := observer.New(zap.DebugLevel)
	s := New(chats, d, zap.New(core), "* * * * *", 9, 0)

	s.Tick(context.Background(), at(9, 0, 0))

	ticks := logs.FilterMessage("tick").All()
	failed := logs.FilterMessage("delivery failed").All()
	require.Len(t, ticks, 1)
	require.Len(t, failed, 1)

	id := ticks[0].ContextMap()["tick_id"]
	require.NotEmpty(t, id)
	assert.Equal(t, id, failed[0].ContextMap()["tick_id"])
	assert.Equal(t, int64(1), failed[0].ContextMap()["chat_id"])

	s.Tick(context.Background(), at(9, 0, 30))
	ticks = logs.FilterMessage("tick").All()
	require.Len(t, ticks, 2)
	assert.NotEqual(t, id, ticks[1].ContextMap()["tick_id"], "each tick gets its own id")
}

func TestRun_InvalidSpec(t *testing.T) {
	s := New(&fakeChats{}, &fakeDeliverer{}, zap.NewNop(), "not a spec", 9, 0)
	assert.Error(t, s.Run(context.Background()))
}

func TestRun_FiresAndStops(t *testing.T) {
	now := time.Now()
	chats := &fakeChats{chats: []domain.ChatSetting{
		{ChatID: 7, Enabled: true, Hour: now.Hour(), Minute: now.Minute()},
	}}
	d := &fakeDeliverer{}
	s := New(chats, d, zap.NewNop(), "@every 1s", 9, 0)
	s.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return len(d.called()) > 0 }, 3*time.Second, 50*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_OncePerMinute(t *testing.T) {
	now := time.Now()
	chats := &fakeChats{chats: []domain.ChatSetting{
		{ChatID: 7, Enabled: true, Hour: now.Hour(), Minute: now.Minute()},
	}}
	d := &fakeDeliverer{}
	s := New(chats, d, zap.NewNop(), "@every 1s", 9, 0)
	s.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return len(d.called()) > 0 }, 3*time.Second, 50*time.Millisecond)
	time.Sleep(2500 * time.Millisecond) // two more firings within the same minute
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, []int64{7}, d.called())
}
