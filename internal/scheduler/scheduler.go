package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ykvlv/birthday-bot/internal/delivery"
	"github.com/ykvlv/birthday-bot/internal/domain"
	"github.com/ykvlv/birthday-bot/internal/metrics"
	"github.com/ykvlv/birthday-bot/internal/store"
)

// Deliverer sends one chat its daily message.
// delivery.Service implements this.
type Deliverer interface {
	SendCongrats(ctx context.Context, chatID int64, now time.Time) (delivery.Result, error)
}

// Scheduler fires due chats once per minute.
type Scheduler struct {
	chats     store.ChatRepo
	deliverer Deliverer
	log       *zap.Logger

	defaultHour   int
	defaultMinute int
	spec          string
	now           func() time.Time

	// lastMinute is the Unix minute of the last scheduled tick.
	lastMinute atomic.Int64
}

// New creates a Scheduler. spec is a five-field cron expression for the
// tick; chats without their own time fire at defaultHour:defaultMinute.
func New(chats store.ChatRepo, deliverer Deliverer, log *zap.Logger, spec string, defaultHour, defaultMinute int) *Scheduler {
	return &Scheduler{
		chats:         chats,
		deliverer:     deliverer,
		log:           log,
		defaultHour:   defaultHour,
		defaultMinute: defaultMinute,
		spec:          spec,
		now:           time.Now,
	}
}

// Run ticks on the cron schedule until ctx is canceled. A tick still
// running when the next one is due makes that next one skip, and so does
// a second firing within the same wall-clock minute.
func (s *Scheduler) Run(ctx context.Context) error {
	cl := cronLogger{s.log.Sugar()}
	c := cron.New(
		cron.WithLocation(time.Local),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	job := func() {
		now := s.now()
		minute := now.Truncate(time.Minute).Unix()
		if s.lastMinute.Swap(minute) == minute {
			s.log.Debug("tick skipped, minute already handled", zap.Time("now", now))
			return
		}
		s.Tick(ctx, now)
	}
	if _, err := c.AddFunc(s.spec, job); err != nil {
		return fmt.Errorf("schedule %q: %w", s.spec, err)
	}

	c.Start()
	s.log.Info("scheduler started", zap.String("spec", s.spec))

	<-ctx.Done()
	s.log.Info("scheduler stopping")
	<-c.Stop().Done()
	return nil
}

// Tick performs one scheduling cycle: every enabled chat whose time equals
// now's hour and minute gets its message. Chats are handled one by one and
// a failing chat does not stop the rest.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	metrics.Ticks.Inc()
	log := s.log.With(zap.String("tick_id", uuid.NewString()))

	chats, err := s.chats.ListAll(ctx, s.defaultHour, s.defaultMinute)
	if err != nil {
		log.Error("list chats failed", zap.Error(err))
		return
	}

	due := domain.DueChats(chats, now)
	if len(due) == 0 {
		return
	}
	log.Info("tick", zap.Int("chats", len(chats)), zap.Int("due", len(due)), zap.String("clock", domain.FormatClock(now.Hour(), now.Minute())))

	for _, c := range due {
		s.deliver(ctx, log, c.ChatID, now)
	}
}

func (s *Scheduler) deliver(ctx context.Context, log *zap.Logger, chatID int64, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			metrics.Deliveries.WithLabelValues(metrics.ResultFailed).Inc()
			log.Error("delivery panicked", zap.Int64("chat_id", chatID), zap.Any("panic", r))
		}
	}()

	res, err := s.deliverer.SendCongrats(ctx, chatID, now)
	if err != nil {
		metrics.Deliveries.WithLabelValues(metrics.ResultFailed).Inc()
		log.Error("delivery failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	metrics.Deliveries.WithLabelValues(string(res)).Inc()
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct{ s *zap.SugaredLogger }

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
