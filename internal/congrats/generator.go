// Package congrats produces birthday congratulation lines, optionally
// written by a remote language model.
package congrats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ykvlv/birthday-bot/internal/config"
	"github.com/ykvlv/birthday-bot/internal/metrics"
)

// ErrEmptyCompletion is returned by a Remote whose answer has no text.
var ErrEmptyCompletion = errors.New("congrats: empty completion")

// Remote generates a congratulation for an HTML mention.
type Remote interface {
	Generate(ctx context.Context, mention string) (string, error)
}

// Generator turns a Remote into a source of text that never fails.
type Generator struct {
	remote Remote
	log    *zap.Logger
}

// NewGenerator wraps remote. A nil remote means every call uses Fallback.
func NewGenerator(remote Remote, log *zap.Logger) *Generator {
	return &Generator{remote: remote, log: log}
}

// New builds a Generator from configuration. Without credentials for the
// selected provider no remote is configured.
func New(cfg config.Generator, log *zap.Logger) (*Generator, error) {
	if !cfg.Enabled() {
		log.Info("text generation disabled, using static congratulations")
		return NewGenerator(nil, log), nil
	}

	prompts, err := LoadPrompts(cfg.Prompts)
	if err != nil {
		return nil, err
	}

	var remote Remote
	switch cfg.Provider {
	case config.ProviderOpenAI:
		remote = NewOpenAIClient(cfg, prompts)
	default:
		remote = NewYandexClient(cfg, prompts)
	}
	log.Info("text generation enabled", zap.String("provider", cfg.Provider))
	return NewGenerator(remote, log), nil
}

// Text returns a congratulation for mention. Remote errors and empty
// answers fall back to the static template.
func (g *Generator) Text(ctx context.Context, mention string) string {
	if g.remote == nil {
		metrics.GeneratorFallbacks.WithLabelValues(metrics.ReasonDisabled).Inc()
		return Fallback(mention)
	}

	text, err := g.remote.Generate(ctx, mention)
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = ErrEmptyCompletion
		}
	}
	if err != nil {
		metrics.GeneratorFallbacks.WithLabelValues(metrics.ReasonError).Inc()
		g.log.Warn("text generation failed", zap.Error(err))
		return Fallback(mention)
	}

	if !strings.Contains(text, "🎉") && !strings.Contains(text, "🥳") {
		text = "🎉 " + text
	}
	return text
}

// Fallback is the static congratulation.
func Fallback(mention string) string {
	return fmt.Sprintf(
		"🎉 Сегодня день рождения у %s! Желаю здоровья, вдохновения и мощных результатов во всех проектах! 🥳",
		mention,
	)
}
