package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// Generator providers.
const (
	ProviderYandex = "yandex"
	ProviderOpenAI = "openai"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken    string `envconfig:"BOT_TOKEN" required:"true" validate:"required"`
	DBPath      string `envconfig:"DB_PATH" default:"./data/birthdays.db"`
	DatabaseURL string `envconfig:"DATABASE_URL"` // when set, PostgreSQL is used instead of SQLite
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFile     string `envconfig:"LOG_FILE"`                  // optional rolling log file
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"` // healthz + metrics

	// Process-wide default fire time for chats without their own.
	DefaultHour   int    `envconfig:"JOB_HOUR" default:"9" validate:"min=0,max=23"`
	DefaultMinute int    `envconfig:"JOB_MINUTE" default:"0" validate:"min=0,max=59"`
	TickSpec      string `envconfig:"TICK_SPEC" default:"* * * * *" validate:"required"`

	Holidays  Holidays
	Generator Generator
}

// Holidays configures the holiday calendar API client.
type Holidays struct {
	Base    string        `envconfig:"RUS_CALENDAR_BASE" default:"https://russian-calendar.example.com/api" validate:"url"`
	Timeout time.Duration `envconfig:"HOLIDAYS_TIMEOUT" default:"5s" validate:"gt=0"`
}

// Generator configures the congratulation text generation backend.
type Generator struct {
	Provider string        `envconfig:"GENERATOR_PROVIDER" default:"yandex" validate:"oneof=yandex openai"`
	Timeout  time.Duration `envconfig:"GENERATOR_TIMEOUT" default:"10s" validate:"gt=0"`
	Prompts  string        `envconfig:"PROMPTS_PATH"`

	YandexAPIKey   string `envconfig:"YANDEX_API_KEY"`
	YandexFolderID string `envconfig:"YANDEX_FOLDER_ID"`
	YandexEndpoint string `envconfig:"YANDEX_ENDPOINT" default:"https://llm.api.cloud.yandex.net/foundationModels/v1/completion"`
	YandexModel    string `envconfig:"YANDEX_MODEL"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
}

// Load reads an optional .env file and then environment variables into Config.
func Load() (Config, error) {
	// A missing .env is normal in production.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, errors.Wrap(err, "read environment")
	}
	return cfg, Validate(cfg)
}

// LoadHolidays reads only the holiday API settings, for tools that do not
// talk to Telegram.
func LoadHolidays() (Holidays, error) {
	_ = godotenv.Load()

	var h Holidays
	if err := envconfig.Process("", &h); err != nil {
		return h, errors.Wrap(err, "read environment")
	}
	if err := validator.New().Struct(h); err != nil {
		return h, errors.Wrap(err, "invalid config")
	}
	return h, nil
}

// Validate checks ranges and enumerations declared in struct tags.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.StructField() {
				case "DefaultHour", "DefaultMinute":
					return errors.Wrap(ErrInvalidDefaultTime, fe.Error())
				}
			}
		}
		return errors.Wrap(err, "invalid config")
	}
	if err := validateTickSpec(cfg.TickSpec); err != nil {
		return errors.Wrap(ErrInvalidTickSpec, err.Error())
	}
	return nil
}

// validateTickSpec rejects schedules that can fire twice within one minute.
// Due chats are matched by hour and minute only.
func validateTickSpec(spec string) error {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return err
	}
	t := time.Date(2025, time.January, 1, 0, 0, 17, 0, time.UTC)
	var prev time.Time
	for i := 0; i < 200; i++ {
		next := sched.Next(t)
		switch {
		case next.IsZero():
			return fmt.Errorf("%q never fires", spec)
		case next.Second() != 0:
			return fmt.Errorf("%q fires at second %d", spec, next.Second())
		case !prev.IsZero() && next.Sub(prev) < time.Minute:
			return fmt.Errorf("%q fires every %s", spec, next.Sub(prev))
		}
		prev, t = next, next
	}
	return nil
}

// Enabled reports whether remote generation has the credentials it needs.
// Without them the static fallback text is used and no request is made.
func (g Generator) Enabled() bool {
	switch g.Provider {
	case ProviderOpenAI:
		return g.OpenAIAPIKey != ""
	default:
		return g.YandexAPIKey != "" && g.YandexFolderID != ""
	}
}

// YandexModelURI returns the configured model URI or the folder's lite model.
func (g Generator) YandexModelURI() string {
	if g.YandexModel != "" {
		return g.YandexModel
	}
	return fmt.Sprintf("gpt://%s/yandexgpt-lite", g.YandexFolderID)
}
