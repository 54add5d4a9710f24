package domain

// ChatSetting represents a chat's subscription to the daily congratulation.
// Hour and Minute are already resolved against the process-wide defaults.
type ChatSetting struct {
	ChatID  int64
	Enabled bool
	Hour    int // 0..23
	Minute  int // 0..59
}

// Clock returns the fire time as HH:MM.
func (c ChatSetting) Clock() string {
	return FormatClock(c.Hour, c.Minute)
}

// ResolveClock substitutes the defaults for unset (nil) stored hour/minute.
func ResolveClock(hour, minute *int, defaultHour, defaultMinute int) (int, int) {
	h, m := defaultHour, defaultMinute
	if hour != nil {
		h = *hour
	}
	if minute != nil {
		m = *minute
	}
	return h, m
}
