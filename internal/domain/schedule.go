package domain

import "time"

// DueAt reports whether the chat's daily message fires at now.
// Matching is minute-granular: seconds and below are ignored, and a
// disabled chat is never due.
func (c ChatSetting) DueAt(now time.Time) bool {
	if !c.Enabled {
		return false
	}
	return c.Hour == now.Hour() && c.Minute == now.Minute()
}

// DueChats filters chats down to the ones due at now, keeping registry order.
func DueChats(chats []ChatSetting, now time.Time) []ChatSetting {
	var due []ChatSetting
	for _, c := range chats {
		if c.DueAt(now) {
			due = append(due, c)
		}
	}
	return due
}
