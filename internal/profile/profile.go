// Package profile stores per-user settings used for greetings and reminders.
package profile

import (
	"strings"
	"time"
)

// Profile holds the settings a user can edit on the settings screen.
type Profile struct {
	UserID               int64     `json:"user_id"`
	DisplayName          string    `json:"display_name"`
	PhoneNumber          string    `json:"phone_number"`
	TextRemindersEnabled bool      `json:"text_reminders_enabled"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// GreetingName returns the trimmed display name, or "there" as a greeting
// fallback.
func (p Profile) GreetingName() string {
	if name := strings.TrimSpace(p.DisplayName); name != "" {
		return name
	}
	return "there"
}
