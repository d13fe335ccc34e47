package notify

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Preferences holds a user's notification toggles. Every category flag
// defaults to on; quiet hours default to off.
type Preferences struct {
	Enabled bool `json:"enabled"`

	TodoReminders        bool `json:"todo_reminders"`
	StickerNotifications bool `json:"sticker_notifications"`
	NudgeNotifications   bool `json:"nudge_notifications"`
	FavoriteUpdates      bool `json:"favorite_updates"`
	PairEvents           bool `json:"pair_events"`
	MoodUpdates          bool `json:"mood_updates"`

	QuietHoursEnabled bool   `json:"quiet_hours_enabled"`
	QuietHoursStart   string `json:"quiet_hours_start"` // "HH:MM"
	QuietHoursEnd     string `json:"quiet_hours_end"`   // "HH:MM"

	Sound     bool `json:"sound"`
	Vibration bool `json:"vibration"`
}

// PreferencesPatch carries a partial preference update; nil fields are left
// untouched by Apply.
type PreferencesPatch struct {
	Enabled *bool `json:"enabled"`

	TodoReminders        *bool `json:"todo_reminders"`
	StickerNotifications *bool `json:"sticker_notifications"`
	NudgeNotifications   *bool `json:"nudge_notifications"`
	FavoriteUpdates      *bool `json:"favorite_updates"`
	PairEvents           *bool `json:"pair_events"`
	MoodUpdates          *bool `json:"mood_updates"`

	QuietHoursEnabled *bool   `json:"quiet_hours_enabled"`
	QuietHoursStart   *string `json:"quiet_hours_start"`
	QuietHoursEnd     *string `json:"quiet_hours_end"`

	Sound     *bool `json:"sound"`
	Vibration *bool `json:"vibration"`
}

// DefaultPreferences returns the all-enabled defaults applied when a user has
// never stored preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		Enabled:              true,
		TodoReminders:        true,
		StickerNotifications: true,
		NudgeNotifications:   true,
		FavoriteUpdates:      true,
		PairEvents:           true,
		MoodUpdates:          true,
		QuietHoursEnabled:    false,
		QuietHoursStart:      "22:00",
		QuietHoursEnd:        "08:00",
		Sound:                true,
		Vibration:            true,
	}
}

// DecodePreferences parses a stored JSON blob, falling back to defaults on
// empty or malformed input.
func DecodePreferences(raw []byte) Preferences {
	prefs := DefaultPreferences()
	if len(raw) == 0 {
		return prefs
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return DefaultPreferences()
	}
	return prefs
}

// Apply merges non-nil patch fields into the preference set.
func (p Preferences) Apply(patch PreferencesPatch) Preferences {
	if patch.Enabled != nil {
		p.Enabled = *patch.Enabled
	}
	if patch.TodoReminders != nil {
		p.TodoReminders = *patch.TodoReminders
	}
	if patch.StickerNotifications != nil {
		p.StickerNotifications = *patch.StickerNotifications
	}
	if patch.NudgeNotifications != nil {
		p.NudgeNotifications = *patch.NudgeNotifications
	}
	if patch.FavoriteUpdates != nil {
		p.FavoriteUpdates = *patch.FavoriteUpdates
	}
	if patch.PairEvents != nil {
		p.PairEvents = *patch.PairEvents
	}
	if patch.MoodUpdates != nil {
		p.MoodUpdates = *patch.MoodUpdates
	}
	if patch.QuietHoursEnabled != nil {
		p.QuietHoursEnabled = *patch.QuietHoursEnabled
	}
	if patch.QuietHoursStart != nil {
		p.QuietHoursStart = strings.TrimSpace(*patch.QuietHoursStart)
	}
	if patch.QuietHoursEnd != nil {
		p.QuietHoursEnd = strings.TrimSpace(*patch.QuietHoursEnd)
	}
	if patch.Sound != nil {
		p.Sound = *patch.Sound
	}
	if patch.Vibration != nil {
		p.Vibration = *patch.Vibration
	}
	return p
}

// Allows reports whether notifications of the given category may be delivered.
// A disabled master switch blocks everything; unknown categories default to
// allowed when the master switch is on.
func (p Preferences) Allows(category Category) bool {
	if !p.Enabled {
		return false
	}

	switch category.PreferenceFlag() {
	case "todo_reminders":
		return p.TodoReminders
	case "sticker_notifications":
		return p.StickerNotifications
	case "nudge_notifications":
		return p.NudgeNotifications
	case "favorite_updates":
		return p.FavoriteUpdates
	case "pair_events":
		return p.PairEvents
	case "mood_updates":
		return p.MoodUpdates
	default:
		return true
	}
}

// InQuietHours reports whether now falls inside the configured quiet window.
// A window whose start is later than its end wraps past midnight; otherwise
// it is a same-day range [start, end). The result is informational: push
// dispatch does not currently gate on it.
func (p Preferences) InQuietHours(now time.Time) bool {
	if !p.QuietHoursEnabled {
		return false
	}

	start, okStart := parseClock(p.QuietHoursStart)
	end, okEnd := parseClock(p.QuietHoursEnd)
	if !okStart || !okEnd {
		return false
	}

	current := now.Hour()*60 + now.Minute()
	if start <= end {
		return current >= start && current < end
	}
	// Overnight window, e.g. 22:00-08:00.
	return current >= start || current < end
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(value string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}
