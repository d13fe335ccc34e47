package notify

import (
	"encoding/json"
	"strings"
)

// VisualStyle selects how in-app banners are rendered.
type VisualStyle string

const (
	StyleSolid        VisualStyle = "solid"
	StyleGradient     VisualStyle = "gradient"
	StyleGlassmorphic VisualStyle = "glassmorphic"
)

// ValidStyle reports whether the value is a known visual style.
func ValidStyle(s VisualStyle) bool {
	switch s {
	case StyleSolid, StyleGradient, StyleGlassmorphic:
		return true
	}
	return false
}

// VibrationPattern names a haptic pattern; Milliseconds resolves the concrete timings.
type VibrationPattern string

const (
	VibrationNone      VibrationPattern = "none"
	VibrationLight     VibrationPattern = "light"
	VibrationMedium    VibrationPattern = "medium"
	VibrationHeavy     VibrationPattern = "heavy"
	VibrationPulse     VibrationPattern = "pulse"
	VibrationHeartbeat VibrationPattern = "heartbeat"
)

// Milliseconds returns the vibrate/pause pattern for the named preset.
func (v VibrationPattern) Milliseconds() []int {
	switch v {
	case VibrationNone:
		return nil
	case VibrationLight:
		return []int{50}
	case VibrationMedium:
		return []int{100, 50, 100}
	case VibrationHeavy:
		return []int{200, 100, 200}
	case VibrationPulse:
		return []int{100, 100, 100, 100, 100}
	case VibrationHeartbeat:
		return []int{100, 30, 100, 30, 250}
	default:
		return []int{100, 50, 100}
	}
}

// ColorSet groups the colours used to render one banner group.
type ColorSet struct {
	Background          string `json:"background"`
	BackgroundSecondary string `json:"background_secondary,omitempty"`
	Text                string `json:"text"`
	Accent              string `json:"accent"`
	Icon                string `json:"icon"`
}

// ColorSetPatch carries a partial colour update for one group.
type ColorSetPatch struct {
	Background          *string `json:"background"`
	BackgroundSecondary *string `json:"background_secondary"`
	Text                *string `json:"text"`
	Accent              *string `json:"accent"`
	Icon                *string `json:"icon"`
}

// Customization holds a user's banner appearance settings. ActivePreset is
// nil once any field has been manually edited.
type Customization struct {
	ActivePreset     *string                `json:"active_preset"`
	Colors           map[string]ColorSet    `json:"colors"`
	VisualStyle      VisualStyle            `json:"visual_style"`
	CategoryStyles   map[string]VisualStyle `json:"category_styles,omitempty"`
	VibrationPattern VibrationPattern       `json:"vibration_pattern"`
	BorderRadius     int                    `json:"border_radius"`
	ShadowIntensity  float64                `json:"shadow_intensity"`
}

// CustomizationPatch carries a partial customization update.
type CustomizationPatch struct {
	VisualStyle      *VisualStyle      `json:"visual_style"`
	VibrationPattern *VibrationPattern `json:"vibration_pattern"`
	BorderRadius     *int              `json:"border_radius"`
	ShadowIntensity  *float64          `json:"shadow_intensity"`
}

// DecodeCustomization parses the stored JSON blob, falling back to the default
// preset on empty or malformed input.
func DecodeCustomization(raw []byte) Customization {
	if len(raw) == 0 {
		return PresetByID(PresetDefault)
	}
	var c Customization
	if err := json.Unmarshal(raw, &c); err != nil {
		return PresetByID(PresetDefault)
	}
	if c.Colors == nil {
		c.Colors = map[string]ColorSet{}
	}
	if !ValidStyle(c.VisualStyle) {
		c.VisualStyle = StyleSolid
	}
	return c
}

// Apply merges non-nil patch fields. Any manual edit marks the customization
// as custom by clearing the active preset.
func (c Customization) Apply(patch CustomizationPatch) Customization {
	touched := false
	if patch.VisualStyle != nil && ValidStyle(*patch.VisualStyle) {
		c.VisualStyle = *patch.VisualStyle
		touched = true
	}
	if patch.VibrationPattern != nil {
		c.VibrationPattern = *patch.VibrationPattern
		touched = true
	}
	if patch.BorderRadius != nil {
		c.BorderRadius = *patch.BorderRadius
		touched = true
	}
	if patch.ShadowIntensity != nil {
		c.ShadowIntensity = *patch.ShadowIntensity
		touched = true
	}
	if touched {
		c.ActivePreset = nil
	}
	return c
}

// ApplyGroupColors merges a colour patch into the named group and marks the
// customization as custom.
func (c Customization) ApplyGroupColors(group string, patch ColorSetPatch) Customization {
	group = strings.TrimSpace(group)
	if group == "" {
		return c
	}

	colors := make(map[string]ColorSet, len(c.Colors)+1)
	for k, v := range c.Colors {
		colors[k] = v
	}

	set := colors[group]
	if patch.Background != nil {
		set.Background = *patch.Background
	}
	if patch.BackgroundSecondary != nil {
		set.BackgroundSecondary = *patch.BackgroundSecondary
	}
	if patch.Text != nil {
		set.Text = *patch.Text
	}
	if patch.Accent != nil {
		set.Accent = *patch.Accent
	}
	if patch.Icon != nil {
		set.Icon = *patch.Icon
	}
	colors[group] = set

	c.Colors = colors
	c.ActivePreset = nil
	return c
}

// ApplyGroupStyle overrides the visual style for one group and marks the
// customization as custom.
func (c Customization) ApplyGroupStyle(group string, style VisualStyle) Customization {
	group = strings.TrimSpace(group)
	if group == "" || !ValidStyle(style) {
		return c
	}

	styles := make(map[string]VisualStyle, len(c.CategoryStyles)+1)
	for k, v := range c.CategoryStyles {
		styles[k] = v
	}
	styles[group] = style

	c.CategoryStyles = styles
	c.ActivePreset = nil
	return c
}

// StyleForGroup resolves the effective style: per-group override if present,
// else the global visual style.
func (c Customization) StyleForGroup(group string) VisualStyle {
	if style, ok := c.CategoryStyles[group]; ok && ValidStyle(style) {
		return style
	}
	if ValidStyle(c.VisualStyle) {
		return c.VisualStyle
	}
	return StyleSolid
}

// ColorsForCategory resolves the colour set for a notification category,
// falling back to the default palette for the category's group.
func (c Customization) ColorsForCategory(category Category) ColorSet {
	group := category.StyleGroup()
	if set, ok := c.Colors[group]; ok {
		return set
	}
	return defaultPalette()[group]
}

// StyleForCategory resolves the effective style for a notification category.
func (c Customization) StyleForCategory(category Category) VisualStyle {
	return c.StyleForGroup(category.StyleGroup())
}
