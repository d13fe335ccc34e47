package notify

// Built-in customization preset ids.
const (
	PresetDefault  = "default"
	PresetVibrant  = "vibrant"
	PresetPastel   = "pastel"
	PresetMidnight = "midnight"
	PresetSunset   = "sunset"
)

// PresetIDs lists the selectable presets in display order.
func PresetIDs() []string {
	return []string{PresetDefault, PresetVibrant, PresetPastel, PresetMidnight, PresetSunset}
}

// KnownPreset reports whether id names a built-in preset.
func KnownPreset(id string) bool {
	switch id {
	case PresetDefault, PresetVibrant, PresetPastel, PresetMidnight, PresetSunset:
		return true
	}
	return false
}

// DefaultCustomization is the appearance new accounts start with.
func DefaultCustomization() Customization {
	return PresetByID(PresetDefault)
}

// PresetByID returns a full customization for the preset. Applying a preset
// replaces colors, styles, and vibration wholesale and stamps ActivePreset;
// unknown ids resolve to the default preset.
func PresetByID(id string) Customization {
	var c Customization
	switch id {
	case PresetVibrant:
		c = Customization{
			Colors: map[string]ColorSet{
				"todos":     {Background: "#FF6B6B", BackgroundSecondary: "#FF8E53", Text: "#FFFFFF", Accent: "#FFD93D", Icon: "#FFFFFF"},
				"dreams":    {Background: "#9B5DE5", BackgroundSecondary: "#F15BB5", Text: "#FFFFFF", Accent: "#FEE440", Icon: "#FFFFFF"},
				"stickers":  {Background: "#F15BB5", Text: "#FFFFFF", Accent: "#FEE440", Icon: "#FFFFFF"},
				"favorites": {Background: "#FF477E", Text: "#FFFFFF", Accent: "#FFD6E0", Icon: "#FFFFFF"},
				"moods":     {Background: "#00BBF9", Text: "#FFFFFF", Accent: "#FEE440", Icon: "#FFFFFF"},
				"nudges":    {Background: "#00F5D4", Text: "#073B4C", Accent: "#118AB2", Icon: "#073B4C"},
				"pairing":   {Background: "#FF6B6B", Text: "#FFFFFF", Accent: "#FFD93D", Icon: "#FFFFFF"},
				"general":   {Background: "#4ECDC4", Text: "#FFFFFF", Accent: "#FFE66D", Icon: "#FFFFFF"},
			},
			VisualStyle:      StyleGradient,
			VibrationPattern: VibrationHeavy,
			BorderRadius:     16,
			ShadowIntensity:  0.35,
		}
	case PresetPastel:
		c = Customization{
			Colors: map[string]ColorSet{
				"todos":     {Background: "#FFD1DC", Text: "#5D576B", Accent: "#A8E6CF", Icon: "#5D576B"},
				"dreams":    {Background: "#E0BBE4", Text: "#5D576B", Accent: "#FFDFD3", Icon: "#5D576B"},
				"stickers":  {Background: "#FEC8D8", Text: "#5D576B", Accent: "#D291BC", Icon: "#5D576B"},
				"favorites": {Background: "#FFDFD3", Text: "#5D576B", Accent: "#FEC8D8", Icon: "#5D576B"},
				"moods":     {Background: "#B5EAD7", Text: "#5D576B", Accent: "#C7CEEA", Icon: "#5D576B"},
				"nudges":    {Background: "#C7CEEA", Text: "#5D576B", Accent: "#FFD1DC", Icon: "#5D576B"},
				"pairing":   {Background: "#FFB7B2", Text: "#5D576B", Accent: "#E2F0CB", Icon: "#5D576B"},
				"general":   {Background: "#E2F0CB", Text: "#5D576B", Accent: "#B5EAD7", Icon: "#5D576B"},
			},
			VisualStyle:      StyleSolid,
			VibrationPattern: VibrationLight,
			BorderRadius:     20,
			ShadowIntensity:  0.15,
		}
	case PresetMidnight:
		c = Customization{
			Colors: map[string]ColorSet{
				"todos":     {Background: "#1B263B", BackgroundSecondary: "#0D1B2A", Text: "#E0E1DD", Accent: "#4CC9F0", Icon: "#E0E1DD"},
				"dreams":    {Background: "#3A0CA3", BackgroundSecondary: "#240046", Text: "#E0E1DD", Accent: "#B5179E", Icon: "#E0E1DD"},
				"stickers":  {Background: "#240046", Text: "#E0E1DD", Accent: "#F72585", Icon: "#E0E1DD"},
				"favorites": {Background: "#10002B", Text: "#E0E1DD", Accent: "#C77DFF", Icon: "#E0E1DD"},
				"moods":     {Background: "#0D1B2A", Text: "#E0E1DD", Accent: "#48CAE4", Icon: "#E0E1DD"},
				"nudges":    {Background: "#1B263B", Text: "#E0E1DD", Accent: "#90E0EF", Icon: "#E0E1DD"},
				"pairing":   {Background: "#3C096C", Text: "#E0E1DD", Accent: "#E0AAFF", Icon: "#E0E1DD"},
				"general":   {Background: "#0D1B2A", Text: "#E0E1DD", Accent: "#778DA9", Icon: "#E0E1DD"},
			},
			VisualStyle:      StyleGlassmorphic,
			VibrationPattern: VibrationPulse,
			BorderRadius:     12,
			ShadowIntensity:  0.5,
		}
	case PresetSunset:
		c = Customization{
			Colors: map[string]ColorSet{
				"todos":     {Background: "#FF9E64", BackgroundSecondary: "#FF6B35", Text: "#4A2511", Accent: "#F7B32B", Icon: "#4A2511"},
				"dreams":    {Background: "#E76F51", BackgroundSecondary: "#F4A261", Text: "#FFFFFF", Accent: "#E9C46A", Icon: "#FFFFFF"},
				"stickers":  {Background: "#F4A261", Text: "#4A2511", Accent: "#E76F51", Icon: "#4A2511"},
				"favorites": {Background: "#E63946", Text: "#FFFFFF", Accent: "#F1FAEE", Icon: "#FFFFFF"},
				"moods":     {Background: "#F7B32B", Text: "#4A2511", Accent: "#FF6B35", Icon: "#4A2511"},
				"nudges":    {Background: "#FFB4A2", Text: "#6D2E46", Accent: "#E5989B", Icon: "#6D2E46"},
				"pairing":   {Background: "#E76F51", Text: "#FFFFFF", Accent: "#F7B32B", Icon: "#FFFFFF"},
				"general":   {Background: "#F4A261", Text: "#4A2511", Accent: "#2A9D8F", Icon: "#4A2511"},
			},
			VisualStyle:      StyleGradient,
			VibrationPattern: VibrationMedium,
			BorderRadius:     16,
			ShadowIntensity:  0.3,
		}
	default:
		id = PresetDefault
		c = Customization{
			Colors:           defaultPalette(),
			VisualStyle:      StyleSolid,
			VibrationPattern: VibrationMedium,
			BorderRadius:     14,
			ShadowIntensity:  0.2,
		}
	}

	preset := id
	c.ActivePreset = &preset
	return c
}

func defaultPalette() map[string]ColorSet {
	return map[string]ColorSet{
		"todos":     {Background: "#E8F4FD", Text: "#1A365D", Accent: "#3182CE", Icon: "#3182CE"},
		"dreams":    {Background: "#FAF5FF", Text: "#44337A", Accent: "#805AD5", Icon: "#805AD5"},
		"stickers":  {Background: "#FFF5F7", Text: "#702459", Accent: "#D53F8C", Icon: "#D53F8C"},
		"favorites": {Background: "#FFF5F5", Text: "#742A2A", Accent: "#E53E3E", Icon: "#E53E3E"},
		"moods":     {Background: "#F0FFF4", Text: "#22543D", Accent: "#38A169", Icon: "#38A169"},
		"nudges":    {Background: "#FFFFF0", Text: "#744210", Accent: "#D69E2E", Icon: "#D69E2E"},
		"pairing":   {Background: "#FFF5F7", Text: "#702459", Accent: "#ED64A6", Icon: "#ED64A6"},
		"general":   {Background: "#F7FAFC", Text: "#2D3748", Accent: "#4A5568", Icon: "#4A5568"},
	}
}
