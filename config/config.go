package config

// Sensitivity is a named detector preset trading recall for speed.
type Sensitivity string

// Detector sensitivity presets.
const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

// ExportFormat selects the output encoding for rendered photos.
type ExportFormat string

// Supported export formats.
const (
	FormatPNG  ExportFormat = "png"
	FormatJPEG ExportFormat = "jpeg"
)

// Settings holds the photo-global effect and export preferences. A region
// without per-region overrides uses these values. Settings is a plain value
// owned by the controller; there is no ambient global instance.
type Settings struct {
	EffectID    string
	Intensity   int // 0-100
	Sensitivity Sensitivity
	Sticker     string // emoji effect glyph, empty = palette default
	ColorHex    string // solid fill color, empty = effect default
	Format      ExportFormat
	Quality     float64 // jpeg only, 0-1
}

// DefaultSettings returns the out-of-the-box settings.
func DefaultSettings() Settings {
	return Settings{
		EffectID:    "blur",
		Intensity:   60,
		Sensitivity: SensitivityMedium,
		Format:      FormatPNG,
		Quality:     0.92,
	}
}

// Normalize clamps all fields into their documented ranges and falls back
// to defaults for unknown enum values.
func (s Settings) Normalize() Settings {
	if s.Intensity < 0 {
		s.Intensity = 0
	}
	if s.Intensity > 100 {
		s.Intensity = 100
	}
	switch s.Sensitivity {
	case SensitivityLow, SensitivityMedium, SensitivityHigh:
	default:
		s.Sensitivity = SensitivityMedium
	}
	switch s.Format {
	case FormatPNG, FormatJPEG:
	default:
		s.Format = FormatPNG
	}
	if s.Quality <= 0 || s.Quality > 1 {
		s.Quality = 0.92
	}
	if s.EffectID == "" {
		s.EffectID = "blur"
	}
	return s
}
