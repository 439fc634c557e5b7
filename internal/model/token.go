package model

import "strings"

// TokenSet is the design token palette the contract enforces.
// It is fixed at load time: the validator never mutates it.
type TokenSet struct {
	// Colors maps token names to hex values (lowercase, #rrggbb).
	Colors map[string]string `json:"colors" yaml:"colors"`

	// Shadows maps glass shadow token names to their CSS values.
	Shadows map[string]string `json:"shadows" yaml:"shadows"`

	// Blurs lists the permitted backdrop blur utility suffixes.
	Blurs []string `json:"blurs" yaml:"blurs"`

	// Animations lists the named animations defined in the theme.
	Animations []string `json:"animations" yaml:"animations"`

	// SpacingStep is the base spacing unit in pixels. All pixel spacing
	// values must be multiples of this step.
	SpacingStep int `json:"spacing_step" yaml:"spacingStep"`

	// FontSizes lists the permitted type scale utility suffixes.
	FontSizes []string `json:"font_sizes" yaml:"fontSizes"`

	// FontWeights lists the permitted font weight utility suffixes.
	FontWeights []string `json:"font_weights" yaml:"fontWeights"`
}

// DefaultTokenSet returns the built-in marketing site token set.
// Projects override individual sections via the tokens block in
// .designlint.yaml; omitted sections keep these defaults.
func DefaultTokenSet() *TokenSet {
	return &TokenSet{
		Colors: map[string]string{
			"surface-50":  "#fafbfe",
			"surface-100": "#f2f4fb",
			"surface-200": "#e6e9f4",
			"ink-500":     "#5b6478",
			"ink-700":     "#353c4f",
			"ink-900":     "#13182b",
			"brand-300":   "#a5b4fc",
			"brand-500":   "#6366f1",
			"brand-600":   "#4f46e5",
			"brand-700":   "#4338ca",
			"accent-400":  "#2dd4bf",
			"accent-500":  "#14b8a6",
			"white":       "#ffffff",
		},
		Shadows: map[string]string{
			"glass-sm": "0 2px 8px rgba(19, 24, 43, 0.06)",
			"glass-md": "0 8px 24px rgba(19, 24, 43, 0.10)",
			"glass-lg": "0 16px 48px rgba(19, 24, 43, 0.14)",
		},
		Blurs:       []string{"sm", "md", "lg", "xl"},
		Animations:  []string{"fade-in", "slide-up", "float", "shimmer", "pulse-soft"},
		SpacingStep: 4,
		FontSizes:   []string{"xs", "sm", "base", "lg", "xl", "2xl", "3xl", "4xl", "5xl", "6xl"},
		FontWeights: []string{"normal", "medium", "semibold", "bold"},
	}
}

// HasColor reports whether the given hex color belongs to the palette.
// Comparison is case-insensitive and 3-digit shorthand is expanded.
func (t *TokenSet) HasColor(hex string) bool {
	normalized := NormalizeHex(hex)
	if normalized == "" {
		return false
	}
	for _, v := range t.Colors {
		if NormalizeHex(v) == normalized {
			return true
		}
	}
	return false
}

// ColorName returns the token name for a hex value, or "" if not in the palette.
func (t *TokenSet) ColorName(hex string) string {
	normalized := NormalizeHex(hex)
	for name, v := range t.Colors {
		if NormalizeHex(v) == normalized {
			return name
		}
	}
	return ""
}

// HasShadow reports whether name (without the "shadow-" prefix) is a glass
// shadow token, e.g. "glass-md".
func (t *TokenSet) HasShadow(name string) bool {
	_, ok := t.Shadows[name]
	return ok
}

// HasAnimation reports whether name is a theme animation.
func (t *TokenSet) HasAnimation(name string) bool {
	for _, a := range t.Animations {
		if a == name {
			return true
		}
	}
	return false
}

// HasBlur reports whether suffix is a permitted backdrop blur level.
func (t *TokenSet) HasBlur(suffix string) bool {
	for _, b := range t.Blurs {
		if b == suffix {
			return true
		}
	}
	return false
}

// HasFontSize reports whether suffix is on the type scale.
func (t *TokenSet) HasFontSize(suffix string) bool {
	for _, s := range t.FontSizes {
		if s == suffix {
			return true
		}
	}
	return false
}

// HasFontWeight reports whether suffix is a permitted weight.
func (t *TokenSet) HasFontWeight(suffix string) bool {
	for _, w := range t.FontWeights {
		if w == suffix {
			return true
		}
	}
	return false
}

// OnSpacingScale reports whether a pixel value lands on the spacing scale.
// Zero is always on the scale; 1px and 2px are allowed as hairline steps.
func (t *TokenSet) OnSpacingScale(px int) bool {
	if px == 0 || px == 1 || px == 2 {
		return true
	}
	step := t.SpacingStep
	if step <= 0 {
		step = 4
	}
	return px%step == 0
}

// Merge overlays non-empty sections of other onto a copy of t.
// Used when a project config overrides parts of the default token set.
func (t *TokenSet) Merge(other *TokenSet) *TokenSet {
	merged := *t
	if other == nil {
		return &merged
	}
	if len(other.Colors) > 0 {
		merged.Colors = other.Colors
	}
	if len(other.Shadows) > 0 {
		merged.Shadows = other.Shadows
	}
	if len(other.Blurs) > 0 {
		merged.Blurs = other.Blurs
	}
	if len(other.Animations) > 0 {
		merged.Animations = other.Animations
	}
	if other.SpacingStep > 0 {
		merged.SpacingStep = other.SpacingStep
	}
	if len(other.FontSizes) > 0 {
		merged.FontSizes = other.FontSizes
	}
	if len(other.FontWeights) > 0 {
		merged.FontWeights = other.FontWeights
	}
	return &merged
}

// NormalizeHex lowercases a hex color and expands 3-digit shorthand to the
// 6-digit form. Returns "" if the input is not a hex color literal.
func NormalizeHex(hex string) string {
	s := strings.ToLower(strings.TrimSpace(hex))
	if !strings.HasPrefix(s, "#") {
		return ""
	}
	body := s[1:]
	switch len(body) {
	case 3:
		var sb strings.Builder
		sb.WriteByte('#')
		for i := 0; i < 3; i++ {
			sb.WriteByte(body[i])
			sb.WriteByte(body[i])
		}
		return sb.String()
	case 6, 8:
		return s
	default:
		return ""
	}
}
