package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/uiforge/designlint/internal/model"
)

// stockColorUtilityRe matches stock Tailwind color utilities that bypass
// the named palette, e.g. "bg-blue-500" or "hover:text-indigo-600".
var stockColorUtilityRe = regexp.MustCompile(
	`^(?:[a-z-]+:)*(?:text|bg|border|ring|from|via|to|fill|stroke)-` +
		`(?:slate|gray|zinc|neutral|stone|red|orange|amber|yellow|lime|green|emerald|teal|cyan|sky|blue|indigo|violet|purple|fuchsia|pink|rose)-\d{2,3}$`)

// paletteUtilityPrefixes are the class prefixes generated from the token
// palette. Matching classes count toward palette coverage.
var paletteUtilityPrefixes = []string{
	"text-ink-", "text-brand-", "text-accent-", "text-surface-",
	"bg-ink-", "bg-brand-", "bg-accent-", "bg-surface-",
	"border-ink-", "border-brand-", "border-accent-", "border-surface-",
}

// ColorRule enforces the brand palette: raw hex colors must belong to the
// token set and stock Tailwind color utilities are flagged.
type ColorRule struct{}

// NewColorRule creates the color rule.
func NewColorRule() *ColorRule {
	return &ColorRule{}
}

// ID returns the primary rule identifier.
func (r *ColorRule) ID() string { return "color/raw-hex" }

// Category returns the rule category.
func (r *ColorRule) Category() string { return CategoryPalette }

// Check validates hex literals against the palette and class lists against
// the generated palette utilities.
func (r *ColorRule) Check(_ context.Context, data *CheckData) []model.Finding {
	var findings []model.Finding

	for _, hex := range data.File.HexColors {
		if data.Tokens.HasColor(hex.Value) {
			continue
		}
		findings = append(findings, model.NewFinding(
			"color/raw-hex",
			"Hex color outside the palette",
			fmt.Sprintf("%s does not match any design token color", hex.Value),
			hex.Value, data.File.Path, hex.Line,
		))
	}

	tokenUsed := 0
	for _, cl := range data.File.ClassLists {
		for _, cls := range cl.Classes {
			if stockColorUtilityRe.MatchString(cls) {
				findings = append(findings, model.NewFinding(
					"color/non-token-utility",
					"Stock color utility",
					fmt.Sprintf("%q uses the stock Tailwind palette instead of a token color", cls),
					cls, data.File.Path, cl.Line,
				))
				continue
			}
			for _, prefix := range paletteUtilityPrefixes {
				if strings.HasPrefix(stripVariants(cls), prefix) {
					tokenUsed++
					break
				}
			}
		}
	}

	if tokenUsed > 0 {
		findings = append(findings, model.NewFinding(
			"color/token-usage",
			"Palette token coverage",
			fmt.Sprintf("%d class(es) use palette token utilities", tokenUsed),
			"", data.File.Path, 0,
		))
	}
	return findings
}

// stripVariants removes variant prefixes like "hover:" or "md:" from a
// utility class.
func stripVariants(cls string) string {
	if idx := strings.LastIndex(cls, ":"); idx >= 0 {
		return cls[idx+1:]
	}
	return cls
}
