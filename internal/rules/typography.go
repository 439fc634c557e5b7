package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/uiforge/designlint/internal/model"
)

var (
	// arbitraryTextRe matches arbitrary-value font size utilities like
	// "text-[17px]" or "text-[1.13rem]".
	arbitraryTextRe = regexp.MustCompile(`^text-\[[^\]]+\]$`)

	// arbitraryFontRe matches arbitrary font weight utilities like
	// "font-[550]".
	arbitraryFontRe = regexp.MustCompile(`^font-\[\d+\]$`)

	// tokenWeightValues are the numeric CSS weights the type tokens map to.
	tokenWeightValues = map[string]bool{
		"400": true, "500": true, "600": true, "700": true,
		"normal": true, "bold": true,
	}
)

// knownFontStyleUtilities are font-* classes that are not weights.
var knownFontStyleUtilities = map[string]bool{
	"font-sans":  true,
	"font-serif": true,
	"font-mono":  true,
}

// TypographyRule enforces the type scale: only token font sizes and
// weights are allowed, in classes and in CSS declarations.
type TypographyRule struct{}

// NewTypographyRule creates the typography rule.
func NewTypographyRule() *TypographyRule {
	return &TypographyRule{}
}

// ID returns the primary rule identifier.
func (r *TypographyRule) ID() string { return "typography/non-token-size" }

// Category returns the rule category.
func (r *TypographyRule) Category() string { return CategoryDiscipline }

// Check validates font size and weight utilities against the token set.
func (r *TypographyRule) Check(_ context.Context, data *CheckData) []model.Finding {
	var findings []model.Finding

	for _, cl := range data.File.ClassLists {
		for _, raw := range cl.Classes {
			cls := stripVariants(raw)

			if arbitraryTextRe.MatchString(cls) {
				findings = append(findings, model.NewFinding(
					"typography/non-token-size",
					"Arbitrary font size",
					fmt.Sprintf("%q is off the type scale", raw),
					raw, data.File.Path, cl.Line,
				))
				continue
			}
			if arbitraryFontRe.MatchString(cls) {
				findings = append(findings, model.NewFinding(
					"typography/non-token-weight",
					"Arbitrary font weight",
					fmt.Sprintf("%q is not a token weight", raw),
					raw, data.File.Path, cl.Line,
				))
				continue
			}

			if suffix, ok := strings.CutPrefix(cls, "font-"); ok {
				if knownFontStyleUtilities[cls] || strings.Contains(suffix, "-") {
					continue
				}
				if isWeightName(suffix) && !data.Tokens.HasFontWeight(suffix) {
					findings = append(findings, model.NewFinding(
						"typography/non-token-weight",
						"Non-token font weight",
						fmt.Sprintf("%q is outside the permitted weights", raw),
						raw, data.File.Path, cl.Line,
					))
				}
			}
		}
	}

	for _, decl := range data.File.Declarations {
		switch decl.Property {
		case "font-size":
			findings = append(findings, model.NewFinding(
				"typography/non-token-size",
				"Raw font-size declaration",
				fmt.Sprintf("font-size: %s bypasses the type scale tokens", decl.Value),
				decl.Value, data.File.Path, decl.Line,
			))
		case "font-weight":
			if !tokenWeightValues[strings.TrimSpace(decl.Value)] {
				findings = append(findings, model.NewFinding(
					"typography/non-token-weight",
					"Non-token font-weight declaration",
					fmt.Sprintf("font-weight: %s is outside the permitted weights", decl.Value),
					decl.Value, data.File.Path, decl.Line,
				))
			}
		}
	}
	return findings
}

// isWeightName reports whether a font-* suffix names a weight.
func isWeightName(suffix string) bool {
	switch suffix {
	case "thin", "extralight", "light", "normal", "medium",
		"semibold", "bold", "extrabold", "black":
		return true
	}
	return false
}
