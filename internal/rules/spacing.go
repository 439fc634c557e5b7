package rules

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/uiforge/designlint/internal/model"
)

var (
	// arbitrarySpacingRe matches arbitrary pixel spacing utilities like
	// "mt-[3px]", "p-[13px]", "gap-[10px]", "space-y-[7px]".
	arbitrarySpacingRe = regexp.MustCompile(`^(?:m|p)[trblxy]?-\[(\d+)px\]$|^(?:gap|space-[xy]|inset|top|right|bottom|left)-\[(\d+)px\]$`)

	// pxValueRe extracts pixel magnitudes from CSS declaration values.
	pxValueRe = regexp.MustCompile(`(\d+)px`)
)

// spacingProperties are CSS properties governed by the spacing scale.
var spacingProperties = map[string]bool{
	"margin": true, "margin-top": true, "margin-right": true,
	"margin-bottom": true, "margin-left": true,
	"padding": true, "padding-top": true, "padding-right": true,
	"padding-bottom": true, "padding-left": true,
	"gap": true, "row-gap": true, "column-gap": true,
	"top": true, "right": true, "bottom": true, "left": true,
}

// SpacingRule enforces the 4px spacing scale on arbitrary utility values
// and CSS declarations.
type SpacingRule struct{}

// NewSpacingRule creates the spacing rule.
func NewSpacingRule() *SpacingRule {
	return &SpacingRule{}
}

// ID returns the primary rule identifier.
func (r *SpacingRule) ID() string { return "spacing/off-scale" }

// Category returns the rule category.
func (r *SpacingRule) Category() string { return CategoryLayout }

// Check flags spacing values that land off the token scale.
func (r *SpacingRule) Check(_ context.Context, data *CheckData) []model.Finding {
	var findings []model.Finding

	for _, cl := range data.File.ClassLists {
		for _, raw := range cl.Classes {
			cls := stripVariants(raw)
			m := arbitrarySpacingRe.FindStringSubmatch(cls)
			if m == nil {
				continue
			}
			px := firstNonEmpty(m[1:])
			n, err := strconv.Atoi(px)
			if err != nil {
				continue
			}
			if !data.Tokens.OnSpacingScale(n) {
				findings = append(findings, model.NewFinding(
					"spacing/off-scale",
					"Spacing value off the scale",
					fmt.Sprintf("%q uses %dpx, which is not on the %dpx scale", raw, n, data.Tokens.SpacingStep),
					raw, data.File.Path, cl.Line,
				))
			}
		}
	}

	for _, decl := range data.File.Declarations {
		if !spacingProperties[decl.Property] {
			continue
		}
		for _, m := range pxValueRe.FindAllStringSubmatch(decl.Value, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil || data.Tokens.OnSpacingScale(n) {
				continue
			}
			findings = append(findings, model.NewFinding(
				"spacing/off-scale",
				"Spacing declaration off the scale",
				fmt.Sprintf("%s: %s uses %dpx, which is not on the %dpx scale",
					decl.Property, decl.Value, n, data.Tokens.SpacingStep),
				decl.Value, data.File.Path, decl.Line,
			))
		}
	}
	return findings
}

// firstNonEmpty returns the first non-empty string in a slice.
func firstNonEmpty(values []string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
