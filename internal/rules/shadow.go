package rules

import (
	"context"
	"fmt"

	"github.com/uiforge/designlint/internal/model"
)

// forbiddenShadows are the stock Tailwind shadow utilities the contract
// bans. The glass morphism depth model replaces all of them.
var forbiddenShadows = map[string]bool{
	"shadow":     true,
	"shadow-sm":  true,
	"shadow-md":  true,
	"shadow-lg":  true,
	"shadow-xl":  true,
	"shadow-2xl": true,
}

// ShadowRule enforces the glass shadow contract: stock shadow utilities are
// forbidden everywhere, and card surfaces must carry a glass shadow token.
type ShadowRule struct{}

// NewShadowRule creates the shadow rule.
func NewShadowRule() *ShadowRule {
	return &ShadowRule{}
}

// ID returns the primary rule identifier.
func (r *ShadowRule) ID() string { return "shadow/forbidden-scale" }

// Category returns the rule category.
func (r *ShadowRule) Category() string { return CategorySurface }

// Check scans class lists for forbidden shadows and cards missing glass
// shadow tokens.
func (r *ShadowRule) Check(_ context.Context, data *CheckData) []model.Finding {
	var findings []model.Finding
	glassUsed := 0

	for _, cl := range data.File.ClassLists {
		for _, cls := range cl.Classes {
			if forbiddenShadows[cls] {
				findings = append(findings, model.NewFinding(
					"shadow/forbidden-scale",
					"Forbidden shadow utility",
					fmt.Sprintf("%q is not part of the glass shadow scale", cls),
					cls, data.File.Path, cl.Line,
				))
			}
		}

		if glass := cl.FirstWithPrefix("shadow-glass-"); glass != "" {
			suffix := glass[len("shadow-"):]
			if data.Tokens.HasShadow(suffix) {
				glassUsed++
			} else {
				findings = append(findings, model.NewFinding(
					"shadow/forbidden-scale",
					"Unknown glass shadow token",
					fmt.Sprintf("%q is not defined in the token set", glass),
					glass, data.File.Path, cl.Line,
				))
			}
			continue
		}

		if cl.IsCard() {
			findings = append(findings, model.NewFinding(
				"shadow/missing-glass",
				"Card without glass shadow",
				"element classified as a card carries no shadow-glass-* token",
				cl.Raw, data.File.Path, cl.Line,
			))
		}
	}

	if glassUsed > 0 {
		findings = append(findings, model.NewFinding(
			"shadow/glass-usage",
			"Glass shadow coverage",
			fmt.Sprintf("%d element(s) use glass shadow tokens", glassUsed),
			"", data.File.Path, 0,
		))
	}
	return findings
}
