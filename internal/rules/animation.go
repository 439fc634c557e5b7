package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/uiforge/designlint/internal/model"
)

// cssAnimationKeywords are animation shorthand values that are not names.
var cssAnimationKeywords = map[string]bool{
	"none": true, "infinite": true, "linear": true, "ease": true,
	"ease-in": true, "ease-out": true, "ease-in-out": true,
	"forwards": true, "backwards": true, "both": true, "alternate": true,
	"normal": true, "reverse": true, "running": true, "paused": true,
}

// AnimationRule enforces the motion tokens: only theme animation names are
// allowed in animate-* utilities and CSS animation declarations.
type AnimationRule struct{}

// NewAnimationRule creates the animation rule.
func NewAnimationRule() *AnimationRule {
	return &AnimationRule{}
}

// ID returns the primary rule identifier.
func (r *AnimationRule) ID() string { return "animation/non-token" }

// Category returns the rule category.
func (r *AnimationRule) Category() string { return CategoryMotion }

// Check validates animation names against the token set.
func (r *AnimationRule) Check(_ context.Context, data *CheckData) []model.Finding {
	var findings []model.Finding

	for _, cl := range data.File.ClassLists {
		for _, raw := range cl.Classes {
			cls := stripVariants(raw)
			name, ok := strings.CutPrefix(cls, "animate-")
			if !ok || name == "" {
				continue
			}
			if strings.HasPrefix(name, "[") || !data.Tokens.HasAnimation(name) {
				findings = append(findings, model.NewFinding(
					"animation/non-token",
					"Non-token animation",
					fmt.Sprintf("%q is not a theme animation", raw),
					raw, data.File.Path, cl.Line,
				))
			}
		}
	}

	for _, decl := range data.File.Declarations {
		if decl.Property != "animation" && decl.Property != "animation-name" {
			continue
		}
		name := animationName(decl.Value)
		if name == "" || data.Tokens.HasAnimation(name) {
			continue
		}
		findings = append(findings, model.NewFinding(
			"animation/non-token",
			"Non-token animation declaration",
			fmt.Sprintf("%s: %s names an animation outside the theme", decl.Property, decl.Value),
			name, data.File.Path, decl.Line,
		))
	}
	return findings
}

// animationName extracts the animation name from a shorthand value.
// Returns "" when the value contains only keywords and timings.
func animationName(value string) string {
	for _, part := range strings.Fields(value) {
		p := strings.TrimSuffix(part, ",")
		if cssAnimationKeywords[strings.ToLower(p)] {
			continue
		}
		if strings.ContainsAny(p, "0123456789(") {
			continue // durations, delays, cubic-bezier()
		}
		return p
	}
	return ""
}
