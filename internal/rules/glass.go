package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/uiforge/designlint/internal/model"
)

// GlassRule enforces glass morphism on card surfaces: a translucent card
// must carry backdrop blur, and the blur level must be a token.
type GlassRule struct{}

// NewGlassRule creates the glass morphism rule.
func NewGlassRule() *GlassRule {
	return &GlassRule{}
}

// ID returns the primary rule identifier.
func (r *GlassRule) ID() string { return "glass/missing-blur" }

// Category returns the rule category.
func (r *GlassRule) Category() string { return CategorySurface }

// Check inspects card class lists and CSS card selectors for the
// translucency-plus-blur pairing the contract demands.
func (r *GlassRule) Check(_ context.Context, data *CheckData) []model.Finding {
	findings := r.checkClassLists(data)
	findings = append(findings, r.checkStylesheets(data)...)
	return findings
}

// checkClassLists validates utility-class card surfaces.
func (r *GlassRule) checkClassLists(data *CheckData) []model.Finding {
	var findings []model.Finding

	for _, cl := range data.File.ClassLists {
		if !cl.IsCard() {
			continue
		}

		blur := cl.FirstWithPrefix("backdrop-blur")
		translucent := hasTranslucentBG(cl)

		switch {
		case translucent && blur == "":
			findings = append(findings, model.NewFinding(
				"glass/missing-blur",
				"Translucent card without backdrop blur",
				"translucent background requires a backdrop-blur-* utility",
				cl.Raw, data.File.Path, cl.Line,
			))
		case blur != "":
			if suffix, ok := strings.CutPrefix(blur, "backdrop-blur-"); ok && !data.Tokens.HasBlur(suffix) {
				findings = append(findings, model.NewFinding(
					"glass/missing-blur",
					"Non-token backdrop blur level",
					fmt.Sprintf("%q is not a permitted blur level", blur),
					blur, data.File.Path, cl.Line,
				))
			}
		case !translucent:
			findings = append(findings, model.NewFinding(
				"glass/opaque-card",
				"Opaque card surface",
				"card has neither a translucent background nor backdrop blur",
				cl.Raw, data.File.Path, cl.Line,
			))
		}
	}
	return findings
}

// checkStylesheets validates CSS card selectors: a translucent background
// declaration must be paired with backdrop-filter: blur in the same block.
func (r *GlassRule) checkStylesheets(data *CheckData) []model.Finding {
	if data.File.Kind != model.KindCSS {
		return nil
	}

	type block struct {
		translucentLine int
		hasBlur         bool
	}
	blocks := make(map[string]*block)
	var order []string

	for _, decl := range data.File.Declarations {
		sel := decl.Selector
		if sel == "" || !isCardSelector(sel) {
			continue
		}
		b, ok := blocks[sel]
		if !ok {
			b = &block{}
			blocks[sel] = b
			order = append(order, sel)
		}
		switch decl.Property {
		case "background", "background-color":
			if isTranslucentValue(decl.Value) && b.translucentLine == 0 {
				b.translucentLine = decl.Line
			}
		case "backdrop-filter", "-webkit-backdrop-filter":
			if strings.Contains(decl.Value, "blur") {
				b.hasBlur = true
			}
		}
	}

	var findings []model.Finding
	for _, sel := range order {
		b := blocks[sel]
		if b.translucentLine > 0 && !b.hasBlur {
			findings = append(findings, model.NewFinding(
				"glass/missing-blur",
				"Card selector without backdrop blur",
				fmt.Sprintf("selector %q sets a translucent background but no backdrop-filter: blur", sel),
				sel, data.File.Path, b.translucentLine,
			))
		}
	}
	return findings
}

// hasTranslucentBG reports whether a class list sets an alpha background,
// e.g. "bg-white/60" or "bg-surface-50/40".
func hasTranslucentBG(cl model.ClassList) bool {
	for _, cls := range cl.Classes {
		cls = stripVariants(cls)
		if strings.HasPrefix(cls, "bg-") && strings.Contains(cls, "/") {
			return true
		}
	}
	return false
}

// isCardSelector reports whether a CSS selector targets a card surface.
func isCardSelector(sel string) bool {
	s := strings.ToLower(sel)
	return strings.Contains(s, "card") || strings.Contains(s, "glass")
}

// isTranslucentValue reports whether a background value is translucent.
func isTranslucentValue(value string) bool {
	v := strings.ToLower(value)
	if strings.Contains(v, "transparent") {
		return true
	}
	// rgba()/hsla() with an alpha below 1
	if (strings.Contains(v, "rgba(") || strings.Contains(v, "hsla(")) &&
		!strings.Contains(v, ", 1)") && !strings.Contains(v, ",1)") {
		return true
	}
	// 8-digit hex with alpha below ff
	if len(v) >= 9 && strings.HasPrefix(v, "#") && len(strings.TrimSpace(v)) == 9 &&
		!strings.HasSuffix(strings.TrimSpace(v), "ff") {
		return true
	}
	return false
}
