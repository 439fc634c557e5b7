package rules

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/uiforge/designlint/internal/model"
)

var (
	// navMarkerRe matches a rendered <nav> element or a navigation
	// component reference in JSX.
	navMarkerRe = regexp.MustCompile(`<(?:nav\b|Nav\b|Navbar\b|Navigation\b)`)

	// footerMarkerRe matches a rendered <footer> element or footer
	// component reference in JSX.
	footerMarkerRe = regexp.MustCompile(`<(?:footer\b|Footer\b)`)
)

// StructureRule enforces the marketing shell contract: every page-level
// source must render a navigation and a footer.
type StructureRule struct{}

// NewStructureRule creates the structure rule.
func NewStructureRule() *StructureRule {
	return &StructureRule{}
}

// ID returns the primary rule identifier.
func (r *StructureRule) ID() string { return "structure/missing-nav" }

// Category returns the rule category.
func (r *StructureRule) Category() string { return CategoryLayout }

// Check verifies page sources render <nav> and <footer>.
// Non-page files (components, stylesheets) are exempt.
func (r *StructureRule) Check(_ context.Context, data *CheckData) []model.Finding {
	if !isPageSource(data.File) {
		return nil
	}

	var findings []model.Finding
	if !navMarkerRe.MatchString(data.File.Content) {
		findings = append(findings, model.NewFinding(
			"structure/missing-nav",
			"Page without navigation",
			"page source renders no <nav> element or navigation component",
			"", data.File.Path, 0,
		))
	}
	if !footerMarkerRe.MatchString(data.File.Content) {
		findings = append(findings, model.NewFinding(
			"structure/missing-footer",
			"Page without footer",
			"page source renders no <footer> element or footer component",
			"", data.File.Path, 0,
		))
	}
	return findings
}

// isPageSource reports whether a file is a page-level source: an HTML
// document, a Next.js app-router page, or a file under a pages/ directory.
func isPageSource(sf *model.SourceFile) bool {
	if sf.Kind == model.KindCSS {
		return false
	}
	if sf.Kind == model.KindHTML {
		return true
	}
	base := path.Base(sf.Path)
	if base == "page.tsx" || base == "page.jsx" {
		return true
	}
	for _, seg := range strings.Split(path.Dir(sf.Path), "/") {
		if seg == "pages" {
			return true
		}
	}
	return false
}
