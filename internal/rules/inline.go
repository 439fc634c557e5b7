package rules

import (
	"context"
	"fmt"

	"github.com/uiforge/designlint/internal/model"
)

// InlineStyleRule enforces the inline coding policy: style attributes are
// blocking violations unless the file carries a recorded approval for its
// current content. Enforcement mode overrides approvals.
type InlineStyleRule struct{}

// NewInlineStyleRule creates the inline style rule.
func NewInlineStyleRule() *InlineStyleRule {
	return &InlineStyleRule{}
}

// ID returns the primary rule identifier.
func (r *InlineStyleRule) ID() string { return "inline/style-attribute" }

// Category returns the rule category.
func (r *InlineStyleRule) Category() string { return CategoryDiscipline }

// Check flags every inline style attribute in the file.
func (r *InlineStyleRule) Check(_ context.Context, data *CheckData) []model.Finding {
	var findings []model.Finding

	for _, style := range data.File.InlineStyles {
		ruleID := "inline/style-attribute"
		title := "Inline style attribute"
		if data.InlineApproved && !data.InlineEnforced {
			ruleID = "inline/approved-style"
			title = "Approved inline style"
		}

		desc := "style attribute bypasses the design token system"
		if style.Tag != "" {
			desc = fmt.Sprintf("style attribute on <%s> bypasses the design token system", style.Tag)
		}
		findings = append(findings, model.NewFinding(
			ruleID, title, desc, style.Value, data.File.Path, style.Line,
		))
	}
	return findings
}
