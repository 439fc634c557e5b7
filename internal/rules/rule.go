package rules

import (
	"context"

	"github.com/uiforge/designlint/internal/model"
)

// Rule category constants.
const (
	// CategorySurface is used by rules that govern element surfaces
	// (shadows, glass, cards).
	CategorySurface = "surface"
	// CategoryPalette is used by rules that govern color usage.
	CategoryPalette = "palette"
	// CategoryLayout is used by rules that govern spacing and structure.
	CategoryLayout = "layout"
	// CategoryMotion is used by rules that govern animation.
	CategoryMotion = "motion"
	// CategoryDiscipline is used by rules that govern coding discipline
	// (inline styles, typography tokens).
	CategoryDiscipline = "discipline"
)

// Rule defines the interface for individual design contract rules.
// Each rule focuses on one clause of the contract.
//
// Design decision: We use an interface rather than rule functions because:
//  1. Allows for easy extension with new rules
//  2. Enables testing with mock rules
//  3. Rules can carry their own compiled patterns as state
type Rule interface {
	// ID returns the rule identifier used in reports and config,
	// e.g. "shadow/forbidden-scale".
	ID() string

	// Category returns the rule's contract category.
	Category() string

	// Check evaluates the rule against one source file and returns any
	// violations found.
	Check(ctx context.Context, data *CheckData) []model.Finding
}

// CheckData contains everything a rule may inspect for one file.
//
// Design decision: We pass all inputs in a single struct rather than
// multiple parameters because:
//  1. Not all rules need all inputs
//  2. Adding new inputs doesn't change rule signatures
//  3. Easier to construct in tests
type CheckData struct {
	// File is the parsed source file under evaluation.
	File *model.SourceFile

	// Tokens is the active design token set.
	Tokens *model.TokenSet

	// InlineEnforced promotes inline style findings to blocking errors.
	InlineEnforced bool

	// InlineApproved marks this file as carrying a recorded inline coding
	// approval for its current content.
	InlineApproved bool
}

// Engine coordinates rule evaluation across files.
// It aggregates findings from all registered rules into a unified list.
type Engine struct {
	// rules is the ordered list of registered rules.
	rules []Rule

	// disabled holds rule IDs excluded from evaluation.
	disabled map[string]bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDisabledRules excludes the given rule IDs from evaluation.
func WithDisabledRules(ids []string) EngineOption {
	return func(e *Engine) {
		for _, id := range ids {
			e.disabled[id] = true
		}
	}
}

// NewEngine creates an Engine with all built-in rules registered.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		disabled: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}

	// Surface rules
	e.Register(NewShadowRule())
	e.Register(NewGlassRule())

	// Palette rules
	e.Register(NewColorRule())

	// Discipline rules
	e.Register(NewInlineStyleRule())
	e.Register(NewTypographyRule())

	// Layout rules
	e.Register(NewSpacingRule())
	e.Register(NewStructureRule())

	// Motion rules
	e.Register(NewAnimationRule())

	return e
}

// Register adds a rule to the engine.
func (e *Engine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// RuleIDs returns the IDs of all registered rules in evaluation order,
// excluding disabled ones.
func (e *Engine) RuleIDs() []string {
	ids := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		if !e.disabled[r.ID()] {
			ids = append(ids, r.ID())
		}
	}
	return ids
}

// Check runs all enabled rules against one file and returns deduplicated
// findings. Rule evaluation respects context cancellation between rules.
func (e *Engine) Check(ctx context.Context, data *CheckData) ([]model.Finding, error) {
	var all []model.Finding
	for _, rule := range e.rules {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}
		if e.disabled[rule.ID()] {
			continue
		}
		all = append(all, rule.Check(ctx, data)...)
	}

	// Rules may emit findings under IDs other than their primary one,
	// so the disabled set is applied to emitted IDs as well.
	kept := make([]model.Finding, 0, len(all))
	for _, f := range all {
		if !e.disabled[f.Rule] {
			kept = append(kept, f)
		}
	}
	return dedupe(kept), nil
}

// dedupe removes duplicate findings based on rule, value, and position,
// keeping the most severe instance.
func dedupe(findings []model.Finding) []model.Finding {
	seen := make(map[string]int)
	result := make([]model.Finding, 0, len(findings))

	for _, f := range findings {
		key := f.Rule + "|" + f.Value + "|" + f.Location()
		if idx, exists := seen[key]; exists {
			if f.Severity > result[idx].Severity {
				result[idx] = f
			}
			continue
		}
		seen[key] = len(result)
		result = append(result, f)
	}
	return result
}
