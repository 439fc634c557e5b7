package rules

import (
	"context"
	"testing"

	"github.com/uiforge/designlint/internal/model"
)

// TestColorRuleRawHex tests that hex colors outside the palette are flagged.
func TestColorRuleRawHex(t *testing.T) {
	t.Parallel()

	sf := &model.SourceFile{
		Path: "src/Hero.tsx",
		Kind: model.KindJSX,
		HexColors: []model.HexLiteral{
			{Value: "#6366f1", Line: 3},  // brand-500, in palette
			{Value: "#FF0000", Line: 7},  // not in palette
			{Value: "#fff", Line: 9},     // white shorthand, in palette
			{Value: "#bada55", Line: 12}, // not in palette
		},
	}

	findings := NewColorRule().Check(context.Background(), checkData(sf))
	rawHex := findingsByRule(findings, "color/raw-hex")

	if len(rawHex) != 2 {
		t.Fatalf("got %d raw-hex findings, expected 2", len(rawHex))
	}
	if rawHex[0].Value != "#FF0000" || rawHex[0].Line != 7 {
		t.Errorf("first finding = %q at line %d, expected #FF0000 at 7", rawHex[0].Value, rawHex[0].Line)
	}
	if rawHex[1].Value != "#bada55" {
		t.Errorf("second finding = %q, expected #bada55", rawHex[1].Value)
	}
}

// TestColorRuleStockUtility tests that stock Tailwind color utilities are
// flagged as warnings.
func TestColorRuleStockUtility(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		class    string
		expected int
	}{
		{"bg-blue-500", 1},
		{"text-indigo-600", 1},
		{"hover:bg-rose-400", 1},
		{"md:hover:border-slate-200", 1},
		{"bg-brand-500", 0}, // palette utility
		{"text-ink-900", 0},
		{"bg-white/60", 0},
		{"flex", 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.class, func(t *testing.T) {
			t.Parallel()
			sf := &model.SourceFile{
				Path:       "src/a.tsx",
				Kind:       model.KindJSX,
				ClassLists: []model.ClassList{{Classes: []string{tc.class}, Line: 1}},
			}
			findings := NewColorRule().Check(context.Background(), checkData(sf))
			got := findingsByRule(findings, "color/non-token-utility")
			if len(got) != tc.expected {
				t.Errorf("got %d non-token-utility findings for %q, expected %d",
					len(got), tc.class, tc.expected)
			}
		})
	}
}

// TestColorRuleTokenUsage tests that palette utility usage is recorded.
func TestColorRuleTokenUsage(t *testing.T) {
	t.Parallel()

	sf := &model.SourceFile{
		Path: "src/a.tsx",
		Kind: model.KindJSX,
		ClassLists: []model.ClassList{
			{Classes: []string{"bg-surface-50", "text-ink-900", "hover:text-brand-600"}, Line: 1},
		},
	}

	findings := NewColorRule().Check(context.Background(), checkData(sf))
	usage := findingsByRule(findings, "color/token-usage")
	if len(usage) != 1 {
		t.Fatalf("got %d token-usage findings, expected 1", len(usage))
	}
	if usage[0].Severity != model.SeverityInfo {
		t.Errorf("Severity = %v, expected info", usage[0].Severity)
	}
}

// TestStripVariants tests variant prefix stripping.
func TestStripVariants(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected string
	}{
		{"hover:bg-brand-500", "bg-brand-500"},
		{"md:hover:text-ink-900", "text-ink-900"},
		{"bg-surface-50", "bg-surface-50"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			if got := stripVariants(tc.input); got != tc.expected {
				t.Errorf("stripVariants(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}
