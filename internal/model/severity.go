package model

// Severity represents the blocking level of a design contract violation.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates informational findings that never affect the
	// compliance score. Examples: deprecated-but-tolerated utilities,
	// token usage statistics.
	SeverityInfo Severity = iota

	// SeverityWarning indicates contract deviations that are tolerated while
	// the overall compliance score stays above the threshold.
	// Examples: non-token spacing values, missing hover transitions.
	SeverityWarning

	// SeverityError indicates blocking violations. A single error fails the
	// run regardless of score. Examples: forbidden shadow utilities on glass
	// surfaces, raw hex colors outside the palette, unapproved inline styles.
	SeverityError
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// RuleInfo contains metadata about a rule violation type including severity,
// impact description, and remediation recommendation.
type RuleInfo struct {
	Severity       Severity
	Impact         string
	Recommendation string
}

// ruleInfoMapping maps rule identifiers to their metadata.
// This centralized mapping ensures consistent severity assessment across
// the application.
//
// Design decision: We use a map rather than embedding severity in each rule
// because:
// 1. It allows updating severity policy without modifying rule code
// 2. It provides a single source of truth for the design contract
// 3. It makes it easy to generate contract documentation
var ruleInfoMapping = map[string]RuleInfo{
	// ERROR - blocking violations
	"shadow/forbidden-scale": {
		Severity:       SeverityError,
		Impact:         "Standard Tailwind shadows (shadow-sm/md/lg/xl) break the glass morphism depth model and flatten card surfaces.",
		Recommendation: "Replace with the glass shadow tokens: shadow-glass-sm, shadow-glass-md, or shadow-glass-lg.",
	},
	"shadow/missing-glass": {
		Severity:       SeverityError,
		Impact:         "A card surface without a glass shadow token loses the elevation cue the design system depends on.",
		Recommendation: "Add shadow-glass-sm, shadow-glass-md, or shadow-glass-lg to the card's class list.",
	},
	"color/raw-hex": {
		Severity:       SeverityError,
		Impact:         "Hex colors outside the palette drift from the brand and cannot be re-themed centrally.",
		Recommendation: "Use a palette token class (e.g. text-ink-900, bg-surface-50) or add the color to the theme first.",
	},
	"glass/missing-blur": {
		Severity:       SeverityError,
		Impact:         "A translucent card without backdrop blur renders as a washed-out rectangle instead of glass.",
		Recommendation: "Add a backdrop-blur-* utility or backdrop-filter: blur(...) to every translucent card surface.",
	},
	"inline/style-attribute": {
		Severity:       SeverityError,
		Impact:         "Inline style attributes bypass the token system and cannot be audited or re-themed.",
		Recommendation: "Move the declaration into a Tailwind utility or a theme extension, or request inline coding approval.",
	},
	"structure/missing-nav": {
		Severity:       SeverityError,
		Impact:         "A marketing page without a <nav> element breaks the shared shell contract and keyboard navigation.",
		Recommendation: "Render the shared navigation component on every marketing route.",
	},
	"page/unreachable": {
		Severity:       SeverityError,
		Impact:         "An unreachable or erroring route cannot be audited and likely fails for visitors too.",
		Recommendation: "Start the dev server on the configured port and verify the route renders.",
	},
	"page/missing-copy": {
		Severity:       SeverityError,
		Impact:         "Required marketing copy is missing from the rendered homepage.",
		Recommendation: "Restore the approved copy string or update the contract's requiredCopy list.",
	},
	"structure/missing-footer": {
		Severity:       SeverityError,
		Impact:         "A marketing page without a <footer> element drops required legal and contact links.",
		Recommendation: "Render the shared footer component on every marketing route.",
	},

	// WARNING - tolerated above the compliance threshold
	"color/non-token-utility": {
		Severity:       SeverityWarning,
		Impact:         "Stock Tailwind color utilities (e.g. bg-blue-500) are close to but not exactly the brand palette.",
		Recommendation: "Prefer the named palette utilities generated from the theme extension.",
	},
	"glass/opaque-card": {
		Severity:       SeverityWarning,
		Impact:         "Fully opaque card backgrounds are permitted but lose the glass morphism layering effect.",
		Recommendation: "Consider a translucent background (e.g. bg-white/60) with backdrop blur.",
	},
	"typography/non-token-size": {
		Severity:       SeverityWarning,
		Impact:         "Arbitrary font sizes fragment the type scale and cause uneven vertical rhythm.",
		Recommendation: "Use the type scale tokens (text-xs through text-6xl) defined in the theme.",
	},
	"typography/non-token-weight": {
		Severity:       SeverityWarning,
		Impact:         "Arbitrary font weights render inconsistently across the variable font range.",
		Recommendation: "Use font-normal, font-medium, font-semibold, or font-bold.",
	},
	"spacing/off-scale": {
		Severity:       SeverityWarning,
		Impact:         "Spacing values off the 4px scale create visual misalignment with neighboring components.",
		Recommendation: "Round to the nearest token on the spacing scale.",
	},
	"animation/non-token": {
		Severity:       SeverityWarning,
		Impact:         "Ad hoc animation names are not coordinated with the motion guidelines and may be removed by purge.",
		Recommendation: "Use the named animations from the theme (e.g. animate-fade-in, animate-float).",
	},
	"inline/approved-style": {
		Severity:       SeverityWarning,
		Impact:         "This inline style carries a recorded approval but still bypasses the token system.",
		Recommendation: "Migrate the declaration into the theme when the component is next touched.",
	},

	// INFO - no score impact
	"shadow/glass-usage": {
		Severity:       SeverityInfo,
		Impact:         "Glass shadow token usage recorded for coverage statistics.",
		Recommendation: "No action needed.",
	},
	"color/token-usage": {
		Severity:       SeverityInfo,
		Impact:         "Palette token usage recorded for coverage statistics.",
		Recommendation: "No action needed.",
	},
}

// GetSeverity returns the severity level for a rule identifier.
// Returns SeverityInfo if the rule is not in the mapping.
func GetSeverity(ruleID string) Severity {
	if info, ok := ruleInfoMapping[ruleID]; ok {
		return info.Severity
	}
	return SeverityInfo
}

// GetRuleInfo returns the full metadata for a rule identifier.
// Returns a default RuleInfo with SeverityInfo if the rule is not in the mapping.
func GetRuleInfo(ruleID string) RuleInfo {
	if info, ok := ruleInfoMapping[ruleID]; ok {
		return info
	}
	return RuleInfo{
		Severity:       SeverityInfo,
		Impact:         "Unknown rule. Review manually.",
		Recommendation: "Check the rule identifier against the design contract.",
	}
}

// RuleIDs returns all rule identifiers known to the contract, in no
// particular order. Used by the tokens and consultation output.
func RuleIDs() []string {
	ids := make([]string, 0, len(ruleInfoMapping))
	for id := range ruleInfoMapping {
		ids = append(ids, id)
	}
	return ids
}
