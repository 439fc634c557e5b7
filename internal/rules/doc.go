// Package rules implements the design contract rule set.
//
// Each rule inspects one aspect of a parsed source file: shadow utilities,
// color usage, glass morphism requirements, inline styles, typography,
// spacing, animation names, and page structure. The Engine registers all
// built-in rules, runs them against each file, and deduplicates findings.
package rules
