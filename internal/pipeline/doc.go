// Package pipeline orchestrates a validation run as a sequence of steps:
// discover and parse sources, resolve inline coding approvals, evaluate
// rules, score, and persist. Steps share a State value and respect context
// cancellation between steps; rule evaluation fans out across files under a
// concurrency limit.
package pipeline
