// Package model defines the core data structures shared across designlint.
//
// It contains the design token set, the severity taxonomy, the finding and
// report types produced by rule evaluation, and the parsed source file
// representation consumed by rules. All types in this package are plain data
// with no I/O so they can be shared between the scanner, rule engine, report
// writers, and database layers without import cycles.
package model
