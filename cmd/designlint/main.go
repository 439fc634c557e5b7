// Package main provides the entry point for the designlint CLI.
//
// designlint enforces the marketing site's design contract: glass morphism
// surfaces, the brand color palette, token typography and spacing, and the
// inline coding policy. It validates UI sources statically and audits the
// running dev server.
//
// Usage:
//
//	designlint validate <path>
//	designlint page
//	designlint snapshot
//
// See --help for all available options.
package main

// main is the entry point for designlint.
func main() {
	Execute()
}
