// Package scanner discovers UI source files and extracts their styling
// surface: class attribute lists, inline style attributes, raw hex color
// literals, and CSS declarations.
//
// The scanner walks one file or a directory tree, classifies files by
// extension, and produces model.SourceFile values for the rule engine.
// HTML is parsed with golang.org/x/net/html; JSX/TSX attributes are
// extracted with anchored regular expressions since the styling surface of
// a component is fully visible in its attribute literals.
package scanner
