package model

import "strings"

// FileKind classifies a scanned source file by how its styling is extracted.
type FileKind int

const (
	// KindUnknown is a file the scanner does not understand.
	KindUnknown FileKind = iota

	// KindJSX covers .jsx and .tsx component sources.
	KindJSX

	// KindHTML covers .html and .htm markup.
	KindHTML

	// KindCSS covers .css stylesheets.
	KindCSS
)

// String returns the file kind name for logging.
func (k FileKind) String() string {
	switch k {
	case KindJSX:
		return "jsx"
	case KindHTML:
		return "html"
	case KindCSS:
		return "css"
	default:
		return "unknown"
	}
}

// SourceFile is the parsed representation of one scanned file.
// The scanner produces it once; every rule reads from it.
//
// Design decision: Rules receive pre-extracted class lists and declarations
// rather than raw text so that each file is tokenized exactly once and all
// rules agree on line attribution.
type SourceFile struct {
	// Path is the file path relative to the scan root.
	Path string

	// Kind is the detected file type.
	Kind FileKind

	// Content is the raw file content. Rules that need full-text matching
	// (e.g. structure checks) read it directly.
	Content string

	// ClassLists contains every class attribute found in the file.
	ClassLists []ClassList

	// InlineStyles contains every inline style attribute found in the file.
	InlineStyles []InlineStyle

	// HexColors contains raw hex color literals found in the file,
	// including those inside class lists and style values.
	HexColors []HexLiteral

	// Declarations contains CSS property declarations. Populated for CSS
	// files and for the bodies of inline style attributes.
	Declarations []Declaration
}

// ClassList is one class/className attribute occurrence.
type ClassList struct {
	// Classes are the whitespace-split class names.
	Classes []string

	// Raw is the original attribute value.
	Raw string

	// Tag is the element name the attribute appeared on ("div", "section").
	// Empty when the element could not be determined.
	Tag string

	// Line is the 1-based line number of the attribute.
	Line int
}

// Has reports whether the class list contains the exact class name.
func (c ClassList) Has(name string) bool {
	for _, cls := range c.Classes {
		if cls == name {
			return true
		}
	}
	return false
}

// HasPrefix reports whether any class starts with the given prefix.
func (c ClassList) HasPrefix(prefix string) bool {
	return c.FirstWithPrefix(prefix) != ""
}

// FirstWithPrefix returns the first class starting with prefix, or "".
func (c ClassList) FirstWithPrefix(prefix string) string {
	for _, cls := range c.Classes {
		if strings.HasPrefix(cls, prefix) {
			return cls
		}
	}
	return ""
}

// IsCard reports whether this class list marks a card surface.
// The contract classifies an element as a card when it carries the "card"
// class, a "glass" class, or a rounded translucent background.
func (c ClassList) IsCard() bool {
	if c.Has("card") || c.Has("glass") || c.HasPrefix("glass-") {
		return true
	}
	// rounded-* plus a translucent bg utility (bg-x/NN) reads as a card
	if c.HasPrefix("rounded") {
		for _, cls := range c.Classes {
			if strings.HasPrefix(cls, "bg-") && strings.Contains(cls, "/") {
				return true
			}
		}
	}
	return false
}

// InlineStyle is one style attribute occurrence.
type InlineStyle struct {
	// Value is the attribute body, e.g. "color: #fff; margin-top: 3px".
	Value string

	// Tag is the element name the attribute appeared on.
	Tag string

	// Line is the 1-based line number of the attribute.
	Line int
}

// HexLiteral is a raw hex color occurrence.
type HexLiteral struct {
	// Value is the literal as written, e.g. "#FFF" or "#6366f1".
	Value string

	// Line is the 1-based line number.
	Line int
}

// Declaration is a single CSS property declaration.
type Declaration struct {
	// Property is the lowercased property name, e.g. "backdrop-filter".
	Property string

	// Value is the declaration value as written.
	Value string

	// Selector is the enclosing selector for CSS files; empty for inline
	// style attributes.
	Selector string

	// Line is the 1-based line number of the declaration.
	Line int
}
