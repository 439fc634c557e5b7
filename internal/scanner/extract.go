package scanner

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/uiforge/designlint/internal/model"
)

// Attribute extraction patterns for JSX/TSX sources.
//
// Design decision: We extract JSX attributes with regular expressions rather
// than a JavaScript parser because no JSX parser exists in our dependency
// set and the styling surface we audit (string literals in className and
// style attributes) is fully visible at the lexical level. Dynamic class
// expressions are deliberately out of reach; the contract requires literal
// token classes precisely so they stay auditable.
var (
	// className="..." or className={'...'} / className={`...`}
	classNameRe = regexp.MustCompile("className\\s*=\\s*(?:\"([^\"]*)\"|\\{\\s*'([^']*)'\\s*\\}|\\{\\s*`([^`]*)`\\s*\\})")

	// class="..." in plain HTML embedded in JSX strings
	classAttrRe = regexp.MustCompile(`\bclass\s*=\s*"([^"]*)"`)

	// style={{ ... }} JSX object literal
	styleObjectRe = regexp.MustCompile(`style\s*=\s*\{\{([^}]*)\}\}`)

	// style="..." string attribute
	styleAttrRe = regexp.MustCompile(`\bstyle\s*=\s*"([^"]*)"`)

	// opening tag preceding an attribute, for element attribution
	openTagRe = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9.]*)[^<>]*$`)

	// hex color literal
	hexLiteralRe = regexp.MustCompile(`#(?:[0-9a-fA-F]{8}|[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)

	// camelCase property boundary, for JSX style object conversion
	camelBoundaryRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// parseJSX extracts class lists and inline styles from a JSX/TSX source.
func parseJSX(sf *model.SourceFile) {
	content := sf.Content

	for _, m := range classNameRe.FindAllStringSubmatchIndex(content, -1) {
		value := firstGroup(content, m)
		sf.ClassLists = append(sf.ClassLists, model.ClassList{
			Classes: strings.Fields(value),
			Raw:     value,
			Tag:     enclosingTag(content, m[0]),
			Line:    lineAt(content, m[0]),
		})
	}
	for _, m := range classAttrRe.FindAllStringSubmatchIndex(content, -1) {
		value := content[m[2]:m[3]]
		sf.ClassLists = append(sf.ClassLists, model.ClassList{
			Classes: strings.Fields(value),
			Raw:     value,
			Tag:     enclosingTag(content, m[0]),
			Line:    lineAt(content, m[0]),
		})
	}

	for _, m := range styleObjectRe.FindAllStringSubmatchIndex(content, -1) {
		body := content[m[2]:m[3]]
		line := lineAt(content, m[0])
		sf.InlineStyles = append(sf.InlineStyles, model.InlineStyle{
			Value: strings.TrimSpace(body),
			Tag:   enclosingTag(content, m[0]),
			Line:  line,
		})
		sf.Declarations = append(sf.Declarations, styleObjectDeclarations(body, line)...)
	}
	for _, m := range styleAttrRe.FindAllStringSubmatchIndex(content, -1) {
		value := content[m[2]:m[3]]
		line := lineAt(content, m[0])
		sf.InlineStyles = append(sf.InlineStyles, model.InlineStyle{
			Value: value,
			Tag:   enclosingTag(content, m[0]),
			Line:  line,
		})
		sf.Declarations = append(sf.Declarations, styleTextDeclarations(value, "", line)...)
	}
}

// parseHTML extracts class lists and inline styles from HTML markup using
// the x/net/html tokenizer. Line numbers are tracked from the raw token
// bytes since the tokenizer does not expose positions.
func parseHTML(sf *model.SourceFile) {
	tokenizer := html.NewTokenizer(strings.NewReader(sf.Content))
	line := 1

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			return
		}

		raw := string(tokenizer.Raw())
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			token := tokenizer.Token()
			for _, attr := range token.Attr {
				switch strings.ToLower(attr.Key) {
				case "class":
					sf.ClassLists = append(sf.ClassLists, model.ClassList{
						Classes: strings.Fields(attr.Val),
						Raw:     attr.Val,
						Tag:     token.Data,
						Line:    line,
					})
				case "style":
					sf.InlineStyles = append(sf.InlineStyles, model.InlineStyle{
						Value: attr.Val,
						Tag:   token.Data,
						Line:  line,
					})
					sf.Declarations = append(sf.Declarations, styleTextDeclarations(attr.Val, "", line)...)
				}
			}
		}
		line += strings.Count(raw, "\n")
	}
}

// parseCSS extracts property declarations from a stylesheet.
// This is a line-oriented scan, not a full CSS parser: it tracks the
// current selector and splits "property: value" pairs. At-rule preludes
// and comments are skipped.
func parseCSS(sf *model.SourceFile) {
	var selector string
	depth := 0

	for i, rawLine := range strings.Split(sf.Content, "\n") {
		line := strings.TrimSpace(stripCSSComment(rawLine))
		if line == "" {
			continue
		}

		if idx := strings.Index(line, "{"); idx >= 0 {
			head := strings.TrimSpace(line[:idx])
			if head != "" && !strings.HasPrefix(head, "@") {
				selector = head
			}
			depth++
			line = strings.TrimSpace(line[idx+1:])
		}
		if strings.HasPrefix(line, "}") {
			depth--
			if depth <= 0 {
				selector = ""
				depth = 0
			}
			continue
		}

		for _, decl := range strings.Split(line, ";") {
			prop, value, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			prop = strings.ToLower(strings.TrimSpace(prop))
			value = strings.TrimSpace(value)
			if prop == "" || value == "" || strings.HasPrefix(prop, "//") {
				continue
			}
			sf.Declarations = append(sf.Declarations, model.Declaration{
				Property: prop,
				Value:    value,
				Selector: selector,
				Line:     i + 1,
			})
		}
	}
}

// styleObjectDeclarations converts a JSX style object body into CSS
// declarations: camelCase keys become kebab-case, quotes are stripped.
func styleObjectDeclarations(body string, line int) []model.Declaration {
	var decls []model.Declaration
	for _, pair := range strings.Split(body, ",") {
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		key = strings.Trim(strings.TrimSpace(key), `"'`)
		value = strings.Trim(strings.TrimSpace(value), `"'`+"`")
		if key == "" || value == "" {
			continue
		}
		prop := strings.ToLower(camelBoundaryRe.ReplaceAllString(key, "${1}-${2}"))
		decls = append(decls, model.Declaration{
			Property: prop,
			Value:    value,
			Line:     line,
		})
	}
	return decls
}

// styleTextDeclarations splits a "prop: value; prop: value" style attribute.
func styleTextDeclarations(value, selector string, line int) []model.Declaration {
	var decls []model.Declaration
	for _, decl := range strings.Split(value, ";") {
		prop, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		v = strings.TrimSpace(v)
		if prop == "" || v == "" {
			continue
		}
		decls = append(decls, model.Declaration{
			Property: prop,
			Value:    v,
			Selector: selector,
			Line:     line,
		})
	}
	return decls
}

// extractHexLiterals finds raw hex color literals with line attribution.
func extractHexLiterals(content string) []model.HexLiteral {
	var literals []model.HexLiteral
	for _, m := range hexLiteralRe.FindAllStringIndex(content, -1) {
		literals = append(literals, model.HexLiteral{
			Value: content[m[0]:m[1]],
			Line:  lineAt(content, m[0]),
		})
	}
	return literals
}

// firstGroup returns the first non-empty capture group of an index match.
func firstGroup(content string, m []int) string {
	for g := 1; g*2 < len(m); g++ {
		if m[g*2] >= 0 {
			return content[m[g*2]:m[g*2+1]]
		}
	}
	return ""
}

// enclosingTag finds the element name of the open tag containing offset.
func enclosingTag(content string, offset int) string {
	if m := openTagRe.FindStringSubmatch(content[:offset]); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

// lineAt returns the 1-based line number of a byte offset.
func lineAt(content string, offset int) int {
	return strings.Count(content[:offset], "\n") + 1
}

// stripCSSComment removes a /* ... */ comment confined to one line.
func stripCSSComment(line string) string {
	start := strings.Index(line, "/*")
	if start < 0 {
		return line
	}
	end := strings.Index(line[start:], "*/")
	if end < 0 {
		return line[:start]
	}
	return line[:start] + line[start+end+2:]
}
