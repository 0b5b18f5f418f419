// Package docstring structures a raw docstring into typed sections.
// Three styles are supported — Google, NumPy, and
// Sphinx/reST — plus an "auto" mode that sniffs the style from the
// first recognized section header.
package docstring

import (
	"regexp"
	"strings"
)

// SectionKind tags the semantic role of a parsed section.
type SectionKind string

const (
	SectionText        SectionKind = "text"
	SectionParams      SectionKind = "parameters"
	SectionOtherArgs   SectionKind = "other-parameters"
	SectionTypeParams  SectionKind = "type-parameters"
	SectionReturns     SectionKind = "returns"
	SectionYields      SectionKind = "yields"
	SectionReceives    SectionKind = "receives"
	SectionRaises      SectionKind = "raises"
	SectionWarns       SectionKind = "warns"
	SectionExamples    SectionKind = "examples"
	SectionAttrs       SectionKind = "attributes"
	SectionFunctions   SectionKind = "functions"
	SectionClasses     SectionKind = "classes"
	SectionModules     SectionKind = "modules"
	SectionTypeAliases SectionKind = "type-aliases"
	SectionSeeAlso     SectionKind = "see-also"
	SectionDeprecated  SectionKind = "deprecated"
	SectionAdmonition  SectionKind = "admonition"
)

// Style identifies which docstring convention to parse with.
type Style string

const (
	StyleAuto   Style = "auto"
	StyleGoogle Style = "google"
	StyleNumpy  Style = "numpy"
	StyleSphinx Style = "sphinx"
)

// ParsedItem is one documented parameter/attribute/exception entry.
type ParsedItem struct {
	Name        string
	Annotation  string
	Description string
	Default     string
}

// ReturnItem documents a return/yield value, optionally named.
type ReturnItem struct {
	Name        string
	Annotation  string
	Description string
}

// Section is one structured block of a parsed docstring.
type Section struct {
	Kind        SectionKind
	Title       string // the raw header text, for Sphinx-style kept verbatim
	Text        string // for SectionText/Examples/SeeAlso/Deprecated
	Items       []ParsedItem
	Returns     []ReturnItem
	MalformedAt []int // line offsets where DOC001 was raised

	// AdmonitionKind is set only when Kind == SectionAdmonition: the
	// admonition identifier, lowercased with spaces turned to hyphens
	// (e.g. "see also" -> "see-also", "todo" -> "todo").
	AdmonitionKind string
}

// Parse splits raw into a summary line plus a sequence of Sections.
// When style is StyleAuto, the concrete style is sniffed from the
// first section header encountered.
func Parse(raw string, style Style) (summary string, sections []Section, warnings []string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil, nil
	}
	lines := strings.Split(raw, "\n")
	summary = strings.TrimSpace(lines[0])

	if style == StyleAuto {
		style = sniffStyle(lines)
	}

	switch style {
	case StyleNumpy:
		return summary, parseNumpy(lines), nil
	case StyleSphinx:
		return summary, parseSphinx(lines), nil
	default:
		return summary, parseGoogle(lines), nil
	}
}

var numpyUnderline = regexp.MustCompile(`^-{3,}\s*$`)

func sniffStyle(lines []string) Style {
	for i, l := range lines {
		trimmed := strings.TrimRight(l, " \t")
		if trimmed == "" {
			continue
		}
		if i+1 < len(lines) && numpyUnderline.MatchString(lines[i+1]) {
			return StyleNumpy
		}
		if strings.HasPrefix(strings.TrimSpace(l), ":param ") ||
			strings.HasPrefix(strings.TrimSpace(l), ":return") ||
			strings.HasPrefix(strings.TrimSpace(l), ":raises") {
			return StyleSphinx
		}
		if strings.HasSuffix(trimmed, ":") && isGoogleHeader(trimmed) {
			return StyleGoogle
		}
	}
	return StyleGoogle
}

var googleHeaders = map[string]SectionKind{
	"args": SectionParams, "arguments": SectionParams, "parameters": SectionParams, "params": SectionParams,
	"other parameters": SectionOtherArgs, "keyword args": SectionOtherArgs, "keyword arguments": SectionOtherArgs,
	"type parameters": SectionTypeParams,
	"returns":         SectionReturns,
	"yields":          SectionYields,
	"receives":        SectionReceives,
	"raises":          SectionRaises, "exceptions": SectionRaises,
	"warns":    SectionWarns,
	"examples": SectionExamples, "example": SectionExamples,
	"attributes": SectionAttrs,
	"functions":  SectionFunctions, "methods": SectionFunctions,
	"classes":      SectionClasses,
	"modules":      SectionModules,
	"type aliases": SectionTypeAliases,
	"see also":     SectionSeeAlso,
	"deprecated":   SectionDeprecated,
	"note":         SectionAdmonition, "notes": SectionAdmonition,
	"warning": SectionAdmonition,
}

func isGoogleHeader(trimmed string) bool {
	key := strings.ToLower(strings.TrimSuffix(trimmed, ":"))
	_, ok := googleHeaders[key]
	return ok
}

// admonitionKind lowercases id and replaces spaces with hyphens, the
// form an Admonition section's kind is stored in.
func admonitionKind(id string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), " ", "-")
}

// admonitionHeaderRe matches a bare identifier suitable as a fallback
// admonition title: letters, digits, spaces and a few separators, no
// sentence punctuation.
var admonitionHeaderRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 _/-]{0,39}$`)

// isGoogleFallbackHeaderLine reports whether raw is a Google-style
// section-header line (unindented, ending in ":") whose identifier is
// not one of the recognized headers — the "other identifier" case that
// becomes an Admonition rather than being folded into the previous
// section's body.
func isGoogleFallbackHeaderLine(raw, trimmed string) bool {
	if strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "\t") {
		return false
	}
	if !strings.HasSuffix(trimmed, ":") {
		return false
	}
	return admonitionHeaderRe.MatchString(strings.TrimSuffix(trimmed, ":"))
}

// isNumpyFallbackHeaderID reports whether a header line's text (already
// confirmed to sit directly above a dashed underline) looks like a
// plain identifier rather than prose — NumPy headers carry no colon, so
// the underline is what distinguishes a header from body text.
func isNumpyFallbackHeaderID(trimmed string) bool {
	return admonitionHeaderRe.MatchString(trimmed)
}
