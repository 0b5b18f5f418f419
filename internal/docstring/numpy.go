package docstring

import "strings"

// parseNumpy implements the NumPy convention: a header line followed by
// a line of `---` dashes, with indented `name : type` entries beneath.
func parseNumpy(lines []string) []Section {
	var sections []Section
	cur := Section{Kind: SectionText}
	var body []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		switch cur.Kind {
		case SectionText, SectionExamples, SectionSeeAlso, SectionAdmonition, SectionDeprecated:
			cur.Text = text
		case SectionReturns, SectionYields, SectionReceives:
			cur.Returns = parseNumpyReturns(body)
		default:
			cur.Items = parseNumpyItems(body)
		}
		if text != "" || len(cur.Items) > 0 || len(cur.Returns) > 0 {
			sections = append(sections, cur)
		}
		body = nil
	}

	i := 1
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed != "" && i+1 < len(lines) && numpyUnderline.MatchString(lines[i+1]) {
			if kind, ok := numpyHeaders[strings.ToLower(trimmed)]; ok {
				flush()
				cur = Section{Kind: kind, Title: trimmed}
				if kind == SectionAdmonition {
					cur.AdmonitionKind = admonitionKind(trimmed)
				}
				i += 2
				continue
			}
			if isNumpyFallbackHeaderID(trimmed) {
				flush()
				cur = Section{Kind: SectionAdmonition, Title: trimmed, AdmonitionKind: admonitionKind(trimmed)}
				i += 2
				continue
			}
		}
		body = append(body, lines[i])
		i++
	}
	flush()
	return sections
}

var numpyHeaders = map[string]SectionKind{
	"parameters": SectionParams, "params": SectionParams,
	"other parameters": SectionOtherArgs, "keyword args": SectionOtherArgs, "keyword arguments": SectionOtherArgs,
	"type parameters": SectionTypeParams,
	"returns":         SectionReturns,
	"yields":          SectionYields,
	"receives":        SectionReceives,
	"raises":          SectionRaises, "exceptions": SectionRaises,
	"warns":    SectionWarns,
	"examples": SectionExamples,
	"attributes": SectionAttrs,
	"functions":   SectionFunctions, "methods": SectionFunctions,
	"classes":      SectionClasses,
	"modules":      SectionModules,
	"type aliases": SectionTypeAliases,
	"see also":     SectionSeeAlso,
	"deprecated":   SectionDeprecated,
	"notes":        SectionAdmonition, "note": SectionAdmonition,
	"warnings": SectionAdmonition,
}

// parseNumpyItems parses `name : type` header lines (unindented relative
// to the section body) with an indented description beneath each.
func parseNumpyItems(body []string) []ParsedItem {
	var items []ParsedItem
	var descLines []string
	flush := func() {
		if len(items) == 0 {
			return
		}
		items[len(items)-1].Description = strings.TrimSpace(strings.Join(descLines, "\n"))
		descLines = nil
	}
	for _, raw := range body {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if isNumpySignatureLine(raw) {
			flush()
			name, ann := splitNumpySignature(trimmed)
			items = append(items, ParsedItem{Name: name, Annotation: ann})
			continue
		}
		descLines = append(descLines, trimmed)
	}
	flush()
	return items
}

// isNumpySignatureLine distinguishes a `name : type` (or bare `name`)
// header from an indented description continuation line: headers start
// in column 0 of the section body.
func isNumpySignatureLine(raw string) bool {
	if raw == "" {
		return false
	}
	return raw[0] != ' ' && raw[0] != '\t'
}

func splitNumpySignature(trimmed string) (name, annotation string) {
	if idx := strings.Index(trimmed, " : "); idx >= 0 {
		return strings.TrimSpace(trimmed[:idx]), strings.TrimSpace(trimmed[idx+3:])
	}
	return trimmed, ""
}

// parseNumpyReturns handles the NumPy Returns/Yields shape, which is
// the same `name : type` (or bare `type`) signature line as Parameters
// but renders into ReturnItem instead of ParsedItem.
func parseNumpyReturns(body []string) []ReturnItem {
	var items []ReturnItem
	var descLines []string
	flush := func() {
		if len(items) == 0 {
			return
		}
		items[len(items)-1].Description = strings.TrimSpace(strings.Join(descLines, "\n"))
		descLines = nil
	}
	for _, raw := range body {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if isNumpySignatureLine(raw) {
			flush()
			name, ann := splitNumpySignature(trimmed)
			if ann == "" {
				// bare `type` with no name, the common case for a single
				// unnamed return value
				ann = name
				name = ""
			}
			items = append(items, ReturnItem{Name: name, Annotation: ann})
			continue
		}
		descLines = append(descLines, trimmed)
	}
	flush()
	return items
}
