package docstring

import "strings"

// parseGoogle implements the Google convention: `Section:` headers at
// column 0 (after the summary), with indented `name (type): desc`
// items beneath Args/Attributes/Raises.
func parseGoogle(lines []string) []Section {
	var sections []Section
	cur := Section{Kind: SectionText}
	var body []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		switch cur.Kind {
		case SectionText, SectionExamples, SectionSeeAlso, SectionAdmonition, SectionDeprecated:
			cur.Text = text
		case SectionReturns, SectionYields, SectionReceives:
			cur.Returns = parseGoogleReturns(body)
		default:
			cur.Items = parseGoogleItems(body, cur.Kind)
		}
		if text != "" || len(cur.Items) > 0 || len(cur.Returns) > 0 {
			sections = append(sections, cur)
		}
		body = nil
	}

	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		header := strings.ToLower(strings.TrimSuffix(trimmed, ":"))
		if kind, ok := googleHeaders[header]; ok && strings.HasSuffix(trimmed, ":") {
			flush()
			cur = Section{Kind: kind, Title: strings.TrimSuffix(trimmed, ":")}
			if kind == SectionAdmonition {
				cur.AdmonitionKind = admonitionKind(header)
			}
			continue
		}
		if isGoogleFallbackHeaderLine(lines[i], trimmed) {
			flush()
			id := strings.TrimSuffix(trimmed, ":")
			cur = Section{Kind: SectionAdmonition, Title: id, AdmonitionKind: admonitionKind(id)}
			continue
		}
		body = append(body, lines[i])
	}
	flush()
	return sections
}

// parseGoogleItems parses `name (type): description` entries, each
// continuation line more indented than the entry header.
func parseGoogleItems(body []string, kind SectionKind) []ParsedItem {
	var items []ParsedItem
	var descLines []string
	flushItem := func() {
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
		if !strings.HasPrefix(raw, "    ") && !strings.HasPrefix(raw, "\t") {
			flushItem()
			name, ann, rest := splitGoogleHeader(trimmed)
			items = append(items, ParsedItem{Name: name, Annotation: ann})
			if rest != "" {
				descLines = append(descLines, rest)
			}
			continue
		}
		if isItemHeaderLine(trimmed) {
			flushItem()
			name, ann, rest := splitGoogleHeader(trimmed)
			items = append(items, ParsedItem{Name: name, Annotation: ann})
			if rest != "" {
				descLines = append(descLines, rest)
			}
			continue
		}
		descLines = append(descLines, trimmed)
	}
	flushItem()
	return items
}

// isItemHeaderLine heuristically distinguishes a new `name: desc` or
// `name (type): desc` entry from a wrapped continuation line.
func isItemHeaderLine(trimmed string) bool {
	colon := strings.Index(trimmed, ":")
	if colon <= 0 {
		return false
	}
	head := trimmed[:colon]
	head = strings.TrimSpace(strings.SplitN(head, "(", 2)[0])
	if head == "" {
		return false
	}
	for _, r := range head {
		if r == ' ' {
			return false
		}
	}
	return true
}

// parseGoogleReturns parses a Returns/Yields section, which is either
// a single `type: description` entry or a bare description with no
// type.
func parseGoogleReturns(body []string) []ReturnItem {
	var items []ReturnItem
	var descLines []string
	flush := func(ann string) {
		if len(descLines) == 0 && ann == "" {
			return
		}
		items = append(items, ReturnItem{Annotation: ann, Description: strings.TrimSpace(strings.Join(descLines, "\n"))})
		descLines = nil
	}
	for _, raw := range body {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if len(items) == 0 && isItemHeaderLine(trimmed) {
			colon := strings.Index(trimmed, ":")
			ann := strings.TrimSpace(trimmed[:colon])
			rest := strings.TrimSpace(trimmed[colon+1:])
			flush(ann)
			if rest != "" {
				descLines = append(descLines, rest)
			}
			continue
		}
		descLines = append(descLines, trimmed)
	}
	if len(items) == 0 {
		flush("")
	} else if len(descLines) > 0 {
		items[len(items)-1].Description = strings.TrimSpace(strings.Join(descLines, "\n"))
	}
	return items
}

func splitGoogleHeader(trimmed string) (name, annotation, rest string) {
	colon := strings.Index(trimmed, ":")
	if colon < 0 {
		return trimmed, "", ""
	}
	head := strings.TrimSpace(trimmed[:colon])
	rest = strings.TrimSpace(trimmed[colon+1:])
	if lp := strings.Index(head, "("); lp >= 0 && strings.HasSuffix(head, ")") {
		name = strings.TrimSpace(head[:lp])
		annotation = strings.TrimSuffix(head[lp+1:], ")")
	} else {
		name = head
	}
	return name, annotation, rest
}
