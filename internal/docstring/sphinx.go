package docstring

import (
	"regexp"
	"strings"
)

// sphinxField matches a reST field-list marker: `:tag arg: body`, where
// arg is optional (`:returns: body`) or required (`:param name: body`,
// :raises ExcType: body`).
var sphinxField = regexp.MustCompile(`^:(\w+)(?:\s+([^:]+))?:\s*(.*)$`)

var sphinxParamTags = map[string]bool{"param": true, "parameter": true, "arg": true, "argument": true, "keyword": true}
var sphinxTypeTags = map[string]bool{"type": true}
var sphinxRaiseTags = map[string]bool{"raises": true, "raise": true, "except": true, "exception": true}
var sphinxReturnTags = map[string]bool{"returns": true, "return": true}
var sphinxRtypeTags = map[string]bool{"rtype": true}
var sphinxYieldTags = map[string]bool{"yields": true, "yield": true}
var sphinxVarTags = map[string]bool{"var": true, "ivar": true, "cvar": true}

// parseSphinx implements the reST/Sphinx field-list convention used by
// docutils and Sphinx's autodoc: `:param name: desc`, `:type name:
// type`, `:returns: desc`, `:rtype: type`, `:raises Exc: desc`.
func parseSphinx(lines []string) []Section {
	var textLines []string
	var params []ParsedItem
	paramIdx := map[string]int{}
	var raises []ParsedItem
	raiseIdx := map[string]int{}
	var attrs []ParsedItem
	attrIdx := map[string]int{}
	var returns ReturnItem
	var yields ReturnItem
	haveReturns, haveYields := false, false

	type target int
	const (
		targetNone target = iota
		targetParam
		targetRaise
		targetAttr
		targetReturn
		targetYield
	)
	var cur target
	var curKey string

	appendDesc := func(text string) {
		switch cur {
		case targetParam:
			i := params[paramIdx[curKey]]
			i.Description = strings.TrimSpace(i.Description + " " + text)
			params[paramIdx[curKey]] = i
		case targetRaise:
			i := raises[raiseIdx[curKey]]
			i.Description = strings.TrimSpace(i.Description + " " + text)
			raises[raiseIdx[curKey]] = i
		case targetAttr:
			i := attrs[attrIdx[curKey]]
			i.Description = strings.TrimSpace(i.Description + " " + text)
			attrs[attrIdx[curKey]] = i
		case targetReturn:
			returns.Description = strings.TrimSpace(returns.Description + " " + text)
		case targetYield:
			yields.Description = strings.TrimSpace(yields.Description + " " + text)
		default:
			textLines = append(textLines, text)
		}
	}

	started := false
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		m := sphinxField.FindStringSubmatch(trimmed)
		if m == nil {
			if !started {
				textLines = append(textLines, lines[i])
				continue
			}
			appendDesc(trimmed)
			continue
		}
		started = true
		tag := strings.ToLower(m[1])
		arg := strings.TrimSpace(m[2])
		desc := strings.TrimSpace(m[3])

		switch {
		case sphinxParamTags[tag]:
			if idx, ok := paramIdx[arg]; ok {
				params[idx].Description = desc
			} else {
				paramIdx[arg] = len(params)
				params = append(params, ParsedItem{Name: arg, Description: desc})
			}
			cur, curKey = targetParam, arg
		case sphinxTypeTags[tag]:
			if idx, ok := paramIdx[arg]; ok {
				params[idx].Annotation = desc
			} else {
				paramIdx[arg] = len(params)
				params = append(params, ParsedItem{Name: arg, Annotation: desc})
			}
			cur, curKey = targetParam, arg
		case sphinxRaiseTags[tag]:
			key := arg
			if idx, ok := raiseIdx[key]; ok {
				raises[idx].Description = desc
			} else {
				raiseIdx[key] = len(raises)
				raises = append(raises, ParsedItem{Name: key, Description: desc})
			}
			cur, curKey = targetRaise, key
		case sphinxVarTags[tag]:
			if idx, ok := attrIdx[arg]; ok {
				attrs[idx].Description = desc
			} else {
				attrIdx[arg] = len(attrs)
				attrs = append(attrs, ParsedItem{Name: arg, Description: desc})
			}
			cur, curKey = targetAttr, arg
		case sphinxReturnTags[tag]:
			returns.Description = desc
			haveReturns = true
			cur = targetReturn
		case sphinxRtypeTags[tag]:
			returns.Annotation = desc
			haveReturns = true
			cur = targetReturn
		case sphinxYieldTags[tag]:
			yields.Description = desc
			haveYields = true
			cur = targetYield
		default:
			// unrecognized field tag; the line joins the free-text section
			textLines = append(textLines, trimmed)
			cur = targetNone
		}
	}

	var sections []Section
	if text := strings.TrimSpace(strings.Join(textLines, "\n")); text != "" {
		sections = append(sections, Section{Kind: SectionText, Text: text})
	}
	if len(params) > 0 {
		sections = append(sections, Section{Kind: SectionParams, Items: params})
	}
	if haveReturns {
		sections = append(sections, Section{Kind: SectionReturns, Returns: []ReturnItem{returns}})
	}
	if haveYields {
		sections = append(sections, Section{Kind: SectionYields, Returns: []ReturnItem{yields}})
	}
	if len(raises) > 0 {
		sections = append(sections, Section{Kind: SectionRaises, Items: raises})
	}
	if len(attrs) > 0 {
		sections = append(sections, Section{Kind: SectionAttrs, Items: attrs})
	}
	return sections
}
