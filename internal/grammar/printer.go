package grammar

import (
	"strings"

	"github.com/adamtc007/pegspec/internal/rule"
)

// FormatDefinitions renders defs back into specification source text,
// one definition per line, in the order given. It is the "fmt"
// command's canonical printer: round-tripping a specification through
// ParseDefinitions then FormatDefinitions is a no-op on meaning, even
// though whitespace and quoting style are normalized.
func FormatDefinitions(defs []Definition) string {
	lines := make([]string, len(defs))
	for i, d := range defs {
		lines[i] = FormatDefinition(d.Name, d.Rule)
	}
	return strings.Join(lines, "\n")
}

// FormatDefinition renders one named rule as "name<params> = body".
func FormatDefinition(name string, r *rule.Rule) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(formatParams(r.Params))
	sb.WriteString(" = ")
	if r.Extern {
		sb.WriteString("...")
	} else {
		sb.WriteString(formatAlternatives(r.Alternatives))
	}
	return sb.String()
}

func formatParams(params []rule.Param) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Default != nil {
			parts[i] = p.Name + "=" + formatDefaultRef(p.Default)
		} else {
			parts[i] = p.Name
		}
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// formatDefaultRef renders a default-argument rule, which is always
// the single-Ref desugaring rule.NewRefRule produces.
func formatDefaultRef(r *rule.Rule) string {
	if len(r.Alternatives) == 1 && len(r.Alternatives[0].Sequence) == 1 {
		e := r.Alternatives[0].Sequence[0]
		if e.Kind == rule.Ref {
			return e.RefName
		}
	}
	return formatAlternatives(r.Alternatives)
}

func formatAlternatives(alts []rule.Alternative) string {
	parts := make([]string, len(alts))
	for i, a := range alts {
		parts[i] = formatAlternative(a)
	}
	return strings.Join(parts, " | ")
}

func formatAlternative(a rule.Alternative) string {
	elems := make([]string, len(a.Sequence))
	for i, e := range a.Sequence {
		elems[i] = formatElement(e)
	}
	body := strings.Join(elems, " ")
	if a.HasAction() {
		if body != "" {
			body += " "
		}
		body += "-> { " + *a.Action + " }"
	}
	return body
}

func formatElement(e *rule.Element) string {
	var s string
	switch e.Kind {
	case rule.Literal:
		s = formatLiteral(e.LiteralText)
	case rule.Ref:
		s = e.RefName
		if len(e.RefArgs) > 0 {
			args := make([]string, len(e.RefArgs))
			for i, a := range e.RefArgs {
				args[i] = formatAlternatives(a.Alternatives)
			}
			s += "<" + strings.Join(args, ", ") + ">"
		}
	case rule.Inline:
		s = formatAlternatives(e.InlineRule.Alternatives)
	}
	if e.Binding != "" {
		s += "$" + e.Binding
	}
	return s
}

func formatLiteral(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
