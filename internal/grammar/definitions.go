package grammar

import (
	"strings"
	"unicode"

	"github.com/adamtc007/pegspec/internal/rule"
)

// ParseDefinitions reads a specification's rule-definition text (with
// comments and include directives already stripped/resolved by the
// caller) and returns the named rules it defines, in source order.
//
// Continuation: a line whose first character is whitespace continues
// the previous logical line. Blank lines separate logical lines but
// are otherwise ignored.
func ParseDefinitions(text string) ([]Definition, error) {
	logical, err := splitLogicalLines(text)
	if err != nil {
		return nil, err
	}

	defs := make([]Definition, 0, len(logical))
	for _, ll := range logical {
		def, err := parseLogicalLine(ll)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Definition is one named rule as read from a specification's source,
// in the order it was defined.
type Definition struct {
	Name string
	Rule *rule.Rule
}

type logicalLine struct {
	text     string
	startsAt int // 1-based physical line number
}

func splitLogicalLines(text string) ([]logicalLine, error) {
	rawLines := strings.Split(text, "\n")
	var out []logicalLine
	var cur *logicalLine

	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}

	for i, raw := range rawLines {
		lineNo := i + 1
		if strings.TrimSpace(raw) == "" {
			flush()
			continue
		}
		if (raw[0] == ' ' || raw[0] == '\t') && cur != nil {
			cur.text += "\n" + raw
			continue
		}
		flush()
		cur = &logicalLine{text: raw, startsAt: lineNo}
	}
	flush()
	return out, nil
}

// parseLogicalLine splits "name [<params>] = body" and parses body
// into a Rule (or an Extern rule when body is exactly "...").
func parseLogicalLine(ll logicalLine) (Definition, error) {
	h := &header{src: []rune(ll.text)}
	name, params, err := h.parseNameAndParams()
	if err != nil {
		return Definition{}, syntaxErrorf(ll.startsAt, "%s", err.Error())
	}
	h.skipSpace()
	if h.eof() || h.peek() != '=' {
		return Definition{}, syntaxErrorf(ll.startsAt, "expected '=' in rule definition")
	}
	h.advance()
	body := string(h.src[h.pos:])

	trimmed := strings.TrimLeft(body, " \t")
	if strings.TrimSpace(trimmed) == "..." {
		return Definition{Name: name, Rule: &rule.Rule{Name: name, Params: params, Extern: true}}, nil
	}

	r, err := ParseRuleExpr(trimmed)
	if err != nil {
		if se, ok := err.(*SyntaxError); ok && se.Line == 0 {
			se.Line = ll.startsAt
		}
		return Definition{}, err
	}
	r.Name = name
	r.Params = params
	return Definition{Name: name, Rule: r}, nil
}

// header parses the "name [<params>]" prefix of a logical line.
type header struct {
	src []rune
	pos int
}

func (h *header) eof() bool { return h.pos >= len(h.src) }
func (h *header) peek() rune {
	if h.eof() {
		return 0
	}
	return h.src[h.pos]
}
func (h *header) advance() {
	if !h.eof() {
		h.pos++
	}
}
func (h *header) skipSpace() {
	for !h.eof() && unicode.IsSpace(h.peek()) {
		h.advance()
	}
}

func (h *header) parseNameAndParams() (string, []rule.Param, error) {
	h.skipSpace()
	start := h.pos
	for !h.eof() && !unicode.IsSpace(h.peek()) && h.peek() != '<' && h.peek() != '=' {
		h.advance()
	}
	name := string(h.src[start:h.pos])
	if name == "" {
		return "", nil, &SyntaxError{Message: "expected rule name"}
	}
	h.skipSpace()

	var params []rule.Param
	if !h.eof() && h.peek() == '<' {
		h.advance()
		for {
			h.skipSpace()
			pname := h.readIdent()
			if pname == "" {
				return "", nil, &SyntaxError{Message: "expected parameter name"}
			}
			h.skipSpace()
			var def *rule.Rule
			if !h.eof() && h.peek() == '=' {
				h.advance()
				h.skipSpace()
				dname := h.readIdent()
				if dname == "" {
					return "", nil, &SyntaxError{Message: "expected default parameter value"}
				}
				def = rule.NewRefRule(dname)
				h.skipSpace()
			}
			params = append(params, rule.Param{Name: pname, Default: def})
			if h.eof() {
				return "", nil, &SyntaxError{Message: "unexpected EOF in parameter list"}
			}
			switch h.peek() {
			case ',':
				h.advance()
				continue
			case '>':
				h.advance()
				goto done
			default:
				return "", nil, &SyntaxError{Message: "expected ',' or '>' in parameter list"}
			}
		}
	done:
		h.skipSpace()
	}
	return name, params, nil
}

func (h *header) readIdent() string {
	start := h.pos
	for !h.eof() && (unicode.IsLetter(h.peek()) || unicode.IsDigit(h.peek()) || h.peek() == '_') {
		h.advance()
	}
	return string(h.src[start:h.pos])
}
