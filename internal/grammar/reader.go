// Package grammar implements the recursive-descent reader that turns
// the surface grammar-description syntax (spec.md §4.1) into the
// internal/rule AST. It knows nothing about files, includes, or
// comments — those belong to the specification-file loader layer
// (internal/spec); this package only ever sees logical-line bodies
// and rule-expression source text.
package grammar

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/adamtc007/pegspec/internal/rule"
)

// ParseRuleExpr parses a single rule-expression (the body of a rule
// definition) into a Rule. Template arguments are parsed by the same
// reader as nested choices; default parameter values are read as bare
// identifiers by the definition-line parser, not by this function.
// Choices (the "|" alternation) are always allowed, including inside
// template arguments — the source's historical restriction against
// choice in template arguments is lifted per spec.md §9.
func ParseRuleExpr(src string) (*rule.Rule, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &SyntaxError{Message: "rule source can't be empty"}
	}
	r := &reader{src: []rune(src)}
	result, err := r.parseChoice(nil)
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if !r.eof() {
		return nil, &SyntaxError{Message: "unexpected trailing input: " + string(r.src[r.pos:])}
	}
	return result, nil
}

// reader holds the cursor over a rule-expression's source runes.
type reader struct {
	src []rune
	pos int
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) peek() rune {
	if r.eof() {
		return 0
	}
	return r.src[r.pos]
}

func (r *reader) advance() {
	if !r.eof() {
		r.pos++
	}
}

func (r *reader) advanceN(n int) {
	for i := 0; i < n && !r.eof(); i++ {
		r.advance()
	}
}

func (r *reader) hasPrefix(s string) bool {
	rs := []rune(s)
	if r.pos+len(rs) > len(r.src) {
		return false
	}
	for i, c := range rs {
		if r.src[r.pos+i] != c {
			return false
		}
	}
	return true
}

func (r *reader) skipSpace() {
	for !r.eof() && unicode.IsSpace(r.peek()) {
		r.advance()
	}
}

// parseChoice parses one or more alternatives separated by "|". stop,
// when non-nil, names extra runes (besides "|" and EOF) that end the
// choice without being consumed — used for template-argument lists,
// where "," and ">" close the current argument.
func (r *reader) parseChoice(stop map[rune]bool) (*rule.Rule, error) {
	var alts []rule.Alternative
	for {
		alt, err := r.parseAlternative(stop)
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
		r.skipSpace()
		if !r.eof() && r.peek() == '|' {
			r.advance()
			continue
		}
		break
	}
	return &rule.Rule{Alternatives: alts}, nil
}

func (r *reader) atStop(stop map[rune]bool) bool {
	return !r.eof() && stop != nil && stop[r.peek()]
}

func (r *reader) parseAlternative(stop map[rune]bool) (rule.Alternative, error) {
	var seq []*rule.Element
	for {
		r.skipSpace()
		if r.eof() || r.peek() == '|' || r.atStop(stop) {
			return rule.Alternative{Sequence: seq}, nil
		}
		if r.hasPrefix("->") {
			r.advanceN(2)
			action, err := r.parseActionBody()
			if err != nil {
				return rule.Alternative{}, err
			}
			r.skipSpace()
			if !(r.eof() || r.peek() == '|' || r.atStop(stop)) {
				return rule.Alternative{}, &SyntaxError{Message: "unexpected content after action"}
			}
			return rule.Alternative{Sequence: seq, Action: &action}, nil
		}

		elem, err := r.parseElement()
		if err != nil {
			return rule.Alternative{}, err
		}
		r.skipSpace()
		if !r.eof() && r.peek() == '$' {
			r.advance()
			name := r.readAlnumIdent()
			if name == "" {
				return rule.Alternative{}, &SyntaxError{Message: "empty identifier after '$'"}
			}
			elem.Binding = name
		}
		seq = append(seq, elem)
	}
}

func (r *reader) parseElement() (*rule.Element, error) {
	r.skipSpace()
	if r.eof() {
		return nil, &SyntaxError{Message: "unexpected EOF"}
	}
	c := r.peek()
	switch c {
	case '\'', '"':
		lit, err := r.parseLiteral(c)
		if err != nil {
			return nil, err
		}
		return rule.NewLiteral(lit), nil
	case '<':
		return nil, &SyntaxError{Message: "unexpected '<': template arguments must follow a reference"}
	default:
		name := r.readBareword()
		if name == "" {
			return nil, &SyntaxError{Message: "unexpected character '" + string(c) + "'"}
		}
		elem := rule.NewRef(name)
		if !r.eof() && r.peek() == '<' {
			args, err := r.parseTemplateArgs()
			if err != nil {
				return nil, err
			}
			elem.RefArgs = args
		}
		return elem, nil
	}
}

func (r *reader) parseTemplateArgs() ([]*rule.Rule, error) {
	r.advance() // consume '<'
	var args []*rule.Rule
	stop := map[rune]bool{',': true, '>': true}
	for {
		r.skipSpace()
		arg, err := r.parseChoice(stop)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		r.skipSpace()
		if r.eof() {
			return nil, &SyntaxError{Message: "unexpected EOF"}
		}
		switch r.peek() {
		case ',':
			r.advance()
			continue
		case '>':
			r.advance()
			return args, nil
		default:
			return nil, &SyntaxError{Message: "expected ',' or '>' in template arguments"}
		}
	}
}

// parseLiteral parses a quoted literal, already positioned at the
// opening quote. Escapes: \n \t \\ \" \' \xNN (NN two decimal digits,
// treated as a base-10 codepoint number). Any other backslash sequence
// is a syntax error.
func (r *reader) parseLiteral(quote rune) (string, error) {
	r.advance() // consume opening quote
	var sb strings.Builder
	for {
		if r.eof() {
			return "", &SyntaxError{Message: "unexpected EOF"}
		}
		c := r.peek()
		if c == quote {
			r.advance()
			return sb.String(), nil
		}
		if c == '\\' {
			r.advance()
			if r.eof() {
				return "", &SyntaxError{Message: "unexpected EOF"}
			}
			esc := r.peek()
			switch esc {
			case 'n':
				sb.WriteRune('\n')
				r.advance()
			case 't':
				sb.WriteRune('\t')
				r.advance()
			case '\\':
				sb.WriteRune('\\')
				r.advance()
			case '"', '\'':
				sb.WriteRune(esc)
				r.advance()
			case 'x':
				r.advance()
				if r.pos+2 > len(r.src) {
					return "", &SyntaxError{Message: "unexpected EOF"}
				}
				digits := string(r.src[r.pos : r.pos+2])
				n, err := strconv.Atoi(digits)
				if err != nil {
					return "", &SyntaxError{Message: "invalid \\x escape"}
				}
				sb.WriteRune(rune(n))
				r.advanceN(2)
			default:
				return "", &SyntaxError{Message: "unknown escape sequence"}
			}
			continue
		}
		sb.WriteRune(c)
		r.advance()
	}
}

// parseActionBody parses the "{ expr }" following "->", already past
// the arrow and any surrounding whitespace skipped by the caller. It
// is brace-balanced and string-literal aware: quoted strings are
// skipped whole, so braces inside them never affect balance.
func (r *reader) parseActionBody() (string, error) {
	r.skipSpace()
	if r.eof() || r.peek() != '{' {
		return "", &SyntaxError{Message: "expected '{' after '->'"}
	}
	r.advance() // consume '{'
	start := r.pos
	depth := 1
	for {
		if r.eof() {
			return "", &SyntaxError{Message: "unexpected EOF"}
		}
		c := r.peek()
		switch c {
		case '"', '\'':
			if err := r.skipQuoted(c); err != nil {
				return "", err
			}
		case '{':
			depth++
			r.advance()
		case '}':
			depth--
			if depth == 0 {
				end := r.pos
				r.advance()
				return string(r.src[start:end]), nil
			}
			r.advance()
		default:
			r.advance()
		}
	}
}

// skipQuoted advances past a quoted string (already positioned at the
// opening quote), honouring backslash escapes, without interpreting
// its contents.
func (r *reader) skipQuoted(quote rune) error {
	r.advance() // opening quote
	for {
		if r.eof() {
			return &SyntaxError{Message: "unexpected EOF"}
		}
		c := r.peek()
		if c == '\\' {
			r.advance()
			if r.eof() {
				return &SyntaxError{Message: "unexpected EOF"}
			}
			r.advance()
			continue
		}
		r.advance()
		if c == quote {
			return nil
		}
	}
}

func (r *reader) isBarewordTerminator(c rune) bool {
	return unicode.IsSpace(c) || strings.ContainsRune("\"'<>|$-", c)
}

func (r *reader) readBareword() string {
	start := r.pos
	for !r.eof() && !r.isBarewordTerminator(r.peek()) {
		r.advance()
	}
	return string(r.src[start:r.pos])
}

// readAlnumIdent reads a binding identifier: letters and digits only,
// matching the original implementation's identifier rule. Parameter
// names in a definition header are read separately (header.readIdent),
// which also accepts '_'.
func (r *reader) readAlnumIdent() string {
	start := r.pos
	for !r.eof() && (unicode.IsLetter(r.peek()) || unicode.IsDigit(r.peek())) {
		r.advance()
	}
	return string(r.src[start:r.pos])
}
