// Package spec assembles the grammar reader's per-rule definitions
// into a sealed Specification: a read-only, named mapping of rule
// identifiers to rule AST nodes, with support for the specification
// file format's comments and include directives (spec.md §6).
package spec

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/adamtc007/pegspec/internal/grammar"
	"github.com/adamtc007/pegspec/internal/rule"
)

// Specification is a named mapping of rule identifiers to rule AST
// nodes. Once returned from Parse/Load, its Rule values are never
// mutated — it is shared, read-only, and safe for concurrent parses.
type Specification struct {
	rules map[string]*rule.Rule
	// order preserves definition order, useful for Fmt/round-tripping.
	order []string
}

// New returns an empty, sealed specification.
func New() *Specification {
	return &Specification{rules: map[string]*rule.Rule{}}
}

// Lookup resolves name against the specification's rule map. It
// satisfies internal/peg's RuleLookup interface.
func (s *Specification) Lookup(name string) (*rule.Rule, bool) {
	r, ok := s.rules[name]
	return r, ok
}

// Names returns the rule names in definition order.
func (s *Specification) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of rules defined.
func (s *Specification) Len() int { return len(s.rules) }

// Definitions returns the specification's rules as grammar.Definition
// values, in definition order, for the "fmt" command's printer.
func (s *Specification) Definitions() []grammar.Definition {
	defs := make([]grammar.Definition, 0, len(s.order))
	for _, name := range s.order {
		defs = append(defs, grammar.Definition{Name: name, Rule: s.rules[name]})
	}
	return defs
}

// Parse parses a single specification file's text (no include
// resolution — text is assumed to already be the full content of one
// file) into a sealed Specification.
func Parse(text string) (*Specification, error) {
	stripped := stripComments(text)
	defs, err := grammar.ParseDefinitions(stripped)
	if err != nil {
		return nil, err
	}
	s := New()
	for _, d := range defs {
		s.set(d.Name, d.Rule)
	}
	return s, nil
}

// Merge overlays other's rule definitions onto s: names already
// present in s are left untouched; names only in other are added, in
// other's definition order appended after s's existing order. This is
// the primitive include resolution builds on ("included specifications
// are parsed first and their rule definitions are overlaid by the
// current file's definitions — later wins", spec.md §6), exposed
// directly so a host program can compose specifications without going
// through the file loader.
func (s *Specification) Merge(other *Specification) {
	for _, name := range other.order {
		if _, exists := s.rules[name]; exists {
			continue
		}
		s.set(name, other.rules[name])
	}
}

func (s *Specification) set(name string, r *rule.Rule) {
	if _, exists := s.rules[name]; !exists {
		s.order = append(s.order, name)
	}
	s.rules[name] = r
}

// Load parses the specification file at path within fsys, resolving
// "include X" directives (column 0, before any whitespace) relative to
// path's directory. Included specifications are loaded first and
// overlaid by the current file's own definitions ("later wins").
func Load(fsys fs.FS, filePath string) (*Specification, error) {
	return load(fsys, filePath, map[string]bool{})
}

func load(fsys fs.FS, filePath string, visiting map[string]bool) (*Specification, error) {
	if visiting[filePath] {
		return nil, fmt.Errorf("include cycle detected at %q", filePath)
	}
	visiting[filePath] = true
	defer delete(visiting, filePath)

	raw, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", filePath, err)
	}

	dir := path.Dir(filePath)
	own := New()
	var ownLines []string

	for _, line := range strings.Split(string(raw), "\n") {
		if strings.HasPrefix(line, "include ") {
			target := strings.TrimSpace(strings.TrimPrefix(line, "include "))
			includedPath := target
			if dir != "." {
				includedPath = path.Join(dir, target)
			}
			included, err := load(fsys, includedPath, visiting)
			if err != nil {
				return nil, err
			}
			own.Merge(included)
			continue
		}
		ownLines = append(ownLines, line)
	}

	thisFile, err := Parse(strings.Join(ownLines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	// thisFile's own definitions win over names pulled in via include;
	// build final from thisFile first, then fill gaps from own.
	final := New()
	for _, name := range thisFile.order {
		final.set(name, thisFile.rules[name])
	}
	final.Merge(own)
	return final, nil
}

// stripComments removes lines whose first non-continuation character
// is '#' at column 0. Continuation lines (leading whitespace) are left
// untouched even if their content happens to start with '#' further
// in — only a literal column-0 '#' marks a comment line.
func stripComments(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.HasPrefix(l, "#") {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}
