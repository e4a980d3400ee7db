// Package css parses the stylesheets the kernel ships and inlines into
// rendered pages. It is deliberately shallow: rules, selectors and raw
// declaration values are enough to verify class coverage and re-emit the
// sheet; nothing here tries to model the full CSS value grammar.
package css

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Declaration is a single property: value pair. Values are kept raw.
type Declaration struct {
	Property string
	Value    string
}

// Rule is one ruleset: the selector group and its declarations in source
// order.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

// Stylesheet is a parsed sheet. At-rules are dropped during parsing; Rules
// preserves source order.
type Stylesheet struct {
	Rules []Rule
}

// Classes returns every class name referenced by any selector, sorted and
// deduplicated.
func (s *Stylesheet) Classes() []string {
	seen := make(map[string]struct{})
	for _, rule := range s.Rules {
		for _, sel := range rule.Selectors {
			for _, class := range classesIn(sel) {
				seen[class] = struct{}{}
			}
		}
	}
	classes := make([]string, 0, len(seen))
	for class := range seen {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// HasClass reports whether any selector in the sheet references the class.
func (s *Stylesheet) HasClass(name string) bool {
	for _, rule := range s.Rules {
		for _, sel := range rule.Selectors {
			for _, class := range classesIn(sel) {
				if class == name {
					return true
				}
			}
		}
	}
	return false
}

// RulesForClass returns every rule whose selector group references the class.
func (s *Stylesheet) RulesForClass(name string) []Rule {
	var out []Rule
	for _, rule := range s.Rules {
		for _, sel := range rule.Selectors {
			if contains(classesIn(sel), name) {
				out = append(out, rule)
				break
			}
		}
	}
	return out
}

// WriteTo re-emits the sheet in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, rule := range s.Rules {
		n, err := fmt.Fprintf(w, "%s {\n", strings.Join(rule.Selectors, ", "))
		total += int64(n)
		if err != nil {
			return total, err
		}
		for _, decl := range rule.Declarations {
			n, err = fmt.Fprintf(w, "  %s: %s;\n", decl.Property, decl.Value)
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err = fmt.Fprint(w, "}\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
		if i < len(s.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// classesIn extracts class names from a selector: ".a.b > p.c:hover" yields
// a, b, c.
func classesIn(selector string) []string {
	var classes []string
	for i := 0; i < len(selector); i++ {
		if selector[i] != '.' {
			continue
		}
		j := i + 1
		for j < len(selector) && isClassChar(selector[j]) {
			j++
		}
		if j > i+1 {
			classes = append(classes, selector[i+1:j])
		}
		i = j - 1
	}
	return classes
}

func isClassChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
