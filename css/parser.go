package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. The optional source parameter
// identifies what is being parsed (for debug logging). Parsing is
// permissive: at-rules and malformed trailing input are skipped, whatever
// was collected so far is returned.
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			p.log.Debug("Skipping @-rule block", zap.String("rule", string(data)))
			p.skipAtRuleBlock(parser)

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			selectors := parseSelectors(data, parser.Values())
			declarations := p.parseDeclarations(parser)
			if len(selectors) > 0 && len(declarations) > 0 {
				sheet.Rules = append(sheet.Rules, Rule{
					Selectors:    selectors,
					Declarations: declarations,
				})
			}
		}
	}
}

// parseSelectors extracts selector strings from token data, splitting
// grouped selectors on commas.
func parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations consumes property declarations until the ruleset ends.
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	var declarations []Declaration

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return declarations

		case css.DeclarationGrammar:
			value := joinTokens(parser.Values())
			if value != "" {
				declarations = append(declarations, Declaration{
					Property: string(data),
					Value:    value,
				})
			}

		case css.CustomPropertyGrammar:
			// --custom properties are not interesting to the kernel
			continue
		}
	}
}

// skipAtRuleBlock consumes a nested at-rule block without collecting it.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// joinTokens builds a raw value string, collapsing whitespace runs to a
// single space.
func joinTokens(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			if len(parts) > 0 && parts[len(parts)-1] != " " {
				parts = append(parts, " ")
			}
			continue
		}
		parts = append(parts, string(t.Data))
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
