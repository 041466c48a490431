// Package cssdecode turns CSS source text into the cssast block tree the
// optimiser consumes. It sits outside the optimiser core: the core only
// sees the finished tree.
//
// Decoding is best-effort. Malformed input never aborts the whole
// document; whatever parses around the damage is kept, and the non-fatal
// diagnostics are accumulated and returned alongside the tree.
package cssdecode

import (
	"bytes"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/cssopt/cssopt/internal/cssast"
)

// maxDiagnostics bounds how many recoverable parse errors are collected
// before decoding gives up on the rest of the input.
const maxDiagnostics = 20

// Decoder parses CSS stylesheets into a cssast.Stylesheet.
type Decoder struct {
	log *zap.Logger
}

// New creates a new Decoder. A nil logger is replaced with a no-op one.
func New(log *zap.Logger) *Decoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Decoder{log: log.Named("css-decoder")}
}

// Decode parses data into a stylesheet. The returned error, if non-nil,
// aggregates the recoverable diagnostics hit along the way; the
// stylesheet is always usable.
func (d *Decoder) Decode(data []byte) (*cssast.Stylesheet, error) {
	sheet := &cssast.Stylesheet{}

	s := &decodeState{
		parser: css.NewParser(parse.NewInput(bytes.NewReader(data)), false),
		log:    d.log,
	}
	s.decodeRules(sheet.Append, nil)

	d.log.Debug("decoded stylesheet",
		zap.Int("bytes", len(data)),
		zap.Int("blocks", len(sheet.Blocks)),
	)
	return sheet, s.errs
}

type decodeState struct {
	parser *css.Parser
	log    *zap.Logger
	errs   error
	nerrs  int
}

// recoverable records a parse error and reports whether decoding should
// keep going. EOF (or too many accumulated errors) stops it.
func (s *decodeState) recoverable() bool {
	err := s.parser.Err()
	if err == nil || errors.Is(err, io.EOF) {
		return false
	}
	s.errs = multierr.Append(s.errs, err)
	s.nerrs++
	if s.nerrs >= maxDiagnostics {
		return false
	}
	s.log.Debug("skipping malformed construct", zap.Error(err))
	return true
}

// decodeRules consumes grammar items until the input (or the enclosing
// at-rule block) ends, appending each finished node via emit. props, when
// non-nil, receives declarations that appear directly in an at-rule body
// (e.g. @font-face); at the top level it is nil and such declarations are
// dropped.
func (s *decodeState) decodeRules(emit func(cssast.Block), props *cssast.Properties) {
	// Comma-separated selector groups arrive as QualifiedRuleGrammar
	// entries (one per selector, sans block) followed by a single
	// BeginRulesetGrammar carrying the last selector and the body.
	var pending []string

	for {
		gt, _, data := s.parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if !s.recoverable() {
				return
			}

		case css.EndAtRuleGrammar:
			return

		case css.CommentGrammar:
			emit(cssast.NewComment(commentText(data)))

		case css.AtRuleGrammar:
			// Block-less at-rule such as @import or @namespace.
			text := strings.TrimSpace(string(data) + " " + rawTokens(s.parser.Values()))
			emit(cssast.NewAtStatement(text))
			s.log.Debug("decoded at-statement", zap.String("text", text))

		case css.BeginAtRuleGrammar:
			atText := strings.TrimSpace(string(data) + " " + rawTokens(s.parser.Values()))
			at := cssast.NewAtBlock(atText)
			s.decodeRules(at.AppendChild, at.Props())
			emit(at)

		case css.QualifiedRuleGrammar:
			sel := strings.TrimSpace(string(data) + rawTokens(s.parser.Values()))
			pending = append(pending, strings.TrimSuffix(sel, ","))

		case css.BeginRulesetGrammar:
			selector := strings.TrimSpace(string(data) + rawTokens(s.parser.Values()))
			if len(pending) > 0 {
				selector = strings.Join(append(pending, selector), ",")
				pending = nil
			}
			style := cssast.NewStyleBlock(selector)
			s.decodeDeclarations(style.Props())
			emit(style)

		case css.DeclarationGrammar:
			s.setDeclaration(props, data, s.parser.Values())

		case css.CustomPropertyGrammar:
			setCustomProperty(props, data, s.parser.Values())
		}
	}
}

// decodeDeclarations consumes a ruleset body.
func (s *decodeState) decodeDeclarations(props *cssast.Properties) {
	for {
		gt, _, data := s.parser.Next()

		switch gt {
		case css.EndRulesetGrammar:
			return

		case css.ErrorGrammar:
			if !s.recoverable() {
				return
			}

		case css.DeclarationGrammar:
			s.setDeclaration(props, data, s.parser.Values())

		case css.CustomPropertyGrammar:
			setCustomProperty(props, data, s.parser.Values())
		}
	}
}

// setDeclaration stores one parsed declaration: the property name is
// lower-cased and the "!important" marker is split off into the
// Declaration's flag.
func (s *decodeState) setDeclaration(props *cssast.Properties, name []byte, values []css.Token) {
	if props == nil {
		return
	}
	raw := strings.TrimSpace(rawTokens(values))
	if raw == "" {
		return
	}
	decl := cssast.ParseImportant(raw)
	if decl.Important && raw != decl.String() {
		s.log.Info("compacted !important",
			zap.String("property", strings.ToLower(string(name))),
			zap.String("before", raw),
			zap.String("after", decl.String()),
		)
	}
	props.Set(strings.ToLower(string(name)), decl)
}

// setCustomProperty stores a --custom-property verbatim. Custom property
// values are whitespace-significant, so the raw token text is kept as-is
// and the optimiser leaves these names alone.
func setCustomProperty(props *cssast.Properties, name []byte, values []css.Token) {
	if props == nil {
		return
	}
	var sb strings.Builder
	for _, v := range values {
		sb.Write(v.Data)
	}
	raw := strings.TrimSpace(sb.String())
	if raw == "" {
		return
	}
	props.Set(string(name), cssast.Declaration{Value: raw})
}

func commentText(data []byte) string {
	return strings.TrimSuffix(strings.TrimPrefix(string(data), "/*"), "*/")
}

// rawTokens rebuilds source text from a token run, collapsing whitespace
// runs to a single space.
func rawTokens(tokens []css.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return sb.String()
}
