// Package cssprint serialises an optimised cssast tree back to CSS
// text. The tree is first flattened into a token stream, then the
// stream is rendered through a formatting template.
package cssprint

import (
	"strings"

	"go.uber.org/zap"

	"github.com/cssopt/cssopt/internal/cssast"
)

// Kind identifies one token of the flattened stream.
type Kind int

const (
	Property Kind = iota
	Value
	SelStart
	SelEnd
	AtStart
	AtEnd
	Comment
)

// Token is one item of the flattened stylesheet. For SelEnd and AtEnd the
// Text is empty; for AtStart it is the at-rule text including the "@".
type Token struct {
	Kind Kind
	Text string
}

// Template controls the text around each token. Fields are literal
// strings inserted at the named positions; Indent is repeated once per
// nesting level in front of selectors, declarations, and closing braces.
type Template struct {
	Indent           string
	AfterSelector    string // between selector/at text and the block body
	AfterProperty    string // between property name and value
	AfterDeclaration string // after each "prop:value" pair
	BlockEnd         string // after the closing "}"
	AfterStatement   string // after a block-less at-rule's ";"
}

// Pretty is the default human-readable template.
var Pretty = Template{
	Indent:           "\t",
	AfterSelector:    " {\n",
	AfterProperty:    ": ",
	AfterDeclaration: ";\n",
	BlockEnd:         "\n",
	AfterStatement:   "\n",
}

// Compact emits the smallest output: no indentation, no newlines.
var Compact = Template{
	AfterSelector:    "{",
	AfterProperty:    ":",
	AfterDeclaration: ";",
	BlockEnd:         "",
	AfterStatement:   "",
}

// TemplateByName resolves a configuration spelling to a template.
func TemplateByName(name string) (Template, bool) {
	switch name {
	case "pretty", "":
		return Pretty, true
	case "compact":
		return Compact, true
	}
	return Template{}, false
}

// Printer renders a stylesheet. It also performs the one rewrite the
// printer owns: unwrapping url(...) in @import and @namespace statements
// to the shorter bare-string form.
type Printer struct {
	tpl Template
	log *zap.Logger
}

// New creates a Printer. A nil logger is replaced with a no-op one.
func New(tpl Template, log *zap.Logger) *Printer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Printer{tpl: tpl, log: log.Named("css-printer")}
}

// Tokens flattens the tree into the printer's token stream.
func (p *Printer) Tokens(sheet *cssast.Stylesheet) []Token {
	var out []Token
	for _, b := range sheet.Blocks {
		out = p.appendBlock(out, b)
	}
	return out
}

func (p *Printer) appendBlock(out []Token, b cssast.Block) []Token {
	switch n := b.(type) {
	case *cssast.Comment:
		return append(out, Token{Kind: Comment, Text: n.Text})

	case *cssast.AtStatement:
		return append(out, Token{Kind: AtStart, Text: p.unwrapURL(n.Text)}, Token{Kind: AtEnd})

	case *cssast.StyleBlock:
		out = append(out, Token{Kind: SelStart, Text: n.Selector})
		out = appendDeclarations(out, n.Props())
		return append(out, Token{Kind: SelEnd})

	case *cssast.AtBlock:
		out = append(out, Token{Kind: AtStart, Text: n.AtText})
		out = appendDeclarations(out, n.Props())
		for _, child := range n.Children() {
			out = p.appendBlock(out, child)
		}
		return append(out, Token{Kind: AtEnd})
	}
	return out
}

func appendDeclarations(out []Token, props *cssast.Properties) []Token {
	props.Each(func(name string, decl cssast.Declaration) {
		if decl.IsEmpty() {
			return
		}
		out = append(out, Token{Kind: Property, Text: name}, Token{Kind: Value, Text: decl.String()})
	})
	return out
}

// Print renders sheet through the printer's template.
func (p *Printer) Print(sheet *cssast.Stylesheet) string {
	return p.Render(p.Tokens(sheet))
}

// Render turns a token stream into CSS text. An AtStart immediately
// followed by AtEnd is a block-less statement and is terminated with ";"
// instead of an empty brace pair.
func (p *Printer) Render(tokens []Token) string {
	var sb strings.Builder
	depth := 0

	indent := func() {
		for i := 0; i < depth; i++ {
			sb.WriteString(p.tpl.Indent)
		}
	}

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Kind {
		case Comment:
			indent()
			sb.WriteString("/*")
			sb.WriteString(t.Text)
			sb.WriteString("*/")
			sb.WriteString(p.tpl.AfterStatement)

		case AtStart:
			if i+1 < len(tokens) && tokens[i+1].Kind == AtEnd {
				indent()
				sb.WriteString(t.Text)
				sb.WriteString(";")
				sb.WriteString(p.tpl.AfterStatement)
				i++
				continue
			}
			indent()
			sb.WriteString(t.Text)
			sb.WriteString(p.tpl.AfterSelector)
			depth++

		case SelStart:
			indent()
			sb.WriteString(t.Text)
			sb.WriteString(p.tpl.AfterSelector)
			depth++

		case Property:
			indent()
			sb.WriteString(t.Text)
			sb.WriteString(p.tpl.AfterProperty)

		case Value:
			sb.WriteString(t.Text)
			sb.WriteString(p.tpl.AfterDeclaration)

		case SelEnd, AtEnd:
			if depth > 0 {
				depth--
			}
			indent()
			sb.WriteString("}")
			sb.WriteString(p.tpl.BlockEnd)
		}
	}
	return sb.String()
}

// unwrapURL rewrites `@import url("x")` (and the @namespace equivalent)
// to `@import "x"`. A url() with no quotes gains double quotes, which is
// never longer than the url() wrapper it replaces.
func (p *Printer) unwrapURL(text string) string {
	lower := strings.ToLower(text)
	if !strings.HasPrefix(lower, "@import") && !strings.HasPrefix(lower, "@namespace") {
		return text
	}
	open := strings.Index(lower, "url(")
	if open == -1 {
		return text
	}
	end := strings.IndexByte(text[open:], ')')
	if end == -1 {
		return text
	}
	end += open

	inner := strings.TrimSpace(text[open+len("url(") : end])
	if len(inner) < 2 || (inner[0] != '"' && inner[0] != '\'') {
		inner = `"` + inner + `"`
	}

	rewritten := text[:open] + inner + text[end+1:]
	p.log.Info("unwrapped url()",
		zap.String("before", text),
		zap.String("after", rewritten),
	)
	return rewritten
}
