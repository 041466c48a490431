package cssprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssopt/cssopt/internal/cssast"
	"github.com/cssopt/cssopt/internal/cssprint"
)

func sampleSheet() *cssast.Stylesheet {
	sheet := &cssast.Stylesheet{}
	sheet.Append(cssast.NewAtStatement(`@import url("a.css")`))

	style := cssast.NewStyleBlock("p")
	style.Props().Set("color", cssast.Declaration{Value: "red"})
	style.Props().Set("margin", cssast.Declaration{Value: "1px", Important: true})
	sheet.Append(style)

	media := cssast.NewAtBlock("@media screen")
	inner := cssast.NewStyleBlock("q")
	inner.Props().Set("color", cssast.Declaration{Value: "blue"})
	media.AppendChild(inner)
	sheet.Append(media)

	return sheet
}

func TestTokensFlattenTree(t *testing.T) {
	p := cssprint.New(cssprint.Compact, nil)
	tokens := p.Tokens(sampleSheet())

	kinds := make([]cssprint.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []cssprint.Kind{
		cssprint.AtStart, cssprint.AtEnd,
		cssprint.SelStart, cssprint.Property, cssprint.Value, cssprint.Property, cssprint.Value, cssprint.SelEnd,
		cssprint.AtStart, cssprint.SelStart, cssprint.Property, cssprint.Value, cssprint.SelEnd, cssprint.AtEnd,
	}, kinds)
}

func TestPrintCompact(t *testing.T) {
	p := cssprint.New(cssprint.Compact, nil)
	out := p.Print(sampleSheet())
	assert.Equal(t, `@import "a.css";p{color:red;margin:1px!important;}@media screen{q{color:blue;}}`, out)
}

func TestPrintPretty(t *testing.T) {
	p := cssprint.New(cssprint.Pretty, nil)
	out := p.Print(sampleSheet())
	assert.Equal(t, `@import "a.css";
p {
	color: red;
	margin: 1px!important;
}
@media screen {
	q {
		color: blue;
	}
}
`, out)
}

func TestImportURLUnwrapped(t *testing.T) {
	sheet := &cssast.Stylesheet{}
	sheet.Append(cssast.NewAtStatement("@import url(bare.css)"))
	sheet.Append(cssast.NewAtStatement("@namespace svg url('http://www.w3.org/2000/svg')"))
	sheet.Append(cssast.NewAtStatement("@charset \"utf-8\""))

	p := cssprint.New(cssprint.Compact, nil)
	tokens := p.Tokens(sheet)
	require.Len(t, tokens, 6)
	assert.Equal(t, `@import "bare.css"`, tokens[0].Text)
	assert.Equal(t, "@namespace svg 'http://www.w3.org/2000/svg'", tokens[2].Text)
	assert.Equal(t, "@charset \"utf-8\"", tokens[4].Text)
}

func TestEmptySentinelDeclarationsSkipped(t *testing.T) {
	style := cssast.NewStyleBlock("p")
	style.Props().Set("margin", cssast.Declaration{})
	style.Props().Set("color", cssast.Declaration{Value: "red"})
	sheet := &cssast.Stylesheet{}
	sheet.Append(style)

	out := cssprint.New(cssprint.Compact, nil).Print(sheet)
	assert.Equal(t, "p{color:red;}", out)
}

func TestCommentPrinted(t *testing.T) {
	sheet := &cssast.Stylesheet{}
	sheet.Append(cssast.NewComment(" banner "))
	out := cssprint.New(cssprint.Pretty, nil).Print(sheet)
	assert.Equal(t, "/* banner */\n", out)
}
