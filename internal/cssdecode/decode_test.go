package cssdecode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssopt/cssopt/internal/cssast"
	"github.com/cssopt/cssopt/internal/cssdecode"
)

func decode(t *testing.T, src string) *cssast.Stylesheet {
	t.Helper()
	sheet, err := cssdecode.New(nil).Decode([]byte(src))
	require.NoError(t, err)
	return sheet
}

func TestDecodeSimpleRule(t *testing.T) {
	sheet := decode(t, "p { margin-top: 1px; Color: RED !important; }")
	require.Len(t, sheet.Blocks, 1)

	style, ok := sheet.Blocks[0].(*cssast.StyleBlock)
	require.True(t, ok)
	assert.Equal(t, "p", style.Selector)

	d, ok := style.Props().Get("margin-top")
	require.True(t, ok)
	assert.Equal(t, "1px", d.Value)
	assert.False(t, d.Important)

	// Property names are lower-cased; importance is split off the value.
	d, ok = style.Props().Get("color")
	require.True(t, ok)
	assert.Equal(t, "RED", d.Value)
	assert.True(t, d.Important)
}

func TestDecodeGroupedSelector(t *testing.T) {
	sheet := decode(t, "a.foo, a.bar { color: red; }")
	require.Len(t, sheet.Blocks, 1)
	style := sheet.Blocks[0].(*cssast.StyleBlock)
	assert.Equal(t, "a.foo,a.bar", style.Selector)
}

func TestDecodeMediaBlock(t *testing.T) {
	sheet := decode(t, "@media screen { p { color: red; } }")
	require.Len(t, sheet.Blocks, 1)

	at, ok := sheet.Blocks[0].(*cssast.AtBlock)
	require.True(t, ok)
	assert.Equal(t, "@media screen", at.AtText)
	require.Len(t, at.Children(), 1)

	style, ok := at.Children()[0].(*cssast.StyleBlock)
	require.True(t, ok)
	assert.Equal(t, "p", style.Selector)
	d, _ := style.Props().Get("color")
	assert.Equal(t, "red", d.Value)
}

func TestDecodeFontFaceDeclarations(t *testing.T) {
	sheet := decode(t, `@font-face { font-family: "My Font"; src: url(f.woff2); }`)
	require.Len(t, sheet.Blocks, 1)

	at := sheet.Blocks[0].(*cssast.AtBlock)
	assert.Equal(t, "@font-face", at.AtText)
	d, ok := at.Props().Get("font-family")
	require.True(t, ok)
	assert.Equal(t, `"My Font"`, d.Value)
}

func TestDecodeImportStatement(t *testing.T) {
	sheet := decode(t, `@import url("a.css");`+"\np{color:red}")
	require.Len(t, sheet.Blocks, 2)

	stmt, ok := sheet.Blocks[0].(*cssast.AtStatement)
	require.True(t, ok)
	assert.Equal(t, `@import url("a.css")`, stmt.Text)
}

func TestDecodeComment(t *testing.T) {
	sheet := decode(t, "/* banner */\np { color: red; }")
	require.Len(t, sheet.Blocks, 2)

	comment, ok := sheet.Blocks[0].(*cssast.Comment)
	require.True(t, ok)
	assert.Equal(t, " banner ", comment.Text)
}

func TestDecodeValueWhitespaceCollapsed(t *testing.T) {
	sheet := decode(t, "p { margin:  1px\t 2px ; }")
	style := sheet.Blocks[0].(*cssast.StyleBlock)
	d, _ := style.Props().Get("margin")
	assert.Equal(t, "1px 2px", d.Value)
}

func TestDecodeCustomPropertyKeptVerbatim(t *testing.T) {
	sheet := decode(t, "p { --gap:  1px  +  2px; }")
	style := sheet.Blocks[0].(*cssast.StyleBlock)
	d, ok := style.Props().Get("--gap")
	require.True(t, ok)
	assert.Equal(t, "1px  +  2px", d.Value)
}

func TestDecodeIsBestEffort(t *testing.T) {
	// The damaged declaration is dropped; everything else survives.
	sheet, _ := cssdecode.New(nil).Decode([]byte("p { color red } q { color: blue; }"))
	var selectors []string
	for _, b := range sheet.Blocks {
		if style, ok := b.(*cssast.StyleBlock); ok {
			selectors = append(selectors, style.Selector)
		}
	}
	assert.Contains(t, selectors, "q")
}

func TestDecodeEmptyInput(t *testing.T) {
	sheet := decode(t, "")
	assert.Empty(t, sheet.Blocks)
}
