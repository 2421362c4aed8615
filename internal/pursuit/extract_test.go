package pursuit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextBlocks_HeadingsKeptRegardlessOfLength(t *testing.T) {
	html := `<h1>Short</h1><h3>Hi</h3><p>tiny</p>`
	blocks := ExtractTextBlocks(html)
	assert.Equal(t, []string{"Short", "Hi"}, blocks)
}

func TestExtractTextBlocks_ShortBlockKeptWhenSignalMatches(t *testing.T) {
	html := `<p>pursuit</p><li>hello</li>`
	blocks := ExtractTextBlocks(html)
	// "pursuit" は30文字未満でもシグナルにマッチするので残る
	assert.Equal(t, []string{"pursuit"}, blocks)
}

func TestExtractTextBlocks_AnchorLengthGate(t *testing.T) {
	html := `<a href="/a">short link</a>` +
		`<a href="/b">this anchor text is definitely long enough</a>` +
		`<a href="/c">car chase now</a>`
	blocks := ExtractTextBlocks(html)
	assert.Equal(t, []string{
		"this anchor text is definitely long enough",
		"car chase now",
	}, blocks)
}

func TestExtractTextBlocks_StripsScriptsAndStyles(t *testing.T) {
	html := `<script>var pursuit = "police chase on the freeway right now";</script>` +
		`<style>.pursuit { color: red }</style>` +
		`<h1>City hall reopens</h1>`
	blocks := ExtractTextBlocks(html)
	assert.Equal(t, []string{"City hall reopens"}, blocks)
}

func TestExtractTextBlocks_StripsNestedTagsAndEntities(t *testing.T) {
	html := `<h2>Police &amp; CHP in <em>pursuit</em> tonight</h2>`
	blocks := ExtractTextBlocks(html)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Police & CHP in pursuit tonight", blocks[0])
}

func TestExtractTextBlocks_DeduplicatesPreservingFirstSeenOrder(t *testing.T) {
	html := `<h1>Breaking news tonight</h1><h2>Second headline here</h2>` +
		`<h1>Breaking news tonight</h1>` +
		`<a href="/x">Breaking news tonight</a>`
	blocks := ExtractTextBlocks(html)
	assert.Equal(t, []string{"Breaking news tonight", "Second headline here"}, blocks)
}

func TestExtractTextBlocks_CappedAt600Blocks(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 700; i++ {
		fmt.Fprintf(&sb, "<p>paragraph number %d padded to be long enough to keep</p>", i)
	}
	blocks := ExtractTextBlocks(sb.String())
	assert.Len(t, blocks, 600)
	assert.Equal(t, "paragraph number 0 padded to be long enough to keep", blocks[0])
	assert.Equal(t, "paragraph number 599 padded to be long enough to keep", blocks[599])
}

func TestExtractTextBlocks_MalformedHTMLDoesNotPanic(t *testing.T) {
	inputs := []string{
		"",
		"<h1>unclosed heading",
		"<p><div></span>garbage<<<>>>",
		"<a href='x'>dangling anchor",
		"plain text with a pursuit mention but no tags at all",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { ExtractTextBlocks(in) })
	}
	// 閉じタグの無い要素は単にマッチしない（= ブロックを生成しない）
	assert.Empty(t, ExtractTextBlocks("<h1>unclosed heading"))
}

func TestExtractTextBlocks_BrBecomesWhitespaceBoundary(t *testing.T) {
	html := `<p>A police chase is underway downtown.<br>Officers deployed spike strips.</p>`
	blocks := ExtractTextBlocks(html)
	require.Len(t, blocks, 1)
	// <br>は改行になり、空白正規化で1スペースに潰れる
	assert.Equal(t, "A police chase is underway downtown. Officers deployed spike strips.", blocks[0])
}
