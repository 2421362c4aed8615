package pursuit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitIntoSentences_Basic(t *testing.T) {
	got := SplitIntoSentences("First sentence. Second one! Third? Done…")
	assert.Equal(t, []string{"First sentence.", "Second one!", "Third?", "Done…"}, got)
}

func TestSplitIntoSentences_NewlineTreatedAsSpace(t *testing.T) {
	got := SplitIntoSentences("One sentence.\nAnother sentence.")
	assert.Equal(t, []string{"One sentence.", "Another sentence."}, got)
}

func TestSplitIntoSentences_NoBoundaryWithoutTrailingSpace(t *testing.T) {
	// "3.5" のような小数点では区切らない
	got := SplitIntoSentences("Speeds hit 3.5 times the limit on I-5")
	assert.Equal(t, []string{"Speeds hit 3.5 times the limit on I-5"}, got)
}

func TestSplitIntoSentences_Empty(t *testing.T) {
	assert.Nil(t, SplitIntoSentences(""))
	assert.Nil(t, SplitIntoSentences("   \n  "))
}

func TestBestSentenceSnippet_PicksHighestScoringSentence(t *testing.T) {
	block := "The weather was mild today. A high-speed chase shut down the 405 Freeway. Residents were surprised."
	snippet, score, hits := BestSentenceSnippet(block)
	// high-speed chase(8) + 405 Freeway(2)
	assert.Equal(t, 10, score)
	assert.Equal(t, 1, hits["high-speed chase"])
	// 前後1文ずつ拡張される
	assert.Equal(t, block, snippet)
}

func TestBestSentenceSnippet_NeighborsClampedToBlockBounds(t *testing.T) {
	block := "A pursuit began downtown. Nothing else happened."
	snippet, score, _ := BestSentenceSnippet(block)
	assert.Equal(t, 6, score)
	assert.Equal(t, "A pursuit began downtown. Nothing else happened.", snippet)
}

func TestBestSentenceSnippet_TieKeepsEarliestSentence(t *testing.T) {
	// 両センテンスとも pursuit(6) で同点 → 先に現れた方が勝つ
	block := "Sentence alpha has a pursuit. Filler sentence in the middle. Sentence omega has a pursuit."
	snippet, score, _ := BestSentenceSnippet(block)
	assert.Equal(t, 6, score)
	assert.True(t, strings.HasPrefix(snippet, "Sentence alpha has a pursuit."))
	// 勝者が先頭文なので拡張は後続1文まで: 末尾の同点文は含まれない
	assert.NotContains(t, snippet, "omega")
}

func TestBestSentenceSnippet_TruncatesAtWordBoundary(t *testing.T) {
	// 1文が700文字を大きく超えるブロックを作る
	word := "pursuit"
	long := strings.Repeat(word+" ", 200) + "end."
	snippet, score, _ := BestSentenceSnippet(long)
	require.Positive(t, score)

	require.True(t, strings.HasSuffix(snippet, " …"))
	body := strings.TrimSuffix(snippet, " …")
	assert.LessOrEqual(t, len(body), maxSnippetLen)
	// 語の途中で切れていない: 末尾は完全な単語
	assert.True(t, strings.HasSuffix(body, word))
}

func TestBestSentenceSnippet_EmptyBlock(t *testing.T) {
	snippet, score, hits := BestSentenceSnippet("")
	assert.Empty(t, snippet)
	assert.Zero(t, score)
	assert.Empty(t, hits)
}
