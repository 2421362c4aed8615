// =============================================================================
// snippet.go - スニペット選択（Snippet Selector）
// =============================================================================
//
// 1つのテキストブロックをセンテンスに分割し、最もスコアの高い
// センテンスを中心に前後1文ずつ広げた抜粋を作ります。
//
// =============================================================================
package pursuit

import "strings"

// maxSnippetLen はスニペットの最大文字数（超過時は直前の空白で切る）
const maxSnippetLen = 700

// sentenceEnders はセンテンス境界とみなす終端文字
// （直後に空白が続く場合のみ境界として扱う）
var sentenceEnders = map[rune]bool{'.': true, '!': true, '?': true, '…': true}

// SplitIntoSentences はテキストをセンテンスに分割する
//
// 境界ヒューリスティック: 改行をスペースに置き換えた後、
// ピリオド/感嘆符/疑問符/三点リーダの直後に空白が続く位置で区切る。
// RE2 には後方参照・lookbehind が無いため手動スキャンで実装する。
func SplitIntoSentences(text string) []string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if text == "" {
		return nil
	}

	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !sentenceEnders[runes[i]] {
			continue
		}
		// 境界は「終端文字の直後の空白」。空白をスキップして次の文頭へ。
		j := i + 1
		if j >= len(runes) || !isSpaceRune(runes[j]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		for j < len(runes) && isSpaceRune(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// BestSentenceSnippet はブロック中の最良センテンスを見つけ、
// 前後1文を加えた抜粋を返す
//
// 戻り値: (スニペット, 最良センテンスのスコア, そのヒット内訳)。
// センテンスが無い場合は ("", 0, 空マップ)。
// 同点の場合は先に現れたセンテンスを保持する（strict first-maximum）。
func BestSentenceSnippet(blockText string) (string, int, map[string]int) {
	sentences := SplitIntoSentences(blockText)
	if len(sentences) == 0 {
		return "", 0, map[string]int{}
	}

	bestIdx := 0
	bestScore := 0
	bestHits := map[string]int{}
	for i, sent := range sentences {
		result := ScoreText(sent)
		if result.Total > bestScore {
			bestIdx = i
			bestScore = result.Total
			bestHits = result.Hits
		}
	}

	// 前後1文ずつ拡張（ブロック境界でクランプ）
	start := bestIdx - 1
	if start < 0 {
		start = 0
	}
	end := bestIdx + 2
	if end > len(sentences) {
		end = len(sentences)
	}
	snippet := strings.TrimSpace(strings.Join(sentences[start:end], " "))
	if len(snippet) > maxSnippetLen {
		cut := snippet[:maxSnippetLen]
		if idx := strings.LastIndex(cut, " "); idx > 0 {
			cut = cut[:idx]
		}
		snippet = cut + " …"
	}
	return snippet, bestScore, bestHits
}
