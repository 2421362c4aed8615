// =============================================================================
// extract.go - テキスト抽出（Text Extractor）
// =============================================================================
//
// このファイルは生HTMLから「追跡の証拠になりうるテキストブロック」を
// 抽出します。見出し・段落・リスト項目・長め（またはキーワード入り）の
// アンカーテキストを対象に、タグ除去・エンティティ復元・空白正規化を
// 行った上で、重複排除して最大600件まで返します。
//
// 不正・途中切れのHTMLでも panic しない（マッチしない部分は単に
// 何も生成しないだけ）。
//
// =============================================================================
package pursuit

import (
	"html"
	"regexp"
)

// maxBlocksPerPage は1ページあたりの抽出ブロック上限
const maxBlocksPerPage = 600

// minBlockLen は見出し以外のタグに要求する最小文字数
// （これ未満はシグナルにマッチしない限り捨てる）
const minBlockLen = 30

// minAnchorLen はアンカーテキストを無条件で残す最小文字数
const minAnchorLen = 25

// blockTags は抽出対象タグ（見出し→段落→リスト項目の順）
var blockTags = []string{"h1", "h2", "h3", "h4", "h5", "h6", "p", "li"}

// shortHeadingTags は長さゲートを免除する見出しレベル（h1〜h3）
var shortHeadingTags = map[string]bool{"h1": true, "h2": true, "h3": true}

// Go の regexp は後方参照をサポートしないため、除去対象タグごとに
// パターンを1つずつ用意する（タグ名と閉じタグを明示的に対にする）。
var strippedElements = func() []*regexp.Regexp {
	tags := []string{"script", "style", "noscript", "iframe", "svg", "meta", "link"}
	out := make([]*regexp.Regexp, 0, len(tags))
	for _, t := range tags {
		out = append(out, regexp.MustCompile(`(?is)<`+t+`[^>]*>.*?</`+t+`\s*>`))
	}
	return out
}()

var (
	reBreakTag = regexp.MustCompile(`(?is)<br\s*/?>`)
	reAnyTag   = regexp.MustCompile(`(?is)<[^>]+>`)
)

// blockPatterns はタグごとの内容キャプチャパターン（起動時にコンパイル）
var blockPatterns = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(blockTags))
	for _, t := range blockTags {
		out[t] = regexp.MustCompile(`(?is)<\s*` + t + `[^>]*>(.*?)</\s*` + t + `\s*>`)
	}
	return out
}()

var reAnchorInner = regexp.MustCompile(`(?is)<\s*a[^>]*>(.*?)</\s*a\s*>`)

// stripScriptsAndStyles はスクリプト等の非表示要素を中身ごと除去し、
// <br> を改行に変換する
func stripScriptsAndStyles(rawHTML string) string {
	if rawHTML == "" {
		return ""
	}
	cleaned := rawHTML
	for _, pat := range strippedElements {
		cleaned = pat.ReplaceAllString(cleaned, " ")
	}
	return reBreakTag.ReplaceAllString(cleaned, "\n")
}

// cleanInnerText はキャプチャしたタグ内容をプレーンテキストに変換する
// （ネストタグ除去 → エンティティ復元 → 空白正規化）
func cleanInnerText(inner string) string {
	text := reAnyTag.ReplaceAllString(inner, " ")
	text = html.UnescapeString(text)
	return normalizeWhitespace(text)
}

// ExtractTextBlocks は生HTMLからテキストブロックを抽出する
//
// 抽出ルール:
//   - h1〜h6 / p / li の内容を順に収集。h1〜h3は長さ不問、
//     それ以外は30文字未満かつシグナル無しなら捨てる。
//   - アンカーテキストは25文字以上、またはシグナルにマッチすれば残す。
//   - 見出し/段落ブロックの後にアンカーブロックを連結し、
//     完全一致で重複排除（初出順を維持）、先頭600件に切り詰める。
//
// 副作用なし。
func ExtractTextBlocks(rawHTML string) []string {
	cleaned := stripScriptsAndStyles(rawHTML)
	var blocks []string

	for _, tag := range blockTags {
		for _, m := range blockPatterns[tag].FindAllStringSubmatch(cleaned, -1) {
			text := cleanInnerText(m[1])
			if text == "" {
				continue
			}
			if !shortHeadingTags[tag] && len(text) < minBlockLen && !matchesAnySignal(text) {
				continue
			}
			blocks = append(blocks, text)
		}
	}

	for _, m := range reAnchorInner.FindAllStringSubmatch(cleaned, -1) {
		text := cleanInnerText(m[1])
		if text == "" {
			continue
		}
		if len(text) >= minAnchorLen || matchesAnySignal(text) {
			blocks = append(blocks, text)
		}
	}

	unique := uniqStrings(blocks)
	if len(unique) > maxBlocksPerPage {
		unique = unique[:maxBlocksPerPage]
	}
	return unique
}
