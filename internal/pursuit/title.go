// =============================================================================
// title.go - 見出し・リンク解決（Title/Link Resolver）
// =============================================================================
//
// 検出済みページの生HTMLから、代表見出しとそのリンクを選びます。
// アンカーテキストと見出しタグをそれぞれ採点し、"live" の単語を含む
// 候補にボーナスを与え、最高スコアの候補を採用します。
//
// goquery を使うのはここだけ。抽出側（extract.go）は閾値が正規表現の
// マッチ挙動に対してチューニングされているため正規表現のまま、
// こちらは (テキスト, href) ペアが取れれば十分なのでDOM走査で取る。
//
// =============================================================================
package pursuit

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// liveTitleBonus は "live" の単語を含む候補への加点
const liveTitleBonus = 6

var (
	reLiveWord     = regexp.MustCompile(`(?i)\blive\b`)
	reLiveLinkText = regexp.MustCompile(`(?i)\blive|watch\s+live|live\s+stream|live\s+coverage\b`)
	reLiveLinkHref = regexp.MustCompile(`(?i)/live|live-`)
)

// ChooseBestTitleAndLink は代表見出しと（あれば）そのリンクを返す
//
// アンカーを先に、見出しタグを後に評価し、スコアが厳密に上回った
// 場合のみ置き換える（同点は先勝ち）。勝者がアンカーなら href を
// ベースURLに対して解決して返し、見出しタグならリンク無し。
// どちらも見つからなければ ("", "")。
func ChooseBestTitleAndLink(rawHTML, baseURL string) (title, href string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", ""
	}

	bestScore := 0

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		text := normalizeWhitespace(s.Text())
		if text == "" {
			return
		}
		score := ScoreText(text).Total
		if reLiveWord.MatchString(text) {
			score += liveTitleBonus
		}
		if score > bestScore {
			raw, _ := s.Attr("href")
			bestScore = score
			title = text
			href = resolveURL(baseURL, raw)
		}
	})

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := normalizeWhitespace(s.Text())
		if text == "" {
			return
		}
		score := ScoreText(text).Total
		if reLiveWord.MatchString(text) {
			score += liveTitleBonus
		}
		if score > bestScore {
			bestScore = score
			title = text
			href = "" // 見出しタグにリンクはない
		}
	})

	return title, href
}

// FindAnyLiveLink はライブ配信らしきリンクを文書順で最初に1つ返す
//
// リンクテキストの "live" 系文言、または href 自体の "/live", "live-"
// を手掛かりにする。見つからなければ空文字。
func FindAnyLiveLink(rawHTML, baseURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	live := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw, _ := s.Attr("href")
		if strings.TrimSpace(raw) == "" {
			return true
		}
		text := normalizeWhitespace(s.Text())
		if reLiveLinkText.MatchString(text) || reLiveLinkHref.MatchString(raw) {
			live = resolveURL(baseURL, raw)
			return false
		}
		return true
	})
	return live
}
