// =============================================================================
// scan.go - ページスキャナ（Page Scanner）とRSSフィードプローブ
// =============================================================================
//
// このファイルは1つのURL（ホームページまたはRSSフィード）を取得し、
// 抽出 → コアシグナルゲート → 全ブロック採点 を経て、最良の
// Finding を1つ（または無し）を返します。
//
// 【処理の流れ（ページ）】
//   1. 固定ヘッダ・12秒タイムアウトでGET
//   2. ステータス>=400 / 非HTML / ソフトブロック文言 → 検出なし
//   3. 生HTMLにコアシグナルが無ければ即却下
//      （"freeway"や"news chopper"だけの渋滞記事を弾く）
//   4. 全ブロックをスニペット選択にかけ、最高スコアのものを採用
//   5. スコア < MinScoreToLog またはスニペット無し → 検出なし
//
// =============================================================================
package pursuit

import (
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// softBlockMarker はbot検知サービスのブロックページに含まれる文言
const softBlockMarker = "Access to this site has been denied"

// FetchConfig はページ/フィード取得の共通設定
type FetchConfig struct {
	UserAgent      string
	Accept         string
	AcceptLanguage string
	Timeout        time.Duration
}

// DefaultFetchConfig は本番で使う取得設定を返す
//
// User-Agentは一般的なデスクトップChromeを名乗る（多くの地方紙サイトは
// 素のGoクライアントUAを弾くため）。
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36",
		Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		AcceptLanguage: "en-US,en;q=0.9",
		Timeout:        12 * time.Second,
	}
}

func (cfg FetchConfig) fetch(rawURL string) (*http.Response, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if cfg.Accept != "" {
		req.Header.Set("Accept", cfg.Accept)
	}
	if cfg.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", cfg.AcceptLanguage)
	}
	return client.Do(req)
}

// ScanPageForChase は1ページをスキャンして最良のFindingを返す
//
// トランスポートエラー・HTTP>=400・非HTML・ソフトブロック・
// ゲート/閾値不通過はすべて nil（そのURLをスキップ）。
func ScanPageForChase(pageURL string, cfg FetchConfig) *Finding {
	resp, err := cfg.fetch(pageURL)
	if err != nil {
		debugf("fetch %s failed: %v", pageURL, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		debugf("fetch %s: status %d", pageURL, resp.StatusCode)
		return nil
	}
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") {
		debugf("fetch %s: non-HTML content type %q", pageURL, contentType)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		debugf("read %s failed: %v", pageURL, err)
		return nil
	}
	rawHTML := string(body)
	if strings.Contains(rawHTML, softBlockMarker) {
		debugf("fetch %s: soft-blocked", pageURL)
		return nil
	}

	return EvaluatePage(pageURL, rawHTML)
}

// EvaluatePage は取得済みHTMLに対する判定部分
// （取得と分離してあるのは同一HTMLに対して決定的であることを保つため）
func EvaluatePage(pageURL, rawHTML string) *Finding {
	blocks := ExtractTextBlocks(rawHTML)

	// ゲート: 抽出前の生HTMLのどこかにコアシグナルが必要
	pageHasCore := hasCoreSignal(rawHTML)

	bestSnippet := ""
	bestScore := 0
	bestHits := map[string]int{}
	for _, block := range blocks {
		snippet, score, hits := BestSentenceSnippet(block)
		if score > bestScore && snippet != "" {
			bestSnippet = snippet
			bestScore = score
			bestHits = hits
		}
	}

	if !pageHasCore || bestScore < MinScoreToLog || bestSnippet == "" {
		return nil
	}

	return &Finding{
		URL:        pageURL,
		Score:      bestScore,
		Confidence: confidenceOf(bestScore),
		Text:       bestSnippet,
		Hits:       bestHits,
		HTML:       rawHTML,
	}
}

// confidenceOf は min(1.0, score/10) を小数2桁に丸めて返す
func confidenceOf(score int) float64 {
	c := float64(score) / confidenceDivisor
	if c > 1.0 {
		c = 1.0
	}
	return math.Round(c*100) / 100
}

// -----------------------------------------------------------------------------
// RSSフィードプローブ
// -----------------------------------------------------------------------------

// FeedFinding はフィードから得た検出結果。
// フィード項目は見出しとリンクを最初から持つため、ページ検出と違い
// タイトル/リンク解決を後段で行う必要がない。
type FeedFinding struct {
	Finding
	ItemTitle string // 最良ブロックを含む項目の見出し
	ItemLink  string // その項目のリンク
}

// ScanFeedForChase はRSS/Atomフィードをスキャンして最良のFindingを返す
//
// 各項目の「見出し + 本文説明」を1ブロックとして、ページと同じ
// コアゲート・採点・閾値を適用する。該当なしは nil。
func ScanFeedForChase(feedURL string, cfg FetchConfig) *FeedFinding {
	resp, err := cfg.fetch(feedURL)
	if err != nil {
		debugf("fetch feed %s failed: %v", feedURL, err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		debugf("fetch feed %s: status %d", feedURL, resp.StatusCode)
		return nil
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		debugf("parse feed %s failed: %v", feedURL, err)
		return nil
	}

	type feedBlock struct {
		text  string
		title string
		link  string
	}
	var (
		blocks   []feedBlock
		combined strings.Builder
	)
	for _, item := range feed.Items {
		text := normalizeWhitespace(item.Title + " " + cleanInnerText(item.Description))
		if text == "" {
			continue
		}
		blocks = append(blocks, feedBlock{text: text, title: normalizeWhitespace(item.Title), link: item.Link})
		combined.WriteString(text)
		combined.WriteString("\n")
	}

	// コアゲートはフィード全文に対して適用（生HTMLゲートと同じ役割）
	if !hasCoreSignal(combined.String()) {
		return nil
	}

	best := FeedFinding{}
	for _, block := range blocks {
		snippet, score, hits := BestSentenceSnippet(block.text)
		if score > best.Score && snippet != "" {
			best = FeedFinding{
				Finding: Finding{
					URL:        feedURL,
					Score:      score,
					Confidence: confidenceOf(score),
					Text:       snippet,
					Hits:       hits,
				},
				ItemTitle: block.title,
				ItemLink:  block.link,
			}
		}
	}
	if best.Score < MinScoreToLog || best.Text == "" {
		return nil
	}
	if best.ItemLink != "" {
		best.URL = best.ItemLink
	}
	return &best
}
