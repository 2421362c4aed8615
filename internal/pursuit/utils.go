// =============================================================================
// utils.go - ユーティリティ関数
// =============================================================================
//
// このファイルはシステム全体で使用する汎用的なヘルパー関数を提供します。
//
// 【このファイルで提供する機能】
//   - ログ出力: 警告・情報メッセージの出力（stderr）
//   - JSON操作: ファイル読み書き
//   - 文字列操作: 空白正規化、重複削除
//   - URL操作: ドメイン抽出、相対URL解決
//
// =============================================================================
package pursuit

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// ログ出力
// -----------------------------------------------------------------------------
//
// stdoutはパイプライン出力専用のため、ログはすべてstderrへ出す。

func infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "INFO: "+format+"\n", args...)
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARN: "+format+"\n", args...)
}

// debugf は DEBUG_SCANNER 環境変数が設定されている場合のみ出力する
func debugf(format string, args ...any) {
	if os.Getenv("DEBUG_SCANNER") == "" {
		return
	}
	fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
}

// -----------------------------------------------------------------------------
// JSON操作
// -----------------------------------------------------------------------------

func writeJSONFile(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func readJSONFile(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// -----------------------------------------------------------------------------
// 文字列操作
// -----------------------------------------------------------------------------

// normalizeWhitespace は連続する空白類を1つのスペースにまとめる
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// uniqStrings は完全一致で重複を除き、初出順を維持して返す
func uniqStrings(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// -----------------------------------------------------------------------------
// URL・時刻
// -----------------------------------------------------------------------------

// domainOf はURLのホスト部を小文字で返す（パース失敗時は空文字）
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// resolveURL は相対hrefをベースURLに対して解決する
func resolveURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// utcNowISO は秒精度のUTCタイムスタンプを "...Z" 形式で返す
func utcNowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05") + "Z"
}

var reHoursAgo = regexp.MustCompile(`(?i)\b\d+\s*(?:hour|hours)\s+ago\b`)

// HasHoursAgo は "17 hours ago" のような古さを示す文言を含むかを返す
//
// 【注意】現在は判定フローに組み込んでいない。古い見出しの抑制を
// 有効にする場合は Runner 側でタイトル/スニペットに対して呼ぶ。
func HasHoursAgo(text string) bool {
	if text == "" {
		return false
	}
	return reHoursAgo.MatchString(text)
}
