// =============================================================================
// config.go - スキャナ設定
// =============================================================================
//
// このファイルはCLIフラグと環境変数からの設定管理を行います。
//
// 【設定グループ】
//   - InputConfig:  スキャン対象URL・フィード
//   - OracleConfig: Gemini APIキー・キャッシュ
//   - NotifyConfig: Webhook・Notion
//   - StateConfig:  状態ファイル・ログファイル
//
// 【必要な環境変数】
//   GEMINI_API_KEY  - Gemini APIキー（必須。無ければ起動時に致命的エラー）
//   DISCORD_WEBHOOK - 公開アラートWebhook（任意。無ければアラート無効）
//   LOG_WEBHOOK     - 診断ログWebhook（任意。無ければ診断通知無効）
//   NOTION_TOKEN / NOTION_DATABASE_ID - Notionアーカイブ（任意。両方必要）
//
// =============================================================================
package pursuit

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// defaultNewsURLs は監視対象の地方ニュースホームページ一覧
// （南カリフォルニアの追跡報道をカバーする局・地方紙）
const defaultNewsURLs = "https://www.nbclosangeles.com/," +
	"https://www.presstelegram.com," +
	"https://www.pasadenastarnews.com," +
	"https://smdp.com," +
	"https://glendalenewspress.com," +
	"https://burbankleader.com," +
	"https://signalscv.com," +
	"https://www.dailybreeze.com," +
	"https://inglewoodtoday.com," +
	"https://wehoonline.com," +
	"https://www.culvercityobserver.com," +
	"https://beverlyhillscourier.com," +
	"https://www.ocregister.com," +
	"https://www.pressenterprise.com," +
	"https://www.sbsun.com," +
	"https://www.dailybulletin.com," +
	"https://www.avpress.com," +
	"https://www.sgvtribune.com"

// ScannerConfig はスキャナ全体の設定を保持する
type ScannerConfig struct {
	Input  InputConfig
	Oracle OracleConfig
	Notify NotifyConfig
	State  StateConfig
}

// InputConfig はスキャン対象に関する設定
type InputConfig struct {
	// URLsRaw はカンマ区切りの監視対象URL（-urls フラグ / NEWS_URLS）
	URLsRaw string

	// FeedsRaw はカンマ区切りのRSSフィードURL（-feeds フラグ / FEED_URLS、
	// 空ならフィードプローブ無効）
	FeedsRaw string
}

// URLs はURLsRawをパースしてスライスで返す
func (c *InputConfig) URLs() []string {
	return splitCommaList(c.URLsRaw)
}

// Feeds はFeedsRawをパースしてスライスで返す
func (c *InputConfig) Feeds() []string {
	return splitCommaList(c.FeedsRaw)
}

func splitCommaList(raw string) []string {
	var result []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result
}

// OracleConfig はGeminiオラクルに関する設定
type OracleConfig struct {
	APIKey   string // 必須
	CacheDir string // 応答キャッシュディレクトリ
}

// NotifyConfig は通知先に関する設定
type NotifyConfig struct {
	AlertWebhook     string
	LogWebhook       string
	NotionToken      string
	NotionDatabaseID string
}

// NotionEnabled はNotionアーカイブが有効かどうかを返す
func (c *NotifyConfig) NotionEnabled() bool {
	return c.NotionToken != "" && c.NotionDatabaseID != ""
}

// StateConfig は永続化アーティファクトに関する設定
type StateConfig struct {
	LastChasePath string // 直近アラートの状態ファイル
	PursuitLog    string // 検出ログ（追記）
}

// FromEnv は環境変数から設定を読み込む（Lambda用。フラグ無し）
func FromEnv() *ScannerConfig {
	cfg := &ScannerConfig{}
	cfg.Input.URLsRaw = envOr("NEWS_URLS", defaultNewsURLs)
	cfg.Input.FeedsRaw = os.Getenv("FEED_URLS")
	cfg.Oracle.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Oracle.CacheDir = envOr("GEMINI_CACHE_DIR", defaultCacheDir)
	cfg.Notify.AlertWebhook = os.Getenv("DISCORD_WEBHOOK")
	cfg.Notify.LogWebhook = os.Getenv("LOG_WEBHOOK")
	cfg.Notify.NotionToken = os.Getenv("NOTION_TOKEN")
	cfg.Notify.NotionDatabaseID = os.Getenv("NOTION_DATABASE_ID")
	cfg.State.LastChasePath = envOr("LAST_CHASE_FILE", DefaultLastChasePath)
	cfg.State.PursuitLog = envOr("PURSUIT_LOG_FILE", DefaultPursuitLogPath)
	return cfg
}

// ParseFlags はCLIフラグを解析してScannerConfigを返す
// （環境変数を既定値とし、フラグで上書きできる）
func ParseFlags() *ScannerConfig {
	cfg := FromEnv()

	flag.StringVar(&cfg.Input.URLsRaw, "urls", cfg.Input.URLsRaw, "comma-separated news homepage URLs to scan")
	flag.StringVar(&cfg.Input.FeedsRaw, "feeds", cfg.Input.FeedsRaw, "comma-separated RSS feed URLs to probe (empty=disabled)")
	flag.StringVar(&cfg.Oracle.CacheDir, "cacheDir", cfg.Oracle.CacheDir, "directory for cached oracle responses")
	flag.StringVar(&cfg.State.LastChasePath, "stateFile", cfg.State.LastChasePath, "path to the last-alerted-chase JSON file")
	flag.StringVar(&cfg.State.PursuitLog, "logFile", cfg.State.PursuitLog, "path to the plain-text findings log")

	flag.Parse()
	return cfg
}

// Validate は必須設定を検査する（APIキー欠落は致命的）
func (c *ScannerConfig) Validate() error {
	if c.Oracle.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set (set it in your environment or .env)")
	}
	if len(c.Input.URLs()) == 0 {
		return fmt.Errorf("no news URLs configured")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
