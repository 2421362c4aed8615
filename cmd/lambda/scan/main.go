// =============================================================================
// Lambda: scan-pursuits
// =============================================================================
//
// 全ニュースサイトを1周スキャンし、ライブ追跡を検出したら
// Discordにアラートを送るLambda関数（EventBridgeの定期実行を想定）
//
// 環境変数:
//   - GEMINI_API_KEY:     Gemini APIキー (必須)
//   - DISCORD_WEBHOOK:    公開アラートWebhook (任意)
//   - LOG_WEBHOOK:        診断ログWebhook (任意)
//   - NEWS_URLS:          監視URLの上書き (任意、カンマ区切り)
//   - FEED_URLS:          RSSフィードURL (任意、カンマ区切り)
//   - NOTION_TOKEN / NOTION_DATABASE_ID: Notionアーカイブ (任意)
//
// =============================================================================
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"pursuit-relay/internal/pursuit"
)

// Response はLambdaレスポンス
type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Findings   int    `json:"findings"`
	Alerts     int    `json:"alerts"`
}

// Handler はLambdaのメインハンドラー
//
// 個々のURL・オラクル呼び出しの失敗は非致命的なため、部分的に
// 失敗した実行でも200を返す。致命的なのは設定エラーだけ。
func Handler(ctx context.Context, event interface{}) (Response, error) {
	log.Println("Starting scan-pursuits Lambda...")

	cfg := pursuit.FromEnv()
	if err := cfg.Validate(); err != nil {
		return Response{StatusCode: 400, Message: err.Error()}, fmt.Errorf("config: %w", err)
	}

	oracle, err := pursuit.NewGeminiClient(cfg.Oracle.APIKey)
	if err != nil {
		return Response{StatusCode: 400, Message: err.Error()}, err
	}
	oracle.CacheDir = cfg.Oracle.CacheDir
	oracle.LogWebhook = cfg.Notify.LogWebhook

	urls := cfg.Input.URLs()
	log.Printf("Config: %d url(s), %d feed(s)", len(urls), len(cfg.Input.Feeds()))

	runner := pursuit.NewRunner(cfg, oracle)
	result := runner.Run(urls, cfg.Input.Feeds())

	log.Printf("Scan complete: %d finding(s), %d alert(s)", result.Findings, result.Alerts)
	return Response{
		StatusCode: 200,
		Message:    "scan complete",
		Findings:   result.Findings,
		Alerts:     result.Alerts,
	}, nil
}

func main() {
	lambda.Start(Handler)
}
