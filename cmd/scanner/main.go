// =============================================================================
// main.go - Pursuit Relay スキャナのエントリーポイント
// =============================================================================
//
// このプログラムは、南カリフォルニアの地方ニュースサイトを巡回して
// 「現在進行中のライブ警察追跡」を検出し、Discordにアラートを送る
// CLIツールです。cron等で定期実行する前提で、1回の起動で全URLを
// 1周スキャンして終了します。
//
// =============================================================================
// 【処理フロー】
// =============================================================================
//
//   ┌─────────────┐    ┌─────────────┐    ┌─────────────┐
//   │  1. 設定    │ -> │  2. 巡回    │ -> │  3. 判定    │
//   │  読み込み   │    │  スキャン   │    │  Gemini API │
//   └─────────────┘    └─────────────┘    └─────────────┘
//          │                  │                  │
//          v                  v                  v
//   .env読み込み        18サイトから      ライブ判定と
//   フラグ解析          最良候補を検出     重複判定
//
//   判定を通過した検出だけがDiscordアラートになり、last_chase.json
//   に「直近のアラート済み追跡」として上書き保存される。
//
// =============================================================================
// 【初心者向けポイント】
// =============================================================================
//
// - flag パッケージでCLI引数を解析
// - godotenv パッケージで.envファイルを読み込み
// - エラーと進捗は標準エラー出力（os.Stderr）に出力
//
// =============================================================================
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv" // .env ファイル読み込み

	"pursuit-relay/internal/pursuit"
)

func main() {
	// .env ファイルから環境変数を読み込み
	// ファイルが存在しない場合はログを出力するが、処理は続行する
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "WARN: .env file not loaded: %v (using environment variables only)\n", err)
	}

	cfg := pursuit.ParseFlags()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	oracle, err := pursuit.NewGeminiClient(cfg.Oracle.APIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	oracle.CacheDir = cfg.Oracle.CacheDir
	oracle.LogWebhook = cfg.Notify.LogWebhook

	runner := pursuit.NewRunner(cfg, oracle)
	result := runner.Run(cfg.Input.URLs(), cfg.Input.Feeds())

	fmt.Fprintf(os.Stderr, "INFO: scan complete: %d finding(s), %d alert(s)\n",
		result.Findings, result.Alerts)
}
