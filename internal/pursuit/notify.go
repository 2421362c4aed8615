// =============================================================================
// notify.go - Webhook通知
// =============================================================================
//
// Discord互換WebhookへのJSON POSTを提供します。チャンネルは2系統:
//   - アラートチャンネル: 公開アラート（唯一の対外的に意味のある通知）
//   - ログチャンネル:     診断メッセージ（キャッシュミス等）
//
// どちらもベストエフォート: 失敗は黙って無視し、リトライもしない。
// Webhook URLが未設定ならそのチャンネルだけ無効になる。
//
// =============================================================================
package pursuit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"
)

const (
	alertWebhookTimeout = 10 * time.Second
	logWebhookTimeout   = 8 * time.Second
)

// Notifier はWebhook通知の送信先を保持する
type Notifier struct {
	AlertWebhook string // 公開アラート先（空なら無効）
	LogWebhook   string // 診断ログ先（空なら無効）
}

// Alert は公開アラートチャンネルにメッセージを送る（fire-and-forget）
func (n *Notifier) Alert(message string) {
	postWebhook(n.AlertWebhook, message, alertWebhookTimeout)
}

// Log は診断チャンネルにメッセージを送る（fire-and-forget）
func (n *Notifier) Log(message string) {
	postWebhook(n.LogWebhook, message, logWebhookTimeout)
}

// postWebhook は {"content": message} をPOSTする。
// URL未設定・エラー・非2xxはすべて黙って無視する。
func postWebhook(webhookURL, message string, timeout time.Duration) {
	if webhookURL == "" {
		return
	}
	payload, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return
	}
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(webhookURL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		debugf("webhook post failed: %v", err)
		return
	}
	resp.Body.Close()
}
