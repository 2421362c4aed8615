// =============================================================================
// gemini.go - Gemini オラクルクライアント
// =============================================================================
//
// Gemini REST API（generateContent）への薄いクライアントです。
//
// 主要な機能:
//   - プロンプト+モデルをキーにしたオンディスク応答キャッシュ
//     （キャッシュヒットはネットワークを一切使わず、リトライより先に判定）
//   - 空応答・エラー時の有限リトライ（固定回数・固定スリープ）
//   - キャッシュミス時のログWebhookへの診断通知（ベストエフォート）
//
// デバッグモード:
//   - DEBUG_SCANNER=1: リトライ・キャッシュの診断ログ
//
// =============================================================================
package pursuit

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Oracle は外部テキスト分類オラクルの窓口。
// 採点・抽出コアをスタブで独立にテストできるよう、意図的に狭く保つ。
type Oracle interface {
	Ask(prompt string) (string, error)
}

// defaultGeminiModel は使用モデル。
// NOTE: 常に gemini-2.5-flash を使うこと。タイポではない。
const defaultGeminiModel = "gemini-2.5-flash"

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultMaxRetries    = 3
	retrySleep           = 2 * time.Second
	defaultCacheDir      = "geminicache"
)

// GeminiClient はキャッシュ付きGeminiクライアント（Oracle実装）
type GeminiClient struct {
	APIKey     string
	Model      string
	MaxRetries int
	CacheDir   string
	LogWebhook string // キャッシュミス通知先（空なら無効）
	BaseURL    string // テスト時に差し替える
	Sleep      func(time.Duration)
}

// NewGeminiClient はGeminiクライアントを作成する
//
// APIキーは必須。モデル・リトライ回数・キャッシュ場所は既定値で埋める。
func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required (set it in your environment or .env)")
	}
	return &GeminiClient{
		APIKey:     apiKey,
		Model:      defaultGeminiModel,
		MaxRetries: defaultMaxRetries,
		CacheDir:   defaultCacheDir,
		BaseURL:    defaultGeminiBaseURL,
		Sleep:      time.Sleep,
	}, nil
}

// Ask はプロンプトを送って応答テキストを返す
//
// キャッシュヒットなら即座に返す。ミス時はログWebhookに通知した上で
// 最大 MaxRetries 回呼び出す。空応答はリトライし、全滅なら ("", nil)。
// 最終試行でのトランスポート/APIエラーのみ error として返る。
func (c *GeminiClient) Ask(prompt string) (string, error) {
	key := cacheKey(c.Model, prompt)
	if cached, ok := c.loadCache(key); ok {
		return cached, nil
	}

	c.notifyCacheMiss(key, prompt)

	for attempt := 1; attempt <= c.MaxRetries; attempt++ {
		text, err := c.generateContent(prompt)
		switch {
		case err != nil && attempt == c.MaxRetries:
			return "", fmt.Errorf("gemini request failed: %w", err)
		case err != nil:
			debugf("gemini attempt %d/%d failed: %v, retrying", attempt, c.MaxRetries, err)
		case text != "":
			c.saveCache(key, prompt, text)
			return text, nil
		default:
			debugf("gemini attempt %d/%d: empty response, retrying", attempt, c.MaxRetries)
		}
		c.Sleep(retrySleep)
	}

	warnf("gemini: all %d attempts returned empty responses", c.MaxRetries)
	return "", nil
}

// -----------------------------------------------------------------------------
// オンディスクキャッシュ
// -----------------------------------------------------------------------------

// cacheKey は {model, prompt} の正規化JSONのSHA-256を返す
//
// キーはプロンプトとモデルだけに依存する（URL・時刻には依存しない）。
// HTMLエスケープを無効にし、キー順（model, prompt）を固定することで
// 同一入力が常に同一キーになる。
func cacheKey(model, prompt string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
	}{model, prompt})
	sum := sha256.Sum256(bytes.TrimRight(buf.Bytes(), "\n"))
	return hex.EncodeToString(sum[:])
}

// geminiCacheEntry はキャッシュファイル1件の形式
type geminiCacheEntry struct {
	Params struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
	} `json:"params"`
	Response  string `json:"response"`
	Timestamp int64  `json:"timestamp"`
}

func (c *GeminiClient) cachePath(key string) string {
	return filepath.Join(c.CacheDir, key+".json")
}

func (c *GeminiClient) loadCache(key string) (string, bool) {
	var entry geminiCacheEntry
	if err := readJSONFile(c.cachePath(key), &entry); err != nil {
		// 未存在も壊れたJSONも単なるキャッシュミス扱い
		if !os.IsNotExist(err) {
			warnf("failed to read gemini cache %s: %v", c.cachePath(key), err)
		}
		return "", false
	}
	return entry.Response, true
}

func (c *GeminiClient) saveCache(key, prompt, response string) {
	if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
		warnf("failed to create cache dir %s: %v", c.CacheDir, err)
		return
	}
	var entry geminiCacheEntry
	entry.Params.Model = c.Model
	entry.Params.Prompt = prompt
	entry.Response = response
	entry.Timestamp = time.Now().Unix()
	if err := writeJSONFile(c.cachePath(key), entry); err != nil {
		warnf("failed to write gemini cache %s: %v", c.cachePath(key), err)
	}
}

func (c *GeminiClient) notifyCacheMiss(key, prompt string) {
	if c.LogWebhook == "" {
		return
	}
	trimmed := prompt
	if len(trimmed) > 200 {
		trimmed = trimmed[:200]
	}
	postWebhook(c.LogWebhook, fmt.Sprintf(
		"Gemini cache miss model=%s key=%s prompt='%s'", c.Model, key[:8], trimmed,
	), logWebhookTimeout)
}

// -----------------------------------------------------------------------------
// REST呼び出し
// -----------------------------------------------------------------------------

// geminiRequest は generateContent のリクエストボディ
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse は generateContent のレスポンス（必要な部分のみ）
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Text string `json:"text,omitempty"` // まれにトップレベルに返る
}

// generateContent は1回のAPI呼び出しを行い、candidates内の
// テキストを連結して返す
func (c *GeminiClient) generateContent(prompt string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.Model)

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > 500 {
			snippet = snippet[:500]
		}
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("json decode failed: %w", err)
	}

	var texts []string
	for _, cand := range parsed.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
	}
	if len(texts) == 0 && parsed.Text != "" {
		texts = append(texts, parsed.Text)
	}
	return strings.TrimSpace(strings.Join(texts, "\n")), nil
}
