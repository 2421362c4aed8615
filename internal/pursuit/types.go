// =============================================================================
// types.go - データ構造定義
// =============================================================================
//
// このファイルはPursuit Relayシステム全体で使用するデータ構造（型）を定義します。
//
// 【このファイルで定義している型】
//   - ScoreResult: パターンスコアリングの結果
//   - Finding:     1ページのスキャン結果（最良スニペット）
//   - ChaseEvent:  アラート済み追跡イベント（永続化対象）
//
// 【初心者向けポイント】
//   - Go言語では`type 型名 struct { ... }`で構造体を定義
//   - `json:"フィールド名"`はJSONに変換する際のキー名を指定するタグ
//   - `omitempty`は値が空の場合、JSONに出力しないことを意味
//
// =============================================================================
package pursuit

// -----------------------------------------------------------------------------
// ScoreResult - パターンスコアリングの結果
// -----------------------------------------------------------------------------
//
// 任意のテキストをシグナル表で評価した結果を表します。
//
// 【フィールドの説明】
//   Total: 全シグナルの (マッチ数 × 重み) の合計
//   Hits:  シグナル名 → マッチ数（1回以上マッチしたものだけ）
//
type ScoreResult struct {
	Total int            // 合計スコア（常に0以上）
	Hits  map[string]int // シグナル名 → 出現回数
}

// -----------------------------------------------------------------------------
// Finding - 1ページのスキャン結果
// -----------------------------------------------------------------------------
//
// Page Scannerが1つのURLから検出した最良の追跡候補を表します。
// 1ページにつき最大1つ生成され、永続化はされません。
//
// 【フィールドの説明】
//   URL:        スキャンしたページのURL
//   Score:      最良センテンスのスコア
//   Confidence: min(1.0, Score/10) を小数2桁に丸めた値
//   Text:       最良スニペット（前後1文を含む抜粋）
//   Hits:       最良センテンスのシグナル内訳
//   HTML:       取得した生HTML（後段のタイトル/リンク解決に使用）
//
type Finding struct {
	URL        string         `json:"url"`
	Score      int            `json:"score"`
	Confidence float64        `json:"confidence"`
	Text       string         `json:"text"`
	Hits       map[string]int `json:"hits"`
	HTML       string         `json:"-"` // 生HTMLはログ/JSONに出さない
}

// -----------------------------------------------------------------------------
// ChaseEvent - アラート済み追跡イベント
// -----------------------------------------------------------------------------
//
// 直近にアラートを送信した追跡イベントを表します。
// 常に1件だけ last_chase.json に保存され、新しいアラートのたびに
// 丸ごと上書きされます（マージや追記はしない）。
//
type ChaseEvent struct {
	Title      string `json:"title"`                // 見出し
	Text       string `json:"text"`                 // スニペット
	PageURL    string `json:"page_url"`             // 検出元ページURL
	SourceSite string `json:"source_site"`          // 検出元ドメイン
	LiveLink   string `json:"live_link"`            // ライブ配信リンク
	AlertedAt  string `json:"alerted_at,omitempty"` // アラート送信時刻（UTC, RFC3339風）
}
