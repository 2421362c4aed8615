// =============================================================================
// logfile.go - 検出ログ（プレーンテキスト追記）
// =============================================================================
package pursuit

import (
	"fmt"
	"os"
	"time"
)

// DefaultPursuitLogPath は既定の検出ログパス
const DefaultPursuitLogPath = "log.txt"

// PursuitLog はアラート有無にかかわらず全Findingを1件1レコードで
// 追記するログ
type PursuitLog struct {
	Path string
}

// NewPursuitLog はログを作成する（空パスは既定値）
func NewPursuitLog(path string) *PursuitLog {
	if path == "" {
		path = DefaultPursuitLogPath
	}
	return &PursuitLog{Path: path}
}

// Record はFindingを1レコード追記し、同じ内容をstderrにも出す
//
// ファイル書き込み失敗は黙って握りつぶす（ログはベストエフォート）。
func (l *PursuitLog) Record(f *Finding) {
	ts := time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
	line := fmt.Sprintf(
		"[%s] URL: %s | score=%d | confidence=%v | hits=%v\nTEXT: %s\n---\n",
		ts, f.URL, f.Score, f.Confidence, f.Hits, f.Text,
	)

	if file, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
		_, _ = file.WriteString(line)
		file.Close()
	}
	fmt.Fprint(os.Stderr, line)
}
