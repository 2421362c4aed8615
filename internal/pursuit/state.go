// =============================================================================
// state.go - アラート状態ストア（Alert State Store）
// =============================================================================
//
// 直近にアラートを送った1件の ChaseEvent を last_chase.json に永続化
// します。スロットは1つだけで、新しいアラートのたびに丸ごと上書き。
// 「同時に1件しか追跡は起きない」という割り切った設計で、より汎用的
// にするなら地理クラスタごとのキーや小さなリングバッファになるが、
// これは既知のスコープ制限として意図的に残している。
//
// =============================================================================
package pursuit

import "os"

// DefaultLastChasePath は既定の状態ファイルパス
const DefaultLastChasePath = "last_chase.json"

// LastChaseStore は単一スロットの永続化ストア
type LastChaseStore struct {
	Path string
}

// NewLastChaseStore はストアを作成する（空パスは既定値）
func NewLastChaseStore(path string) *LastChaseStore {
	if path == "" {
		path = DefaultLastChasePath
	}
	return &LastChaseStore{Path: path}
}

// Load は前回アラートイベントを読み込む
//
// ファイル未存在・読取不能・壊れたJSONはすべて「前回イベント無し」
// （nil）であり、致命的エラーにはしない。
func (s *LastChaseStore) Load() *ChaseEvent {
	var ev ChaseEvent
	if err := readJSONFile(s.Path, &ev); err != nil {
		if !os.IsNotExist(err) {
			debugf("last chase file %s unreadable: %v", s.Path, err)
		}
		return nil
	}
	return &ev
}

// Save はイベントをスロットに上書き保存する
//
// 書き込み失敗はベストエフォート（警告のみ）: 状態ファイルは古い
// 内容のまま残り、プログラムは続行する。
func (s *LastChaseStore) Save(ev ChaseEvent) {
	if err := writeJSONFile(s.Path, ev); err != nil {
		warnf("failed to save last chase to %s: %v", s.Path, err)
	}
}
