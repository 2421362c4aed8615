// =============================================================================
// runner.go - スキャン実行（per-URL オーケストレーション）
// =============================================================================
//
// 設定されたURL列を1つずつ順番に処理します（並行処理なし）:
//
//   スキャン → 見出し/リンク解決 → ライブ判定 → 重複判定 → アラート
//
// 各段のネットワーク操作は個別タイムアウトのブロッキング呼び出しで、
// 実行全体のタイムアウトは持たない。1つのURLでの失敗（取得失敗・
// オラクル失敗）は後続URLの処理を妨げない。
//
// =============================================================================
package pursuit

import (
	"context"
	"fmt"
)

// Runner はスキャン1回分の協調オブジェクトを束ねる
type Runner struct {
	Fetch    FetchConfig
	Oracle   Oracle
	Store    *LastChaseStore
	Log      *PursuitLog
	Notifier *Notifier
	Archiver *NotionArchiver // nil ならNotionアーカイブ無効
}

// NewRunner は設定とオラクルからRunnerを組み立てる
func NewRunner(cfg *ScannerConfig, oracle Oracle) *Runner {
	r := &Runner{
		Fetch:  DefaultFetchConfig(),
		Oracle: oracle,
		Store:  NewLastChaseStore(cfg.State.LastChasePath),
		Log:    NewPursuitLog(cfg.State.PursuitLog),
		Notifier: &Notifier{
			AlertWebhook: cfg.Notify.AlertWebhook,
			LogWebhook:   cfg.Notify.LogWebhook,
		},
	}
	if cfg.Notify.NotionEnabled() {
		archiver, err := NewNotionArchiver(cfg.Notify.NotionToken, cfg.Notify.NotionDatabaseID)
		if err != nil {
			warnf("notion archive disabled: %v", err)
		} else {
			r.Archiver = archiver
		}
	}
	return r
}

// RunResult は1回の実行の集計
type RunResult struct {
	Findings int // 検出数（アラートに至らなかったものも含む）
	Alerts   int // 送信したアラート数
}

// Run は全URLと全フィードを1周スキャンする
func (r *Runner) Run(urls, feeds []string) RunResult {
	var res RunResult

	for _, pageURL := range urls {
		finding := ScanPageForChase(pageURL, r.Fetch)
		if finding == nil {
			continue
		}
		res.Findings++
		r.Log.Record(finding)

		// ページから代表見出しと候補リンクを選ぶ。
		// 見出しが取れなければスニペットで代用する。
		title, candidateHref := ChooseBestTitleAndLink(finding.HTML, finding.URL)
		if title == "" {
			title = finding.Text
		}
		if r.processCandidate(finding, title, candidateHref) {
			res.Alerts++
		}
	}

	for _, feedURL := range feeds {
		feedFinding := ScanFeedForChase(feedURL, r.Fetch)
		if feedFinding == nil {
			continue
		}
		res.Findings++
		r.Log.Record(&feedFinding.Finding)

		// フィード項目は見出しとリンクを最初から持つ
		title := feedFinding.ItemTitle
		if title == "" {
			title = feedFinding.Text
		}
		if r.processCandidate(&feedFinding.Finding, title, feedFinding.ItemLink) {
			res.Alerts++
		}
	}

	return res
}

// processCandidate はライブ判定 → 重複判定 → アラート送信 → 状態保存
// を行い、アラートを送信したかを返す
func (r *Runner) processCandidate(finding *Finding, title, candidateHref string) bool {
	if !IsLiveOngoing(r.Oracle, title) {
		infof("%s: not a live ongoing chase", finding.URL)
		return false
	}
	infof("%s: live ongoing chase", finding.URL)

	liveLink := FindAnyLiveLink(finding.HTML, finding.URL)
	if liveLink == "" {
		liveLink = candidateHref
	}
	if liveLink == "" {
		liveLink = finding.URL
	}

	// 重複抑制: 永続化済みの直近アラートと比較する
	last := r.Store.Load()
	current := ChaseCandidate{
		Title:       title,
		Text:        finding.Text,
		PageURL:     finding.URL,
		SourceSite:  domainOf(finding.URL),
		LiveLink:    liveLink,
		EvaluatedAt: utcNowISO(),
	}
	if last != nil && IsSameChase(r.Oracle, last, current) {
		infof("duplicate of last ongoing chase; skipping alert")
		return false
	}

	r.Notifier.Alert(fmt.Sprintf("@everyone LIVE ONGOING CHASE: %s\n%s", title, liveLink))

	event := ChaseEvent{
		Title:      title,
		Text:       finding.Text,
		PageURL:    finding.URL,
		SourceSite: domainOf(finding.URL),
		LiveLink:   liveLink,
		AlertedAt:  utcNowISO(),
	}
	r.Store.Save(event)

	if r.Archiver != nil {
		if err := r.Archiver.ArchiveChase(context.Background(), event); err != nil {
			warnf("notion archive failed: %v", err)
		}
	}
	return true
}
