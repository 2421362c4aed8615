// =============================================================================
// classify.go - ライブ判定・重複判定ゲートウェイ
// =============================================================================
//
// オラクル（Gemini）へのYES/NO質問を組み立て、応答を解釈します。
// どちらのゲートもフェイルクローズド: オラクルのエラー・空応答・
// YES以外のトークンはすべてNO扱いで、スキャンループを落とさない。
//
// =============================================================================
package pursuit

import (
	"fmt"
	"strings"
)

// ChaseCandidate はアラート判定中の現在イベント。
// 永続化前なので AlertedAt ではなく評価時刻を持つ。
type ChaseCandidate struct {
	Title       string
	Text        string
	PageURL     string
	SourceSite  string
	LiveLink    string
	EvaluatedAt string
}

// IsLiveOngoing は見出しが「現在進行中のライブ追跡」を示すかを
// オラクルに確認する
//
// 空の見出しは問い合わせずにfalse。オラクルのエラーもfalse。
func IsLiveOngoing(oracle Oracle, title string) bool {
	if title == "" {
		return false
	}
	prompt := "You are a strict classifier. Given the news headline, decide if it indicates a LIVE ongoing police pursuit/chase that is currently happening and being broadcast live. " +
		"Respond with a single token: YES or NO. If unsure, respond NO.\n" +
		"Headline: \"" + title + "\"\nAnswer:"

	resp, err := oracle.Ask(prompt)
	if err != nil {
		warnf("live classification failed: %v", err)
		return false
	}
	return firstTokenIsYes(resp)
}

// IsSameChase は現在の検出が前回アラート済みイベントの継続かを
// オラクルに確認する
//
// 前回イベントが無ければ問い合わせずに「重複ではない」。
func IsSameChase(oracle Oracle, previous *ChaseEvent, current ChaseCandidate) bool {
	if previous == nil {
		return false
	}

	prevSummary := fmt.Sprintf(
		"prev_title: %s\nprev_text: %s\nprev_site: %s\nprev_url: %s\nprev_live: %s\nprev_time_utc: %s\n",
		previous.Title, previous.Text, previous.SourceSite, previous.PageURL, previous.LiveLink, previous.AlertedAt,
	)
	currSummary := fmt.Sprintf(
		"curr_title: %s\ncurr_text: %s\ncurr_site: %s\ncurr_url: %s\ncurr_live: %s\ncurr_time_utc: %s\n",
		current.Title, current.Text, current.SourceSite, current.PageURL, current.LiveLink, current.EvaluatedAt,
	)

	prompt := "You are a strict deduplication classifier for police pursuits. There is only one chase at a time.\n" +
		"Determine if the CURRENT chase is the same ongoing event as the PREVIOUS chase (possibly covered by a different outlet or link).\n" +
		"Use location cues, suspect/vehicle details, and close time proximity. If it likely refers to the same ongoing event or a continuation/update, answer YES. Otherwise NO.\n" +
		"Output only YES or NO.\n\n" +
		"PREVIOUS:\n" + prevSummary + "\nCURRENT:\n" + currSummary + "\nAnswer:"

	resp, err := oracle.Ask(prompt)
	if err != nil {
		warnf("dedup classification failed: %v", err)
		return false
	}
	return firstTokenIsYes(resp)
}

// firstTokenIsYes は応答の最初の空白区切りトークンが "YES"
// （大文字小文字無視）と完全一致するかを返す
func firstTokenIsYes(resp string) bool {
	fields := strings.Fields(strings.TrimSpace(resp))
	if len(fields) == 0 {
		return false
	}
	return strings.ToUpper(fields[0]) == "YES"
}
