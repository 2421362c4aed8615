// =============================================================================
// patterns.go - シグナル表とパターンスコアリング
// =============================================================================
//
// このファイルは追跡検出のための重み付き正規表現シグナル表と、
// 任意のテキストをその表で採点するスコアリング関数を提供します。
//
// 【重要】重み・閾値・マッチ方式（大文字小文字無視、単語境界、
// 非重複カウント）はこの組み合わせでチューニングされています。
// マッチ方式を変えるとすべての閾値が暗黙にずれるため変更禁止。
//
// =============================================================================
package pursuit

import "regexp"

// Signal は1つの検出シグナル（名前・パターン・重み）を表す不変タプル
type Signal struct {
	Name    string
	Pattern *regexp.Regexp
	Weight  int
}

// MinScoreToLog は Finding を残す最小スコア（ノイズ回避のため保守的）
const MinScoreToLog = 6

// confidenceDivisor は信頼度計算の分母（confidence = score / 10、上限1.0）
const confidenceDivisor = 10.0

// signalTable は順序固定のシグナル表
//
// 各パターンは (?i) で大文字小文字を無視する。
// "suspect + pursuit" だけは (?s) も付けて改行越しの共起を許す。
var signalTable = []Signal{
	{"pursuit", regexp.MustCompile(`(?i)\bpursuit(s)?\b`), 6},
	{"police chase", regexp.MustCompile(`(?i)\bpolice\s+chase(s)?\b`), 7},
	{"car chase", regexp.MustCompile(`(?i)\bcar\s+chase(s)?\b`), 6},
	{"vehicle chase", regexp.MustCompile(`(?i)\bvehicle\s+chase(s)?\b`), 5},
	{"high-speed chase", regexp.MustCompile(`(?i)\bhigh[-\s]?speed\s+chase\b`), 8},
	{"PIT maneuver", regexp.MustCompile(`(?i)\b(pit|p\.i\.t\.)\s+maneuver\b`), 8},
	{"spike strip", regexp.MustCompile(`(?i)\bspike\s+strip(s)?\b`), 5},
	{"pursuit ends", regexp.MustCompile(`(?i)\bpursuit\s+end(s|ed)?\b`), 5},
	{"termination of pursuit", regexp.MustCompile(`(?i)\btermination\s+of\s+pursuit\b`), 6},
	{"suspect + pursuit", regexp.MustCompile(`(?is)\bsuspect\b.*?\bpursuit\b|\bpursuit\b.*?\bsuspect\b`), 5},
	{"evading", regexp.MustCompile(`(?i)\b(fleeing|evading|eluding)\b`), 3},
	{"wrong-way driver", regexp.MustCompile(`(?i)\bwrong[-\s]?way\s+driver\b`), 4},
	{"freeway/roads", regexp.MustCompile(`(?i)\b(?:I[-\s]?(?:5|10|60|91|101|105|110|210|405))\b|` +
		`\b(?:SR|US|CA)[-\s]?(?:5|10|60|91|101|105|110|210|405)\b|` +
		`\b(?:Freeway|Highway|Hwy|\d{2,3}\s*Freeway)\b`), 2},
	{"news chopper", regexp.MustCompile(`(?i)\bnews\s?chopper\b|\bsky\s?fox\b|\bsky\s?5\b`), 3},
	{"live pursuit", regexp.MustCompile(`(?i)\blive\s+pursuit\b`), 7},
	{"LAPD/CHP pursuit", regexp.MustCompile(`(?i)\b(LAPD|CHP)\b.*\bpursuit\b`), 6},
}

// coreNames は「追跡」を明確に示すシグナルの集合。
// freeway や news chopper だけのページ（渋滞・天気ニュース）を
// 誤検出しないためのゲートに使う。
var coreNames = map[string]bool{
	"pursuit":                true,
	"police chase":           true,
	"car chase":              true,
	"vehicle chase":          true,
	"high-speed chase":       true,
	"PIT maneuver":           true,
	"spike strip":            true,
	"pursuit ends":           true,
	"termination of pursuit": true,
	"live pursuit":           true,
	"LAPD/CHP pursuit":       true,
}

// corePatterns は coreNames に対応するパターンのスライス（表の順序を維持）
var corePatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(coreNames))
	for _, sig := range signalTable {
		if coreNames[sig.Name] {
			out = append(out, sig.Pattern)
		}
	}
	return out
}()

// ScoreText はテキストをシグナル表で採点する
//
// 各シグナルの非重複マッチ数に重みを掛けて合計する。
// 純粋関数: 入出力のみで副作用なし、同一入力には常に同一結果。
// ブロック全体・単一センテンス・アンカーテキストのいずれも
// この1つの関数で採点する。
func ScoreText(text string) ScoreResult {
	result := ScoreResult{Hits: map[string]int{}}
	for _, sig := range signalTable {
		count := len(sig.Pattern.FindAllStringIndex(text, -1))
		if count > 0 {
			result.Hits[sig.Name] += count
			result.Total += count * sig.Weight
		}
	}
	return result
}

// matchesAnySignal はいずれかのシグナルにマッチするかを返す（抽出の長さゲート用）
func matchesAnySignal(text string) bool {
	for _, sig := range signalTable {
		if sig.Pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// hasCoreSignal は生HTML（または任意のテキスト）にコアシグナルが
// 1つでも含まれるかを返す
func hasCoreSignal(text string) bool {
	for _, pat := range corePatterns {
		if pat.MatchString(text) {
			return true
		}
	}
	return false
}
