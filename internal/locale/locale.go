// Package locale holds the user-facing text for the report in each supported language.
package locale

import "strings"

// Supported languages.
const (
	English  = "en"
	Japanese = "ja"
)

// Catalog is the set of strings used when talking to a chat user.
type Catalog struct {
	Lang string

	Usage          string
	MalformedID    string
	Loading        string
	Done           string
	PlayerNotFound string
	FetchFailed    string

	ReportAuthor   string
	ReportTitle    string // formatted with the player's name#tag
	ReportSubtitle string
	Footer         string

	CurrentRank string
	HighestRank string
	AverageKD   string
	AverageHS   string
	WinRate     string
	MostUsed    string
	History     string
	NoHistory   string
	Win         string
	Loss        string
	Unavailable string
	rankNames   map[string]string
}

var english = Catalog{
	Lang:           English,
	Usage:          "💡 **Usage**: `!stats name#tag`",
	MalformedID:    "❌ Invalid format. Please enter it as `name#tag`.",
	Loading:        "📡 Looking up competitive data...",
	Done:           "✅ Lookup complete!",
	PlayerNotFound: "❌ Player not found.",
	FetchFailed:    "❌ Something went wrong while fetching data.",
	ReportAuthor:   "VALORANT Competitive Report",
	ReportTitle:    "🔎 Stats report for %s",
	ReportSubtitle: "Based on the most recent **competitive matches**.",
	Footer:         "Powered by Henrik-3 API",
	CurrentRank:    "👤 Current rank",
	HighestRank:    "📈 Highest rank",
	AverageKD:      "🎯 Avg K/D",
	AverageHS:      "💀 Avg HS% (head/all hits)",
	WinRate:        "🔥 Win rate (last %d)",
	MostUsed:       "🎮 Most used agent",
	History:        "📅 Recent competitive history",
	NoHistory:      "No data",
	Win:            "WIN",
	Loss:           "LOSS",
	Unavailable:    "N/A",
}

var japanese = Catalog{
	Lang:           Japanese,
	Usage:          "💡 **使い方**: `!stats 名前#タグ`",
	MalformedID:    "❌ 形式が正しくありません。「名前#タグ」で入力してください。",
	Loading:        "📡 コンペティティブデータを照会中...",
	Done:           "✅ 検索完了しました！",
	PlayerNotFound: "❌ プレイヤーが見つかりませんでした。",
	FetchFailed:    "❌ データの取得中にエラーが発生しました。",
	ReportAuthor:   "VALORANT Competitive Report",
	ReportTitle:    "🔎 %s の戦績レポート",
	ReportSubtitle: "以下の情報は直近の**コンペティティブマッチ**に基づいています。",
	Footer:         "Powered by Henrik-3 API",
	CurrentRank:    "👤 現在のランク",
	HighestRank:    "📈 最高ランク",
	AverageKD:      "🎯 平均K/D",
	AverageHS:      "💀 平均HS率 (頭/体全体)",
	WinRate:        "🔥 勝率 (直近%d戦)",
	MostUsed:       "🎮 最頻使用エージェント",
	History:        "📅 直近のコンペティティブ履歴",
	NoHistory:      "データなし",
	Win:            "WIN",
	Loss:           "LOSS",
	Unavailable:    "N/A",
	rankNames: map[string]string{
		"Unranked":    "アンランク",
		"Iron 1":      "アイアン1",
		"Iron 2":      "アイアン2",
		"Iron 3":      "アイアン3",
		"Bronze 1":    "ブロンズ1",
		"Bronze 2":    "ブロンズ2",
		"Bronze 3":    "ブロンズ3",
		"Silver 1":    "シルバー1",
		"Silver 2":    "シルバー2",
		"Silver 3":    "シルバー3",
		"Gold 1":      "ゴールド1",
		"Gold 2":      "ゴールド2",
		"Gold 3":      "ゴールド3",
		"Platinum 1":  "プラチナ1",
		"Platinum 2":  "プラチナ2",
		"Platinum 3":  "プラチナ3",
		"Diamond 1":   "ダイヤ1",
		"Diamond 2":   "ダイヤ2",
		"Diamond 3":   "ダイヤ3",
		"Ascendant 1": "アセンダント1",
		"Ascendant 2": "アセンダント2",
		"Ascendant 3": "アセンダント3",
		"Immortal 1":  "イモータル1",
		"Immortal 2":  "イモータル2",
		"Immortal 3":  "イモータル3",
		"Radiant":     "レディアント",
	},
}

// For returns the catalog for lang, falling back to English.
func For(lang string) Catalog {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case Japanese, "jp", "ja-jp":
		return japanese
	default:
		return english
	}
}

// Rank returns the localised tier name. Unknown tiers are returned unchanged
// and an empty tier renders as Unavailable.
func (c Catalog) Rank(tier string) string {
	if tier == "" {
		return c.Unavailable
	}
	if name, ok := c.rankNames[tier]; ok {
		return name
	}
	return tier
}
