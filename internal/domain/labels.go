package domain

import (
	"strings"

	"github.com/randomtoy/temple-go/internal/locale"
)

// Luck levels, best first.
const (
	LuckDaJi      = "大吉"
	LuckZhongJi   = "中吉"
	LuckXiaoJi    = "小吉"
	LuckPingJi    = "平吉"
	LuckXiaoXiong = "小凶"
	LuckDaXiong   = "大凶"
)

var luckPinyin = map[string]string{
	LuckDaJi:      "da ji",
	LuckZhongJi:   "zhong ji",
	LuckXiaoJi:    "xiao ji",
	LuckPingJi:    "ping ji",
	LuckXiaoXiong: "xiao xiong",
	LuckDaXiong:   "da xiong",
}

var elementPinyin = map[Element]string{
	Metal: "jin",
	Wood:  "mu",
	Water: "shui",
	Fire:  "huo",
	Earth: "tu",
}

// LuckLevel buckets a 1-10 luck score into its native label.
func LuckLevel(score int) string {
	switch {
	case score >= 9:
		return LuckDaJi
	case score >= 8:
		return LuckZhongJi
	case score >= 7:
		return LuckXiaoJi
	case score >= 6:
		return LuckPingJi
	case score >= 4:
		return LuckXiaoXiong
	default:
		return LuckDaXiong
	}
}

// LuckLabel returns the display label for a luck level. A non-blank
// luckText wins over the score. Labels without a romanization pass through.
func LuckLabel(loc locale.Tag, luckText string, score int) string {
	native := strings.TrimSpace(luckText)
	if native == "" {
		native = LuckLevel(score)
	}
	if loc == locale.English {
		if p, ok := luckPinyin[native]; ok {
			return p
		}
	}
	return native
}

// ElementLabel returns the display label for an element; unknown values
// pass through unchanged.
func ElementLabel(loc locale.Tag, e Element) string {
	if loc == locale.English {
		if p, ok := elementPinyin[e]; ok {
			return p
		}
	}
	return string(e)
}
