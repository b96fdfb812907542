package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/randomtoy/temple-go/internal/locale"
)

const (
	fallbackLuck         = 7
	fallbackFortuneTrend = "吉"
)

// FallbackDivination synthesizes a reading from fixed templates when the
// backend cannot be reached. Output depends only on its arguments.
func FallbackDivination(wish string, numbers [3]int, loc locale.Tag) DivinationResult {
	if loc == locale.English {
		nums := joinNumbers(numbers, ", ")
		return DivinationResult{
			Success:    true,
			Divination: fmt.Sprintf("Based on the numbers you chose (%s), the reading resolves to the Su Xi palace. It signals good news on its way and joy at the door.", nums),
			Prediction: fmt.Sprintf("Under the current tide of fortune, your wish \"%s\" has a good chance of coming true. Wait patiently for the right moment.", wish),
			Advice:     "Pray sincerely and keep kind intentions, and your wish will be fulfilled. Doing good deeds builds up merit.",
			Luck:       fallbackLuck,
			LuckText:   luckPinyin[LuckXiaoJi],
			FullText: fmt.Sprintf("[Hexagram Analysis]\nBased on the numbers you chose (%s), the reading resolves to the Su Xi palace.\n\n"+
				"[Prediction]\nYour wish has a good chance of coming true under the current tide of fortune.\n\n"+
				"[Divine Guidance]\nPray sincerely and keep doing good deeds.\n\n"+
				"[Fortune Level]\nOverall luck score: %d/10", nums, fallbackLuck),
			Palaces: DefaultPalaces(),
		}
	}

	nums := joinNumbers(numbers, "、")
	return DivinationResult{
		Success:    true,
		Divination: fmt.Sprintf("根据您选择的数字 %s，推算得出「速喜」卦象。此卦象预示着好事将至，喜事临门。", nums),
		Prediction: fmt.Sprintf("您的愿望「%s」在当前时运下，实现的可能性较高，需要耐心等待合适的时机。", wish),
		Advice:     "诚心祈福，保持善念，您的愿望将会实现。建议多行善事，积累福德。",
		Luck:       fallbackLuck,
		LuckText:   LuckXiaoJi,
		FullText: fmt.Sprintf("【卦象解析】\n根据您选择的数字 %s，推算得出「速喜」卦象。\n\n"+
			"【运势预测】\n您的愿望在当前时运下，实现的可能性较高。\n\n"+
			"【神明指引】\n诚心祈福，保持善念，多行善事。\n\n"+
			"【吉凶判断】\n总体运势评分：%d/10分", nums, fallbackLuck),
		Palaces: DefaultPalaces(),
	}
}

// FallbackBlessing synthesizes a blessing when the backend cannot be
// reached. Both language variants are always filled.
func FallbackBlessing(wish, token string, amount float64, loc locale.Tag) BlessingResult {
	zh := fmt.Sprintf("愿你所求「%s」心诚则灵，行稳致远。敬香祈愿，福泽自来。", wish)
	en := fmt.Sprintf("May your wish ‘%s’ be heard; a sincere heart invites steady blessings.", wish)
	blessing := zh
	if loc == locale.English {
		blessing = en
	}
	return BlessingResult{
		Success:      true,
		Blessing:     blessing,
		BlessingZH:   zh,
		BlessingEN:   en,
		FortuneTrend: fallbackFortuneTrend,
		Token:        token,
		Amount:       amount,
	}
}

// RecoverDivination collapses a backend outcome into a result. Any error or
// unsuccessful payload yields the fallback; recovered reports which path
// was taken.
func RecoverDivination(res DivinationResult, err error, req DivinationRequest) (out DivinationResult, recovered bool) {
	if err != nil || !res.Success {
		return FallbackDivination(req.Wish, req.Numbers, req.Locale), true
	}
	return NormalizeDivination(res, req.Numbers), false
}

// RecoverBlessing is RecoverDivination for incense offerings.
func RecoverBlessing(res BlessingResult, err error, req BlessingRequest) (out BlessingResult, recovered bool) {
	if err != nil || !res.Success {
		return FallbackBlessing(req.Wish, req.Token, req.Amount, req.Locale), true
	}
	if res.Token == "" {
		res.Token = req.Token
	}
	if res.Amount == 0 {
		res.Amount = req.Amount
	}
	if res.FortuneTrend == "" {
		res.FortuneTrend = fallbackFortuneTrend
	}
	return res, false
}

// NormalizeDivination fills the gaps a backend payload may leave: sections
// parsed from full_text, a luck score clamped to 1..10, luck_text derived
// from the score and palaces computed from the numbers.
func NormalizeDivination(res DivinationResult, numbers [3]int) DivinationResult {
	luck := res.Luck
	if res.Divination == "" && res.Prediction == "" && res.Advice == "" && res.FullText != "" {
		s := ParseSections(res.FullText)
		res.Divination, res.Prediction, res.Advice = s.Divination, s.Prediction, s.Advice
		if luck == 0 {
			luck = s.Luck
		}
	}
	res.Luck = clampLuck(luck)

	res.LuckText = strings.TrimSpace(res.LuckText)
	if res.LuckText == "" {
		res.LuckText = LuckLevel(res.Luck)
	}

	switch {
	case len(res.Palaces) == 0:
		res.Palaces = ComputePalaces(numbers)
	case len(res.Palaces) > maxElements:
		res.Palaces = res.Palaces[:maxElements]
	}
	return res
}

func clampLuck(luck int) int {
	switch {
	case luck == 0:
		return defaultLuck
	case luck < 1:
		return 1
	case luck > 10:
		return 10
	default:
		return luck
	}
}

func joinNumbers(numbers [3]int, sep string) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}
