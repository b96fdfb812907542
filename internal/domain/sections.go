package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Sections are the readable parts of a free-text divination.
type Sections struct {
	Divination string
	Prediction string
	Advice     string
	Luck       int
}

const defaultLuck = 7

var (
	divinationTitles = []string{"【卦象解析】", "[Hexagram Analysis]"}
	predictionTitles = []string{"【运势预测】", "[Prediction]"}
	adviceTitles     = []string{"【神明指引】", "[Divine Guidance]"}

	// Tried in order over the whole text; "N/10" wins over a bare "N分".
	luckScorePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2})\s*/\s*10\b`),
		regexp.MustCompile(`(\d{1,2})分`),
	}
)

// ParseSections splits full divination text into its titled sections and
// extracts the "N/10" (or "N分") luck score, defaulting to 7.
func ParseSections(fullText string) Sections {
	s := Sections{
		Divination: extractSection(fullText, divinationTitles),
		Prediction: extractSection(fullText, predictionTitles),
		Advice:     extractSection(fullText, adviceTitles),
		Luck:       defaultLuck,
	}
	for _, p := range luckScorePatterns {
		m := p.FindStringSubmatch(fullText)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			s.Luck = n
			break
		}
	}
	return s
}

// extractSection returns the text after the first title found, up to the
// next section title.
func extractSection(text string, titles []string) string {
	for _, title := range titles {
		i := strings.Index(text, title)
		if i < 0 {
			continue
		}
		rest := text[i+len(title):]
		if end := nextTitle(rest); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	return ""
}

func nextTitle(s string) int {
	end := -1
	for _, marker := range []string{"【", "\n["} {
		if i := strings.Index(s, marker); i >= 0 && (end < 0 || i < end) {
			end = i
		}
	}
	return end
}
