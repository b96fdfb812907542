package domain

import (
	"slices"
	"time"

	"github.com/randomtoy/temple-go/internal/locale"
)

// Palace is one of the six Xiao Liu Ren spirits, keyed by its native name.
type Palace string

const (
	DaAn     Palace = "大安"
	LiuLian  Palace = "留连"
	SuXi     Palace = "速喜"
	ChiKou   Palace = "赤口"
	XiaoJi   Palace = "小吉"
	KongWang Palace = "空亡"
)

// Element is one of the five phases, keyed by its native name.
type Element string

const (
	Wood  Element = "木"
	Fire  Element = "火"
	Earth Element = "土"
	Metal Element = "金"
	Water Element = "水"
)

// Palace positions in a three-palace reading.
const (
	PositionRen  = "ren"  // person
	PositionShi  = "shi"  // matter
	PositionYing = "ying" // outcome
)

// PalaceRef is a palace as the backend reports it. Only Name is required.
type PalaceRef struct {
	Name     string  `json:"name"`
	Pinyin   string  `json:"pinyin,omitempty"`
	Element  Element `json:"element,omitempty"`
	Position string  `json:"position,omitempty"`
}

// ElementEntry is one display entry derived from a divination result.
type ElementEntry struct {
	Name     string  `json:"name"`
	Pinyin   string  `json:"pinyin"`
	Element  Element `json:"element"`
	Color    string  `json:"color"`
	Position string  `json:"position,omitempty"`
}

// Source is the input of ResolveElements: either Structured or RawText.
type Source interface {
	source()
}

// Structured carries palaces reported by the backend.
type Structured struct {
	Palaces []PalaceRef
}

// RawText is free text scanned for palace names.
type RawText string

func (Structured) source() {}
func (RawText) source()    {}

// DivinationResult is the unified divination shape, whether it came from
// the backend or was synthesized locally.
type DivinationResult struct {
	Success    bool        `json:"success"`
	Divination string      `json:"divination"`
	Prediction string      `json:"prediction"`
	Advice     string      `json:"advice"`
	Luck       int         `json:"luck"`
	LuckText   string      `json:"luck_text"`
	FullText   string      `json:"full_text"`
	Palaces    []PalaceRef `json:"palaces"`
	Error      string      `json:"error,omitempty"`
}

// Source returns the structured palaces when present, the full text otherwise.
func (r DivinationResult) Source() Source {
	if len(r.Palaces) > 0 {
		return Structured{Palaces: r.Palaces}
	}
	return RawText(r.FullText)
}

// BlessingResult is the unified incense blessing shape.
type BlessingResult struct {
	Success      bool    `json:"success"`
	Blessing     string  `json:"blessing"`
	BlessingZH   string  `json:"blessing_zh"`
	BlessingEN   string  `json:"blessing_en"`
	FortuneTrend string  `json:"fortune_trend"`
	Token        string  `json:"token"`
	Amount       float64 `json:"amount"`
}

// Text picks the blessing matching loc.
func (r BlessingResult) Text(loc locale.Tag) string {
	text := r.BlessingZH
	if loc == locale.English {
		text = r.BlessingEN
	}
	if text == "" {
		return r.Blessing
	}
	return text
}

// DivinationRequest is what the backend needs for a reading.
type DivinationRequest struct {
	Wish    string
	Numbers [3]int
	Locale  locale.Tag
}

// BlessingRequest is what the backend needs for an incense offering.
type BlessingRequest struct {
	Wish   string
	Token  string
	Amount float64
	Locale locale.Tag
}

// ReadingKind distinguishes stored readings.
type ReadingKind string

const (
	KindDivination ReadingKind = "divination"
	KindIncense    ReadingKind = "incense"
)

// Reading is a finished divination or incense offering, kept so a later
// page can pick it up.
type Reading struct {
	ID         string            `json:"id"`
	Kind       ReadingKind       `json:"kind"`
	Locale     locale.Tag        `json:"locale"`
	Wish       string            `json:"wish"`
	Numbers    []int             `json:"numbers,omitempty"`
	Divination *DivinationResult `json:"divination,omitempty"`
	Blessing   *BlessingResult   `json:"blessing,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Offering describes a token that can be offered with incense.
type Offering struct {
	Token         string    `json:"token"`
	Name          string    `json:"name"`
	Amounts       []float64 `json:"amounts"`
	DefaultAmount float64   `json:"default_amount"`
}

// Accepts reports whether amount is one of the offering's amounts.
func (o Offering) Accepts(amount float64) bool {
	return slices.Contains(o.Amounts, amount)
}
