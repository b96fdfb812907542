package http

import (
	"github.com/randomtoy/temple-go/internal/domain"
	"github.com/randomtoy/temple-go/internal/locale"
)

// DivinationRequest is the JSON body of POST /v1/divination.
type DivinationRequest struct {
	Wish    string `json:"wish"`
	Numbers []int  `json:"numbers"`
}

// IncenseRequest is the JSON body of POST /v1/incense.
type IncenseRequest struct {
	Wish   string  `json:"wish"`
	Token  string  `json:"token"`
	Amount float64 `json:"amount"`
}

// DivinationResponse is the JSON shape returned by POST /v1/divination.
type DivinationResponse struct {
	ID      string                  `json:"id"`
	Locale  locale.Tag              `json:"locale"`
	Result  domain.DivinationResult `json:"result"`
	Display DisplayResp             `json:"display"`
	Meta    MetaResp                `json:"meta"`
}

type DisplayResp struct {
	LuckLabel string        `json:"luck_label"`
	Elements  []ElementResp `json:"elements"`
}

type ElementResp struct {
	Name         string         `json:"name"`
	Pinyin       string         `json:"pinyin"`
	Element      domain.Element `json:"element"`
	ElementLabel string         `json:"element_label"`
	Color        string         `json:"color"`
	Position     string         `json:"position,omitempty"`
}

// BlessingResponse is the JSON shape returned by POST /v1/incense.
type BlessingResponse struct {
	ID     string                `json:"id"`
	Locale locale.Tag            `json:"locale"`
	Result domain.BlessingResult `json:"result"`
	Text   string                `json:"text"`
	Meta   MetaResp              `json:"meta"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
}

type HistoryResponse struct {
	Readings []domain.Reading `json:"readings"`
}

type OfferingsResponse struct {
	Offerings []domain.Offering `json:"offerings"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
