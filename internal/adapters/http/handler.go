package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/temple-go/internal/app"
	"github.com/randomtoy/temple-go/internal/domain"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// localePrefixes are mounted alongside the root; the prefix doubles as a
// locale signal.
var localePrefixes = []string{"", "/en", "/zh"}

type Handler struct {
	svc *app.TempleService
}

func NewHandler(svc *app.TempleService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	for _, prefix := range localePrefixes {
		g := e.Group(prefix)
		g.GET("/healthz", h.Healthz)
		g.POST("/v1/divination", h.Divine)
		g.POST("/v1/incense", h.Incense)
		g.GET("/v1/readings/:id", h.GetReading)
		g.GET("/v1/history", h.History)
		g.GET("/v1/offerings", h.Offerings)
	}
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Divine(c echo.Context) error {
	var body DivinationRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	wish, err := domain.NormalizeWish(body.Wish)
	if err != nil {
		return mapError(c, err)
	}
	numbers, err := domain.ParseNumbers(body.Numbers)
	if err != nil {
		return mapError(c, err)
	}

	r := h.svc.Divine(c.Request().Context(), app.DivineRequest{
		Wish:    wish,
		Numbers: numbers,
		Signals: signals(c),
	})
	return c.JSON(http.StatusOK, NewDivinationResponse(r, requestID(c)))
}

func (h *Handler) Incense(c echo.Context) error {
	var body IncenseRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	wish, err := domain.NormalizeWish(body.Wish)
	if err != nil {
		return mapError(c, err)
	}
	if body.Amount < 0 {
		return mapError(c, domain.ErrInvalidOffering)
	}
	ctx := c.Request().Context()
	if err := h.svc.CheckOffering(ctx, body.Token, body.Amount); err != nil {
		return mapError(c, err)
	}

	r := h.svc.Bless(ctx, app.BlessRequest{
		Wish:    wish,
		Token:   body.Token,
		Amount:  body.Amount,
		Signals: signals(c),
	})
	return c.JSON(http.StatusOK, NewBlessingResponse(r, requestID(c)))
}

func (h *Handler) GetReading(c echo.Context) error {
	r, err := h.svc.Reading(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) History(c echo.Context) error {
	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxHistoryLimit {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer between 1 and 100"})
		}
		limit = parsed
	}

	readings, err := h.svc.History(c.Request().Context(), limit)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, HistoryResponse{Readings: readings})
}

func (h *Handler) Offerings(c echo.Context) error {
	offerings, err := h.svc.Offerings(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, OfferingsResponse{Offerings: offerings})
}

// NewDivinationResponse renders a divination reading in its wire shape.
func NewDivinationResponse(r app.DivinationReading, requestID string) DivinationResponse {
	elements := make([]ElementResp, len(r.Display.Elements))
	for i, e := range r.Display.Elements {
		elements[i] = ElementResp{
			Name:         e.Name,
			Pinyin:       e.Pinyin,
			Element:      e.Element,
			ElementLabel: e.ElementLabel,
			Color:        e.Color,
			Position:     e.Position,
		}
	}
	return DivinationResponse{
		ID:     r.ID,
		Locale: r.Locale,
		Result: r.Result,
		Display: DisplayResp{
			LuckLabel: r.Display.LuckLabel,
			Elements:  elements,
		},
		Meta: MetaResp{
			RequestID: requestID,
			LatencyMS: r.LatencyMS,
		},
	}
}

// NewBlessingResponse renders an incense reading in its wire shape.
func NewBlessingResponse(r app.BlessingReading, requestID string) BlessingResponse {
	return BlessingResponse{
		ID:     r.ID,
		Locale: r.Locale,
		Result: r.Result,
		Text:   r.Text,
		Meta:   MetaResp{RequestID: requestID, LatencyMS: r.LatencyMS},
	}
}

func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrReadingNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: domain.ErrReadingNotFound.Error()})
	case errors.Is(err, domain.ErrInvalidWish),
		errors.Is(err, domain.ErrInvalidNumbers),
		errors.Is(err, domain.ErrInvalidOffering):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		slog.ErrorContext(c.Request().Context(), "internal error", "request_id", requestID(c), "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
