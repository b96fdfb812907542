package templeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/randomtoy/temple-go/internal/domain"
	"github.com/randomtoy/temple-go/internal/locale"
)

const tracerName = "github.com/randomtoy/temple-go/internal/adapters/templeapi"

// Client implements ports.Oracle against the temple backend's JSON API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	tracer     trace.Tracer
}

func NewClient(httpClient *http.Client, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
}

type divinationRequest struct {
	Wish     string `json:"wish"`
	Numbers  [3]int `json:"numbers"`
	Language string `json:"language"`
}

type incenseRequest struct {
	Wish     string  `json:"wish"`
	Token    string  `json:"token"`
	Amount   float64 `json:"amount"`
	Language string  `json:"language"`
}

func (c *Client) Divine(ctx context.Context, req domain.DivinationRequest) (domain.DivinationResult, error) {
	body := divinationRequest{
		Wish:     req.Wish,
		Numbers:  req.Numbers,
		Language: req.Locale.String(),
	}

	var out domain.DivinationResult
	if err := c.post(ctx, "/api/divination", req.Locale, body, &out); err != nil {
		return domain.DivinationResult{}, err
	}
	if !out.Success {
		return domain.DivinationResult{}, fmt.Errorf("%w: %w: %s", domain.ErrTransport, domain.ErrUnsuccessful, out.Error)
	}
	return out, nil
}

func (c *Client) Bless(ctx context.Context, req domain.BlessingRequest) (domain.BlessingResult, error) {
	body := incenseRequest{
		Wish:     req.Wish,
		Token:    req.Token,
		Amount:   req.Amount,
		Language: req.Locale.String(),
	}

	var out domain.BlessingResult
	if err := c.post(ctx, "/api/incense", req.Locale, body, &out); err != nil {
		return domain.BlessingResult{}, err
	}
	if !out.Success {
		return domain.BlessingResult{}, fmt.Errorf("%w: %w", domain.ErrTransport, domain.ErrUnsuccessful)
	}
	return out, nil
}

// post makes exactly one attempt; every failure is reported as ErrTransport.
func (c *Client) post(ctx context.Context, path string, loc locale.Tag, body, out any) error {
	ctx, span := c.tracer.Start(ctx, "templeapi POST "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("temple.locale", loc.String())),
	)
	defer span.End()

	status, err := c.call(ctx, path, loc, body, out)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.DebugContext(ctx, "temple backend call failed", "path", path, "status", status, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, path string, loc locale.Tag, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", loc.String())
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}
