package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/randomtoy/temple-go/internal/domain"
	"github.com/randomtoy/temple-go/internal/locale"
	"github.com/randomtoy/temple-go/internal/ports"
)

const (
	defaultToken  = "USDC"
	defaultAmount = 1
)

// DivineRequest is the application-level input (no HTTP types).
type DivineRequest struct {
	Wish    string
	Numbers [3]int
	Signals locale.Signals
}

// BlessRequest is the application-level input for an incense offering.
// Empty Token and non-positive Amount take the catalog defaults.
type BlessRequest struct {
	Wish    string
	Token   string
	Amount  float64
	Signals locale.Signals
}

// DisplayElement is an element entry with its localized element label.
type DisplayElement struct {
	domain.ElementEntry
	ElementLabel string
}

// Display is the localized view of a divination result.
type Display struct {
	LuckLabel string
	Elements  []DisplayElement
}

// DivinationReading is the application-level divination output.
type DivinationReading struct {
	ID        string
	Locale    locale.Tag
	Result    domain.DivinationResult
	Display   Display
	LatencyMS int64
}

// BlessingReading is the application-level incense output.
type BlessingReading struct {
	ID        string
	Locale    locale.Tag
	Result    domain.BlessingResult
	Text      string
	LatencyMS int64
}

// TempleService calls the oracle and turns every outcome into a usable
// reading. It never returns backend failures to its callers.
type TempleService struct {
	oracle   ports.Oracle
	readings ports.ReadingStore
	history  ports.HistoryStore
	catalog  ports.OfferingCatalog
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time
}

// NewTempleService wires the service. history may be nil.
func NewTempleService(oracle ports.Oracle, readings ports.ReadingStore, history ports.HistoryStore, catalog ports.OfferingCatalog, logger *slog.Logger) *TempleService {
	return &TempleService{
		oracle:   oracle,
		readings: readings,
		history:  history,
		catalog:  catalog,
		logger:   logger,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

func (s *TempleService) Divine(ctx context.Context, req DivineRequest) DivinationReading {
	loc := locale.Resolve(req.Signals)
	dreq := domain.DivinationRequest{Wish: req.Wish, Numbers: req.Numbers, Locale: loc}

	start := time.Now()
	res, err := s.oracle.Divine(ctx, dreq)
	latency := time.Since(start).Milliseconds()

	result, recovered := domain.RecoverDivination(res, err, dreq)
	if recovered {
		s.logger.WarnContext(ctx, "divination backend failed, using fallback", "locale", loc, "error", err)
	}

	reading := DivinationReading{
		ID:        s.newID(),
		Locale:    loc,
		Result:    result,
		Display:   Describe(loc, result),
		LatencyMS: latency,
	}

	s.keep(ctx, domain.Reading{
		ID:         reading.ID,
		Kind:       domain.KindDivination,
		Locale:     loc,
		Wish:       req.Wish,
		Numbers:    req.Numbers[:],
		Divination: &result,
		CreatedAt:  s.now().UTC(),
	})
	return reading
}

func (s *TempleService) Bless(ctx context.Context, req BlessRequest) BlessingReading {
	loc := locale.Resolve(req.Signals)
	token, amount := s.offeringDefaults(ctx, req.Token, req.Amount)
	breq := domain.BlessingRequest{Wish: req.Wish, Token: token, Amount: amount, Locale: loc}

	start := time.Now()
	res, err := s.oracle.Bless(ctx, breq)
	latency := time.Since(start).Milliseconds()

	result, recovered := domain.RecoverBlessing(res, err, breq)
	if recovered {
		s.logger.WarnContext(ctx, "incense backend failed, using fallback", "locale", loc, "error", err)
	}

	reading := BlessingReading{
		ID:        s.newID(),
		Locale:    loc,
		Result:    result,
		Text:      result.Text(loc),
		LatencyMS: latency,
	}

	s.keep(ctx, domain.Reading{
		ID:        reading.ID,
		Kind:      domain.KindIncense,
		Locale:    loc,
		Wish:      req.Wish,
		Blessing:  &result,
		CreatedAt: s.now().UTC(),
	})
	return reading
}

// Describe derives the localized display of a divination result.
func Describe(loc locale.Tag, r domain.DivinationResult) Display {
	entries := domain.ResolveElements(r.Source())
	elements := make([]DisplayElement, len(entries))
	for i, e := range entries {
		elements[i] = DisplayElement{
			ElementEntry: e,
			ElementLabel: domain.ElementLabel(loc, e.Element),
		}
	}
	return Display{
		LuckLabel: domain.LuckLabel(loc, r.LuckText, r.Luck),
		Elements:  elements,
	}
}

// Reading returns a reading stored by an earlier Divine or Bless call.
func (s *TempleService) Reading(ctx context.Context, id string) (domain.Reading, error) {
	r, err := s.readings.Get(ctx, id)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("get reading: %w", err)
	}
	return r, nil
}

// History lists recent readings, newest first.
func (s *TempleService) History(ctx context.Context, limit int) ([]domain.Reading, error) {
	if s.history == nil {
		return []domain.Reading{}, nil
	}
	readings, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return readings, nil
}

func (s *TempleService) Offerings(ctx context.Context) ([]domain.Offering, error) {
	offerings, err := s.catalog.Offerings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list offerings: %w", err)
	}
	return offerings, nil
}

// CheckOffering reports domain.ErrInvalidOffering when token is not in the
// catalog or amount is not one of its amounts. Empty token and zero amount
// are accepted and replaced by defaults in Bless.
func (s *TempleService) CheckOffering(ctx context.Context, token string, amount float64) error {
	if token == "" && amount == 0 {
		return nil
	}
	offerings, err := s.Offerings(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		if len(offerings) == 0 {
			return domain.ErrInvalidOffering
		}
		token = offerings[0].Token
	}
	for _, o := range offerings {
		if o.Token != token {
			continue
		}
		if amount == 0 || o.Accepts(amount) {
			return nil
		}
		break
	}
	return domain.ErrInvalidOffering
}

func (s *TempleService) offeringDefaults(ctx context.Context, token string, amount float64) (string, float64) {
	if token != "" && amount > 0 {
		return token, amount
	}

	offerings, err := s.catalog.Offerings(ctx)
	if err != nil || len(offerings) == 0 {
		s.logger.WarnContext(ctx, "offering catalog unavailable, using built-in defaults", "error", err)
		offerings = []domain.Offering{{Token: defaultToken, DefaultAmount: defaultAmount}}
	}
	chosen := offerings[0]
	if token == "" {
		token = chosen.Token
	} else {
		for _, o := range offerings {
			if o.Token == token {
				chosen = o
				break
			}
		}
	}
	if amount <= 0 {
		amount = chosen.DefaultAmount
	}
	return token, amount
}

// keep hands the reading to the stores. The caller may already have gone
// away, so cancellation is ignored; failures are only logged.
func (s *TempleService) keep(ctx context.Context, r domain.Reading) {
	ctx = context.WithoutCancel(ctx)

	if err := s.readings.Put(ctx, r); err != nil {
		s.logger.ErrorContext(ctx, "store reading", "reading_id", r.ID, "error", err)
	}
	if s.history == nil {
		return
	}
	if err := s.history.Append(ctx, r); err != nil {
		s.logger.ErrorContext(ctx, "append history", "reading_id", r.ID, "error", err)
	}
}
