package app_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/randomtoy/temple-go/internal/adapters/offerings"
	"github.com/randomtoy/temple-go/internal/adapters/readings"
	"github.com/randomtoy/temple-go/internal/app"
	"github.com/randomtoy/temple-go/internal/domain"
	"github.com/randomtoy/temple-go/internal/locale"
	"github.com/randomtoy/temple-go/internal/ports"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockOracle struct {
	mu        sync.Mutex
	div       domain.DivinationResult
	bless     domain.BlessingResult
	err       error
	divReqs   []domain.DivinationRequest
	blessReqs []domain.BlessingRequest
}

func (m *mockOracle) Divine(_ context.Context, req domain.DivinationRequest) (domain.DivinationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.divReqs = append(m.divReqs, req)
	return m.div, m.err
}

func (m *mockOracle) Bless(_ context.Context, req domain.BlessingRequest) (domain.BlessingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blessReqs = append(m.blessReqs, req)
	return m.bless, m.err
}

type mockHistory struct {
	mu       sync.Mutex
	readings []domain.Reading
	err      error
}

func (m *mockHistory) Append(ctx context.Context, r domain.Reading) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.err != nil {
		return m.err
	}
	m.readings = append(m.readings, r)
	return nil
}

func (m *mockHistory) Recent(_ context.Context, limit int) ([]domain.Reading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Reading, 0, limit)
	for i := len(m.readings) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.readings[i])
	}
	return out, m.err
}

type failingReadings struct{}

func (failingReadings) Put(context.Context, domain.Reading) error { return errors.New("store down") }
func (failingReadings) Get(context.Context, string) (domain.Reading, error) {
	return domain.Reading{}, domain.ErrReadingNotFound
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(oracle *mockOracle, hist ports.HistoryStore) *app.TempleService {
	return app.NewTempleService(
		oracle,
		readings.NewMemoryStore(time.Minute),
		hist,
		offerings.NewEmbeddedCatalog(),
		quietLogger(),
	)
}

func english() locale.Signals { return locale.Signals{Path: "/en/suangua4"} }

func TestDivine_Success(t *testing.T) {
	oracle := &mockOracle{div: domain.DivinationResult{
		Success:    true,
		Divination: "d",
		Prediction: "p",
		Advice:     "a",
		Luck:       9,
		FullText:   "full",
		Palaces: []domain.PalaceRef{
			{Name: "大安", Position: "ren"},
			{Name: "速喜", Position: "shi"},
			{Name: "小吉", Position: "ying"},
		},
	}}
	hist := &mockHistory{}
	svc := newService(oracle, hist)

	got := svc.Divine(context.Background(), app.DivineRequest{
		Wish:    "career luck",
		Numbers: [3]int{8, 26, 67},
		Signals: english(),
	})

	require.Len(t, oracle.divReqs, 1)
	assert.Equal(t, locale.English, oracle.divReqs[0].Locale, "locale hint is sent to the backend")

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, locale.English, got.Locale)
	assert.Equal(t, "大吉", got.Result.LuckText, "missing luck_text is derived from the score")
	assert.Equal(t, "da ji", got.Display.LuckLabel)
	require.Len(t, got.Display.Elements, 3)
	assert.Equal(t, "da an", got.Display.Elements[0].Pinyin)
	assert.Equal(t, "mu", got.Display.Elements[0].ElementLabel)
	assert.Equal(t, "ren", got.Display.Elements[0].Position)

	stored, err := svc.Reading(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindDivination, stored.Kind)
	assert.Equal(t, []int{8, 26, 67}, stored.Numbers)
	require.NotNil(t, stored.Divination)
	assert.Equal(t, got.Result, *stored.Divination)

	require.Len(t, hist.readings, 1)
	assert.Equal(t, got.ID, hist.readings[0].ID)
}

func TestDivine_BackendUnreachable(t *testing.T) {
	oracle := &mockOracle{err: fmt.Errorf("%w: connection refused", domain.ErrTransport)}
	svc := newService(oracle, &mockHistory{})

	got := svc.Divine(context.Background(), app.DivineRequest{
		Wish:    "career luck",
		Numbers: [3]int{8, 26, 67},
		Signals: english(),
	})

	assert.True(t, got.Result.Success)
	assert.Equal(t, 7, got.Result.Luck)
	assert.Equal(t, "xiao ji", got.Result.LuckText)
	assert.Equal(t, "xiao ji", got.Display.LuckLabel)

	var pinyin, labels []string
	for _, e := range got.Display.Elements {
		pinyin = append(pinyin, e.Pinyin)
		labels = append(labels, e.ElementLabel)
	}
	assert.Equal(t, []string{"su xi", "chi kou", "xiao ji"}, pinyin)
	assert.Equal(t, []string{"huo", "jin", "shui"}, labels)
}

func TestDivine_SameShapeEitherWay(t *testing.T) {
	ok := newService(&mockOracle{div: domain.FallbackDivination("w", [3]int{1, 2, 3}, locale.Chinese)}, nil)
	failed := newService(&mockOracle{err: domain.ErrTransport}, nil)
	req := app.DivineRequest{Wish: "w", Numbers: [3]int{1, 2, 3}}

	a := ok.Divine(context.Background(), req)
	b := failed.Divine(context.Background(), req)
	assert.Equal(t, a.Result, b.Result)
	assert.Equal(t, a.Display, b.Display)
}

func TestDivine_StoreFailuresDoNotLeak(t *testing.T) {
	svc := app.NewTempleService(
		&mockOracle{err: domain.ErrTransport},
		failingReadings{},
		&mockHistory{err: errors.New("disk full")},
		offerings.NewEmbeddedCatalog(),
		quietLogger(),
	)

	got := svc.Divine(context.Background(), app.DivineRequest{Wish: "w", Numbers: [3]int{1, 2, 3}})
	assert.True(t, got.Result.Success)

	_, err := svc.Reading(context.Background(), got.ID)
	assert.ErrorIs(t, err, domain.ErrReadingNotFound)
}

func TestDivine_StoresAfterCallerCancels(t *testing.T) {
	hist := &mockHistory{}
	svc := newService(&mockOracle{err: context.Canceled}, hist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := svc.Divine(ctx, app.DivineRequest{Wish: "w", Numbers: [3]int{1, 2, 3}})

	_, err := svc.Reading(context.Background(), got.ID)
	assert.NoError(t, err, "an abandoned reading is still kept for a later page")
	assert.Len(t, hist.readings, 1)
}

func TestDivine_ConcurrentCallsAreIndependent(t *testing.T) {
	oracle := &mockOracle{err: domain.ErrTransport}
	svc := newService(oracle, &mockHistory{})

	const n = 16
	results := make([]app.DivinationReading, n)
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			results[i] = svc.Divine(context.Background(), app.DivineRequest{
				Wish:    fmt.Sprintf("wish %d", i),
				Numbers: [3]int{i + 1, 2, 3},
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[string]bool, n)
	for i, r := range results {
		assert.Contains(t, r.Result.Prediction, fmt.Sprintf("wish %d", i))
		assert.False(t, seen[r.ID], "reading ids are unique")
		seen[r.ID] = true
	}
}

func TestBless_DefaultsFromCatalog(t *testing.T) {
	oracle := &mockOracle{err: domain.ErrTransport}
	svc := newService(oracle, &mockHistory{})

	got := svc.Bless(context.Background(), app.BlessRequest{Wish: "a kitten", Signals: english()})

	require.Len(t, oracle.blessReqs, 1)
	assert.Equal(t, "USDC", oracle.blessReqs[0].Token)
	assert.Equal(t, float64(1), oracle.blessReqs[0].Amount)

	assert.True(t, got.Result.Success)
	assert.Equal(t, "吉", got.Result.FortuneTrend)
	assert.Equal(t, got.Result.BlessingEN, got.Text)
	assert.NotEmpty(t, got.Result.BlessingZH)
}

func TestBless_RemoteResult(t *testing.T) {
	oracle := &mockOracle{bless: domain.BlessingResult{
		Success:      true,
		Blessing:     "愿心想事成",
		BlessingZH:   "愿心想事成",
		BlessingEN:   "May it be so",
		FortuneTrend: "大吉",
		Token:        "SOL",
		Amount:       5,
	}}
	svc := newService(oracle, &mockHistory{})

	got := svc.Bless(context.Background(), app.BlessRequest{Wish: "平安", Token: "SOL", Amount: 5})

	assert.Equal(t, locale.Chinese, got.Locale)
	assert.Equal(t, "愿心想事成", got.Text)
	assert.Equal(t, "大吉", got.Result.FortuneTrend)

	stored, err := svc.Reading(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindIncense, stored.Kind)
	require.NotNil(t, stored.Blessing)
	assert.Equal(t, "SOL", stored.Blessing.Token)
}

func TestCheckOffering(t *testing.T) {
	svc := newService(&mockOracle{}, nil)
	ctx := context.Background()

	assert.NoError(t, svc.CheckOffering(ctx, "", 0))
	assert.NoError(t, svc.CheckOffering(ctx, "SOL", 10))
	assert.NoError(t, svc.CheckOffering(ctx, "USDC", 0))
	assert.NoError(t, svc.CheckOffering(ctx, "", 5))
	assert.ErrorIs(t, svc.CheckOffering(ctx, "DOGE", 1), domain.ErrInvalidOffering)
	assert.ErrorIs(t, svc.CheckOffering(ctx, "USDC", 3), domain.ErrInvalidOffering)
}

func TestHistory(t *testing.T) {
	hist := &mockHistory{}
	svc := newService(&mockOracle{err: domain.ErrTransport}, hist)
	ctx := context.Background()

	first := svc.Divine(ctx, app.DivineRequest{Wish: "one", Numbers: [3]int{1, 2, 3}})
	second := svc.Bless(ctx, app.BlessRequest{Wish: "two"})

	got, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	none, err := newService(&mockOracle{}, nil).History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
