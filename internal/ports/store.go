package ports

import (
	"context"

	"github.com/randomtoy/temple-go/internal/domain"
)

// ReadingStore keeps recent readings for a short while so a later page can
// pick them up by ID.
type ReadingStore interface {
	Put(ctx context.Context, r domain.Reading) error
	// Get returns domain.ErrReadingNotFound for unknown or expired IDs.
	Get(ctx context.Context, id string) (domain.Reading, error)
}

// HistoryStore is the durable log of past readings.
type HistoryStore interface {
	Append(ctx context.Context, r domain.Reading) error
	// Recent returns at most limit readings, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Reading, error)
}

// OfferingCatalog lists the tokens accepted for incense offerings.
type OfferingCatalog interface {
	Offerings(ctx context.Context) ([]domain.Offering, error)
}
