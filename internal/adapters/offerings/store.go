package offerings

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/randomtoy/temple-go/internal/domain"
)

//go:embed data/offerings.json
var catalogFS embed.FS

const catalogFile = "data/offerings.json"

// EmbeddedCatalog loads the offering catalog from the embedded JSON file.
// The first entry is the default offering.
type EmbeddedCatalog struct {
	once      sync.Once
	offerings []domain.Offering
	err       error
}

func NewEmbeddedCatalog() *EmbeddedCatalog {
	return &EmbeddedCatalog{}
}

func (c *EmbeddedCatalog) init() {
	raw, err := catalogFS.ReadFile(catalogFile)
	if err != nil {
		c.err = fmt.Errorf("read embedded catalog: %w", err)
		return
	}
	if err := json.Unmarshal(raw, &c.offerings); err != nil {
		c.err = fmt.Errorf("parse embedded catalog: %w", err)
		return
	}
	if len(c.offerings) == 0 {
		c.err = fmt.Errorf("embedded catalog is empty")
	}
}

func (c *EmbeddedCatalog) Offerings(_ context.Context) ([]domain.Offering, error) {
	c.once.Do(c.init)
	if c.err != nil {
		return nil, c.err
	}
	out := make([]domain.Offering, len(c.offerings))
	copy(out, c.offerings)
	return out, nil
}
