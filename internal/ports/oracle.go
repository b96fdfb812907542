package ports

import (
	"context"

	"github.com/randomtoy/temple-go/internal/domain"
)

// Oracle is the remote divination and blessing backend. Errors wrap
// domain.ErrTransport; callers recover from them with the domain fallbacks.
type Oracle interface {
	Divine(ctx context.Context, req domain.DivinationRequest) (domain.DivinationResult, error)
	Bless(ctx context.Context, req domain.BlessingRequest) (domain.BlessingResult, error)
}
