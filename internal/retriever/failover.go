package retriever

import (
	"context"
	"log/slog"

	"genai-assistant/internal/contextutil"
)

// Failover wraps a live retriever with the offline catalog. Any live
// failure is logged and answered from the catalog instead, so retrieval
// never aborts a chat turn.
type Failover struct {
	live    Retriever
	offline *Offline
	logger  *slog.Logger
}

// NewFailover creates a failover retriever.
func NewFailover(live Retriever, offline *Offline) *Failover {
	return &Failover{
		live:    live,
		offline: offline,
		logger:  slog.Default(),
	}
}

// Retrieve answers from the live retriever, falling back to the offline
// catalog for this call when the live path fails. It never returns an
// error.
func (f *Failover) Retrieve(ctx context.Context, query string, k int) ([]Snippet, error) {
	snippets, err := f.live.Retrieve(ctx, query, k)
	if err != nil {
		logger := contextutil.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "live retrieval failed, using offline catalog", "error", err)
		return f.offline.Retrieve(ctx, query, k)
	}
	return snippets, nil
}
