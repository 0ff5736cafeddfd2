package predictionlog

import (
	"context"

	"github.com/LithiraHettiarachchi/gridSense/core/logger"
	"github.com/LithiraHettiarachchi/gridSense/core/metrics"
	"github.com/LithiraHettiarachchi/gridSense/internal/eventbus"
)

// Run appends every ranking event published on bus to store until ctx is done
// or the bus is closed.
func Run(ctx context.Context, bus *eventbus.Bus[metrics.RankingEvent], store Store, log logger.Logger) {
	eventbus.Consume(ctx, bus, func(ev metrics.RankingEvent) {
		if err := store.Append(context.WithoutCancel(ctx), FromEvent(ev)); err != nil {
			log.Errorf("append prediction log %s: %v", ev.RequestID, err)
		}
	})
}
