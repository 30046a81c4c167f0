package analytics_service

import (
	"context"
	"log"
	"time"

	"omnily-go-admin/inout"
)

// DefaultRefreshInterval is the realtime dashboard polling interval.
const DefaultRefreshInterval = 30 * time.Second

// Refresher re-runs the dashboard composition on a fixed interval while the
// realtime toggle is on, delivering each result to the publish callback.
// Stopped by cancelling the context. In-flight queries are not actively
// cancelled on stop, their results are simply discarded.
type Refresher struct {
	service  *AnalyticsService
	interval time.Duration
}

func NewRefresher(service *AnalyticsService, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{service: service, interval: interval}
}

// Run blocks until ctx is cancelled, publishing one immediate composition and
// then one per tick. A failed composition is logged and skipped; the next tick
// retries from scratch.
func (r *Refresher) Run(ctx context.Context, organizationId string, days int, publish func(*inout.AnalyticsDashboard)) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refreshOnce(ctx, organizationId, days, publish)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refreshOnce(ctx, organizationId, days, publish)
		}
	}
}

func (r *Refresher) refreshOnce(ctx context.Context, organizationId string, days int, publish func(*inout.AnalyticsDashboard)) {
	dashboard, err := r.service.GetDashboard(ctx, organizationId, days)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("realtime dashboard refresh failed for org %s: %v", organizationId, err)
		}
		return
	}
	if ctx.Err() != nil {
		return
	}
	publish(dashboard)
}
