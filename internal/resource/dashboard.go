package resource

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// DefaultLowStockThreshold is the stock level at or below which a product
// is reported as running low.
const DefaultLowStockThreshold = 5

// Dashboard computes the summary figures of the dashboard page.
type Dashboard struct{ env *env }

func (s *Dashboard) selectAll(ctx context.Context, name string, q types.Query) ([]types.Record, error) {
	c, err := s.env.gw.Collection(name)
	if err != nil {
		return nil, fetchError(name, err)
	}
	recs, err := c.Select(ctx, q)
	if err != nil {
		return nil, fetchError(name, err)
	}
	return recs, nil
}

// Stats counts orders per status and sums revenue over orders that were
// neither cancelled nor refunded. Today and month windows start at local
// midnight; the week window covers the last seven days.
func (s *Dashboard) Stats(ctx context.Context) (types.DashboardStats, error) {
	var orders, pending []types.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.selectAll(gctx, types.CollectionOrders, types.Query{})
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = s.selectAll(gctx, types.CollectionReviews, types.Query{
			Filter: map[string]any{"status": string(types.ReviewPending)},
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return types.DashboardStats{}, err
	}

	now := s.env.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	week := now.AddDate(0, 0, -7)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := types.DashboardStats{TotalOrders: len(orders), PendingReviews: len(pending)}
	for _, r := range orders {
		o := mapOrder(r)
		switch o.Status {
		case types.OrderPending:
			stats.PendingOrders++
		case types.OrderShipped:
			stats.ShippedOrders++
		case types.OrderDelivered:
			stats.CompletedOrders++
		case types.OrderCancelled:
			stats.CancelledOrders++
		}
		if o.Status == types.OrderCancelled || o.Status == types.OrderRefunded {
			continue
		}
		stats.TotalRevenue += o.Total
		if !o.OrderDate.Before(today) {
			stats.TodayRevenue += o.Total
		}
		if !o.OrderDate.Before(week) {
			stats.WeekRevenue += o.Total
		}
		if !o.OrderDate.Before(month) {
			stats.MonthRevenue += o.Total
		}
	}
	return stats, nil
}

// LowStock returns the products whose stock is at or below threshold,
// lowest stock first. A threshold below zero uses the default.
func (s *Dashboard) LowStock(ctx context.Context, threshold int64) ([]types.LowStockProduct, error) {
	if threshold < 0 {
		threshold = DefaultLowStockThreshold
	}
	recs, err := s.selectAll(ctx, types.CollectionProducts, types.Query{})
	if err != nil {
		return nil, err
	}
	out := []types.LowStockProduct{}
	for _, r := range recs {
		if stock := integer(r, "stock"); stock <= threshold {
			out = append(out, types.LowStockProduct{
				ID:        str(r, "id"),
				Name:      str(r, "name"),
				Stock:     stock,
				Threshold: threshold,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}
