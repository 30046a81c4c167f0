package analytics_service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"omnily-go-admin/inout"
	"omnily-go-admin/model/crm_model"
)

// Fixed segment descriptors. Order is the segment rank, best first.
var segmentTemplates = []inout.CustomerSegment{
	{Name: "VIP Customers", Color: "#f59e0b", Description: "Top spenders by lifetime value"},
	{Name: "Regular Customers", Color: "#3b82f6", Description: "Reliable repeat customers"},
	{Name: "Occasional Customers", Color: "#10b981", Description: "Infrequent buyers worth nurturing"},
	{Name: "At Risk Customers", Color: "#ef4444", Description: "Low spend, likely to churn"},
}

// GetCustomerSegmentation partitions the organization's customers into the
// four spend-percentile segments. Cut-points are recomputed from the current
// customer set on every call; nothing is persisted.
func (s *AnalyticsService) GetCustomerSegmentation(ctx context.Context, organizationId string) ([]inout.CustomerSegment, error) {
	var customers []crm_model.Customer
	err := s.db.WithContext(ctx).Model(&crm_model.Customer{}).
		Select("id, total_spent").
		Scopes(applyOrganizationFilter(organizationId)).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("load customers for segmentation: %w", err)
	}

	spends := make([]float64, len(customers))
	for i, c := range customers {
		spends[i] = c.TotalSpent
	}
	return segmentBySpend(spends, s.cfg), nil
}

// segmentBySpend classifies each spend value against cut-points read from the
// descending-sorted spend list at floor(n*position). With very small customer
// sets the cut indices can coincide and collapse adjacent buckets; that is the
// documented behavior, not corrected here. Empty buckets are dropped from the
// result.
func segmentBySpend(spends []float64, cfg Config) []inout.CustomerSegment {
	if len(spends) == 0 {
		return []inout.CustomerSegment{}
	}

	sorted := make([]float64, len(spends))
	copy(sorted, spends)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	vipCut := cutValue(sorted, cfg.VIPPosition)
	regularCut := cutValue(sorted, cfg.RegularPosition)
	occasionalCut := cutValue(sorted, cfg.OccasionalPosition)

	segments := make([]inout.CustomerSegment, len(segmentTemplates))
	copy(segments, segmentTemplates)

	for _, spent := range spends {
		idx := segmentIndex(spent, vipCut, regularCut, occasionalCut)
		segments[idx].Count++
		segments[idx].TotalRevenue += spent
	}

	out := make([]inout.CustomerSegment, 0, len(segments))
	for _, seg := range segments {
		if seg.Count == 0 {
			continue
		}
		seg.AvgSpent = seg.TotalRevenue / float64(seg.Count)
		out = append(out, seg)
	}
	return out
}

// cutValue reads the spend at the positional index, 0 when out of range.
func cutValue(sortedDesc []float64, position float64) float64 {
	idx := int(math.Floor(float64(len(sortedDesc)) * position))
	if idx < 0 || idx >= len(sortedDesc) {
		return 0
	}
	return sortedDesc[idx]
}

// segmentIndex maps a spend value to its segment rank.
func segmentIndex(spent, vipCut, regularCut, occasionalCut float64) int {
	switch {
	case spent >= vipCut:
		return 0
	case spent >= regularCut:
		return 1
	case spent >= occasionalCut:
		return 2
	default:
		return 3
	}
}
