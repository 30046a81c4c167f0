package analytics_service

import "testing"

func evenSpends() []float64 {
	// 1000, 900, ..., 100
	spends := make([]float64, 10)
	for i := range spends {
		spends[i] = float64(1000 - i*100)
	}
	return spends
}

func TestSegmentBySpend_CutPoints(t *testing.T) {
	segments := segmentBySpend(evenSpends(), DefaultConfig())

	var vip *int
	for i := range segments {
		if segments[i].Name == "VIP Customers" {
			vip = &segments[i].Count
		}
	}
	if vip == nil {
		t.Fatal("expected a VIP segment")
	}
	// Cut index floor(10*0.15)=1, cut value 900: customers with spend >= 900.
	if *vip != 2 {
		t.Errorf("VIP count = %d, want 2", *vip)
	}
}

func TestSegmentBySpend_Completeness(t *testing.T) {
	spends := evenSpends()
	segments := segmentBySpend(spends, DefaultConfig())

	total := 0
	for _, seg := range segments {
		total += seg.Count
	}
	if total != len(spends) {
		t.Errorf("segment counts sum to %d, want %d", total, len(spends))
	}
}

func TestSegmentBySpend_Monotonicity(t *testing.T) {
	cfg := DefaultConfig()
	sorted := make([]float64, len(evenSpends()))
	copy(sorted, evenSpends())

	vipCut := cutValue(sorted, cfg.VIPPosition)
	regularCut := cutValue(sorted, cfg.RegularPosition)
	occasionalCut := cutValue(sorted, cfg.OccasionalPosition)

	prevRank := -1
	for _, spent := range sorted { // descending spend
		rank := segmentIndex(spent, vipCut, regularCut, occasionalCut)
		if rank < prevRank {
			t.Fatalf("higher spender got worse rank: spend %v rank %d after rank %d", spent, rank, prevRank)
		}
		prevRank = rank
	}
}

func TestSegmentBySpend_Empty(t *testing.T) {
	segments := segmentBySpend(nil, DefaultConfig())
	if len(segments) != 0 {
		t.Errorf("expected no segments for empty customer set, got %d", len(segments))
	}
}

func TestSegmentBySpend_DropsEmptyBuckets(t *testing.T) {
	// All identical spends collapse into the VIP bucket.
	segments := segmentBySpend([]float64{100, 100, 100}, DefaultConfig())
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Name != "VIP Customers" || segments[0].Count != 3 {
		t.Errorf("got segment %q count %d, want VIP Customers count 3", segments[0].Name, segments[0].Count)
	}
	if segments[0].AvgSpent != 100 {
		t.Errorf("AvgSpent = %v, want 100", segments[0].AvgSpent)
	}
}

func TestSegmentBySpend_TotalsPerBucket(t *testing.T) {
	segments := segmentBySpend(evenSpends(), DefaultConfig())
	for _, seg := range segments {
		if seg.Count == 0 {
			t.Errorf("segment %q returned with zero members", seg.Name)
		}
		want := seg.TotalRevenue / float64(seg.Count)
		if seg.AvgSpent != want {
			t.Errorf("segment %q AvgSpent = %v, want %v", seg.Name, seg.AvgSpent, want)
		}
	}
}
