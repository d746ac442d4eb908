package harmonics

import (
	"math"
	"testing"
)

func TestConsistentGroups(t *testing.T) {
	fine := []Group{
		{Fundamental: 300.2, Score: -10},
		{Fundamental: 423.5, Score: -5},
		{Fundamental: 777, Score: -30},
	}
	coarse := []Group{
		{Fundamental: 300.6, Score: -11},
		{Fundamental: 423.1, Score: -6},
	}
	coarser := []Group{
		{Fundamental: 299.8, Score: -12},
		{Fundamental: 423.9, Score: -7},
		{Fundamental: 1200, Score: -20},
	}

	got := ConsistentGroups([][]Group{fine, coarse, coarser}, 1)
	if len(got) != 2 {
		t.Fatalf("want 2 consistent groups, got %d", len(got))
	}

	// ranked by score, fundamentals averaged across the lists
	if math.Abs(got[0].Fundamental-423.5) > 1e-9 {
		t.Fatalf("fundamental average mismatch: %f", got[0].Fundamental)
	}
	if math.Abs(got[1].Fundamental-300.2) > 1e-9 {
		t.Fatalf("fundamental average mismatch: %f", got[1].Fundamental)
	}
	if got[0].Score != -5 || got[1].Score != -10 {
		t.Fatalf("scores should come from the first list: %+v", got)
	}
}

func TestConsistentGroupsEdgeCases(t *testing.T) {
	if got := ConsistentGroups(nil, 1); got != nil {
		t.Fatal("no lists should yield nil")
	}

	single := []Group{{Fundamental: 300, Score: -10}}
	got := ConsistentGroups([][]Group{single}, 1)
	if len(got) != 1 || got[0].Fundamental != 300 {
		t.Fatalf("single list should pass through: %+v", got)
	}

	// no overlap across lists
	got = ConsistentGroups([][]Group{
		{{Fundamental: 300}},
		{{Fundamental: 500}},
	}, 1)
	if len(got) != 0 {
		t.Fatalf("disjoint lists should yield nothing, got %+v", got)
	}
}
