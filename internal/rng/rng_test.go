package rng

import "testing"

func TestSameSeedDeterministic(t *testing.T) {
	a := New(123)
	b := New(123)

	for i := 0; i < 20; i++ {
		x, y := a.Intn(1000), b.Intn(1000)
		if x != y {
			t.Fatalf("draw %d diverged: %d vs %d", i, x, y)
		}
	}
}

func TestDifferentSeedsUsuallyDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Intn(1_000_000) != b.Intn(1_000_000) {
			same = false
			break
		}
	}
	if same {
		t.Errorf("expected different seeds to diverge within 10 draws")
	}
}

func TestShuffleIntsPreservesElements(t *testing.T) {
	src := New(9)
	xs := []int{0, 1, 2, 3, 4, 5}
	shuffled := ShuffleInts(src, xs)

	if len(shuffled) != len(xs) {
		t.Fatalf("expected %d elements, got %d", len(xs), len(shuffled))
	}
	seen := make(map[int]bool)
	for _, v := range shuffled {
		seen[v] = true
	}
	for _, v := range xs {
		if !seen[v] {
			t.Errorf("shuffled result missing original element %d", v)
		}
	}
	// original slice must be untouched.
	for i, v := range xs {
		if v != i {
			t.Errorf("ShuffleInts mutated its input at index %d", i)
		}
	}
}
