package olim

import (
	"math/rand"
	"sort"
	"testing"
)

func TestIndexHeap_PopOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := 200
	key := make([]float64, n)
	h := newIndexHeap(n, key)

	for i := 0; i < n; i++ {
		key[i] = rng.Float64()
		h.Push(i)
		if !h.valid() {
			t.Fatalf("heap invalid after push %d", i)
		}
	}

	want := make([]float64, n)
	copy(want, key)
	sort.Float64s(want)

	for k := 0; h.Len() > 0; k++ {
		idx := h.Pop()
		if key[idx] != want[k] {
			t.Fatalf("pop %d = %v, want %v", k, key[idx], want[k])
		}
		if h.Contains(idx) {
			t.Fatalf("popped index %d still marked present", idx)
		}
		if !h.valid() {
			t.Fatalf("heap invalid after pop %d", k)
		}
	}
}

func TestIndexHeap_DecreaseKey(t *testing.T) {
	key := []float64{5, 4, 3, 2, 1}
	h := newIndexHeap(len(key), key)
	for i := range key {
		h.Push(i)
	}

	key[0] = 0.5
	h.Fix(0)
	if !h.valid() {
		t.Fatal("heap invalid after decrease")
	}
	if h.Peek() != 0 {
		t.Errorf("min = %d, want 0", h.Peek())
	}

	key[0] = 10
	h.Fix(0)
	if !h.valid() || h.Peek() != 4 {
		t.Errorf("increase not handled: min = %d", h.Peek())
	}
}

func TestIndexHeap_RandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 500
	key := make([]float64, n)
	h := newIndexHeap(n, key)
	next := 0

	for step := 0; step < 3000; step++ {
		switch op := rng.Intn(3); {
		case op == 0 && next < n:
			key[next] = rng.Float64() * 100
			h.Push(next)
			next++
		case op == 1 && h.Len() > 0:
			idx := h.tree[rng.Intn(h.Len())]
			key[idx] -= rng.Float64()
			h.Fix(idx)
		case op == 2 && h.Len() > 0:
			top := h.Peek()
			idx := h.Pop()
			if idx != top {
				t.Fatalf("Pop returned %d, Peek said %d", idx, top)
			}
			for _, other := range h.tree {
				if key[other] < key[idx] {
					t.Fatalf("popped %v but %v remains", key[idx], key[other])
				}
			}
		}
		if !h.valid() {
			t.Fatalf("heap invalid at step %d", step)
		}
	}
}
