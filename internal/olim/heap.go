package olim

// indexHeap is a binary min-heap of grid indices keyed by a shared value
// array. pos maps a grid index to its slot in tree, or -1 when absent, so a
// decreased key can be sifted up in O(log n).
type indexHeap struct {
	tree []int
	pos  []int
	key  []float64
}

func newIndexHeap(n int, key []float64) *indexHeap {
	pos := make([]int, n)
	for i := range pos {
		pos[i] = -1
	}
	return &indexHeap{
		tree: make([]int, 0, 64),
		pos:  pos,
		key:  key,
	}
}

func (h *indexHeap) Len() int { return len(h.tree) }

func (h *indexHeap) Contains(idx int) bool { return h.pos[idx] >= 0 }

func (h *indexHeap) Push(idx int) {
	h.tree = append(h.tree, idx)
	h.pos[idx] = len(h.tree) - 1
	h.up(len(h.tree) - 1)
}

// Peek returns the index with the smallest key without removing it.
func (h *indexHeap) Peek() int { return h.tree[0] }

func (h *indexHeap) Pop() int {
	n := len(h.tree) - 1
	h.swap(0, n)
	h.down(0, n)
	idx := h.tree[n]
	h.tree = h.tree[:n]
	h.pos[idx] = -1
	return idx
}

// Fix restores heap order after the key of idx changed.
func (h *indexHeap) Fix(idx int) {
	i := h.pos[idx]
	if !h.down(i, len(h.tree)) {
		h.up(i)
	}
}

func (h *indexHeap) less(i, j int) bool {
	return h.key[h.tree[i]] < h.key[h.tree[j]]
}

func (h *indexHeap) swap(i, j int) {
	h.tree[i], h.tree[j] = h.tree[j], h.tree[i]
	h.pos[h.tree[i]] = i
	h.pos[h.tree[j]] = j
}

func (h *indexHeap) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h *indexHeap) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 {
			break
		}
		j := j1
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
	return i > i0
}

// valid reports whether the heap property and the position map both hold.
func (h *indexHeap) valid() bool {
	for i, idx := range h.tree {
		if h.pos[idx] != i {
			return false
		}
		if i > 0 && h.less(i, (i-1)/2) {
			return false
		}
	}
	count := 0
	for _, p := range h.pos {
		if p >= 0 {
			count++
		}
	}
	return count == len(h.tree)
}
