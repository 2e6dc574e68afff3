package completion

// entry is one pending step of the best-first walk: either a single item
// ready to emit at its exact score, or a still unexpanded subtree at its
// cached bound. node == nil marks an item entry.
type entry[T Completable] struct {
	priority int
	seq      uint64
	node     *node[T]
	item     T
}

// Iter walks a matched subtree best-first. Popping a node entry expands it,
// pushing one entry per item stored there and one per child subtree; popping
// an item entry yields it. A node's cached bound caps everything beneath it,
// so no unexpanded subtree can hide a better item than the current top of
// the heap.
//
// Ties resolve first-in first-out: each entry takes a sequence number when
// pushed. In practice that means items stored at a node come out before
// equally scored deeper entries, equal-bound children expand in byte order,
// and items sharing a node and score emit in insertion order.
//
// An Iter is single-use: Next drains the internal heap, and a fresh Search
// is needed to traverse again.
type Iter[T Completable] struct {
	heap []entry[T]
	seq  uint64
}

func newIter[T Completable](root *node[T]) *Iter[T] {
	it := &Iter[T]{}
	it.push(entry[T]{priority: root.maxScore, node: root})
	return it
}

// Next returns the best remaining item, or false once the subtree is
// exhausted. Consecutive results never increase in score.
func (it *Iter[T]) Next() (T, bool) {
	for len(it.heap) > 0 {
		cur := it.pop()
		if cur.node == nil {
			return cur.item, true
		}
		for _, s := range cur.node.items {
			it.push(entry[T]{priority: s.score, item: s.item})
		}
		for _, e := range cur.node.edges {
			it.push(entry[T]{priority: e.node.maxScore, node: e.node})
		}
	}
	var zero T
	return zero, false
}

// Manual max-heap instead of container/heap: entries are plain structs
// ordered by a numeric field, and going through heap.Interface would box
// every push and pop through an interface value.

func (it *Iter[T]) push(e entry[T]) {
	e.seq = it.seq
	it.seq++
	it.heap = append(it.heap, e)
	it.up(len(it.heap) - 1)
}

func (it *Iter[T]) pop() entry[T] {
	h := it.heap
	n := len(h) - 1
	h[0], h[n] = h[n], h[0]
	top := h[n]
	h[n] = entry[T]{} // drop the item reference
	it.heap = h[:n]
	if n > 0 {
		it.down(0)
	}
	return top
}

// before reports whether heap slot i should pop ahead of slot j: higher
// priority first, earlier sequence number on ties.
func (it *Iter[T]) before(i, j int) bool {
	a, b := &it.heap[i], &it.heap[j]
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	return a.seq < b.seq
}

func (it *Iter[T]) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !it.before(j, i) {
			break
		}
		it.heap[i], it.heap[j] = it.heap[j], it.heap[i]
		j = i
	}
}

func (it *Iter[T]) down(i int) {
	n := len(it.heap)
	for {
		j := 2*i + 1 // left child
		if j >= n {
			break
		}
		if r := j + 1; r < n && it.before(r, j) {
			j = r
		}
		if !it.before(j, i) {
			break
		}
		it.heap[i], it.heap[j] = it.heap[j], it.heap[i]
		i = j
	}
}
