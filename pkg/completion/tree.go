package completion

import (
	"math"
	"sort"
)

// scored pairs an item with the score of the key it was inserted under.
type scored[T Completable] struct {
	item  T
	score int
}

// edge links a node to the child reached by one byte. Edges stay sorted by
// label so child discovery order is stable across runs.
type edge[T Completable] struct {
	label byte
	node  *node[T]
}

// node is a trie vertex. items holds the entries whose key ends exactly at
// this node's path. maxScore is the best score stored at or below this node;
// it only ever grows, since entries are never removed.
type node[T Completable] struct {
	items    []scored[T]
	edges    []edge[T]
	maxScore int
}

func newNode[T Completable]() *node[T] {
	// MinInt so the first key through this node sets the bound exactly.
	return &node[T]{maxScore: math.MinInt}
}

// child returns the node reached by label, or nil.
func (n *node[T]) child(label byte) *node[T] {
	i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i].label >= label })
	if i < len(n.edges) && n.edges[i].label == label {
		return n.edges[i].node
	}
	return nil
}

// ensureChild returns the node reached by label, creating the edge when
// missing and keeping the edge slice sorted.
func (n *node[T]) ensureChild(label byte) *node[T] {
	i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i].label >= label })
	if i < len(n.edges) && n.edges[i].label == label {
		return n.edges[i].node
	}
	c := newNode[T]()
	n.edges = append(n.edges, edge[T]{})
	copy(n.edges[i+1:], n.edges[i:])
	n.edges[i] = edge[T]{label: label, node: c}
	return c
}

// Tree is the index: an optional root plus the operations on it. The zero
// value is an empty tree ready for use.
//
// A Tree carries no lock of its own. Put needs exclusive access; any number
// of Search traversals may run together, but never while a Put is in flight.
type Tree[T Completable] struct {
	root *node[T]
	size int
}

// New returns an empty tree.
func New[T Completable]() *Tree[T] {
	return &Tree[T]{}
}

// Put indexes item under every key it emits. Insertion is not idempotent:
// putting the same item twice doubles its entries. Cost is proportional to
// the total bytes across the item's keys.
func (t *Tree[T]) Put(item T) {
	for _, key := range item.Keys() {
		t.putKey(key, item)
	}
}

func (t *Tree[T]) putKey(key Key, item T) {
	if t.root == nil {
		t.root = newNode[T]()
	}
	cur := t.root
	for _, b := range key.Bytes {
		cur.maxScore = max(cur.maxScore, key.Score)
		cur = cur.ensureChild(b)
	}
	cur.maxScore = max(cur.maxScore, key.Score)
	cur.items = append(cur.items, scored[T]{item: item, score: key.Score})
	t.size++
}

// Size reports the number of stored (item, key) entries, counting an item
// once per key it was inserted under.
func (t *Tree[T]) Size() int {
	return t.size
}

// Search returns a cursor over every item having a key that starts with
// prefix, best score first. A prefix absent from the index yields an already
// exhausted cursor, not an error. The empty prefix matches everything.
//
// The cursor is single-use; the tree itself is untouched by traversal and
// may be searched again freely.
func (t *Tree[T]) Search(prefix []byte) *Iter[T] {
	cur := t.root
	for i := 0; cur != nil && i < len(prefix); i++ {
		cur = cur.child(prefix[i])
	}
	if cur == nil {
		return &Iter[T]{}
	}
	return newIter(cur)
}
