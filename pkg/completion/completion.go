/*
Package completion implements an in-memory scored prefix index.

Items are indexed under one or more byte keys, each carrying an integer
relevance score. A prefix query descends to the matching subtree and hands it
to a lazy cursor that yields items best score first, expanding only as much of
the subtree as the caller actually consumes. Pulling the top few results from
a large index therefore never sorts or even visits the full match set.

Matching is byte-exact: no case folding, no normalization, no fuzzy
correction. An item contributing N keys is indexed N times and can surface N
times under a prefix matching all of them; callers wanting set semantics
dedupe downstream.

	tree := completion.New[Word]()
	tree.Put(Word{"alex", 4})
	tree.Put(Word{"alice", 1})

	it := tree.Search([]byte("al"))
	for w, ok := it.Next(); ok; w, ok = it.Next() {
		// "alex" first, then "alice"
	}
*/
package completion

// Key is one index entry emitted by an item: the byte sequence the item is
// reachable under, plus the relevance score it carries there.
type Key struct {
	Bytes []byte
	Score int
}

// Completable makes a value indexable. Keys may emit zero entries (the item
// is simply never indexed), one, or many. Implementations should be value
// types; the tree copies items into every location their keys reach.
type Completable interface {
	Keys() []Key
}
