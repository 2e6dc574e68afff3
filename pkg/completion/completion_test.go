package completion

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
)

// word is the simplest completable: one key, the word's own bytes.
type word struct {
	text  string
	score int
}

func (w word) Keys() []Key {
	return []Key{{Bytes: []byte(w.text), Score: w.score}}
}

// multi indexes one value under several explicit keys.
type multi struct {
	id   string
	keys []Key
}

func (m multi) Keys() []Key { return m.keys }

func drain[T Completable](it *Iter[T]) []T {
	var out []T
	for item, ok := it.Next(); ok; item, ok = it.Next() {
		out = append(out, item)
	}
	return out
}

func words(items []word) []string {
	out := make([]string, len(items))
	for i, w := range items {
		out[i] = w.text
	}
	return out
}

func TestSearchRanksByScore(t *testing.T) {
	tree := New[word]()
	tree.Put(word{"alice", 1})
	tree.Put(word{"alex", 4})
	tree.Put(word{"adam", -3})

	testCases := []struct {
		prefix string
		want   []string
	}{
		{prefix: "", want: []string{"alex", "alice", "adam"}},
		{prefix: "a", want: []string{"alex", "alice", "adam"}},
		{prefix: "al", want: []string{"alex", "alice"}},
		{prefix: "ali", want: []string{"alice"}},
		{prefix: "z", want: nil},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("prefix_%q", tc.prefix), func(t *testing.T) {
			got := words(drain(tree.Search([]byte(tc.prefix))))
			if len(got) != len(tc.want) {
				t.Fatalf("Search(%q) returned %v, want %v", tc.prefix, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Search(%q)[%d] = %q, want %q", tc.prefix, i, got[i], tc.want[i])
				}
			}
		})
	}
}

// A node's own items must come out before equally scored deeper entries, so
// "a" (score 1) beats "aaa" (score 1) which beats "aa" (score 0).
func TestShallowItemsFirstOnEqualScore(t *testing.T) {
	tree := New[word]()
	tree.Put(word{"a", 1})
	tree.Put(word{"aa", 0})
	tree.Put(word{"aaa", 1})

	got := words(drain(tree.Search(nil)))
	want := []string{"a", "aaa", "aa"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScoresNeverIncrease(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	tree := New[word]()
	inserted := 0
	for range 500 {
		b := make([]byte, 1+rng.IntN(12))
		for i := range b {
			b[i] = byte('a' + rng.IntN(4))
		}
		tree.Put(word{text: string(b), score: rng.IntN(2000) - 1000})
		inserted++
	}

	results := drain(tree.Search(nil))
	if len(results) != inserted {
		t.Fatalf("empty prefix returned %d entries, want %d", len(results), inserted)
	}
	for i := 1; i < len(results); i++ {
		if results[i].score > results[i-1].score {
			t.Fatalf("score increased at position %d: %d after %d",
				i, results[i].score, results[i-1].score)
		}
	}

	// Every result under a prefix must actually carry it.
	for _, prefix := range []string{"a", "ab", "dd"} {
		for _, w := range drain(tree.Search([]byte(prefix))) {
			if !strings.HasPrefix(w.text, prefix) {
				t.Errorf("Search(%q) returned non-matching word %q", prefix, w.text)
			}
		}
	}
}

func TestAbsentPrefix(t *testing.T) {
	tree := New[word]()
	tree.Put(word{"ab", 10})

	testCases := []string{"z", "abc", "ba", "abab"}
	for _, prefix := range testCases {
		if got := drain(tree.Search([]byte(prefix))); len(got) != 0 {
			t.Errorf("Search(%q) = %v, want empty", prefix, words(got))
		}
	}
}

func TestEmptyTree(t *testing.T) {
	tree := New[word]()
	if got := drain(tree.Search(nil)); len(got) != 0 {
		t.Fatalf("empty tree returned %v", words(got))
	}
	if got := drain(tree.Search([]byte("a"))); len(got) != 0 {
		t.Fatalf("empty tree returned %v for prefix", words(got))
	}
	if tree.Size() != 0 {
		t.Fatalf("empty tree Size() = %d", tree.Size())
	}
}

// An item is indexed once per key: both keys match the empty prefix, and
// each specific prefix reaches the item through exactly one of them.
func TestMultiKeyItem(t *testing.T) {
	item := multi{id: "greeting", keys: []Key{
		{Bytes: []byte("hello world"), Score: 2},
		{Bytes: []byte("world"), Score: 2},
	}}
	tree := New[multi]()
	tree.Put(item)

	testCases := []struct {
		prefix string
		count  int
	}{
		{prefix: "hello world", count: 1},
		{prefix: "world", count: 1},
		{prefix: "", count: 2},
	}
	for _, tc := range testCases {
		got := drain(tree.Search([]byte(tc.prefix)))
		if len(got) != tc.count {
			t.Errorf("Search(%q) returned %d entries, want %d", tc.prefix, len(got), tc.count)
		}
		for _, m := range got {
			if m.id != "greeting" {
				t.Errorf("Search(%q) returned unexpected item %q", tc.prefix, m.id)
			}
		}
	}
	if tree.Size() != 2 {
		t.Errorf("Size() = %d, want 2", tree.Size())
	}
}

func TestReinsertDuplicates(t *testing.T) {
	tree := New[word]()
	tree.Put(word{"dup", 5})
	tree.Put(word{"dup", 5})

	got := drain(tree.Search([]byte("dup")))
	if len(got) != 2 {
		t.Fatalf("reinsert produced %d entries, want 2", len(got))
	}
	if tree.Size() != 2 {
		t.Errorf("Size() = %d, want 2", tree.Size())
	}
}

func TestEmptyKeyTerminatesAtRoot(t *testing.T) {
	tree := New[multi]()
	tree.Put(multi{id: "rooted", keys: []Key{{Bytes: nil, Score: 9}}})
	tree.Put(multi{id: "branch", keys: []Key{{Bytes: []byte("b"), Score: 5}}})

	got := drain(tree.Search(nil))
	if len(got) != 2 || got[0].id != "rooted" || got[1].id != "branch" {
		t.Fatalf("empty prefix returned %+v", got)
	}
	got = drain(tree.Search([]byte("b")))
	if len(got) != 1 || got[0].id != "branch" {
		t.Fatalf("prefix b returned %+v", got)
	}
}

func TestItemWithoutKeys(t *testing.T) {
	tree := New[multi]()
	tree.Put(multi{id: "ghost"})
	if tree.Size() != 0 {
		t.Fatalf("keyless item changed Size() to %d", tree.Size())
	}
	if got := drain(tree.Search(nil)); len(got) != 0 {
		t.Fatalf("keyless item surfaced in search: %+v", got)
	}
}

// Equal-score ties are FIFO: sibling subtrees expand in byte order, and
// entries sharing a node emit in insertion order.
func TestTieBreakIsDeterministic(t *testing.T) {
	tree := New[word]()
	tree.Put(word{"bb", 5})
	tree.Put(word{"ba", 5})
	tree.Put(word{"bc", 5})

	got := words(drain(tree.Search([]byte("b"))))
	want := []string{"ba", "bb", "bc"}
	if len(got) != len(want) {
		t.Fatalf("sibling tie returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sibling tie order = %v, want %v", got, want)
		}
	}

	same := New[multi]()
	same.Put(multi{id: "first", keys: []Key{{Bytes: []byte("k"), Score: 3}}})
	same.Put(multi{id: "second", keys: []Key{{Bytes: []byte("k"), Score: 3}}})
	items := drain(same.Search([]byte("k")))
	if len(items) != 2 {
		t.Fatalf("same-node tie returned %d entries, want 2", len(items))
	}
	if items[0].id != "first" || items[1].id != "second" {
		t.Fatalf("same-node tie order = %+v, want insertion order", items)
	}
}

func TestIteratorIsSingleUse(t *testing.T) {
	tree := New[word]()
	tree.Put(word{"once", 1})

	it := tree.Search(nil)
	if _, ok := it.Next(); !ok {
		t.Fatal("first Next() returned no item")
	}
	for range 3 {
		if _, ok := it.Next(); ok {
			t.Fatal("exhausted iterator produced an item")
		}
	}

	// A fresh search traverses the tree again.
	if got := drain(tree.Search(nil)); len(got) != 1 {
		t.Fatalf("second search returned %d entries, want 1", len(got))
	}
}
