/*
Package dataset generates and stores corpora for the completion tree
harnesses.

A corpus is a flat list of (word, score) entries. Entries satisfy
completion.Completable, so a harness feeds them straight into a tree.
Generation is seeded and fully reproducible; corpora can be saved to disk
in a compact msgpack layout and reloaded later, keeping benchmark runs
comparable across machines.
*/
package dataset

import (
	"math/rand/v2"

	"github.com/bastiangx/completrie/pkg/completion"
)

// Entry is one corpus record: a word and its relevance score.
type Entry struct {
	Word  string `msgpack:"w"`
	Score int    `msgpack:"s"`
}

// Keys indexes the entry under its own bytes.
func (e Entry) Keys() []completion.Key {
	return []completion.Key{{Bytes: []byte(e.Word), Score: e.Score}}
}

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generate produces a reproducible corpus: n alphanumeric words of wordLen
// bytes with scores in [0, maxScore). The same seed yields the same corpus.
func Generate(seed uint64, n, wordLen, maxScore int) []Entry {
	rng := rand.New(rand.NewPCG(seed, seed))
	entries := make([]Entry, n)
	buf := make([]byte, wordLen)
	for i := range entries {
		for j := range buf {
			buf[j] = alphabet[rng.IntN(len(alphabet))]
		}
		entries[i] = Entry{Word: string(buf), Score: rng.IntN(maxScore)}
	}
	return entries
}

// Build inserts every entry into a fresh tree.
func Build(entries []Entry) *completion.Tree[Entry] {
	tree := completion.New[Entry]()
	for _, e := range entries {
		tree.Put(e)
	}
	return tree
}
