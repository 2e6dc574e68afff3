package main

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/completrie/pkg/dataset"
)

// scoredWord is one ranked baseline result.
type scoredWord struct {
	word  string
	score int
}

// patriciaBaseline answers the same queries by the collect-then-sort
// strategy: visit the whole matched subtree, gather everything, sort by
// score, cut to k. It is the yardstick the lazy tree is measured against.
type patriciaBaseline struct {
	trie *patricia.Trie
}

func newBaseline(entries []dataset.Entry) *patriciaBaseline {
	trie := patricia.NewTrie()
	for _, e := range entries {
		// One slot per word; keep the best score on duplicates.
		if prev := trie.Get(patricia.Prefix(e.Word)); prev != nil && prev.(int) >= e.Score {
			continue
		}
		trie.Set(patricia.Prefix(e.Word), e.Score)
	}
	return &patriciaBaseline{trie: trie}
}

func (b *patriciaBaseline) topK(prefix string, k int) []scoredWord {
	var results []scoredWord
	b.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		results = append(results, scoredWord{word: string(p), score: item.(int)})
		return nil
	})
	sort.Slice(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}
