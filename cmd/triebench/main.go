// Copyright 2025 The CompleTrie Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the triebench measurement and verification harness.

triebench drives the completion tree through its public surface only: it
builds a tree from a seeded random corpus (or a saved corpus file), measures
construction and query latency, and cross-checks the lazy ranked results
against a patricia-trie baseline that collects the whole matched subtree and
sorts it.

# Usage

Run with built-in defaults:

	triebench

Use a bigger corpus and deeper result cut:

	triebench -items 100000 -k 25

Load a previously saved corpus instead of generating one:

	triebench -data corpus.bin

Generate a corpus, save it for later runs, and enable debug logging:

	triebench -save corpus.bin -d

# Configuration

Harness parameters live in a TOML file passed with -config. The file is
created with defaults when missing:

	[data]
	items = 10000
	word_len = 10
	max_score = 1000
	seed = 42

	[bench]
	rounds = 200
	top_k = 10
	prefixes = ["", "a", "ab"]
	zero_match_prefix = "blahblahgarbage"

Flags override the corresponding config values.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/completrie/internal/logger"
	"github.com/bastiangx/completrie/pkg/completion"
	"github.com/bastiangx/completrie/pkg/config"
	"github.com/bastiangx/completrie/pkg/dataset"
)

const (
	Version = "0.2.0"
	AppName = "triebench"
	gh      = "https://github.com/bastiangx/completrie"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	configPath := flag.String("config", "", "Path to a TOML config file (created with defaults if missing)")
	dataPath := flag.String("data", "", "Load the corpus from this file instead of generating one")
	savePath := flag.String("save", "", "Save the generated corpus to this file")
	items := flag.Int("items", defaultConfig.Data.Items, "Number of corpus entries to generate")
	seed := flag.Uint64("seed", defaultConfig.Data.Seed, "Corpus generation seed")
	topK := flag.Int("k", defaultConfig.Bench.TopK, "Results to pull per query")
	rounds := flag.Int("rounds", defaultConfig.Bench.Rounds, "Measurement rounds per prefix")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.InfoLevel)
		log.SetReportTimestamp(false)
	}

	cfg := defaultConfig
	if *configPath != "" {
		loaded, err := config.InitConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
			os.Exit(1)
		}
		cfg = loaded
		log.Debugf("Using config file: (%s)", *configPath)
	}
	// Flags win over the config file, but only when actually set.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "items":
			cfg.Data.Items = *items
		case "seed":
			cfg.Data.Seed = *seed
		case "k":
			cfg.Bench.TopK = *topK
		case "rounds":
			cfg.Bench.Rounds = *rounds
		}
	})

	entries, err := loadOrGenerate(cfg, *dataPath)
	if err != nil {
		log.Fatalf("Failed to prepare corpus: %v", err)
		os.Exit(1)
	}
	if *savePath != "" {
		if err := dataset.Save(*savePath, entries); err != nil {
			log.Fatalf("Failed to save corpus: %v", err)
			os.Exit(1)
		}
		log.Infof("Corpus saved to: ( %s )", *savePath)
	}

	start := time.Now()
	tree := dataset.Build(entries)
	buildTime := time.Since(start)

	start = time.Now()
	baseline := newBaseline(entries)
	baselineBuild := time.Since(start)

	printHeader(len(entries))
	results := logger.New("bench")
	results.Infof("build: lazy tree %v (%d entries), baseline %v", buildTime, tree.Size(), baselineBuild)

	mismatches := 0
	prefixes := append([]string{}, cfg.Bench.Prefixes...)
	prefixes = append(prefixes, cfg.Bench.ZeroMatchPrefix)
	for _, prefix := range prefixes {
		lazyAvg := measureLazy(tree, []byte(prefix), cfg.Bench.TopK, cfg.Bench.Rounds)
		baseAvg := measureBaseline(baseline, prefix, cfg.Bench.TopK, cfg.Bench.Rounds)
		results.Infof("prefix %-16q top-%d: lazy %v, baseline %v", prefix, cfg.Bench.TopK, lazyAvg, baseAvg)

		if !verify(tree, baseline, prefix, cfg.Bench.TopK) {
			mismatches++
		}
	}

	if mismatches > 0 {
		log.Errorf("verification FAILED for %d of %d prefixes", mismatches, len(prefixes))
		os.Exit(1)
	}
	results.Info("verification: OK (lazy top-k scores match baseline on every prefix)")
}

// loadOrGenerate reads the corpus file when one is given, otherwise
// generates a fresh seeded corpus from the config.
func loadOrGenerate(cfg *config.Config, dataPath string) ([]dataset.Entry, error) {
	if dataPath != "" {
		log.Debugf("Loading corpus from: %s", dataPath)
		return dataset.Load(dataPath)
	}
	log.Debugf("Generating corpus: items=[%d], wordLen=[%d], seed=[%d]",
		cfg.Data.Items, cfg.Data.WordLen, cfg.Data.Seed)
	return dataset.Generate(cfg.Data.Seed, cfg.Data.Items, cfg.Data.WordLen, cfg.Data.MaxScore), nil
}

// measureLazy times Search plus k pulls, averaged over rounds.
func measureLazy(tree *completion.Tree[dataset.Entry], prefix []byte, k, rounds int) time.Duration {
	start := time.Now()
	for range rounds {
		it := tree.Search(prefix)
		for range k {
			if _, ok := it.Next(); !ok {
				break
			}
		}
	}
	return time.Since(start) / time.Duration(rounds)
}

// measureBaseline times the collect-then-sort answer, averaged over rounds.
func measureBaseline(b *patriciaBaseline, prefix string, k, rounds int) time.Duration {
	start := time.Now()
	for range rounds {
		b.topK(prefix, k)
	}
	return time.Since(start) / time.Duration(rounds)
}

// verify pulls the lazy top-k (deduplicated per word, so duplicate corpus
// entries collapse to their best score the same way the baseline stores
// them) and checks the score sequence against the baseline. Words are not
// compared: the two engines may order equal scores differently.
func verify(tree *completion.Tree[dataset.Entry], b *patriciaBaseline, prefix string, k int) bool {
	seen := make(map[string]bool, k)
	var lazy []int
	it := tree.Search([]byte(prefix))
	for len(lazy) < k {
		e, ok := it.Next()
		if !ok {
			break
		}
		if seen[e.Word] {
			continue
		}
		seen[e.Word] = true
		lazy = append(lazy, e.Score)
	}

	base := b.topK(prefix, k)
	if len(lazy) != len(base) {
		log.Errorf("prefix %q: lazy returned %d results, baseline %d", prefix, len(lazy), len(base))
		return false
	}
	for i := range base {
		if lazy[i] != base[i].score {
			log.Errorf("prefix %q: score mismatch at rank %d: lazy %d, baseline %d",
				prefix, i, lazy[i], base[i].score)
			return false
		}
	}
	return true
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ triebench ] Lazy ranked completion, measured!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// printHeader displays some basic info about the run.
func printHeader(entries int) {
	println("===========")
	println(" triebench ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("corpus entries: [ %d ]", entries)
}
