package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// corpusFile is the on-disk layout. Short tags keep the files compact.
type corpusFile struct {
	Count   int     `msgpack:"c"`
	Entries []Entry `msgpack:"e"`
}

const (
	corpusExt = ".bin"
	// Minimum plausible size: an encoded map header plus an empty array.
	minCorpusSize = 4
	// Sanity bound on the declared entry count.
	maxCorpusEntries = 1_000_000
)

// Save writes entries to path as a msgpack corpus file.
func Save(path string, entries []Entry) error {
	data, err := msgpack.Marshal(corpusFile{Count: len(entries), Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to encode corpus: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write corpus %s: %w", path, err)
	}
	log.Debugf("Saved corpus %s: %d entries", path, len(entries))
	return nil
}

// Load reads a corpus written by Save, validating the file before and the
// declared entry count after decoding.
func Load(path string) ([]Entry, error) {
	if err := validateCorpusFile(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}

	var file corpusFile
	if err := msgpack.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode corpus %s: %w", path, err)
	}
	if file.Count < 0 {
		return nil, fmt.Errorf("invalid entry count in %s: %d (negative)", path, file.Count)
	}
	if file.Count > maxCorpusEntries {
		return nil, fmt.Errorf("suspicious entry count in %s: %d (too large)", path, file.Count)
	}
	if file.Count != len(file.Entries) {
		return nil, fmt.Errorf("corpus %s declares %d entries, found %d",
			path, file.Count, len(file.Entries))
	}

	log.Debugf("Loaded corpus %s: %d entries", path, file.Count)
	return file.Entries, nil
}

// validateCorpusFile rejects files that cannot possibly hold a corpus.
func validateCorpusFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat corpus %s: %w", path, err)
	}
	if info.Size() < minCorpusSize {
		return fmt.Errorf("corpus %s is too small (%d bytes, minimum %d)",
			path, info.Size(), minCorpusSize)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != corpusExt {
		return fmt.Errorf("corpus %s has invalid extension %s (expected %s)",
			path, ext, corpusExt)
	}
	return nil
}
