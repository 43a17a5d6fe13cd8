// Package frequency loads corpus word counts into an insertion-ordered index.
// Pure function: file path in, index out. The index is read-only once loaded.
//
// Input format (one pair per line, whitespace separated):
//
//	kot 500
//	pies 420
package frequency

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/heartmarshall/lexprobe/internal/domain"
)

// scannerBufSize bounds the length of a single input line.
const scannerBufSize = 1024 * 1024

// Index maps words to corpus counts and remembers the order in which words
// first appeared in the source.
type Index struct {
	counts map[string]int
	order  []string
	total  int64
}

// New returns an empty index.
func New() *Index {
	return &Index{counts: make(map[string]int)}
}

// Add records count for word. A repeated word keeps its first position and
// takes the latest count.
func (ix *Index) Add(word string, count int) {
	if prev, ok := ix.counts[word]; ok {
		ix.total -= int64(prev)
	} else {
		ix.order = append(ix.order, word)
	}
	ix.counts[word] = count
	ix.total += int64(count)
}

// Count returns the corpus count of word and whether it is indexed.
func (ix *Index) Count(word string) (int, bool) {
	c, ok := ix.counts[word]
	return c, ok
}

// Has reports whether word is indexed.
func (ix *Index) Has(word string) bool {
	_, ok := ix.counts[word]
	return ok
}

// Len returns the number of distinct words.
func (ix *Index) Len() int { return len(ix.order) }

// Total returns the sum of all counts.
func (ix *Index) Total() int64 { return ix.total }

// Entries returns all words with their counts in source order.
func (ix *Index) Entries() []domain.WordEntry {
	entries := make([]domain.WordEntry, len(ix.order))
	for i, w := range ix.order {
		entries[i] = domain.WordEntry{Word: w, Count: ix.counts[w]}
	}
	return entries
}

// Load reads a frequency file. Any malformed line aborts loading with a
// *domain.LineError.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frequency file: %w", err)
	}
	defer f.Close()

	return Read(f, path)
}

// Read parses frequency lines from r. name is used in error messages.
func Read(r io.Reader, name string) (*Index, error) {
	ix := New()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), scannerBufSize)

	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, &domain.LineError{Path: name, Line: line, Msg: fmt.Sprintf("expected 2 fields, got %d", len(fields))}
		}

		count, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &domain.LineError{Path: name, Line: line, Msg: fmt.Sprintf("invalid count %q", fields[1])}
		}
		if count < 0 {
			return nil, &domain.LineError{Path: name, Line: line, Msg: fmt.Sprintf("negative count %d", count)}
		}

		ix.Add(domain.NormalizeWord(fields[0]), count)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return ix, nil
}
