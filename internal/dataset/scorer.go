package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/heartmarshall/lexprobe/internal/domain"
)

// Scorer assigns the frequency score shown next to every word. It does not
// influence ranking.
type Scorer interface {
	Score(word string) float64
}

// ZipfTable is a precomputed word -> Zipf score table. Unknown words score 0.
type ZipfTable map[string]float64

// Score implements Scorer.
func (z ZipfTable) Score(word string) float64 {
	return z[domain.NormalizeWord(word)]
}

// LoadZipfTable reads "word score" lines. Blank lines and lines starting
// with '#' are skipped.
func LoadZipfTable(path string) (ZipfTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open zipf table: %w", err)
	}
	defer f.Close()
	return ReadZipfTable(f, path)
}

// ReadZipfTable reads a Zipf table from r; name is used in errors.
func ReadZipfTable(r io.Reader, name string) (ZipfTable, error) {
	table := ZipfTable{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, &domain.LineError{Path: name, Line: line, Msg: fmt.Sprintf("want 2 fields, got %d", len(fields))}
		}
		score, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
			return nil, &domain.LineError{Path: name, Line: line, Msg: fmt.Sprintf("bad score %q", fields[1])}
		}
		table[domain.NormalizeWord(fields[0])] = score
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", name, err)
	}
	return table, nil
}

// Counter is the corpus count lookup CorpusZipf scores from.
type Counter interface {
	Count(word string) (int, bool)
	Total() int64
}

// CorpusZipf scores words on the Zipf scale from the corpus counts
// themselves: log10 of occurrences per billion tokens, rounded to two
// decimals. Unseen words and empty corpora score 0.
type CorpusZipf struct {
	counts Counter
}

// NewCorpusZipf creates a CorpusZipf over counts.
func NewCorpusZipf(counts Counter) *CorpusZipf {
	return &CorpusZipf{counts: counts}
}

// Score implements Scorer.
func (z *CorpusZipf) Score(word string) float64 {
	total := z.counts.Total()
	count, ok := z.counts.Count(word)
	if !ok || count <= 0 || total <= 0 {
		return 0
	}
	zipf := math.Log10(float64(count) / float64(total) * 1e9)
	return max(math.Round(zipf*100)/100, 0)
}
