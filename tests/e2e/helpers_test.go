//go:build e2e

package e2e_test

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixture resolves a file of the builder test corpus.
func fixture(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "internal", "app", "builder", "testdata", name)
}

// writeConfig writes a lexprobe YAML config over the fixture corpus.
func writeConfig(t *testing.T, seed int64, outPath, dsn string) string {
	t.Helper()
	body := fmt.Sprintf(`log:
  level: error
  format: json
sources:
  frequency_path: %q
  ontology_path: %q
  ontology_lang: pl
  vocabulary_path: %q
  vocabulary_format: text
  zipf_path: %q
generation:
  seed: %d
  hypernym_min_depth: 1
  hypernym_min: 1
  cohyponym_min: 1
output:
  path: %q
  postgres: %t
  batch_size: 4
database:
  dsn: %q
`,
		fixture("words.txt"), fixture("wordnet.json"), fixture("vocab.txt"), fixture("zipf.txt"),
		seed, outPath, dsn != "", dsn,
	)
	path := filepath.Join(t.TempDir(), "lexprobe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	return lines
}
