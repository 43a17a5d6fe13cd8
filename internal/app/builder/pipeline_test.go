package builder

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexprobe/internal/config"
	"github.com/heartmarshall/lexprobe/internal/dataset"
	"github.com/heartmarshall/lexprobe/internal/domain"
	"github.com/heartmarshall/lexprobe/pkg/ctxutil"
)

func testdataPath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig lowers the depth and size gates so the small fixture taxonomy
// yields every relation.
func testConfig() config.Config {
	return config.Config{
		Log: config.LogConfig{Level: "info", Format: "text"},
		Sources: config.SourcesConfig{
			FrequencyPath:    testdataPath("words.txt"),
			OntologyPath:     testdataPath("wordnet.json"),
			OntologyLang:     "pl",
			VocabularyPath:   testdataPath("vocab.txt"),
			VocabularyFormat: "text",
			ZipfPath:         testdataPath("zipf.txt"),
		},
		Generation: config.GenerationConfig{
			Seed:                42,
			Alphabet:            "abcdefghijklmnoprstuwyząćęłńóśżź",
			CorruptionMinCount:  100,
			HypernymMinDepth:    0,
			HypernymWindow:      3,
			ClosureDepth:        4,
			HypernymMin:         1,
			HypernymMax:         20,
			CohyponymMin:        1,
			CohyponymMax:        50,
			ExpansionSenses:     2,
			DevRatioDenominator: 10,
		},
	}
}

func tsvFactory(path string) SinkFactory {
	return func(context.Context, *dataset.Run) (dataset.Sink, error) {
		return dataset.CreateTSV(path)
	}
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

func TestPipeline_Run_WritesRecords(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")
	p := NewPipeline(discardLogger(), testConfig(), tsvFactory(out))

	require.NoError(t, p.Run(context.Background()))
	assert.False(t, p.HasErrors())

	lines := readLines(t, out)
	run := p.LastRun()
	require.NotNil(t, run)
	assert.Equal(t, run.Stats.TotalRecords(), len(lines))
	assert.False(t, run.FinishedAt.IsZero())

	assert.Equal(t, 7, run.Stats.Words)
	assert.Equal(t, 1, run.Stats.NoAnchor)
	assert.Equal(t, 2, run.Stats.Records[domain.RelationAntonym])
	assert.Equal(t, 3, run.Stats.Records[domain.RelationHypernym])
	assert.Equal(t, 4, run.Stats.Records[domain.RelationCohyponym])

	body := strings.Join(lines, "\n")
	assert.Contains(t, body, "\tkot (n,4.5,500)\thypernym\tzwierzę (n,3.8,200)\tssak (n,0.0,120)")
	assert.Contains(t, body, "\tkot (n,4.5,500)\tcohyponym\tkot (n,4.5,500)\tpies (n,4.25,420)\tssak (n,0.0,120)")
	assert.Contains(t, body, "\tdobry (a,5.12,300)\tantonym\tzły (a,4.0,150)")
	assert.Contains(t, body, "\tzły (a,4.0,150)\tantonym\tdobry (a,5.12,300)")
	assert.NotContains(t, body, "xyzzy")

	for i, line := range lines {
		fields := strings.Split(line, "\t")
		require.GreaterOrEqual(t, len(fields), 5, "line %d", i)
		assert.Equal(t, strconv.Itoa(i), fields[0], "ids are consecutive")
		assert.Contains(t, []string{"dev", "test"}, fields[1])
	}

	results := p.Results()
	assert.Equal(t, 7, results[PhaseFrequency].Loaded)
	assert.Equal(t, 6, results[PhaseVocabulary].Loaded)
	assert.Equal(t, 7, results[PhaseGenerate].Loaded)
	assert.Equal(t, len(lines), results[PhaseGenerate].Emitted)
}

func TestPipeline_Run_LogsPhaseAndRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ctxutil.NewHandler(slog.NewJSONHandler(&buf, nil)))
	out := filepath.Join(t.TempDir(), "out.txt")

	p := NewPipeline(logger, testConfig(), tsvFactory(out))
	require.NoError(t, p.Run(context.Background()))

	logs := buf.String()
	assert.Contains(t, logs, `"phase":"ontology"`)
	assert.Contains(t, logs, `"run_id":"`+p.LastRun().ID.String()+`"`)
}

func TestPipeline_Run_Deterministic(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")

	require.NoError(t, NewPipeline(discardLogger(), testConfig(), tsvFactory(first)).Run(context.Background()))
	require.NoError(t, NewPipeline(discardLogger(), testConfig(), tsvFactory(second)).Run(context.Background()))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "same seed must produce identical output")
}

func TestPipeline_Run_Limit(t *testing.T) {
	cfg := testConfig()
	cfg.Generation.Limit = 2
	counting := &dataset.CountingSink{}

	p := NewPipeline(discardLogger(), cfg, func(context.Context, *dataset.Run) (dataset.Sink, error) {
		return counting, nil
	})
	require.NoError(t, p.Run(context.Background()))

	run := p.LastRun()
	assert.Equal(t, 2, run.Stats.Words)
	assert.Equal(t, run.Stats.TotalRecords(), counting.Records)
	// kot and pies: hypernym, cohyponym and corruption each.
	assert.Equal(t, 6, counting.Records)
}

func TestPipeline_Run_CorpusScoresWithoutZipfTable(t *testing.T) {
	cfg := testConfig()
	cfg.Sources.ZipfPath = ""
	out := filepath.Join(t.TempDir(), "out.txt")

	p := NewPipeline(discardLogger(), cfg, tsvFactory(out))
	require.NoError(t, p.Run(context.Background()))

	for _, line := range readLines(t, out) {
		assert.NotContains(t, line, "kot (n,4.5,500)")
	}
}

func TestPipeline_Run_MissingFrequencyFile(t *testing.T) {
	cfg := testConfig()
	cfg.Sources.FrequencyPath = testdataPath("missing.txt")

	p := NewPipeline(discardLogger(), cfg, tsvFactory(filepath.Join(t.TempDir(), "out.txt")))
	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phase frequency")
	assert.True(t, p.HasErrors())
	assert.Nil(t, p.LastRun())
	_, ran := p.Results()[PhaseVocabulary]
	assert.False(t, ran, "later phases must not run")
}

func TestPipeline_Run_UnknownLanguage(t *testing.T) {
	cfg := testConfig()
	cfg.Sources.OntologyLang = "en"

	p := NewPipeline(discardLogger(), cfg, tsvFactory(filepath.Join(t.TempDir(), "out.txt")))
	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phase ontology")
}

func TestPipeline_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	counting := &dataset.CountingSink{}

	p := NewPipeline(discardLogger(), testConfig(), func(context.Context, *dataset.Run) (dataset.Sink, error) {
		return counting, nil
	})
	err := p.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, counting.Records)
}

// kotTargets counts records that list kot among their targets or corrupt it.
func kotTargets(lines []string) int {
	n := 0
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			continue
		}
		if fields[3] == string(domain.RelationCorruption) && strings.HasPrefix(fields[2], "kot (") {
			n++
			continue
		}
		for _, target := range fields[4:] {
			if strings.HasPrefix(target, "kot (") {
				n++
				break
			}
		}
	}
	return n
}

func TestPipeline_Run_VocabularyMembershipIsExactByDefault(t *testing.T) {
	dir := t.TempDir()
	vocabPath := filepath.Join(dir, "vocab.txt")
	require.NoError(t, os.WriteFile(vocabPath,
		[]byte("kot</w>\npies\ndobry\nzwierzę\nzły\nssak\n"), 0o644))

	yamlPath := filepath.Join(dir, "lexprobe.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
sources:
  frequency_path: "`+testdataPath("words.txt")+`"
  ontology_path: "`+testdataPath("wordnet.json")+`"
  vocabulary_path: "`+vocabPath+`"
  vocabulary_format: "text"
  zipf_path: "`+testdataPath("zipf.txt")+`"
`), 0o644))

	loaded, err := config.LoadPath(yamlPath)
	require.NoError(t, err)
	require.Empty(t, loaded.Sources.VocabularyStripSuffix)

	cfg := testConfig()
	cfg.Sources = loaded.Sources

	exactOut := filepath.Join(dir, "exact.txt")
	require.NoError(t, NewPipeline(discardLogger(), cfg, tsvFactory(exactOut)).Run(context.Background()))
	assert.Zero(t, kotTargets(readLines(t, exactOut)), "kot</w> must not admit kot")

	cfg.Sources.VocabularyStripSuffix = "</w>"
	strippedOut := filepath.Join(dir, "stripped.txt")
	require.NoError(t, NewPipeline(discardLogger(), cfg, tsvFactory(strippedOut)).Run(context.Background()))
	assert.Positive(t, kotTargets(readLines(t, strippedOut)))
}

type failingSink struct {
	closeErr error
}

func (failingSink) Write(context.Context, dataset.Record) error {
	return errors.New("disk full")
}

func (s failingSink) Close(context.Context) error { return s.closeErr }

func TestPipeline_Run_SinkError(t *testing.T) {
	p := NewPipeline(discardLogger(), testConfig(), func(context.Context, *dataset.Run) (dataset.Sink, error) {
		return failingSink{}, nil
	})
	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), `emit "kot"`)
}

func TestPipeline_Run_SinkErrorKeepsCloseError(t *testing.T) {
	closeErr := errors.New("flush failed")
	p := NewPipeline(discardLogger(), testConfig(), func(context.Context, *dataset.Run) (dataset.Sink, error) {
		return failingSink{closeErr: closeErr}, nil
	})
	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.ErrorIs(t, err, closeErr)
}

func TestPolicyFrom(t *testing.T) {
	gen := testConfig().Generation
	policy := PolicyFrom(gen)

	assert.Equal(t, gen.HypernymMinDepth, policy.HypernymMinDepth)
	assert.Equal(t, gen.CohyponymMax, policy.CohyponymMax)
	assert.Equal(t, gen.CorruptionMinCount, policy.CorruptionMinCount)
}
