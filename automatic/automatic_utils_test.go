package automatic

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCompVCompStaticGames(t *testing.T) {
	is := is.New(t)

	out := filepath.Join(t.TempDir(), "games.csv")
	summary, err := StartCompVCompStaticGames(context.Background(), DefaultConfig,
		smallGaddag, 4, 2, out)
	is.NoErr(err)
	is.Equal(summary.Games, 4)
	is.True(summary.Turns >= 8)
	is.Equal(summary.Positions, summary.Turns)
	is.True(summary.MeanScore > 0)
	is.True(summary.PositionsPerSecond > 0)
	is.Equal(CVCCounter.Value(), int64(4))
	is.Equal(IsPlaying.Value(), int64(0))

	f, err := os.Open(out)
	is.NoErr(err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	is.NoErr(err)
	is.Equal(len(records), 5)
	is.Equal(records[0], []string{"gameID", "p1score", "p2score", "first", "turns"})
	seen := map[string]bool{}
	for _, rec := range records[1:] {
		assert.Contains(t, []string{"p1", "p2"}, rec[3])
		assert.False(t, seen[rec[0]], "duplicate game id %v", rec[0])
		seen[rec[0]] = true
	}

	stats, err := AnalyzeLogFile(out)
	is.NoErr(err)
	is.True(strings.HasPrefix(stats, "Games played: 4\n"))
	is.True(strings.Contains(stats, "p1 Mean Score:"))
}

func TestStartCompVCompSeededGames(t *testing.T) {
	is := is.New(t)

	seeds := GenerateSeeds(3)
	seedFile := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(SaveSeeds(seeds, seedFile))
	loaded, err := LoadSeeds(seedFile)
	is.NoErr(err)
	is.Equal(loaded, seeds)

	first, err := StartCompVCompSeededGames(context.Background(), DefaultConfig,
		smallGaddag, seeds, 3, "")
	is.NoErr(err)
	second, err := StartCompVCompSeededGames(context.Background(), DefaultConfig,
		smallGaddag, loaded, 1, "")
	is.NoErr(err)
	is.Equal(first.Games, 3)
	is.Equal(first.Turns, second.Turns)
	is.Equal(first.MeanScore, second.MeanScore)
}

func TestStartCompVCompCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := StartCompVCompStaticGames(ctx, DefaultConfig, smallGaddag, 10, 2, "")
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Games)
}

func TestLoadSeedsErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("# header\n\nnot base64!!\n"), 0o644))
	_, err := LoadSeeds(bad)
	assert.ErrorContains(t, err, "line 3")

	short := filepath.Join(dir, "short.txt")
	require.NoError(t, os.WriteFile(short, []byte("AAAA\n"), 0o644))
	_, err = LoadSeeds(short)
	assert.ErrorContains(t, err, "invalid seed length")
}

func TestAnalyzeLogFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "games.csv")
	contents := "gameID,p1score,p2score,first,turns\n" +
		"a,400,300,p1,20\n" +
		"b,350,350,p2,22\n" +
		"c,300,410,p2,24\n"
	is.NoErr(os.WriteFile(path, []byte(contents), 0o644))

	stats, err := AnalyzeLogFile(path)
	is.NoErr(err)
	is.True(strings.Contains(stats, "Games played: 3\n"))
	is.True(strings.Contains(stats, "p1 wins: 1.5 (50.000%)\n"))
	is.True(strings.Contains(stats, "p1 went first: 1.0 (33.333%)\n"))
	is.True(strings.Contains(stats, "Player who went first wins: 2.5 (83.333%)\n"))
	is.True(strings.Contains(stats, "p1 Mean Score: 350.000000  Stdev: 50.000000\n"))
	is.True(strings.Contains(stats, "Mean turns per game: 22.000\n"))
	is.True(strings.Contains(stats, "Score histogram:\n"))
	hist, err := scoreHistogram([]float64{400, 350, 300, 300, 350, 410})
	is.NoErr(err)
	is.True(strings.HasSuffix(stats, hist))

	empty := filepath.Join(t.TempDir(), "empty.csv")
	is.NoErr(os.WriteFile(empty, []byte("gameID,p1score,p2score,first,turns\n"), 0o644))
	_, err = AnalyzeLogFile(empty)
	is.True(err != nil)
}

func TestScoreHistogram(t *testing.T) {
	is := is.New(t)

	hist, err := scoreHistogram([]float64{300, 320, 350, 410, 280})
	is.NoErr(err)
	is.True(len(strings.Split(strings.TrimRight(hist, "\n"), "\n")) >= histogramBins)

	for _, scores := range [][]float64{nil, {350}, {350, 350, 350}} {
		hist, err := scoreHistogram(scores)
		is.NoErr(err)
		is.Equal(hist, "")
	}

	s := summarize([]GameResult{
		{Scores: [2]int{400, 300}, Turns: 20},
		{Scores: [2]int{350, 380}, Turns: 22},
	}, time.Second)
	is.Equal(s.Scores, []float64{400, 300, 350, 380})
	fromSummary, err := s.ScoreHistogram()
	is.NoErr(err)
	direct, err := scoreHistogram(s.Scores)
	is.NoErr(err)
	is.Equal(fromSummary, direct)
}

func TestOnlyOneBatchAtATime(t *testing.T) {
	is := is.New(t)

	is.True(playing.CompareAndSwap(false, true))
	_, err := StartCompVCompStaticGames(context.Background(), DefaultConfig,
		smallGaddag, 1, 1, "")
	playing.Store(false)
	is.True(errors.Is(err, ErrAlreadyPlaying))

	// The guard is released once a batch is over.
	summary, err := StartCompVCompStaticGames(context.Background(), DefaultConfig,
		smallGaddag, 1, 1, "")
	is.NoErr(err)
	is.Equal(summary.Games, 1)
	is.True(!playing.Load())
	is.Equal(IsPlaying.Value(), int64(0))
}

func TestConcurrentBatches(t *testing.T) {
	const batches = 4
	errs := make(chan error, batches)
	var wg sync.WaitGroup
	for i := 0; i < batches; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := StartCompVCompStaticGames(context.Background(), DefaultConfig,
				smallGaddag, 2, 1, "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrAlreadyPlaying)
		}
	}
	assert.False(t, playing.Load())
}
