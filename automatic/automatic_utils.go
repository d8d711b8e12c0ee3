package automatic

// Data collection for automatic game. Allow computer vs computer games, etc.

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/wordsmithgame/wordsmith/config"
	"github.com/wordsmithgame/wordsmith/gaddag"
)

// CVCCounter and IsPlaying are exported for reporting only.
var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

// playing guards against two batches of games running at once.
var playing atomic.Bool

const (
	histogramBins  = 15
	histogramWidth = 40
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// Summary describes a batch of computer vs computer games.
type Summary struct {
	Games     int
	Turns     int
	Positions int
	Elapsed   time.Duration
	// MeanScore and StdevScore are over both players' final scores.
	MeanScore  float64
	StdevScore float64
	// PositionsPerSecond is how many times moves were generated per
	// second of wall time.
	PositionsPerSecond float64
	// Scores holds both players' final scores for every game.
	Scores []float64
}

// ScoreHistogram draws the final scores as a text histogram.
func (s *Summary) ScoreHistogram() (string, error) {
	return scoreHistogram(s.Scores)
}

// scoreHistogram is empty when there is no spread of scores to draw.
func scoreHistogram(scores []float64) (string, error) {
	if len(scores) < 2 || lo.Min(scores) == lo.Max(scores) {
		return "", nil
	}
	var sb strings.Builder
	hist := histogram.Hist(histogramBins, scores)
	if err := histogram.Fprint(&sb, hist, histogram.Linear(histogramWidth)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func summarize(results []GameResult, elapsed time.Duration) *Summary {
	s := &Summary{
		Games:   len(results),
		Elapsed: elapsed,
		Turns:   lo.SumBy(results, func(r GameResult) int { return r.Turns }),
		Positions: lo.SumBy(results, func(r GameResult) int {
			return r.Positions
		}),
	}
	scores := lo.FlatMap(results, func(r GameResult, _ int) []float64 {
		return []float64{float64(r.Scores[0]), float64(r.Scores[1])}
	})
	s.Scores = scores
	if len(scores) > 1 {
		s.MeanScore, s.StdevScore = stat.MeanStdDev(scores, nil)
	}
	if elapsed > 0 {
		s.PositionsPerSecond = float64(s.Positions) / elapsed.Seconds()
	}
	return s
}

// StartCompVCompStaticGames plays numGames games, at most threads at a
// time, all sharing the one GADDAG. If outputFilename is not empty, a line
// per game is written to it. It returns once every game is over or ctx is
// cancelled; the summary then covers the games that finished.
func StartCompVCompStaticGames(ctx context.Context, cfg *config.Config,
	gd *gaddag.Gaddag, numGames int, threads int, outputFilename string) (*Summary, error) {

	return playGames(ctx, cfg, gd, numGames, threads, outputFilename,
		func(r *GameRunner, _ int) { r.StartGame() })
}

// StartCompVCompSeededGames plays one game per seed. The same seeds always
// give the same games.
func StartCompVCompSeededGames(ctx context.Context, cfg *config.Config,
	gd *gaddag.Gaddag, seeds [][32]byte, threads int, outputFilename string) (*Summary, error) {

	return playGames(ctx, cfg, gd, len(seeds), threads, outputFilename,
		func(r *GameRunner, i int) { r.StartGameWithSeed(seeds[i]) })
}

func playGames(ctx context.Context, cfg *config.Config, gd *gaddag.Gaddag,
	numGames int, threads int, outputFilename string,
	startGame func(r *GameRunner, i int)) (*Summary, error) {

	if !playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer playing.Store(false)
	IsPlaying.Set(1)
	defer IsPlaying.Set(0)

	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)
	CVCCounter.Set(0)

	results := make([]GameResult, numGames)
	finished := make([]bool, numGames)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
gameLoop:
	for i := 0; i < numGames; i++ {
		select {
		case <-gctx.Done():
			log.Info().Msg("Got stop signal, exiting soon...")
			break gameLoop
		default:
		}
		i := i
		g.Go(func() error {
			r := NewGameRunner(gd, nil, cfg)
			startGame(r, i)
			if err := r.PlayFullStatic(gctx); err != nil {
				return err
			}
			results[i] = r.Result()
			finished[i] = true
			CVCCounter.Add(1)
			if n := CVCCounter.Value(); n%1000 == 0 {
				log.Info().Msgf("Finished %v games", n)
			}
			return nil
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)

	done := lo.Filter(results, func(_ GameResult, i int) bool { return finished[i] })
	summary := summarize(done, elapsed)
	log.Info().Int("games", summary.Games).Int("turns", summary.Turns).
		Float64("positions-per-sec", summary.PositionsPerSecond).
		Dur("elapsed", elapsed).Msg("All games finished.")

	if outputFilename != "" {
		if werr := writeGameLog(outputFilename, done); werr != nil {
			return summary, werr
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	return summary, err
}

func writeGameLog(filename string, results []GameResult) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"gameID", "p1score", "p2score", "first", "turns"}); err != nil {
		return err
	}
	for _, r := range results {
		rec := []string{r.ID, strconv.Itoa(r.Scores[0]), strconv.Itoa(r.Scores[1]),
			"p" + strconv.Itoa(r.First+1), strconv.Itoa(r.Turns)}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
