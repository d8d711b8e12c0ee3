package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// AnalyzeLogFile analyzes the given game CSV file and spits out a bunch of
// statistics.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// gameID,p1score,p2score,first,turns
	var p1scores, p2scores, turns []float64

	p1wl := float64(0)
	p1first := float64(0)
	wentFirstWL := float64(0)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			// this is the header line
			continue
		}
		if len(record) < 5 {
			return "", fmt.Errorf("short record for game %v", record[0])
		}
		p1score, err := strconv.Atoi(record[1])
		if err != nil {
			return "", err
		}
		p2score, err := strconv.Atoi(record[2])
		if err != nil {
			return "", err
		}
		nturns, err := strconv.Atoi(record[4])
		if err != nil {
			return "", err
		}
		p1scores = append(p1scores, float64(p1score))
		p2scores = append(p2scores, float64(p2score))
		turns = append(turns, float64(nturns))
		p1wentFirst := record[3] == "p1"
		if p1score > p2score {
			p1wl += 1.0
			if p1wentFirst {
				wentFirstWL += 1.0
			}
		} else if p1score == p2score {
			p1wl += 0.5
			wentFirstWL += 0.5
		} else if !p1wentFirst {
			wentFirstWL += 1.0
		}
		if p1wentFirst {
			p1first++
		}
	}
	gamesPlayed := len(p1scores)
	if gamesPlayed == 0 {
		return "", errors.New("no games in log file")
	}

	p1mean, p1stdev := meanStdDev(p1scores)
	p2mean, p2stdev := meanStdDev(p2scores)
	// build stats string
	stats := fmt.Sprintf("Games played: %d\n", gamesPlayed)
	stats += fmt.Sprintf("p1 wins: %.1f (%.3f%%)\n", p1wl, 100.0*p1wl/float64(gamesPlayed))
	stats += fmt.Sprintf("p1 went first: %.1f (%.3f%%)\n", p1first, 100.0*p1first/float64(gamesPlayed))
	stats += fmt.Sprintf("Player who went first wins: %.1f (%.3f%%)\n",
		wentFirstWL, 100.0*wentFirstWL/float64(gamesPlayed))
	stats += fmt.Sprintf("p1 Mean Score: %.6f  Stdev: %.6f\n", p1mean, p1stdev)
	stats += fmt.Sprintf("p2 Mean Score: %.6f  Stdev: %.6f\n", p2mean, p2stdev)
	stats += fmt.Sprintf("Mean turns per game: %.3f\n", stat.Mean(turns, nil))

	hist, err := scoreHistogram(append(p1scores, p2scores...))
	if err != nil {
		return "", err
	}
	if hist != "" {
		stats += "Score histogram:\n" + hist
	}
	return stats, nil
}

// meanStdDev is stat.MeanStdDev, with a zero deviation for a single value.
func meanStdDev(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}
