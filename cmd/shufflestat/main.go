// Command shufflestat shuffles small boards many times and reports how often
// each tile arrangement comes up. Every arrangement of an N×N board should be
// equally likely; the chi-square statistic against the uniform distribution
// and the share of shuffles that leave the board solved are printed at the end.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/swap-puzzle/game/engine"
)

// maxDimension keeps the number of arrangements (n²!) printable
const maxDimension = 3

var ErrInvalidTrials = errors.New("trials must be positive")

// Stats is the outcome of a sampling run
type Stats struct {
	Dimension    int
	Trials       int
	Permutations int
	Counts       map[string]int
	Identity     int
}

// sample shuffles a fresh board trials times
func sample(dimension, trials int, rng engine.RandomSource) (*Stats, error) {
	if dimension < engine.MinDimension || dimension > maxDimension {
		return nil, fmt.Errorf("%w: must be between %d and %d, got %d",
			engine.ErrInvalidDimension, engine.MinDimension, maxDimension, dimension)
	}
	if trials <= 0 {
		return nil, ErrInvalidTrials
	}

	stats := &Stats{
		Dimension:    dimension,
		Trials:       trials,
		Permutations: factorial(dimension * dimension),
		Counts:       make(map[string]int),
	}
	for i := 0; i < trials; i++ {
		tiles := engine.Shuffle(engine.CreateTiles(dimension, 1, 1), rng)
		stats.Counts[arrangement(tiles)]++
		if engine.IsSolved(tiles) {
			stats.Identity++
		}
	}
	return stats, nil
}

// arrangement lists tile IDs in row-major slot order
func arrangement(tiles []*engine.Tile) string {
	ordered := make([]*engine.Tile, len(tiles))
	copy(ordered, tiles)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i].Position, ordered[j].Position
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	ids := make([]string, len(ordered))
	for i, t := range ordered {
		ids[i] = fmt.Sprint(int(t.ID))
	}
	return strings.Join(ids, ",")
}

// Expected is the count each arrangement should reach under a uniform shuffle
func (s *Stats) Expected() float64 {
	return float64(s.Trials) / float64(s.Permutations)
}

// ChiSquare compares the observed counts with the uniform distribution.
// Arrangements that never came up contribute their full expected count.
func (s *Stats) ChiSquare() float64 {
	expected := s.Expected()
	var chi float64
	for _, observed := range s.Counts {
		d := float64(observed) - expected
		chi += d * d / expected
	}
	chi += float64(s.Permutations-len(s.Counts)) * expected
	return chi
}

func report(w io.Writer, s *Stats, top int) {
	fmt.Fprintf(w, "Dimension: %dx%d\n", s.Dimension, s.Dimension)
	fmt.Fprintf(w, "Trials: %d\n", s.Trials)
	fmt.Fprintf(w, "Arrangements seen: %d/%d\n", len(s.Counts), s.Permutations)
	fmt.Fprintf(w, "Expected per arrangement: %.2f\n", s.Expected())

	keys := make([]string, 0, len(s.Counts))
	for k := range s.Counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if s.Counts[keys[i]] != s.Counts[keys[j]] {
			return s.Counts[keys[i]] > s.Counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if top > 0 && top < len(keys) {
		keys = keys[:top]
	}

	fmt.Fprintln(w, "\nMost frequent:")
	for _, k := range keys {
		fmt.Fprintf(w, "  [%s] %d (%+.1f%%)\n", k, s.Counts[k],
			100*(float64(s.Counts[k])-s.Expected())/s.Expected())
	}

	fmt.Fprintf(w, "\nChi-square (df=%d): %.2f\n", s.Permutations-1, s.ChiSquare())
	fmt.Fprintf(w, "Left solved: %d (%.4f%%)\n", s.Identity, 100*float64(s.Identity)/float64(s.Trials))
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "shufflestat",
		Usage: "Report how evenly the shuffle spreads tile arrangements",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "dimension",
				Value: 2,
				Usage: "Tiles per side (2 or 3)",
			},
			&cli.IntFlag{
				Name:  "trials",
				Value: 100000,
				Usage: "Number of shuffles",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Seed for a reproducible run (random when 0)",
			},
			&cli.IntFlag{
				Name:  "top",
				Value: 10,
				Usage: "Arrangements to list (0 for all)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rng := engine.DefaultRandom()
			if seed := cmd.Uint64("seed"); seed != 0 {
				rng = engine.NewSeededRandom(seed)
			}

			stats, err := sample(int(cmd.Int("dimension")), int(cmd.Int("trials")), rng)
			if err != nil {
				return err
			}
			report(cmd.Root().Writer, stats, int(cmd.Int("top")))
			return nil
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
