package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wricardo/swap-puzzle/game/engine"
)

func TestSample_Uniform(t *testing.T) {
	stats, err := sample(2, 24000, engine.NewSeededRandom(42))
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	if stats.Permutations != 24 {
		t.Fatalf("Expected 24 arrangements of 4 tiles, got %d", stats.Permutations)
	}
	if len(stats.Counts) != 24 {
		t.Errorf("Expected every arrangement to appear, saw %d", len(stats.Counts))
	}
	for k, n := range stats.Counts {
		if n < 800 || n > 1200 {
			t.Errorf("Arrangement [%s] came up %d times, expected about 1000", k, n)
		}
	}
	// df=23; 60 is far beyond the 99.99th percentile
	if chi := stats.ChiSquare(); chi > 60 {
		t.Errorf("Chi-square %.2f too high for a uniform shuffle", chi)
	}
	if stats.Identity != stats.Counts["0,1,2,3"] {
		t.Errorf("Identity count %d disagrees with arrangement count %d", stats.Identity, stats.Counts["0,1,2,3"])
	}
}

func TestSample_Errors(t *testing.T) {
	if _, err := sample(1, 10, nil); !errors.Is(err, engine.ErrInvalidDimension) {
		t.Errorf("Expected ErrInvalidDimension, got %v", err)
	}
	if _, err := sample(4, 10, nil); !errors.Is(err, engine.ErrInvalidDimension) {
		t.Errorf("Expected ErrInvalidDimension for 4, got %v", err)
	}
	if _, err := sample(2, 0, nil); !errors.Is(err, ErrInvalidTrials) {
		t.Errorf("Expected ErrInvalidTrials, got %v", err)
	}
}

func TestChiSquare_MissingArrangements(t *testing.T) {
	stats := &Stats{Trials: 4, Permutations: 2, Counts: map[string]int{"a": 4}}
	// (4-2)²/2 + 2
	if got := stats.ChiSquare(); got != 4 {
		t.Errorf("Expected 4, got %v", got)
	}
}

func TestArrangement(t *testing.T) {
	tiles := engine.CreateTiles(2, 1, 1)
	tiles[0].Position, tiles[3].Position = tiles[3].Position, tiles[0].Position
	if got := arrangement(tiles); got != "3,1,2,0" {
		t.Errorf("Expected 3,1,2,0, got %s", got)
	}
}

func TestCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out

	err := cmd.Run(context.Background(), []string{"shufflestat", "--trials", "2400", "--seed", "7", "--top", "3"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{"Dimension: 2x2", "Trials: 2400", "Expected per arrangement: 100.00", "Chi-square (df=23)"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output:\n%s", want, output)
		}
	}
	if got := strings.Count(output, "  ["); got != 3 {
		t.Errorf("Expected 3 listed arrangements, got %d", got)
	}
}
