// Command analyze prints quick, human-readable heuristics about the layout
// files in the project's configs directory. For each side it reports the
// marble count, how many marbles start on the edge, the average distance to
// the centre, and the opening mobility (legal single-marble steps).
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wricardo/abalone/game/engine"
	"github.com/wricardo/abalone/game/hex"
)

// SideStats holds the per-player numbers of one layout.
type SideStats struct {
	Marbles        int
	EdgeMarbles    int
	CentreDistance float64
	Mobility       int
}

// Analysis is the result of analyzing one layout.
type Analysis struct {
	Name           string
	StartingPlayer engine.Player
	Sides          map[engine.Player]SideStats
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.yaml"))
	if err != nil {
		fmt.Printf("Error finding layouts: %v\n", err)
		os.Exit(1)
	}

	for _, configFile := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(configFile))
		analyzeConfig(os.Stdout, configFile)
	}
}

func analyzeConfig(w io.Writer, path string) {
	config, err := engine.LoadGameConfig(path)
	if err != nil {
		fmt.Fprintf(w, "Error loading layout: %v\n", err)
		return
	}

	a := analyze(config)
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "First to move: %s\n", a.StartingPlayer)

	for _, p := range []engine.Player{engine.Black, engine.White} {
		s := a.Sides[p]
		fmt.Fprintf(w, "%s: %d marbles, %d on the edge, avg centre distance %.2f, %d opening steps\n",
			p, s.Marbles, s.EdgeMarbles, s.CentreDistance, s.Mobility)
	}

	black, white := a.Sides[engine.Black], a.Sides[engine.White]
	if black.Marbles != white.Marbles {
		fmt.Fprintf(w, "⚠️  WARNING: sides are unbalanced (%d vs %d)\n", black.Marbles, white.Marbles)
	}
	if black.Mobility != white.Mobility {
		fmt.Fprintf(w, "⚠️  Opening mobility differs: black %d, white %d\n", black.Mobility, white.Mobility)
	} else {
		fmt.Fprintf(w, "✅ Both sides have the same opening mobility\n")
	}
}

func analyze(config *engine.GameConfig) Analysis {
	state := engine.InitGameStateFromConfig(config)

	a := Analysis{
		Name:           config.Name,
		StartingPlayer: state.CurrentPlayer,
		Sides:          make(map[engine.Player]SideStats, 2),
	}
	for _, p := range []engine.Player{engine.Black, engine.White} {
		a.Sides[p] = sideStats(*state, p)
	}
	return a
}

func sideStats(state engine.GameState, p engine.Player) SideStats {
	marbles := state.Board.Marbles(p)
	stats := SideStats{
		Marbles:     len(marbles),
		EdgeMarbles: len(engine.EdgeMarbles(&state.Board, p)),
		Mobility:    openingMobility(state, p),
	}

	if len(marbles) > 0 {
		total := 0
		for _, m := range marbles {
			total += hex.Distance(m, hex.Center)
		}
		stats.CentreDistance = float64(total) / float64(len(marbles))
	}
	return stats
}

// openingMobility counts the legal single-marble steps p could make if it
// were p's turn.
func openingMobility(state engine.GameState, p engine.Player) int {
	state.CurrentPlayer = p

	count := 0
	for _, m := range state.Board.Marbles(p) {
		for _, d := range hex.Directions {
			if engine.ValidateMove(state, []hex.Coord{m}, hex.Add(m, d)).Valid {
				count++
			}
		}
	}
	return count
}
