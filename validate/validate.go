// Command validate lints the layout YAML files in a configs directory
// (../configs by default, or the first argument). It checks:
//   - YAML structure and required fields
//   - Nine hex rows with the right number of cells and allowed characters (B, W, .)
//   - Marble counts: at most 14 per side and at least 6, so the game can be won
//   - starting_player and required message keys
//
// It warns when the two sides are unbalanced or when no reflection of the
// board maps black onto white.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/abalone/game/engine"
	"github.com/wricardo/abalone/game/hex"
)

// Config mirrors the YAML schema for a layout file.
type Config struct {
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	StartingPlayer string            `yaml:"starting_player"`
	Layout         []string          `yaml:"layout"`
	Messages       map[string]string `yaml:"messages"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single layout file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		result.fail("Invalid YAML: %v", err)
		return result
	}

	if config.Name == "" {
		result.fail("name is required")
	}
	if config.Description == "" {
		result.fail("description is required")
	}

	switch engine.Player(config.StartingPlayer) {
	case engine.NoPlayer, engine.Black, engine.White:
	default:
		result.fail("starting_player must be black or white, got %q", config.StartingPlayer)
	}

	// Validate grid
	board, counts := validateRows(config.Layout, &result)

	for _, p := range []engine.Player{engine.Black, engine.White} {
		n := counts[p]
		switch {
		case n > engine.MarblesPerSide:
			result.fail("%s has %d marbles, at most %d allowed", p, n, engine.MarblesPerSide)
		case n < engine.WinningScore:
			result.fail("%s has %d marbles, needs at least %d", p, n, engine.WinningScore)
		}
	}

	// Validate messages
	if config.Messages["welcome"] == "" {
		result.fail("Missing required message: welcome")
	}
	if !strings.Contains(config.Messages["victory"], "%s") {
		result.fail("Message victory must contain %%s for the winner")
	}
	for _, key := range []string{"turn", "capture"} {
		if msg, ok := config.Messages[key]; ok && !strings.Contains(msg, "%s") {
			result.fail("Message %s must contain %%s for the player", key)
		}
	}

	if !result.Valid {
		return result
	}

	if counts[engine.Black] != counts[engine.White] {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Unbalanced sides: black %d, white %d", counts[engine.Black], counts[engine.White]))
	}
	if _, ok := symmetry(&board); !ok {
		result.Warnings = append(result.Warnings, "No reflection of the board maps black onto white")
	}

	// Add informational data
	first := config.StartingPlayer
	if first == "" {
		first = string(engine.Black)
	}
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Marbles: black %d, white %d", counts[engine.Black], counts[engine.White]))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ First to move: %s", first))
	if name, ok := symmetry(&board); ok {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Symmetry: %s", name))
	}

	return result
}

// validateRows checks the nine hex rows and returns the parsed board with
// the marble count of each side.
func validateRows(layout []string, result *ValidationResult) (engine.Board, map[engine.Player]int) {
	var board engine.Board
	counts := map[engine.Player]int{}

	if len(layout) != engine.LayoutRows {
		result.fail("Layout must have %d rows, got %d", engine.LayoutRows, len(layout))
		return board, counts
	}

	for i, raw := range layout {
		row := strings.ReplaceAll(raw, " ", "")
		r := i - hex.Radius
		minQ, maxQ := hex.RowBounds(r)
		if want := maxQ - minQ + 1; len(row) != want {
			result.fail("Row %d must have %d cells, got %d", i+1, want, len(row))
			continue
		}

		for j, char := range row {
			c := hex.Coord{Q: minQ + j, R: r}
			switch char {
			case 'B':
				board.Set(c, engine.Black)
				counts[engine.Black]++
			case 'W':
				board.Set(c, engine.White)
				counts[engine.White]++
			case '.':
			default:
				result.fail("Invalid character '%c' at row %d, cell %d", char, i+1, j+1)
			}
		}
	}

	return board, counts
}

var reflections = []struct {
	name string
	fn   func(hex.Coord) hex.Coord
}{
	{"point reflection through the centre", func(c hex.Coord) hex.Coord { return c.Neg() }},
	{"left-right mirror", func(c hex.Coord) hex.Coord { return hex.Coord{Q: -c.Q - c.R, R: c.R} }},
	{"top-bottom mirror", func(c hex.Coord) hex.Coord { return hex.Coord{Q: c.Q + c.R, R: -c.R} }},
}

// symmetry returns the first reflection that swaps the two sides exactly.
func symmetry(board *engine.Board) (string, bool) {
	for _, refl := range reflections {
		fair := true
		for _, c := range hex.Cells() {
			if board.At(refl.fn(c)) != board.At(c).Opponent() {
				fair = false
				break
			}
		}
		if fair {
			return refl.name, true
		}
	}
	return "", false
}

// main validates every layout file in the configs directory, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(configDir, pattern))
		if err != nil {
			fmt.Printf("Error finding config files: %v\n", err)
			os.Exit(1)
		}
		files = append(files, matches...)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
			for _, warning := range result.Warnings {
				fmt.Println("  ⚠️  " + warning)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
