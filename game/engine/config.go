package engine

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/abalone/game/hex"
)

var standardLayout = []string{
	"WWWWW",
	"WWWWWW",
	".WWW...",
	"........",
	".........",
	"........",
	"...BBB.",
	"BBBBBB",
	"BBBBB",
}

// StandardConfig returns the built-in standard opening.
func StandardConfig() *GameConfig {
	return &GameConfig{
		Name:           "standard",
		Description:    "Standard opening: 14 marbles each on the three back rows",
		Layout:         append([]string(nil), standardLayout...),
		StartingPlayer: Black,
		Messages: ConfigMessages{
			Welcome: "Welcome to Abalone! Black moves first. Push six white marbles off to win.",
			Turn:    "%s to move",
			Capture: "%s pushed a marble off the board!",
			Victory: "%s wins!",
		},
	}
}

// StandardLayout returns the board of the standard opening.
func StandardLayout() Board {
	board, _ := ParseLayout(standardLayout)
	return board
}

// NewGameState returns a fresh state with first to move.
func NewGameState(board Board, first Player) GameState {
	return GameState{
		Board:         board,
		CurrentPlayer: first,
		History:       []Move{},
	}
}

// ParseLayout converts nine layout rows into a board.
func ParseLayout(rows []string) (Board, error) {
	var board Board
	if len(rows) != LayoutRows {
		return board, fmt.Errorf("layout must have %d rows, got %d", LayoutRows, len(rows))
	}
	for i, raw := range rows {
		row := strings.ReplaceAll(raw, " ", "")
		r := i - hex.Radius
		minQ, maxQ := hex.RowBounds(r)
		if want := maxQ - minQ + 1; len(row) != want {
			return board, fmt.Errorf("layout row %d must have %d cells, got %d", i+1, want, len(row))
		}
		for j, ch := range row {
			c := hex.Coord{Q: minQ + j, R: r}
			switch ch {
			case 'B':
				board.Set(c, Black)
			case 'W':
				board.Set(c, White)
			case '.':
			default:
				return board, fmt.Errorf("invalid character '%c' at row %d, col %d", ch, i+1, j+1)
			}
		}
	}
	return board, nil
}

// LayoutOf renders a board back into layout rows.
func LayoutOf(board *Board) []string {
	rows := make([]string, 0, LayoutRows)
	for r := -hex.Radius; r <= hex.Radius; r++ {
		minQ, maxQ := hex.RowBounds(r)
		var sb strings.Builder
		for q := minQ; q <= maxQ; q++ {
			sb.WriteByte(cellChar(board.At(hex.Coord{Q: q, R: r})))
		}
		rows = append(rows, sb.String())
	}
	return rows
}

func cellChar(p Player) byte {
	switch p {
	case Black:
		return 'B'
	case White:
		return 'W'
	}
	return '.'
}

// ValidateGameConfig validates a layout configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	board, err := ParseLayout(config.Layout)
	if err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	for _, p := range []Player{Black, White} {
		n := board.Count(p)
		if n == 0 || n > MarblesPerSide {
			return fmt.Errorf("config validation: %s must have between 1 and %d marbles, got %d", p, MarblesPerSide, n)
		}
		if n < WinningScore {
			return fmt.Errorf("config validation: %s has %d marbles, fewer than the %d needed to lose", p, n, WinningScore)
		}
	}

	if config.StartingPlayer != NoPlayer && !config.StartingPlayer.Valid() {
		return fmt.Errorf("config validation: starting_player must be black or white, got %q", config.StartingPlayer)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if !strings.Contains(config.Messages.Victory, "%s") {
		return fmt.Errorf("config validation: messages.victory must contain %%s for the winner")
	}
	for name, msg := range map[string]string{"turn": config.Messages.Turn, "capture": config.Messages.Capture} {
		if msg != "" && !strings.Contains(msg, "%s") {
			return fmt.Errorf("config validation: messages.%s must contain %%s for the player", name)
		}
	}

	return nil
}

// LoadGameConfig loads a layout configuration from a YAML (or JSON) file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InitGameStateFromConfig creates a new game state using the provided configuration
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = StandardConfig()
	}

	board, err := ParseLayout(config.Layout)
	if err != nil {
		board = StandardLayout()
	}

	first := config.StartingPlayer
	if !first.Valid() {
		first = Black
	}

	state := NewGameState(board, first)
	state.Message = config.Messages.Welcome
	state.ConfigName = config.Name
	return &state
}
