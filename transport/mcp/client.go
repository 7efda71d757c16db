package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/abalone/game/engine"
	"github.com/wricardo/abalone/game/hex"
	"github.com/wricardo/abalone/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Abalone",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Abalone - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Push six of your opponent's marbles off the hexagonal board.

AVAILABLE TOOLS:
- create_session: Create a new game session
- list_sessions / get_session: Inspect sessions
- game_state: Board, scores and whose turn it is
- validate_move: Check a move without playing it
- move: Play a move - requires intent explanation
- undo_move: Take back the last move
- reset_game: Restart from the layout
- move_history: View past moves
- list_configs: List starting layouts
- game_instructions: Full rules and coordinate system
- describe_cell: Occupant and neighbours of one cell

Cells are written "q,r" (axial coordinates). Call game_instructions first.`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "Session ID",
	}
}

func marbleProperties() map[string]any {
	return map[string]any{
		"session_id": sessionIDProperty(),
		"marbles": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": `1 to 3 of your marbles in a straight connected line, each as "q,r"`,
		},
		"target": map[string]any{
			"type":        "string",
			"description": `Empty or opponent cell the group moves into, as "q,r". Use this or direction.`,
		},
		"direction": map[string]any{
			"type":        "string",
			"enum":        []string{"E", "NE", "NW", "W", "SW", "SE"},
			"description": "Direction to move the whole group one step. Use this or target.",
		},
	}
}

func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional layout selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"config_id": map[string]any{
					"type":        "string",
					"description": "Layout to start from, e.g. standard or belgian_daisy (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, scores and the player to move",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "validate_move",
		Description: "Check whether a move is legal without playing it",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: marbleProperties(),
			Required:   []string{"session_id", "marbles"},
		},
	}, c.handleValidateMove)

	moveProps := marbleProperties()
	moveProps["intent"] = map[string]any{
		"type":        "string",
		"description": "What you are trying to achieve with this move",
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move 1 to 3 of your marbles one step, pushing opponents when you outnumber them",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: moveProps,
			Required:   []string{"session_id", "marbles", "intent"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo_move",
		Description: "Take back the last move",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to its starting layout",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get paginated move history",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionIDProperty(),
				"page": map[string]any{
					"type":        "number",
					"description": "Page number (default 1)",
				},
				"limit": map[string]any{
					"type":        "number",
					"description": "Moves per page (default 20, max 100)",
				},
				"order": map[string]any{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "asc for oldest first, desc for newest first (default)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available starting layouts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of Abalone and the coordinate system used by every tool",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe one cell: occupant, whether it is on the edge, and its six neighbours",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionIDProperty(),
				"q": map[string]any{
					"type":        "number",
					"description": "Column coordinate",
				},
				"r": map[string]any{
					"type":        "number",
					"description": "Row coordinate (-4 is the top row)",
				},
			},
			Required: []string{"session_id", "q", "r"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for stdio or HTTP serving.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiError is a non-2xx answer from the REST API. body keeps the raw
// payload for callers that understand it (a rejected move carries a
// MoveResult).
type apiError struct {
	StatusCode int
	Message    string
	body       []byte
}

func (e *apiError) Error() string {
	return e.Message
}

func (c *Client) apiCall(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		apiErr := &apiError{StatusCode: resp.StatusCode, body: raw}

		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &errResp)
		switch {
		case errResp.Error != "":
			apiErr.Message = errResp.Error
		case errResp.Message != "":
			apiErr.Message = errResp.Message
		default:
			apiErr.Message = fmt.Sprintf("API error: %d", resp.StatusCode)
		}
		return apiErr
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func arguments(request mcp.CallToolRequest) map[string]any {
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		return args
	}
	return map[string]any{}
}

func sessionPath(args map[string]any, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", errors.New("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// moveBody turns tool arguments into the REST move request.
func moveBody(args map[string]any) (map[string]any, error) {
	raw, ok := args["marbles"].([]any)
	if !ok || len(raw) == 0 {
		return nil, errors.New(`marbles is required: a list of "q,r" cells`)
	}

	marbles := make([]hex.Coord, 0, len(raw))
	for _, m := range raw {
		key, ok := m.(string)
		if !ok {
			return nil, fmt.Errorf(`marble %v must be a "q,r" string`, m)
		}
		c, err := hex.ParseKey(key)
		if err != nil {
			return nil, err
		}
		marbles = append(marbles, c)
	}

	body := map[string]any{"marbles": marbles}
	if target, _ := args["target"].(string); target != "" {
		c, err := hex.ParseKey(target)
		if err != nil {
			return nil, err
		}
		body["target"] = c
		return body, nil
	}
	if dir, _ := args["direction"].(string); dir != "" {
		body["direction"] = strings.ToUpper(dir)
		return body, nil
	}
	return nil, errors.New("target or direction is required")
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]any{}
	if configID, _ := args["config_id"].(string); configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, http.MethodGet, "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "in progress"
		if s.GameState != nil && s.GameState.Winner != engine.NoPlayer {
			status = string(s.GameState.Winner) + " won"
		}
		fmt.Fprintf(&sb, "- %s (Config: %s, Created: %s, %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), status)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleValidateMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/validate")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := moveBody(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var v engine.Validation
	if err := c.apiCall(ctx, http.MethodPost, path, body, &v); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatValidation(&v)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/move")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := moveBody(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// intent is rubber duck debugging for the caller and is not sent.
	var result service.MoveResult
	err = c.apiCall(ctx, http.MethodPost, path, body, &result)
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity {
		if json.Unmarshal(apiErr.body, &result) == nil && result.Reason != "" {
			return mcp.NewToolResultText(formatMoveResult(&result)), nil
		}
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/undo")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, http.MethodPost, path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Move undone.\n\n" + formatGameState(result.GameState)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/reset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, http.MethodPost, path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response.Message + "\n\n" + formatGameState(response.State)), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/history")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page, ok := args["page"].(float64); ok {
		params.Set("page", fmt.Sprintf("%d", int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		params.Set("limit", fmt.Sprintf("%d", int(limit)))
	}
	if order, ok := args["order"].(string); ok && order != "" {
		params.Set("order", order)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, http.MethodGet, "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString("Available Layouts:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&sb, "• %s (config_id: %s)\n  %s\n  Black: %d, White: %d, First: %s\n\n",
			config.Name, config.ConfigID, config.Description,
			config.BlackMarbles, config.WhiteMarbles, config.StartingPlayer)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

const gameInstructions = `Abalone - Complete Instructions

GAME OBJECTIVE:
Be the first to push 6 of your opponent's marbles off the board.

BOARD AND COORDINATES:
The board is a hexagon of 61 cells. Every cell is written "q,r".
- r is the row: -4 is the top row, 4 the bottom row.
- q is the position along the row. Row r holds q from max(-4, -r-4) to min(4, -r+4).
- The centre cell is 0,0.
In game_state the board is drawn row by row with the q range of each row:
B is black, W is white, . is empty.

DIRECTIONS (the six neighbours of q,r):
- E:  q+1, r
- W:  q-1, r
- NE: q+1, r-1
- NW: q,   r-1
- SE: q,   r+1
- SW: q-1, r+1

MOVES:
Select 1 to 3 of your own marbles forming a straight, connected line.
Move the whole group one step, either by naming the target cell or a direction.
- Inline: the group moves along its own line. Only the leading marble needs
  room ahead of it.
- Broadside (side-step): a group of 2 or 3 moves sideways. Every marble needs
  an empty cell to move into.

PUSHING (SUMITO):
An inline move may push opposing marbles directly ahead when you outnumber them:
- 2 push 1
- 3 push 1 or 2
The cell behind the pushed line must be empty or off the board. A marble pushed
off the board is captured and scores 1 for you. A single marble never pushes,
and broadside moves never push.

ILLEGAL MOVES:
- Moving your own marble off the board
- Moving into your own marble
- Pushing an equal or larger line
- Pushing when your own marble sits behind the opposing line

MOVEMENT COMMANDS:
- validate_move: check a move first, it reports the reason for a rejection
- move: play it, e.g. marbles ["-1,2","0,2"] with direction "NW"
- undo_move: take it back

VICTORY CONDITIONS:
The first player to reach 6 captures wins and the game ends.

Good luck!`

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	q, qok := args["q"].(float64)
	r, rok := args["r"].(float64)
	if !qok || !rok {
		return mcp.NewToolResultError("q and r are required"), nil
	}
	coord := hex.Coord{Q: int(q), R: int(r)}
	if !hex.IsOnBoard(coord) {
		return mcp.NewToolResultError(fmt.Sprintf("Cell %s is off the board. Cells lie within distance %d of 0,0.",
			hex.Key(coord), hex.Radius)), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCellInfo(engine.DescribeCell(&state.Board, coord))), nil
}

// Formatters

func playerName(p engine.Player) string {
	if p == engine.NoPlayer {
		return "empty"
	}
	return string(p)
}

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// formatBoard labels each rendered row with its r value and q range.
func formatBoard(board *engine.Board) string {
	lines := strings.Split(strings.TrimRight(engine.RenderBoard(board), "\n"), "\n")
	var sb strings.Builder
	for i, line := range lines {
		r := i - hex.Radius
		minQ, maxQ := hex.RowBounds(r)
		fmt.Fprintf(&sb, "r=%+d q[%+d..%+d] %s\n", r, minQ, maxQ, line)
	}
	return sb.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var sb strings.Builder
	if state.ConfigName != "" {
		fmt.Fprintf(&sb, "Layout: %s\n", state.ConfigName)
	}
	if state.Winner != engine.NoPlayer {
		fmt.Fprintf(&sb, "GAME OVER: %s wins!\n", state.Winner)
	} else {
		fmt.Fprintf(&sb, "To move: %s\n", state.CurrentPlayer)
	}
	fmt.Fprintf(&sb, "Captured: black %d, white %d (first to %d wins)\n",
		state.Score.Black, state.Score.White, engine.WinningScore)
	remaining := engine.RemainingMarbles(&state.Board)
	fmt.Fprintf(&sb, "On board: black %d, white %d\n", remaining.Black, remaining.White)
	if state.Message != "" {
		fmt.Fprintf(&sb, "Message: %s\n", state.Message)
	}
	if n := len(state.History); n > 0 {
		fmt.Fprintf(&sb, "Last move: %s\n", formatMove(state.History[n-1]))
	}
	sb.WriteString("\n")
	sb.WriteString(formatBoard(&state.Board))
	return sb.String()
}

func formatMove(m engine.Move) string {
	keys := make([]string, len(m.Marbles))
	for i, c := range m.Marbles {
		keys[i] = hex.Key(c)
	}
	line := fmt.Sprintf("%s %s %s [%s]", m.Player, m.Kind, hex.DirectionName(m.Direction), strings.Join(keys, " "))
	if m.Pushed > 0 {
		line += fmt.Sprintf(" pushed %d", m.Pushed)
	}
	if m.Captured > 0 {
		line += fmt.Sprintf(" captured %d", m.Captured)
	}
	return line
}

func formatValidation(v *engine.Validation) string {
	if !v.Valid {
		return fmt.Sprintf("Illegal move (%s): %s", v.Reason, v.Message)
	}
	result := fmt.Sprintf("Legal %s move %s", v.Kind, hex.DirectionName(v.Direction))
	if v.Pushed > 0 {
		result += fmt.Sprintf(", pushes %d", v.Pushed)
	}
	return result
}

func formatMoveResult(result *service.MoveResult) string {
	if !result.Success {
		return fmt.Sprintf("Move rejected (%s): %s", result.Reason, result.Message)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s move played.", result.Kind)
	if result.Pushed > 0 {
		fmt.Fprintf(&sb, " Pushed %d.", result.Pushed)
	}
	if result.Captured > 0 {
		fmt.Fprintf(&sb, " Captured %d!", result.Captured)
	}
	sb.WriteString("\n")
	if result.Message != "" {
		sb.WriteString(result.Message + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(formatGameState(result.GameState))
	return sb.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Move History (Page %d/%d), Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)
	for _, move := range history.Moves {
		fmt.Fprintf(&sb, "%d. %s\n", move.Number, formatMove(move))
	}
	return sb.String()
}

func formatCellInfo(info engine.CellInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Cell %s: %s", hex.Key(info.Coord), playerName(info.Occupant))
	if info.Edge {
		sb.WriteString(" (edge)")
	}
	sb.WriteString("\nNeighbours:\n")
	for _, d := range hex.Directions {
		name := hex.DirectionName(d)
		n := hex.Add(info.Coord, d)
		occupant, ok := info.Neighbours[name]
		if !ok {
			fmt.Fprintf(&sb, "  %-2s %s off board\n", name, hex.Key(n))
			continue
		}
		fmt.Fprintf(&sb, "  %-2s %s %s\n", name, hex.Key(n), playerName(occupant))
	}
	return sb.String()
}
