// Package mcp exposes a maze-chase session as Model Context Protocol tools,
// so an agent can play the game one step at a time.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/games/mazechase"
)

// maxAdvance caps a single advance call.
const maxAdvance = time.Minute

var directions = map[string]core.Action{
	"left":       core.ActionLeft,
	"up":         core.ActionUp,
	"right":      core.ActionRight,
	"down":       core.ActionDown,
	"up_left":    core.ActionUpLeft,
	"up_right":   core.ActionUpRight,
	"down_left":  core.ActionDownLeft,
	"down_right": core.ActionDownRight,
}

var directionNames = []string{"left", "up", "right", "down", "up_left", "up_right", "down_left", "down_right"}

// Server serialises tool calls onto one game.
type Server struct {
	mu        sync.Mutex
	game      *mazechase.Game
	log       *log.Logger
	mcpServer *server.MCPServer
}

// NewServer wraps a game that has already been Reset.
func NewServer(game *mazechase.Game, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		game: game,
		log:  logger,
	}
	s.initMCPServer()
	return s
}

// MCPServer returns the underlying server for custom transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves requests on r/w until ctx is done or r closes.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	return stdio.Listen(ctx, r, w)
}

func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Maze Chase",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Maze Chase - MCP Interface

Steer the player (C) around the maze, eat every dot (.) and avoid the four
ghosts. Power cells (o) make ghosts edible for a while; eating ghosts in a
row doubles the bonus each time.

Game time only moves when you call advance or turn. The player moves one
cell every 400ms, ghosts slightly slower.

TOOLS:
- state: current score, lives, positions and optionally the board
- turn: queue a direction change (diagonals try vertical first)
- advance: run the game for a number of milliseconds
- pause: toggle pause
- continue: start the next level after a level is cleared
- new_game: abandon the session and start over
- save / load: suspend and resume the session`),
	)
	s.registerTools()
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": map[string]interface{}{
					"type":        "boolean",
					"description": "Include the rendered board",
				},
				"format": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"text", "json"},
					"description": "Output format (default text)",
				},
			},
		},
	}, s.handleState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "turn",
		Description: "Request a direction change; applied on the player's next move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        directionNames,
					"description": "Direction to steer",
				},
			},
			Required: []string{"direction"},
		},
	}, s.handleTurn)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "advance",
		Description: "Run the game with no input for the given time",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ms": map[string]interface{}{
					"type":        "number",
					"description": "Milliseconds of game time (1-60000)",
				},
			},
			Required: []string{"ms"},
		},
	}, s.handleAdvance)

	for _, tool := range []struct {
		name, desc string
		action     core.Action
	}{
		{"pause", "Toggle pause", core.ActionPause},
		{"continue", "Start the next level after a level is cleared", core.ActionConfirm},
		{"new_game", "Abandon the session and start a new game", core.ActionNewGame},
		{"save", "Save the session to the save slot", core.ActionSave},
		{"load", "Restore the session from the save slot", core.ActionLoad},
	} {
		s.mcpServer.AddTool(mcp.Tool{
			Name:        tool.name,
			Description: tool.desc,
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]interface{}{},
			},
		}, s.actionHandler(tool.action))
	}
}

// step runs one frame with the given actions.
func (s *Server) step(actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return s.game.Step(in)
}

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	withBoard, _ := args["board"].(bool)
	format, _ := args["format"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.game.Snapshot()
	if format == "json" {
		data, err := json.Marshal(snap)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}

	result := formatSnapshot(snap)
	if withBoard {
		result += "\n" + s.game.BoardText()
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	name, _ := args["direction"].(string)
	action, ok := directions[strings.ToLower(name)]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown direction %q", name)), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.step(action)
	s.log.Debug("turn", "direction", name)
	return mcp.NewToolResultText(fmt.Sprintf("Turn %s requested\n%s", name, formatState(res.State))), nil
}

func (s *Server) handleAdvance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	ms, ok := args["ms"].(float64)
	if !ok || ms < 1 {
		return mcp.NewToolResultError("ms must be a positive number"), nil
	}
	d := time.Duration(ms * float64(time.Millisecond))
	if d > maxAdvance {
		return mcp.NewToolResultError(fmt.Sprintf("ms must be at most %d", maxAdvance.Milliseconds())), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.game.AdvanceBy(d)
	return mcp.NewToolResultText(formatSnapshot(snap)), nil
}

func (s *Server) actionHandler(action core.Action) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		res := s.step(action)
		if res.Err != nil {
			return mcp.NewToolResultError(res.Err.Error()), nil
		}
		var b strings.Builder
		switch {
		case res.Saved:
			b.WriteString("Game saved\n")
		case res.Loaded:
			b.WriteString("Game loaded\n")
		}
		b.WriteString(formatSnapshot(s.game.Snapshot()))
		return mcp.NewToolResultText(b.String()), nil
	}
}

func formatState(st core.GameState) string {
	return fmt.Sprintf("Score: %d\nGame Over: %v\nPaused: %v\n", st.Score, st.GameOver, st.Paused)
}

func formatSnapshot(s mazechase.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Status: %s", s.Status)
	if s.Paused {
		b.WriteString(" (paused)")
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Time: %dms\n", s.Time)
	fmt.Fprintf(&b, "Level: %d\n", s.Level)
	fmt.Fprintf(&b, "Score: %d (high %d)\n", s.Score, s.HighScore)
	fmt.Fprintf(&b, "Lives: %d\n", s.Lives)
	fmt.Fprintf(&b, "Dots left: %d\n", s.Remaining)
	fmt.Fprintf(&b, "Player: (%d,%d) facing %s\n", s.Player.X, s.Player.Y, s.Player.Facing)
	for i, g := range s.Ghosts {
		state := ""
		if s.Consumed[i] {
			state = " (eaten)"
		}
		fmt.Fprintf(&b, "Ghost %d: (%d,%d) facing %s%s\n", i+1, g.X, g.Y, g.Facing, state)
	}
	if s.PowerActive {
		fmt.Fprintf(&b, "Power: %dms left\n", s.PowerLeft)
	}
	return b.String()
}
