package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/games/mazechase"
	"github.com/vovakirdan/maze-chase/internal/persist"
	"github.com/vovakirdan/maze-chase/internal/registry"
)

func newTestServer(t *testing.T, svc registry.Services) *Server {
	t.Helper()
	g := mazechase.New(svc)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 36, TickRate: 60, Seed: 7})
	return NewServer(g, nil)
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) (string, bool) {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("%s returned no content", name)
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("%s: expected text content", name)
	}
	return text.Text, result.IsError
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t, registry.Services{})
	if s.MCPServer() == nil {
		t.Fatal("MCP server should be initialized")
	}
}

func TestHandleState(t *testing.T) {
	s := newTestServer(t, registry.Services{})

	text, isErr := call(t, s.handleState, "state", map[string]interface{}{"board": true})
	if isErr {
		t.Fatalf("state error: %s", text)
	}
	for _, want := range []string{"Status: running", "Level: 1", "Lives: 3", "Player: (15,23) facing right"} {
		if !strings.Contains(text, want) {
			t.Errorf("state missing %q:\n%s", want, text)
		}
	}
	for _, want := range []string{"─", "ᗧ"} {
		if !strings.Contains(text, want) {
			t.Errorf("board missing %q:\n%s", want, text)
		}
	}

	text, _ = call(t, s.handleState, "state", map[string]interface{}{"format": "json"})
	var snap mazechase.Snapshot
	if err := json.Unmarshal([]byte(text), &snap); err != nil {
		t.Fatalf("json state: %v\n%s", err, text)
	}
	if snap.Lives != 3 || snap.Player.X != 15 {
		t.Errorf("decoded snapshot = %+v", snap)
	}
}

func TestHandleTurnAndAdvance(t *testing.T) {
	s := newTestServer(t, registry.Services{})

	if text, isErr := call(t, s.handleTurn, "turn", map[string]interface{}{"direction": "sideways"}); !isErr {
		t.Errorf("unknown direction accepted: %s", text)
	}
	if _, isErr := call(t, s.handleTurn, "turn", map[string]interface{}{"direction": "left"}); isErr {
		t.Fatal("turn left failed")
	}

	text, isErr := call(t, s.handleAdvance, "advance", map[string]interface{}{"ms": float64(400)})
	if isErr {
		t.Fatalf("advance: %s", text)
	}
	if !strings.Contains(text, "Player: (14,23) facing left") {
		t.Errorf("player did not turn left:\n%s", text)
	}
}

func TestHandleAdvanceRejectsBadInput(t *testing.T) {
	s := newTestServer(t, registry.Services{})
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing", map[string]interface{}{}},
		{"zero", map[string]interface{}{"ms": float64(0)}},
		{"string", map[string]interface{}{"ms": "100"}},
		{"too long", map[string]interface{}{"ms": float64(120000)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if text, isErr := call(t, s.handleAdvance, "advance", tt.args); !isErr {
				t.Errorf("accepted %v: %s", tt.args, text)
			}
		})
	}
}

func TestActionHandlers(t *testing.T) {
	slot := persist.NewMemory(persist.NewCodec().Size())
	s := newTestServer(t, registry.Services{SaveSlot: slot})

	text, isErr := call(t, s.actionHandler(core.ActionPause), "pause", nil)
	if isErr || !strings.Contains(text, "(paused)") {
		t.Errorf("pause: %s", text)
	}

	text, isErr = call(t, s.actionHandler(core.ActionSave), "save", nil)
	if isErr || !strings.Contains(text, "Game saved") {
		t.Errorf("save: %s", text)
	}

	call(t, s.actionHandler(core.ActionPause), "pause", nil)
	call(t, s.handleAdvance, "advance", map[string]interface{}{"ms": float64(2000)})

	text, isErr = call(t, s.actionHandler(core.ActionLoad), "load", nil)
	if isErr || !strings.Contains(text, "Game loaded") || !strings.Contains(text, "Player: (15,23)") {
		t.Errorf("load: %s", text)
	}
}

func TestActionHandlerReportsErrors(t *testing.T) {
	s := newTestServer(t, registry.Services{})
	text, isErr := call(t, s.actionHandler(core.ActionSave), "save", nil)
	if !isErr || !strings.Contains(text, "no save slot") {
		t.Errorf("save without slot: %v %s", isErr, text)
	}
}

func TestFormatSnapshot(t *testing.T) {
	snap := mazechase.Snapshot{
		Level:       2,
		Score:       1250,
		HighScore:   4000,
		Lives:       1,
		Remaining:   17,
		PowerActive: true,
		PowerLeft:   3500,
		Consumed:    [mazechase.NumGhosts]bool{false, true},
		Status:      mazechase.StatusRunning,
	}
	text := formatSnapshot(snap)
	for _, want := range []string{"Level: 2", "Score: 1250 (high 4000)", "Dots left: 17", "Ghost 2: (0,0) facing  (eaten)", "Power: 3500ms left"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}
