package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-chase/internal/audio"
	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/persist"
	"github.com/vovakirdan/maze-chase/internal/registry"
	"github.com/vovakirdan/maze-chase/internal/storage"
	"github.com/vovakirdan/maze-chase/internal/transport/websocket"
)

// Env is what a play session gets wired to. Everything but GameID is optional.
type Env struct {
	GameID string

	// Store keeps scores and, unless SaveFile is set, save slots.
	Store *storage.Store
	// SaveFile replaces the store's slot with a file-backed medium.
	SaveFile persist.Medium
	// Audio plays effect tones locally.
	Audio *audio.Player
	// Hub streams the session to websocket spectators.
	Hub *websocket.Hub

	Logger *log.Logger
}

func (e Env) log() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// medium returns the save medium for slot, or nil when nothing can hold it.
func (e Env) medium(slot string) persist.Medium {
	switch {
	case e.SaveFile != nil:
		return e.SaveFile
	case e.Store != nil:
		return e.Store.Slot(slot)
	default:
		return nil
	}
}

// Services builds the game services for one player. Spectators watch the
// session under the slot name.
func (e Env) Services(slot string) registry.Services {
	svc := registry.Services{
		SaveSlot: e.medium(slot),
		Logger:   e.Logger,
	}

	if e.Store != nil {
		hs, err := e.Store.HighScore(e.GameID)
		if err != nil {
			e.log().Warn("cannot read high score", "game", e.GameID, "err", err)
		}
		svc.HighScore = hs
	}

	var fx core.Effects
	if e.Audio != nil {
		fx = append(fx, e.Audio)
	}
	if e.Hub != nil {
		pub := e.Hub.Session(slot)
		svc.Publish = pub.Publish
		fx = append(fx, pub)
	}
	if len(fx) > 0 {
		svc.Effects = fx
	}
	return svc
}

// HasSave reports whether slot holds a saved game.
func (e Env) HasSave(slot string) bool {
	m := e.medium(slot)
	if m == nil {
		return false
	}
	ok, err := persist.NewCodec().SignatureCheck(m)
	return err == nil && ok
}

// HighScore returns the best recorded score, or 0.
func (e Env) HighScore() int {
	if e.Store == nil {
		return 0
	}
	hs, err := e.Store.HighScore(e.GameID)
	if err != nil {
		return 0
	}
	return hs
}

// saveScore records a finished game. Failures are logged and ignored.
func (e Env) saveScore(score int) {
	if e.Store == nil || score <= 0 {
		return
	}
	if _, err := e.Store.SaveScore(e.GameID, score); err != nil {
		e.log().Warn("cannot save score", "game", e.GameID, "score", score, "err", err)
	}
}
