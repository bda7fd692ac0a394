package engine

import (
	"github.com/emberengine/ember/engine/systems"
)

type GameState int

const (
	GAME_ACTIVE GameState = iota
	GAME_MENU
	GAME_WIN
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	State             GameState
	// Keys mirrors keyboard state for game logic that wants to poll
	// rather than subscribe to events. Games fill it from their own key
	// handling; the engine does not write to it.
	Keys         [1024]bool
	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnOnResize   OnResize
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
