package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/math"
	"github.com/emberengine/ember/engine/platform"
	"github.com/emberengine/ember/engine/renderer/opengl"
	"github.com/emberengine/ember/engine/systems"
)

// Largest frame step fed to game updates, in seconds.
const maxFrameDelta = 0.25

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	platform      *platform.Platform
	systemManager *systems.SystemManager
	width         uint32
	height        uint32
	clock         *core.Clock
	lastTime      float64
	clearColor    mgl32.Vec4
}

func New(g *Game) (*Engine, error) {
	p, err := platform.New()
	if err != nil {
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     p,
		isRunning:    true,
		isSuspended:  false,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
		lastTime:     0,
		clearColor:   g.ApplicationConfig.ClearColorVec4(),
	}, nil
}

// Initialize brings up every subsystem in dependency order. The window
// and its context come first; the renderer and everything that touches
// the GPU follow.
func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	core.LogSetLevel(e.gameInstance.ApplicationConfig.CoreLogLevel())

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_KEY_RELEASED, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)
	core.EventRegister(core.EVENT_CODE_TEXT_INPUT, e.onTextInput)

	if err := e.platform.Startup(e.gameInstance.ApplicationConfig.Name,
		e.gameInstance.ApplicationConfig.StartPosX,
		e.gameInstance.ApplicationConfig.StartPosY,
		e.gameInstance.ApplicationConfig.StartWidth,
		e.gameInstance.ApplicationConfig.StartHeight,
		e.gameInstance.ApplicationConfig.Vsync); err != nil {
		return err
	}

	// The context is current from here on, safe to bring up the GPU side.
	sm, err := systems.NewSystemManager(opengl.New(),
		e.gameInstance.ApplicationConfig.Name,
		e.width, e.height,
		e.gameInstance.ApplicationConfig.AssetsDir)
	if err != nil {
		return err
	}
	e.systemManager = sm
	e.gameInstance.SystemManager = sm

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}

	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the frame loop: pump window events, update the game, render
// and present. Returns when a quit is requested or a callback fails.
func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		e.platform.PumpMessages()

		if !e.isSuspended {
			e.clock.Update()
			currentTime := e.clock.Elapsed()
			// Cap the step so a frame after a long stall (suspend,
			// debugger pause) does not jump the simulation.
			delta := math.Clamp(currentTime-e.lastTime, 0, maxFrameDelta)
			frameStartTime := e.platform.GetAbsoluteTime()

			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed, shutting down: %v", err)
				e.isRunning = false
				break
			}

			if err := e.systemManager.RendererSystem.BeginFrame(e.clearColor); err != nil {
				core.LogError("begin frame failed, shutting down: %v", err)
				e.isRunning = false
				break
			}

			if err := e.gameInstance.FnRender(delta); err != nil {
				core.LogError("game render failed, shutting down: %v", err)
				e.isRunning = false
				break
			}

			if e.systemManager.FontSystem != nil {
				e.systemManager.FontSystem.Draw()
			}

			if err := e.systemManager.RendererSystem.EndFrame(); err != nil {
				core.LogError("end frame failed, shutting down: %v", err)
				e.isRunning = false
				break
			}
			e.platform.SwapBuffers()

			frameElapsedTime := e.platform.GetAbsoluteTime() - frameStartTime
			core.MetricsUpdate(frameElapsedTime)

			// NOTE: Input update/state copying should always be handled
			// after any input should be recorded; I.E. before this line.
			// As a safety, input is the last thing to be updated before
			// this frame ends.
			core.InputUpdate(delta)

			e.lastTime = currentTime
		}
	}

	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	if e.systemManager != nil {
		if err := e.systemManager.Shutdown(); err != nil {
			return err
		}
	}
	return e.platform.Shutdown()
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
	}
}

func (e *Engine) onKey(context core.EventContext) {
	keyEvent, ok := context.Data.(*core.KeyEvent)
	if !ok {
		return
	}
	if context.Type == core.EVENT_CODE_KEY_PRESSED {
		if keyEvent.KeyCode == core.KEY_ESCAPE {
			core.EventFire(core.EventContext{
				Type: core.EVENT_CODE_APPLICATION_QUIT,
			})
			return
		}
		core.LogDebug("key %d pressed", keyEvent.KeyCode)
	} else if context.Type == core.EVENT_CODE_KEY_RELEASED {
		core.LogDebug("key %d released", keyEvent.KeyCode)
	}
}

func (e *Engine) onResized(context core.EventContext) {
	systemEvent, ok := context.Data.(*core.SystemEvent)
	if !ok {
		return
	}
	width := systemEvent.WindowWidth
	height := systemEvent.WindowHeight

	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height

	// A zero dimension means the window is minimized. Stop rendering
	// until it comes back.
	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application")
		e.isSuspended = false
	}

	if err := e.systemManager.RendererSystem.OnResize(uint16(width), uint16(height)); err != nil {
		core.LogError("renderer resize failed: %v", err)
	}
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError("game resize failed: %v", err)
	}
}

func (e *Engine) onTextInput(context core.EventContext) {
	textEvent, ok := context.Data.(*core.TextEvent)
	if !ok {
		return
	}
	core.LogDebug("text input: %s", textEvent.Text)
}
