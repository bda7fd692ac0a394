package testbed

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/emberengine/ember/engine"
	"github.com/emberengine/ember/engine/core"
)

type TestGame struct {
	*engine.Game
	state *gameState
}

type gameState struct {
	width  uint32
	height uint32

	rotation float32
	fpsText  uuid.UUID
	hasFont  bool
}

func NewTestGame(config *engine.ApplicationConfig) (*TestGame, error) {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             engine.GAME_ACTIVE,
		},
		state: &gameState{},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize

	return tg, nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	g.state.width = g.ApplicationConfig.StartWidth
	g.state.height = g.ApplicationConfig.StartHeight
	g.state.rotation = 45.0

	resources := g.SystemManager.ResourceManager

	shader, err := resources.LoadShader("shaders/sprite", "sprite")
	if err != nil {
		return err
	}

	backend := g.SystemManager.RendererSystem.Backend()
	backend.ShaderSetInteger(shader, "image", 0, true)
	backend.ShaderSetMatrix4(shader, "projection", g.SystemManager.RendererSystem.Projection(), false)

	if _, err := resources.LoadTexture("textures/face.png", true, "face"); err != nil {
		return err
	}

	if err := g.SystemManager.RendererSystem.CreateSpritePipeline(shader); err != nil {
		return err
	}

	// Debug text overlay. Optional; the demo still runs without the font
	// asset.
	if err := g.SystemManager.CreateFontSystem("sprite"); err != nil {
		return err
	}
	if err := g.SystemManager.FontSystem.LoadFont("ember", "fonts/ember.fnt"); err != nil {
		core.LogWarn("font not available, skipping text overlay: %v", err)
	} else {
		id, err := g.SystemManager.FontSystem.TextCreate("ember", "FPS: --",
			mgl32.Vec2{10, 10}, 1.0, mgl32.Vec3{1, 1, 1})
		if err != nil {
			return err
		}
		g.state.fpsText = id
		g.state.hasFont = true
	}

	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	if core.InputIsKeyDown(core.KEY_A) || core.InputIsKeyDown(core.KEY_LEFT) {
		g.state.rotation -= float32(90.0 * deltaTime)
	}
	if core.InputIsKeyDown(core.KEY_D) || core.InputIsKeyDown(core.KEY_RIGHT) {
		g.state.rotation += float32(90.0 * deltaTime)
	}

	if g.state.hasFont {
		fps, frameTime := core.MetricsFrame()
		if err := g.SystemManager.FontSystem.TextSetContent(g.state.fpsText,
			fmt.Sprintf("FPS: %5.1f (%4.1fms)", fps, frameTime)); err != nil {
			return err
		}
	}
	return nil
}

func (g *TestGame) Render(deltaTime float64) error {
	face, err := g.SystemManager.ResourceManager.GetTexture("face")
	if err != nil {
		return err
	}
	g.SystemManager.RendererSystem.DrawSprite(face,
		mgl32.Vec2{200, 200}, mgl32.Vec2{300, 400},
		g.state.rotation, mgl32.Vec3{0, 1, 0})
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	g.state.width = width
	g.state.height = height

	// Pixel coordinates changed, refresh the projection on the sprite
	// shader.
	shader, err := g.SystemManager.ResourceManager.GetShader("sprite")
	if err != nil {
		return nil
	}
	backend := g.SystemManager.RendererSystem.Backend()
	backend.ShaderSetMatrix4(shader, "projection", g.SystemManager.RendererSystem.Projection(), true)
	return nil
}
