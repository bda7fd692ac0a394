package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/emberengine/ember/engine/renderer"
	"github.com/emberengine/ember/engine/renderer/metadata"
)

// RendererSystem owns the backend and the sprite pipeline built on it.
type RendererSystem struct {
	backend renderer.Backend
	sprite  *renderer.SpriteRenderer

	width  uint32
	height uint32
}

func NewRendererSystem(backend renderer.Backend, appName string, width, height uint32) (*RendererSystem, error) {
	if err := backend.Initialize(appName, width, height); err != nil {
		return nil, err
	}
	return &RendererSystem{
		backend: backend,
		width:   width,
		height:  height,
	}, nil
}

// CreateSpritePipeline builds the quad geometry and ties the sprite
// shader to it. Must be called once before any sprite is drawn.
func (rs *RendererSystem) CreateSpritePipeline(shader *metadata.Shader) error {
	sprite, err := renderer.NewSpriteRenderer(rs.backend, shader)
	if err != nil {
		return err
	}
	rs.sprite = sprite
	return nil
}

// Projection returns the orthographic projection mapping pixel
// coordinates to clip space, origin at the top-left.
func (rs *RendererSystem) Projection() mgl32.Mat4 {
	return mgl32.Ortho(0, float32(rs.width), float32(rs.height), 0, -1, 1)
}

func (rs *RendererSystem) Backend() renderer.Backend {
	return rs.backend
}

func (rs *RendererSystem) BeginFrame(clearColor mgl32.Vec4) error {
	return rs.backend.BeginFrame(clearColor)
}

func (rs *RendererSystem) EndFrame() error {
	return rs.backend.EndFrame()
}

func (rs *RendererSystem) OnResize(width, height uint16) error {
	rs.width = uint32(width)
	rs.height = uint32(height)
	return rs.backend.Resized(width, height)
}

func (rs *RendererSystem) DrawSprite(texture *metadata.Texture, position, size mgl32.Vec2, rotateDegrees float32, color mgl32.Vec3) {
	rs.sprite.DrawSprite(texture, position, size, rotateDegrees, color)
}

func (rs *RendererSystem) Shutdown() error {
	if rs.sprite != nil {
		rs.sprite.Destroy()
		rs.sprite = nil
	}
	return rs.backend.Shutdown()
}
