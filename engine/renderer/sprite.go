package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/math"
	"github.com/emberengine/ember/engine/renderer/metadata"
)

// QuadVertices returns the unit quad every sprite is drawn with, two
// triangles in a [0,1]x[0,1] square with matching texture coordinates.
func QuadVertices() []metadata.Vertex2D {
	return []metadata.Vertex2D{
		{PositionX: 0, PositionY: 1, TexcoordU: 0, TexcoordV: 1},
		{PositionX: 1, PositionY: 0, TexcoordU: 1, TexcoordV: 0},
		{PositionX: 0, PositionY: 0, TexcoordU: 0, TexcoordV: 0},

		{PositionX: 0, PositionY: 1, TexcoordU: 0, TexcoordV: 1},
		{PositionX: 1, PositionY: 1, TexcoordU: 1, TexcoordV: 1},
		{PositionX: 1, PositionY: 0, TexcoordU: 1, TexcoordV: 0},
	}
}

// ModelMatrix composes the sprite transform. The unit quad is scaled to
// size, rotated by rotateDegrees around its own center and translated so
// its top-left corner lands on position. At zero rotation the corners sit
// exactly at position and position+size.
func ModelMatrix(position, size mgl32.Vec2, rotateDegrees float32) mgl32.Mat4 {
	model := mgl32.Translate3D(position.X(), position.Y(), 0)
	model = model.Mul4(mgl32.Translate3D(0.5*size.X(), 0.5*size.Y(), 0))
	model = model.Mul4(mgl32.HomogRotate3DZ(math.DegToRad(rotateDegrees)))
	model = model.Mul4(mgl32.Translate3D(-0.5*size.X(), -0.5*size.Y(), 0))
	model = model.Mul4(mgl32.Scale3D(size.X(), size.Y(), 1))
	return model
}

// SpriteRenderer draws textured quads with a single sprite shader. The
// shader is owned by whoever created it; the renderer owns only its quad
// geometry.
type SpriteRenderer struct {
	backend Backend
	shader  *metadata.Shader
	quad    *metadata.Geometry
}

func NewSpriteRenderer(backend Backend, shader *metadata.Shader) (*SpriteRenderer, error) {
	quad, err := backend.GeometryCreate(QuadVertices())
	if err != nil {
		return nil, err
	}
	return &SpriteRenderer{
		backend: backend,
		shader:  shader,
		quad:    quad,
	}, nil
}

// DrawSprite renders texture at position with the given size, rotation in
// degrees and color tint.
func (sr *SpriteRenderer) DrawSprite(texture *metadata.Texture, position, size mgl32.Vec2, rotateDegrees float32, color mgl32.Vec3) {
	if sr.quad == nil {
		core.LogWarn("DrawSprite called on a destroyed sprite renderer")
		return
	}
	sr.backend.ShaderUse(sr.shader)
	sr.backend.ShaderSetMatrix4(sr.shader, "model", ModelMatrix(position, size, rotateDegrees), false)
	sr.backend.ShaderSetVector3f(sr.shader, "spriteColor", color, false)
	sr.backend.TextureBind(texture, 0)
	sr.backend.GeometryDraw(sr.quad)
}

// Destroy releases the quad geometry. Safe to call more than once.
func (sr *SpriteRenderer) Destroy() {
	if sr.quad != nil {
		sr.backend.GeometryDestroy(sr.quad)
		sr.quad = nil
	}
}
