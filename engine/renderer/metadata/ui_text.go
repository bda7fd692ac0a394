package metadata

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

/**
 * @brief A piece of screen-space text rendered with a bitmap font. Glyphs
 * are drawn as individual sprites from the font atlas.
 */
type UIText struct {
	UniqueID uuid.UUID
	FontName string
	Text     string
	Position mgl32.Vec2
	Scale    float32
	Color    mgl32.Vec3
}
