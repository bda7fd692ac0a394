package metadata

/**
 * @brief Represents vertex data uploaded to the GPU. Sprite quads are
 * six vertices of interleaved position and texture coordinates.
 */
type Geometry struct {
	/** @brief The vertex array handle. */
	VAO uint32
	/** @brief The vertex buffer handle. */
	VBO uint32
	/** @brief The number of vertices to draw. */
	VertexCount int32
}

/**
 * @brief The per-vertex layout of sprite geometry. Position and texture
 * coordinates are packed into a single vec4 attribute.
 */
type Vertex2D struct {
	PositionX float32
	PositionY float32
	TexcoordU float32
	TexcoordV float32
}
