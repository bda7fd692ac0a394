package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/emberengine/ember/engine/renderer/metadata"
)

// Backend is the boundary between the renderer frontend and the GPU API.
// Every call that touches GPU state goes through here, which keeps the
// frontend and the resource caches testable without a live context.
type Backend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint16) error
	BeginFrame(clearColor mgl32.Vec4) error
	EndFrame() error

	ShaderCreate(config *metadata.ShaderConfig) (*metadata.Shader, error)
	ShaderDestroy(shader *metadata.Shader)
	ShaderUse(shader *metadata.Shader)
	ShaderSetInteger(shader *metadata.Shader, name string, value int32, useShader bool)
	ShaderSetFloat(shader *metadata.Shader, name string, value float32, useShader bool)
	ShaderSetVector2f(shader *metadata.Shader, name string, value mgl32.Vec2, useShader bool)
	ShaderSetVector3f(shader *metadata.Shader, name string, value mgl32.Vec3, useShader bool)
	ShaderSetVector4f(shader *metadata.Shader, name string, value mgl32.Vec4, useShader bool)
	ShaderSetMatrix4(shader *metadata.Shader, name string, value mgl32.Mat4, useShader bool)

	TextureCreate(pixels []uint8, width, height uint32, options metadata.TextureOptions) (*metadata.Texture, error)
	TextureBind(texture *metadata.Texture, unit uint32)
	TexturesDestroy(ids []uint32)

	GeometryCreate(vertices []metadata.Vertex2D) (*metadata.Geometry, error)
	GeometryDestroy(geometry *metadata.Geometry)
	GeometryDraw(geometry *metadata.Geometry)
}
