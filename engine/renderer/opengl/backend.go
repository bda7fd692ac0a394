// Package opengl implements the renderer backend on OpenGL 4.1 core.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/renderer/metadata"
)

type OpenGL struct {
	appName   string
	appWidth  uint32
	appHeight uint32
}

func New() *OpenGL {
	return &OpenGL{}
}

// Initialize loads the OpenGL function pointers from the current context
// and sets the global state sprites rely on. A context must be current on
// the calling thread.
func (o *OpenGL) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL bindings: %w", err)
	}

	o.appName = appName
	o.appWidth = appWidth
	o.appHeight = appHeight

	core.LogInfo("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))
	core.LogInfo("OpenGL renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Viewport(0, 0, int32(appWidth), int32(appHeight))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return nil
}

func (o *OpenGL) Shutdown() error {
	return nil
}

func (o *OpenGL) Resized(width, height uint16) error {
	o.appWidth = uint32(width)
	o.appHeight = uint32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
	return nil
}

func (o *OpenGL) BeginFrame(clearColor mgl32.Vec4) error {
	gl.ClearColor(clearColor.X(), clearColor.Y(), clearColor.Z(), clearColor.W())
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return nil
}

// EndFrame is a no-op. Buffer swapping belongs to the windowing layer.
func (o *OpenGL) EndFrame() error {
	return nil
}

func compileStage(stage metadata.ShaderStage, source string) (uint32, error) {
	var glStage uint32
	switch stage {
	case metadata.SHADER_STAGE_VERTEX:
		glStage = gl.VERTEX_SHADER
	case metadata.SHADER_STAGE_FRAGMENT:
		glStage = gl.FRAGMENT_SHADER
	case metadata.SHADER_STAGE_GEOMETRY:
		glStage = gl.GEOMETRY_SHADER
	default:
		return 0, fmt.Errorf("unknown shader stage %d", stage)
	}

	shader := gl.CreateShader(glStage)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &infoLog[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader compilation failed: %s", stage, string(infoLog))
	}
	return shader, nil
}

// ShaderCreate compiles every stage of the config and links them into a
// program. The config must have been validated before the sources touch
// the GPU.
func (o *OpenGL) ShaderCreate(config *metadata.ShaderConfig) (*metadata.Shader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	vertex, err := compileStage(metadata.SHADER_STAGE_VERTEX, config.VertexSource)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertex)

	fragment, err := compileStage(metadata.SHADER_STAGE_FRAGMENT, config.FragmentSource)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragment)

	var geometry uint32
	if config.HasGeometryStage() {
		geometry, err = compileStage(metadata.SHADER_STAGE_GEOMETRY, config.GeometrySource)
		if err != nil {
			return nil, err
		}
		defer gl.DeleteShader(geometry)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	if config.HasGeometryStage() {
		gl.AttachShader(program, geometry)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &infoLog[0])
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("shader %s link failed: %s", config.Name, string(infoLog))
	}

	return &metadata.Shader{ID: program}, nil
}

func (o *OpenGL) ShaderDestroy(shader *metadata.Shader) {
	gl.DeleteProgram(shader.ID)
}

func (o *OpenGL) ShaderUse(shader *metadata.Shader) {
	gl.UseProgram(shader.ID)
}

// uniformLocation resolves a uniform by name on every call. Locations at
// or above zero are valid.
func (o *OpenGL) uniformLocation(shader *metadata.Shader, name string) (int32, bool) {
	loc := gl.GetUniformLocation(shader.ID, gl.Str(name+"\x00"))
	if loc < 0 {
		core.LogWarn("uniform %s not found in shader %d", name, shader.ID)
		return 0, false
	}
	return loc, true
}

func (o *OpenGL) ShaderSetInteger(shader *metadata.Shader, name string, value int32, useShader bool) {
	if useShader {
		o.ShaderUse(shader)
	}
	if loc, ok := o.uniformLocation(shader, name); ok {
		gl.Uniform1i(loc, value)
	}
}

func (o *OpenGL) ShaderSetFloat(shader *metadata.Shader, name string, value float32, useShader bool) {
	if useShader {
		o.ShaderUse(shader)
	}
	if loc, ok := o.uniformLocation(shader, name); ok {
		gl.Uniform1f(loc, value)
	}
}

func (o *OpenGL) ShaderSetVector2f(shader *metadata.Shader, name string, value mgl32.Vec2, useShader bool) {
	if useShader {
		o.ShaderUse(shader)
	}
	if loc, ok := o.uniformLocation(shader, name); ok {
		gl.Uniform2f(loc, value.X(), value.Y())
	}
}

func (o *OpenGL) ShaderSetVector3f(shader *metadata.Shader, name string, value mgl32.Vec3, useShader bool) {
	if useShader {
		o.ShaderUse(shader)
	}
	if loc, ok := o.uniformLocation(shader, name); ok {
		gl.Uniform3f(loc, value.X(), value.Y(), value.Z())
	}
}

func (o *OpenGL) ShaderSetVector4f(shader *metadata.Shader, name string, value mgl32.Vec4, useShader bool) {
	if useShader {
		o.ShaderUse(shader)
	}
	if loc, ok := o.uniformLocation(shader, name); ok {
		gl.Uniform4f(loc, value.X(), value.Y(), value.Z(), value.W())
	}
}

func (o *OpenGL) ShaderSetMatrix4(shader *metadata.Shader, name string, value mgl32.Mat4, useShader bool) {
	if useShader {
		o.ShaderUse(shader)
	}
	if loc, ok := o.uniformLocation(shader, name); ok {
		gl.UniformMatrix4fv(loc, 1, false, &value[0])
	}
}

func glInternalFormat(format metadata.TextureFormat) int32 {
	if format == metadata.TEXTURE_FORMAT_RGBA {
		return gl.RGBA
	}
	return gl.RGB
}

func glImageFormat(format metadata.TextureFormat) uint32 {
	if format == metadata.TEXTURE_FORMAT_RGBA {
		return gl.RGBA
	}
	return gl.RGB
}

func glWrap(wrap metadata.TextureWrap) int32 {
	switch wrap {
	case metadata.TEXTURE_WRAP_CLAMP_TO_EDGE:
		return gl.CLAMP_TO_EDGE
	case metadata.TEXTURE_WRAP_MIRRORED_REPEAT:
		return gl.MIRRORED_REPEAT
	}
	return gl.REPEAT
}

func glFilter(filter metadata.TextureFilter) int32 {
	if filter == metadata.TEXTURE_FILTER_NEAREST {
		return gl.NEAREST
	}
	return gl.LINEAR
}

// TextureCreate uploads pixel data and records the dimensions on the
// returned texture. The dimensions are fixed for the texture's lifetime.
func (o *OpenGL) TextureCreate(pixels []uint8, width, height uint32, options metadata.TextureOptions) (*metadata.Texture, error) {
	if len(pixels) == 0 {
		return nil, fmt.Errorf("texture has no pixel data")
	}

	texture := &metadata.Texture{
		Width:   width,
		Height:  height,
		Options: options,
	}

	gl.GenTextures(1, &texture.ID)
	gl.BindTexture(gl.TEXTURE_2D, texture.ID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, glInternalFormat(options.InternalFormat),
		int32(width), int32(height), 0, glImageFormat(options.ImageFormat),
		gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(options.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(options.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(options.FilterMin))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(options.FilterMag))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return texture, nil
}

func (o *OpenGL) TextureBind(texture *metadata.Texture, unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture.ID)
}

// TexturesDestroy deletes every handle with a single call.
func (o *OpenGL) TexturesDestroy(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	gl.DeleteTextures(int32(len(ids)), &ids[0])
}

func (o *OpenGL) GeometryCreate(vertices []metadata.Vertex2D) (*metadata.Geometry, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("geometry has no vertices")
	}

	data := make([]float32, 0, len(vertices)*4)
	for _, v := range vertices {
		data = append(data, v.PositionX, v.PositionY, v.TexcoordU, v.TexcoordV)
	}

	geometry := &metadata.Geometry{
		VertexCount: int32(len(vertices)),
	}

	gl.GenVertexArrays(1, &geometry.VAO)
	gl.GenBuffers(1, &geometry.VBO)

	gl.BindBuffer(gl.ARRAY_BUFFER, geometry.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.BindVertexArray(geometry.VAO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 4*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return geometry, nil
}

func (o *OpenGL) GeometryDestroy(geometry *metadata.Geometry) {
	gl.DeleteBuffers(1, &geometry.VBO)
	gl.DeleteVertexArrays(1, &geometry.VAO)
}

func (o *OpenGL) GeometryDraw(geometry *metadata.Geometry) {
	gl.BindVertexArray(geometry.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, geometry.VertexCount)
	gl.BindVertexArray(0)
}
