package systems

import (
	"fmt"
	"sync"

	"github.com/emberengine/ember/engine/assets"
	"github.com/emberengine/ember/engine/assets/loaders"
	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/renderer"
	"github.com/emberengine/ember/engine/renderer/metadata"
)

// ResourceManager caches shaders and textures by name and owns their GPU
// handles. File and GPU work happens outside the cache locks; only map
// access is guarded, so concurrent loads of different resources do not
// serialize on each other.
type ResourceManager struct {
	backend renderer.Backend
	assets  *assets.AssetManager

	shaderMutex sync.Mutex
	shaders     map[string]*metadata.Shader

	textureMutex sync.Mutex
	textures     map[string]*metadata.Texture
}

func NewResourceManager(backend renderer.Backend, assetManager *assets.AssetManager) *ResourceManager {
	return &ResourceManager{
		backend:  backend,
		assets:   assetManager,
		shaders:  make(map[string]*metadata.Shader),
		textures: make(map[string]*metadata.Texture),
	}
}

// LoadShader reads the GLSL stages named by resourcePath (without
// extension, ".vs" and ".frag" required, ".geom" optional), compiles and
// links them, and stores the program under name. A failed load leaves any
// previously cached program in place. A successful load replaces it, and
// the replaced program is released on the GPU.
func (rm *ResourceManager) LoadShader(resourcePath, name string) (*metadata.Shader, error) {
	resource, err := rm.assets.LoadAsset(resourcePath, metadata.ResourceTypeShader, nil)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}
	data, ok := resource.Data.(*metadata.ShaderResourceData)
	if !ok {
		return nil, fmt.Errorf("shader %s: unexpected resource payload", name)
	}

	shader, err := rm.backend.ShaderCreate(&metadata.ShaderConfig{
		Name:           name,
		VertexSource:   data.VertexSource,
		FragmentSource: data.FragmentSource,
		GeometrySource: data.GeometrySource,
	})
	if err != nil {
		return nil, err
	}

	rm.shaderMutex.Lock()
	old, evicting := rm.shaders[name]
	rm.shaders[name] = shader
	rm.shaderMutex.Unlock()

	if evicting && old.ID != shader.ID {
		core.LogDebug("shader %s reloaded, releasing program %d", name, old.ID)
		rm.backend.ShaderDestroy(old)
	}
	return shader, nil
}

// GetShader returns the cached shader stored under name.
func (rm *ResourceManager) GetShader(name string) (*metadata.Shader, error) {
	rm.shaderMutex.Lock()
	shader, ok := rm.shaders[name]
	rm.shaderMutex.Unlock()
	if !ok {
		return nil, fmt.Errorf("shader %s is not loaded", name)
	}
	return shader, nil
}

// LoadTexture decodes the image at resourcePath, uploads it and stores
// the texture under name. alpha selects RGBA storage; without it the
// alpha channel is stripped and the texture is stored as RGB. A failed
// load leaves any previously cached texture in place.
func (rm *ResourceManager) LoadTexture(resourcePath string, alpha bool, name string) (*metadata.Texture, error) {
	resource, err := rm.assets.LoadAsset(resourcePath, metadata.ResourceTypeImage, &metadata.ImageResourceParams{})
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", name, err)
	}
	data, ok := resource.Data.(*metadata.ImageResourceData)
	if !ok {
		return nil, fmt.Errorf("texture %s: unexpected resource payload", name)
	}

	options := metadata.DefaultTextureOptions()
	pixels := data.Pixels
	if alpha {
		options = options.WithAlpha()
	} else {
		pixels = loaders.PixelsRGB(data)
	}

	texture, err := rm.backend.TextureCreate(pixels, data.Width, data.Height, options)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", name, err)
	}

	rm.textureMutex.Lock()
	old, evicting := rm.textures[name]
	rm.textures[name] = texture
	rm.textureMutex.Unlock()

	if evicting && old.ID != texture.ID {
		core.LogDebug("texture %s reloaded, releasing handle %d", name, old.ID)
		rm.backend.TexturesDestroy([]uint32{old.ID})
	}
	return texture, nil
}

// GetTexture returns the cached texture stored under name.
func (rm *ResourceManager) GetTexture(name string) (*metadata.Texture, error) {
	rm.textureMutex.Lock()
	texture, ok := rm.textures[name]
	rm.textureMutex.Unlock()
	if !ok {
		return nil, fmt.Errorf("texture %s is not loaded", name)
	}
	return texture, nil
}

// DisposeAll releases every cached shader and texture on the GPU and
// empties both caches. Shaders are released one program at a time;
// texture handles are batched into a single delete.
func (rm *ResourceManager) DisposeAll() {
	rm.shaderMutex.Lock()
	for _, shader := range rm.shaders {
		rm.backend.ShaderDestroy(shader)
	}
	rm.shaders = make(map[string]*metadata.Shader)
	rm.shaderMutex.Unlock()

	rm.textureMutex.Lock()
	ids := make([]uint32, 0, len(rm.textures))
	for _, texture := range rm.textures {
		ids = append(ids, texture.ID)
	}
	rm.textures = make(map[string]*metadata.Texture)
	rm.textureMutex.Unlock()

	rm.backend.TexturesDestroy(ids)
}
