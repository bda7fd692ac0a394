package systems

import (
	"github.com/emberengine/ember/engine/assets"
	"github.com/emberengine/ember/engine/renderer"
)

// SystemManager wires the engine subsystems together and owns their
// teardown order.
type SystemManager struct {
	AssetManager    *assets.AssetManager
	ResourceManager *ResourceManager
	RendererSystem  *RendererSystem
	FontSystem      *FontSystem
}

func NewSystemManager(backend renderer.Backend, appName string, width, height uint32, assetsDir string) (*SystemManager, error) {
	am := assets.NewAssetManager()
	if err := am.Initialize(assetsDir); err != nil {
		return nil, err
	}

	rs, err := NewRendererSystem(backend, appName, width, height)
	if err != nil {
		return nil, err
	}

	rm := NewResourceManager(backend, am)

	return &SystemManager{
		AssetManager:    am,
		ResourceManager: rm,
		RendererSystem:  rs,
	}, nil
}

// CreateFontSystem attaches the font system once the sprite shader is
// available. Optional; text rendering is skipped when absent.
func (sm *SystemManager) CreateFontSystem(shaderName string) error {
	shader, err := sm.ResourceManager.GetShader(shaderName)
	if err != nil {
		return err
	}
	sm.FontSystem = NewFontSystem(sm.RendererSystem, sm.ResourceManager, sm.AssetManager, shader)
	return nil
}

// Shutdown tears the systems down in reverse dependency order. GPU
// resources go first, the renderer last so the context is still valid
// while handles are released.
func (sm *SystemManager) Shutdown() error {
	if sm.FontSystem != nil {
		if err := sm.FontSystem.Shutdown(); err != nil {
			return err
		}
	}
	sm.ResourceManager.DisposeAll()
	if err := sm.AssetManager.Shutdown(); err != nil {
		return err
	}
	return sm.RendererSystem.Shutdown()
}
