package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/emberengine/ember/engine/assets/loaders"
	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetManager resolves asset names against a root directory and hands
// them to the loader registered for their type. Assets are read from disk
// on every load; nothing is cached here.
type AssetManager struct {
	rootPath string
	assets   map[string]AssetInfo
	loaders  map[metadata.ResourceType]Loader

	mutex sync.RWMutex
}

func NewAssetManager() *AssetManager {
	return &AssetManager{
		assets:  make(map[string]AssetInfo),
		loaders: make(map[metadata.ResourceType]Loader),
	}
}

func (am *AssetManager) Initialize(assetsDir string) error {
	info, err := os.Stat(assetsDir)
	if err != nil {
		return fmt.Errorf("assets directory %s: %w", assetsDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("assets path %s is not a directory", assetsDir)
	}
	am.rootPath = assetsDir

	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(metadata.ResourceTypeBitmapFont, &loaders.BitmapFontLoader{})

	if err := am.index(assetsDir); err != nil {
		return err
	}

	core.LogInfo("Asset manager initialized with root %s (%d files)", assetsDir, len(am.assets))
	return nil
}

func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// index walks the asset root once and records what is there. The index is
// informational; loads always go to disk.
func (am *AssetManager) index(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		am.assets[rel] = AssetInfo{
			Path: path,
			Type: assetTypeForExtension(filepath.Ext(path)),
		}
		return nil
	})
}

func assetTypeForExtension(ext string) metadata.ResourceType {
	switch strings.ToLower(ext) {
	case ".vs", ".frag", ".geom":
		return metadata.ResourceTypeShader
	case ".fnt":
		return metadata.ResourceTypeBitmapFont
	default:
		return metadata.ResourceTypeImage
	}
}

// FullPath resolves a name relative to the asset root.
func (am *AssetManager) FullPath(name string) string {
	return filepath.Join(am.rootPath, name)
}

// LoadAsset loads the named asset with the loader registered for its
// type. The name is relative to the asset root.
func (am *AssetManager) LoadAsset(name string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	loader, ok := am.loaders[assetType]
	if !ok {
		return nil, fmt.Errorf("no loader registered for asset type %s", assetType)
	}

	resource, err := loader.Load(am.FullPath(name), assetType, params)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	if info, ok := am.assets[name]; ok {
		info.LastLoaded = time.Now()
		am.assets[name] = info
	}
	am.mutex.Unlock()

	return resource, nil
}

func (am *AssetManager) UnloadAsset(assetType metadata.ResourceType, resource *metadata.Resource) error {
	loader, ok := am.loaders[assetType]
	if !ok {
		return fmt.Errorf("no loader registered for asset type %s", assetType)
	}
	return loader.Unload(resource)
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets = make(map[string]AssetInfo)
	return nil
}
