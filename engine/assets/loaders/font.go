package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/fzipp/bmfont"

	"github.com/emberengine/ember/engine/renderer/metadata"
)

// BitmapFontLoader reads AngelCode ".fnt" descriptors. Page images are
// resolved against the descriptor's directory but decoded separately, so
// the caller can push them through the texture path.
type BitmapFontLoader struct{}

func (fl *BitmapFontLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	descriptor, err := bmfont.LoadDescriptor(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load bitmap font %s: %w", path, err)
	}
	if len(descriptor.Pages) == 0 {
		return nil, fmt.Errorf("bitmap font %s has no pages", path)
	}

	dir := filepath.Dir(path)
	pagePaths := make([]string, 0, len(descriptor.Pages))
	for _, page := range descriptor.Pages {
		pagePaths = append(pagePaths, filepath.Join(dir, page.File))
	}

	return &metadata.Resource{
		Name:     descriptor.Info.Face,
		FullPath: path,
		DataSize: uint64(len(descriptor.Chars)),
		Data: &metadata.BitmapFontResourceData{
			Descriptor: descriptor,
			PagePaths:  pagePaths,
		},
	}, nil
}

func (fl *BitmapFontLoader) Unload(resource *metadata.Resource) error {
	if resource.Data != nil {
		resource.Data = nil
		resource.DataSize = 0
		resource.FullPath = ""
	}
	return nil
}
