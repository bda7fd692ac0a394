package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emberengine/ember/engine/renderer/metadata"
)

const (
	vertexExtension   = ".vs"
	fragmentExtension = ".frag"
	geometryExtension = ".geom"
)

// ShaderLoader loads GLSL source pairs. The path names the shader without
// an extension; "<path>.vs" and "<path>.frag" must exist, "<path>.geom"
// is picked up when present.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	vertexSource, err := os.ReadFile(path + vertexExtension)
	if err != nil {
		return nil, fmt.Errorf("failed to read vertex shader: %w", err)
	}
	fragmentSource, err := os.ReadFile(path + fragmentExtension)
	if err != nil {
		return nil, fmt.Errorf("failed to read fragment shader: %w", err)
	}

	data := &metadata.ShaderResourceData{
		VertexSource:   string(vertexSource),
		FragmentSource: string(fragmentSource),
	}

	geometryPath := path + geometryExtension
	if _, err := os.Stat(geometryPath); err == nil {
		geometrySource, err := os.ReadFile(geometryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read geometry shader: %w", err)
		}
		data.GeometrySource = string(geometrySource)
	}

	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(data.VertexSource) + len(data.FragmentSource) + len(data.GeometrySource)),
		Data:     data,
	}, nil
}

func (sl *ShaderLoader) Unload(*metadata.Resource) error {
	return nil
}
