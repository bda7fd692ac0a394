package metadata

import (
	"fmt"
	"strings"
)

type ShaderStage int

const (
	SHADER_STAGE_VERTEX ShaderStage = iota
	SHADER_STAGE_FRAGMENT
	SHADER_STAGE_GEOMETRY
)

func (s ShaderStage) String() string {
	switch s {
	case SHADER_STAGE_VERTEX:
		return "vertex"
	case SHADER_STAGE_FRAGMENT:
		return "fragment"
	case SHADER_STAGE_GEOMETRY:
		return "geometry"
	}
	return "unknown"
}

/**
 * @brief Configuration for building a shader program. VertexSource and
 * FragmentSource are required. GeometrySource is optional and empty when
 * the program has no geometry stage.
 */
type ShaderConfig struct {
	Name           string
	VertexSource   string
	FragmentSource string
	GeometrySource string
}

// Validate checks every present stage source for embedded NUL bytes before
// anything is handed to the GPU. Sources cross the API boundary as
// C strings, so an interior NUL would silently truncate the program.
func (c *ShaderConfig) Validate() error {
	stages := []struct {
		stage  ShaderStage
		source string
	}{
		{SHADER_STAGE_VERTEX, c.VertexSource},
		{SHADER_STAGE_FRAGMENT, c.FragmentSource},
		{SHADER_STAGE_GEOMETRY, c.GeometrySource},
	}
	for _, s := range stages {
		if s.stage == SHADER_STAGE_GEOMETRY && s.source == "" {
			continue
		}
		if s.source == "" {
			return fmt.Errorf("shader %s: %s stage source is empty", c.Name, s.stage)
		}
		if strings.ContainsRune(s.source, 0) {
			return fmt.Errorf("shader %s: %s stage source contains a NUL byte", c.Name, s.stage)
		}
	}
	return nil
}

// HasGeometryStage reports whether a geometry stage should be compiled.
func (c *ShaderConfig) HasGeometryStage() bool {
	return c.GeometrySource != ""
}

/**
 * @brief Represents a linked shader program on the GPU.
 */
type Shader struct {
	/** @brief The GPU handle of the linked program. */
	ID uint32
}
