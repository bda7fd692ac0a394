package engine

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/math"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Directory holding shaders, textures and fonts.
	AssetsDir string `toml:"assets_dir"`
	// Whether buffer swaps wait for the vertical blank.
	Vsync bool `toml:"vsync"`
	// Frame clear color as RGB or RGBA components in [0, 1]. Empty means
	// opaque black.
	ClearColor []float32 `toml:"clear_color"`
	LogLevel   string    `toml:"log_level"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  800,
		StartHeight: 600,
		Name:        "Ember",
		AssetsDir:   "assets",
		Vsync:       true,
		LogLevel:    "info",
	}
}

// LoadApplicationConfig reads a TOML config file over the defaults.
// Fields the file does not set keep their default value.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if config.StartWidth == 0 || config.StartHeight == 0 {
		return nil, fmt.Errorf("config %s: window dimensions must be positive", path)
	}
	if n := len(config.ClearColor); n != 0 && n != 3 && n != 4 {
		return nil, fmt.Errorf("config %s: clear_color needs 3 or 4 components, got %d", path, n)
	}
	return config, nil
}

// ClearColorVec4 returns the configured clear color, opaque black when
// unset. Components are clamped to [0, 1]; a three-component color gets
// full alpha.
func (c *ApplicationConfig) ClearColorVec4() mgl32.Vec4 {
	out := mgl32.Vec4{0, 0, 0, 1}
	for i, component := range c.ClearColor {
		out[i] = math.Clamp(component, 0, 1)
	}
	return out
}

func (c *ApplicationConfig) CoreLogLevel() core.LogLevel {
	switch c.LogLevel {
	case "debug":
		return core.DebugLevel
	case "warn":
		return core.WarnLevel
	case "error":
		return core.ErrorLevel
	default:
		return core.InfoLevel
	}
}
