package metadata

/** @brief Pixel formats a texture can be stored and sampled with. */
type TextureFormat int

const (
	TEXTURE_FORMAT_RGB TextureFormat = iota
	TEXTURE_FORMAT_RGBA
)

/** @brief Coordinate wrapping behaviour outside [0, 1]. */
type TextureWrap int

const (
	TEXTURE_WRAP_REPEAT TextureWrap = iota
	TEXTURE_WRAP_CLAMP_TO_EDGE
	TEXTURE_WRAP_MIRRORED_REPEAT
)

type TextureFilter int

const (
	TEXTURE_FILTER_LINEAR TextureFilter = iota
	TEXTURE_FILTER_NEAREST
)

/**
 * @brief Sampling and storage options applied when a texture is generated.
 */
type TextureOptions struct {
	/** @brief Format of the texture object on the GPU. */
	InternalFormat TextureFormat
	/** @brief Format of the source image data. */
	ImageFormat TextureFormat
	WrapS       TextureWrap
	WrapT       TextureWrap
	FilterMin   TextureFilter
	FilterMag   TextureFilter
}

// DefaultTextureOptions returns the options every texture starts from:
// RGB storage, repeat wrapping, linear filtering.
func DefaultTextureOptions() TextureOptions {
	return TextureOptions{
		InternalFormat: TEXTURE_FORMAT_RGB,
		ImageFormat:    TEXTURE_FORMAT_RGB,
		WrapS:          TEXTURE_WRAP_REPEAT,
		WrapT:          TEXTURE_WRAP_REPEAT,
		FilterMin:      TEXTURE_FILTER_LINEAR,
		FilterMag:      TEXTURE_FILTER_LINEAR,
	}
}

// WithAlpha switches both formats to RGBA for images carrying transparency.
func (o TextureOptions) WithAlpha() TextureOptions {
	o.InternalFormat = TEXTURE_FORMAT_RGBA
	o.ImageFormat = TEXTURE_FORMAT_RGBA
	return o
}

/**
 * @brief Represents a texture living on the GPU. Width and Height are set
 * once at generation time and never mutated afterwards.
 */
type Texture struct {
	/** @brief The GPU handle of the texture. */
	ID uint32
	/** @brief The texture Width in pixels. */
	Width uint32
	/** @brief The texture Height in pixels. */
	Height uint32
	/** @brief The options the texture was generated with. */
	Options TextureOptions
}
