package metadata

import "github.com/fzipp/bmfont"

type ResourceType int

const (
	ResourceTypeImage ResourceType = iota
	ResourceTypeShader
	ResourceTypeBitmapFont
)

func (r ResourceType) String() string {
	switch r {
	case ResourceTypeImage:
		return "image"
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeBitmapFont:
		return "bitmap_font"
	}
	return "unknown"
}

/**
 * @brief A generic resource handed back by an asset loader. Data holds the
 * loader-specific payload.
 */
type Resource struct {
	Name     string
	FullPath string
	DataSize uint64
	Data     interface{}
}

type ImageResourceParams struct {
	FlipY bool
}

// ImageResourceData always carries four channels per pixel in RGBA order.
type ImageResourceData struct {
	ChannelCount uint8
	Width        uint32
	Height       uint32
	Pixels       []uint8
}

type ShaderResourceData struct {
	VertexSource   string
	FragmentSource string
	GeometrySource string
}

type BitmapFontResourceData struct {
	Descriptor *bmfont.Descriptor
	// PagePaths are the font atlas image files, resolved against the
	// descriptor's directory.
	PagePaths []string
}
