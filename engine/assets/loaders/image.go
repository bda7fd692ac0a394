package loaders

import (
	"fmt"
	"image"
	"os"

	// Register the decoders for every image format textures may come in.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"golang.org/x/image/draw"

	"github.com/emberengine/ember/engine/renderer/metadata"
)

type ImageLoader struct{}

// decodeImage reads and decodes an image file into 8-bit RGBA pixels.
// Formats with more than 8 bits per channel are rejected rather than
// silently narrowed.
func decodeImage(path string, flip bool) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		return nil, fmt.Errorf("image %s: 16-bit %s images are not supported", path, format)
	}

	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)

	if flip {
		flipVertical(out)
	}
	return out, nil
}

func flipVertical(img *image.NRGBA) {
	height := img.Rect.Dy()
	row := make([]uint8, img.Stride)
	for y := 0; y < height/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(height-1-y)*img.Stride : (height-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	flip := false
	if typedParams, ok := params.(*metadata.ImageResourceParams); ok {
		flip = typedParams.FlipY
	}

	img, err := decodeImage(path, flip)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &metadata.Resource{
		Name:     "image",
		FullPath: path,
		DataSize: uint64(len(img.Pix)),
		Data: &metadata.ImageResourceData{
			ChannelCount: 4,
			Width:        uint32(bounds.Dx()),
			Height:       uint32(bounds.Dy()),
			Pixels:       img.Pix,
		},
	}, nil
}

func (il *ImageLoader) Unload(*metadata.Resource) error {
	return nil
}

// PixelsRGB strips the alpha channel from RGBA pixel data for textures
// stored without transparency.
func PixelsRGB(data *metadata.ImageResourceData) []uint8 {
	out := make([]uint8, 0, int(data.Width)*int(data.Height)*3)
	for i := 0; i+3 < len(data.Pixels); i += 4 {
		out = append(out, data.Pixels[i], data.Pixels[i+1], data.Pixels[i+2])
	}
	return out
}
