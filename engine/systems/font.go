package systems

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/emberengine/ember/engine/assets"
	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/renderer"
	"github.com/emberengine/ember/engine/renderer/metadata"
)

type fontGlyph struct {
	x, y          int
	width, height int
	xOffset       int
	yOffset       int
	xAdvance      int
}

type bitmapFont struct {
	atlas      *metadata.Texture
	glyphs     map[rune]*fontGlyph
	geometries map[rune]*metadata.Geometry
	atlasW     int
	atlasH     int
	lineHeight int
}

// FontSystem draws screen-space text with bitmap fonts. Glyphs are
// rendered through the sprite pipeline as unit quads carrying the
// glyph's atlas sub-rectangle in their texture coordinates.
type FontSystem struct {
	rendererSystem *RendererSystem
	resources      *ResourceManager
	assets         *assets.AssetManager
	shader         *metadata.Shader

	fonts map[string]*bitmapFont
	texts map[uuid.UUID]*metadata.UIText
}

func NewFontSystem(rendererSystem *RendererSystem, resources *ResourceManager, assetManager *assets.AssetManager, shader *metadata.Shader) *FontSystem {
	return &FontSystem{
		rendererSystem: rendererSystem,
		resources:      resources,
		assets:         assetManager,
		shader:         shader,
		fonts:          make(map[string]*bitmapFont),
		texts:          make(map[uuid.UUID]*metadata.UIText),
	}
}

// LoadFont reads a ".fnt" descriptor and uploads its first atlas page.
// Multi-page fonts are not supported. The atlas texture is owned by the
// resource manager under "font_<name>".
func (fs *FontSystem) LoadFont(name, resourceName string) error {
	resource, err := fs.assets.LoadAsset(resourceName, metadata.ResourceTypeBitmapFont, nil)
	if err != nil {
		return err
	}
	data, ok := resource.Data.(*metadata.BitmapFontResourceData)
	if !ok {
		return fmt.Errorf("font %s: unexpected resource payload", name)
	}
	if len(data.PagePaths) != 1 {
		return fmt.Errorf("font %s: expected a single atlas page, found %d", name, len(data.PagePaths))
	}

	var pageFile string
	for _, page := range data.Descriptor.Pages {
		pageFile = page.File
	}
	pageResource := filepath.Join(filepath.Dir(resourceName), pageFile)
	atlas, err := fs.resources.LoadTexture(pageResource, true, "font_"+name)
	if err != nil {
		return err
	}

	font := &bitmapFont{
		atlas:      atlas,
		glyphs:     make(map[rune]*fontGlyph),
		geometries: make(map[rune]*metadata.Geometry),
		atlasW:     int(data.Descriptor.Common.ScaleW),
		atlasH:     int(data.Descriptor.Common.ScaleH),
		lineHeight: int(data.Descriptor.Common.LineHeight),
	}
	for _, c := range data.Descriptor.Chars {
		font.glyphs[rune(c.ID)] = &fontGlyph{
			x:        int(c.X),
			y:        int(c.Y),
			width:    int(c.Width),
			height:   int(c.Height),
			xOffset:  int(c.XOffset),
			yOffset:  int(c.YOffset),
			xAdvance: int(c.XAdvance),
		}
	}

	fs.fonts[name] = font
	core.LogInfo("Loaded bitmap font %s (%d glyphs)", name, len(font.glyphs))
	return nil
}

// TextCreate registers a piece of text and returns its handle.
func (fs *FontSystem) TextCreate(fontName, text string, position mgl32.Vec2, scale float32, color mgl32.Vec3) (uuid.UUID, error) {
	if _, ok := fs.fonts[fontName]; !ok {
		return uuid.Nil, fmt.Errorf("font %s is not loaded", fontName)
	}
	id := uuid.New()
	fs.texts[id] = &metadata.UIText{
		UniqueID: id,
		FontName: fontName,
		Text:     text,
		Position: position,
		Scale:    scale,
		Color:    color,
	}
	return id, nil
}

func (fs *FontSystem) TextSetContent(id uuid.UUID, text string) error {
	uiText, ok := fs.texts[id]
	if !ok {
		return fmt.Errorf("text %s does not exist", id)
	}
	uiText.Text = text
	return nil
}

func (fs *FontSystem) TextSetPosition(id uuid.UUID, position mgl32.Vec2) error {
	uiText, ok := fs.texts[id]
	if !ok {
		return fmt.Errorf("text %s does not exist", id)
	}
	uiText.Position = position
	return nil
}

func (fs *FontSystem) TextDestroy(id uuid.UUID) {
	delete(fs.texts, id)
}

// glyphGeometry returns the quad for a glyph, building and caching it on
// first use. Positions span the unit square; texture coordinates address
// the glyph's sub-rectangle of the atlas.
func (fs *FontSystem) glyphGeometry(font *bitmapFont, r rune) (*metadata.Geometry, error) {
	if geometry, ok := font.geometries[r]; ok {
		return geometry, nil
	}
	glyph := font.glyphs[r]

	u0 := float32(glyph.x) / float32(font.atlasW)
	v0 := float32(glyph.y) / float32(font.atlasH)
	u1 := float32(glyph.x+glyph.width) / float32(font.atlasW)
	v1 := float32(glyph.y+glyph.height) / float32(font.atlasH)

	geometry, err := fs.rendererSystem.Backend().GeometryCreate([]metadata.Vertex2D{
		{PositionX: 0, PositionY: 1, TexcoordU: u0, TexcoordV: v1},
		{PositionX: 1, PositionY: 0, TexcoordU: u1, TexcoordV: v0},
		{PositionX: 0, PositionY: 0, TexcoordU: u0, TexcoordV: v0},

		{PositionX: 0, PositionY: 1, TexcoordU: u0, TexcoordV: v1},
		{PositionX: 1, PositionY: 1, TexcoordU: u1, TexcoordV: v1},
		{PositionX: 1, PositionY: 0, TexcoordU: u1, TexcoordV: v0},
	})
	if err != nil {
		return nil, err
	}
	font.geometries[r] = geometry
	return geometry, nil
}

// Draw renders every registered text. Call between BeginFrame and
// EndFrame.
func (fs *FontSystem) Draw() {
	backend := fs.rendererSystem.Backend()
	for _, uiText := range fs.texts {
		font, ok := fs.fonts[uiText.FontName]
		if !ok {
			core.LogWarn("text %s references unknown font %s", uiText.UniqueID, uiText.FontName)
			continue
		}

		backend.ShaderUse(fs.shader)
		backend.TextureBind(font.atlas, 0)

		penX := uiText.Position.X()
		penY := uiText.Position.Y()
		for _, r := range uiText.Text {
			if r == '\n' {
				penX = uiText.Position.X()
				penY += float32(font.lineHeight) * uiText.Scale
				continue
			}
			glyph, ok := font.glyphs[r]
			if !ok {
				continue
			}
			geometry, err := fs.glyphGeometry(font, r)
			if err != nil {
				core.LogError("failed to build glyph geometry for %q: %v", r, err)
				continue
			}

			position := mgl32.Vec2{
				penX + float32(glyph.xOffset)*uiText.Scale,
				penY + float32(glyph.yOffset)*uiText.Scale,
			}
			size := mgl32.Vec2{
				float32(glyph.width) * uiText.Scale,
				float32(glyph.height) * uiText.Scale,
			}
			backend.ShaderSetMatrix4(fs.shader, "model", renderer.ModelMatrix(position, size, 0), false)
			backend.ShaderSetVector3f(fs.shader, "spriteColor", uiText.Color, false)
			backend.GeometryDraw(geometry)

			penX += float32(glyph.xAdvance) * uiText.Scale
		}
	}
}

// Shutdown destroys every cached glyph geometry. Atlas textures belong to
// the resource manager and are released with its caches.
func (fs *FontSystem) Shutdown() error {
	backend := fs.rendererSystem.Backend()
	for _, font := range fs.fonts {
		for _, geometry := range font.geometries {
			backend.GeometryDestroy(geometry)
		}
		font.geometries = make(map[rune]*metadata.Geometry)
	}
	fs.fonts = make(map[string]*bitmapFont)
	fs.texts = make(map[uuid.UUID]*metadata.UIText)
	return nil
}
