package systems

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/emberengine/ember/engine/assets"
	"github.com/emberengine/ember/engine/renderer/metadata"
	"github.com/google/uuid"
)

const testFnt = `info face="Test Mono" size=8 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=0 aa=1 padding=0,0,0,0 spacing=0,0 outline=0
common lineHeight=10 base=8 scaleW=32 scaleH=16 pages=1 packed=0 alphaChnl=1 redChnl=0 greenChnl=0 blueChnl=0
page id=0 file="test.png"
chars count=3
char id=65 x=0 y=0 width=8 height=8 xoffset=0 yoffset=0 xadvance=6 page=0 chnl=15
char id=66 x=8 y=0 width=8 height=8 xoffset=0 yoffset=0 xadvance=6 page=0 chnl=15
char id=32 x=16 y=0 width=8 height=8 xoffset=0 yoffset=0 xadvance=6 page=0 chnl=15
`

func newFontAssets(t *testing.T) *assets.AssetManager {
	t.Helper()
	dir := t.TempDir()

	fontDir := filepath.Join(dir, "fonts")
	if err := os.MkdirAll(fontDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(fontDir, "test.fnt"), []byte(testFnt), 0o644); err != nil {
		t.Fatal(err)
	}
	writeTestPNG(t, filepath.Join(fontDir, "test.png"), 32, 16)

	am := assets.NewAssetManager()
	if err := am.Initialize(dir); err != nil {
		t.Fatalf("asset manager init: %v", err)
	}
	return am
}

func newFontSystem(t *testing.T, backend *fakeBackend) *FontSystem {
	t.Helper()
	am := newFontAssets(t)
	rs, err := NewRendererSystem(backend, "test", 100, 100)
	if err != nil {
		t.Fatalf("renderer system: %v", err)
	}
	rm := NewResourceManager(backend, am)
	return NewFontSystem(rs, rm, am, &metadata.Shader{ID: 1})
}

func TestFontSystemLoadFont(t *testing.T) {
	backend := &fakeBackend{}
	fs := newFontSystem(t, backend)

	if err := fs.LoadFont("test", "fonts/test.fnt"); err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	// The atlas page must have gone through the texture path with alpha.
	if len(backend.textureCreates) != 1 {
		t.Fatalf("texture creates = %d, want 1", len(backend.textureCreates))
	}
	if backend.textureCreates[0].InternalFormat != metadata.TEXTURE_FORMAT_RGBA {
		t.Errorf("atlas format = %v, want RGBA", backend.textureCreates[0].InternalFormat)
	}
}

func TestFontSystemLoadFontMissing(t *testing.T) {
	fs := newFontSystem(t, &fakeBackend{})
	if err := fs.LoadFont("test", "fonts/missing.fnt"); err == nil {
		t.Error("expected error for missing font descriptor")
	}
}

func TestFontSystemDrawText(t *testing.T) {
	backend := &fakeBackend{}
	fs := newFontSystem(t, backend)
	if err := fs.LoadFont("test", "fonts/test.fnt"); err != nil {
		t.Fatal(err)
	}

	if _, err := fs.TextCreate("nope", "AB", mgl32.Vec2{}, 1, mgl32.Vec3{}); err == nil {
		t.Error("expected error for unknown font")
	}

	id, err := fs.TextCreate("test", "ABBA", mgl32.Vec2{10, 10}, 1, mgl32.Vec3{1, 1, 1})
	if err != nil {
		t.Fatalf("TextCreate: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("TextCreate returned the nil id")
	}

	fs.Draw()
	if backend.draws != 4 {
		t.Errorf("draws = %d, want 4 glyphs", backend.draws)
	}
	// Glyph quads are cached per rune, two distinct runes here.
	if backend.geometryCreates != 2 {
		t.Errorf("geometry creates = %d, want 2", backend.geometryCreates)
	}

	// Unknown runes are skipped.
	if err := fs.TextSetContent(id, "AZ"); err != nil {
		t.Fatal(err)
	}
	backend.draws = 0
	fs.Draw()
	if backend.draws != 1 {
		t.Errorf("draws = %d, want 1 known glyph", backend.draws)
	}
}

func TestFontSystemTextLifecycle(t *testing.T) {
	backend := &fakeBackend{}
	fs := newFontSystem(t, backend)
	if err := fs.LoadFont("test", "fonts/test.fnt"); err != nil {
		t.Fatal(err)
	}

	if err := fs.TextSetContent(uuid.New(), "x"); err == nil {
		t.Error("expected error for unknown text id")
	}

	id, err := fs.TextCreate("test", "A", mgl32.Vec2{}, 1, mgl32.Vec3{})
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.TextSetPosition(id, mgl32.Vec2{5, 5}); err != nil {
		t.Fatal(err)
	}

	fs.TextDestroy(id)
	fs.Draw()
	if backend.draws != 0 {
		t.Errorf("draws after destroy = %d, want 0", backend.draws)
	}

	if err := fs.Shutdown(); err != nil {
		t.Fatal(err)
	}
}
