package systems

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/emberengine/ember/engine/assets"
	"github.com/emberengine/ember/engine/renderer/metadata"
)

// fakeBackend stands in for the GPU. It hands out incrementing handles
// and records every create and destroy so the cache semantics can be
// checked without a context.
type fakeBackend struct {
	nextID uint32

	shaderCreates    int
	shaderDestroys   []uint32
	textureCreates   []metadata.TextureOptions
	texturePixelLens []int
	destroyCalls     [][]uint32
	geometryCreates  int
	geometryDestroys int
	draws            int
	boundTextures    []uint32
}

func (b *fakeBackend) Initialize(appName string, w, h uint32) error { return nil }
func (b *fakeBackend) Shutdown() error                              { return nil }
func (b *fakeBackend) Resized(w, h uint16) error                    { return nil }
func (b *fakeBackend) BeginFrame(clearColor mgl32.Vec4) error       { return nil }
func (b *fakeBackend) EndFrame() error                              { return nil }

func (b *fakeBackend) ShaderCreate(config *metadata.ShaderConfig) (*metadata.Shader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	b.shaderCreates++
	b.nextID++
	return &metadata.Shader{ID: b.nextID}, nil
}
func (b *fakeBackend) ShaderDestroy(shader *metadata.Shader) {
	b.shaderDestroys = append(b.shaderDestroys, shader.ID)
}
func (b *fakeBackend) ShaderUse(shader *metadata.Shader)                                        {}
func (b *fakeBackend) ShaderSetInteger(s *metadata.Shader, name string, v int32, use bool)      {}
func (b *fakeBackend) ShaderSetFloat(s *metadata.Shader, name string, v float32, use bool)      {}
func (b *fakeBackend) ShaderSetVector2f(s *metadata.Shader, name string, v mgl32.Vec2, use bool) {}
func (b *fakeBackend) ShaderSetVector3f(s *metadata.Shader, name string, v mgl32.Vec3, use bool) {}
func (b *fakeBackend) ShaderSetVector4f(s *metadata.Shader, name string, v mgl32.Vec4, use bool) {}
func (b *fakeBackend) ShaderSetMatrix4(s *metadata.Shader, name string, v mgl32.Mat4, use bool)  {}

func (b *fakeBackend) TextureCreate(pixels []uint8, w, h uint32, o metadata.TextureOptions) (*metadata.Texture, error) {
	if len(pixels) == 0 {
		return nil, fmt.Errorf("texture has no pixel data")
	}
	b.textureCreates = append(b.textureCreates, o)
	b.texturePixelLens = append(b.texturePixelLens, len(pixels))
	b.nextID++
	return &metadata.Texture{ID: b.nextID, Width: w, Height: h, Options: o}, nil
}
func (b *fakeBackend) TextureBind(texture *metadata.Texture, unit uint32) {
	b.boundTextures = append(b.boundTextures, texture.ID)
}
func (b *fakeBackend) TexturesDestroy(ids []uint32) {
	b.destroyCalls = append(b.destroyCalls, ids)
}

func (b *fakeBackend) GeometryCreate(vertices []metadata.Vertex2D) (*metadata.Geometry, error) {
	b.geometryCreates++
	b.nextID++
	return &metadata.Geometry{VAO: b.nextID, VBO: b.nextID, VertexCount: int32(len(vertices))}, nil
}
func (b *fakeBackend) GeometryDestroy(geometry *metadata.Geometry) { b.geometryDestroys++ }
func (b *fakeBackend) GeometryDraw(geometry *metadata.Geometry)    { b.draws++ }

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 50), G: uint8(y * 50), B: 100, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func newTestAssets(t *testing.T) *assets.AssetManager {
	t.Helper()
	dir := t.TempDir()

	shaderDir := filepath.Join(dir, "shaders")
	if err := os.MkdirAll(shaderDir, 0o755); err != nil {
		t.Fatal(err)
	}
	vertex := "#version 410 core\nvoid main() {}\n"
	fragment := "#version 410 core\nvoid main() {}\n"
	if err := os.WriteFile(filepath.Join(shaderDir, "sprite.vs"), []byte(vertex), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(shaderDir, "sprite.frag"), []byte(fragment), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(shaderDir, "broken.vs"), []byte("void main() {\x00}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(shaderDir, "broken.frag"), []byte(fragment), 0o644); err != nil {
		t.Fatal(err)
	}

	textureDir := filepath.Join(dir, "textures")
	if err := os.MkdirAll(textureDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeTestPNG(t, filepath.Join(textureDir, "face.png"), 4, 4)

	am := assets.NewAssetManager()
	if err := am.Initialize(dir); err != nil {
		t.Fatalf("asset manager init: %v", err)
	}
	return am
}

func TestLoadAndGetShader(t *testing.T) {
	backend := &fakeBackend{}
	rm := NewResourceManager(backend, newTestAssets(t))

	loaded, err := rm.LoadShader("shaders/sprite", "sprite")
	if err != nil {
		t.Fatalf("LoadShader: %v", err)
	}
	got, err := rm.GetShader("sprite")
	if err != nil {
		t.Fatalf("GetShader: %v", err)
	}
	if got.ID != loaded.ID {
		t.Errorf("GetShader id = %d, want %d", got.ID, loaded.ID)
	}
}

func TestLoadShaderEvictsPrevious(t *testing.T) {
	backend := &fakeBackend{}
	rm := NewResourceManager(backend, newTestAssets(t))

	first, err := rm.LoadShader("shaders/sprite", "sprite")
	if err != nil {
		t.Fatal(err)
	}
	second, err := rm.LoadShader("shaders/sprite", "sprite")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Fatal("expected distinct program handles")
	}
	if len(backend.shaderDestroys) != 1 || backend.shaderDestroys[0] != first.ID {
		t.Errorf("shader destroys = %v, want [%d]", backend.shaderDestroys, first.ID)
	}
	got, _ := rm.GetShader("sprite")
	if got.ID != second.ID {
		t.Errorf("cache holds id %d, want %d", got.ID, second.ID)
	}
}

func TestLoadShaderFailureKeepsCache(t *testing.T) {
	backend := &fakeBackend{}
	rm := NewResourceManager(backend, newTestAssets(t))

	loaded, err := rm.LoadShader("shaders/sprite", "sprite")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := rm.LoadShader("shaders/missing", "sprite"); err == nil {
		t.Fatal("expected error for missing shader files")
	}
	if _, err := rm.LoadShader("shaders/broken", "sprite"); err == nil {
		t.Fatal("expected error for shader with NUL byte")
	}

	got, err := rm.GetShader("sprite")
	if err != nil {
		t.Fatalf("GetShader after failed loads: %v", err)
	}
	if got.ID != loaded.ID {
		t.Errorf("cache holds id %d, want %d", got.ID, loaded.ID)
	}
	if len(backend.shaderDestroys) != 0 {
		t.Errorf("shader destroys = %v, want none", backend.shaderDestroys)
	}
}

func TestGetShaderMissing(t *testing.T) {
	rm := NewResourceManager(&fakeBackend{}, newTestAssets(t))
	if _, err := rm.GetShader("nope"); err == nil {
		t.Error("expected error for shader that was never loaded")
	}
}

func TestLoadTextureFormats(t *testing.T) {
	backend := &fakeBackend{}
	rm := NewResourceManager(backend, newTestAssets(t))

	opaque, err := rm.LoadTexture("textures/face.png", false, "face_rgb")
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if opaque.Options.InternalFormat != metadata.TEXTURE_FORMAT_RGB {
		t.Errorf("opaque internal format = %v, want RGB", opaque.Options.InternalFormat)
	}
	if backend.texturePixelLens[0] != 4*4*3 {
		t.Errorf("opaque pixel bytes = %d, want %d", backend.texturePixelLens[0], 4*4*3)
	}

	transparent, err := rm.LoadTexture("textures/face.png", true, "face_rgba")
	if err != nil {
		t.Fatalf("LoadTexture alpha: %v", err)
	}
	if transparent.Options.InternalFormat != metadata.TEXTURE_FORMAT_RGBA {
		t.Errorf("alpha internal format = %v, want RGBA", transparent.Options.InternalFormat)
	}
	if backend.texturePixelLens[1] != 4*4*4 {
		t.Errorf("alpha pixel bytes = %d, want %d", backend.texturePixelLens[1], 4*4*4)
	}
	if transparent.Width != 4 || transparent.Height != 4 {
		t.Errorf("texture dims = %dx%d, want 4x4", transparent.Width, transparent.Height)
	}
}

func TestLoadTextureEvictsPrevious(t *testing.T) {
	backend := &fakeBackend{}
	rm := NewResourceManager(backend, newTestAssets(t))

	first, err := rm.LoadTexture("textures/face.png", true, "face")
	if err != nil {
		t.Fatal(err)
	}
	second, err := rm.LoadTexture("textures/face.png", true, "face")
	if err != nil {
		t.Fatal(err)
	}
	if len(backend.destroyCalls) != 1 {
		t.Fatalf("texture destroy calls = %d, want 1", len(backend.destroyCalls))
	}
	if len(backend.destroyCalls[0]) != 1 || backend.destroyCalls[0][0] != first.ID {
		t.Errorf("destroyed ids = %v, want [%d]", backend.destroyCalls[0], first.ID)
	}
	got, _ := rm.GetTexture("face")
	if got.ID != second.ID {
		t.Errorf("cache holds id %d, want %d", got.ID, second.ID)
	}
}

func TestLoadTextureFailureKeepsCache(t *testing.T) {
	backend := &fakeBackend{}
	rm := NewResourceManager(backend, newTestAssets(t))

	loaded, err := rm.LoadTexture("textures/face.png", true, "face")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rm.LoadTexture("textures/missing.png", true, "face"); err == nil {
		t.Fatal("expected error for missing texture file")
	}
	got, err := rm.GetTexture("face")
	if err != nil {
		t.Fatalf("GetTexture after failed load: %v", err)
	}
	if got.ID != loaded.ID {
		t.Errorf("cache holds id %d, want %d", got.ID, loaded.ID)
	}
}

func TestDisposeAll(t *testing.T) {
	backend := &fakeBackend{}
	rm := NewResourceManager(backend, newTestAssets(t))

	if _, err := rm.LoadShader("shaders/sprite", "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := rm.LoadShader("shaders/sprite", "b"); err != nil {
		t.Fatal(err)
	}
	tex1, err := rm.LoadTexture("textures/face.png", true, "t1")
	if err != nil {
		t.Fatal(err)
	}
	tex2, err := rm.LoadTexture("textures/face.png", false, "t2")
	if err != nil {
		t.Fatal(err)
	}

	rm.DisposeAll()

	if len(backend.shaderDestroys) != 2 {
		t.Errorf("shader destroys = %d, want 2", len(backend.shaderDestroys))
	}
	if len(backend.destroyCalls) != 1 {
		t.Fatalf("texture destroy calls = %d, want a single batched call", len(backend.destroyCalls))
	}
	ids := backend.destroyCalls[0]
	if len(ids) != 2 {
		t.Fatalf("batched delete has %d ids, want 2", len(ids))
	}
	seen := map[uint32]bool{ids[0]: true, ids[1]: true}
	if !seen[tex1.ID] || !seen[tex2.ID] {
		t.Errorf("batched delete ids = %v, want both %d and %d", ids, tex1.ID, tex2.ID)
	}

	if _, err := rm.GetShader("a"); err == nil {
		t.Error("shader cache not empty after DisposeAll")
	}
	if _, err := rm.GetTexture("t1"); err == nil {
		t.Error("texture cache not empty after DisposeAll")
	}
}

func TestDisposeAllEmpty(t *testing.T) {
	backend := &fakeBackend{}
	rm := NewResourceManager(backend, newTestAssets(t))

	rm.DisposeAll()
	if len(backend.shaderDestroys) != 0 {
		t.Errorf("shader destroys = %v, want none", backend.shaderDestroys)
	}
	// An empty batch is fine, deleting zero names is a no-op downstream.
	if len(backend.destroyCalls) != 1 || len(backend.destroyCalls[0]) != 0 {
		t.Errorf("destroy calls = %v, want one empty batch", backend.destroyCalls)
	}
}
