package resources

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/milk9111/experience/animation"
	"github.com/milk9111/experience/scene"
)

// Model is a decoded 3D asset: its visual tree and animation clips.
type Model struct {
	Scene *scene.Group
	Clips []animation.Clip
}

// TextureLoader loads a single 2D texture.
type TextureLoader interface {
	LoadTexture(ctx context.Context, path string) (*scene.Texture, error)
}

// CubeTextureLoader loads six faces into an environment map.
type CubeTextureLoader interface {
	LoadCubeTexture(ctx context.Context, paths [scene.CubeFaces]string) (*scene.CubeTexture, error)
}

// ModelLoader loads a 3D model.
type ModelLoader interface {
	LoadModel(ctx context.Context, path string) (*Model, error)
}

// ModelDecoder turns model file bytes into a Model. The rendering library
// supplies it; GLTFDecoder is the default.
type ModelDecoder interface {
	DecodeModel(name string, data []byte) (*Model, error)
}

// Loaders is the dispatch table, one loader per Kind.
type Loaders struct {
	Texture     TextureLoader
	CubeTexture CubeTextureLoader
	Model       ModelLoader
}

// NewFSLoaders returns loaders reading from fsys. A nil decoder uses
// GLTFDecoder.
func NewFSLoaders(fsys fs.FS, decoder ModelDecoder) Loaders {
	if decoder == nil {
		decoder = GLTFDecoder{}
	}
	tex := &FSTextureLoader{FS: fsys}
	return Loaders{
		Texture:     tex,
		CubeTexture: &FSCubeTextureLoader{Faces: tex},
		Model:       &FSModelLoader{FS: fsys, Decoder: decoder},
	}
}

// FSTextureLoader decodes png, jpeg, bmp, tiff and webp images.
type FSTextureLoader struct {
	FS fs.FS
}

func (l *FSTextureLoader) LoadTexture(ctx context.Context, p string) (*scene.Texture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.FS, cleanAssetPath(p))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return &scene.Texture{Name: p, Image: img, RepeatU: 1, RepeatV: 1}, nil
}

// FSCubeTextureLoader loads each face through a texture loader.
type FSCubeTextureLoader struct {
	Faces TextureLoader
}

func (l *FSCubeTextureLoader) LoadCubeTexture(ctx context.Context, paths [scene.CubeFaces]string) (*scene.CubeTexture, error) {
	cube := &scene.CubeTexture{Name: paths[0]}
	for i, p := range paths {
		tex, err := l.Faces.LoadTexture(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		cube.Faces[i] = tex.Image
	}
	return cube, nil
}

// FSModelLoader reads model bytes and hands them to a decoder.
type FSModelLoader struct {
	FS      fs.FS
	Decoder ModelDecoder
}

func (l *FSModelLoader) LoadModel(ctx context.Context, p string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.FS, cleanAssetPath(p))
	if err != nil {
		return nil, err
	}
	return l.Decoder.DecodeModel(path.Base(p), data)
}

func cleanAssetPath(p string) string {
	clean := path.Clean("/" + p)
	return clean[1:]
}
