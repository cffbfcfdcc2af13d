package resources

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/experience/animation"
	"github.com/milk9111/experience/scene"
)

func TestParseManifest(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		want    []Source
		wantErr error
	}{
		{
			name: "single_model",
			yaml: "sources:\n  - name: m\n    type: model\n    path: fox.glb\n",
			want: []Source{{Name: "m", Kind: KindModel, Paths: []string{"fox.glb"}}},
		},
		{
			name: "cube_texture_list",
			yaml: "sources:\n  - name: env\n    type: cubeTexture\n    path: [px.jpg, nx.jpg, py.jpg, ny.jpg, pz.jpg, nz.jpg]\n",
			want: []Source{{Name: "env", Kind: KindCubeTexture, Paths: []string{"px.jpg", "nx.jpg", "py.jpg", "ny.jpg", "pz.jpg", "nz.jpg"}}},
		},
		{
			name:    "unknown_type",
			yaml:    "sources:\n  - name: s\n    type: sound\n    path: a.wav\n",
			wantErr: ErrUnknownKind,
		},
		{
			name:    "duplicate_name",
			yaml:    "sources:\n  - name: a\n    type: texture\n    path: a.png\n  - name: a\n    type: texture\n    path: b.png\n",
			wantErr: ErrDuplicateName,
		},
		{
			name:    "cube_with_one_path",
			yaml:    "sources:\n  - name: env\n    type: cubeTexture\n    path: px.jpg\n",
			wantErr: ErrPathCount,
		},
		{
			name:    "missing_path",
			yaml:    "sources:\n  - name: a\n    type: texture\n",
			wantErr: ErrPathCount,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseManifest([]byte(c.yaml))
			if c.wantErr != nil {
				require.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestEmbeddedManifest(t *testing.T) {
	sources, err := LoadManifest("")
	require.NoError(t, err)
	require.Len(t, sources, 4)

	names := map[string]Kind{}
	for _, s := range sources {
		names[s.Name] = s.Kind
	}
	assert.Equal(t, KindCubeTexture, names["environmentMapTexture"])
	assert.Equal(t, KindModel, names["foxModel"])
}

func TestManifestRoundTrip(t *testing.T) {
	sources, err := LoadManifest("")
	require.NoError(t, err)

	data, err := MarshalManifest(sources)
	require.NoError(t, err)
	again, err := ParseManifest(data)
	require.NoError(t, err)
	assert.Equal(t, sources, again)
}

func TestLoadManifestFromDisk(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(p, []byte("sources:\n  - name: m\n    type: gltf\n    path: fox.glb\n"), 0o644))

	sources, err := LoadManifest(p)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, KindModel, sources[0].Kind)

	_, err = LoadManifest(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

type stubDecoder struct{}

func (stubDecoder) DecodeModel(name string, data []byte) (*Model, error) {
	return &Model{Scene: scene.NewGroup(name), Clips: []animation.Clip{{Name: string(data), Duration: 1}}}, nil
}

func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFSLoaders(t *testing.T) {
	face := pngBytes(t, color.White)
	fsys := fstest.MapFS{
		"textures/grass.png": {Data: pngBytes(t, color.Black)},
		"models/fox.glb":     {Data: []byte("Survey")},
		"env/px.png":         {Data: face},
		"env/nx.png":         {Data: face},
		"env/py.png":         {Data: face},
		"env/ny.png":         {Data: face},
		"env/pz.png":         {Data: face},
		"env/nz.png":         {Data: face},
		"broken.png":         {Data: []byte("not an image")},
	}
	sources := []Source{
		{Name: "grass", Kind: KindTexture, Paths: []string{"/textures/grass.png"}},
		{Name: "fox", Kind: KindModel, Paths: []string{"models/fox.glb"}},
		{Name: "env", Kind: KindCubeTexture, Paths: []string{"env/px.png", "env/nx.png", "env/py.png", "env/ny.png", "env/pz.png", "env/nz.png"}},
	}

	r, err := New(context.Background(), sources, NewFSLoaders(fsys, stubDecoder{}))
	require.NoError(t, err)
	require.NoError(t, r.Wait(context.Background()))

	grass, ok := r.Texture("grass")
	require.True(t, ok)
	assert.Equal(t, 2, grass.Image.Bounds().Dx())

	fox, ok := r.Model("fox")
	require.True(t, ok)
	assert.Equal(t, "Survey", fox.Clips[0].Name)
	assert.Equal(t, "fox.glb", fox.Scene.Name())

	env, ok := r.CubeTexture("env")
	require.True(t, ok)
	for i, f := range env.Faces {
		assert.NotNil(t, f, "face %d", i)
	}

	broken, err := New(context.Background(), []Source{{Name: "b", Kind: KindTexture, Paths: []string{"broken.png"}}}, NewFSLoaders(fsys, nil))
	require.NoError(t, err)
	require.Error(t, broken.Wait(context.Background()))
}
