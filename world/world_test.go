package world

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/experience/animation"
	"github.com/milk9111/experience/debug"
	"github.com/milk9111/experience/host"
	"github.com/milk9111/experience/physics"
	"github.com/milk9111/experience/resources"
	"github.com/milk9111/experience/scene"
)

type fakeLoader struct{}

func (fakeLoader) LoadTexture(_ context.Context, p string) (*scene.Texture, error) {
	return &scene.Texture{Name: p, Image: image.NewRGBA(image.Rect(0, 0, 2, 2))}, nil
}

func (fakeLoader) LoadCubeTexture(_ context.Context, paths [scene.CubeFaces]string) (*scene.CubeTexture, error) {
	return &scene.CubeTexture{Name: paths[0]}, nil
}

func (fakeLoader) LoadModel(_ context.Context, p string) (*resources.Model, error) {
	root := scene.NewGroup(p)
	body := scene.NewMesh("fox", scene.BoxGeometry(1, 1, 1), &scene.Material{Name: "fur"})
	root.Add(body)
	return &resources.Model{
		Scene: root,
		Clips: []animation.Clip{{Name: "Survey", Duration: 3}, {Name: "Walk", Duration: 1}, {Name: "Run", Duration: 0.5}},
	}, nil
}

func loaders() resources.Loaders {
	l := fakeLoader{}
	return resources.Loaders{Texture: l, CubeTexture: l, Model: l}
}

func fullManifest() []resources.Source {
	faces := []string{"px.jpg", "nx.jpg", "py.jpg", "ny.jpg", "pz.jpg", "nz.jpg"}
	return []resources.Source{
		{Name: DefaultSources.EnvironmentMap, Kind: resources.KindCubeTexture, Paths: faces},
		{Name: DefaultSources.GrassColor, Kind: resources.KindTexture, Paths: []string{"color.jpg"}},
		{Name: DefaultSources.GrassNormal, Kind: resources.KindTexture, Paths: []string{"normal.jpg"}},
		{Name: DefaultSources.Fox, Kind: resources.KindModel, Paths: []string{"Fox.glb"}},
	}
}

type fixture struct {
	scene *scene.Scene
	res   *resources.Resources
	time  *host.Time
	debug *debug.Debug
}

func newFixture(t *testing.T, sources []resources.Source) fixture {
	t.Helper()
	res, err := resources.New(context.Background(), sources, loaders())
	require.NoError(t, err)
	return fixture{scene: scene.New(), res: res, time: host.NewTime(), debug: debug.New(true, nil)}
}

func (f fixture) deps() Deps {
	return Deps{Scene: f.scene, Resources: f.res, Time: f.time, Debug: f.debug}
}

func TestEntitiesBuiltAfterReady(t *testing.T) {
	f := newFixture(t, fullManifest())
	w := New(f.deps())

	assert.False(t, w.Ready())
	assert.Nil(t, w.Fox)
	w.Update()

	require.NoError(t, f.res.Wait(context.Background()))
	require.True(t, w.Ready())
	require.NotNil(t, w.Environment)
	require.NotNil(t, w.Floor)
	require.NotNil(t, w.Fox)
	require.NotNil(t, w.Physics)

	assert.Same(t, f.scene.Environment, w.Environment.Map)
	assert.Equal(t, "idle", w.Fox.Animation.Current())
	assert.Equal(t, 1.5, w.Floor.Mesh.Material.Map.RepeatU)
	for _, m := range f.scene.Meshes() {
		if m.Material.Kind == scene.MaterialStandard {
			assert.Same(t, w.Environment.Map, m.Material.EnvMap, m.Name())
			assert.Equal(t, defaultEnvMapIntensity, m.Material.EnvMapIntensity)
		}
	}
}

func TestFoxUpdateAdvancesMixer(t *testing.T) {
	f := newFixture(t, []resources.Source{{Name: "m", Kind: resources.KindModel, Paths: []string{"fox.glb"}}})
	w := New(f.deps(), WithSources(Sources{Fox: "m"}))
	require.NoError(t, f.res.Wait(context.Background()))
	require.NotNil(t, w.Fox)
	assert.Nil(t, w.Floor)

	f.time.Advance(16 * time.Millisecond)
	w.Update()
	assert.InDelta(t, 0.016, w.Fox.Animation.Mixer().Time(), 1e-9)
}

func TestFoxDebugActions(t *testing.T) {
	f := newFixture(t, fullManifest())
	w := New(f.deps(), WithFoxFade(0))
	require.NoError(t, f.res.Wait(context.Background()))

	cases := []struct {
		action string
		clip   string
	}{
		{"playWalking", "walking"},
		{"playRunning", "running"},
		{"playIdle", "idle"},
	}
	for _, c := range cases {
		t.Run(c.action, func(t *testing.T) {
			require.NoError(t, f.debug.Invoke(c.action))
			assert.Equal(t, c.clip, w.Fox.Animation.Current())
			assert.Equal(t, 1.0, w.Fox.Animation.Weights()[c.clip])
		})
	}
}

func TestEnvironmentIntensityActions(t *testing.T) {
	f := newFixture(t, fullManifest())
	w := New(f.deps())
	require.NoError(t, f.res.Wait(context.Background()))
	floor := w.Floor.Mesh.Material

	for i := 0; i < 3; i++ {
		require.NoError(t, f.debug.Invoke("envIntensityUp"))
	}
	assert.InDelta(t, 0.7, w.Environment.Intensity, 1e-9)
	assert.InDelta(t, 0.7, floor.EnvMapIntensity, 1e-9)

	for i := 0; i < 20; i++ {
		require.NoError(t, f.debug.Invoke("envIntensityDown"))
	}
	assert.Equal(t, 0.0, w.Environment.Intensity)
	assert.Equal(t, 0.0, floor.EnvMapIntensity)

	w.Environment.SetIntensity(50)
	assert.Equal(t, float64(maxEnvMapIntensity), floor.EnvMapIntensity)
}

func TestWorldBuiltWhenAlreadyReady(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.res.Wait(context.Background()))

	w := New(f.deps(), WithPhysics(false))
	assert.True(t, w.Ready())
	assert.Nil(t, w.Physics)
	assert.NotNil(t, w.Environment)
	assert.Nil(t, w.Environment.Map)
}

func TestPhysicsSpawnAndReset(t *testing.T) {
	s := scene.New()
	d := debug.New(true, nil)
	p := NewPhysics(s, d, nil)

	require.NoError(t, d.Invoke("createSphere"))
	require.NoError(t, d.Invoke("createBox"))
	p.CreateSphere(0.5, scene.Vec3{Y: 3})
	require.Equal(t, 3, p.Len())
	require.Len(t, s.Meshes(), 3)

	meshes := p.Meshes()
	assert.Same(t, meshes[0].Geometry, meshes[2].Geometry)
	assert.Same(t, meshes[0].Material, meshes[1].Material)

	start := meshes[2].Position.Y
	for i := 0; i < 10; i++ {
		p.Update(physics.Step)
	}
	assert.Less(t, meshes[2].Position.Y, start)

	require.NoError(t, d.Invoke("reset"))
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, s.Meshes())
}

func TestPhysicsHitEvent(t *testing.T) {
	p := NewPhysics(scene.New(), nil, nil)
	var volumes []float64
	p.On(EventHit, func(args ...any) { volumes = append(volumes, args[0].(float64)) })

	p.CreateBox(0.5, 0.5, 0.5, scene.Vec3{Y: 3})
	for i := 0; i < 120; i++ {
		p.Update(physics.Step)
	}
	require.NotEmpty(t, volumes)
	for _, v := range volumes {
		assert.GreaterOrEqual(t, v, hitMinVolume)
		assert.LessOrEqual(t, v, 1.0)
	}
}
