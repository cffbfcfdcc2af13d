package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraverseOrder(t *testing.T) {
	s := New()
	group := NewGroup("fox")
	body := NewMesh("body", BoxGeometry(1, 1, 1), &Material{})
	tail := NewMesh("tail", BoxGeometry(1, 1, 1), &Material{})
	group.Add(body, tail)
	floor := NewMesh("floor", CircleGeometry(5, 64), &Material{})
	s.Add(group, floor, nil)

	var names []string
	s.Traverse(func(o Object) { names = append(names, o.Name()) })

	assert.Equal(t, []string{"scene", "fox", "body", "tail", "floor"}, names)
	assert.Len(t, s.Meshes(), 3)

	found, ok := Find(s, "tail")
	require.True(t, ok)
	assert.Equal(t, tail.ID(), found.ID())
}

func TestRemove(t *testing.T) {
	s := New()
	a := NewGroup("a")
	b := NewGroup("b")
	s.Add(a, b)

	s.Remove(a)

	require.Len(t, s.Children(), 1)
	assert.Equal(t, "b", s.Children()[0].Name())
}

func TestDisposeCounts(t *testing.T) {
	g := BoxGeometry(1, 1, 1)
	m := &Material{}
	g.Dispose()
	m.Dispose()
	m.Dispose()

	assert.Equal(t, 1, g.Disposals())
	assert.Equal(t, 2, m.Disposals())

	var nilGeometry *Geometry
	nilGeometry.Dispose()
}

func TestDisposeReleasesData(t *testing.T) {
	g := BoxGeometry(1, 1, 1)
	require.NotEmpty(t, g.Vertices)
	tex := &Texture{Name: "grass"}
	m := &Material{Map: tex, NormalMap: tex, EnvMap: &CubeTexture{}}

	assert.False(t, g.Disposed())
	g.Dispose()
	m.Dispose()

	assert.True(t, g.Disposed())
	assert.Nil(t, g.Vertices)
	assert.True(t, m.Disposed())
	assert.Nil(t, m.Map)
	assert.Nil(t, m.NormalMap)
	assert.Nil(t, m.EnvMap)
	assert.Equal(t, "grass", tex.Name, "shared texture is only detached")
}

func TestCameraProject(t *testing.T) {
	cam := NewPerspectiveCamera(90, 1, 0.1, 100)
	cam.Position = Vec3{0, 0, 10}
	cam.LookAt(Vec3{})

	cases := []struct {
		name   string
		point  Vec3
		wantX  float64
		wantY  float64
		wantOK bool
	}{
		{"center", Vec3{0, 0, 0}, 50, 50, true},
		{"right_edge", Vec3{10, 0, 0}, 100, 50, true},
		{"top_edge", Vec3{0, 10, 0}, 50, 0, true},
		{"behind", Vec3{0, 0, 20}, 0, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y, _, ok := cam.Project(c.point, 100, 100)
			require.Equal(t, c.wantOK, ok)
			if !ok {
				return
			}
			assert.InDelta(t, c.wantX, x, 1e-6)
			assert.InDelta(t, c.wantY, y, 1e-6)
		})
	}
}

func TestCameraAspect(t *testing.T) {
	cam := NewPerspectiveCamera(90, 2, 0.1, 100)
	cam.Position = Vec3{0, 0, 10}

	x, _, _, ok := cam.Project(Vec3{10, 0, 0}, 200, 100)
	require.True(t, ok)
	assert.InDelta(t, 150, x, 1e-6)
}

func TestCameraUpdateProjectionAfterAspectChange(t *testing.T) {
	cam := NewPerspectiveCamera(90, 1, 0.1, 100)
	cam.Position = Vec3{0, 0, 10}
	cam.Aspect = 2
	cam.UpdateProjection()

	x, _, _, ok := cam.Project(Vec3{10, 0, 0}, 200, 100)
	require.True(t, ok)
	assert.InDelta(t, 150, x, 1e-6)
}

func TestCameraLookingStraightDown(t *testing.T) {
	cam := NewPerspectiveCamera(90, 1, 0.1, 100)
	cam.Position = Vec3{0, 10, 0}
	cam.LookAt(Vec3{})

	x, y, depth, ok := cam.Project(Vec3{}, 100, 100)
	require.True(t, ok)
	assert.InDelta(t, 50, x, 1e-6)
	assert.InDelta(t, 50, y, 1e-6)
	assert.InDelta(t, 10, depth, 1e-6)
}

func TestVec3Math(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{3, 3, 3}, b.Sub(a))
	assert.Equal(t, Vec3{4, 10, 18}, a.Mul(b))
	assert.Equal(t, 32.0, a.Dot(b))
	assert.Equal(t, Vec3{-3, 6, -3}, a.Cross(b))
	assert.InDelta(t, 1, b.Normalize().Len(), 1e-12)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}
