package debug

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActions(t *testing.T) {
	d := New(true, nil)
	var calls []string
	d.AddAction("fox", "playIdle", func() { calls = append(calls, "idle") })
	d.AddAction("fox", "playRunning", func() { calls = append(calls, "running") })
	d.AddAction("physics", "reset", func() { calls = append(calls, "reset") })

	require.NoError(t, d.Invoke("playRunning"))
	require.NoError(t, d.Invoke("reset"))
	assert.Equal(t, []string{"running", "reset"}, calls)
	assert.ErrorIs(t, d.Invoke("missing"), ErrUnknownAction)
	assert.Equal(t, []string{"fox", "physics"}, d.Folders())

	d.RemoveFolder("fox")
	require.Len(t, d.Actions(), 1)
	assert.Equal(t, "reset", d.Actions()[0].Name)
}

func TestInactiveIsNoop(t *testing.T) {
	d := New(false, nil)
	called := false
	d.AddAction("fox", "playIdle", func() { called = true })

	require.NoError(t, d.Invoke("playIdle"))
	require.NoError(t, d.Console().Run([]byte(`invoke("playIdle")`)))
	require.NoError(t, d.Watch(t.TempDir()))

	assert.False(t, called)
	assert.Empty(t, d.Actions())
}

func TestConsoleInvokesActions(t *testing.T) {
	d := New(true, nil)
	count := 0
	d.AddAction("fox", "playWalking", func() { count++ })

	src := []byte(`
names := actions()
for n in names {
	invoke(n)
}
log("invoked", len(names))
`)
	require.NoError(t, d.Console().Run(src))
	assert.Equal(t, 1, count)

	require.NoError(t, d.Console().Run([]byte(`playWalking()`)))
	assert.Equal(t, 2, count)
}

func TestConsoleErrors(t *testing.T) {
	d := New(true, nil)

	cases := []struct {
		name string
		src  string
	}{
		{"syntax", `invoke(`},
		{"wrong_arity", `invoke()`},
		{"wrong_type", `invoke(1)`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Error(t, d.Console().Run([]byte(c.src)))
		})
	}

	// unknown actions surface as tengo error values, not script failures
	require.NoError(t, d.Console().Run([]byte(`r := invoke("nope"); log(is_error(r))`)))
}

func TestWatchRunsChangedScripts(t *testing.T) {
	dir := t.TempDir()
	d := New(true, nil)
	count := 0
	d.AddAction("physics", "createSphere", func() { count++ })
	require.NoError(t, d.Watch(dir))
	defer d.Dispose()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "spawn.tengo"), []byte(`invoke("createSphere")`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	require.Eventually(t, func() bool {
		d.Update()
		return count >= 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScriptWatcherWaitsForSettle(t *testing.T) {
	now := time.Unix(100, 0)
	w := &scriptWatcher{now: func() time.Time { return now }, changed: map[string]time.Time{}}
	w.changed["b.tengo"] = now
	w.changed["a.tengo"] = now.Add(-settle)

	ready, errs := w.take()
	assert.Equal(t, []string{"a.tengo"}, ready)
	assert.Empty(t, errs)

	now = now.Add(settle)
	ready, _ = w.take()
	assert.Equal(t, []string{"b.tengo"}, ready)

	ready, _ = w.take()
	assert.Empty(t, ready)
}
