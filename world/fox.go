package world

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/experience/animation"
	"github.com/milk9111/experience/debug"
	"github.com/milk9111/experience/resources"
	"github.com/milk9111/experience/scene"
)

const foxScale = 0.02

// The fox model ships its clips in this order.
var foxClipNames = []string{"idle", "walking", "running"}

// Fox is the animated model.
type Fox struct {
	Model     *resources.Model
	Animation *animation.Controller
}

// NewFox adds the model to s and starts its first clip. The first three
// clips are exposed as idle, walking and running.
func NewFox(s *scene.Scene, model *resources.Model, dbg *debug.Debug, fade time.Duration, log *zap.Logger) (*Fox, error) {
	if model == nil || model.Scene == nil {
		return nil, fmt.Errorf("world: fox model is empty")
	}

	root := model.Scene
	root.Scale = scene.Vec3{X: foxScale, Y: foxScale, Z: foxScale}
	s.Add(root)
	scene.Traverse(root, func(o scene.Object) {
		if m, ok := o.(*scene.Mesh); ok {
			m.CastShadow = true
		}
	})

	clips := foxClips(model.Clips)
	if len(clips) == 0 {
		return nil, fmt.Errorf("world: fox: %w", animation.ErrNoClips)
	}
	ctrl, err := animation.NewController(clips, clips[0].Name, animation.WithFade(fade), animation.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("world: fox: %w", err)
	}

	f := &Fox{Model: model, Animation: ctrl}
	for _, c := range clips {
		name := c.Name
		if !isFoxClipName(name) {
			continue
		}
		dbg.AddAction("fox", "play"+titleCase(name), func() {
			if err := f.Animation.Play(name); err != nil {
				log.Warn("play failed", zap.String("clip", name), zap.Error(err))
			}
		})
	}
	return f, nil
}

// Update advances the animation by deltaMs milliseconds.
func (f *Fox) Update(deltaMs float64) {
	f.Animation.Update(deltaMs)
}

func foxClips(raw []animation.Clip) []animation.Clip {
	out := make([]animation.Clip, len(raw))
	copy(out, raw)
	for i := range out {
		switch {
		case i < len(foxClipNames):
			out[i].Name = foxClipNames[i]
		case out[i].Name == "":
			out[i].Name = fmt.Sprintf("clip%d", i)
		}
	}
	return out
}

func isFoxClipName(name string) bool {
	for _, n := range foxClipNames {
		if n == name {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
