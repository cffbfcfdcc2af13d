package main

import (
	"context"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/experience/debug/panel"
	"github.com/milk9111/experience/experience"
	"github.com/milk9111/experience/render/raster"
	"github.com/milk9111/experience/world"
)

const (
	rotateSpeed = 0.005
	zoomStep    = 0.1
)

// Game adapts the experience to ebiten's frame callbacks.
type Game struct {
	ctx    context.Context
	exp    *experience.Experience
	raster *raster.Backend
	log    *zap.Logger

	audio *audio.Context
	hit   *hitSound
	wired bool

	ui        *ebitenui.UI
	uiActions int

	dragging     bool
	lastX, lastY int
}

// NewGame adapts exp. The game ends when ctx is cancelled.
func NewGame(ctx context.Context, exp *experience.Experience, backend *raster.Backend, log *zap.Logger) *Game {
	return &Game{
		ctx:    ctx,
		exp:    exp,
		raster: backend,
		log:    log,
		audio:  audio.NewContext(sampleRate),
	}
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.handleOrbit()
	g.exp.Time.Tick()
	g.wirePhysicsSound()
	g.updateDebugUI()
	return nil
}

func (g *Game) handleOrbit() {
	orbit := g.exp.Camera.Controls
	x, y := ebiten.CursorPosition()
	overPanel := g.ui != nil && x >= g.exp.Sizes.Width()-panel.Width
	switch {
	case !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.dragging = false
	case g.dragging:
		orbit.Rotate(-float64(x-g.lastX)*rotateSpeed, -float64(y-g.lastY)*rotateSpeed)
	case !overPanel:
		g.dragging = true
	}
	g.lastX, g.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		orbit.Zoom(1 - wy*zoomStep)
	}
}

// wirePhysicsSound attaches the hit sound once the physics entity exists.
func (g *Game) wirePhysicsSound() {
	if g.wired || g.exp.World.Physics == nil {
		return
	}
	g.wired = true
	hit, err := newHitSound(g.audio, g.exp.Config.Resources.Root)
	if err != nil {
		g.log.Warn("hit sound disabled", zap.Error(err))
		return
	}
	g.hit = hit
	g.exp.World.Physics.On(world.EventHit, func(args ...any) {
		if v, ok := args[0].(float64); ok {
			g.hit.Play(v)
		}
	})
}

// updateDebugUI rebuilds the panel whenever the action set changes.
func (g *Game) updateDebugUI() {
	d := g.exp.Debug
	if !d.Active {
		return
	}
	if n := len(d.Actions()); g.ui == nil || n != g.uiActions {
		g.ui = panel.New(d)
		g.uiActions = n
	}
	g.ui.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.raster.Draw(screen)
	if g.ui != nil {
		g.ui.Draw(screen)
	}

	res := g.exp.Resources
	status := fmt.Sprintf("FPS: %.2f    Points: %d", ebiten.ActualFPS(), g.raster.Points())
	if !res.Ready() {
		status = fmt.Sprintf("Loading %d/%d", res.Loaded(), res.Total())
		if err := res.Err(); err != nil {
			status = "Load failed: " + err.Error()
		}
	}
	ebitenutil.DebugPrint(screen, status)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.exp.Sizes.SetDeviceRatio(ebiten.Monitor().DeviceScaleFactor())
	g.exp.Sizes.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
