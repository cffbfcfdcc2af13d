// Command texview loads the texture entries of a manifest and cycles through
// them, cube map faces included, in a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/experience/resources"
)

const viewSize = 512

type frame struct {
	label string
	image *ebiten.Image
}

type viewer struct {
	frames      []frame
	current     int
	tick        int
	ticksPerFrm int
}

func (g *viewer) Update() error {
	if len(g.frames) <= 1 {
		return nil
	}
	g.tick++
	if g.tick >= g.ticksPerFrm {
		g.tick = 0
		g.current = (g.current + 1) % len(g.frames)
	}
	return nil
}

func (g *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	if len(g.frames) == 0 {
		ebitenutil.DebugPrint(screen, "no textures in manifest")
		return
	}
	f := g.frames[g.current]
	b := f.image.Bounds()
	scale := float64(viewSize) / float64(max(b.Dx(), b.Dy()))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((viewSize-float64(b.Dx())*scale)/2, (viewSize-float64(b.Dy())*scale)/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(f.image, op)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  %d/%d", f.label, g.current+1, len(g.frames)))
}

func (g *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

// textureSources keeps only the texture and cube texture entries.
func textureSources(sources []resources.Source) []resources.Source {
	var out []resources.Source
	for _, s := range sources {
		if s.Kind == resources.KindTexture || s.Kind == resources.KindCubeTexture {
			out = append(out, s)
		}
	}
	return out
}

func loadFrames(res *resources.Resources, sources []resources.Source) []frame {
	var frames []frame
	for _, s := range sources {
		switch s.Kind {
		case resources.KindTexture:
			if tex, ok := res.Texture(s.Name); ok && tex.Image != nil {
				frames = append(frames, frame{label: s.Name, image: ebiten.NewImageFromImage(tex.Image)})
			}
		case resources.KindCubeTexture:
			if cube, ok := res.CubeTexture(s.Name); ok {
				for i, face := range cube.Faces {
					if face == nil {
						continue
					}
					frames = append(frames, frame{label: fmt.Sprintf("%s[%d]", s.Name, i), image: ebiten.NewImageFromImage(face)})
				}
			}
		}
	}
	return frames
}

func main() {
	manifest := flag.String("manifest", resources.DefaultManifest, "manifest file (falls back to the embedded default)")
	assets := flag.String("assets", "assets", "asset root")
	fps := flag.Int("fps", 1, "frames shown per second")
	flag.Parse()

	sources, err := resources.LoadManifest(*manifest)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	sources = textureSources(sources)
	res, err := resources.New(context.Background(), sources, resources.NewFSLoaders(os.DirFS(*assets), nil))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := res.Wait(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ticks := 60
	if *fps > 0 {
		ticks = max(60 / *fps, 1)
	}
	g := &viewer{frames: loadFrames(res, sources), ticksPerFrm: ticks}
	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("Texture Viewer")
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
