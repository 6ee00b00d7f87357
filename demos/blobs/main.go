// blobs runs an interactive soft-body simulation: pressure-filled particle
// rings that squeeze around a letter obstacle and repel each other.
//
// Left click adds a blob under the cursor, right click removes the nearest
// one, R reseeds the world, C toggles the rounded container, L cycles the
// obstacle letter, and F switches the obstacle font.
package main

import (
	"bytes"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/thesagrotan/blobsim"
)

const (
	screenW = 700
	screenH = 700

	letterSize = 360

	blobCount  = 48
	edgePoints = 10
	repelDist  = 12.0
)

var (
	bgColor     = blobsim.Color{R: 0.06, G: 0.06, B: 0.09, A: 1}
	fillColor   = blobsim.Color{R: 0.25, G: 0.65, B: 0.95, A: 0.85}
	strokeColor = blobsim.Color{R: 0.85, G: 0.95, B: 1, A: 1}
	pulseColor  = blobsim.Color{R: 1, G: 0.9, B: 0.4, A: 1}
	glyphColor  = blobsim.Color{R: 0.16, G: 0.16, B: 0.2, A: 1}
)

var obstacleFonts = []struct {
	name string
	ttf  []byte
}{
	{"Go Bold", gobold.TTF},
	{"Go Mono", gomono.TTF},
}

type game struct {
	world *blobsim.World
	pacer *blobsim.Pacer

	letter  rune
	fontIdx int
	faces   []*text.GoTextFace

	// Spawn pulse: the most recently added blob gets a fading outline.
	pulse     *gween.Tween
	pulseBlob *blobsim.Blob
}

func newGame() (*game, error) {
	params := blobsim.DefaultParams()
	params.CanvasWidth = screenW
	params.CanvasHeight = screenH
	params.Gravity = 0.3
	params.SpringTension = 3.5
	params.MaxExpansionFactor = 1.3

	world := blobsim.NewWorld(params)
	g := &game{
		world:  world,
		pacer:  blobsim.NewPacer(float64(ebiten.TPS())),
		letter: 'B',
	}

	for _, f := range obstacleFonts {
		if err := world.Masks().RegisterFont(f.name, f.ttf); err != nil {
			return nil, err
		}
		src, err := text.NewGoTextFaceSource(bytes.NewReader(f.ttf))
		if err != nil {
			return nil, err
		}
		g.faces = append(g.faces, &text.GoTextFace{Source: src, Size: letterSize})
	}

	g.applyObstacle()
	world.Seed(blobCount, edgePoints, blobsim.Range{Min: 8, Max: 16}, repelDist)
	return g, nil
}

// applyObstacle installs the current letter and font, invalidating any
// cached mask for the previous glyph.
func (g *game) applyObstacle() {
	g.world.SetObstacle(blobsim.LetterObstacle(
		(screenW-letterSize)/2, (screenH-letterSize)/2,
		letterSize, g.letter, obstacleFonts[g.fontIdx].name))
}

func (g *game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		size := 6 + rand.Float64()*8
		g.pulseBlob = g.world.AddBlob(float64(x), float64(y), edgePoints, size, repelDist)
		g.pulse = gween.New(1, 0, 0.8, ease.OutQuad)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		g.world.RemoveBlobNear(float64(x), float64(y))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.world.Restart()
		g.world.Seed(blobCount, edgePoints, blobsim.Range{Min: 8, Max: 16}, repelDist)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		p := g.world.Params()
		p.RoundedContainer = !p.RoundedContainer
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.letter = 'A' + (g.letter-'A'+1)%26
		g.applyObstacle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.fontIdx = (g.fontIdx + 1) % len(obstacleFonts)
		g.applyObstacle()
	}

	// The pacer sheds physics steps when the host cannot hold the tick
	// rate, instead of letting the simulation spiral.
	if g.pacer.Tick(time.Now()) {
		g.world.Step()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor.RGBA8())

	g.drawLetter(screen)
	g.world.DrawAll(screen, fillColor, strokeColor, 1)

	if g.pulse != nil && g.pulseBlob != nil {
		v, done := g.pulse.Update(float32(1.0 / float64(ebiten.TPS())))
		if done {
			g.pulse = nil
		} else {
			outline := pulseColor
			outline.A = float64(v)
			g.pulseBlob.Draw(screen, blobsim.Color{}, outline, 1)
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f  blobs: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), len(g.world.Blobs())))
}

// drawLetter renders the obstacle glyph centered on the obstacle's center,
// matching the mask's visual centering closely enough for display.
func (g *game) drawLetter(screen *ebiten.Image) {
	center := g.world.Params().Obstacle.Center()

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(center.X, center.Y)
	op.ColorScale.ScaleWithColor(glyphColor.RGBA8())
	text.Draw(screen, string(g.letter), g.faces[g.fontIdx], op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	g, err := newGame()
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Blobsim")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
