package game

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/galaxy-visualization/internal/audio"
	"github.com/iburimskiy/galaxy-visualization/internal/config"
	"github.com/iburimskiy/galaxy-visualization/internal/galaxy"
	"github.com/iburimskiy/galaxy-visualization/internal/scene"
	"golang.org/x/time/rate"
)

var (
	background = color.RGBA{A: 255}
	graphColor = color.RGBA{R: 120, G: 200, B: 140, A: 200}
	graphFrame = color.RGBA{R: 60, G: 70, B: 90, A: 255}
)

type Game struct {
	galaxy   *galaxy.Galaxy
	world    *world
	camera   *scene.Camera
	controls *scene.OrbitControls
	panel    *panel
	chime    *audio.Chime
	logger   *slog.Logger

	// viewport in device pixels
	width, height int

	// orbit drag
	dragging   bool
	lastX      int
	lastY      int
	frames     *frameRing
	lastFrame  time.Time
	lastStats  galaxy.Stats
	statsLog   rate.Sometimes
	paletteRNG *rand.Rand

	// input edge detection
	prevKey map[ebiten.Key]bool

	lastErr error
}

// NewGame builds the window viewer and publishes the first galaxy.
func NewGame(cfg *config.Config, chime *audio.Chime, logger *slog.Logger) *Game {
	g := &Game{
		world:   &world{},
		camera:  scene.NewCamera(float64(config.WindowWidth) / float64(config.WindowHeight)),
		panel:   newPanel(zenityDialogs{}),
		chime:   chime,
		logger:  logger.With("component", "game"),
		width:   config.WindowWidth,
		height:  config.WindowHeight,
		frames:  newFrameRing(config.FrameRingSize),
		prevKey: map[ebiten.Key]bool{},
		statsLog: rate.Sometimes{
			First:    1,
			Interval: 10 * time.Second,
		},
		paletteRNG: rand.New(rand.NewPCG(cfg.Seed, uint64(time.Now().UnixNano()))),
	}
	g.controls = scene.NewOrbitControls(g.camera)

	opts := []galaxy.Option{
		galaxy.WithLogger(logger),
		galaxy.WithObserver(func(s galaxy.Stats) { g.lastStats = s }),
	}
	if cfg.Seed != 0 {
		opts = append(opts, galaxy.WithSeed(cfg.Seed))
	}
	g.galaxy = galaxy.New(pointRenderer{}, g.world, opts...)
	g.galaxy.Commit(cfg.Galaxy)
	return g
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, chime *audio.Chime, logger *slog.Logger) error {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := NewGame(cfg, chime, logger)
	defer g.galaxy.Close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func (g *Game) commit(p galaxy.Parameters) {
	g.galaxy.Commit(p)
	g.chime.Play(p)
}

func (g *Game) Update() error {

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	mouseX, mouseY := ebiten.CursorPosition()
	ptr := pointer{
		x:            mouseX,
		y:            mouseY,
		down:         ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		pressed:      inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		released:     inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		rightPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
	}

	next, commit, captured := g.panel.update(ptr, g.galaxy.Parameters())
	if commit {
		g.commit(next)
	}

	// Orbit drag starts only outside the panel.
	if ptr.pressed && !captured {
		g.dragging = true
	}
	if !ptr.down {
		g.dragging = false
	}
	if g.dragging {
		g.controls.Rotate(float64(mouseX-g.lastX), float64(mouseY-g.lastY), float64(g.height))
	}
	g.lastX, g.lastY = mouseX, mouseY

	if _, wy := ebiten.Wheel(); wy != 0 && !g.panel.contains(mouseX, mouseY) {
		g.controls.Dolly(wy)
	}

	if justPressed(ebiten.KeySpace) {
		g.controls.AutoRotate = !g.controls.AutoRotate
	}
	if justPressed(ebiten.KeyH) {
		g.panel.visible = !g.panel.visible
	}
	if justPressed(ebiten.KeyR) {
		g.commit(g.galaxy.Parameters())
	}
	if justPressed(ebiten.KeyP) {
		g.randomPalette()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.controls.Update()

	g.statsLog.Do(func() {
		g.logger.Debug("Frame stats",
			"fps", ebiten.ActualFPS(),
			"tps", ebiten.ActualTPS(),
			"worst_frame", g.frames.max(),
			"particles", g.galaxy.Field().Len(),
			"distance", g.controls.Distance(),
		)
	})
	return nil
}

func (g *Game) randomPalette() {
	inside, outside, err := complementaryPalette(g.paletteRNG.Float64() * 360)
	if err != nil {
		g.lastErr = err
		return
	}
	p := g.galaxy.Parameters()
	p.InsideColor, p.OutsideColor = inside, outside
	g.commit(p)
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	if !g.lastFrame.IsZero() {
		g.frames.push(now.Sub(g.lastFrame))
	}
	g.lastFrame = now

	screen.Fill(background)
	g.world.draw(screen, g.camera)

	g.panel.draw(screen)
	g.drawFrameGraph(screen)
	g.drawStatus(screen)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	rotate := "on"
	if !g.controls.AutoRotate {
		rotate = "off"
	}
	status := fmt.Sprintf("FPS: %0.1f | particles: %d | generated in %s | auto-rotate: %s",
		ebiten.ActualFPS(), g.lastStats.Count, formatElapsed(g.lastStats.Elapsed), rotate)

	err := g.lastErr
	if g.panel.lastErr != nil {
		err = g.panel.lastErr
	}
	if err != nil {
		status += " | Error: " + err.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// drawFrameGraph plots recent frame times in the bottom-right corner,
// scaled so the 33ms line sits at the top.
func (g *Game) drawFrameGraph(screen *ebiten.Image) {
	const (
		graphW = 240
		graphH = 60
		ceil   = 33 * time.Millisecond
	)
	samples := g.frames.snapshot(graphW)
	if len(samples) < 2 {
		return
	}

	x0 := float32(g.width - graphW - 12)
	y0 := float32(g.height - graphH - 12)
	vector.StrokeRect(screen, x0, y0, graphW, graphH, 1, graphFrame, false)

	step := float32(graphW) / float32(len(samples)-1)
	prevY := y0 + graphH*float32(1-clamp01(float64(samples[0])/float64(ceil)))
	for i := 1; i < len(samples); i++ {
		y := y0 + graphH*float32(1-clamp01(float64(samples[i])/float64(ceil)))
		vector.StrokeLine(screen, x0+step*float32(i-1), prevY, x0+step*float32(i), y, 1, graphColor, false)
		prevY = y
	}
	ebitenutil.DebugPrintAt(screen, formatElapsed(samples[len(samples)-1]), int(x0)+4, int(y0)+2)
}

// Layout renders at device resolution, capped at a pixel ratio of 2, and
// keeps the camera aspect in step with the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := math.Min(ebiten.Monitor().DeviceScaleFactor(), config.MaxPixelRatio)
	w := int(float64(outsideWidth) * ratio)
	h := int(float64(outsideHeight) * ratio)
	if w < 1 || h < 1 {
		return g.width, g.height
	}
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.camera.SetAspect(float64(w) / float64(h))
		g.logger.Debug("Viewport resized", "width", w, "height", h, "pixel_ratio", ratio)
	}
	return g.width, g.height
}
