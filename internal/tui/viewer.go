package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/iburimskiy/galaxy-visualization/internal/audio"
	"github.com/iburimskiy/galaxy-visualization/internal/config"
	"github.com/iburimskiy/galaxy-visualization/internal/galaxy"
	"github.com/iburimskiy/galaxy-visualization/internal/scene"
	"golang.org/x/time/rate"
)

const (
	// Minimum spacing between keyboard-triggered regenerations.
	commitInterval = 150 * time.Millisecond
	orbitStep      = 6.0
)

var (
	statusStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(35, 40, 55))
	selectedStyle = statusStyle.Foreground(tcell.ColorYellow).Bold(true)
)

// Viewer is the terminal front end.
type Viewer struct {
	screen   tcell.Screen
	galaxy   *galaxy.Galaxy
	grid     *grid
	camera   *scene.Camera
	controls *scene.OrbitControls
	chime    *audio.Chime
	logger   *slog.Logger

	cols, rows int
	selected   int
	draft      galaxy.Parameters
	pending    bool
	limiter    *rate.Limiter
	lastStats  galaxy.Stats
}

// NewViewer publishes the first galaxy onto an initialized screen.
func NewViewer(screen tcell.Screen, cfg *config.Config, chime *audio.Chime, logger *slog.Logger) *Viewer {
	v := &Viewer{
		screen:  screen,
		grid:    &grid{},
		chime:   chime,
		logger:  logger.With("component", "tui"),
		limiter: rate.NewLimiter(rate.Every(commitInterval), 1),
	}
	v.cols, v.rows = screen.Size()
	v.camera = scene.NewCamera(v.aspect())
	v.controls = scene.NewOrbitControls(v.camera)

	opts := []galaxy.Option{
		galaxy.WithLogger(logger),
		galaxy.WithObserver(func(s galaxy.Stats) { v.lastStats = s }),
	}
	if cfg.Seed != 0 {
		opts = append(opts, galaxy.WithSeed(cfg.Seed))
	}
	v.galaxy = galaxy.New(cellRenderer{}, v.grid, opts...)
	v.galaxy.Commit(cfg.Galaxy)
	v.draft = cfg.Galaxy
	return v
}

// Run opens the terminal and blocks until the user quits.
func Run(cfg *config.Config, chime *audio.Chime, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	v := NewViewer(screen, cfg, chime, logger)
	defer v.galaxy.Close()
	v.run()
	return nil
}

func (v *Viewer) run() {
	ticker := time.NewTicker(time.Second / config.TerminalFPS)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handle(ev) {
				return
			}

		case <-ticker.C:
			v.tick()
		}
	}
}

// aspect of the half-block sub-pixel grid below the status line.
func (v *Viewer) aspect() float64 {
	h := max(v.rows-1, 1) * 2
	return float64(max(v.cols, 1)) / float64(h)
}

// handle processes one event and reports whether to keep running.
func (v *Viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)

	case *tcell.EventResize:
		v.screen.Sync()
		v.cols, v.rows = v.screen.Size()
		v.camera.SetAspect(v.aspect())
		v.logger.Debug("Terminal resized", "cols", v.cols, "rows", v.rows)
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	h := float64(max(v.rows-1, 1) * 2)

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.controls.Rotate(-orbitStep, 0, h)
	case tcell.KeyRight:
		v.controls.Rotate(orbitStep, 0, h)
	case tcell.KeyUp:
		v.controls.Rotate(0, -orbitStep, h)
	case tcell.KeyDown:
		v.controls.Rotate(0, orbitStep, h)
	case tcell.KeyTab:
		v.selected = (v.selected + 1) % len(galaxy.Controls)
	case tcell.KeyBacktab:
		v.selected = (v.selected + len(galaxy.Controls) - 1) % len(galaxy.Controls)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case '+', '=':
			v.controls.Dolly(1)
		case '-', '_':
			v.controls.Dolly(-1)
		case ']':
			v.nudge(1)
		case '[':
			v.nudge(-1)
		case '}':
			v.nudge(10)
		case '{':
			v.nudge(-10)
		case 'r':
			v.pending = true
		case ' ':
			v.controls.AutoRotate = !v.controls.AutoRotate
		}
	}
	return true
}

// nudge steps the selected parameter. The change is committed on the next
// tick the limiter allows, so a held key collapses into few regenerations.
func (v *Viewer) nudge(steps int) {
	galaxy.Controls[v.selected].Nudge(&v.draft, steps)
	v.pending = true
}

func (v *Viewer) flush() {
	if !v.pending || !v.limiter.Allow() {
		return
	}
	v.pending = false
	v.galaxy.Commit(v.draft)
	v.chime.Play(v.draft)
}

func (v *Viewer) tick() {
	v.flush()
	v.controls.Update()
	v.draw()
}

func (v *Viewer) draw() {
	v.screen.Clear()
	v.grid.draw(v.screen, v.camera, v.cols, max(v.rows-1, 0))
	v.drawStatus()
	v.screen.Show()
}

func (v *Viewer) drawStatus() {
	if v.rows < 1 {
		return
	}
	y := v.rows - 1
	for x := 0; x < v.cols; x++ {
		v.screen.SetContent(x, y, ' ', nil, statusStyle)
	}

	c := galaxy.Controls[v.selected]
	x := putString(v.screen, 0, y, fmt.Sprintf(" %s=%s ", c.Name, formatValue(c, c.Get(&v.draft))), selectedStyle)
	status := fmt.Sprintf("| %d particles in %s | tab: param  [ ]: step  r: regen  space: rotate  arrows/+-: camera  q: quit",
		v.lastStats.Count, v.lastStats.Elapsed.Round(time.Millisecond/10))
	if v.pending {
		status = "| regenerating... " + status[1:]
	}
	putString(v.screen, x, y, status, statusStyle)
}

func putString(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func formatValue(c galaxy.Control, v float64) string {
	if c.Integer {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.3f", v)
}
