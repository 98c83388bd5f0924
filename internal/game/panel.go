package game

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/galaxy-visualization/internal/config"
	"github.com/iburimskiy/galaxy-visualization/internal/galaxy"
)

const (
	labelWidth  = 140
	valueWidth  = 70
	trackInset  = 4
	noRow       = -1
	headerTitle = "Controls"
)

var (
	panelBackground = color.RGBA{R: 20, G: 22, B: 30, A: 220}
	panelBorder     = color.RGBA{R: 60, G: 70, B: 90, A: 255}
	headerColor     = color.RGBA{R: 35, G: 40, B: 55, A: 255}
	rowHover        = color.RGBA{R: 45, G: 50, B: 68, A: 255}
	trackColor      = color.RGBA{R: 50, G: 56, B: 72, A: 255}
	fillColor       = color.RGBA{R: 100, G: 140, B: 220, A: 255}
	fillActive      = color.RGBA{R: 150, G: 180, B: 255, A: 255}
)

// pointer is one frame of mouse state, captured by the game from ebiten.
type pointer struct {
	x, y         int
	down         bool
	pressed      bool
	released     bool
	rightPressed bool
}

// panel is the on-screen parameter editor. Slider drags only preview their
// value; the change is committed when the button is released.
type panel struct {
	visible  bool
	dragging int
	hovered  int
	draft    galaxy.Parameters
	dialogs  dialogs
	lastErr  error
}

func newPanel(d dialogs) *panel {
	return &panel{
		visible:  true,
		dragging: noRow,
		hovered:  noRow,
		dialogs:  d,
	}
}

func (p *panel) rowCount() int {
	return len(galaxy.Controls) + len(galaxy.ColorControls)
}

func (p *panel) height() int {
	if !p.visible {
		return config.PanelRowHeight
	}
	return config.PanelRowHeight * (p.rowCount() + 1)
}

func (p *panel) contains(x, y int) bool {
	return x >= config.PanelX && x < config.PanelX+config.PanelWidth &&
		y >= config.PanelY && y < config.PanelY+p.height()
}

// rowAt returns the control row under (x, y), or noRow.
func (p *panel) rowAt(x, y int) int {
	if !p.visible || !p.contains(x, y) {
		return noRow
	}
	row := (y-config.PanelY)/config.PanelRowHeight - 1
	if row < 0 || row >= p.rowCount() {
		return noRow
	}
	return row
}

func inHeader(x, y int) bool {
	return x >= config.PanelX && x < config.PanelX+config.PanelWidth &&
		y >= config.PanelY && y < config.PanelY+config.PanelRowHeight
}

func trackBounds() (x0, x1 int) {
	x0 = config.PanelX + labelWidth
	x1 = config.PanelX + config.PanelWidth - valueWidth
	return x0, x1
}

// trackFraction maps a cursor x onto the slider track.
func trackFraction(x int) float64 {
	x0, x1 := trackBounds()
	return clamp01(float64(x-x0) / float64(x1-x0))
}

func rowY(row int) int {
	return config.PanelY + config.PanelRowHeight*(row+1)
}

// update handles one frame of input. It returns the parameters to commit when
// an edit finished, and whether the panel consumed the pointer.
func (p *panel) update(ptr pointer, current galaxy.Parameters) (next galaxy.Parameters, commit bool, captured bool) {
	p.hovered = p.rowAt(ptr.x, ptr.y)

	if p.dragging != noRow {
		c := galaxy.Controls[p.dragging]
		c.Set(&p.draft, c.FromFraction(trackFraction(ptr.x)))
		if ptr.released || !ptr.down {
			p.dragging = noRow
			if p.draft != current {
				return p.draft, true, true
			}
		}
		return current, false, true
	}

	p.draft = current

	if ptr.pressed && inHeader(ptr.x, ptr.y) {
		p.visible = !p.visible
		return current, false, true
	}

	row := p.hovered
	switch {
	case row == noRow:
	case ptr.pressed && row < len(galaxy.Controls):
		c := galaxy.Controls[row]
		x0, _ := trackBounds()
		if ptr.x >= x0-trackInset {
			p.dragging = row
			c.Set(&p.draft, c.FromFraction(trackFraction(ptr.x)))
		}
	case ptr.pressed:
		cc := galaxy.ColorControls[row-len(galaxy.Controls)]
		picked, err := p.dialogs.pickColor(cc.Name, cc.Get(&current))
		if p.keep(err) {
			cc.Set(&p.draft, picked)
		}
	case ptr.rightPressed && row < len(galaxy.Controls):
		c := galaxy.Controls[row]
		text, err := p.dialogs.enterValue(c.Name, formatControlValue(c, c.Get(&current)))
		if p.keep(err) {
			v, err := parseControlValue(c, text)
			if p.keep(err) {
				c.Set(&p.draft, v)
			}
		}
	}

	captured = p.contains(ptr.x, ptr.y) && (ptr.pressed || ptr.rightPressed || ptr.down)
	if p.dragging == noRow && p.draft != current {
		return p.draft, true, true
	}
	return current, false, captured || p.dragging != noRow
}

// keep records real dialog errors and reports whether the result is usable.
func (p *panel) keep(err error) bool {
	if err == nil {
		return true
	}
	if !errors.Is(err, errCanceled) {
		p.lastErr = err
	}
	return false
}

func (p *panel) draw(screen *ebiten.Image) {
	x := float32(config.PanelX)
	w := float32(config.PanelWidth)
	rh := float32(config.PanelRowHeight)

	vector.DrawFilledRect(screen, x, float32(config.PanelY), w, float32(p.height()), panelBackground, false)
	vector.DrawFilledRect(screen, x, float32(config.PanelY), w, rh, headerColor, false)
	vector.StrokeRect(screen, x, float32(config.PanelY), w, float32(p.height()), 1, panelBorder, false)

	marker := "-"
	if !p.visible {
		marker = "+"
	}
	ebitenutil.DebugPrintAt(screen, marker+" "+headerTitle, config.PanelX+6, config.PanelY+5)
	if !p.visible {
		return
	}

	x0, x1 := trackBounds()
	for i, c := range galaxy.Controls {
		y := rowY(i)
		if i == p.hovered || i == p.dragging {
			vector.DrawFilledRect(screen, x, float32(y), w, rh, rowHover, false)
		}
		ebitenutil.DebugPrintAt(screen, c.Name, config.PanelX+6, y+5)

		v := c.Get(&p.draft)
		ty := float32(y) + (rh-config.SliderHeight)/2
		vector.DrawFilledRect(screen, float32(x0), ty, float32(x1-x0), config.SliderHeight, trackColor, false)
		fill := fillColor
		if i == p.dragging {
			fill = fillActive
		}
		vector.DrawFilledRect(screen, float32(x0), ty, float32(float64(x1-x0)*c.Fraction(v)), config.SliderHeight, fill, false)
		ebitenutil.DebugPrintAt(screen, formatControlValue(c, v), x1+8, y+5)
	}

	for j, cc := range galaxy.ColorControls {
		row := len(galaxy.Controls) + j
		y := rowY(row)
		if row == p.hovered {
			vector.DrawFilledRect(screen, x, float32(y), w, rh, rowHover, false)
		}
		ebitenutil.DebugPrintAt(screen, cc.Name, config.PanelX+6, y+5)

		c := cc.Get(&p.draft)
		sy := float32(y) + (rh-config.SwatchSize)/2
		vector.DrawFilledRect(screen, float32(x0), sy, config.SwatchSize, config.SwatchSize, c, false)
		vector.StrokeRect(screen, float32(x0), sy, config.SwatchSize, config.SwatchSize, 1, panelBorder, false)
		ebitenutil.DebugPrintAt(screen, c.Hex(), x0+config.SwatchSize+8, y+5)
	}
}
