package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/iburimskiy/galaxy-visualization/internal/galaxy"
	"github.com/iburimskiy/galaxy-visualization/internal/scene"
)

const (
	// Brightness one point adds at the reference depth and default size.
	pointGain      = 0.12
	referenceDepth = 5.0
	referenceSize  = 0.01
	halfBlock      = '▀'
)

// cellCloud accumulates a field into a grid of half-block cells, two
// vertical samples per character, adding colors like additive blending.
type cellCloud struct {
	field    *galaxy.Field
	size     float64
	accum    []float32
	w, h     int
	released bool
}

// Release drops the field reference and the accumulation buffer.
func (c *cellCloud) Release() {
	c.field = nil
	c.accum = nil
	c.released = true
}

// rasterize projects the field onto a cols×rows grid.
func (c *cellCloud) rasterize(cam *scene.Camera, cols, rows int) {
	if c.released || c.field == nil {
		return
	}
	c.w, c.h = cols, rows*2
	n := c.w * c.h * 3
	if cap(c.accum) < n {
		c.accum = make([]float32, n)
	}
	c.accum = c.accum[:n]
	clear(c.accum)

	proj := cam.Projector(float64(c.w), float64(c.h))
	gain := pointGain * c.size / referenceSize
	f := c.field
	for i, count := 0, f.Len(); i < count; i++ {
		x, y, z := f.Position(i)
		sx, sy, depth, ok := proj.Project(float64(x), float64(y), float64(z))
		if !ok {
			continue
		}
		px, py := int(sx), int(sy)
		if sx < 0 || sy < 0 || px >= c.w || py >= c.h {
			continue
		}
		wgt := float32(gain * referenceDepth / depth)
		r, g, b := f.Color(i)
		k := (py*c.w + px) * 3
		c.accum[k] += r * wgt
		c.accum[k+1] += g * wgt
		c.accum[k+2] += b * wgt
	}
}

// sample returns the clamped color at sub-pixel (x, y).
func (c *cellCloud) sample(x, y int) (r, g, b float32) {
	k := (y*c.w + x) * 3
	return min(c.accum[k], 1), min(c.accum[k+1], 1), min(c.accum[k+2], 1)
}

// paint writes the rasterized grid to the screen. Dark cells are left blank.
func (c *cellCloud) paint(s tcell.Screen) {
	if c.released || c.accum == nil {
		return
	}
	for y := 0; y < c.h/2; y++ {
		for x := 0; x < c.w; x++ {
			tr, tg, tb := c.sample(x, 2*y)
			br, bg, bb := c.sample(x, 2*y+1)
			if tr+tg+tb == 0 && br+bg+bb == 0 {
				continue
			}
			style := tcell.StyleDefault.
				Foreground(toTcell(tr, tg, tb)).
				Background(toTcell(br, bg, bb))
			s.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

func toTcell(r, g, b float32) tcell.Color {
	return tcell.NewRGBColor(int32(r*255+0.5), int32(g*255+0.5), int32(b*255+0.5))
}

// cellRenderer is the galaxy.Renderer for the terminal viewer.
type cellRenderer struct{}

func (cellRenderer) NewDrawable(f *galaxy.Field, p galaxy.Parameters) galaxy.Drawable {
	return &cellCloud{field: f, size: p.Size}
}

// grid is the terminal scene.
type grid struct {
	clouds []*cellCloud
}

func (g *grid) Add(d galaxy.Drawable) {
	g.clouds = append(g.clouds, d.(*cellCloud))
}

func (g *grid) Remove(d galaxy.Drawable) {
	for i, c := range g.clouds {
		if c == d {
			g.clouds = append(g.clouds[:i], g.clouds[i+1:]...)
			return
		}
	}
}

func (g *grid) draw(s tcell.Screen, cam *scene.Camera, cols, rows int) {
	for _, c := range g.clouds {
		c.rasterize(cam, cols, rows)
		c.paint(s)
	}
}
