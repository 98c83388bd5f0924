package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/galaxy-visualization/internal/galaxy"
	"github.com/iburimskiy/galaxy-visualization/internal/scene"
)

// maxBatchQuads keeps vertex indices inside uint16.
const maxBatchQuads = (math.MaxUint16 + 1) / 4

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	quadIndices   = buildQuadIndices(maxBatchQuads)
)

func init() {
	whiteImage.Fill(color.White)
}

func buildQuadIndices(quads int) []uint16 {
	idx := make([]uint16, 0, quads*6)
	for q := 0; q < quads; q++ {
		v := uint16(q * 4)
		idx = append(idx, v, v+1, v+2, v+1, v+3, v+2)
	}
	return idx
}

// pointCloud draws a field as size-attenuated squares with additive blending.
// Points never write depth, so draw order does not matter.
type pointCloud struct {
	field    *galaxy.Field
	size     float64
	layer    *ebiten.Image
	vertices []ebiten.Vertex
	released bool
}

// Release drops the vertex buffer and frees the offscreen layer.
func (pc *pointCloud) Release() {
	if pc.released {
		return
	}
	if pc.layer != nil {
		pc.layer.Deallocate()
		pc.layer = nil
	}
	pc.vertices = nil
	pc.field = nil
	pc.released = true
}

func (pc *pointCloud) ensureLayer(w, h int) *ebiten.Image {
	if pc.layer != nil {
		b := pc.layer.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return pc.layer
		}
		pc.layer.Deallocate()
	}
	pc.layer = ebiten.NewImage(w, h)
	return pc.layer
}

// draw renders the cloud onto dst through the camera.
func (pc *pointCloud) draw(dst *ebiten.Image, cam *scene.Camera) {
	if pc.released || pc.field == nil {
		return
	}
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	layer := pc.ensureLayer(b.Dx(), b.Dy())
	layer.Clear()

	proj := cam.Projector(w, h)
	op := &ebiten.DrawTrianglesOptions{Blend: ebiten.BlendLighter}
	if pc.vertices == nil {
		pc.vertices = make([]ebiten.Vertex, 0, maxBatchQuads*4)
	}

	verts := pc.vertices[:0]
	flush := func() {
		if len(verts) == 0 {
			return
		}
		layer.DrawTriangles(verts, quadIndices[:len(verts)/4*6], whiteSubImage, op)
		verts = verts[:0]
	}

	f := pc.field
	for i, n := 0, f.Len(); i < n; i++ {
		x, y, z := f.Position(i)
		sx, sy, depth, ok := proj.Project(float64(x), float64(y), float64(z))
		if !ok {
			continue
		}
		half := float32(math.Max(1, cam.PointSize(pc.size, depth, h)) / 2)
		r, g, bl := f.Color(i)
		verts = appendQuad(verts, float32(sx), float32(sy), half, r, g, bl)
		if len(verts) == cap(verts) {
			flush()
		}
	}
	flush()
	pc.vertices = verts

	dst.DrawImage(layer, nil)
}

func appendQuad(verts []ebiten.Vertex, cx, cy, half, r, g, b float32) []ebiten.Vertex {
	v := ebiten.Vertex{SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: 1}
	v.DstX, v.DstY = cx-half, cy-half
	verts = append(verts, v)
	v.DstX, v.DstY = cx+half, cy-half
	verts = append(verts, v)
	v.DstX, v.DstY = cx-half, cy+half
	verts = append(verts, v)
	v.DstX, v.DstY = cx+half, cy+half
	return append(verts, v)
}

// pointRenderer is the galaxy.Renderer for the window viewer.
type pointRenderer struct{}

func (pointRenderer) NewDrawable(f *galaxy.Field, p galaxy.Parameters) galaxy.Drawable {
	return &pointCloud{field: f, size: p.Size}
}

// world is the set of point clouds on screen.
type world struct {
	clouds []*pointCloud
}

func (w *world) Add(d galaxy.Drawable) {
	w.clouds = append(w.clouds, d.(*pointCloud))
}

func (w *world) Remove(d galaxy.Drawable) {
	for i, c := range w.clouds {
		if c == d {
			w.clouds = append(w.clouds[:i], w.clouds[i+1:]...)
			return
		}
	}
}

func (w *world) draw(dst *ebiten.Image, cam *scene.Camera) {
	for _, c := range w.clouds {
		c.draw(dst, cam)
	}
}
