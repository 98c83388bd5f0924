package galaxy

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

// Drawable is a renderer-owned wrapper around a field's buffers.
type Drawable interface {
	// Release frees the buffers. Calling it twice is a no-op.
	Release()
}

// Renderer wraps generated buffers for display.
type Renderer interface {
	NewDrawable(f *Field, p Parameters) Drawable
}

// Scene holds the drawables that are currently shown.
type Scene interface {
	Add(d Drawable)
	Remove(d Drawable)
}

// Stats describe one published regeneration.
type Stats struct {
	Generation int
	Count      int
	Elapsed    time.Duration
}

// Galaxy owns the current parameters, field and drawable and replaces all
// three wholesale on every commit.
type Galaxy struct {
	params   Parameters
	field    *Field
	current  Drawable
	live     int
	gen      int
	src      Source
	renderer Renderer
	scene    Scene
	logger   *slog.Logger
	observer func(Stats)
}

// Option configures a Galaxy.
type Option func(*Galaxy)

// WithSource replaces the time-seeded random source.
func WithSource(src Source) Option {
	return func(g *Galaxy) { g.src = src }
}

// WithSeed uses a deterministic PCG source.
func WithSeed(seed uint64) Option {
	return WithSource(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Galaxy) { g.logger = l }
}

// WithObserver registers a callback run after every publish.
func WithObserver(fn func(Stats)) Option {
	return func(g *Galaxy) { g.observer = fn }
}

// WithParameters sets the parameters used by the first Regenerate.
func WithParameters(p Parameters) Option {
	return func(g *Galaxy) { g.params = p }
}

// New creates a Galaxy. Nothing is generated until Commit or Regenerate.
func New(renderer Renderer, scene Scene, opts ...Option) *Galaxy {
	now := uint64(time.Now().UnixNano())
	g := &Galaxy{
		params:   DefaultParameters(),
		src:      rand.New(rand.NewPCG(now, now>>1)),
		renderer: renderer,
		scene:    scene,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "galaxy")
	return g
}

// Commit stores p, tears down the shown drawable and publishes a freshly
// generated one. It returns the new field.
func (g *Galaxy) Commit(p Parameters) *Field {
	g.params = p

	if g.current != nil {
		g.current.Release()
		g.scene.Remove(g.current)
		g.current = nil
		g.field = nil
		g.live--
	}

	start := time.Now()
	field := Generate(p, g.src)
	elapsed := time.Since(start)

	d := g.renderer.NewDrawable(field, p)
	g.scene.Add(d)
	g.current = d
	g.field = field
	g.live++
	g.gen++

	g.logger.Debug("Galaxy generated",
		"generation", g.gen,
		"count", field.Len(),
		"elapsed", elapsed,
		"params", p.String(),
	)

	if g.observer != nil {
		g.observer(Stats{Generation: g.gen, Count: field.Len(), Elapsed: elapsed})
	}
	return field
}

// Regenerate commits the stored parameters again, producing a new random field.
func (g *Galaxy) Regenerate() *Field {
	return g.Commit(g.params)
}

// Close releases the shown drawable.
func (g *Galaxy) Close() {
	if g.current == nil {
		return
	}
	g.current.Release()
	g.scene.Remove(g.current)
	g.current = nil
	g.field = nil
	g.live--
}

// Parameters returns the last committed parameters.
func (g *Galaxy) Parameters() Parameters { return g.params }

// Field returns the published field, nil before the first commit.
func (g *Galaxy) Field() *Field { return g.field }

// Drawable returns the published drawable.
func (g *Galaxy) Drawable() Drawable { return g.current }

// Live counts drawables installed and not yet released.
func (g *Galaxy) Live() int { return g.live }

// Generation counts publishes since creation.
func (g *Galaxy) Generation() int { return g.gen }
