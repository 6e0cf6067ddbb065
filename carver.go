package seamcarver

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Direction tells along which axis seams are removed.
type Direction int

const (
	// Vertical seams run top to bottom and reduce the width.
	Vertical Direction = iota
	// Horizontal seams run left to right and reduce the height.
	Horizontal
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Options holds the number of seams to remove along each axis.
type Options struct {
	WidthReduction  int
	HeightReduction int
}

// SeamHook is invoked after a seam has been found and before it is removed.
// For horizontal seams the grid and the seam are in the transposed orientation.
type SeamHook func(dir Direction, g *Grid, seam Seam)

// Carver removes the lowest energy seams from a grid.
type Carver struct {
	opts   Options
	logger zerolog.Logger
	hook   SeamHook
}

// Option configures a Carver.
type Option func(*Carver)

// WithLogger sets the logger used for per seam debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Carver) {
		c.logger = logger
	}
}

// WithSeamHook registers a function called with every seam found.
func WithSeamHook(hook SeamHook) Option {
	return func(c *Carver) {
		c.hook = hook
	}
}

// NewCarver returns a carver removing the seams described by opts.
func NewCarver(opts Options, options ...Option) *Carver {
	c := &Carver{
		opts:   opts,
		logger: zerolog.Nop(),
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// Validate checks the reductions against the grid size before any seam is removed.
func (c *Carver) Validate(g *Grid) error {
	w, h := g.Width(), g.Height()

	if c.opts.WidthReduction < 0 || c.opts.HeightReduction < 0 {
		return errors.Wrapf(ErrInvalidDimensions, "negative reduction (width %d, height %d)",
			c.opts.WidthReduction, c.opts.HeightReduction)
	}
	if c.opts.WidthReduction >= w {
		return errors.Wrapf(ErrInvalidDimensions, "cannot remove %d columns from a %d pixel wide image",
			c.opts.WidthReduction, w)
	}
	if c.opts.HeightReduction >= h {
		return errors.Wrapf(ErrInvalidDimensions, "cannot remove %d rows from a %d pixel high image",
			c.opts.HeightReduction, h)
	}
	if c.opts.WidthReduction+c.opts.HeightReduction > 0 && (w < minEnergySize || h < minEnergySize) {
		return errors.Wrapf(ErrInvalidDimensions, "seam carving needs at least a %dx%d image, got %dx%d",
			minEnergySize, minEnergySize, w, h)
	}
	return nil
}

// Carve removes WidthReduction vertical seams, then HeightReduction horizontal seams.
// Horizontal seams are removed as vertical seams of the transposed grid,
// which is transposed back afterwards. The input grid is left untouched.
// The context is checked between two seam removals.
func (c *Carver) Carve(ctx context.Context, g *Grid) (*Grid, error) {
	if err := c.Validate(g); err != nil {
		return nil, err
	}

	g, err := c.shrink(ctx, g, c.opts.WidthReduction, Vertical)
	if err != nil {
		return nil, err
	}

	if c.opts.HeightReduction > 0 {
		g, err = c.shrink(ctx, g.Transpose(), c.opts.HeightReduction, Horizontal)
		if err != nil {
			return nil, err
		}
		g = g.Transpose()
	}
	return g, nil
}

// shrink removes n vertical seams from the grid, one at a time.
// Each iteration recomputes the energy of the grid left by the previous one.
func (c *Carver) shrink(ctx context.Context, g *Grid, n int, dir Direction) (*Grid, error) {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "carving stopped after %d of %d %s seams", i, n, dir)
		}

		seam := FindSeam(energyMap(g))
		if c.hook != nil {
			c.hook(dir, g, seam)
		}

		next, err := g.RemoveSeam(seam)
		if err != nil {
			return nil, errors.Wrapf(err, "removing %s seam %d", dir, i)
		}
		c.logger.Debug().
			Stringer("direction", dir).
			Int("seam", i+1).
			Int("of", n).
			Int("width", next.Width()).
			Int("height", next.Height()).
			Msg("seam removed")
		g = next
	}
	return g, nil
}

// Carve is a shorthand for running a Carver over an image.
func Carve(ctx context.Context, img image.Image, opts Options) (*image.NRGBA, error) {
	g, err := FromImage(img)
	if err != nil {
		return nil, err
	}
	res, err := NewCarver(opts).Carve(ctx, g)
	if err != nil {
		return nil, err
	}
	return res.Image(), nil
}
