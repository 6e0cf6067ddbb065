package seamcarver

import (
	"context"
	"image"
	"io"
	"math"

	"github.com/esimov/seamcarver/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Processor options
type Processor struct {
	// WidthReduction and HeightReduction are the number of columns and rows to remove,
	// or a percentage of the source dimensions when Percentage is set.
	WidthReduction  int
	HeightReduction int
	Percentage      bool

	// ShowEnergy outputs the energy map of the source image instead of carving it.
	ShowEnergy bool
	// ShowSeam outputs the source image with its lowest energy vertical seam painted in SeamColor.
	ShowSeam  bool
	SeamColor string

	Logger zerolog.Logger
}

// Options converts the processor settings into seam counts for an image of the given size.
func (p *Processor) Options(width, height int) (Options, error) {
	if !p.Percentage {
		return Options{
			WidthReduction:  p.WidthReduction,
			HeightReduction: p.HeightReduction,
		}, nil
	}
	if p.WidthReduction < 0 || p.WidthReduction >= 100 || p.HeightReduction < 0 || p.HeightReduction >= 100 {
		return Options{}, errors.Wrapf(ErrInvalidDimensions,
			"percentage must be in [0,100), got width %d%% height %d%%", p.WidthReduction, p.HeightReduction)
	}

	return Options{
		WidthReduction:  int(math.Round(float64(width) * float64(p.WidthReduction) / 100)),
		HeightReduction: int(math.Round(float64(height) * float64(p.HeightReduction) / 100)),
	}, nil
}

// Resize applies the processor to a grid.
func (p *Processor) Resize(ctx context.Context, g *Grid) (image.Image, error) {
	switch {
	case p.ShowEnergy:
		energy, err := ComputeEnergy(g)
		if err != nil {
			return nil, err
		}
		return EnergyImage(energy), nil
	case p.ShowSeam:
		energy, err := ComputeEnergy(g)
		if err != nil {
			return nil, err
		}
		seamColor := p.SeamColor
		if seamColor == "" {
			seamColor = DefaultSeamColor
		}
		marked, err := DrawSeam(g, FindSeam(energy), utils.HexToRGBA(seamColor))
		if err != nil {
			return nil, err
		}
		return marked.Image(), nil
	}

	opts, err := p.Options(g.Width(), g.Height())
	if err != nil {
		return nil, err
	}
	p.Logger.Debug().
		Int("width", g.Width()).
		Int("height", g.Height()).
		Int("widthReduction", opts.WidthReduction).
		Int("heightReduction", opts.HeightReduction).
		Msg("carving image")

	res, err := NewCarver(opts, WithLogger(p.Logger)).Carve(ctx, g)
	if err != nil {
		return nil, err
	}
	return res.Image(), nil
}

// Process decodes the source image, resizes it and encodes the result into w,
// in the format matching ext. Any io.Reader and io.Writer can be used,
// which makes it possible to stream images through pipes.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer, ext string) error {
	src, err := Decode(r)
	if err != nil {
		return err
	}

	g, err := FromImage(src)
	if err != nil {
		return err
	}
	res, err := p.Resize(ctx, g)
	if err != nil {
		return err
	}
	return Encode(w, res, ext)
}
