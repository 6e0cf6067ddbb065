package seamcarver

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Pixel is an opaque RGB color value.
type Pixel struct {
	R, G, B uint8
}

// Grid is a rectangular, row-major buffer of pixels.
type Grid struct {
	width  int
	height int
	pix    []Pixel
}

// NewGrid allocates a black grid of the given size.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "cannot allocate a %dx%d grid", width, height)
	}
	return newGrid(width, height), nil
}

func newGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// at returns the pixel without bounds checking. Callers iterate over known ranges.
func (g *Grid) at(x, y int) Pixel {
	return g.pix[x+y*g.width]
}

// Get returns the pixel at (x, y).
func (g *Grid) Get(x, y int) (Pixel, error) {
	if !g.inBounds(x, y) {
		return Pixel{}, errors.Wrapf(ErrOutOfBounds, "get (%d,%d) on a %dx%d grid", x, y, g.width, g.height)
	}
	return g.at(x, y), nil
}

// Set replaces the pixel at (x, y).
func (g *Grid) Set(x, y int, px Pixel) error {
	if !g.inBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "set (%d,%d) on a %dx%d grid", x, y, g.width, g.height)
	}
	g.pix[x+y*g.width] = px
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	dst := newGrid(g.width, g.height)
	copy(dst.pix, g.pix)
	return dst
}

// Equal reports whether both grids have the same size and pixels.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.pix {
		if g.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// RemoveSeam returns a new grid, one column narrower, without the pixels of the seam.
// The remaining pixels of each row keep their left to right order.
func (g *Grid) RemoveSeam(seam Seam) (*Grid, error) {
	if g.width < 2 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "cannot remove a seam from a %dx%d grid", g.width, g.height)
	}
	if err := seam.Validate(g.width, g.height); err != nil {
		return nil, err
	}

	dst := newGrid(g.width-1, g.height)
	for y := 0; y < g.height; y++ {
		src := g.pix[y*g.width : (y+1)*g.width]
		row := dst.pix[y*dst.width : (y+1)*dst.width]
		sx := seam[y]

		// Close the gap: copy the pixels left of the seam, then the ones right of it.
		copy(row[:sx], src[:sx])
		copy(row[sx:], src[sx+1:])
	}
	return dst, nil
}

// Transpose returns a new grid where out(x, y) = in(y, x).
// Rows of the transposed grid are the columns of the original one,
// which reduces horizontal seam removal to the vertical case.
func (g *Grid) Transpose() *Grid {
	dst := newGrid(g.height, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			dst.pix[y+x*dst.width] = g.pix[x+y*g.width]
		}
	}
	return dst
}

// FromImage converts any image to a grid with its origin at (0, 0). The alpha channel is dropped.
// An empty image returns ErrInvalidDimensions.
func FromImage(img image.Image) (*Grid, error) {
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "empty image %dx%d", b.Dx(), b.Dy())
	}
	src := imaging.Clone(img)
	g := newGrid(b.Dx(), b.Dy())

	for y := 0; y < g.height; y++ {
		si := src.PixOffset(0, y)
		for x := 0; x < g.width; x++ {
			g.pix[x+y*g.width] = Pixel{
				R: src.Pix[si+0],
				G: src.Pix[si+1],
				B: src.Pix[si+2],
			}
			si += 4
		}
	}
	return g, nil
}

// Image converts the grid to an opaque *image.NRGBA.
func (g *Grid) Image() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	for y := 0; y < g.height; y++ {
		di := dst.PixOffset(0, y)
		for x := 0; x < g.width; x++ {
			px := g.pix[x+y*g.width]
			dst.Pix[di+0] = px.R
			dst.Pix[di+1] = px.G
			dst.Pix[di+2] = px.B
			dst.Pix[di+3] = 0xff
			di += 4
		}
	}
	return dst
}

// RGBA implements the color.Color interface.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff}.RGBA()
}

// pixelFromColor converts an arbitrary color to a pixel, dropping the alpha channel.
func pixelFromColor(c color.Color) Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: n.R, G: n.G, B: n.B}
}
