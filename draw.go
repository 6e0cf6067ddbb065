package seamcarver

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultSeamColor is the color seams are painted with when none is provided.
const DefaultSeamColor = "#ff0000"

// DrawSeam returns a copy of the grid with the pixels of the seam painted in the given color.
// It only visualizes a seam, the source grid is not modified.
func DrawSeam(g *Grid, seam Seam, c color.Color) (*Grid, error) {
	if err := seam.Validate(g.Width(), g.Height()); err != nil {
		return nil, err
	}

	dst := g.Clone()
	px := pixelFromColor(c)
	for y, x := range seam {
		dst.pix[x+y*dst.width] = px
	}
	return dst, nil
}

// EnergyImage renders an energy matrix as a grayscale image,
// scaling the values so that the highest energy becomes white.
func EnergyImage(energy mat.Matrix) *image.Gray {
	rows, cols := energy.Dims()
	dst := image.NewGray(image.Rect(0, 0, cols, rows))

	peak := mat.Max(energy)
	if peak <= 0 {
		return dst
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := 255 * energy.At(y, x) / peak
			dst.SetGray(x, y, color.Gray{Y: uint8(math.Round(v))})
		}
	}
	return dst
}
