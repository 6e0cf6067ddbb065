package seamcarver

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// minEnergySize is the smallest width and height the gradient operator is defined for.
const minEnergySize = 3

// ComputeEnergy returns the energy map of the grid as a height x width matrix.
//
// The energy of a pixel is the magnitude of the color gradient around it:
//
//	energy(x, y) = sqrt(Δx² + Δy²)
//
// where Δx² is the sum over the R, G, B channels of the squared difference between
// the two horizontal samples, and Δy² is the same along the vertical axis.
// The samples straddle the pixel; on the first and last column (row) the center is moved
// one step inwards, so column 0 is measured between columns 0 and 2 and column W-1
// between columns W-3 and W-1.
func ComputeEnergy(g *Grid) (*mat.Dense, error) {
	if g.width < minEnergySize || g.height < minEnergySize {
		return nil, errors.Wrapf(ErrInvalidDimensions,
			"energy needs at least a %dx%d grid, got %dx%d",
			minEnergySize, minEnergySize, g.width, g.height,
		)
	}
	return energyMap(g), nil
}

// energyMap computes the energy without checking the grid size.
// Axes shorter than minEnergySize fall back to the samples available (see samplePoints).
func energyMap(g *Grid) *mat.Dense {
	energy := mat.NewDense(g.height, g.width, nil)

	for y := 0; y < g.height; y++ {
		y0, y1 := samplePoints(y, g.height)
		for x := 0; x < g.width; x++ {
			x0, x1 := samplePoints(x, g.width)

			dx := colorDistance(g.at(x0, y), g.at(x1, y))
			dy := colorDistance(g.at(x, y0), g.at(x, y1))
			energy.Set(y, x, math.Sqrt(dx+dy))
		}
	}
	return energy
}

// samplePoints returns the two indices the gradient at c is measured between, along an axis of length n.
func samplePoints(c, n int) (int, int) {
	switch {
	case n >= minEnergySize:
		if c == 0 {
			c = 1
		} else if c == n-1 {
			c = n - 2
		}
		return c - 1, c + 1
	case n == 2:
		return 0, 1
	default:
		return 0, 0
	}
}

// colorDistance returns the squared euclidean distance between two pixels in RGB space.
func colorDistance(p1, p2 Pixel) float64 {
	dr := float64(p1.R) - float64(p2.R)
	dg := float64(p1.G) - float64(p2.G)
	db := float64(p1.B) - float64(p2.B)

	return dr*dr + dg*dg + db*db
}
