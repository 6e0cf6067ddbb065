package seamcarver

import (
	"github.com/esimov/seamcarver/utils"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Seam is a connected top to bottom path of pixels, holding one column index per row.
type Seam []int

// Validate checks that the seam fits a grid of the given size and that it is connected,
// i.e. consecutive rows are at most one column apart.
func (s Seam) Validate(width, height int) error {
	if len(s) != height {
		return errors.Wrapf(ErrInvalidSeam, "seam length %d, grid height %d", len(s), height)
	}
	for y, x := range s {
		if x < 0 || x >= width {
			return errors.Wrapf(ErrInvalidSeam, "column %d at row %d outside [0,%d)", x, y, width)
		}
		if y > 0 && utils.Abs(x-s[y-1]) > 1 {
			return errors.Wrapf(ErrInvalidSeam, "seam jumps from column %d to %d at row %d", s[y-1], x, y)
		}
	}
	return nil
}

// Cost returns the total energy of the pixels the seam passes through.
func (s Seam) Cost(energy mat.Matrix) float64 {
	var sum float64
	for y, x := range s {
		sum += energy.At(y, x)
	}
	return sum
}

// CumulativeCost computes the cumulative minimum energy M for all possible connected seams:
//
//	M(x, 0) = e(x, 0)
//	M(x, y) = e(x, y) + min(M(x-1, y-1), M(x, y-1), M(x+1, y-1))
//
// Neighbor columns are clamped into [0, width-1], so the edge columns are only compared
// with themselves and their single inner neighbor.
func CumulativeCost(energy mat.Matrix) *mat.Dense {
	height, width := energy.Dims()
	cost := mat.NewDense(height, width, nil)

	for x := 0; x < width; x++ {
		cost.Set(0, x, energy.At(0, x))
	}
	for y := 1; y < height; y++ {
		prev := cost.RawRowView(y - 1)
		for x := 0; x < width; x++ {
			left, right := neighbors(x, width)
			best := utils.Min(utils.Min(prev[left], prev[x]), prev[right])
			cost.Set(y, x, energy.At(y, x)+best)
		}
	}
	return cost
}

// FindSeam returns the vertical seam with the lowest total energy.
//
// The seam ends at the first column holding the minimum cumulative cost of the last row.
// From there it walks up the cost table, picking at each row the cheapest of the three
// neighbors above. Ties are broken in the order left, center, right.
func FindSeam(energy mat.Matrix) Seam {
	cost := CumulativeCost(energy)
	height, width := cost.Dims()
	seam := make(Seam, height)

	x := floats.MinIdx(cost.RawRowView(height - 1))
	seam[height-1] = x

	for y := height - 1; y > 0; y-- {
		prev := cost.RawRowView(y - 1)
		left, right := neighbors(x, width)
		best := utils.Min(utils.Min(prev[left], prev[x]), prev[right])

		switch best {
		case prev[left]:
			x = left
		case prev[x]:
			// keep x
		default:
			x = right
		}
		seam[y-1] = x
	}
	return seam
}

// neighbors returns the column indices left and right of x, clamped into [0, width-1].
func neighbors(x, width int) (int, int) {
	return utils.Max(x-1, 0), utils.Min(x+1, width-1)
}
