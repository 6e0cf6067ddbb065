package seamcarver

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	background = Pixel{R: 0x20, G: 0x40, B: 0x60}
	bright     = Pixel{R: 0xff, G: 0xff, B: 0xff}
)

// solidGrid returns a grid filled with a single color.
func solidGrid(t testing.TB, w, h int, px Pixel) *Grid {
	t.Helper()
	g, err := NewGrid(w, h)
	require.NoError(t, err)
	for i := range g.pix {
		g.pix[i] = px
	}
	return g
}

// coordGrid returns a grid where every pixel encodes its own coordinates.
func coordGrid(t testing.TB, w, h int) *Grid {
	t.Helper()
	g, err := NewGrid(w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			require.NoError(t, g.Set(x, y, Pixel{R: uint8(x), G: uint8(y), B: 0x80}))
		}
	}
	return g
}

// randomGrid returns a deterministic pseudo random grid.
func randomGrid(t testing.TB, w, h int, seed int64) *Grid {
	t.Helper()
	rnd := rand.New(rand.NewSource(seed))
	g, err := NewGrid(w, h)
	require.NoError(t, err)
	for i := range g.pix {
		g.pix[i] = Pixel{R: uint8(rnd.Intn(256)), G: uint8(rnd.Intn(256)), B: uint8(rnd.Intn(256))}
	}
	return g
}

// rows returns the pixels of the grid as a slice of rows, for readable diffs.
func rows(g *Grid) [][]Pixel {
	res := make([][]Pixel, g.Height())
	for y := range res {
		res[y] = append([]Pixel(nil), g.pix[y*g.width:(y+1)*g.width]...)
	}
	return res
}

// encodePNG encodes a solid w x h image.
func encodePNG(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
