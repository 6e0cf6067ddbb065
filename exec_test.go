package seamcarver

import (
	"context"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, encodePNG(t, w, h, color.NRGBA{R: 0x80, A: 0xff}), 0644))
}

func imageBounds(t *testing.T, path string) image.Rectangle {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := Decode(f)
	require.NoError(t, err)
	return img.Bounds()
}

func TestExec_File(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	dst := filepath.Join(dir, "out.jpg")
	writeImage(t, src, 10, 8)

	p := &Processor{WidthReduction: 3, HeightReduction: 2}
	require.NoError(t, p.Execute(context.Background(), &Ops{Src: src, Dst: dst, PipeName: "-"}))

	assert.Equal(t, image.Rect(0, 0, 7, 6), imageBounds(t, dst))
}

func TestExec_UnsupportedDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writeImage(t, src, 5, 5)

	p := &Processor{WidthReduction: 1}
	err := p.Execute(context.Background(), &Ops{Src: src, Dst: filepath.Join(dir, "out.txt"), PipeName: "-"})
	assert.Error(t, err)

	err = p.Execute(context.Background(), &Ops{Src: filepath.Join(dir, "missing.png"), Dst: filepath.Join(dir, "out.png"), PipeName: "-"})
	assert.Error(t, err)
}

func TestExec_FailedResizeRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	dst := filepath.Join(dir, "out.png")
	writeImage(t, src, 4, 4)

	p := &Processor{WidthReduction: 4}
	err := p.Execute(context.Background(), &Ops{Src: src, Dst: dst, PipeName: "-"})
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err), "the destination file should be removed on error")
}

func TestExec_Directory(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := filepath.Join(t.TempDir(), "out")

	writeImage(t, filepath.Join(srcDir, "a.png"), 10, 10)
	writeImage(t, filepath.Join(srcDir, "b.png"), 12, 9)
	writeImage(t, filepath.Join(srcDir, "nested", "c.png"), 8, 8)
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "notes.txt"), []byte("skip me"), 0644))

	p := &Processor{WidthReduction: 2, HeightReduction: 1}
	require.NoError(t, p.Execute(context.Background(), &Ops{Src: srcDir, Dst: dstDir, PipeName: "-", Workers: 2}))

	assert.Equal(t, image.Rect(0, 0, 8, 9), imageBounds(t, filepath.Join(dstDir, "a.png")))
	assert.Equal(t, image.Rect(0, 0, 10, 8), imageBounds(t, filepath.Join(dstDir, "b.png")))
	assert.Equal(t, image.Rect(0, 0, 6, 7), imageBounds(t, filepath.Join(dstDir, "nested", "c.png")))

	_, err := os.Stat(filepath.Join(dstDir, "notes.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestExec_DirectoryWithFailures(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	writeImage(t, filepath.Join(srcDir, "ok.png"), 10, 10)
	writeImage(t, filepath.Join(srcDir, "small.png"), 3, 3)

	p := &Processor{WidthReduction: 5}
	err := p.Execute(context.Background(), &Ops{Src: srcDir, Dst: dstDir, PipeName: "-", Workers: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	assert.Contains(t, err.Error(), "1 of 2 images failed")

	assert.Equal(t, image.Rect(0, 0, 5, 10), imageBounds(t, filepath.Join(dstDir, "ok.png")))
}

func TestExec_URL(t *testing.T) {
	data := encodePNG(t, 9, 9, color.White)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, err := w.Write(data)
		assert.NoError(t, err)
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "out.png")
	p := &Processor{HeightReduction: 4}
	require.NoError(t, p.Execute(context.Background(), &Ops{Src: srv.URL + "/image.png", Dst: dst, PipeName: "-"}))

	assert.Equal(t, image.Rect(0, 0, 9, 5), imageBounds(t, dst))
}
