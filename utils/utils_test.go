package utils

import (
	"bytes"
	"context"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for the content sniffer to recognize a PNG file.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUtils_MinMaxAbs(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 1, Min(2, 1))
	assert.Equal(t, 2.5, Max(1.0, 2.5))
	assert.Equal(t, 2.5, Max(2.5, 1.0))
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 0.5, Abs(0.5))
}

func TestUtils_Contains(t *testing.T) {
	assert.True(t, Contains([]string{".png", ".jpg"}, ".jpg"))
	assert.False(t, Contains([]string{".png", ".jpg"}, ".gif"))
	assert.False(t, Contains(nil, 1))
}

func TestUtils_HexToRGBA(t *testing.T) {
	testCases := []struct {
		in   string
		want color.RGBA
	}{
		{in: "#ff0000", want: color.RGBA{R: 0xff, A: 0xff}},
		{in: "00ff80", want: color.RGBA{G: 0xff, B: 0x80, A: 0xff}},
		{in: "#fa0", want: color.RGBA{R: 0xff, G: 0xaa, A: 0xff}},
		{in: "#zzzzzz", want: color.RGBA{A: 0xff}},
		{in: "#12345", want: color.RGBA{A: 0xff}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, HexToRGBA(tc.in), tc.in)
	}
}

func TestUtils_DecorateText(t *testing.T) {
	assert.Equal(t, ErrorColor+"boom"+DefaultColor, DecorateText("boom", ErrorMessage))
	assert.Equal(t, DefaultColor+"idle"+DefaultColor, DecorateText("idle", DefaultMessage))
	assert.Equal(t, "plain", DecorateText("plain", MessageType(42)))
}

func TestUtils_FormatTime(t *testing.T) {
	testCases := []struct {
		in   time.Duration
		want string
	}{
		{in: 0, want: "0s"},
		{in: 1234567 * time.Microsecond, want: "1.23s"},
		{in: 1500 * time.Millisecond, want: "1.5s"},
		{in: 2*time.Minute + 5*time.Second + 400*time.Millisecond, want: "2m5s"},
		{in: time.Hour + time.Minute + time.Second, want: "1h1m1s"},
		{in: 26 * time.Hour, want: "26h0m0s"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatTime(tc.in), tc.in.String())
	}
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://github.com/esimov/seamcarver/"))
	assert.False(t, IsValidUrl("testdata/sample.jpg"))
	assert.False(t, IsValidUrl("-"))
}

func TestUtils_DownloadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/image.png":
			_, err := w.Write(pngHeader)
			assert.NoError(t, err)
		case "/text.txt":
			_, err := w.Write([]byte("hello world"))
			assert.NoError(t, err)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f, err := DownloadImage(context.Background(), srv.URL+"/image.png")
	require.NoError(t, err)
	defer func() {
		f.Close()
		os.Remove(f.Name())
	}()
	assert.True(t, strings.HasSuffix(f.Name(), ".png"))

	var buf bytes.Buffer
	_, err = buf.ReadFrom(f)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, buf.Bytes())

	_, err = DownloadImage(context.Background(), srv.URL+"/text.txt")
	assert.Error(t, err)

	_, err = DownloadImage(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
}

func TestUtils_DetectContentType(t *testing.T) {
	path := t.TempDir() + "/sample"
	require.NoError(t, os.WriteFile(path, pngHeader, 0644))

	ctype, err := DetectContentType(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ctype)

	_, err = DetectContentType(path + ".missing")
	assert.Error(t, err)
}

func TestUtils_Spinner(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner("working", time.Millisecond, false)
	s.SetWriter(&buf)
	s.StopMsg = "done"

	s.Start()
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop()
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "working")
	assert.True(t, strings.HasSuffix(out, "done"))
}
