package seamcarver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/esimov/seamcarver/utils"
	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// SupportedExtensions lists the image file extensions which are picked up as sources.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// outputExtensions lists the formats a result can be encoded to.
var outputExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff"}

// Ops holds the source and destination of an Execute run.
// Src and Dst are file paths, directories or PipeName, which stands for stdin and stdout.
// Src can also be an URL.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the outcome of resizing a single image.
type result struct {
	path string
	err  error
}

// Execute resizes the image(s) described by op.
// A directory source is walked recursively and its images are processed concurrently
// by op.Workers workers, the results being written under the destination directory.
func (p *Processor) Execute(ctx context.Context, op *Ops) error {
	if utils.IsValidUrl(op.Src) {
		src, err := utils.DownloadImage(ctx, op.Src)
		if err != nil {
			return errors.Wrap(err, "failed to load the source image")
		}
		defer func() {
			src.Close()
			os.Remove(src.Name())
		}()
		return op.process(ctx, p, src.Name(), op.Dst)
	}

	var (
		fs  os.FileInfo
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if op.Src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(op.Src)
	}
	if err != nil {
		return errors.Wrap(err, "failed to load the source image")
	}

	switch mode := fs.Mode(); {
	case mode.IsDir():
		return op.processDir(ctx, p)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0 || op.Src == op.PipeName:
		if op.Dst != op.PipeName && !isValidExtension(filepath.Ext(op.Dst), outputExtensions) {
			return fmt.Errorf("%v file type not supported", filepath.Ext(op.Dst))
		}
		return op.process(ctx, p, op.Src, op.Dst)
	default:
		return fmt.Errorf("unsupported source %s", op.Src)
	}
}

// processDir resizes every supported image found under op.Src.
func (op *Ops) processDir(ctx context.Context, p *Processor) error {
	if _, err := os.Stat(op.Dst); err != nil {
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return errors.Wrap(err, "unable to create the destination directory")
		}
	}

	workers := op.Workers
	// Limit the concurrently running workers to maxWorkers.
	if workers <= 0 || workers > maxWorkers {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan result)
	paths, errc := walkDir(ctx, op.Src, SupportedExtensions)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(ctx, p, ch, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var (
		total, failed int
		firstErr      error
	)
	for res := range ch {
		total++
		if res.err != nil {
			failed++
			if firstErr == nil {
				firstErr = errors.Wrap(res.err, res.path)
			}
			p.Logger.Error().Err(res.err).Str("path", res.path).Msg("resizing image failed")
		}
	}

	if err := <-errc; err != nil && ctx.Err() == nil {
		return errors.Wrap(err, "walking the source directory")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return errors.Wrapf(firstErr, "%d of %d images failed", failed, total)
	}
	return nil
}

// consumer reads the path names from the paths channel and calls the resizing processor against the source image.
func (op *Ops) consumer(
	ctx context.Context,
	p *Processor,
	res chan<- result,
	paths <-chan string,
) {
	for src := range paths {
		rel, err := filepath.Rel(op.Src, src)
		if err != nil {
			rel = filepath.Base(src)
		}
		dst := filepath.Join(op.Dst, rel)
		if ext := filepath.Ext(dst); !isValidExtension(ext, outputExtensions) {
			// WebP can be decoded but not encoded.
			dst = strings.TrimSuffix(dst, ext) + ".png"
		}
		if err == nil {
			err = os.MkdirAll(filepath.Dir(dst), 0755)
		}
		if err == nil {
			err = op.process(ctx, p, src, dst)
		}

		select {
		case <-ctx.Done():
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process calls the resizer method over the source image and returns the error in case exists.
func (op *Ops) process(ctx context.Context, p *Processor, in, out string) (err error) {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	logger := p.Logger.With().Str("job", id.String()).Str("src", in).Str("dst", out).Logger()
	logger.Debug().Msg("resizing image")

	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				logger.Warn().Err(err).Msg("could not close the source file")
			}
		}
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
			// Remove the generated image file in case of an error.
			if err != nil {
				os.Remove(f.Name())
			}
		}
	}()

	ext := ""
	if out != op.PipeName {
		ext = filepath.Ext(out)
	}

	// Resize the image into a copy of the processor, so that jobs don't share their logger.
	proc := *p
	proc.Logger = logger
	if err = proc.Process(ctx, src, dst, ext); err != nil {
		return err
	}
	logger.Info().Msg("image resized")
	return nil
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to open the source file")
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			closeReader(src)
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			closeReader(src)
			return nil, nil, errors.Wrap(err, "unable to create the destination file")
		}
	}
	return src, dst, nil
}

func closeReader(r io.Reader) {
	if f, ok := r.(*os.File); ok && f != os.Stdin {
		f.Close()
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported image file to a new channel.
// It finishes when the context is cancelled.
func walkDir(
	ctx context.Context,
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			if isValidExtension(filepath.Ext(f.Name()), srcExts) {
				select {
				case <-ctx.Done():
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	return utils.Contains(extensions, strings.ToLower(ext))
}
