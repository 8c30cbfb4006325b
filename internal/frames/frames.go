// Package frames writes composited simulation steps to image files.
package frames

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/sync/errgroup"

	"ml-gol/internal/core"
	"ml-gol/internal/render"
)

// Encoder writes an image in some file format.
type Encoder func(w io.Writer, img image.Image) error

var encoders = map[string]Encoder{
	"png": png.Encode,
	"bmp": bmp.Encode,
	"tiff": func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	},
}

// Formats lists the supported output formats.
func Formats() []string { return []string{"png", "bmp", "tiff"} }

// Writer persists one packed RGB frame (row-major, 3 bytes per pixel, top
// row first) to path.
type Writer interface {
	WriteFrame(pixels []byte, width, height int, path string) error
}

// FileWriter encodes frames into files using a fixed format.
type FileWriter struct {
	format string
	encode Encoder
}

// NewFileWriter returns a writer for format ("png", "bmp" or "tiff").
func NewFileWriter(format string) (*FileWriter, error) {
	format = strings.ToLower(format)
	enc, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("unsupported frame format %q (valid: %s)", format, strings.Join(Formats(), ", "))
	}
	return &FileWriter{format: format, encode: enc}, nil
}

// Ext returns the file extension for the writer's format, without the dot.
func (w *FileWriter) Ext() string { return w.format }

// WriteFrame encodes pixels and writes them to path.
func (w *FileWriter) WriteFrame(pixels []byte, width, height int, path string) error {
	if len(pixels) != width*height*3 {
		return fmt.Errorf("frame %s: got %d bytes for %dx%d pixels", path, len(pixels), width, height)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := w.encode(bw, render.NRGBAFromPacked(pixels, width, height)); err != nil {
		f.Close()
		return fmt.Errorf("encode frame %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write frame %s: %w", path, err)
	}
	return f.Close()
}

// DirSink lays frames out as <dir>/combined/combinedNNNN.<ext> and
// <dir>/dependent/dependentNNNN.<ext>.
type DirSink struct {
	dir    string
	ext    string
	writer Writer
	log    *zap.Logger

	combinedBuf  []byte
	dependentBuf []byte
}

// NewDirSink creates the output directories and returns a sink writing
// frames in format.
func NewDirSink(dir, format string, log *zap.Logger) (*DirSink, error) {
	fw, err := NewFileWriter(format)
	if err != nil {
		return nil, err
	}
	return NewDirSinkWithWriter(dir, fw.Ext(), fw, log)
}

// NewDirSinkWithWriter is NewDirSink with a caller-supplied Writer.
func NewDirSinkWithWriter(dir, ext string, w Writer, log *zap.Logger) (*DirSink, error) {
	if log == nil {
		log = zap.NewNop()
	}
	for _, kind := range []string{"combined", "dependent"} {
		if err := os.MkdirAll(filepath.Join(dir, kind), 0o755); err != nil {
			return nil, fmt.Errorf("create %s directory: %w", kind, err)
		}
	}
	return &DirSink{dir: dir, ext: ext, writer: w, log: log}, nil
}

// Path returns the file a frame of the given kind and step is written to.
func (s *DirSink) Path(kind string, step int) string {
	return filepath.Join(s.dir, kind, fmt.Sprintf("%s%04d.%s", kind, step, s.ext))
}

// EmitFrame packs both grids and writes them concurrently. The two files
// never share a path.
func (s *DirSink) EmitFrame(step int, combined, dependent *core.ColorGrid) error {
	s.combinedBuf = render.PackRGB(s.combinedBuf, combined.Cells())
	s.dependentBuf = render.PackRGB(s.dependentBuf, dependent.Cells())

	var g errgroup.Group
	g.Go(func() error {
		return s.writer.WriteFrame(s.combinedBuf, combined.W, combined.H, s.Path("combined", step))
	})
	g.Go(func() error {
		return s.writer.WriteFrame(s.dependentBuf, dependent.W, dependent.H, s.Path("dependent", step))
	})
	if err := g.Wait(); err != nil {
		return err
	}
	s.log.Debug("wrote frame", zap.Int("step", step), zap.String("dir", s.dir))
	return nil
}
