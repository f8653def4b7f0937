package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/bamsammich/treescan/internal/engine"
)

// Compile-time interface check.
var _ engine.Sink = (*Writer)(nil)

const bufferSize = 64 * 1024

// Options selects where and how records are written.
type Options struct {
	// Path writes to a file instead of Stdout when non-empty.
	Path string
	// Compress wraps the stream in zstd.
	Compress bool
	// Stdout is the default destination.
	Stdout io.Writer
}

// Writer encodes FileRecords as tab-separated lines. Output is buffered;
// Close must be called to flush it. When writing uncompressed to a
// terminal each line is flushed as it is emitted.
type Writer struct {
	bw        *bufio.Writer
	enc       *zstd.Encoder
	file      *os.File
	lineFlush bool
	line      []byte
	count     int64
}

// Open creates a Writer for opts.
func Open(opts Options) (*Writer, error) {
	var dst io.Writer = opts.Stdout
	var file *os.File
	if opts.Path != "" {
		f, err := os.Create(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("create output file: %w", err)
		}
		dst, file = f, f
	}
	if dst == nil {
		return nil, errors.New("no output destination")
	}

	w := &Writer{file: file}
	if opts.Compress {
		enc, err := zstd.NewWriter(dst,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			if file != nil {
				file.Close()
			}
			return nil, fmt.Errorf("zstd encoder: %w", err)
		}
		w.enc = enc
		dst = enc
	} else {
		w.lineFlush = isTerminalWriter(dst)
	}
	w.bw = bufio.NewWriterSize(dst, bufferSize)
	return w, nil
}

// NewWriter wraps w without compression or line flushing.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, bufferSize)}
}

// Emit writes one record.
func (w *Writer) Emit(rec engine.FileRecord) error {
	w.line = rec.AppendTSV(w.line[:0])
	if _, err := w.bw.Write(w.line); err != nil {
		return err
	}
	w.count++
	if w.lineFlush {
		return w.bw.Flush()
	}
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int64 { return w.count }

// Flush pushes buffered lines to the destination. For compressed output it
// also ends the current zstd block so a reader can decode what was written.
func (w *Writer) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return err
	}
	if w.enc != nil {
		return w.enc.Flush()
	}
	return nil
}

// Close flushes all output and releases the encoder and output file.
// Stdout is never closed.
func (w *Writer) Close() error {
	err := w.bw.Flush()
	if w.enc != nil {
		err = errors.Join(err, w.enc.Close())
	}
	if w.file != nil {
		err = errors.Join(err, w.file.Close())
	}
	return err
}
