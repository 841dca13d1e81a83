package lzwio

import (
	"io"

	"github.com/pkg/errors"

	"github.com/hhrutter/golzw/lzw"
)

// Writer wraps an Encoder to satisfy io.WriteCloser, pushing packed codes
// to an underlying io.Writer as they are produced. Close must be called to
// flush the final prefix code, END, and padding.
type Writer struct {
	w   io.Writer
	enc *lzw.Encoder

	out    []byte
	closed bool
}

// NewWriter returns a Writer that LZW-encodes bytes written to it and
// writes the packed stream to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	c := newConfig(opts)
	enc := lzw.NewEncoder(c.order, c.minSize)
	if c.tiff {
		enc.WithTIFFSizeSwitch()
	}
	return &Writer{
		w:   w,
		enc: enc,
		out: make([]byte, 4096),
	}
}

// Write implements io.Writer.
func (z *Writer) Write(p []byte) (int, error) {
	if z.closed {
		return 0, errors.New("lzwio: write on closed writer")
	}

	written := 0
	for written < len(p) {
		n, m, _, err := z.enc.EncodeBytes(p[written:], z.out)
		if err != nil {
			return written, errors.Wrap(err, "lzwio: encode")
		}
		written += n
		if m > 0 {
			if _, werr := z.w.Write(z.out[:m]); werr != nil {
				return written, werr
			}
		}
		if n == 0 && m == 0 {
			return written, errors.New("lzwio: encoder stalled")
		}
	}
	return written, nil
}

// Close finishes the stream, flushing the trailing prefix code, END, and
// padding, and marks the Writer unusable. The underlying io.Writer is not
// closed.
func (z *Writer) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true
	z.enc.Finish()
	for {
		_, m, status, err := z.enc.EncodeBytes(nil, z.out)
		if err != nil {
			return errors.Wrap(err, "lzwio: encode")
		}
		if m > 0 {
			if _, werr := z.w.Write(z.out[:m]); werr != nil {
				return werr
			}
		}
		if status == lzw.StatusDone {
			return nil
		}
		if m == 0 {
			return errors.New("lzwio: encoder stalled while finishing")
		}
	}
}
