// Package lzwio adapts the sans-IO codec in package lzw to the standard
// io.Reader/io.Writer interfaces, the way compress/lzw and pdfcpu's lzw
// package do for their own readers and writers.
package lzwio

import (
	"io"

	"github.com/pkg/errors"

	"github.com/hhrutter/golzw/lzw"
)

// Option configures a Reader or Writer.
type Option func(*config)

type config struct {
	order    lzw.BitOrder
	minSize  int
	tiff     bool
	yield    bool
	strict   bool
}

func newConfig(opts []Option) config {
	c := config{order: lzw.MSB, minSize: 8}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// WithBitOrder selects MSB (TIFF/PDF) or LSB (GIF) bit packing. MSB is the
// default, matching LZWDecode's convention.
func WithBitOrder(order lzw.BitOrder) Option {
	return func(c *config) { c.order = order }
}

// WithMinCodeSize sets the minimum code size, clamped to [2, 12]. 8 is the
// default, matching LZWDecode and GIF's byte-oriented alphabets.
func WithMinCodeSize(n int) Option {
	return func(c *config) { c.minSize = n }
}

// WithTIFFSizeSwitch selects the TIFF flavor's one-code-early width bump.
func WithTIFFSizeSwitch() Option {
	return func(c *config) { c.tiff = true }
}

// WithYieldOnFullBuffer stops a Reader's Read calls exactly at a caller
// supplied length instead of reading ahead for CLEAR/END, needed when
// wrapping a TIFF strip of known decoded length and no END code.
func WithYieldOnFullBuffer() Option {
	return func(c *config) { c.yield = true }
}

// WithStrictLeadingClear rejects streams that don't open with an explicit
// CLEAR code.
func WithStrictLeadingClear() Option {
	return func(c *config) { c.strict = true }
}

// Reader wraps a Decoder to satisfy io.Reader, pulling bytes from an
// underlying io.Reader as needed and returning io.EOF once the END code
// has been consumed.
type Reader struct {
	r   io.Reader
	dec *lzw.Decoder

	in     []byte
	inPos  int
	inLen  int
	eof    bool
	closed bool
}

// NewReader returns a Reader that decodes the LZW stream read from r.
func NewReader(r io.Reader, opts ...Option) *Reader {
	c := newConfig(opts)
	dec := lzw.NewDecoder(c.order, c.minSize)
	if c.tiff {
		dec.WithTIFFSizeSwitch()
	}
	if c.yield {
		dec.WithYieldOnFullBuffer(true)
	}
	dec.WithStrictLeadingClear(c.strict)
	return &Reader{
		r:   r,
		dec: dec,
		in:  make([]byte, 4096),
	}
}

// Read implements io.Reader.
func (z *Reader) Read(p []byte) (int, error) {
	if z.closed {
		return 0, errors.New("lzwio: read on closed reader")
	}
	if len(p) == 0 {
		return 0, nil
	}

	for {
		n, m, status, err := z.dec.DecodeBytes(z.in[z.inPos:z.inLen], p)
		z.inPos += n
		if err != nil {
			return m, errors.Wrap(err, "lzwio: decode")
		}
		if m > 0 {
			return m, nil
		}
		if status == lzw.StatusDone {
			return 0, io.EOF
		}
		if z.inPos < z.inLen {
			// No progress with bytes already buffered and no room in p:
			// only possible if p has zero capacity, already handled above.
			continue
		}
		if z.eof {
			return 0, io.ErrUnexpectedEOF
		}
		z.inPos, z.inLen = 0, 0
		nr, rerr := z.r.Read(z.in)
		z.inLen = nr
		if rerr == io.EOF {
			z.eof = true
		} else if rerr != nil {
			return 0, rerr
		}
	}
}

// Close marks the reader as no longer usable. The underlying io.Reader is
// not closed.
func (z *Reader) Close() error {
	z.closed = true
	return nil
}
