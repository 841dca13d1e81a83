package lzw

// Decoder is the state from which DecodeBytes converts a packed code stream
// back into bytes. It is a plain value: all the state needed to resume
// decoding across calls (the bit accumulator, the dictionary, and a small
// tail buffer for words that overran the caller's output slice) lives
// inside it. A Decoder is sans-IO; it never touches an io.Reader itself.
type Decoder struct {
	br   bitReader
	dict dictionary
	rbuf reconBuffer

	minSize uint
	tiff    bool
	yield   bool
	strict  bool // reject streams that don't open with an explicit CLEAR

	clear, end Code
	width      uint
	overflow   Code // width bumps once next_code reaches this value (minus tiffBias)

	nextCode Code
	hasLast  bool
	lastCode Code
	seenInit bool // an explicit or implicit CLEAR has happened at least once

	hasEnded bool
	invalid  bool
}

// NewDecoder returns a Decoder for the given bit order and minimum code
// size, clamped to the supported [2, 12] range. By default it permits a
// stream that omits its leading CLEAR code (implicit reset), and a call
// that exactly fills its output slice still reads the next code, so an END
// code that follows is reported as StatusDone by that same call.
func NewDecoder(order BitOrder, minSize int) *Decoder {
	d := &Decoder{
		br:      newBitReader(order),
		minSize: clampCodeSize(minSize),
		strict:  false,
	}
	d.resetTables()
	return d
}

// WithTIFFSizeSwitch enables the TIFF flavor, which bumps the code width
// one code earlier than the GIF rule. Both sides of a stream must agree on
// this setting.
func (d *Decoder) WithTIFFSizeSwitch() *Decoder {
	d.tiff = true
	return d
}

// WithYieldOnFullBuffer enables a mode where DecodeBytes stops as soon as
// its output slice is exactly filled, without attempting to read any
// further codes from the bit stream. In this mode input bytes are pulled
// only as far as the next code needs, so the bytes after the last decoded
// code are left unconsumed. This is needed for TIFF strips, whose
// decoded length is known out-of-band and which may have no END code, or
// may be immediately followed by foreign data.
func (d *Decoder) WithYieldOnFullBuffer(yield bool) *Decoder {
	d.yield = yield
	return d
}

// WithStrictLeadingClear rejects streams that do not open with an explicit
// CLEAR code, instead of silently performing an implicit reset. The source
// this package is modeled on leaves this choice to the implementer; this
// package defaults to the permissive behavior.
func (d *Decoder) WithStrictLeadingClear(strict bool) *Decoder {
	d.strict = strict
	return d
}

// HasEnded reports whether the END code has been read.
func (d *Decoder) HasEnded() bool {
	return d.hasEnded
}

// Reset restores the decoder to its freshly constructed state, clearing any
// InvalidCode condition and discarding buffered bits and words.
func (d *Decoder) Reset() {
	d.br = newBitReader(d.br.order)
	d.rbuf = reconBuffer{}
	d.hasEnded = false
	d.invalid = false
	d.resetTables()
}

func (d *Decoder) resetTables() {
	d.dict.init(d.minSize)
	d.clear = Code(1) << d.minSize
	d.end = d.clear + 1
	d.width = d.minSize + 1
	d.overflow = Code(1) << d.width
	d.nextCode = d.clear + 2
	d.hasLast = false
	d.lastCode = 0
	d.seenInit = false
}

func (d *Decoder) tiffBias() Code {
	if d.tiff {
		return 1
	}
	return 0
}

// bumpWidthIfNeeded mirrors compress/lzw's handleOverflow: once the next
// code to be assigned would overflow the current width (one code sooner
// for TIFF), the width grows by one bit, up to the 12-bit ceiling.
func (d *Decoder) bumpWidthIfNeeded() {
	probe := d.nextCode + d.tiffBias()
	if probe >= d.overflow && d.width < maxCodeSize {
		d.width++
		d.overflow <<= 1
	}
}

// DecodeBytes consumes packed codes from in and writes decoded bytes to
// out, resuming wherever the previous call left off. It returns how many
// bytes of each slice were used along with a Status; err is non-nil only
// for ErrInvalidCode, which is fatal for the stream until Reset is called.
func (d *Decoder) DecodeBytes(in, out []byte) (consumedIn, consumedOut int, status Status, err error) {
	if d.hasEnded {
		return 0, 0, StatusDone, nil
	}
	if d.invalid {
		return 0, 0, StatusOk, ErrInvalidCode
	}

	inCur, outCur := 0, 0

	for {
		if n := copy(out[outCur:], d.rbuf.buffer()); n > 0 {
			d.rbuf.consume(n)
			outCur += n
		}

		outRemaining := len(out) - outCur
		if outRemaining == 0 {
			if d.rbuf.pending() {
				break
			}
			if d.yield {
				break
			}
			// Fall through and read exactly one more code: it may be CLEAR
			// or END (no output produced either way), or it may need to be
			// buffered for the next call to drain.
		}

		if d.yield {
			for d.br.n < d.width && inCur < len(in) {
				inCur += d.br.refill(in[inCur : inCur+1])
			}
		} else {
			inCur += d.br.refill(in[inCur:])
		}
		code, ok := d.br.getBits(d.width)
		if !ok {
			st := StatusNoProgress
			if inCur > 0 || outCur > 0 {
				st = StatusOk
			}
			return inCur, outCur, st, nil
		}

		if !d.hasLast {
			switch {
			case code == d.clear:
				d.resetAfterClear()
				d.seenInit = true
				continue
			case code == d.end:
				d.hasEnded = true
				return inCur, outCur, StatusDone, nil
			case code > d.nextCode || code == d.nextCode:
				d.invalid = true
				return inCur, outCur, StatusOk, ErrInvalidCode
			case !d.seenInit && d.strict:
				d.invalid = true
				return inCur, outCur, StatusOk, ErrInvalidCode
			default:
				// A literal: the table already holds singletons regardless
				// of whether an explicit CLEAR has been seen.
				d.seenInit = true
				outRemaining = len(out) - outCur
				if outRemaining >= 1 {
					out[outCur] = byte(code)
					outCur++
				} else {
					d.rbuf.fillReconstruct(&d.dict, code)
				}
				d.hasLast, d.lastCode = true, code
				continue
			}
		}

		switch {
		case code == d.clear:
			d.resetAfterClear()
			continue
		case code == d.end:
			d.hasEnded = true
			return inCur, outCur, StatusDone, nil
		case code > d.nextCode:
			d.invalid = true
			return inCur, outCur, StatusOk, ErrInvalidCode
		}

		var depth int
		var firstByte byte
		outRemaining = len(out) - outCur
		if code == d.nextCode {
			depth = int(d.dict.depthOf(d.lastCode)) + 1
			if outRemaining >= depth {
				firstByte = d.dict.reconstruct(d.lastCode, out[outCur:outCur+depth-1])
				out[outCur+depth-1] = firstByte
			} else {
				d.rbuf.fillCscsc(&d.dict, d.lastCode)
				firstByte = d.rbuf.buf[0]
			}
		} else {
			depth = int(d.dict.depthOf(code))
			if outRemaining >= depth {
				firstByte = d.dict.reconstruct(code, out[outCur:outCur+depth])
			} else {
				d.rbuf.fillReconstruct(&d.dict, code)
				firstByte = d.rbuf.buf[0]
			}
		}

		if !d.dict.isFull() {
			d.dict.append(d.lastCode, firstByte)
			d.nextCode++
			d.bumpWidthIfNeeded()
		}

		if outRemaining >= depth {
			outCur += depth
		}
		d.hasLast, d.lastCode = true, code
	}

	st := StatusNoProgress
	if inCur > 0 || outCur > 0 {
		st = StatusOk
	}
	return inCur, outCur, st, nil
}

func (d *Decoder) resetAfterClear() {
	// dict.size backs the index append() assigns to a new entry, so it
	// must be rewound in lockstep with nextCode or future appends would
	// land at the wrong code.
	d.dict.init(d.minSize)
	d.nextCode = d.clear + 2
	d.width = d.minSize + 1
	d.overflow = Code(1) << d.width
	d.hasLast = false
}
