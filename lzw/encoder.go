package lzw

// Encoder is the sans-IO mirror of Decoder: it turns bytes into a packed
// LZW code stream by walking a symbol trie and writing codes through a
// bitWriter. Like Decoder, it is a plain value and never touches an
// io.Writer itself.
type Encoder struct {
	bw   bitWriter
	trie symbolTrie

	minSize uint
	tiff    bool

	clear, end Code
	width      uint
	overflow   Code

	currentCode      Code
	needLeadClear    bool
	finishing        bool
	finishPrefixDone bool
	hasEnded         bool
	invalid          bool
}

// NewEncoder returns an Encoder for the given bit order and minimum code
// size, clamped to the supported [2, 12] range.
func NewEncoder(order BitOrder, minSize int) *Encoder {
	e := &Encoder{
		bw:      newBitWriter(order),
		minSize: clampCodeSize(minSize),
	}
	e.resetTables()
	return e
}

// WithTIFFSizeSwitch enables the TIFF flavor, bumping the code width one
// code earlier than the GIF rule. It must match the decoder's setting.
func (e *Encoder) WithTIFFSizeSwitch() *Encoder {
	e.tiff = true
	return e
}

// HasEnded reports whether the END code and all trailing padding have been
// fully flushed to an output slice.
func (e *Encoder) HasEnded() bool {
	return e.hasEnded
}

// Finish marks the input as complete. Once a call to EncodeBytes drains
// whatever in it is given, the encoder flushes any unemitted prefix code,
// emits END, and pads to a byte boundary. Any further input passed to
// EncodeBytes after HasEnded reports true is silently ignored rather than
// encoded: the source this package is modeled on leaves that case
// unspecified, and discarding it is simpler than resurrecting a stream
// that has already been closed out.
func (e *Encoder) Finish() {
	e.finishing = true
}

// Reset restores the encoder to its freshly constructed state.
func (e *Encoder) Reset() {
	e.bw = newBitWriter(e.bw.order)
	e.finishing = false
	e.finishPrefixDone = false
	e.hasEnded = false
	e.invalid = false
	e.resetTables()
}

func (e *Encoder) resetTables() {
	e.trie.init(e.minSize)
	e.clear = Code(1) << e.minSize
	e.end = e.clear + 1
	e.width = e.minSize + 1
	e.overflow = Code(1) << e.width
	e.currentCode = e.clear
	e.needLeadClear = true
}

func (e *Encoder) tiffBias() Code {
	if e.tiff {
		return 1
	}
	return 0
}

// bumpWidthIfNeeded runs the trie's table construction one entry ahead of
// Decoder.bumpWidthIfNeeded's counter, so it takes a strictly-greater
// comparison where the decoder takes >=: extra is 0 for a code that has
// already been inserted into the trie (the common case), or 1 when
// accounting for the phantom entry a decoder will add for a final
// leftover prefix that the encoder itself never inserts.
func (e *Encoder) bumpWidthIfNeeded(extra Code) {
	probe := e.trie.size + extra + e.tiffBias()
	if probe > e.overflow && e.width < maxCodeSize {
		e.width++
		e.overflow <<= 1
	}
}

// EncodeBytes packs codes for the bytes of in and writes them to out,
// resuming wherever the previous call left off. It returns how many bytes
// of each slice were used along with a Status; err is non-nil only for
// ErrInvalidCode, reported when an input byte does not fit in min_size
// bits (only possible when min_size < 8). The offending byte is not
// consumed.
func (e *Encoder) EncodeBytes(in, out []byte) (consumedIn, consumedOut int, status Status, err error) {
	if e.hasEnded {
		return 0, 0, StatusDone, nil
	}
	if e.invalid {
		return 0, 0, StatusOk, ErrInvalidCode
	}

	outCur := 0
	if e.needLeadClear {
		if !e.bw.push(e.clear, e.width) {
			panic("lzw: fresh bit accumulator reported full")
		}
		e.needLeadClear = false
	}
	outCur += e.bw.flush(out[outCur:])

	inCur := 0
	for inCur < len(in) {
		if len(out)-outCur == 0 && e.bw.full(e.width) {
			break
		}

		b := in[inCur]
		if e.minSize < 8 && Code(b) >= e.clear {
			e.invalid = true
			return inCur, outCur, StatusOk, ErrInvalidCode
		}

		if next, ok := e.trie.lookup(e.currentCode, b); ok {
			e.currentCode = next
			inCur++
			continue
		}

		if !e.bw.push(e.currentCode, e.width) {
			break
		}
		if !e.trie.isFull() {
			e.trie.insert(e.currentCode, b)
			e.bumpWidthIfNeeded(0)
		}
		e.currentCode = Code(b)
		inCur++

		if e.trie.isFull() {
			if e.bw.push(e.clear, e.width) {
				e.trie.reset(e.minSize)
				e.width = e.minSize + 1
				e.overflow = Code(1) << e.width
			}
		}

		outCur += e.bw.flush(out[outCur:])
	}
	outCur += e.bw.flush(out[outCur:])

	if inCur == len(in) && e.finishing && e.currentCode != e.end {
		if !e.finishPrefixDone {
			if e.currentCode != e.clear {
				if !e.bw.push(e.currentCode, e.width) {
					return finishStatus(inCur, outCur)
				}
				e.bumpWidthIfNeeded(1)
			}
			e.finishPrefixDone = true
		}
		if !e.bw.push(e.end, e.width) {
			return finishStatus(inCur, outCur)
		}
		e.currentCode = e.end
		e.bw.padToByte()
		outCur += e.bw.flush(out[outCur:])
	}

	if inCur == len(in) && e.currentCode == e.end {
		if e.bw.empty() {
			e.hasEnded = true
			return inCur, outCur, StatusDone, nil
		}
	}

	return finishStatus(inCur, outCur)
}

func finishStatus(consumedIn, consumedOut int) (int, int, Status, error) {
	if consumedIn > 0 || consumedOut > 0 {
		return consumedIn, consumedOut, StatusOk, nil
	}
	return consumedIn, consumedOut, StatusNoProgress, nil
}
