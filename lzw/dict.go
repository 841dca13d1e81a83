package lzw

// dictEntry is one node of the decoder's prefix table. The word for a code
// is the concatenation of the word for prev with b; depth is that word's
// length in bytes. first caches the word's leading byte so callers never
// need to walk the prefix chain just to find it.
type dictEntry struct {
	prev  Code
	b     byte
	depth uint16
	first byte
}

// dictionary is the decoder-side code table: code -> (prev, byte, depth).
// Entries are appended in order, so prev[code] < code always holds and the
// backing arrays never need to grow past maxCodeCount.
type dictionary struct {
	entries [maxCodeCount]dictEntry
	size    Code
}

// init resets the table to contain only the literal singletons for
// min_size plus reserved, unexpandable placeholders for CLEAR and END.
func (d *dictionary) init(minSize uint) {
	clear := Code(1) << minSize
	for b := Code(0); b < clear; b++ {
		d.entries[b] = dictEntry{prev: 0, b: byte(b), depth: 1, first: byte(b)}
	}
	d.entries[clear] = dictEntry{depth: 0}
	d.entries[clear+1] = dictEntry{depth: 0}
	d.size = clear + 2
}

func (d *dictionary) isFull() bool {
	return d.size >= maxCodeCount
}

// append adds a new entry extending prev by b and returns its code. The
// caller must ensure the table is not full.
func (d *dictionary) append(prev Code, b byte) Code {
	idx := d.size
	p := &d.entries[prev]
	d.entries[idx] = dictEntry{prev: prev, b: b, depth: p.depth + 1, first: p.first}
	d.size++
	return idx
}

func (d *dictionary) depthOf(code Code) uint16 {
	return d.entries[code].depth
}

func (d *dictionary) firstByteOf(code Code) byte {
	return d.entries[code].first
}

// reconstruct walks the prefix chain for code and writes its word into
// out[:depth(code)], returning the word's first byte. It steps at most
// depth(code) times, which bounds the walk even if entries were somehow
// corrupted, satisfying the invariant that the chain never exceeds code
// itself.
func (d *dictionary) reconstruct(code Code, out []byte) byte {
	depth := int(d.entries[code].depth)
	cur := code
	for i := depth - 1; i >= 0; i-- {
		e := &d.entries[cur]
		out[i] = e.b
		cur = e.prev
	}
	return out[0]
}

// reconBuffer holds the tail of a decoded word that did not fit in the
// caller's output slice, so it can be drained across subsequent calls.
type reconBuffer struct {
	buf        [maxCodeCount]byte
	read, write int
}

func (r *reconBuffer) fillReconstruct(dict *dictionary, code Code) {
	depth := int(dict.entries[code].depth)
	dict.reconstruct(code, r.buf[:depth])
	r.read, r.write = 0, depth
}

// fillCscsc implements the LZW self-reference: the word for a code equal
// to next_code is the previous word followed by its own first byte.
func (r *reconBuffer) fillCscsc(dict *dictionary, prevCode Code) {
	depth := int(dict.entries[prevCode].depth)
	dict.reconstruct(prevCode, r.buf[:depth])
	r.buf[depth] = r.buf[0]
	r.read, r.write = 0, depth+1
}

func (r *reconBuffer) buffer() []byte {
	return r.buf[r.read:r.write]
}

func (r *reconBuffer) consume(n int) {
	r.read += n
}

func (r *reconBuffer) pending() bool {
	return r.read < r.write
}
