package lzw

import (
	"bytes"
	"testing"
)

// encodeAll drives an Encoder to completion using a small, fixed-size
// output window, exercising the same resumable call pattern a streaming
// adaptor would use.
func encodeAll(t *testing.T, e *Encoder, in []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	buf := make([]byte, 3)
	e.Finish()
	inCur := 0
	for {
		n, m, status, err := e.EncodeBytes(in[inCur:], buf)
		if err != nil {
			t.Fatalf("EncodeBytes: %v", err)
		}
		inCur += n
		out.Write(buf[:m])
		if status == StatusDone {
			break
		}
		if n == 0 && m == 0 {
			t.Fatalf("EncodeBytes made no progress (status=%v)", status)
		}
	}
	return out.Bytes()
}

// decodeAll drives a Decoder to completion using a small, fixed-size
// output window.
func decodeAll(t *testing.T, d *Decoder, in []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	buf := make([]byte, 3)
	inCur := 0
	for {
		n, m, status, err := d.DecodeBytes(in[inCur:], buf)
		if err != nil {
			t.Fatalf("DecodeBytes: %v", err)
		}
		inCur += n
		out.Write(buf[:m])
		if status == StatusDone {
			break
		}
		if n == 0 && m == 0 {
			t.Fatalf("DecodeBytes made no progress (status=%v)", status)
		}
	}
	return out.Bytes()
}

func roundTrip(t *testing.T, order BitOrder, minSize int, tiff bool, in []byte) []byte {
	t.Helper()
	e := NewEncoder(order, minSize)
	d := NewDecoder(order, minSize)
	if tiff {
		e.WithTIFFSizeSwitch()
		d.WithTIFFSizeSwitch()
	}
	packed := encodeAll(t, e, in)
	return decodeAll(t, d, packed)
}

func TestRoundTripGIFLSB(t *testing.T) {
	in := []byte("TOBEORNOTTOBEORTOBEORNOT")
	got := roundTrip(t, LSB, 8, false, in)
	if !bytes.Equal(got, in) {
		t.Fatalf("got %q, want %q", got, in)
	}
}

func TestRoundTripTIFFMSB(t *testing.T) {
	in := []byte("TOBEORNOTTOBEORTOBEORNOT")
	got := roundTrip(t, MSB, 8, true, in)
	if !bytes.Equal(got, in) {
		t.Fatalf("got %q, want %q", got, in)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	got := roundTrip(t, LSB, 8, false, nil)
	if len(got) != 0 {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestRoundTripSmallMinSize(t *testing.T) {
	in := []byte{0, 1, 2, 3, 1, 0, 2, 3, 0, 1, 2, 3}
	got := roundTrip(t, MSB, 2, false, in)
	if !bytes.Equal(got, in) {
		t.Fatalf("got %v, want %v", got, in)
	}
}

func TestRoundTripOneMiBOneByteAtATime(t *testing.T) {
	in := make([]byte, 1<<20)
	for i := range in {
		in[i] = byte(i * 7 % 251)
	}
	e := NewEncoder(LSB, 8)
	var packed bytes.Buffer
	small := make([]byte, 1)
	for i := 0; i < len(in); i++ {
		n, m, _, err := e.EncodeBytes(in[i:i+1], small)
		if err != nil {
			t.Fatalf("EncodeBytes: %v", err)
		}
		packed.Write(small[:m])
		if n == 0 {
			i--
		}
	}
	e.Finish()
	for {
		n, m, status, err := e.EncodeBytes(nil, small)
		if err != nil {
			t.Fatalf("EncodeBytes: %v", err)
		}
		packed.Write(small[:m])
		if status == StatusDone {
			break
		}
		_ = n
	}

	d := NewDecoder(LSB, 8)
	got := decodeAll(t, d, packed.Bytes())
	if !bytes.Equal(got, in) {
		t.Fatalf("1MiB round trip mismatch")
	}
}

func TestResetTwiceIsIdentical(t *testing.T) {
	in := []byte("abracadabra")
	e := NewEncoder(LSB, 8)
	first := encodeAll(t, e, in)
	e.Reset()
	second := encodeAll(t, e, in)
	if !bytes.Equal(first, second) {
		t.Fatalf("Reset did not reproduce identical output:\n%v\n%v", first, second)
	}
}

func TestDecodeClearEndIsEmpty(t *testing.T) {
	d := NewDecoder(LSB, 2)
	clear := Code(1) << 2
	end := clear + 1
	var bw bitWriter
	bw = newBitWriter(LSB)
	bw.push(clear, 3)
	bw.push(end, 3)
	bw.padToByte()
	buf := make([]byte, 8)
	n := bw.flush(buf)

	out := decodeAll(t, d, buf[:n])
	if len(out) != 0 {
		t.Fatalf("got %v, want empty", out)
	}
}

func TestDecodeSingleLiteral(t *testing.T) {
	d := NewDecoder(LSB, 2)
	clear := Code(1) << 2
	end := clear + 1
	bw := newBitWriter(LSB)
	bw.push(clear, 3)
	bw.push(0, 3)
	bw.push(end, 3)
	bw.padToByte()
	buf := make([]byte, 8)
	n := bw.flush(buf)

	out := decodeAll(t, d, buf[:n])
	if !bytes.Equal(out, []byte{0}) {
		t.Fatalf("got %v, want [0]", out)
	}
}

func TestDecodeInvalidFirstCode(t *testing.T) {
	d := NewDecoder(LSB, 2)
	clear := Code(1) << 2
	bw := newBitWriter(LSB)
	// A code equal to the about-to-be-assigned next_code is illegal as the
	// very first code after CLEAR: there is no previous word to repeat.
	bw.push(clear, 3)
	bw.push(clear+2, 3)
	bw.padToByte()
	buf := make([]byte, 8)
	n := bw.flush(buf)

	_, _, _, err := d.DecodeBytes(buf[:n], make([]byte, 4))
	if err != ErrInvalidCode {
		t.Fatalf("got err=%v, want ErrInvalidCode", err)
	}
}

func TestDecodeYieldOnFullBufferStopsExactly(t *testing.T) {
	// In yield mode the decoder pulls input only as far as the next code
	// needs, so once out is exactly full the bytes holding the trailing
	// END code are left unconsumed: n must stop short of len(packed).
	in := make([]byte, 2000)
	for i := range in {
		in[i] = byte(i * 7 % 251)
	}
	e := NewEncoder(MSB, 8)
	e.WithTIFFSizeSwitch()
	packed := encodeAll(t, e, in)

	d := NewDecoder(MSB, 8)
	d.WithTIFFSizeSwitch()
	d.WithYieldOnFullBuffer(true)

	out := make([]byte, len(in))
	n, _, status, err := d.DecodeBytes(packed, out)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if status == StatusDone {
		t.Fatalf("yield-on-full decoder should not report Done without reading END")
	}
	if n >= len(packed) {
		t.Fatalf("yield-on-full decoder consumed all %d input bytes (n=%d); it must stop before reading the END code's bits", len(packed), n)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("got %v, want %v", out, in)
	}
}

func TestDictionaryOverflowResetsViaClear(t *testing.T) {
	in := make([]byte, 0, 20000)
	for i := 0; i < 20000; i++ {
		in = append(in, byte(i*i%997))
	}
	got := roundTrip(t, LSB, 8, false, in)
	if !bytes.Equal(got, in) {
		t.Fatalf("overflow round trip mismatch, len(got)=%d len(want)=%d", len(got), len(in))
	}
}
