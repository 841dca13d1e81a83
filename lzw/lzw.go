// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lzw implements a sans-IO Lempel-Ziv-Welch codec compatible with
// the bit-stream conventions used by GIF image data and TIFF LZW-compressed
// strips.
//
// Unlike compress/lzw, the Decoder and Encoder types here do not own an
// io.Reader or io.Writer. Callers drive the codec by repeatedly supplying
// input and output byte slices to DecodeBytes/EncodeBytes; all state needed
// to resume a stream across calls lives inside the codec value. Package
// github.com/hhrutter/golzw/lzwio wraps this core with bufio-style
// io.Reader/io.Writer adaptors.
package lzw

import "errors"

// Code is an LZW dictionary code. Valid values fit in 12 bits.
type Code uint16

const (
	maxWidth     = 12
	maxCodeCount = 1 << maxWidth
	noCode       = Code(0xffff)
)

// BitOrder selects how codes are packed into the underlying byte stream.
type BitOrder int

const (
	// MSB packs the oldest bit into the most significant free position of
	// each byte. This is the bit order used by TIFF and PDF LZWDecode.
	MSB BitOrder = iota
	// LSB packs the oldest bit into the least significant free position of
	// each byte. This is the bit order used by GIF.
	LSB
)

func (o BitOrder) String() string {
	if o == LSB {
		return "LSB"
	}
	return "MSB"
}

// Status reports what kind of progress, if any, a call to DecodeBytes or
// EncodeBytes made.
type Status int

const (
	// StatusOk means the call consumed input and/or produced output but the
	// stream is not yet finished.
	StatusOk Status = iota
	// StatusNoProgress means neither input was consumed nor output produced.
	// The caller must supply more input, more output room, or treat the
	// stream as stalled.
	StatusNoProgress
	// StatusDone means the end-of-stream code has been consumed (decoder)
	// or emitted (encoder). Further calls are no-ops returning StatusDone.
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusNoProgress:
		return "NoProgress"
	case StatusDone:
		return "Done"
	default:
		return "Status(?)"
	}
}

// ErrInvalidCode is returned when a decoder reads a code outside the legal
// range for its current table, or when an encoder is fed a byte that does
// not fit in min-size bits. The error is fatal for the current stream; call
// Reset to recover.
var ErrInvalidCode = errors.New("lzw: invalid code")

// minCodeSize and maxCodeSize bound the caller-chosen minimum code size.
const (
	minCodeSize = 2
	maxCodeSize = 12
)

func clampCodeSize(minSize int) uint {
	if minSize < minCodeSize {
		minSize = minCodeSize
	}
	if minSize > maxCodeSize {
		minSize = maxCodeSize
	}
	return uint(minSize)
}
