/**
 * Copyright (c) 2026, The gqlcodegen Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package jsonwriter provides a streaming JSON encoder that writes tokens directly to an
// io.Writer. Unlike encoding/json it never builds an intermediate value tree, which makes it a
// good fit for emitting large generated artifacts (such as persisted-operation manifests) with a
// deterministic field order chosen by the caller.
package jsonwriter

import (
	"io"
	"strconv"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

const initialStreamBufSize = 512

// Stream provides functions for writing JSON encoding. Writes are buffered and sent to the output
// on Flush. The first write error sticks: all subsequent writes become no-ops and the error is
// reported by Error and Flush.
type Stream struct {
	// Output stream
	w io.Writer

	// Buffer that sits in front of writes to w.
	buf []byte

	// Error occurred during writing
	err error
}

// NewStream creates a stream for writing data in JSON encoding.
func NewStream(w io.Writer) *Stream {
	return &Stream{
		w:   w,
		buf: make([]byte, 0, initialStreamBufSize),
	}
}

// Error returns error occurred during use of the stream.
func (stream *Stream) Error() error {
	return stream.err
}

// Flush writes any buffered data to the underlying io.Writer.
func (stream *Stream) Flush() error {
	if stream.err != nil {
		return stream.err
	}

	if len(stream.buf) > 0 {
		_, err := stream.w.Write(stream.buf)
		stream.buf = stream.buf[:0]
		if err != nil {
			stream.err = err
		}
	}

	return stream.err
}

func (stream *Stream) writeByte(b byte) {
	if stream.err == nil {
		stream.buf = append(stream.buf, b)
	}
}

func (stream *Stream) writeString(s string) {
	if stream.err == nil {
		stream.buf = append(stream.buf, s...)
	}
}

// WriteRaw writes s into the output without any encoding.
func (stream *Stream) WriteRaw(s string) {
	stream.writeString(s)
}

// WriteMore writes a ",".
func (stream *Stream) WriteMore() {
	stream.writeByte(',')
}

// WriteArrayStart writes a "[".
func (stream *Stream) WriteArrayStart() {
	stream.writeByte('[')
}

// WriteArrayEnd writes a "]".
func (stream *Stream) WriteArrayEnd() {
	stream.writeByte(']')
}

// WriteObjectStart writes a "{".
func (stream *Stream) WriteObjectStart() {
	stream.writeByte('{')
}

// WriteObjectField writes a `"field":`.
func (stream *Stream) WriteObjectField(field string) {
	stream.WriteString(field)
	stream.writeByte(':')
}

// WriteObjectEnd writes a "}".
func (stream *Stream) WriteObjectEnd() {
	stream.writeByte('}')
}

// WriteBool encodes a boolean value.
func (stream *Stream) WriteBool(b bool) {
	if b {
		stream.writeString("true")
	} else {
		stream.writeString("false")
	}
}

// WriteNull writes "null".
func (stream *Stream) WriteNull() {
	stream.writeString("null")
}

// WriteInt encodes an integer value.
func (stream *Stream) WriteInt(i int64) {
	if stream.err == nil {
		stream.buf = strconv.AppendInt(stream.buf, i, 10)
	}
}

// WriteFloat encodes a floating point value with the shortest representation that round-trips
// (matching encoding/json).
func (stream *Stream) WriteFloat(f float64) {
	if stream.err == nil {
		stream.buf = strconv.AppendFloat(stream.buf, f, 'g', -1, 64)
	}
}

const hexDigits = "0123456789abcdef"

// safeSet holds true for bytes that can be written into a JSON string without escaping. Unlike
// encoding/json's default behavior, "<", ">" and "&" are left alone: outputs are plain JSON files,
// not HTML payloads.
var safeSet = func() (set [utf8.RuneSelf]bool) {
	for b := ' '; b < utf8.RuneSelf; b++ {
		set[b] = b != '"' && b != '\\'
	}
	return
}()

// WriteString encodes s as a JSON string, surrounding it with double quotes and escaping
// characters as required by RFC 8259.
func (stream *Stream) WriteString(s string) {
	if stream.err != nil {
		return
	}

	buf := stream.buf
	buf = append(buf, '"')

	start := 0
	for i := 0; i < len(s); {
		b := s[i]
		if b < utf8.RuneSelf {
			if safeSet[b] {
				i++
				continue
			}
			if start < i {
				buf = append(buf, s[start:i]...)
			}
			switch b {
			case '"':
				buf = append(buf, '\\', '"')
			case '\\':
				buf = append(buf, '\\', '\\')
			case '\n':
				buf = append(buf, '\\', 'n')
			case '\r':
				buf = append(buf, '\\', 'r')
			case '\t':
				buf = append(buf, '\\', 't')
			default:
				// Other control characters (< 0x20) are written as \u00XX.
				buf = append(buf, '\\', 'u', '0', '0', hexDigits[b>>4], hexDigits[b&0xF])
			}
			i++
			start = i
			continue
		}

		// Multi-byte runes never require escaping; pass them through byte by byte. Invalid UTF-8
		// is handed over as-is and left for consumers to reject.
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	if start < len(s) {
		buf = append(buf, s[start:]...)
	}

	buf = append(buf, '"')
	stream.buf = buf
}

var jsonConfig = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteValue encodes an arbitrary value with json-iterator and writes the result. It is the
// fallback for values that have no dedicated Write function (such as maps decoded from user
// configuration).
func (stream *Stream) WriteValue(v interface{}) {
	if stream.err != nil {
		return
	}

	encoded, err := jsonConfig.Marshal(v)
	if err != nil {
		stream.err = err
		return
	}
	stream.buf = append(stream.buf, encoded...)
}
