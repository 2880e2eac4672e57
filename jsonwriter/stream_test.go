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

package jsonwriter_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/zirkelc/gqlcodegen/jsonwriter"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestJSONWriter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "JSON Writer Suite")
}

// errWriter fails every write with the given error.
type errWriter struct {
	err error
}

func (w errWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func encodeString(s string) string {
	var buf strings.Builder
	stream := jsonwriter.NewStream(&buf)
	stream.WriteString(s)
	Expect(stream.Flush()).Should(Succeed())
	return buf.String()
}

var _ = Describe("Stream", func() {
	var (
		buf    strings.Builder
		stream *jsonwriter.Stream
	)

	BeforeEach(func() {
		buf.Reset()
		stream = jsonwriter.NewStream(&buf)
	})

	It("writes JSON tokens in caller-determined order", func() {
		stream.WriteObjectStart()
		stream.WriteObjectField("query")
		stream.WriteString("{ me { name } }")
		stream.WriteMore()
		stream.WriteObjectField("count")
		stream.WriteInt(42)
		stream.WriteMore()
		stream.WriteObjectField("enabled")
		stream.WriteBool(true)
		stream.WriteMore()
		stream.WriteObjectField("ratio")
		stream.WriteFloat(0.5)
		stream.WriteMore()
		stream.WriteObjectField("empty")
		stream.WriteNull()
		stream.WriteObjectEnd()

		Expect(stream.Flush()).Should(Succeed())
		Expect(buf.String()).Should(Equal(
			`{"query":"{ me { name } }","count":42,"enabled":true,"ratio":0.5,"empty":null}`))

		// The output must be valid JSON.
		var decoded map[string]interface{}
		Expect(json.Unmarshal([]byte(buf.String()), &decoded)).Should(Succeed())
	})

	It("writes arrays", func() {
		stream.WriteArrayStart()
		stream.WriteInt(1)
		stream.WriteMore()
		stream.WriteInt(2)
		stream.WriteArrayEnd()
		Expect(stream.Flush()).Should(Succeed())
		Expect(buf.String()).Should(Equal("[1,2]"))
	})

	It("escapes strings per RFC 8259", func() {
		Expect(encodeString(`plain`)).Should(Equal(`"plain"`))
		Expect(encodeString("tab\there")).Should(Equal(`"tab\there"`))
		Expect(encodeString("line\nbreak")).Should(Equal(`"line\nbreak"`))
		Expect(encodeString("quote\"slash\\")).Should(Equal(`"quote\"slash\\"`))
		Expect(encodeString("\x01")).Should(Equal(`""`))
	})

	It("does not escape HTML-sensitive characters", func() {
		Expect(encodeString("<a href=\"x\">&</a>")).Should(Equal(`"<a href=\"x\">&</a>"`))
	})

	It("passes multi-byte runes through unmodified", func() {
		Expect(encodeString("héllo, 世界")).Should(Equal(`"héllo, 世界"`))
	})

	It("falls back to json-iterator for arbitrary values", func() {
		stream.WriteValue(map[string]int{"a": 1})
		Expect(stream.Flush()).Should(Succeed())
		Expect(buf.String()).Should(Equal(`{"a":1}`))
	})

	It("records write error and makes subsequent writes no-ops", func() {
		writeErr := errors.New("disk full")
		stream := jsonwriter.NewStream(errWriter{err: writeErr})
		stream.WriteString("something")
		Expect(stream.Flush()).Should(MatchError(writeErr))
		stream.WriteString("more")
		Expect(stream.Flush()).Should(MatchError(writeErr))
		Expect(stream.Error()).Should(MatchError(writeErr))
	})
})
