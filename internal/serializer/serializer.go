// Package serializer renders a document tree back into JSON text, either
// compact or tab-indented. Strings are written verbatim between quotes
// with no escaping, mirroring the parser, and numbers are printed in
// fixed notation with six fractional digits.
package serializer

import (
	"io"
	"strconv"
	"strings"

	"github.com/mcncl/jsondom/internal/value"
)

// Serializer is responsible for rendering document trees as JSON text
type Serializer struct{}

// NewSerializer creates a new Serializer instance
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Serialize renders v compactly: no whitespace beyond the ',' and ':'
// separators.
func (s *Serializer) Serialize(v *value.Value) string {
	var b strings.Builder
	write(&b, v, 0, false)
	return b.String()
}

// SerializeIndent renders v across multiple lines, one tab stop per
// nesting level, with object entries written as "key": value.
func (s *Serializer) SerializeIndent(v *value.Value) string {
	var b strings.Builder
	write(&b, v, 0, true)
	return b.String()
}

// Fprint writes v to w in the indented form at nesting level 0. This is
// the stream integration: printing a value means pretty output.
func Fprint(w io.Writer, v *value.Value) error {
	var b strings.Builder
	write(&b, v, 0, true)
	_, err := io.WriteString(w, b.String())
	return err
}

// formatNumber reproduces fixed-notation default float printing, trailing
// zeros included: 1 renders as "1.000000".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

func writeTabs(b *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		b.WriteByte('\t')
	}
}

func write(b *strings.Builder, v *value.Value, depth int, pretty bool) {
	switch v.Kind() {
	case value.KindNull:
		b.WriteString("null")
	case value.KindBool:
		x, _ := v.AsBool()
		if x {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.KindNumber:
		f, _ := v.AsNumber()
		b.WriteString(formatNumber(f))
	case value.KindString:
		str, _ := v.AsString()
		b.WriteByte('"')
		b.WriteString(str)
		b.WriteByte('"')
	case value.KindArray:
		elems, _ := v.Elems()
		b.WriteByte('[')
		if pretty {
			b.WriteByte('\n')
		}
		for i := range elems {
			if i > 0 {
				b.WriteByte(',')
				if pretty {
					b.WriteByte('\n')
				}
			}
			if pretty {
				writeTabs(b, depth+1)
			}
			write(b, &elems[i], depth+1, pretty)
		}
		if pretty {
			if len(elems) > 0 {
				b.WriteByte('\n')
			}
			writeTabs(b, depth)
		}
		b.WriteByte(']')
	case value.KindObject:
		// Entry order is whatever the map yields; it is unspecified.
		entries, _ := v.Entries()
		b.WriteByte('{')
		if pretty {
			b.WriteByte('\n')
		}
		first := true
		for k, e := range entries {
			if !first {
				b.WriteByte(',')
				if pretty {
					b.WriteByte('\n')
				}
			}
			first = false
			if pretty {
				writeTabs(b, depth+1)
			}
			b.WriteByte('"')
			b.WriteString(k)
			b.WriteByte('"')
			b.WriteByte(':')
			if pretty {
				b.WriteByte(' ')
			}
			write(b, e, depth+1, pretty)
		}
		if pretty {
			if !first {
				b.WriteByte('\n')
			}
			writeTabs(b, depth)
		}
		b.WriteByte('}')
	}
}
