package writer

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"unicode/utf16"
)

// Minimal PDF object model for the generator. Serialization is stable:
// dictionary keys are emitted sorted and numbers use fixed formatting, so
// identical input pages always produce identical bytes.

type object interface {
	serialize(b *bytes.Buffer)
}

type name string

func (n name) serialize(b *bytes.Buffer) {
	b.WriteByte('/')
	b.WriteString(string(n))
}

type integer int64

func (i integer) serialize(b *bytes.Buffer) {
	b.WriteString(strconv.FormatInt(int64(i), 10))
}

type real float64

func (r real) serialize(b *bytes.Buffer) {
	b.WriteString(strconv.FormatFloat(float64(r), 'f', 2, 64))
}

type literal []byte // literal string; caller escapes nothing, escaping happens here

func (s literal) serialize(b *bytes.Buffer) {
	b.WriteByte('(')
	for _, c := range s {
		switch c {
		case '\\', '(', ')':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(')')
}

// textString encodes a human-readable string for an information or
// outline entry. Plain ASCII stays a literal; anything else becomes a
// UTF-16BE hex string with a BOM, since literal strings are read as
// PDFDocEncoding and would garble CJK metadata.
func textString(s string) object {
	ascii := true
	for _, r := range s {
		if r < 0x20 || r > 0x7E {
			ascii = false
			break
		}
	}
	if ascii {
		return literal(s)
	}
	units := utf16.Encode([]rune(s))
	out := make([]byte, 2, 2+len(units)*2)
	out[0], out[1] = 0xFE, 0xFF
	for _, u := range units {
		out = append(out, byte(u>>8), byte(u))
	}
	return hexstr(out)
}

type hexstr []byte

func (s hexstr) serialize(b *bytes.Buffer) {
	b.WriteByte('<')
	for _, c := range s {
		fmt.Fprintf(b, "%02X", c)
	}
	b.WriteByte('>')
}

type array []object

func (a array) serialize(b *bytes.Buffer) {
	b.WriteByte('[')
	for i, o := range a {
		if i > 0 {
			b.WriteByte(' ')
		}
		o.serialize(b)
	}
	b.WriteByte(']')
}

type dict map[string]object

func (d dict) serialize(b *bytes.Buffer) {
	b.WriteString("<<")
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte('/')
		b.WriteString(k)
		b.WriteByte(' ')
		d[k].serialize(b)
	}
	b.WriteString(">>")
}

type stream struct {
	dict dict
	data []byte
}

func (s *stream) serialize(b *bytes.Buffer) {
	if s.dict == nil {
		s.dict = dict{}
	}
	s.dict["Length"] = integer(len(s.data))
	s.dict.serialize(b)
	b.WriteString("stream\n")
	b.Write(s.data)
	b.WriteString("\nendstream")
}

type ref int // 1-based object number, generation 0

func (r ref) serialize(b *bytes.Buffer) {
	b.WriteString(strconv.Itoa(int(r)))
	b.WriteString(" 0 R")
}

// document accumulates numbered objects in emission order.
type document struct {
	objects []object
}

// add reserves the next object number for obj.
func (d *document) add(obj object) ref {
	d.objects = append(d.objects, obj)
	return ref(len(d.objects))
}

// reserve claims an object number whose body is supplied later.
func (d *document) reserve() ref {
	d.objects = append(d.objects, nil)
	return ref(len(d.objects))
}

func (d *document) set(r ref, obj object) { d.objects[r-1] = obj }

// serialize writes the whole file: header, body, xref table, trailer.
func (d *document) serialize(trailer dict) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n%\xE2\xE3\xCF\xD3\n")

	offsets := make([]int, len(d.objects))
	for i, obj := range d.objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		obj.serialize(&buf)
		buf.WriteString("\nendobj\n")
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(d.objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	trailer["Size"] = integer(len(d.objects) + 1)
	buf.WriteString("trailer\n")
	trailer.serialize(&buf)
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xrefOffset)
	return buf.Bytes()
}
