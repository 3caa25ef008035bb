package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"
)

const indentUnit = "  "

// Format re-serializes a JSON document in the corpus layout: two-space
// indentation, one element per line, `"key" : value` pairs and `{}`/`[]`
// for empty containers. Key order and number literals are kept as found.
// Non-ASCII characters are written as \u escapes and HTML characters are
// left alone. The output has no trailing newline.
func Format(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	f := &formatter{dec: dec}
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	if err := f.value(tok, 0); err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("format: trailing data after document")
	}
	return f.buf.Bytes(), nil
}

type formatter struct {
	dec *json.Decoder
	buf bytes.Buffer
}

func (f *formatter) value(tok json.Token, depth int) error {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return f.object(depth)
		case '[':
			return f.array(depth)
		default:
			return fmt.Errorf("unexpected %q", rune(v))
		}
	case string:
		writeString(&f.buf, v)
	case json.Number:
		f.buf.WriteString(v.String())
	case bool:
		if v {
			f.buf.WriteString("true")
		} else {
			f.buf.WriteString("false")
		}
	case nil:
		f.buf.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %T", tok)
	}
	return nil
}

func (f *formatter) object(depth int) error {
	if !f.dec.More() {
		if _, err := f.dec.Token(); err != nil {
			return err
		}
		f.buf.WriteString("{}")
		return nil
	}

	f.buf.WriteByte('{')
	for f.dec.More() {
		keyTok, err := f.dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("object key is %T", keyTok)
		}
		f.newline(depth + 1)
		writeString(&f.buf, key)
		f.buf.WriteString(" : ")

		valTok, err := f.dec.Token()
		if err != nil {
			return err
		}
		if err := f.value(valTok, depth+1); err != nil {
			return err
		}
		if f.dec.More() {
			f.buf.WriteByte(',')
		}
	}
	if _, err := f.dec.Token(); err != nil {
		return err
	}
	f.newline(depth)
	f.buf.WriteByte('}')
	return nil
}

func (f *formatter) array(depth int) error {
	if !f.dec.More() {
		if _, err := f.dec.Token(); err != nil {
			return err
		}
		f.buf.WriteString("[]")
		return nil
	}

	f.buf.WriteByte('[')
	for f.dec.More() {
		f.newline(depth + 1)
		tok, err := f.dec.Token()
		if err != nil {
			return err
		}
		if err := f.value(tok, depth+1); err != nil {
			return err
		}
		if f.dec.More() {
			f.buf.WriteByte(',')
		}
	}
	if _, err := f.dec.Token(); err != nil {
		return err
	}
	f.newline(depth)
	f.buf.WriteByte(']')
	return nil
}

func (f *formatter) newline(depth int) {
	f.buf.WriteByte('\n')
	for range depth {
		f.buf.WriteString(indentUnit)
	}
}

const hexDigits = "0123456789abcdef"

// writeString writes s as an ASCII-only JSON string literal.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r == '\b':
			buf.WriteString(`\b`)
		case r == '\f':
			buf.WriteString(`\f`)
		case r < 0x20:
			writeEscape(buf, r)
		case r < utf8.RuneSelf:
			buf.WriteByte(byte(r))
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			writeEscape(buf, hi)
			writeEscape(buf, lo)
		default:
			writeEscape(buf, r)
		}
	}
	buf.WriteByte('"')
}

func writeEscape(buf *bytes.Buffer, r rune) {
	buf.WriteString(`\u`)
	buf.WriteByte(hexDigits[r>>12&0xF])
	buf.WriteByte(hexDigits[r>>8&0xF])
	buf.WriteByte(hexDigits[r>>4&0xF])
	buf.WriteByte(hexDigits[r&0xF])
}
