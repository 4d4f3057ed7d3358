package abx

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	kerrors "github.com/sdex/configviewer/internal/errors"
)

// Magic is the header of every binary XML document.
var Magic = []byte{'A', 'B', 'X', 0x00}

// XML pull parser event codes, stored in the low nibble of a token.
const (
	eventStartDocument         = 0
	eventEndDocument           = 1
	eventStartTag              = 2
	eventEndTag                = 3
	eventText                  = 4
	eventCDSect                = 5
	eventEntityRef             = 6
	eventIgnorableWhitespace   = 7
	eventProcessingInstruction = 8
	eventComment               = 9
	eventDocDecl               = 10
	eventAttribute             = 15
)

// Payload types, stored in the high nibble of a token.
const (
	typeNull           = 1 << 4
	typeString         = 2 << 4
	typeStringInterned = 3 << 4
	typeBytesHex       = 4 << 4
	typeBytesBase64    = 5 << 4
	typeInt            = 6 << 4
	typeIntHex         = 7 << 4
	typeLong           = 8 << 4
	typeLongHex        = 9 << 4
	typeFloat          = 10 << 4
	typeDouble         = 11 << 4
	typeBooleanTrue    = 12 << 4
	typeBooleanFalse   = 13 << 4
)

const newInternedString = 0xFFFF

// IsBinary reports whether data starts with the binary XML magic.
func IsBinary(data []byte) bool {
	return bytes.HasPrefix(data, Magic)
}

// ToText converts a binary XML document to its textual form.
func ToText(data []byte) (string, error) {
	var out strings.Builder
	if err := Decode(bytes.NewReader(data), &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Decode reads a binary XML document from r and writes textual XML to w.
func Decode(r io.Reader, w io.Writer) error {
	d := &decoder{in: bufio.NewReader(r), out: bufio.NewWriter(w)}
	if err := d.run(); err != nil {
		return err
	}
	return d.out.Flush()
}

type decoder struct {
	in       *bufio.Reader
	out      *bufio.Writer
	interned []string
	// openTag is set while attributes of the last start tag may still follow.
	openTag bool
	depth   int
}

func (d *decoder) run() error {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(d.in, magic); err != nil || !bytes.Equal(magic, Magic) {
		return fmt.Errorf("%w: missing ABX header", kerrors.ErrInvalidABX)
	}

	for {
		token, err := d.in.ReadByte()
		if err == io.EOF {
			if d.depth != 0 {
				return fmt.Errorf("%w: %d unclosed elements", kerrors.ErrInvalidABX, d.depth)
			}
			d.closeOpenTag()
			return nil
		}
		if err != nil {
			return d.fail(err)
		}

		event, kind := token&0x0f, token&0xf0
		if event == eventAttribute {
			if err := d.attribute(kind); err != nil {
				return err
			}
			continue
		}

		d.closeOpenTag()
		done, err := d.event(event, kind)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (d *decoder) event(event, kind byte) (bool, error) {
	switch event {
	case eventStartDocument:
		d.out.WriteString("<?xml version='1.0' encoding='UTF-8' standalone='yes' ?>\n")
	case eventEndDocument:
		if d.depth != 0 {
			return false, fmt.Errorf("%w: document ended with %d unclosed elements", kerrors.ErrInvalidABX, d.depth)
		}
		d.out.WriteString("\n")
		return true, nil
	case eventStartTag:
		name, err := d.readInterned()
		if err != nil {
			return false, err
		}
		d.out.WriteString("<" + name)
		d.openTag = true
		d.depth++
	case eventEndTag:
		name, err := d.readInterned()
		if err != nil {
			return false, err
		}
		if d.depth == 0 {
			return false, fmt.Errorf("%w: unexpected end tag %q", kerrors.ErrInvalidABX, name)
		}
		d.depth--
		d.out.WriteString("</" + name + ">")
	default:
		text, err := d.readText(kind)
		if err != nil {
			return false, err
		}
		return false, d.writeText(event, text)
	}
	return false, nil
}

func (d *decoder) writeText(event byte, text string) error {
	switch event {
	case eventText:
		return xml.EscapeText(d.out, []byte(text))
	case eventIgnorableWhitespace:
		d.out.WriteString(text)
	case eventCDSect:
		d.out.WriteString("<![CDATA[" + text + "]]>")
	case eventEntityRef:
		d.out.WriteString("&" + text + ";")
	case eventProcessingInstruction:
		d.out.WriteString("<?" + text + "?>")
	case eventComment:
		d.out.WriteString("<!--" + text + "-->")
	case eventDocDecl:
		d.out.WriteString("<!DOCTYPE " + text + ">")
	default:
		return fmt.Errorf("%w: unknown event %d", kerrors.ErrInvalidABX, event)
	}
	return nil
}

func (d *decoder) readText(kind byte) (string, error) {
	switch kind {
	case typeNull:
		return "", nil
	case typeString:
		return d.readUTF()
	case typeStringInterned:
		return d.readInterned()
	default:
		return "", fmt.Errorf("%w: unexpected text type %#x", kerrors.ErrInvalidABX, kind)
	}
}

func (d *decoder) attribute(kind byte) error {
	if !d.openTag {
		return fmt.Errorf("%w: attribute outside of start tag", kerrors.ErrInvalidABX)
	}
	name, err := d.readInterned()
	if err != nil {
		return err
	}
	value, err := d.attributeValue(kind)
	if err != nil {
		return err
	}

	d.out.WriteString(" " + name + "=\"")
	if err := xml.EscapeText(d.out, []byte(value)); err != nil {
		return err
	}
	d.out.WriteString("\"")
	return nil
}

// attributeValue renders a typed attribute the way the platform's binary
// pull parser reports it as a string.
func (d *decoder) attributeValue(kind byte) (string, error) {
	switch kind {
	case typeString:
		return d.readUTF()
	case typeStringInterned:
		return d.readInterned()
	case typeBytesHex, typeBytesBase64:
		n, err := d.readUint16()
		if err != nil {
			return "", err
		}
		raw := make([]byte, n)
		if _, err := io.ReadFull(d.in, raw); err != nil {
			return "", d.fail(err)
		}
		if kind == typeBytesHex {
			return strings.ToUpper(hex.EncodeToString(raw)), nil
		}
		return base64.StdEncoding.EncodeToString(raw), nil
	case typeInt, typeIntHex:
		v, err := d.readUint32()
		if err != nil {
			return "", err
		}
		if kind == typeIntHex {
			return strconv.FormatUint(uint64(v), 16), nil
		}
		return strconv.FormatInt(int64(int32(v)), 10), nil
	case typeLong, typeLongHex:
		v, err := d.readUint64()
		if err != nil {
			return "", err
		}
		if kind == typeLongHex {
			return strconv.FormatUint(v, 16), nil
		}
		return strconv.FormatInt(int64(v), 10), nil
	case typeFloat:
		v, err := d.readUint32()
		if err != nil {
			return "", err
		}
		return formatFloat(float64(math.Float32frombits(v)), 32), nil
	case typeDouble:
		v, err := d.readUint64()
		if err != nil {
			return "", err
		}
		return formatFloat(math.Float64frombits(v), 64), nil
	case typeBooleanTrue:
		return "true", nil
	case typeBooleanFalse:
		return "false", nil
	default:
		return "", fmt.Errorf("%w: unknown attribute type %#x", kerrors.ErrInvalidABX, kind)
	}
}

func (d *decoder) closeOpenTag() {
	if d.openTag {
		d.out.WriteString(">")
		d.openTag = false
	}
}

func (d *decoder) readInterned() (string, error) {
	index, err := d.readUint16()
	if err != nil {
		return "", err
	}
	if index == newInternedString {
		s, err := d.readUTF()
		if err != nil {
			return "", err
		}
		d.interned = append(d.interned, s)
		return s, nil
	}
	if int(index) >= len(d.interned) {
		return "", fmt.Errorf("%w: interned string %d out of range", kerrors.ErrInvalidABX, index)
	}
	return d.interned[index], nil
}

func (d *decoder) readUTF() (string, error) {
	n, err := d.readUint16()
	if err != nil {
		return "", err
	}
	raw := make([]byte, n)
	if _, err := io.ReadFull(d.in, raw); err != nil {
		return "", d.fail(err)
	}
	return decodeModifiedUTF8(raw)
}

func (d *decoder) readUint16() (uint16, error) {
	var v uint16
	if err := binary.Read(d.in, binary.BigEndian, &v); err != nil {
		return 0, d.fail(err)
	}
	return v, nil
}

func (d *decoder) readUint32() (uint32, error) {
	var v uint32
	if err := binary.Read(d.in, binary.BigEndian, &v); err != nil {
		return 0, d.fail(err)
	}
	return v, nil
}

func (d *decoder) readUint64() (uint64, error) {
	var v uint64
	if err := binary.Read(d.in, binary.BigEndian, &v); err != nil {
		return 0, d.fail(err)
	}
	return v, nil
}

func (d *decoder) fail(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated stream", kerrors.ErrInvalidABX)
	}
	return fmt.Errorf("%w: %v", kerrors.ErrInvalidABX, err)
}

// decodeModifiedUTF8 decodes Java's modified UTF-8: NUL is encoded as
// 0xC0 0x80 and supplementary characters as two three-byte surrogates.
func decodeModifiedUTF8(b []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(b))
	var units []uint16

	for i := 0; i < len(b); {
		c := b[i]
		var unit uint16
		switch {
		case c < 0x80:
			unit = uint16(c)
			i++
		case c&0xe0 == 0xc0:
			if i+1 >= len(b) || b[i+1]&0xc0 != 0x80 {
				return "", fmt.Errorf("%w: bad UTF-8 sequence", kerrors.ErrInvalidABX)
			}
			unit = uint16(c&0x1f)<<6 | uint16(b[i+1]&0x3f)
			i += 2
		case c&0xf0 == 0xe0:
			if i+2 >= len(b) || b[i+1]&0xc0 != 0x80 || b[i+2]&0xc0 != 0x80 {
				return "", fmt.Errorf("%w: bad UTF-8 sequence", kerrors.ErrInvalidABX)
			}
			unit = uint16(c&0x0f)<<12 | uint16(b[i+1]&0x3f)<<6 | uint16(b[i+2]&0x3f)
			i += 3
		default:
			// Four-byte forms are not produced by modified UTF-8 but standard
			// encoders may emit them.
			r, size := utf8.DecodeRune(b[i:])
			if r == utf8.RuneError && size <= 1 {
				return "", fmt.Errorf("%w: bad UTF-8 sequence", kerrors.ErrInvalidABX)
			}
			units = utf16.AppendRune(units, r)
			i += size
			continue
		}
		units = append(units, unit)
	}

	for _, r := range utf16.Decode(units) {
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
