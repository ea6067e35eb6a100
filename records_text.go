package msbin

import (
	"time"

	"golang.org/x/text/encoding/unicode"

	"github.com/google/uuid"
)

// TextKind identifies which of the ~30 Text payload shapes a TextRecord
// carries. Unlike Family, it is not itself a wire concept: the wire only
// ever sees a tag byte, but every tag in the 0x80-0xBC range maps to exactly
// one TextKind, with or without the "+1" with-end-element bit set.
type TextKind uint8

const (
	TextZero TextKind = iota
	TextOne
	TextFalse
	TextTrue
	TextInt8
	TextInt16
	TextInt32
	TextInt64
	TextUInt64
	TextFloat32
	TextFloat64
	TextDecimal
	TextDateTime
	TextChars8
	TextChars16
	TextChars32
	TextBytes8
	TextBytes16
	TextBytes32
	TextStartList
	TextEndList
	TextEmpty
	TextDictionaryText
	TextUniqueID
	TextTimeSpan
	TextUUID
	TextBool
	TextUnicodeChars8
	TextUnicodeChars16
	TextUnicodeChars32
	TextQNameDictionary
)

// TextRecord is the union of every Text payload. Only the field(s) relevant
// to Kind are meaningful; the rest are zero.
type TextRecord struct {
	Kind    TextKind
	WithEnd bool // the "+1" bit: this Text record implies an immediately following EndElement

	Int         int64
	UInt        uint64
	Float64Val  float64
	Float32Val  float32
	BoolVal     bool
	DecimalVal  Decimal
	Time        time.Time
	TZFlag      byte
	Duration    int64
	Str         string
	Bytes       []byte
	UUIDVal     uuid.UUID
	DictIndex   uint32
	QNamePrefix byte
}

// Tag implements Record. WithEnd flips the low bit per SPEC_FULL §3's "+1"
// rule.
func (t TextRecord) Tag() byte {
	base, ok := textKindTag[t.Kind]
	if !ok {
		return 0
	}
	if t.WithEnd {
		return base + 1
	}
	return base
}

// Family implements Record.
func (TextRecord) Family() Family { return FamilyText }

// textKindTag maps each TextKind to its base (without-end-element) tag byte.
var textKindTag = map[TextKind]byte{
	TextZero:            0x80,
	TextOne:              0x82,
	TextFalse:            0x84,
	TextTrue:             0x86,
	TextInt8:             0x88,
	TextInt16:            0x8A,
	TextInt32:            0x8C,
	TextInt64:            0x8E,
	TextFloat32:          0x90,
	TextFloat64:          0x92,
	TextDecimal:          0x94,
	TextDateTime:         0x96,
	TextChars8:           0x98,
	TextChars16:          0x9A,
	TextChars32:          0x9C,
	TextBytes8:           0x9E,
	TextBytes16:          0xA0,
	TextBytes32:          0xA2,
	TextStartList:        0xA4,
	TextEndList:          0xA6,
	TextEmpty:            0xA8,
	TextDictionaryText:   0xAA,
	TextUniqueID:         0xAC,
	TextTimeSpan:         0xAE,
	TextUUID:             0xB0,
	TextUInt64:           0xB2,
	TextBool:             0xB4,
	TextUnicodeChars8:    0xB6,
	TextUnicodeChars16:   0xB8,
	TextUnicodeChars32:   0xBA,
	TextQNameDictionary:  0xBC,
}

// tagTextKind is the inverse of textKindTag, keyed by the without-end-element
// (even) tag byte.
var tagTextKind = func() map[byte]TextKind {
	m := make(map[byte]TextKind, len(textKindTag))
	for k, v := range textKindTag {
		m[v] = k
	}
	return m
}()

// utf16le is the codec used for the three UnicodeChars* variants.
var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// parseTextValue reads a tag byte and dispatches to parseTextPayload,
// recording whether the "+1" with-end-element bit was set. It is the entry
// point used by AttributeRecord and the prefix-attribute records; the
// parser's top-level dispatch loop reads bare Text children through
// textParser instead.
func parseTextValue(r *reader) (TextRecord, error) {
	tagByte, err := r.readByte()
	if err != nil {
		return TextRecord{}, err
	}
	withEnd := tagByte&1 == 1
	kind, ok := tagTextKind[tagByte&^byte(1)]
	if !ok {
		return TextRecord{}, MalformedError("parseTextValue(): tag 0x%02X is not a text record", tagByte)
	}
	t, err := parseTextPayload(r, kind)
	if err != nil {
		return TextRecord{}, err
	}
	t.WithEnd = withEnd
	return t, nil
}

// parseTextPayload reads the payload bytes for kind, without reading or
// interpreting a tag byte. It is used directly by ArrayRecord, whose items
// carry no tag of their own (the array's ItemTag fixes the kind for every
// item), and by parseTextValue after it has stripped the tag's "+1" bit.
func parseTextPayload(r *reader, kind TextKind) (TextRecord, error) {
	t := TextRecord{Kind: kind}
	switch kind {
	case TextZero:
		t.Int = 0
	case TextOne:
		t.Int = 1
	case TextFalse:
		t.BoolVal = false
	case TextTrue:
		t.BoolVal = true
	case TextInt8:
		b, err := r.readByte()
		if err != nil {
			return t, err
		}
		t.Int = int64(int8(b))
	case TextInt16:
		v, err := r.readUint16()
		if err != nil {
			return t, err
		}
		t.Int = int64(int16(v))
	case TextInt32:
		v, err := r.readUint32()
		if err != nil {
			return t, err
		}
		t.Int = int64(int32(v))
	case TextInt64:
		v, err := r.readUint64()
		if err != nil {
			return t, err
		}
		t.Int = int64(v)
	case TextUInt64:
		v, err := r.readUint64()
		if err != nil {
			return t, err
		}
		t.UInt = v
	case TextFloat32:
		v, err := r.readFloat32()
		if err != nil {
			return t, err
		}
		t.Float32Val = v
	case TextFloat64:
		v, err := r.readFloat64()
		if err != nil {
			return t, err
		}
		t.Float64Val = v
	case TextDecimal:
		v, err := r.readDecimal()
		if err != nil {
			return t, err
		}
		t.DecimalVal = v
	case TextDateTime:
		tm, tz, err := r.readDateTime()
		if err != nil {
			return t, err
		}
		t.Time, t.TZFlag = tm, tz
	case TextChars8, TextBytes8:
		n, err := r.readByte()
		if err != nil {
			return t, err
		}
		if err := readTextBytes(r, &t, kind, int(n)); err != nil {
			return t, err
		}
	case TextChars16, TextBytes16:
		n, err := r.readUint16()
		if err != nil {
			return t, err
		}
		if err := readTextBytes(r, &t, kind, int(n)); err != nil {
			return t, err
		}
	case TextChars32, TextBytes32:
		n, err := r.readUint32()
		if err != nil {
			return t, err
		}
		if err := readTextBytes(r, &t, kind, int(n)); err != nil {
			return t, err
		}
	case TextStartList, TextEndList, TextEmpty:
		// no payload
	case TextDictionaryText:
		idx, err := r.readMultiByteInt31()
		if err != nil {
			return t, err
		}
		t.DictIndex = idx
	case TextUniqueID:
		u, err := r.readUUID()
		if err != nil {
			return t, err
		}
		t.UUIDVal = u
	case TextTimeSpan:
		d, err := r.readTimeSpan()
		if err != nil {
			return t, err
		}
		t.Duration = d
	case TextUUID:
		u, err := r.readUUID()
		if err != nil {
			return t, err
		}
		t.UUIDVal = u
	case TextBool:
		b, err := r.readByte()
		if err != nil {
			return t, err
		}
		t.BoolVal = b != 0
	case TextUnicodeChars8:
		n, err := r.readByte()
		if err != nil {
			return t, err
		}
		if err := readUnicodeBytes(r, &t, int(n)); err != nil {
			return t, err
		}
	case TextUnicodeChars16:
		n, err := r.readUint16()
		if err != nil {
			return t, err
		}
		if err := readUnicodeBytes(r, &t, int(n)); err != nil {
			return t, err
		}
	case TextUnicodeChars32:
		n, err := r.readUint32()
		if err != nil {
			return t, err
		}
		if err := readUnicodeBytes(r, &t, int(n)); err != nil {
			return t, err
		}
	case TextQNameDictionary:
		prefixByte, err := r.readByte()
		if err != nil {
			return t, err
		}
		idx, err := r.readUint24BE()
		if err != nil {
			return t, err
		}
		t.QNamePrefix, t.DictIndex = prefixByte, idx
	default:
		return t, MalformedError("parseTextPayload(): unhandled kind %d", kind)
	}
	return t, nil
}

// readTextBytes reads n bytes and stores them either as a UTF-8 string
// (Chars* kinds) or raw bytes (Bytes* kinds).
func readTextBytes(r *reader, t *TextRecord, kind TextKind, n int) error {
	buf, err := r.readBytes(n)
	if err != nil {
		return err
	}
	switch kind {
	case TextChars8, TextChars16, TextChars32:
		t.Str = string(buf)
	default:
		t.Bytes = buf
	}
	return nil
}

// readUnicodeBytes reads n bytes of UTF-16LE and decodes them to a string.
func readUnicodeBytes(r *reader, t *TextRecord, n int) error {
	buf, err := r.readBytes(n)
	if err != nil {
		return err
	}
	s, err := utf16le.NewDecoder().String(string(buf))
	if err != nil {
		return InvalidUTF16Error("readUnicodeBytes(): %v", err)
	}
	t.Str = s
	return nil
}

// writeTextPayload emits tag + payload for t in one call: it is the
// symmetric counterpart to parseTextValue, used wherever a Text record
// stands alone (AttributeRecord's Value, a tree's Text children). Array
// items call writeTextPayloadBare directly since they carry no tag.
func writeTextPayload(w *writer, t TextRecord) {
	w.writeByte(t.Tag())
	writeTextPayloadBare(w, t)
}

// writeTextPayloadBare emits only the payload bytes for t, with no tag byte.
func writeTextPayloadBare(w *writer, t TextRecord) {
	switch t.Kind {
	case TextZero, TextOne, TextFalse, TextTrue, TextStartList, TextEndList, TextEmpty:
		// no payload
	case TextInt8:
		w.writeByte(byte(int8(t.Int)))
	case TextInt16:
		w.writeUint16(uint16(int16(t.Int)))
	case TextInt32:
		w.writeUint32(uint32(int32(t.Int)))
	case TextInt64:
		w.writeUint64(uint64(t.Int))
	case TextUInt64:
		w.writeUint64(t.UInt)
	case TextFloat32:
		w.writeFloat32(t.Float32Val)
	case TextFloat64:
		w.writeFloat64(t.Float64Val)
	case TextDecimal:
		w.writeDecimal(t.DecimalVal)
	case TextDateTime:
		w.writeDateTime(t.Time, t.TZFlag)
	case TextChars8:
		w.writeByte(byte(len(t.Str)))
		w.writeBytes([]byte(t.Str))
	case TextChars16:
		w.writeUint16(uint16(len(t.Str)))
		w.writeBytes([]byte(t.Str))
	case TextChars32:
		w.writeUint32(uint32(len(t.Str)))
		w.writeBytes([]byte(t.Str))
	case TextBytes8:
		w.writeByte(byte(len(t.Bytes)))
		w.writeBytes(t.Bytes)
	case TextBytes16:
		w.writeUint16(uint16(len(t.Bytes)))
		w.writeBytes(t.Bytes)
	case TextBytes32:
		w.writeUint32(uint32(len(t.Bytes)))
		w.writeBytes(t.Bytes)
	case TextDictionaryText:
		w.writeMultiByteInt31(t.DictIndex)
	case TextUniqueID, TextUUID:
		w.writeUUID(t.UUIDVal)
	case TextTimeSpan:
		w.writeTimeSpan(t.Duration)
	case TextBool:
		if t.BoolVal {
			w.writeByte(1)
		} else {
			w.writeByte(0)
		}
	case TextUnicodeChars8:
		b, _ := utf16le.NewEncoder().Bytes([]byte(t.Str))
		w.writeByte(byte(len(b)))
		w.writeBytes(b)
	case TextUnicodeChars16:
		b, _ := utf16le.NewEncoder().Bytes([]byte(t.Str))
		w.writeUint16(uint16(len(b)))
		w.writeBytes(b)
	case TextUnicodeChars32:
		b, _ := utf16le.NewEncoder().Bytes([]byte(t.Str))
		w.writeUint32(uint32(len(b)))
		w.writeBytes(b)
	case TextQNameDictionary:
		w.writeByte(t.QNamePrefix)
		w.writeUint24BE(t.DictIndex)
	}
}
