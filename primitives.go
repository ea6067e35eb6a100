package msbin

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ticksPerSecond is the number of 100-nanosecond ticks in one second, the
// unit used by both DateTime and TimeSpan on the wire.
const ticksPerSecond = 10_000_000

// epoch is 0001-01-01T00:00:00Z, the zero point ticks are counted from.
var epoch = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// reader wraps a bufio.Reader with the primitive decoders shared by every
// record's parse method. It mirrors the teacher's ElementStream: a thin,
// sequential-read abstraction with typed, wrapped errors.
type reader struct {
	br  *bufio.Reader
	pos int64
}

func newReader(src io.Reader, bufferSize int) *reader {
	return &reader{br: bufio.NewReaderSize(src, bufferSize)}
}

// position returns the number of bytes consumed so far, used in error
// messages and unknown-tag logging.
func (r *reader) position() int64 {
	return r.pos
}

// peekTag attempts to look at the next tag byte without consuming it. ok is
// false at a clean end of stream.
func (r *reader) peekTag() (b byte, ok bool, err error) {
	buf, err := r.br.Peek(1)
	if err != nil {
		if err == io.EOF {
			return 0, false, nil
		}
		return 0, false, TruncatedError("peekTag(): %v", err)
	}
	return buf[0], true, nil
}

// readByte consumes and returns one byte.
func (r *reader) readByte() (byte, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return 0, TruncatedError("readByte(): %v", err)
	}
	r.pos++
	return b, nil
}

// readBytes consumes exactly n bytes.
func (r *reader) readBytes(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(r.br, buf)
	r.pos += int64(read)
	if err != nil {
		return buf[:read], TruncatedError("readBytes(%d): %v", n, err)
	}
	return buf, nil
}

func (r *reader) readUint16() (uint16, error) {
	buf, err := r.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

func (r *reader) readUint32() (uint32, error) {
	buf, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (r *reader) readUint64() (uint64, error) {
	buf, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// readUint24BE reads the 3-byte big-endian dictionary index carried by
// QNameDictionary text records.
func (r *reader) readUint24BE() (uint32, error) {
	buf, err := r.readBytes(3)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2]), nil
}

// readMultiByteInt31 decodes a 1-5 byte variable-length integer: the low 7
// bits of each byte are concatenated little-endian, with the top bit
// signalling continuation. Values range 0..0x3FFF_FFFF.
func (r *reader) readMultiByteInt31() (uint32, error) {
	var v uint32
	for i := 0; i < 5; i++ {
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		if i == 4 && b&0xFC != 0 {
			return 0, MalformedError("readMultiByteInt31(): fifth byte 0x%02X has non-zero high bits", b)
		}
		v |= uint32(b&0x7F) << (7 * uint(i))
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, MalformedError("readMultiByteInt31(): no terminating byte within 5 reads")
}

// readUtf8String decodes a MultiByteInt31 length prefix followed by that
// many bytes of UTF-8. Invalid UTF-8 fails the parse under StrictMode;
// otherwise the bytes are kept as-is so round-tripping still succeeds.
func (r *reader) readUtf8String() (string, error) {
	n, err := r.readMultiByteInt31()
	if err != nil {
		return "", err
	}
	buf, err := r.readBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) && GetConfig().StrictMode {
		return "", InvalidUTF8Error("readUtf8String(): invalid UTF-8 at offset %d", r.position())
	}
	return string(buf), nil
}

// Decimal is the 16-byte .NET decimal value carried by DecimalText records:
// ((High*2^64 + Low) / 10^Scale) * (-1 if Negative).
type Decimal struct {
	Scale    uint8
	Negative bool
	High     uint32
	Low      uint64
}

func (r *reader) readDecimal() (Decimal, error) {
	if _, err := r.readBytes(2); err != nil { // reserved
		return Decimal{}, err
	}
	scaleByte, err := r.readByte()
	if err != nil {
		return Decimal{}, err
	}
	if scaleByte > 28 {
		return Decimal{}, MalformedError("readDecimal(): scale %d out of range [0,28]", scaleByte)
	}
	signByte, err := r.readByte()
	if err != nil {
		return Decimal{}, err
	}
	high, err := r.readUint32()
	if err != nil {
		return Decimal{}, err
	}
	low, err := r.readUint64()
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{Scale: scaleByte, Negative: signByte&0x80 != 0, High: high, Low: low}, nil
}

// readUUID decodes 16 bytes in .NET's Guid binary layout (first three fields
// little-endian, remaining eight bytes verbatim) into a canonical RFC 4122
// uuid.UUID.
func (r *reader) readUUID() (uuid.UUID, error) {
	buf, err := r.readBytes(16)
	if err != nil {
		return uuid.UUID{}, err
	}
	return guidBytesToUUID(buf), nil
}

// guidBytesToUUID re-orders a .NET Guid's little-endian-first-three-fields
// layout into RFC 4122 byte order.
func guidBytesToUUID(b []byte) uuid.UUID {
	var out [16]byte
	out[0], out[1], out[2], out[3] = b[3], b[2], b[1], b[0]
	out[4], out[5] = b[5], b[4]
	out[6], out[7] = b[7], b[6]
	copy(out[8:], b[8:16])
	return uuid.UUID(out)
}

// uuidToGUIDBytes is the inverse of guidBytesToUUID.
func uuidToGUIDBytes(u uuid.UUID) []byte {
	b := [16]byte(u)
	out := make([]byte, 16)
	out[0], out[1], out[2], out[3] = b[3], b[2], b[1], b[0]
	out[4], out[5] = b[5], b[4]
	out[6], out[7] = b[7], b[6]
	copy(out[8:], b[8:16])
	return out
}

// readDateTime decodes the 64-bit DateTime wire form: low 2 bits are a
// timezone flag (0 unspecified, 1 UTC, 2 local), the upper 62 bits are ticks
// since 0001-01-01.
func (r *reader) readDateTime() (time.Time, byte, error) {
	raw, err := r.readUint64()
	if err != nil {
		return time.Time{}, 0, err
	}
	tzFlag := byte(raw & 0x3)
	ticks := raw >> 2
	t := ticksToTime(ticks)
	if tzFlag == 1 {
		t = t.UTC()
	}
	return t, tzFlag, nil
}

// readTimeSpan decodes the signed 64-bit tick count used by TimeSpan.
func (r *reader) readTimeSpan() (int64, error) {
	raw, err := r.readUint64()
	if err != nil {
		return 0, err
	}
	return int64(raw), nil
}

func ticksToTime(ticks uint64) time.Time {
	seconds := int64(ticks / ticksPerSecond)
	remainder := ticks % ticksPerSecond
	return epoch.Add(time.Duration(seconds)*time.Second + time.Duration(remainder)*100*time.Nanosecond)
}

func timeToTicks(t time.Time) uint64 {
	d := t.Sub(epoch)
	return uint64(d / (100 * time.Nanosecond))
}

func (r *reader) readFloat32() (float32, error) {
	v, err := r.readUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *reader) readFloat64() (float64, error) {
	v, err := r.readUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// writer is the symmetric counterpart to reader: it accumulates bytes for
// one full ParseBinary/WriteBinary round trip. Kept as a thin wrapper over
// a byte slice so every write site shares one error-free, allocate-once
// path, in the same spirit as the teacher's ElementStream read helpers.
type writer struct {
	buf []byte
}

func newWriter() *writer {
	return &writer{buf: make([]byte, 0, 256)}
}

func (w *writer) writeByte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writer) writeBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *writer) writeUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.writeBytes(b[:])
}

func (w *writer) writeUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.writeBytes(b[:])
}

func (w *writer) writeUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.writeBytes(b[:])
}

func (w *writer) writeUint24BE(v uint32) {
	w.writeBytes([]byte{byte(v >> 16), byte(v >> 8), byte(v)})
}

// writeMultiByteInt31 emits the minimal-length encoding of v (1 to 5 bytes).
func (w *writer) writeMultiByteInt31(v uint32) {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			w.writeByte(b | 0x80)
		} else {
			w.writeByte(b)
			return
		}
	}
}

func (w *writer) writeUtf8String(s string) {
	w.writeMultiByteInt31(uint32(len(s)))
	w.writeBytes([]byte(s))
}

func (w *writer) writeDecimal(d Decimal) {
	w.writeUint16(0) // reserved
	w.writeByte(d.Scale)
	if d.Negative {
		w.writeByte(0x80)
	} else {
		w.writeByte(0x00)
	}
	w.writeUint32(d.High)
	w.writeUint64(d.Low)
}

func (w *writer) writeUUID(u uuid.UUID) {
	w.writeBytes(uuidToGUIDBytes(u))
}

func (w *writer) writeDateTime(t time.Time, tzFlag byte) {
	ticks := timeToTicks(t)
	w.writeUint64(ticks<<2 | uint64(tzFlag&0x3))
}

func (w *writer) writeTimeSpan(ticks int64) {
	w.writeUint64(uint64(ticks))
}

func (w *writer) writeFloat32(v float32) {
	w.writeUint32(math.Float32bits(v))
}

func (w *writer) writeFloat64(v float64) {
	w.writeUint64(math.Float64bits(v))
}
