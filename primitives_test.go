package msbin

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiByteInt31RoundTrip(t *testing.T) {
	cases := []uint32{0, 0x7F, 0x80, 0x3FFF, 0x4000, 0x1F_FFFF, 0x20_0000, 0x0FFF_FFFF, 0x1000_0000, 0x3FFF_FFFF}
	for _, v := range cases {
		w := newWriter()
		w.writeMultiByteInt31(v)
		r := newReader(bytes.NewReader(w.buf), 64)
		got, err := r.readMultiByteInt31()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestMultiByteInt31FifthByteOverflow(t *testing.T) {
	buf := []byte{0x80, 0x80, 0x80, 0x80, 0xFF}
	r := newReader(bytes.NewReader(buf), 64)
	_, err := r.readMultiByteInt31()
	require.Error(t, err)
	var m *Malformed
	assert.ErrorAs(t, err, &m)
}

func TestMultiByteInt31NoTerminator(t *testing.T) {
	buf := []byte{0x80, 0x80, 0x80, 0x80, 0x80}
	r := newReader(bytes.NewReader(buf), 64)
	_, err := r.readMultiByteInt31()
	require.Error(t, err)
}

func TestUtf8StringRoundTrip(t *testing.T) {
	w := newWriter()
	w.writeUtf8String("Envelope")
	r := newReader(bytes.NewReader(w.buf), 64)
	s, err := r.readUtf8String()
	require.NoError(t, err)
	assert.Equal(t, "Envelope", s)
}

func TestUtf8StringInvalidUTF8ToleratedByDefault(t *testing.T) {
	defer OverrideConfig(Config{})
	OverrideConfig(Config{StrictMode: false, ReadBufferSize: 64 * 1024})

	w := newWriter()
	w.writeUtf8String(string([]byte{0xFF, 0xFE}))
	r := newReader(bytes.NewReader(w.buf), 64)
	s, err := r.readUtf8String()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFE}, []byte(s))
}

func TestUtf8StringInvalidUTF8FailsUnderStrictMode(t *testing.T) {
	defer OverrideConfig(Config{})
	OverrideConfig(Config{StrictMode: true, ReadBufferSize: 64 * 1024})

	w := newWriter()
	w.writeUtf8String(string([]byte{0xFF, 0xFE}))
	r := newReader(bytes.NewReader(w.buf), 64)
	_, err := r.readUtf8String()
	require.Error(t, err)
	var ue *InvalidUTF8
	assert.ErrorAs(t, err, &ue)
}

func TestDecimalRoundTrip(t *testing.T) {
	d := Decimal{Scale: 2, Negative: true, High: 0, Low: 12345}
	w := newWriter()
	w.writeDecimal(d)
	r := newReader(bytes.NewReader(w.buf), 64)
	got, err := r.readDecimal()
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDecimalScaleOutOfRange(t *testing.T) {
	buf := []byte{0x00, 0x00, 29, 0x00, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	r := newReader(bytes.NewReader(buf), 64)
	_, err := r.readDecimal()
	require.Error(t, err)
}

func TestUUIDRoundTrip(t *testing.T) {
	u := uuid.MustParse("12345678-1234-5678-1234-567812345678")
	w := newWriter()
	w.writeUUID(u)
	r := newReader(bytes.NewReader(w.buf), 64)
	got, err := r.readUUID()
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestDateTimeRoundTrip(t *testing.T) {
	tm := time.Date(2024, time.March, 5, 12, 30, 0, 0, time.UTC)
	w := newWriter()
	w.writeDateTime(tm, 1)
	r := newReader(bytes.NewReader(w.buf), 64)
	got, tz, err := r.readDateTime()
	require.NoError(t, err)
	assert.Equal(t, byte(1), tz)
	assert.True(t, tm.Equal(got))
}

func TestTimeSpanRoundTrip(t *testing.T) {
	w := newWriter()
	w.writeTimeSpan(-123456789)
	r := newReader(bytes.NewReader(w.buf), 64)
	got, err := r.readTimeSpan()
	require.NoError(t, err)
	assert.Equal(t, int64(-123456789), got)
}

func TestFloatRoundTrip(t *testing.T) {
	w := newWriter()
	w.writeFloat32(3.25)
	w.writeFloat64(-6.5)
	r := newReader(bytes.NewReader(w.buf), 64)
	f32, err := r.readFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(3.25), f32)
	f64, err := r.readFloat64()
	require.NoError(t, err)
	assert.Equal(t, -6.5, f64)
}
