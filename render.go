package msbin

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// renderText converts a TextRecord's payload to the textual form XML
// rendering uses, the inverse of inferTextValue's value-inference branches.
// It never needs dictionary resolution for the Chars/Bytes/numeric kinds;
// DictionaryText and QNameDictionary route through lookup for the dictionary
// word itself (QNameDictionary is rendered as "<letter>:<word>" from the
// record's own QNamePrefix).
func renderText(t TextRecord, lookup func(uint32) (string, bool)) string {
	switch t.Kind {
	case TextZero:
		return "0"
	case TextOne:
		return "1"
	case TextFalse:
		return "false"
	case TextTrue:
		return "true"
	case TextBool:
		if t.BoolVal {
			return "true"
		}
		return "false"
	case TextInt8, TextInt16, TextInt32, TextInt64:
		return strconv.FormatInt(t.Int, 10)
	case TextUInt64:
		return strconv.FormatUint(t.UInt, 10)
	case TextFloat32:
		return renderFloat(float64(t.Float32Val))
	case TextFloat64:
		return renderFloat(t.Float64Val)
	case TextDecimal:
		return renderDecimal(t.DecimalVal)
	case TextDateTime:
		return renderDateTime(t.Time, t.TZFlag)
	case TextChars8, TextChars16, TextChars32, TextUnicodeChars8, TextUnicodeChars16, TextUnicodeChars32:
		return t.Str
	case TextBytes8, TextBytes16, TextBytes32:
		return base64.StdEncoding.EncodeToString(t.Bytes)
	case TextStartList, TextEndList, TextEmpty:
		return ""
	case TextDictionaryText:
		if name, ok := lookup(t.DictIndex); ok {
			return name
		}
		logUnresolvedDictionaryIndex(t.DictIndex)
		return dictionarySurrogate(t.DictIndex)
	case TextUniqueID:
		return "urn:uuid:" + t.UUIDVal.String()
	case TextUUID:
		return t.UUIDVal.String()
	case TextTimeSpan:
		return renderTimeSpan(t.Duration)
	case TextQNameDictionary:
		name, ok := lookup(t.DictIndex)
		if !ok {
			logUnresolvedDictionaryIndex(t.DictIndex)
			name = dictionarySurrogate(t.DictIndex)
		}
		return fmt.Sprintf("%c:%s", prefixLetter(t.QNamePrefix), name)
	default:
		return ""
	}
}

func renderFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	return strconv.FormatFloat(f, 'G', -1, 64)
}

// renderDecimal renders the .NET Decimal as a plain base-10 string with
// Scale digits after the point. High*2^64+Low rarely exceeds 64 bits in
// practice for SOAP payloads, but the full 96-bit magnitude is honored via
// big-endian digit shifting to stay correct for large values.
func renderDecimal(d Decimal) string {
	mag := decimalMagnitude(d)
	s := mag.String()
	if d.Scale > 0 {
		for len(s) <= int(d.Scale) {
			s = "0" + s
		}
		intPart := s[:len(s)-int(d.Scale)]
		fracPart := s[len(s)-int(d.Scale):]
		s = intPart + "." + fracPart
	}
	if d.Negative && mag.Sign() != 0 {
		s = "-" + s
	}
	return s
}

func renderDateTime(t time.Time, tzFlag byte) string {
	const layout = "2006-01-02T15:04:05.9999999"
	s := t.Format(layout)
	switch tzFlag {
	case 1:
		s += "Z"
	case 2:
		s += t.Format("Z07:00")
	}
	return s
}

// renderTimeSpan renders ticks in the common .NET TimeSpan text form
// "[-][d.]hh:mm:ss[.fffffff]".
func renderTimeSpan(ticks int64) string {
	neg := ticks < 0
	if neg {
		ticks = -ticks
	}
	totalSeconds := ticks / ticksPerSecond
	fraction := ticks % ticksPerSecond
	days := totalSeconds / 86400
	rem := totalSeconds % 86400
	hours := rem / 3600
	rem %= 3600
	minutes := rem / 60
	seconds := rem % 60

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if days != 0 {
		fmt.Fprintf(&b, "%d.", days)
	}
	fmt.Fprintf(&b, "%02d:%02d:%02d", hours, minutes, seconds)
	if fraction != 0 {
		fmt.Fprintf(&b, ".%07d", fraction)
	}
	return b.String()
}

// decimalMagnitude reconstructs the unsigned 96-bit magnitude High*2^64+Low
// as a big.Int, since Go has no native 96-bit integer type.
func decimalMagnitude(d Decimal) *big.Int {
	hi := new(big.Int).SetUint64(uint64(d.High))
	hi.Lsh(hi, 64)
	lo := new(big.Int).SetUint64(d.Low)
	return hi.Add(hi, lo)
}

func dictionarySurrogate(index uint32) string {
	return fmt.Sprintf("dict#%d", index)
}
