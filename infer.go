package msbin

import (
	"encoding/base64"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/b71729/msbin1/dictionary"
)

var (
	qnameDictPattern = regexp.MustCompile(`^[a-z]:[A-Za-z0-9_.]+$`)
	uuidCanonical    = regexp.MustCompile(`^[0-9a-fA-F]{8}-([0-9a-fA-F]{4}-){3}[0-9a-fA-F]{12}$`)
	intPattern       = regexp.MustCompile(`^-?\d+$`)
	base64Pattern    = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)
	floatPattern     = regexp.MustCompile(`^-?(INF|NaN|\d+(\.\d+)?)$`)
)

// splitQName splits a raw tag or attribute name on its first ':'. Unlike
// encoding/xml, this never resolves the prefix against a declared xmlns —
// the wire format's prefix ranges depend on the literal syntactic prefix,
// not its bound namespace URI.
func splitQName(s string) (prefix, local string, hasPrefix bool) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return "", s, false
	}
	return s[:i], s[i+1:], true
}

// inferElementTag builds the Record for a start/end tag name, choosing
// among the short/prefixed/dictionary element variants per SPEC_FULL §4.5.
func inferElementTag(name string) Record {
	prefix, local, hasPrefix := splitQName(name)
	if !hasPrefix {
		if idx, ok := dictionary.Invert(local); ok {
			return ElementRecord{IsDict: true, DictIndex: idx}
		}
		return ElementRecord{Name: local}
	}
	if len(prefix) == 1 {
		if p, ok := prefixIndex(prefix[0]); ok {
			if idx, ok := dictionary.Invert(local); ok {
				return PrefixElementDictRecord{Prefix: p, DictIndex: idx}
			}
			return PrefixElementRecord{Prefix: p, Name: local}
		}
	}
	if idx, ok := dictionary.Invert(local); ok {
		return ElementRecord{Prefix: prefix, IsDict: true, DictIndex: idx}
	}
	return ElementRecord{Prefix: prefix, Name: local}
}

// inferAttribute builds the Record for one attribute, routing xmlns
// declarations to the Xmlns family and everything else to the
// Attribute/PrefixAttribute families with an inferred nested Text value.
func inferAttribute(name, value string) Record {
	prefix, local, hasPrefix := splitQName(name)

	if hasPrefix && prefix == "xmlns" {
		if idx, ok := dictionary.Invert(value); ok {
			return XmlnsRecord{Prefix: local, IsDict: true, DictIndex: idx}
		}
		return XmlnsRecord{Prefix: local, URI: value}
	}
	if !hasPrefix && name == "xmlns" {
		if idx, ok := dictionary.Invert(value); ok {
			return XmlnsRecord{IsDict: true, DictIndex: idx}
		}
		return XmlnsRecord{URI: value}
	}

	val := inferTextValue(value)

	if !hasPrefix {
		if idx, ok := dictionary.Invert(local); ok {
			return AttributeRecord{IsDict: true, DictIndex: idx, Value: val}
		}
		return AttributeRecord{Name: local, Value: val}
	}
	if len(prefix) == 1 {
		if p, ok := prefixIndex(prefix[0]); ok {
			if idx, ok := dictionary.Invert(local); ok {
				return PrefixAttributeDictRecord{Prefix: p, DictIndex: idx, Value: val}
			}
			return PrefixAttributeRecord{Prefix: p, Name: local, Value: val}
		}
	}
	if idx, ok := dictionary.Invert(local); ok {
		return AttributeRecord{Prefix: prefix, IsDict: true, DictIndex: idx, Value: val}
	}
	return AttributeRecord{Prefix: prefix, Name: local, Value: val}
}

// inferTextValue picks a TextRecord variant for a textual value, in the
// fixed priority order SPEC_FULL §4.5 documents. Order matters: several
// branches would otherwise both match (e.g. "0" is both an exact literal
// and an integer literal, and "Body" is both valid base64 and a dictionary
// word).
func inferTextValue(s string) TextRecord {
	switch {
	case s == "0":
		return TextRecord{Kind: TextZero}
	case s == "1":
		return TextRecord{Kind: TextOne}
	case strings.EqualFold(s, "false"):
		return TextRecord{Kind: TextFalse}
	case strings.EqualFold(s, "true"):
		return TextRecord{Kind: TextTrue}
	}

	if len(s) > 2 && s[1] == ':' && qnameDictPattern.MatchString(s) {
		if p, ok := prefixIndex(s[0]); ok {
			if idx, ok := dictionary.Invert(s[2:]); ok {
				return TextRecord{Kind: TextQNameDictionary, QNamePrefix: p, DictIndex: idx}
			}
		}
	}

	if strings.HasPrefix(s, "urn:uuid:") && uuidCanonical.MatchString(s[len("urn:uuid:"):]) {
		if u, err := uuid.Parse(s[len("urn:uuid:"):]); err == nil {
			return TextRecord{Kind: TextUniqueID, UUIDVal: u}
		}
	}
	if uuidCanonical.MatchString(s) {
		if u, err := uuid.Parse(s); err == nil {
			return TextRecord{Kind: TextUUID, UUIDVal: u}
		}
	}

	if intPattern.MatchString(s) {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return TextRecord{Kind: pickIntKind(v), Int: v}
		}
	}

	if s == "" {
		return TextRecord{Kind: TextEmpty}
	}

	if base64Pattern.MatchString(s) {
		if decoded, err := base64.StdEncoding.DecodeString(s); err == nil {
			return TextRecord{Kind: pickBytesKind(len(decoded)), Bytes: decoded}
		}
	}

	if floatPattern.MatchString(s) {
		var f float64
		switch s {
		case "INF":
			f = math.Inf(1)
		case "-INF":
			f = math.Inf(-1)
		case "NaN":
			f = math.NaN()
		default:
			f, _ = strconv.ParseFloat(s, 64)
		}
		return TextRecord{Kind: TextFloat64, Float64Val: f}
	}

	if idx, ok := dictionary.Invert(s); ok {
		return TextRecord{Kind: TextDictionaryText, DictIndex: idx}
	}

	return TextRecord{Kind: pickCharsKind(len(s)), Str: s}
}

func pickIntKind(v int64) TextKind {
	switch {
	case v >= -128 && v <= 127:
		return TextInt8
	case v >= -32768 && v <= 32767:
		return TextInt16
	case v >= -2147483648 && v <= 2147483647:
		return TextInt32
	default:
		return TextInt64
	}
}

func pickBytesKind(n int) TextKind {
	switch {
	case n < 1<<8:
		return TextBytes8
	case n < 1<<16:
		return TextBytes16
	default:
		return TextBytes32
	}
}

func pickCharsKind(n int) TextKind {
	switch {
	case n < 1<<8:
		return TextChars8
	case n < 1<<16:
		return TextChars16
	default:
		return TextChars32
	}
}
