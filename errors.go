// Package msbin implements a codec for Microsoft's .NET Binary XML format
// (MC-NBFX, wire name "msbin1"), the encoding used by WCF SOAP endpoints over
// transports such as net.tcp. It parses a tagged record stream into an
// element tree and serializes the tree back to identical bytes, and converts
// between that tree and a textual XML rendering.
package msbin

import "fmt"

// Truncated is an error representing that the input ended mid-record.
type Truncated struct{ error }

// Malformed is an error representing a structural violation in the wire data
// (a MultiByteInt31 that never terminates, a Decimal scale out of range, ...).
type Malformed struct{ error }

// UnknownIndex is an error representing a dictionary lookup that fell outside
// the table. ParseBinary returns it only under StrictMode; otherwise the
// index is logged and parsing continues.
type UnknownIndex struct{ error }

// OrphanedAttribute is an error representing an attribute or xmlns record
// encountered before any enclosing element had been opened.
type OrphanedAttribute struct{ error }

// InvalidUTF8 is an error representing bytes that do not decode as valid
// UTF-8. It is returned only under StrictMode, where it fails the parse.
// Outside StrictMode the offending bytes are preserved verbatim so that
// round-tripping still succeeds, and no error is returned or logged.
type InvalidUTF8 struct{ error }

// InvalidUTF16 is an error representing bytes that do not decode as valid
// UTF-16LE. As with InvalidUTF8, the bytes are preserved for round-trip.
type InvalidUTF16 struct{ error }

// TruncatedError raises a Truncated error.
func TruncatedError(format string, a ...interface{}) *Truncated {
	return &Truncated{fmt.Errorf(format, a...)}
}

// MalformedError raises a Malformed error.
func MalformedError(format string, a ...interface{}) *Malformed {
	return &Malformed{fmt.Errorf(format, a...)}
}

// UnknownIndexError raises an UnknownIndex error.
func UnknownIndexError(format string, a ...interface{}) *UnknownIndex {
	return &UnknownIndex{fmt.Errorf(format, a...)}
}

// OrphanedAttributeError raises an OrphanedAttribute error.
func OrphanedAttributeError(format string, a ...interface{}) *OrphanedAttribute {
	return &OrphanedAttribute{fmt.Errorf(format, a...)}
}

// InvalidUTF8Error raises an InvalidUTF8 error.
func InvalidUTF8Error(format string, a ...interface{}) *InvalidUTF8 {
	return &InvalidUTF8{fmt.Errorf(format, a...)}
}

// InvalidUTF16Error raises an InvalidUTF16 error.
func InvalidUTF16Error(format string, a ...interface{}) *InvalidUTF16 {
	return &InvalidUTF16{fmt.Errorf(format, a...)}
}
