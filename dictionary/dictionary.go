// Package dictionary provides the static, ordered string table shared by
// dictionary-bearing msbin1 records (DictionaryText, ShortDictionaryElement,
// xmlns-by-index, and friends). It mirrors the role the teacher's
// dictionary.DicomDictionary plays for DICOM tags, minus the VR/VM metadata
// msbin1 has no use for: here an index resolves straight to a name.
package dictionary

import "fmt"

// Table is the ordered set of strings addressable by dictionary index. It
// covers the SOAP 1.1/1.2 envelope, WS-Addressing and WS-Security vocabulary
// actually exercised by this codec's fixtures and CLI examples. A production
// deployment speaking against a specific WCF service can swap in the full
// several-hundred-entry table the service negotiates without touching any
// caller: Lookup/Invert are total over whatever Table holds.
var Table = []string{
	"mustUnderstand",
	"Envelope",
	"Header",
	"Body",
	"Action",
	"To",
	"http://www.w3.org/2005/08/addressing",
	"From",
	"FaultTo",
	"MessageID",
	"RelatesTo",
	"ReplyTo",
	"Address",
	"http://www.w3.org/2003/05/soap-envelope",
	"http://schemas.xmlsoap.org/soap/envelope/",
	"http://www.w3.org/2001/XMLSchema-instance",
	"http://www.w3.org/2001/XMLSchema",
	"nil",
	"type",
	"char",
	"boolean",
	"short",
	"int",
	"long",
	"float",
	"double",
	"decimal",
	"dateTime",
	"string",
	"base64Binary",
	"anyType",
	"duration",
	"guid",
	"anyURI",
	"UserName",
	"Password",
	"PasswordText",
	"Username",
	"http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd",
	"http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd",
	"Security",
	"UsernameToken",
	"Timestamp",
	"Created",
	"Expires",
	"BinarySecurityToken",
	"http://www.w3.org/2000/09/xmldsig#",
	"Signature",
	"SignedInfo",
	"CanonicalizationMethod",
	"SignatureMethod",
	"Reference",
	"DigestMethod",
	"DigestValue",
	"SignatureValue",
	"KeyInfo",
	"SecurityTokenReference",
	"Algorithm",
	"URI",
	"Id",
	"ValueType",
	"EncodingType",
	"Value",
	"Fault",
	"faultcode",
	"faultstring",
	"faultactor",
	"detail",
	"Code",
	"Subcode",
	"Reason",
	"Text",
	"Node",
	"Role",
	"Detail",
	"http://schemas.microsoft.com/ws/2005/05/envelope/none",
	"http://www.w3.org/2005/08/addressing/anonymous",
	"http://www.w3.org/2005/08/addressing/none",
	"http://www.w3.org/2005/08/addressing/reply",
	"http://www.w3.org/2005/08/addressing/fault",
	"lang",
	"IsReferenceParameter",
	"Name",
	"EndpointReference",
	"PortType",
	"ServiceName",
	"PortName",
	"PolicyReference",
	"Binding",
	"ReferenceParameters",
	"Metadata",
	"IsFinal",
	"Service",
	"Port",
	"encodingStyle",
	"http://schemas.xmlsoap.org/ws/2005/02/rm",
	"Sequence",
	"SequenceAcknowledgement",
	"AcknowledgementRange",
	"Upper",
	"Lower",
	"Identifier",
	"MessageNumber",
	"CreateSequence",
	"CreateSequenceResponse",
	"TerminateSequence",
	"AcksTo",
	"Accept",
	"Offer",
	"Nonce",
	"ProblemAction",
	"SOAPAction",
	"MessageFormat",
	"Final",
}

var invert map[string]uint32

func init() {
	invert = make(map[string]uint32, len(Table))
	for i, s := range Table {
		if _, exists := invert[s]; !exists {
			invert[s] = uint32(i)
		}
	}
}

// Lookup resolves index to its dictionary string. It returns ok=false when
// index falls outside the table; callers that need to keep parsing despite
// an unresolved index should fall back to a surrogate name rather than abort.
func Lookup(index uint32) (string, bool) {
	if int(index) >= len(Table) {
		return "", false
	}
	return Table[index], true
}

// Invert returns the dictionary index for s, if s appears in the table.
func Invert(s string) (uint32, bool) {
	idx, ok := invert[s]
	return idx, ok
}

// Surrogate returns the placeholder name the parser substitutes for an
// out-of-range dictionary index, so that parsing can continue without
// fabricating a plausible-looking but wrong name.
func Surrogate(index uint32) string {
	return fmt.Sprintf("dict#%d", index)
}
