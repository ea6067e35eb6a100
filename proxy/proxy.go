// Package proxy adapts the msbin1 codec to a request/response rewriting
// contract a WCF-aware transport proxy would call into, grounded in
// original_source/WcfPlugin.py's encode_decode. It implements only the
// header/body transform; there is no HTTP listener or MITM logic here — a
// real proxy plugin supplies the byte buffers and headers and acts on the
// result.
package proxy

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/b71729/msbin1"
)

const (
	headerEncodeFlag  = "X-WCF-Encode"
	headerContentType = "Content-Type"
	headerLength      = "Content-Length"

	contentTypeBinary = "application/soap+msbin1"
	contentTypeXML    = "text/soap+xml"
)

// Rewrite converts a message body between textual SOAP/XML and msbin1
// binary, driven entirely by the headers supplied:
//
//   - If X-WCF-Encode is present, body is parsed as XML and re-encoded as
//     binary; the flag header is removed and Content-Type becomes
//     application/soap+msbin1.
//   - Else if Content-Type is application/soap+msbin1, body is parsed as
//     binary and re-rendered as XML; X-WCF-Encode is set to "1" and
//     Content-Type becomes text/soap+xml.
//   - Otherwise, headers and body pass through unchanged.
//
// Content-Length is recomputed whenever the body changes.
func Rewrite(headers http.Header, body []byte) (http.Header, []byte, error) {
	if len(body) == 0 {
		return headers, body, nil
	}

	if headers.Get(headerEncodeFlag) != "" {
		tree, err := msbin.ParseXML(bytes.NewReader(body))
		if err != nil {
			return nil, nil, err
		}
		var out bytes.Buffer
		if err := msbin.WriteBinary(&out, tree); err != nil {
			return nil, nil, err
		}
		headers.Del(headerEncodeFlag)
		headers.Set(headerContentType, contentTypeBinary)
		headers.Set(headerLength, strconv.Itoa(out.Len()))
		return headers, out.Bytes(), nil
	}

	if headers.Get(headerContentType) != contentTypeBinary {
		return headers, body, nil
	}

	tree, err := msbin.ParseBinary(bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	var out bytes.Buffer
	if err := msbin.WriteXML(&out, tree); err != nil {
		return nil, nil, err
	}
	headers.Set(headerEncodeFlag, "1")
	headers.Set(headerContentType, contentTypeXML)
	headers.Set(headerLength, strconv.Itoa(out.Len()))
	return headers, out.Bytes(), nil
}
