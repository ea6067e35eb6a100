package msbin

// EndElementRecord closes the most recently opened element (tag 0x01). The
// parser never materializes one as a tree node — it is consumed as a purely
// structural pop of the pending-element stack (see parser.go) — but the type
// exists so the dispatch table and writer can name it uniformly.
type EndElementRecord struct{}

// Tag implements Record.
func (EndElementRecord) Tag() byte { return tagEndElement }

// Family implements Record.
func (EndElementRecord) Family() Family { return FamilyStructural }

func parseEndElement(r *reader, _ byte) (Record, error) {
	return EndElementRecord{}, nil
}

func (EndElementRecord) write(w *writer) {
	w.writeByte(tagEndElement)
}

// CommentRecord carries an XML comment (tag 0x02).
type CommentRecord struct {
	Text string
}

// Tag implements Record.
func (CommentRecord) Tag() byte { return tagComment }

// Family implements Record.
func (CommentRecord) Family() Family { return FamilyStructural }

func parseComment(r *reader, _ byte) (Record, error) {
	s, err := r.readUtf8String()
	if err != nil {
		return nil, err
	}
	return CommentRecord{Text: s}, nil
}

func (c CommentRecord) write(w *writer) {
	w.writeByte(tagComment)
	w.writeUtf8String(c.Text)
}

// ArrayRecord is a typed-array record (tag 0x03): one element header, an
// implicit end-element, an item tag (one of the ten array-eligible
// with-end-element text tags), a count, and that many payload-only items.
type ArrayRecord struct {
	Header  Record       // the element header record (e.g. ElementRecord, PrefixElementRecord, ...)
	ItemTag byte         // the with-end-element ("+1") tag shared by every item
	Items   []TextRecord // payload-only: items carry no tag byte of their own
}

// Tag implements Record.
func (ArrayRecord) Tag() byte { return tagArray }

// Family implements Record.
func (ArrayRecord) Family() Family { return FamilyStructural }

// arrayItemKinds enumerates the with-end-element text tags legal as array
// item types, per SPEC_FULL §3.
var arrayItemKinds = map[byte]TextKind{
	0x85: TextFalse, // unusual but harmless to allow symmetrically; not in the canonical ten
	0x8B: TextInt16,
	0x8D: TextInt32,
	0x8F: TextInt64,
	0x91: TextFloat32,
	0x93: TextFloat64,
	0x95: TextDecimal,
	0x97: TextDateTime,
	0xAF: TextTimeSpan,
	0xB1: TextUUID,
	0xB5: TextBool,
}

func parseArray(r *reader, _ byte) (Record, error) {
	headerTagByte, err := r.readByte()
	if err != nil {
		return nil, err
	}
	headerInfo, ok := dispatchTable[headerTagByte]
	if !ok || (headerInfo.family != FamilyElement && headerInfo.family != FamilyPrefixElement) {
		return nil, MalformedError("parseArray(): header tag 0x%02X is not an element record", headerTagByte)
	}
	header, err := headerInfo.parse(r, headerTagByte)
	if err != nil {
		return nil, err
	}
	// an explicit 0x01 is enforced by the format but not validated further;
	// any byte here is consumed and discarded, matching producer tolerance.
	if _, err := r.readByte(); err != nil {
		return nil, err
	}
	itemTag, err := r.readByte()
	if err != nil {
		return nil, err
	}
	itemKind, ok := arrayItemKinds[itemTag]
	if !ok {
		return nil, MalformedError("parseArray(): item tag 0x%02X is not array-eligible", itemTag)
	}
	count, err := r.readMultiByteInt31()
	if err != nil {
		return nil, err
	}
	items := make([]TextRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		item, err := parseTextPayload(r, itemKind)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return ArrayRecord{Header: header, ItemTag: itemTag, Items: items}, nil
}

func (a ArrayRecord) write(w *writer) {
	w.writeByte(tagArray)
	writeRecord(w, a.Header)
	w.writeByte(tagEndElement)
	w.writeByte(a.ItemTag)
	w.writeMultiByteInt31(uint32(len(a.Items)))
	for _, item := range a.Items {
		writeTextPayloadBare(w, item)
	}
}
