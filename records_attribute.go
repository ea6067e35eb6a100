package msbin

// AttributeRecord is a named (non-prefix-range) attribute, covering tags
// 0x04 (short literal name), 0x05 (prefixed literal name), 0x06 (short
// dictionary name) and 0x07 (prefixed dictionary name). Value is always a
// nested Text record.
type AttributeRecord struct {
	Prefix    string // "" for the short forms
	Name      string // literal name, meaningful when !IsDict
	DictIndex uint32 // dictionary index, meaningful when IsDict
	IsDict    bool
	Value     TextRecord
}

// Tag implements Record.
func (a AttributeRecord) Tag() byte {
	switch {
	case a.Prefix == "" && !a.IsDict:
		return tagAttributeShort
	case a.Prefix != "" && !a.IsDict:
		return tagAttributePrefixed
	case a.Prefix == "" && a.IsDict:
		return tagAttributeShortDict
	default:
		return tagAttributePrefixedDict
	}
}

// Family implements Record.
func (AttributeRecord) Family() Family { return FamilyAttribute }

func parseAttribute(r *reader, tagByte byte) (Record, error) {
	a := AttributeRecord{}
	switch tagByte {
	case tagAttributeShort:
		name, err := r.readUtf8String()
		if err != nil {
			return nil, err
		}
		a.Name = name
	case tagAttributePrefixed:
		prefix, err := r.readUtf8String()
		if err != nil {
			return nil, err
		}
		name, err := r.readUtf8String()
		if err != nil {
			return nil, err
		}
		a.Prefix, a.Name = prefix, name
	case tagAttributeShortDict:
		idx, err := r.readMultiByteInt31()
		if err != nil {
			return nil, err
		}
		a.IsDict, a.DictIndex = true, idx
	case tagAttributePrefixedDict:
		prefix, err := r.readUtf8String()
		if err != nil {
			return nil, err
		}
		idx, err := r.readMultiByteInt31()
		if err != nil {
			return nil, err
		}
		a.Prefix, a.IsDict, a.DictIndex = prefix, true, idx
	}
	value, err := parseTextValue(r)
	if err != nil {
		return nil, err
	}
	a.Value = value
	return a, nil
}

func (a AttributeRecord) write(w *writer) {
	w.writeByte(a.Tag())
	if a.Prefix != "" {
		w.writeUtf8String(a.Prefix)
	}
	if a.IsDict {
		w.writeMultiByteInt31(a.DictIndex)
	} else {
		w.writeUtf8String(a.Name)
	}
	writeTextPayload(w, a.Value)
}

// XmlnsRecord declares an XML namespace: tags 0x08 (short literal), 0x09
// (prefixed literal), 0x0A (short dictionary) and 0x0B (prefixed
// dictionary). Unlike AttributeRecord it carries no nested Text value — the
// namespace URI is the payload itself.
type XmlnsRecord struct {
	Prefix    string
	URI       string
	DictIndex uint32
	IsDict    bool
}

// Tag implements Record.
func (x XmlnsRecord) Tag() byte {
	switch {
	case x.Prefix == "" && !x.IsDict:
		return tagXmlnsShort
	case x.Prefix != "" && !x.IsDict:
		return tagXmlnsPrefixed
	case x.Prefix == "" && x.IsDict:
		return tagXmlnsShortDict
	default:
		return tagXmlnsPrefixedDict
	}
}

// Family implements Record.
func (XmlnsRecord) Family() Family { return FamilyXmlns }

func parseXmlns(r *reader, tagByte byte) (Record, error) {
	x := XmlnsRecord{}
	switch tagByte {
	case tagXmlnsShort:
		uri, err := r.readUtf8String()
		if err != nil {
			return nil, err
		}
		x.URI = uri
	case tagXmlnsPrefixed:
		prefix, err := r.readUtf8String()
		if err != nil {
			return nil, err
		}
		uri, err := r.readUtf8String()
		if err != nil {
			return nil, err
		}
		x.Prefix, x.URI = prefix, uri
	case tagXmlnsShortDict:
		idx, err := r.readMultiByteInt31()
		if err != nil {
			return nil, err
		}
		x.IsDict, x.DictIndex = true, idx
	case tagXmlnsPrefixedDict:
		prefix, err := r.readUtf8String()
		if err != nil {
			return nil, err
		}
		idx, err := r.readMultiByteInt31()
		if err != nil {
			return nil, err
		}
		x.Prefix, x.IsDict, x.DictIndex = prefix, true, idx
	}
	return x, nil
}

func (x XmlnsRecord) write(w *writer) {
	w.writeByte(x.Tag())
	if x.Prefix != "" {
		w.writeUtf8String(x.Prefix)
	}
	if x.IsDict {
		w.writeMultiByteInt31(x.DictIndex)
	} else {
		w.writeUtf8String(x.URI)
	}
}
