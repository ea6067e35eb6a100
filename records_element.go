package msbin

// ElementRecord is a named (non-prefix-range) element, covering tags 0x40
// (short literal name), 0x41 (prefixed literal name), 0x42 (short dictionary
// name) and 0x43 (prefixed dictionary name).
type ElementRecord struct {
	Prefix    string
	Name      string
	DictIndex uint32
	IsDict    bool
}

// Tag implements Record.
func (e ElementRecord) Tag() byte {
	switch {
	case e.Prefix == "" && !e.IsDict:
		return tagElementShort
	case e.Prefix != "" && !e.IsDict:
		return tagElementPrefixed
	case e.Prefix == "" && e.IsDict:
		return tagElementShortDict
	default:
		return tagElementPrefixedDict
	}
}

// Family implements Record.
func (ElementRecord) Family() Family { return FamilyElement }

func parseElement(r *reader, tagByte byte) (Record, error) {
	e := ElementRecord{}
	switch tagByte {
	case tagElementShort:
		name, err := r.readUtf8String()
		if err != nil {
			return nil, err
		}
		e.Name = name
	case tagElementPrefixed:
		prefix, err := r.readUtf8String()
		if err != nil {
			return nil, err
		}
		name, err := r.readUtf8String()
		if err != nil {
			return nil, err
		}
		e.Prefix, e.Name = prefix, name
	case tagElementShortDict:
		idx, err := r.readMultiByteInt31()
		if err != nil {
			return nil, err
		}
		e.IsDict, e.DictIndex = true, idx
	case tagElementPrefixedDict:
		prefix, err := r.readUtf8String()
		if err != nil {
			return nil, err
		}
		idx, err := r.readMultiByteInt31()
		if err != nil {
			return nil, err
		}
		e.Prefix, e.IsDict, e.DictIndex = prefix, true, idx
	}
	return e, nil
}

func (e ElementRecord) write(w *writer) {
	w.writeByte(e.Tag())
	if e.Prefix != "" {
		w.writeUtf8String(e.Prefix)
	}
	if e.IsDict {
		w.writeMultiByteInt31(e.DictIndex)
	} else {
		w.writeUtf8String(e.Name)
	}
}

// ResolvedName returns the element's display name, resolving a dictionary
// index via lookup. If lookup reports the index unresolved, the surrogate
// "dict#<index>" name is returned.
func (e ElementRecord) ResolvedName(lookup func(uint32) (string, bool)) string {
	if !e.IsDict {
		return e.Name
	}
	if name, ok := lookup(e.DictIndex); ok {
		return name
	}
	logUnresolvedDictionaryIndex(e.DictIndex)
	return dictionarySurrogate(e.DictIndex)
}

// PrefixElementDictRecord is an element whose tag's low nibble encodes a
// single-letter prefix and whose name is a dictionary index (tags
// 0x44-0x5D).
type PrefixElementDictRecord struct {
	Prefix    byte // 0..25, 'a'+Prefix is the letter
	DictIndex uint32
}

// Tag implements Record.
func (p PrefixElementDictRecord) Tag() byte { return prefixElementDictBase + p.Prefix }

// Family implements Record.
func (PrefixElementDictRecord) Family() Family { return FamilyPrefixElement }

func parsePrefixElementDict(r *reader, tagByte byte) (Record, error) {
	idx, err := r.readMultiByteInt31()
	if err != nil {
		return nil, err
	}
	return PrefixElementDictRecord{Prefix: tagByte - prefixElementDictBase, DictIndex: idx}, nil
}

func (p PrefixElementDictRecord) write(w *writer) {
	w.writeByte(p.Tag())
	w.writeMultiByteInt31(p.DictIndex)
}

// PrefixElementRecord is an element whose tag's low nibble encodes a
// single-letter prefix and whose name is a literal UTF-8 string (tags
// 0x5E-0x77).
type PrefixElementRecord struct {
	Prefix byte
	Name   string
}

// Tag implements Record.
func (p PrefixElementRecord) Tag() byte { return prefixElementLiteralBase + p.Prefix }

// Family implements Record.
func (PrefixElementRecord) Family() Family { return FamilyPrefixElement }

func parsePrefixElementLiteral(r *reader, tagByte byte) (Record, error) {
	name, err := r.readUtf8String()
	if err != nil {
		return nil, err
	}
	return PrefixElementRecord{Prefix: tagByte - prefixElementLiteralBase, Name: name}, nil
}

func (p PrefixElementRecord) write(w *writer) {
	w.writeByte(p.Tag())
	w.writeUtf8String(p.Name)
}
