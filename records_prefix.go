package msbin

// PrefixAttributeDictRecord is an attribute whose tag's low nibble encodes a
// single-letter prefix and whose name is a dictionary index (tags
// 0x0C-0x25). Like AttributeRecord, it carries a nested Text value.
type PrefixAttributeDictRecord struct {
	Prefix    byte
	DictIndex uint32
	Value     TextRecord
}

// Tag implements Record.
func (p PrefixAttributeDictRecord) Tag() byte { return prefixAttributeDictBase + p.Prefix }

// Family implements Record.
func (PrefixAttributeDictRecord) Family() Family { return FamilyPrefixAttribute }

func parsePrefixAttributeDict(r *reader, tagByte byte) (Record, error) {
	idx, err := r.readMultiByteInt31()
	if err != nil {
		return nil, err
	}
	value, err := parseTextValue(r)
	if err != nil {
		return nil, err
	}
	return PrefixAttributeDictRecord{Prefix: tagByte - prefixAttributeDictBase, DictIndex: idx, Value: value}, nil
}

func (p PrefixAttributeDictRecord) write(w *writer) {
	w.writeByte(p.Tag())
	w.writeMultiByteInt31(p.DictIndex)
	writeTextPayload(w, p.Value)
}

// PrefixAttributeRecord is an attribute whose tag's low nibble encodes a
// single-letter prefix and whose name is a literal UTF-8 string (tags
// 0x26-0x3F).
type PrefixAttributeRecord struct {
	Prefix byte
	Name   string
	Value  TextRecord
}

// Tag implements Record.
func (p PrefixAttributeRecord) Tag() byte { return prefixAttributeLiteralBase + p.Prefix }

// Family implements Record.
func (PrefixAttributeRecord) Family() Family { return FamilyPrefixAttribute }

func parsePrefixAttributeLiteral(r *reader, tagByte byte) (Record, error) {
	name, err := r.readUtf8String()
	if err != nil {
		return nil, err
	}
	value, err := parseTextValue(r)
	if err != nil {
		return nil, err
	}
	return PrefixAttributeRecord{Prefix: tagByte - prefixAttributeLiteralBase, Name: name, Value: value}, nil
}

func (p PrefixAttributeRecord) write(w *writer) {
	w.writeByte(p.Tag())
	w.writeUtf8String(p.Name)
	writeTextPayload(w, p.Value)
}
