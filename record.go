package msbin

// Family groups a record's wire tag range by the structural role it plays in
// the parser's dispatch loop (see parser.go).
type Family uint8

const (
	// FamilyStructural covers EndElement, Comment and Array records.
	FamilyStructural Family = iota
	// FamilyAttribute covers the plain (non-prefix) named attribute forms.
	FamilyAttribute
	// FamilyXmlns covers xmlns declaration records.
	FamilyXmlns
	// FamilyPrefixAttribute covers the two dense prefix-attribute ranges.
	FamilyPrefixAttribute
	// FamilyElement covers the plain (non-prefix) named element forms.
	FamilyElement
	// FamilyPrefixElement covers the two dense prefix-element ranges.
	FamilyPrefixElement
	// FamilyText covers every Text value record, with or without an
	// implicit end-element.
	FamilyText
)

// Record is the sum type every msbin1 wire record satisfies. Tag returns the
// exact byte this record serializes as; for a TextRecord that includes the
// "+1" with-end-element bit when WithEnd is set (the writer sets WithEnd on
// an element's last Text child).
type Record interface {
	Tag() byte
	Family() Family
}

// prefixLetter converts a 0..25 index to its ASCII lowercase letter.
func prefixLetter(n byte) byte {
	return 'a' + n
}

// prefixIndex converts an ASCII lowercase letter to its 0..25 index. ok is
// false if c is not in 'a'..'z'.
func prefixIndex(c byte) (byte, bool) {
	if c < 'a' || c > 'z' {
		return 0, false
	}
	return c - 'a', true
}
