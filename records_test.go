package msbin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b71729/msbin1/dictionary"
)

func TestCommentRecordBytes(t *testing.T) {
	w := newWriter()
	CommentRecord{Text: "test"}.write(w)
	assert.Equal(t, []byte{0x02, 0x04, 't', 'e', 's', 't'}, w.buf)
}

func TestShortElementRecordBytes(t *testing.T) {
	w := newWriter()
	ElementRecord{Name: "Envelope"}.write(w)
	assert.Equal(t, []byte{0x40, 0x08, 'E', 'n', 'v', 'e', 'l', 'o', 'p', 'e'}, w.buf)
}

func TestPrefixedElementRecordBytes(t *testing.T) {
	w := newWriter()
	ElementRecord{Prefix: "x", Name: "Envelope"}.write(w)
	assert.Equal(t, []byte{0x41, 0x01, 'x', 0x08, 'E', 'n', 'v', 'e', 'l', 'o', 'p', 'e'}, w.buf)
}

func TestDictionaryElementRecordBytes(t *testing.T) {
	idx, ok := dictionary.Invert("Envelope")
	require.True(t, ok)
	w := newWriter()
	ElementRecord{Prefix: "x", IsDict: true, DictIndex: idx}.write(w)
	assert.Equal(t, []byte{0x43, 0x01, 'x', byte(idx)}, w.buf)
}

func TestShortAttributeRecordBytes(t *testing.T) {
	w := newWriter()
	AttributeRecord{Name: "test", Value: TextRecord{Kind: TextTrue}}.write(w)
	assert.Equal(t, []byte{0x04, 0x04, 't', 'e', 's', 't', 0x86}, w.buf)
}

func TestQNameDictionaryTextRecordBytes(t *testing.T) {
	idx, ok := dictionary.Invert("Envelope")
	require.True(t, ok)
	w := newWriter()
	writeTextPayload(w, TextRecord{Kind: TextQNameDictionary, QNamePrefix: 1, DictIndex: idx})
	assert.Equal(t, []byte{0xBC, 0x01, 0x00, 0x00, byte(idx)}, w.buf)
}

func TestUnicodeChars8TextRecordBytes(t *testing.T) {
	w := newWriter()
	writeTextPayload(w, TextRecord{Kind: TextUnicodeChars8, Str: "abc"})
	assert.Equal(t, []byte{0xB6, 0x06, 'a', 0, 'b', 0, 'c', 0}, w.buf)
}

func TestPrefixDictionaryElementRoundTripThroughXML(t *testing.T) {
	envelopeIdx, ok := dictionary.Invert("Envelope")
	require.True(t, ok)
	bodyIdx, ok := dictionary.Invert("Body")
	require.True(t, ok)

	tree, err := ParseXML(bytes.NewReader([]byte("<s:Envelope><b:Body /></s:Envelope>")))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteBinary(&out, tree))

	expected := []byte{
		0x44 + ('s' - 'a'), byte(envelopeIdx),
		0x44 + ('b' - 'a'), byte(bodyIdx),
		tagEndElement,
		tagEndElement,
	}
	assert.Equal(t, expected, out.Bytes())
}

func TestArrayRecordRoundTrip(t *testing.T) {
	header := ElementRecord{Name: "Values"}
	items := []TextRecord{
		{Kind: TextInt32, Int: 1},
		{Kind: TextInt32, Int: 2},
		{Kind: TextInt32, Int: 3},
	}
	w := newWriter()
	ArrayRecord{Header: header, ItemTag: 0x8D, Items: items}.write(w)

	r := newReader(bytes.NewReader(w.buf), 64)
	tagByte, err := r.readByte()
	require.NoError(t, err)
	require.Equal(t, tagArray, tagByte)
	rec, err := parseArray(r, tagByte)
	require.NoError(t, err)
	arr, ok := rec.(ArrayRecord)
	require.True(t, ok)
	assert.Equal(t, header, arr.Header)
	assert.Equal(t, items, arr.Items)
}

func TestAttributeOrphanDetection(t *testing.T) {
	// a bare attribute byte stream with no preceding element must fail.
	w := newWriter()
	AttributeRecord{Name: "lang", Value: TextRecord{Kind: TextChars8, Str: "en"}}.write(w)
	_, err := ParseBinary(bytes.NewReader(w.buf))
	require.Error(t, err)
	var orphan *OrphanedAttribute
	assert.ErrorAs(t, err, &orphan)
}

func TestEndElementOnEmptyStackIsTolerated(t *testing.T) {
	tree, err := ParseBinary(bytes.NewReader([]byte{tagEndElement}))
	require.NoError(t, err)
	assert.Empty(t, tree.Roots)
}

func TestUnknownTagIsSkippedNotFatal(t *testing.T) {
	// 0x78, one past the last prefix-element tag (0x77), has no dispatch
	// entry at all
	unassigned := byte(0x78)
	_, known := dispatchTable[unassigned]
	require.False(t, known, "test fixture byte must be genuinely unassigned")

	w := newWriter()
	ElementRecord{Name: "Root"}.write(w)
	w.writeByte(unassigned)
	w.writeByte(tagEndElement)

	tree, err := ParseBinary(bytes.NewReader(w.buf))
	require.NoError(t, err)
	require.Len(t, tree.Roots, 1)
	root := tree.Node(tree.Roots[0])
	assert.Empty(t, root.Children)
}
