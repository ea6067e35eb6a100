package msbin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSampleTree constructs:
//
//	<Widget xmlns:w="urn:example"><Gadget /><Gizmo>hello</Gizmo></Widget>
//
// directly as a Tree, bypassing both codecs, so ParseBinary/WriteBinary can
// be exercised independently of ParseXML/WriteXML. None of these names
// collide with a dictionary entry, so the tree also survives a
// binary->XML->binary round trip unchanged (see TestBinaryToXMLToBinaryRoundTrip):
// the XML reader always prefers a dictionary hit when one exists, so a
// literal name that happens to match a dictionary word would re-encode
// smaller the second time around — a known, accepted asymmetry, not
// something this fixture needs to exercise.
func buildSampleTree() *Tree {
	tree := NewTree()
	widget := tree.addNode(ElementRecord{Name: "Widget"}, noParent)
	tree.appendChild(noParent, widget)

	xmlnsID := tree.addNode(XmlnsRecord{Prefix: "w", URI: "urn:example"}, widget)
	tree.Node(widget).Attributes = append(tree.Node(widget).Attributes, xmlnsID)

	gadget := tree.addNode(ElementRecord{Name: "Gadget"}, widget)
	tree.appendChild(widget, gadget)

	gizmo := tree.addNode(ElementRecord{Name: "Gizmo"}, widget)
	tree.appendChild(widget, gizmo)

	text := tree.addNode(TextRecord{Kind: TextChars8, Str: "hello"}, gizmo)
	tree.appendChild(gizmo, text)

	return tree
}

func TestWriteThenParseBinaryRoundTrip(t *testing.T) {
	tree := buildSampleTree()

	var out bytes.Buffer
	require.NoError(t, WriteBinary(&out, tree))

	parsed, err := ParseBinary(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)

	var roundTripped bytes.Buffer
	require.NoError(t, WriteBinary(&roundTripped, parsed))

	assert.Equal(t, out.Bytes(), roundTripped.Bytes())
}

func TestWriteBinaryFlipsLastTextChildTag(t *testing.T) {
	tree := NewTree()
	body := tree.addNode(ElementRecord{Name: "Body"}, noParent)
	tree.appendChild(noParent, body)
	text := tree.addNode(TextRecord{Kind: TextChars8, Str: "hi"}, body)
	tree.appendChild(body, text)

	var out bytes.Buffer
	require.NoError(t, WriteBinary(&out, tree))

	// header tag + name-length + "Body" + tagChars8+1 (with-end) + len + "hi"
	expected := []byte{tagElementShort, 0x04, 'B', 'o', 'd', 'y', textKindTag[TextChars8] + 1, 0x02, 'h', 'i'}
	assert.Equal(t, expected, out.Bytes())
}

func TestWriteBinaryEmitsExplicitEndElementWhenLastChildIsNotText(t *testing.T) {
	tree := NewTree()
	outer := tree.addNode(ElementRecord{Name: "Outer"}, noParent)
	tree.appendChild(noParent, outer)
	inner := tree.addNode(ElementRecord{Name: "Inner"}, outer)
	tree.appendChild(outer, inner)

	var out bytes.Buffer
	require.NoError(t, WriteBinary(&out, tree))

	expected := []byte{
		tagElementShort, 0x05, 'O', 'u', 't', 'e', 'r',
		tagElementShort, 0x05, 'I', 'n', 'n', 'e', 'r',
		tagEndElement, // closes Inner (no children)
		tagEndElement, // closes Outer (last child, Inner, is not text)
	}
	assert.Equal(t, expected, out.Bytes())
}

func TestParseBinaryTruncatedValueBufferToleratedByDefault(t *testing.T) {
	defer OverrideConfig(Config{})
	OverrideConfig(Config{StrictMode: false, ReadBufferSize: 64 * 1024})

	w := newWriter()
	ElementRecord{Name: "Root"}.write(w)
	buf := w.buf
	buf = append(buf, tagElementShort, 0x05, 'P', 'a') // claims a 5-byte name, only 2 follow

	tree, err := ParseBinary(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Len(t, tree.Roots, 1)
	root := tree.Node(tree.Roots[0])
	el, ok := root.Record.(ElementRecord)
	require.True(t, ok)
	assert.Equal(t, "Root", el.Name)
}

func TestParseBinaryTruncatedValueBufferFailsUnderStrictMode(t *testing.T) {
	defer OverrideConfig(Config{})
	OverrideConfig(Config{StrictMode: true, ReadBufferSize: 64 * 1024})

	buf := []byte{tagElementShort, 0x05, 'P', 'a'} // claims a 5-byte name, only 2 follow

	_, err := ParseBinary(bytes.NewReader(buf))
	require.Error(t, err)
	var trunc *Truncated
	assert.ErrorAs(t, err, &trunc)
}

func TestParseBinaryUnresolvedDictionaryIndexToleratedByDefault(t *testing.T) {
	defer OverrideConfig(Config{})
	OverrideConfig(Config{StrictMode: false, ReadBufferSize: 64 * 1024})

	w := newWriter()
	ElementRecord{IsDict: true, DictIndex: 0xFFFFF}.write(w)
	w.writeByte(tagEndElement)

	tree, err := ParseBinary(bytes.NewReader(w.buf))
	require.NoError(t, err)
	require.Len(t, tree.Roots, 1)
}

func TestParseBinaryUnresolvedDictionaryIndexFailsUnderStrictMode(t *testing.T) {
	defer OverrideConfig(Config{})
	OverrideConfig(Config{StrictMode: true, ReadBufferSize: 64 * 1024})

	w := newWriter()
	ElementRecord{IsDict: true, DictIndex: 0xFFFFF}.write(w)
	w.writeByte(tagEndElement)

	_, err := ParseBinary(bytes.NewReader(w.buf))
	require.Error(t, err)
	var unknown *UnknownIndex
	assert.ErrorAs(t, err, &unknown)
}

func TestParseBinaryAttachesAttributesToLastElement(t *testing.T) {
	w := newWriter()
	ElementRecord{Name: "Root"}.write(w)
	AttributeRecord{Name: "lang", Value: TextRecord{Kind: TextChars8, Str: "en"}}.write(w)
	w.writeByte(tagEndElement)

	tree, err := ParseBinary(bytes.NewReader(w.buf))
	require.NoError(t, err)
	require.Len(t, tree.Roots, 1)
	root := tree.Node(tree.Roots[0])
	require.Len(t, root.Attributes, 1)

	attr, ok := tree.Node(root.Attributes[0]).Record.(AttributeRecord)
	require.True(t, ok)
	assert.Equal(t, "lang", attr.Name)
}
