package msbin

import "io"

// WriteBinary serializes a Tree back to the msbin1 wire form. It is a
// post-order walk: for each element, the header tag, its attributes, then
// its children are emitted in order, with the "+1" flip applied to the last
// child when that child is a Text record (see writeChildren).
func WriteBinary(w io.Writer, t *Tree) error {
	wr := newWriter()
	for _, id := range t.Roots {
		writeNode(wr, t, id)
	}
	_, err := w.Write(wr.buf)
	return err
}

func writeNode(w *writer, t *Tree, id NodeID) {
	node := t.Node(id)
	switch node.Record.Family() {
	case FamilyElement, FamilyPrefixElement:
		writeRecord(w, node.Record)
		for _, attrID := range node.Attributes {
			writeRecord(w, t.Node(attrID).Record)
		}
		writeChildren(w, t, node.Children)
	default:
		writeRecord(w, node.Record)
	}
}

// writeChildren emits each child in order. If the last child is a Text
// record, its tag is flipped to the with-end-element form and no explicit
// EndElement follows; otherwise (no children, or a non-Text last child) an
// explicit 0x01 closes the element.
func writeChildren(w *writer, t *Tree, children []NodeID) {
	for i, childID := range children {
		child := t.Node(childID)
		if i == len(children)-1 {
			if tr, ok := child.Record.(TextRecord); ok {
				tr.WithEnd = true
				writeTextPayload(w, tr)
				return
			}
		}
		writeNode(w, t, childID)
	}
	w.writeByte(tagEndElement)
}
