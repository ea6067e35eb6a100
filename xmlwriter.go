package msbin

import (
	"fmt"
	"io"
	"strings"

	"github.com/b71729/msbin1/dictionary"
)

// WriteXML pretty-prints a Tree as textual XML: elements open on their own
// indented line, attributes inline on the opening tag, children indented
// one level deeper, and the closing tag on its own line only when the
// element had element children. Grounded in the teacher's
// Element.Describe(indentLevel) recursive-indent approach.
func WriteXML(w io.Writer, t *Tree) error {
	var b strings.Builder
	for _, id := range t.Roots {
		writeXMLNode(&b, t, id, 0)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func elementName(rec Record) (prefix string, name string) {
	switch v := rec.(type) {
	case ElementRecord:
		if v.IsDict {
			n, ok := dictionary.Lookup(v.DictIndex)
			if !ok {
				logUnresolvedDictionaryIndex(v.DictIndex)
				n = dictionary.Surrogate(v.DictIndex)
			}
			return v.Prefix, n
		}
		return v.Prefix, v.Name
	case PrefixElementDictRecord:
		n, ok := dictionary.Lookup(v.DictIndex)
		if !ok {
			logUnresolvedDictionaryIndex(v.DictIndex)
			n = dictionary.Surrogate(v.DictIndex)
		}
		return string(prefixLetter(v.Prefix)), n
	case PrefixElementRecord:
		return string(prefixLetter(v.Prefix)), v.Name
	default:
		return "", ""
	}
}

func attributeNameValue(rec Record) (name, value string) {
	switch v := rec.(type) {
	case AttributeRecord:
		n := v.Name
		if v.IsDict {
			var ok bool
			n, ok = dictionary.Lookup(v.DictIndex)
			if !ok {
				logUnresolvedDictionaryIndex(v.DictIndex)
				n = dictionary.Surrogate(v.DictIndex)
			}
		}
		if v.Prefix != "" {
			n = v.Prefix + ":" + n
		}
		return n, renderText(v.Value, dictionary.Lookup)
	case XmlnsRecord:
		uri := v.URI
		if v.IsDict {
			var ok bool
			uri, ok = dictionary.Lookup(v.DictIndex)
			if !ok {
				logUnresolvedDictionaryIndex(v.DictIndex)
				uri = dictionary.Surrogate(v.DictIndex)
			}
		}
		if v.Prefix == "" {
			return "xmlns", uri
		}
		return "xmlns:" + v.Prefix, uri
	case PrefixAttributeDictRecord:
		n, ok := dictionary.Lookup(v.DictIndex)
		if !ok {
			logUnresolvedDictionaryIndex(v.DictIndex)
			n = dictionary.Surrogate(v.DictIndex)
		}
		return fmt.Sprintf("%c:%s", prefixLetter(v.Prefix), n), renderText(v.Value, dictionary.Lookup)
	case PrefixAttributeRecord:
		return fmt.Sprintf("%c:%s", prefixLetter(v.Prefix), v.Name), renderText(v.Value, dictionary.Lookup)
	default:
		return "", ""
	}
}

func qualifiedTag(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + ":" + name
}

func writeXMLNode(b *strings.Builder, t *Tree, id NodeID, depth int) {
	node := t.Node(id)
	indent := strings.Repeat("  ", depth)

	switch node.Record.Family() {
	case FamilyElement, FamilyPrefixElement:
		prefix, name := elementName(node.Record)
		tag := qualifiedTag(prefix, name)

		b.WriteString(indent)
		b.WriteByte('<')
		b.WriteString(tag)
		for _, attrID := range node.Attributes {
			attrName, attrValue := attributeNameValue(t.Node(attrID).Record)
			fmt.Fprintf(b, " %s=\"%s\"", attrName, escapeXMLAttr(attrValue))
		}

		hasElementChild := false
		for _, childID := range node.Children {
			if fam := t.Node(childID).Record.Family(); fam == FamilyElement || fam == FamilyPrefixElement {
				hasElementChild = true
				break
			}
		}

		if len(node.Children) == 0 {
			b.WriteString(" />\n")
			return
		}

		b.WriteString(">")
		if hasElementChild {
			b.WriteByte('\n')
		}
		for _, childID := range node.Children {
			child := t.Node(childID)
			switch child.Record.Family() {
			case FamilyElement, FamilyPrefixElement:
				writeXMLNode(b, t, childID, depth+1)
			case FamilyText:
				b.WriteString(escapeXMLText(renderText(child.Record.(TextRecord), dictionary.Lookup)))
			default:
				writeXMLNode(b, t, childID, depth+1)
			}
		}
		if hasElementChild {
			b.WriteString(indent)
		}
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteString(">\n")

	case FamilyText:
		b.WriteString(escapeXMLText(renderText(node.Record.(TextRecord), dictionary.Lookup)))

	case FamilyStructural:
		switch v := node.Record.(type) {
		case CommentRecord:
			b.WriteString(indent)
			b.WriteString("<!-- ")
			b.WriteString(v.Text)
			b.WriteString(" -->\n")
		case ArrayRecord:
			writeXMLArray(b, v, indent)
		}
		// EndElementRecord is never materialized as a tree node.
	}
}

// writeXMLArray renders an ArrayRecord as its header element name wrapping
// one <item> per decoded value, matching original_source's
// ArrayRecord.__str__ rendering of a typed array as an element plus items.
func writeXMLArray(b *strings.Builder, a ArrayRecord, indent string) {
	prefix, name := elementName(a.Header)
	tag := qualifiedTag(prefix, name)

	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(tag)
	if len(a.Items) == 0 {
		b.WriteString(" />\n")
		return
	}
	b.WriteString(">\n")
	itemIndent := indent + "  "
	for _, item := range a.Items {
		b.WriteString(itemIndent)
		b.WriteString("<item>")
		b.WriteString(escapeXMLText(renderText(item, dictionary.Lookup)))
		b.WriteString("</item>\n")
	}
	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">\n")
}

func escapeXMLText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeXMLAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")
	return r.Replace(s)
}
