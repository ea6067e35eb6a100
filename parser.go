package msbin

import (
	"errors"
	"io"

	"github.com/b71729/msbin1/dictionary"
)

// ParseBinary decodes one msbin1 tagged record stream into a Tree. It is a
// single pass driven entirely by dispatchTable: a stack of open element
// nodes and a "last element" slot (for attribute attachment) are the only
// parser state, mirroring the teacher's single-pass ElementStream walk.
//
// Outside StrictMode, a truncated value buffer or an out-of-range dictionary
// index is tolerated the way the teacher's ElementStream tolerates a short
// read: logged, and the tree built so far (or a surrogate name) is kept
// rather than failing the whole parse. Under StrictMode both are hard
// errors, per Config.StrictMode.
func ParseBinary(r io.Reader) (*Tree, error) {
	cfg := GetConfig()
	rd := newReader(r, cfg.ReadBufferSize)
	tree := NewTree()

	var stack []NodeID
	lastElement := noParent

	for {
		tagByte, ok, err := rd.peekTag()
		if err != nil {
			if tolerateTruncation(err, cfg.StrictMode) {
				logTruncatedInput(rd.position(), err)
				return tree, nil
			}
			return nil, err
		}
		if !ok {
			break
		}

		info, known := dispatchTable[tagByte]
		if !known {
			if _, err := rd.readByte(); err != nil {
				if tolerateTruncation(err, cfg.StrictMode) {
					logTruncatedInput(rd.position(), err)
					return tree, nil
				}
				return nil, err
			}
			logUnknownTag(tagByte, rd.position())
			continue
		}
		if _, err := rd.readByte(); err != nil {
			if tolerateTruncation(err, cfg.StrictMode) {
				logTruncatedInput(rd.position(), err)
				return tree, nil
			}
			return nil, err
		}
		rec, err := info.parse(rd, tagByte)
		if err != nil {
			if tolerateTruncation(err, cfg.StrictMode) {
				logTruncatedInput(rd.position(), err)
				return tree, nil
			}
			return nil, err
		}
		if err := validateDictIndex(rec, cfg.StrictMode); err != nil {
			return nil, err
		}

		currentParent := noParent
		if len(stack) > 0 {
			currentParent = stack[len(stack)-1]
		}

		switch info.family {
		case FamilyStructural:
			if _, isEnd := rec.(EndElementRecord); isEnd {
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				lastElement = noParent
				continue
			}
			id := tree.addNode(rec, currentParent)
			tree.appendChild(currentParent, id)

		case FamilyElement, FamilyPrefixElement:
			id := tree.addNode(rec, currentParent)
			tree.appendChild(currentParent, id)
			stack = append(stack, id)
			lastElement = id

		case FamilyAttribute, FamilyXmlns, FamilyPrefixAttribute:
			if lastElement == noParent {
				return nil, OrphanedAttributeError("ParseBinary(): attribute tag 0x%02X at offset %d has no enclosing element", tagByte, rd.position())
			}
			id := tree.addNode(rec, lastElement)
			node := tree.Node(lastElement)
			node.Attributes = append(node.Attributes, id)

		case FamilyText:
			id := tree.addNode(rec, currentParent)
			tree.appendChild(currentParent, id)
			if t, ok := rec.(TextRecord); ok && t.WithEnd {
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				lastElement = noParent
			}
		}
	}

	return tree, nil
}

// tolerateTruncation reports whether err is a Truncated error that
// StrictMode permits ParseBinary to swallow rather than propagate.
func tolerateTruncation(err error, strict bool) bool {
	if strict {
		return false
	}
	var trunc *Truncated
	return errors.As(err, &trunc)
}

// validateDictIndex checks any dictionary index a freshly parsed record
// carries against the dictionary table. Outside StrictMode an unresolved
// index is only logged, matching the surrogate-name fallback the XML writer
// and renderer already apply; under StrictMode it fails the parse.
func validateDictIndex(rec Record, strict bool) error {
	check := func(idx uint32) error {
		if _, ok := dictionary.Lookup(idx); ok {
			return nil
		}
		if strict {
			return UnknownIndexError("validateDictIndex(): dictionary index %d has no table entry", idx)
		}
		logUnresolvedDictionaryIndex(idx)
		return nil
	}

	switch v := rec.(type) {
	case ElementRecord:
		if v.IsDict {
			return check(v.DictIndex)
		}
	case AttributeRecord:
		if v.IsDict {
			return check(v.DictIndex)
		}
	case XmlnsRecord:
		if v.IsDict {
			return check(v.DictIndex)
		}
	case PrefixElementDictRecord:
		return check(v.DictIndex)
	case PrefixAttributeDictRecord:
		return check(v.DictIndex)
	case TextRecord:
		if v.Kind == TextDictionaryText || v.Kind == TextQNameDictionary {
			return check(v.DictIndex)
		}
	}
	return nil
}
