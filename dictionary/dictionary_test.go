package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownIndex(t *testing.T) {
	s, ok := Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, "Envelope", s)
}

func TestLookupOutOfRange(t *testing.T) {
	_, ok := Lookup(uint32(len(Table) + 1000))
	assert.False(t, ok)
}

func TestInvertRoundTrip(t *testing.T) {
	for i, s := range Table {
		idx, ok := Invert(s)
		assert.True(t, ok)
		// duplicate strings (if any) resolve to their first index, so only
		// assert equality for the first occurrence.
		isFirst := true
		for _, prev := range Table[:i] {
			if prev == s {
				isFirst = false
				break
			}
		}
		if isFirst {
			assert.Equal(t, uint32(i), idx)
		}
	}
	idx, ok := Invert("Body")
	assert.True(t, ok)
	name, ok := Lookup(idx)
	assert.True(t, ok)
	assert.Equal(t, "Body", name)
}

func TestInvertUnknown(t *testing.T) {
	_, ok := Invert("NotInTheDictionary")
	assert.False(t, ok)
}

func TestSurrogate(t *testing.T) {
	assert.Equal(t, "dict#9001", Surrogate(9001))
}
