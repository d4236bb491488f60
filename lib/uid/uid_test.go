package uid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceYieldsStubIds(t *testing.T) {
	s := NewSequence()

	assert.Equal(t, "a00", s.Next())
	assert.Equal(t, "a01", s.Next())
	assert.Equal(t, "a02", s.Next())

	s.Reset()
	assert.Equal(t, "a00", s.Next())
}

func TestSequenceGrowsPastTwoDigits(t *testing.T) {
	s := NewSequence()
	var last string
	for i := 0; i <= 100; i++ {
		last = s.Next()
	}
	assert.Equal(t, "a100", last)
}

func TestRandomIdsAreUnique(t *testing.T) {
	s := NewRandom()
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := s.Next()
		if !strings.HasPrefix(id, "e") || len(id) != 33 {
			t.Fatalf("unexpected id format %q", id)
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestFromName(t *testing.T) {
	assert.IsType(t, &Sequence{}, FromName("sequence"))
	assert.IsType(t, randomSource{}, FromName("uuid"))
	assert.IsType(t, randomSource{}, FromName(""))
}
