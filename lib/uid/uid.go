package uid

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Source hands out list item identifiers. Implementations must be safe for
// concurrent use.
type Source interface {
	Next() string
}

type randomSource struct{}

// NewRandom returns the production source: "e" followed by the 32 hex digits of
// a random UUID.
func NewRandom() Source {
	return randomSource{}
}

func (randomSource) Next() string {
	return "e" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Sequence is a deterministic source yielding a00, a01, a02, ...
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewSequence() *Sequence {
	return &Sequence{prefix: "a"}
}

func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("%s%02d", s.prefix, s.next)
	s.next++
	return id
}

// Reset rewinds the sequence to a00.
func (s *Sequence) Reset() {
	s.mu.Lock()
	s.next = 0
	s.mu.Unlock()
}

// FromName maps the configured generator name to a source. Unknown names fall
// back to the random source.
func FromName(name string) Source {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sequence", "sequential":
		return NewSequence()
	default:
		return NewRandom()
	}
}
