// uuid simple generator that allows mocking
package uuid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator is an interface for generating unique ids
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// SequentialGenerator produces deterministic ids for tests.
type SequentialGenerator struct {
	Prefix string
	n      atomic.Int64
}

// New returns "<prefix>-1", "<prefix>-2", ...
func (g *SequentialGenerator) New() string {
	return fmt.Sprintf("%s-%d", g.Prefix, g.n.Add(1))
}
