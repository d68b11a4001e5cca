package ext

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out identifiers for provider scopes so that log lines
// emitted by concurrent providers can be told apart.
type IDGenerator interface {
	GenerateID() string
}

// NewUUIDGenerator returns an IDGenerator backed by random UUIDs.
func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}

type uuidGenerator struct{}

func (uuidGenerator) GenerateID() string {
	return uuid.New().String()
}

// NewSequentialIDGenerator returns an IDGenerator producing prefix-1,
// prefix-2 and so on. Tests use it to get predictable identifiers.
func NewSequentialIDGenerator(prefix string) IDGenerator {
	return &sequentialIDGenerator{prefix: prefix}
}

type sequentialIDGenerator struct {
	prefix string
	next   uint64
}

func (g *sequentialIDGenerator) GenerateID() string {
	return fmt.Sprintf("%s-%d", g.prefix, atomic.AddUint64(&g.next, 1))
}
