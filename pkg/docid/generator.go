package docid

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// Alphabet is the character set used by the random generator.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomIDLength is the length of IDs produced by the random generator.
const RandomIDLength = 20

// GeneratorType names an ID generation scheme.
type GeneratorType string

const (
	// GeneratorTypeRandom produces 20 character alphanumeric IDs.
	GeneratorTypeRandom GeneratorType = "random"

	// GeneratorTypeUUID produces v4 UUIDs.
	GeneratorTypeUUID GeneratorType = "uuid"
)

// ValidGeneratorTypes returns all valid generator types.
func ValidGeneratorTypes() []GeneratorType {
	return []GeneratorType{
		GeneratorTypeRandom,
		GeneratorTypeUUID,
	}
}

// IsValid returns true if this is a recognized generator type.
func (gt GeneratorType) IsValid() bool {
	switch gt {
	case GeneratorTypeRandom, GeneratorTypeUUID:
		return true
	default:
		return false
	}
}

// String returns the string representation of the generator type.
func (gt GeneratorType) String() string {
	return string(gt)
}

// Generator mints new document IDs. Implementations must be safe for
// concurrent use.
type Generator interface {
	NewID() string
}

// NewGenerator returns the generator for gt. An empty type selects the
// random generator.
func NewGenerator(gt GeneratorType) (Generator, error) {
	switch gt {
	case "", GeneratorTypeRandom:
		return NewRandomGenerator(nil), nil
	case GeneratorTypeUUID:
		return UUIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("invalid generator type: %s (valid: %v)",
			gt, ValidGeneratorTypes())
	}
}

// RandomGenerator produces RandomIDLength characters drawn uniformly from
// Alphabet.
type RandomGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomGenerator returns a RandomGenerator reading from src. A nil src
// uses the runtime's global source.
func NewRandomGenerator(src rand.Source) *RandomGenerator {
	g := &RandomGenerator{}
	if src != nil {
		g.rng = rand.New(src)
	}
	return g
}

// NewID implements Generator.
func (g *RandomGenerator) NewID() string {
	b := make([]byte, RandomIDLength)

	if g.rng == nil {
		for i := range b {
			b[i] = Alphabet[rand.IntN(len(Alphabet))]
		}
		return string(b)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range b {
		b[i] = Alphabet[g.rng.IntN(len(Alphabet))]
	}
	return string(b)
}

// UUIDGenerator produces random (v4) UUIDs in canonical lowercase form.
type UUIDGenerator struct{}

// NewID implements Generator.
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}
