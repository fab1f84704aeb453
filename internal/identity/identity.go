// Package identity derives deterministic surrogate ids from natural keys.
//
// The same natural key always yields the same id, in any process, on any
// run, so every mapper can compute a foreign key without a lookup. Ids are a
// truncation of a SHA-256 digest and are therefore not collision-free; the
// Registry detects collisions during a load.
package identity

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"sync"
)

// DefaultDigits is the number of trailing decimal digits kept from the digest.
const DefaultDigits = 9

var (
	ErrInvalidKey    = errors.New("natural key is empty")
	ErrInvalidDigits = errors.New("digits must be between 1 and 18")
	ErrCollision     = errors.New("surrogate id collision")
)

var moduli [19]*big.Int

func init() {
	ten := big.NewInt(10)
	for i := 1; i < len(moduli); i++ {
		moduli[i] = new(big.Int).Exp(ten, big.NewInt(int64(i)), nil)
	}
}

// GenerateID hashes naturalKey with SHA-256, reads the digest as a
// non-negative integer and keeps its last digits decimal digits.
func GenerateID(naturalKey string, digits int) (int64, error) {
	if naturalKey == "" {
		return 0, ErrInvalidKey
	}
	if digits < 1 || digits >= len(moduli) {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDigits, digits)
	}
	sum := sha256.Sum256([]byte(naturalKey))
	n := new(big.Int).SetBytes(sum[:])
	return n.Mod(n, moduli[digits]).Int64(), nil
}

// ID is GenerateID with DefaultDigits.
func ID(naturalKey string) (int64, error) {
	return GenerateID(naturalKey, DefaultDigits)
}

// --------------------------------------------------------------------------
// Collision registry
// --------------------------------------------------------------------------

// Registry remembers which natural key produced each id during a load and
// reports when two distinct keys land on the same id. Safe for concurrent use.
type Registry struct {
	digits int

	mu   sync.Mutex
	keys map[int64]string
}

// NewRegistry returns an empty Registry deriving ids with the given number
// of digits. It must match the digits the mappers use.
func NewRegistry(digits int) *Registry {
	return &Registry{digits: digits, keys: make(map[int64]string)}
}

// Observe derives the id for naturalKey and records it. Observing the same
// key twice is not a collision.
func (r *Registry) Observe(naturalKey string) (int64, error) {
	id, err := GenerateID(naturalKey, r.digits)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.keys[id]; ok && prev != naturalKey {
		return id, fmt.Errorf("%w: id %d for %q already assigned to %q", ErrCollision, id, naturalKey, prev)
	}
	r.keys[id] = naturalKey
	return id, nil
}

// Len returns the number of distinct ids observed.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}
