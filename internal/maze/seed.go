package maze

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Seed initializes the random source of a single generation run.
type Seed int64

// SeedFromString hashes an arbitrary string into a seed.
func SeedFromString(s string) Seed {
	return Seed(xxhash.Sum64String(s))
}

// ParseSeed interprets s as a decimal integer seed, falling back to hashing the text.
func ParseSeed(s string) Seed {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Seed(n)
	}
	return SeedFromString(s)
}

// SeedOf derives a seed from any value. Integers are used as-is; everything else is
// hashed through its string form.
func SeedOf(v any) Seed {
	switch v := v.(type) {
	case Seed:
		return v
	case int:
		return Seed(v)
	case int32:
		return Seed(v)
	case int64:
		return Seed(v)
	case uint32:
		return Seed(v)
	case uint64:
		return Seed(v)
	case string:
		return SeedFromString(v)
	case fmt.Stringer:
		return SeedFromString(v.String())
	default:
		return SeedFromString(fmt.Sprint(v))
	}
}

// Rand returns a new random source seeded from s.
func (s Seed) Rand() *rand.Rand {
	return rand.New(rand.NewSource(int64(s)))
}
