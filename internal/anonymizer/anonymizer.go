package anonymizer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
)

// Anonymizer turns detected values into replacements according to a Strategy.
// Fake strategies draw from a gofakeit source; the relationship cache keeps
// their output stable across repeated originals when preservation is
// requested. Masking, hashing and skip never touch the cache.
//
// An Anonymizer shares its Cache's concurrency contract: one instance per
// pipeline, or external synchronization.
type Anonymizer struct {
	faker *gofakeit.Faker
	cache *Cache
}

// New returns an Anonymizer backed by a randomly seeded value source.
func New() *Anonymizer {
	return NewWithFaker(gofakeit.New(0))
}

// NewWithFaker returns an Anonymizer drawing fake values from f. Tests pass a
// deterministically seeded faker to get reproducible replacements.
func NewWithFaker(f *gofakeit.Faker) *Anonymizer {
	return &Anonymizer{faker: f, cache: NewCache()}
}

// Apply transforms value according to strategy. When preserve is set, the
// randomized strategies return the cached replacement for a previously seen
// value; otherwise every call draws fresh.
func (a *Anonymizer) Apply(value string, strategy Strategy, preserve bool) string {
	switch strategy {
	case FakeEmail:
		return a.fake(value, preserve, a.faker.Email)
	case FakeName:
		return a.fake(value, preserve, a.faker.Name)
	case FakePhone:
		return a.fake(value, preserve, a.fakePhone)
	case FakeAddress:
		return a.fake(value, preserve, a.fakeStreetAddress)
	case MaskCreditCard:
		return maskCreditCard(value)
	case MaskSSN:
		return "***-**-****"
	case Hash:
		sum := sha256.Sum256([]byte(value))
		return hex.EncodeToString(sum[:])
	default:
		return value
	}
}

func (a *Anonymizer) fake(value string, preserve bool, generate func() string) string {
	if preserve {
		return a.cache.GetOrGenerate(value, generate)
	}
	return generate()
}

// fakePhone keeps the ###-###-#### shape so replacements stay plausible
// inside a dump.
func (a *Anonymizer) fakePhone() string {
	return a.faker.Numerify("###-###-####")
}

func (a *Anonymizer) fakeStreetAddress() string {
	return fmt.Sprintf("%d Main St", a.faker.Number(100, 9999))
}

// maskCreditCard keeps the final four characters of the raw value. Values of
// four characters or fewer are masked completely. Characters are runes, so a
// multi-byte tail survives intact.
func maskCreditCard(value string) string {
	runes := []rune(value)
	if len(runes) > 4 {
		return "****-****-****-" + string(runes[len(runes)-4:])
	}
	return "****"
}
