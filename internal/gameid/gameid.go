// Package gameid generates sortable session identifiers.
package gameid

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/coder/quartz"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID.
const Length = 26

// Generator mints UUIDv7-style IDs encoded as 26 base32 characters. The
// timestamp comes from the clock and the random bits from rng, so a mock
// clock and a fixed seed give reproducible IDs.
type Generator struct {
	mu    sync.Mutex
	clock quartz.Clock
	rng   *rand.Rand
}

// NewGenerator creates a Generator. A nil clock uses the real clock.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// Generate creates a new ID.
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return encodeBase32(g.uuidV7())
}

// uuidV7 lays out a 48-bit millisecond timestamp, version 7, variant 10 and
// random bits.
func (g *Generator) uuidV7() [16]byte {
	var uuid [16]byte

	now := g.clock.Now().UnixMilli()
	for i := range 6 {
		uuid[i] = byte(now >> (40 - 8*i))
	}

	lo := g.rng.Uint64()
	hi := g.rng.Uint32()
	for i := range 8 {
		uuid[6+i] = byte(lo >> (8 * i))
	}
	uuid[14] = byte(hi)
	uuid[15] = byte(hi >> 8)

	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80
	return uuid
}

// encodeBase32 encodes 128 bits as 26 characters, padding two zero bits at
// the front so the first character is always 0-7.
func encodeBase32(data [16]byte) string {
	var out [Length]byte
	for i := range Length {
		var v byte
		for b := range 5 {
			bit := i*5 + b - 2
			v <<= 1
			if bit >= 0 {
				v |= (data[bit/8] >> (7 - bit%8)) & 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Validate checks if an ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("gameid: must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("gameid: first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("gameid: invalid character %c at position %d", char, i)
		}
	}
	return nil
}
