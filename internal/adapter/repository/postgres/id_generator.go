package postgres

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/wagerpool/ledger/internal/domain"
)

// HexIDGenerator produces prefixed, fixed-length entity ids from a
// cryptographically secure random source. All ids of a kind share the same
// total length: the prefix plus enough random lowercase hex to fill
// domain.IDLength characters.
type HexIDGenerator struct{}

// NewHexIDGenerator creates a new HexIDGenerator.
func NewHexIDGenerator() *HexIDGenerator {
	return &HexIDGenerator{}
}

// Generate generates a new id with the given prefix. It never fails:
// crypto/rand.Read always returns len(b) and a nil error.
func (g *HexIDGenerator) Generate(prefix string) string {
	buf := make([]byte, domain.IDLength)
	rand.Read(buf)

	return (prefix + hex.EncodeToString(buf))[:domain.IDLength]
}
