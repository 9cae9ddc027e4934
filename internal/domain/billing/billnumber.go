package billing

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// NumberPrefix prefixes every generated bill number.
const NumberPrefix = "BILL-"

// tokenLen is the base36 length of a 128-bit value, zero-padded so numbers
// sort and align uniformly.
const tokenLen = 25

// NumberGenerator produces unique human-readable bill numbers.
// 128 random bits encoded base36 make collisions negligible under any
// realistic concurrent creation rate, unlike timestamp-plus-small-random
// schemes.
type NumberGenerator struct{}

// NewNumberGenerator constructs the generator.
func NewNumberGenerator() *NumberGenerator { return &NumberGenerator{} }

var maxToken = new(big.Int).Lsh(big.NewInt(1), 128)

// Generate returns a new bill number, e.g. "BILL-3F9A0K...".
func (g *NumberGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, maxToken)
	if err != nil {
		return "", fmt.Errorf("billnumber: read random: %w", err)
	}
	tok := strings.ToUpper(n.Text(36))
	if len(tok) < tokenLen {
		tok = strings.Repeat("0", tokenLen-len(tok)) + tok
	}
	return NumberPrefix + tok, nil
}
