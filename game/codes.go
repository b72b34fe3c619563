package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

// Ambiguous characters (I, O, 0, 1) are left out so codes survive being
// read out loud across a table.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

// CodeGenerator produces short human-typeable room codes. Collisions are
// unlikely but possible; the store retries until it gets a free one.
type CodeGenerator interface {
	Generate() string
}

type randomCodeGenerator struct{}

func NewCodeGenerator() CodeGenerator {
	return randomCodeGenerator{}
}

func (randomCodeGenerator) Generate() string {
	code := make([]byte, codeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
			continue
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code)
}
