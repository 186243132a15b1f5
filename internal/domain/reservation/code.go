package reservation

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// CodeGenerator issues confirmation codes. It is only called after both
// capacity checks have passed.
type CodeGenerator interface {
	Generate() (Code, error)
}

// Excludes 0/O and 1/I/L so codes survive being read over the phone.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

var ErrCodeGeneration = errors.New("failed to generate reservation code")

type RandomCodeGenerator struct {
	length int
}

func NewRandomCodeGenerator(length int) *RandomCodeGenerator {
	return &RandomCodeGenerator{length: length}
}

func (g *RandomCodeGenerator) Generate() (Code, error) {
	buf := make([]byte, g.length)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return Code{}, errors.Join(ErrCodeGeneration, err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return NewCode(string(buf))
}
