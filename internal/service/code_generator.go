package service

import (
	"crypto/rand"
	"math/big"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeGenerator produces random upper-case alphanumeric test codes.
type CodeGenerator interface {
	Generate(length int) (string, error)
}

type RandomCodeGenerator struct{}

func (RandomCodeGenerator) Generate(length int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}
