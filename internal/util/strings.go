package util

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	punctChars   = "~!@#$%^&*()_+"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	challengeLen = 6
)

// RandomChallenge genera un challenge aleatorio razonablemente fuerte:
// 6 mayúsculas + 6 símbolos + 6 minúsculas + 6 dígitos, en ese orden.
// Usa crypto/rand; nunca math/rand para tokens.
func RandomChallenge() string {
	var b strings.Builder
	b.Grow(4 * challengeLen)
	for _, set := range []string{upperChars, punctChars, lowerChars, digitChars} {
		for i := 0; i < challengeLen; i++ {
			b.WriteByte(set[randIndex(len(set))])
		}
	}
	return b.String()
}

func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// Sin randomness de sistema no hay nada razonable que hacer.
		panic("util: system randomness unavailable: " + err.Error())
	}
	return int(v.Int64())
}

// Truthiness reporta si el string se parece a algo verdadero.
func Truthiness(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "t", "1":
		return true
	}
	return false
}
