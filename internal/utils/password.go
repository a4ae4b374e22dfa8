package utils

import (
	"crypto/rand"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

const (
	passwordVowels     = "aeiou"
	passwordConsonants = "bcdfghjklmnpqrstvwxyz"
	passwordDigits     = "0123456789"
	passwordSpecials   = "!@#$%^&*"
)

// GeneratePassword builds a pronounceable initial password for bulk-created
// accounts: alternating consonant/vowel pairs, two digits and a special
// character. These are meant to be rotated on first login.
func GeneratePassword(length int) string {
	if length <= 0 {
		length = 10
	}
	var b strings.Builder
	for i := 0; i < length/2; i++ {
		b.WriteByte(passwordConsonants[randIndex(len(passwordConsonants))])
		b.WriteByte(passwordVowels[randIndex(len(passwordVowels))])
	}
	word := b.String()
	word = strings.ToUpper(word[:1]) + word[1:]

	var out strings.Builder
	out.WriteString(word)
	out.WriteByte(passwordDigits[randIndex(len(passwordDigits))])
	out.WriteByte(passwordDigits[randIndex(len(passwordDigits))])
	out.WriteByte(passwordSpecials[randIndex(len(passwordSpecials))])
	return out.String()
}

func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
