package inventory

import (
	"crypto/rand"

	"github.com/smartsort/inventory-backend/pkg/errors"
)

const (
	skuLength   = 8
	skuAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateSKU returns a random 8-character stock keeping unit drawn from
// uppercase letters and digits.
func GenerateSKU() (string, error) {
	buf := make([]byte, skuLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(errors.CodeInternal, err, "generate sku")
	}
	for i, b := range buf {
		buf[i] = skuAlphabet[int(b)%len(skuAlphabet)]
	}
	return string(buf), nil
}
