package inventory

import (
	"strings"
	"testing"
)

func TestGenerateSKU(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sku, err := GenerateSKU()
		if err != nil {
			t.Fatalf("GenerateSKU returned error: %v", err)
		}
		if len(sku) != skuLength {
			t.Fatalf("expected %d characters, got %q", skuLength, sku)
		}
		for _, r := range sku {
			if !strings.ContainsRune(skuAlphabet, r) {
				t.Fatalf("unexpected character %q in sku %q", r, sku)
			}
		}
		seen[sku] = true
	}
	if len(seen) < 95 {
		t.Fatalf("expected mostly unique skus, got %d distinct of 100", len(seen))
	}
}
