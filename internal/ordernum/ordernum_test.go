package ordernum

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	orderPattern   = regexp.MustCompile(`^ORD-\d{14}-\d{4}$`)
	receiptPattern = regexp.MustCompile(`^RCP-\d{14}-[A-Z0-9]{4}$`)
)

func TestOrderNumberFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := Order()
		assert.Regexp(t, orderPattern, n)
	}
}

func TestReceiptNumberFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := Receipt()
		assert.Regexp(t, receiptPattern, n)
	}
}

func TestOrderNumbersMostlyDistinct(t *testing.T) {
	// uniqueness is probabilistic, but 10k suffixes over a handful of
	// seconds should not all collide
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[Order()] = true
	}
	assert.Greater(t, len(seen), 1)
}
