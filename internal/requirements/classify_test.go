package requirements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		line string
		want LineKind
	}{
		{"Tritium", KindName},
		{"2,500", KindQuantity},
		{"50", KindQuantity},
		{"1,000,000", KindQuantity},
		{"CMM Composite", KindName},
		{"H.E. Suits", KindName},
		{"4x Thrusters", KindName},   // digits mixed with letters stay a name
		{",", KindName},              // separator artifact, no digits
		{"1 000", KindName},          // space-grouped numbers are not quantities
		{"0", KindQuantity},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.line), "line %q", tc.line)
	}
}

func TestParseQuantity(t *testing.T) {
	n, err := parseQuantity("1,234,567")
	assert.NoError(t, err)
	assert.Equal(t, 1234567, n)
}
