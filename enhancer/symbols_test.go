package enhancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripSymbols(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Mild detergent, 2L bottle.", "Mild detergent, 2L bottle."},
		{"emoticons removed", "Great choice! \U0001F600\U0001F44D", "Great choice! "},
		{"pictographs removed", "Ships fast \U0001F680 worldwide \U0001F30D", "Ships fast  worldwide "},
		{"dingbats and misc symbols removed", "✅ In stock ✔ ⭐", " In stock  "},
		{"markdown preserved", "**Detergent X** - [Shopee](https://shopee.vn/x)", "**Detergent X** - [Shopee](https://shopee.vn/x)"},
		{"empty string", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripSymbols(tc.in))
		})
	}
}

func TestStripSymbolsIsFixedPoint(t *testing.T) {
	inputs := []string{
		"Hello \U0001F600 world ❤",
		"no symbols at all",
		"\U0001F680\U0001F680\U0001F680",
	}

	for _, in := range inputs {
		once := StripSymbols(in)
		twice := StripSymbols(once)
		assert.Equal(t, once, twice, "stripping an already-stripped string must be a no-op")
	}
}
