package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGuruCoin(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
		expErr bool
	}{
		{"bare amount", "100", "100aguru", false},
		{"with denom", "250aguru", "250aguru", false},
		{"other denom", "5uatom", "5uatom", false},
		{"negative", "-1", "", true},
		{"garbage", "lots", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			coin, err := ParseGuruCoin(tc.input)
			if tc.expErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expect, coin.String())
		})
	}
}
