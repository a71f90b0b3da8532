package gov

import (
	"testing"

	"github.com/govboard-network/govboard/lib"
	"github.com/stretchr/testify/require"
)

func TestPrecompileAddressSet(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		initial  []string
		run      func(t *testing.T, set *PrecompileAddressSet)
		initErr  lib.ErrorCode
		expected []string
	}{
		{
			name:    "insert keeps sorted order",
			detail:  "out of order mixed case inserts land sorted and lowercased",
			initial: []string{"0x0000000000000000000000000000000000000803", "0x0000000000000000000000000000000000000800"},
			run: func(t *testing.T, set *PrecompileAddressSet) {
				require.Nil(t, set.Add("0x0000000000000000000000000000000000000801"))
			},
			expected: []string{
				"0x0000000000000000000000000000000000000800",
				"0x0000000000000000000000000000000000000801",
				"0x0000000000000000000000000000000000000803",
			},
		},
		{
			name:    "duplicate insert",
			detail:  "adding an address already present fails",
			initial: []string{"0x0000000000000000000000000000000000000800"},
			run: func(t *testing.T, set *PrecompileAddressSet) {
				err := set.Add("0x0000000000000000000000000000000000000800")
				require.NotNil(t, err)
				require.Equal(t, lib.CodeDuplicateEntry, err.Code())
			},
			expected: []string{"0x0000000000000000000000000000000000000800"},
		},
		{
			name:    "remove absent",
			detail:  "removing an address not in the set leaves it untouched",
			initial: []string{"0x0000000000000000000000000000000000000800"},
			run: func(t *testing.T, set *PrecompileAddressSet) {
				require.Nil(t, set.Remove("0x0000000000000000000000000000000000000801"))
				err := set.Remove("not-an-address")
				require.NotNil(t, err)
				require.Equal(t, lib.CodeInvalidFormat, err.Code())
			},
			expected: []string{"0x0000000000000000000000000000000000000800"},
		},
		{
			name:    "toggle flips membership",
			detail:  "a toggle enables an absent address and disables a present one",
			initial: []string{"0x0000000000000000000000000000000000000800"},
			run: func(t *testing.T, set *PrecompileAddressSet) {
				enabled, err := set.Toggle("0x0000000000000000000000000000000000000801")
				require.Nil(t, err)
				require.True(t, enabled)
				enabled, err = set.Toggle("0x0000000000000000000000000000000000000800")
				require.Nil(t, err)
				require.False(t, enabled)
			},
			expected: []string{"0x0000000000000000000000000000000000000801"},
		},
		{
			name:    "malformed initial address",
			detail:  "construction rejects a non hex address",
			initial: []string{"0xdead"},
			initErr: lib.CodeInvalidFormat,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			set, err := NewPrecompileAddressSet(test.initial)
			if test.initErr != 0 {
				require.NotNil(t, err, test.detail)
				require.Equal(t, test.initErr, err.Code(), test.detail)
				return
			}
			require.Nil(t, err, test.detail)
			if test.run != nil {
				test.run(t, set)
			}
			require.Equal(t, test.expected, set.List(), test.detail)
			// the canonical form always satisfies the address list rule
			require.Nil(t, set.Check(), test.detail)
		})
	}
}

func TestPrecompileAddressSetContains(t *testing.T) {
	set, err := NewPrecompileAddressSet([]string{"0x00000000000000000000000000000000000000ab"})
	require.Nil(t, err)
	// membership is case insensitive
	require.True(t, set.Contains("0x00000000000000000000000000000000000000AB"))
	require.False(t, set.Contains("0x00000000000000000000000000000000000000cd"))
	// the returned list is a copy, mutating it leaves the set intact
	list := set.List()
	list[0] = "mutated"
	require.True(t, set.Contains("0x00000000000000000000000000000000000000ab"))
	require.Equal(t, 1, set.Len())
}
