package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

func TestParseCreators(t *testing.T) {
	t.Parallel()

	alice := address.MustFromString("9sCGJFSVb7zyXfozXXiVyemaaNtbHVEiRy81HmQzGWG9")
	bob := address.MustFromString("FYUpechM9AEW579boyznhD7vq3xumeC3BstW4PB1qGEp")

	tests := []struct {
		name     string
		str      string
		expected []domain.RoyaltyShare
		wantErr  bool
	}{
		{
			name: "empty",
			str:  "",
		},
		{
			name: "two_creators",
			str:  alice.String() + ":40, " + bob.String() + ":60",
			expected: []domain.RoyaltyShare{
				{Address: alice, Share: 40},
				{Address: bob, Share: 60},
			},
		},
		{
			name:    "missing_share",
			str:     alice.String(),
			wantErr: true,
		},
		{
			name:    "share_overflow",
			str:     alice.String() + ":256",
			wantErr: true,
		},
		{
			name:    "invalid_address",
			str:     "alice:100",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			creators, err := parseCreators(tt.str)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, creators)
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	merged := merge(
		map[string]string{rpcServerKey: "http://localhost:9090", keyFileKey: "key"},
		map[string]string{rpcServerKey: "http://localhost:9091"},
	)
	require.Equal(t, map[string]string{
		rpcServerKey: "http://localhost:9091",
		keyFileKey:   "key",
	}, merged)
}
