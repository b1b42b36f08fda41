package vault

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := Address(strings.Repeat("a", AddressLength))
	bech, err := addr.Bech32("vault")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr Address
	}{
		"default decoding": {
			json:     `"6161616161616161616161616161616161616161"`,
			wantAddr: addr,
		},
		"0x prefixed hex": {
			json:     `"0x6161616161616161616161616161616161616161"`,
			wantAddr: addr,
		},
		"hex decoding": {
			json:     `"hex:6161616161616161616161616161616161616161"`,
			wantAddr: addr,
		},
		"bech32 decoding": {
			json:     `"bech32:` + bech + `"`,
			wantAddr: addr,
		},
		"condition decoding": {
			json:     `"cond:security/module/7631"`,
			wantAddr: NewCondition("security", "module", []byte("v1")).Address(),
		},
		"malformed condition": {
			json:    `"cond:security/module"`,
			wantErr: errors.ErrInput,
		},
		"invalid bech32 address": {
			json:    `"bech32:xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"`,
			wantErr: errors.ErrInput,
		},
		"too short hex": {
			json:    `"616161"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foo:aaaaaaaaaaaaaaaaaaaa"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAddr, a)
		})
	}
}

func TestAddressRoundTripJSON(t *testing.T) {
	addr := Address(strings.Repeat("z", AddressLength))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"0x7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a"`, string(raw))

	var got Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, addr.Equals(got))
}

func TestAddressClone(t *testing.T) {
	addr := Address(strings.Repeat("q", AddressLength))
	cpy := addr.Clone()
	cpy[0] = 'x'
	assert.False(t, addr.Equals(cpy))
	assert.Nil(t, Address(nil).Clone())
	assert.Equal(t, "(nil)", Address(nil).String())
}
