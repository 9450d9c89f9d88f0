package types_test

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockberries/execution/types"
)

func TestCryptoHash(t *testing.T) {
	h := types.HashBytes([]byte("tx"))
	assert.False(t, h.IsZero())
	assert.True(t, types.CryptoHash{}.IsZero())

	parsed, err := types.ParseCryptoHash(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	text, err := h.MarshalText()
	require.NoError(t, err)
	var back types.CryptoHash
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, h, back)

	assert.Equal(t, "11111111111111111111111111111111", types.CryptoHash{}.String())

	_, err = types.ParseCryptoHash("abc")
	require.Error(t, err, "too short")
	_, err = types.ParseCryptoHash("0OIl")
	require.Error(t, err, "not base58")
}

func TestBalance(t *testing.T) {
	b := types.BalanceFromUint64(1_000)
	assert.Equal(t, "1000", b.String())
	assert.False(t, b.IsZero())
	assert.True(t, types.Balance{}.IsZero())

	maxBal := new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
	top, err := types.NewBalance(maxBal)
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211455", top.String())

	_, err = types.NewBalance(new(uint256.Int).Lsh(uint256.NewInt(1), 128))
	require.Error(t, err, "does not fit in 128 bits")

	sum, overflow := b.Add(types.BalanceFromUint64(24))
	assert.False(t, overflow)
	assert.Equal(t, "1024", sum.String())
	_, overflow = top.Add(types.BalanceFromUint64(1))
	assert.True(t, overflow)

	parsed, err := types.ParseBalance("242800000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "242800000000000000000", parsed.String())
	_, err = types.ParseBalance("-1")
	require.Error(t, err)
}

func TestBalanceJSON(t *testing.T) {
	b, err := types.ParseBalance("242800000000000000000")
	require.NoError(t, err)

	data, err := b.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"242800000000000000000"`, string(data))

	var quoted, bare types.Balance
	require.NoError(t, quoted.UnmarshalJSON([]byte(`"242800000000000000000"`)))
	require.NoError(t, bare.UnmarshalJSON([]byte(`242800000000000000000`)))
	assert.Equal(t, b, quoted)
	assert.Equal(t, b, bare)

	kept := b
	require.NoError(t, kept.UnmarshalJSON([]byte(`null`)))
	assert.Equal(t, b, kept)

	var view types.ExecutionOutcomeView
	require.NoError(t, json.Unmarshal([]byte(`{"tokens_burnt":null}`), &view))
	assert.Equal(t, types.Balance{}, view.TokensBurnt)
}

func TestAccountID(t *testing.T) {
	valid := []types.AccountID{"alice.near", "a1", "status.test.near", "sub_acc-1.alice.near"}
	for _, id := range valid {
		assert.NoError(t, id.Validate(), id)
	}
	invalid := []types.AccountID{"", "a", "Alice.near", "alice..near", "-alice.near", "alice.near.",
		"a1234567890123456789012345678901234567890123456789012345678901234"}
	for _, id := range invalid {
		assert.Error(t, id.Validate(), id)
	}
}
