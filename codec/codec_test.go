package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockberries/execution/codec"
)

type sample struct {
	Name  string `cramberry:"1" json:"name"`
	Count uint64 `cramberry:"2" json:"count"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	data, err := codec.JSON.Marshal(sample{Name: "alice", Count: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"alice","count":7}`, string(data))

	var out sample
	require.NoError(t, codec.JSON.Unmarshal(data, &out))
	assert.Equal(t, sample{Name: "alice", Count: 7}, out)

	err = codec.JSON.Unmarshal([]byte(`{"name":`), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json unmarshal")
}

func TestBinary(t *testing.T) {
	t.Parallel()

	in := sample{Name: "bob", Count: 1 << 40}
	data, err := codec.Binary.Marshal(in)
	require.NoError(t, err)

	// Deterministic: same value, same bytes.
	again, err := codec.Binary.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	var out sample
	require.NoError(t, codec.Binary.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestByName(t *testing.T) {
	t.Parallel()

	c, ok := codec.ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = codec.ByName("binary")
	require.True(t, ok)
	assert.Equal(t, "cramberry", c.Name())

	_, ok = codec.ByName("xml")
	assert.False(t, ok)
}
