package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func TestJSONStrict_RoundTrip(t *testing.T) {
	t.Parallel()

	out, err := JSONStrict.Marshal(sample{Name: "a<b", N: 2})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a<b","n":2}`, string(out))

	var s sample
	require.NoError(t, JSONStrict.Unmarshal(out, &s))
	assert.Equal(t, sample{Name: "a<b", N: 2}, s)
}

func TestJSONStrict_RejectsUnknownAndTrailing(t *testing.T) {
	t.Parallel()

	var s sample
	assert.Error(t, JSONStrict.Unmarshal([]byte(`{"name":"x","bogus":1}`), &s))
	assert.Error(t, JSONStrict.Unmarshal([]byte(`{"name":"x"} {"name":"y"}`), &s))
}

func TestDecodeBody_EmptyBody(t *testing.T) {
	t.Parallel()

	var s sample
	require.NoError(t, DecodeBody(JSONStrict, nil, &s))
	require.NoError(t, DecodeBody(JSONStrict, []byte("  \n"), &s))
	assert.Zero(t, s)
}
