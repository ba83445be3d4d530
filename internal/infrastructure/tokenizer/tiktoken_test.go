package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTiktoken_Singleton(t *testing.T) {
	a, err := NewTiktoken()
	require.NoError(t, err)
	b, err := NewTiktoken()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestTiktoken_RoundTrip(t *testing.T) {
	tk, err := NewTiktoken()
	require.NoError(t, err)

	text := "Admission to B.Tech at UIET requires JEE Main scores."
	tokens := tk.Encode(text)
	assert.NotEmpty(t, tokens)
	assert.Equal(t, text, tk.Decode(tokens))
	assert.Equal(t, len(tokens), tk.Count(text))
}

func TestTiktoken_Empty(t *testing.T) {
	tk, err := NewTiktoken()
	require.NoError(t, err)

	assert.Empty(t, tk.Encode(""))
	assert.Equal(t, "", tk.Decode(nil))
	assert.Equal(t, 0, tk.Count(""))
}
