package assistant

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunker_InvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		maxTokens int
		stride    int
	}{
		{"zero max", 0, 0},
		{"negative max", -1, 0},
		{"negative stride", 10, -1},
		{"stride equals max", 10, 10},
		{"stride above max", 10, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChunker(runeTokenizer{}, tt.maxTokens, tt.stride)
			assert.Error(t, err)
		})
	}

	_, err := NewChunker(nil, 10, 2)
	assert.Error(t, err)
}

func TestChunker_ZeroTokens(t *testing.T) {
	c, err := NewChunker(runeTokenizer{}, 512, 50)
	require.NoError(t, err)

	assert.Empty(t, slices.Collect(c.Chunk("")))
}

func TestChunker_Windows(t *testing.T) {
	c, err := NewChunker(runeTokenizer{}, 4, 1)
	require.NoError(t, err)

	chunks := slices.Collect(c.Chunk("abcdefghij"))
	require.Len(t, chunks, 4)

	assert.Equal(t, "abcd", chunks[0].Text)
	assert.Equal(t, "defg", chunks[1].Text)
	assert.Equal(t, "ghij", chunks[2].Text)
	// 起点 9 < 10，重叠区内仍产生一个短窗口
	assert.Equal(t, 9, chunks[3].Start)
	assert.Equal(t, 10, chunks[3].End)
	assert.Equal(t, "j", chunks[3].Text)
	for i, ch := range chunks {
		assert.Equal(t, i, ch.Index)
		assert.Equal(t, i*3, ch.Start, "起点按 maxTokens-stride 前进")
		assert.LessOrEqual(t, ch.End-ch.Start, 4)
	}
}

func TestChunker_FinalChunkShort(t *testing.T) {
	c, err := NewChunker(runeTokenizer{}, 4, 0)
	require.NoError(t, err)

	chunks := slices.Collect(c.Chunk("abcdef"))
	require.Len(t, chunks, 2)
	assert.Equal(t, "ef", chunks[1].Text)
}

func TestChunker_DeterministicAndRestartable(t *testing.T) {
	c, err := NewChunker(runeTokenizer{}, 7, 3)
	require.NoError(t, err)

	text := strings.Repeat("Panjab University admissions ", 20)
	seq := c.Chunk(text)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second, "同一序列可重复遍历且结果一致")
	assert.Equal(t, first, slices.Collect(c.Chunk(text)))
}

func TestChunker_ReconstructionRemovesOverlap(t *testing.T) {
	for _, params := range [][2]int{{4, 1}, {5, 0}, {8, 7}, {512, 50}} {
		c, err := NewChunker(runeTokenizer{}, params[0], params[1])
		require.NoError(t, err)

		text := "Hostel allotment is done after counselling; fees are payable online."
		tokens := runeTokenizer{}.Encode(text)
		chunks := slices.Collect(c.Chunk(text))

		assert.Equal(t, tokens, Reconstruct(chunks), "max=%d stride=%d", params[0], params[1])
	}
}

func TestChunker_EarlyBreak(t *testing.T) {
	c, err := NewChunker(runeTokenizer{}, 2, 0)
	require.NoError(t, err)

	n := 0
	for range c.Chunk("abcdefgh") {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}
