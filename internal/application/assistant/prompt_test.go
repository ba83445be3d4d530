package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/config"
)

func TestPromptAssembler_Build(t *testing.T) {
	p := NewPromptAssembler("RULES\n{marker}\nCTX:\n{context}\nQ: {query}", "v1")

	out := p.Build(passages("first", "second"), "admission for B.Tech")
	assert.Equal(t, "RULES\n*Know more about:*\nCTX:\nfirst\n\n---\n\nsecond\nQ: admission for B.Tech", out)
	assert.Equal(t, "v1", p.Version())
}

func TestPromptAssembler_Deterministic(t *testing.T) {
	k, err := config.LoadKnowledge("")
	require.NoError(t, err)
	p := NewPromptAssembler(k.Instruction, k.Version)

	in := passages("Fee for UIET is ₹ 1,20,000 per year.", "Hostel fee is separate.")
	first := p.Build(in, "fee for UIET")
	assert.Equal(t, first, p.Build(in, "fee for UIET"))

	assert.Contains(t, first, domain.FollowUpMarker)
	assert.Contains(t, first, "Fee for UIET is ₹ 1,20,000 per year."+ContextSeparator+"Hostel fee is separate.")
	assert.Contains(t, first, "fee for UIET")
	assert.NotContains(t, first, "{context}")
	assert.NotContains(t, first, "{query}")
	assert.NotContains(t, first, "{marker}")
}

func TestPromptAssembler_PlaceholdersInPassagesNotExpanded(t *testing.T) {
	p := NewPromptAssembler("{context}|{query}", "v1")

	out := p.Build(passages("literal {query} inside"), "q")
	assert.Equal(t, "literal {query} inside|q", out)
}

func TestPromptAssembler_NoPassages(t *testing.T) {
	p := NewPromptAssembler("[{context}] {query}", "v1")
	assert.Equal(t, "[] q", p.Build(nil, "q"))
	assert.Equal(t, 1, strings.Count(p.Build(nil, "q"), "q"))
}
