package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/puassist/backend/internal/domain/assistant"
)

func newTestClarifier() *Clarifier {
	return NewClarifier(domain.KeywordSet{"fee", "admission", "form", "hostel", "apply", "scholarship", "process"})
}

func TestClarifier_VagueThenClarification(t *testing.T) {
	c := newTestClarifier()
	state := *domain.NewConversationState("c1")

	first := c.Resolve(state, "admission")
	assert.Equal(t, "admission", first.EffectiveQuery)
	assert.Equal(t, domain.RuleAwaiting, first.Rule)
	assert.Equal(t, domain.PhaseAwaitingClarification, first.Next.Phase())
	assert.Equal(t, "admission", first.Next.PendingOriginalQuery)

	second := c.Resolve(first.Next, "B.Tech")
	assert.Equal(t, "admission for B.Tech", second.EffectiveQuery)
	assert.Equal(t, domain.RuleMerged, second.Rule)
	assert.Equal(t, domain.PhaseIdle, second.Next.Phase())
	assert.Empty(t, second.Next.PendingOriginalQuery)
}

func TestClarifier_SecondVagueQueryMerges(t *testing.T) {
	c := newTestClarifier()
	state := *domain.NewConversationState("c1")

	first := c.Resolve(state, "fee")
	second := c.Resolve(first.Next, "hostel")

	assert.Equal(t, "fee for hostel", second.EffectiveQuery)
	assert.Equal(t, domain.RuleMerged, second.Rule)
	assert.False(t, second.Next.AwaitingClarification, "合并后回到 Idle，不会再次挂起")
}

func TestClarifier_Passthrough(t *testing.T) {
	c := newTestClarifier()
	state := *domain.NewConversationState("c1")

	tr := c.Resolve(state, "Who is the Vice Chancellor?")
	assert.Equal(t, "Who is the Vice Chancellor?", tr.EffectiveQuery)
	assert.Equal(t, domain.RulePassthrough, tr.Rule)
	assert.Equal(t, domain.PhaseIdle, tr.Next.Phase())
}

func TestClarifier_DoesNotMutateInput(t *testing.T) {
	c := newTestClarifier()
	state := domain.ConversationState{ConversationID: "c1", PendingOriginalQuery: "fee", AwaitingClarification: true}

	_ = c.Resolve(state, "UIET")
	assert.True(t, state.AwaitingClarification)
	assert.Equal(t, "fee", state.PendingOriginalQuery)
}

func TestClarifier_CaseAndWidthInsensitive(t *testing.T) {
	c := newTestClarifier()

	assert.True(t, c.IsVague("What is the FEE structure?"))
	assert.True(t, c.IsVague("ＨＯＳＴＥＬ rooms")) // 全角
	assert.True(t, c.IsVague("scholarships available"))
	assert.False(t, c.IsVague("library timings"))
}

func TestClarifier_AwaitingWithoutPendingFallsThrough(t *testing.T) {
	c := newTestClarifier()
	state := domain.ConversationState{ConversationID: "c1", AwaitingClarification: true}

	tr := c.Resolve(state, "library timings")
	assert.Equal(t, domain.RulePassthrough, tr.Rule)
	assert.Equal(t, "library timings", tr.EffectiveQuery)
}
