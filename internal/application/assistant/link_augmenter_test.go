package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/puassist/backend/internal/domain/assistant"
	"github.com/puassist/backend/internal/infrastructure/config"
)

func newTestAugmenter(t *testing.T) *LinkAugmenter {
	t.Helper()
	k, err := config.LoadKnowledge("")
	require.NoError(t, err)
	return ProvideLinkAugmenter(k)
}

func TestLinkAugmenter_ApplyWithoutURL(t *testing.T) {
	a := newTestAugmenter(t)

	link := a.Attach("how to apply", "Fill the online form and pay the application fee.")
	require.NotNil(t, link)
	assert.Equal(t, domain.Link{Label: "Apply here", URL: "https://admissions.puchd.ac.in"}, *link)
}

func TestLinkAugmenter_ApplyWithURLAlreadyPresent(t *testing.T) {
	a := newTestAugmenter(t)

	link := a.Attach("how to apply", "Visit [the portal](https://admissions.puchd.ac.in) to apply.")
	assert.Nil(t, link)
}

func TestLinkAugmenter_FeeRule(t *testing.T) {
	a := newTestAugmenter(t)

	link := a.Attach("fee for UIET", "The annual fee is ₹ 1,20,000.")
	require.NotNil(t, link)
	assert.Equal(t, "Download official fee PDF here", link.Label)
	assert.Equal(t, "http://127.0.0.1:5000/files/pu_fee_structure.pdf", link.URL)

	// 回答已提到 PDF：走意图表，fee 没有对应文案
	assert.Nil(t, a.Attach("fee for UIET", "See the fee PDF on the website."))
}

func TestLinkAugmenter_OtherIntents(t *testing.T) {
	a := newTestAugmenter(t)

	link := a.Attach("Where is the prospectus?", "It is published every year.")
	require.NotNil(t, link)
	assert.Equal(t, "View official prospectus", link.Label)
	assert.Equal(t, "https://admissions.puchd.ac.in/includes/admnpros2024.pdf", link.URL)

	link = a.Attach("HOSTEL for girls", "There are several girls' hostels.")
	require.NotNil(t, link)
	assert.Equal(t, "Hostel Info", link.Label)

	assert.Nil(t, a.Attach("library timings", "9 to 5."))
}

func TestLinkAugmenter_AdmissionFirstMatch(t *testing.T) {
	a := newTestAugmenter(t)

	// admission 排在 hostel 之前
	link := a.Attach("admission and hostel", "Details are below.")
	require.NotNil(t, link)
	assert.Equal(t, "https://admissions.puchd.ac.in", link.URL)
	assert.Equal(t, "Apply here", link.Label)
}
