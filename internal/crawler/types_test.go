package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField(t *testing.T) {
	v, ok := Present("2").Value()
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	v, ok = Sentinel(NotApplicable).Value()
	assert.False(t, ok)
	assert.Equal(t, "n/a", v)
	assert.Equal(t, "n/a", Sentinel(NotApplicable).Text())

	assert.Equal(t, FieldAbsent, Field{}.State())
	assert.Equal(t, Absent(), Field{})
	assert.Equal(t, "", Absent().Text())
	assert.Equal(t, "<absent>", Absent().String())

	assert.NotEqual(t, Present("n/a"), Sentinel("n/a"))
}

func TestTier(t *testing.T) {
	assert.Equal(t, []string{superFeatureCardTag, premiumCardTag, normalCardTag},
		[]string{Tiers[0].Marker(), Tiers[1].Marker(), Tiers[2].Marker()})
	assert.Equal(t, "premium", TierPremium.String())
	assert.Equal(t, "unknown", Tier(42).String())
	assert.Equal(t, "", Tier(42).Marker())
}

func TestContainsListing(t *testing.T) {
	a := Listing{Tier: TierNormal, Title: "A", Price: "$1", Features: "f", Link: "l", Agent: Sentinel(NoAgentProvided)}
	b := a
	b.Title = "B"

	assert.True(t, ContainsListing([]Listing{b, a}, a))
	assert.False(t, ContainsListing([]Listing{b}, a))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
}
