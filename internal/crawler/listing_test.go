package crawler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "comprende-prod/trademe/pkg/errors"
)

func TestSuperFeatureRent(t *testing.T) {
	e := NewExtractor("")
	listing, err := e.SuperFeature(card(t, superFeatureRentCard, superFeatureCardTag))
	require.NoError(t, err)

	assert.Equal(t, TierSuperFeature, listing.Tier)
	assert.Equal(t, "Balclutha", listing.Title)
	assert.Equal(t, "$550 per week", listing.Price)
	assert.Equal(t, "3 bedrooms. 1 bathrooms.", listing.Features)
	assert.Equal(t, Present("Available: Fri, 20 Oct"), listing.Availability)
	assert.Equal(t, Absent(), listing.Address)
	assert.Equal(t, Sentinel(NotApplicable), listing.Parking)
	assert.Equal(t, Present(" Marietta "), listing.Agent, "card text is kept as found")
	assert.Equal(t, Present("Property Brokers Balclutha"), listing.Agency)
	assert.Equal(t,
		"https://www.trademe.co.nz/a/property/residential/rent/otago/clutha/balclutha/listing/4324246903?rsqid=054787bff49041ccbdc3d554927f200b-002",
		listing.Link)
}

func TestSuperFeaturePrivateListing(t *testing.T) {
	e := NewExtractor("")
	listing, err := e.SuperFeature(card(t, superFeaturePrivateCard, superFeatureCardTag))
	require.NoError(t, err)

	assert.Equal(t, "Newtown Gem - Location and Opportunity", listing.Title)
	assert.Equal(t, Present("Newtown, Wellington"), listing.Address)
	assert.Equal(t, Sentinel(NotApplicable), listing.Availability)
	assert.Equal(t, Sentinel(PrivateListing), listing.Agency)
	assert.Equal(t, Present("1"), listing.Parking, "icon alt is matched case-insensitively")
	assert.Equal(t,
		"https://www.trademe.co.nz/a/property/residential/sale/wellington/wellington/newtown/listing/4301234567",
		listing.Link, "links without the detail prefix get it prepended")
}

func TestSuperFeatureAgencyWithoutAlt(t *testing.T) {
	markup := strings.Replace(superFeatureRentCard, `alt="Property Brokers Balclutha"`, "", 1)
	listing, err := NewExtractor("").SuperFeature(card(t, markup, superFeatureCardTag))
	require.NoError(t, err)
	assert.Equal(t, Sentinel(PrivateListing), listing.Agency)
}

func TestSuperFeatureMissingAgent(t *testing.T) {
	markup := strings.Replace(superFeatureRentCard, "tg-media-block-content", "span", 2)
	_, err := NewExtractor("").SuperFeature(card(t, markup, superFeatureCardTag))
	require.Error(t, err)
	assert.True(t, apperrors.IsMalformedCard(err))
}

func TestPremiumTopAgencyFallback(t *testing.T) {
	listing, err := NewExtractor("").Premium(card(t, premiumCard, premiumCardTag))
	require.NoError(t, err)

	assert.Equal(t, TierPremium, listing.Tier)
	assert.Equal(t, Present("Just Paterson"), listing.Agent)
	assert.Equal(t, Present("Just Paterson Real Estate Ltd MREINZ, (Licensed: REAA 2008)"), listing.Agency)
	assert.Equal(t, Present("2"), listing.Parking, "the parking metric wins over earlier metrics")
	assert.Equal(t, Present("12 Rintoul Street, Newtown, Wellington"), listing.Address)
}

func TestPremiumPrefersAgencyLogo(t *testing.T) {
	markup := strings.Replace(premiumCard,
		`<div class="tm-property-premium-listing-card__agents-name">`,
		`<img class="tm-property-premium-listing-card__agency-logo" alt="Harcourts Wellington"><div class="tm-property-premium-listing-card__agents-name">`, 1)
	listing, err := NewExtractor("").Premium(card(t, markup, premiumCardTag))
	require.NoError(t, err)
	assert.Equal(t, Present("Harcourts Wellington"), listing.Agency)
}

func TestPremiumMissingAgent(t *testing.T) {
	markup := strings.Replace(premiumCard, "tm-property-premium-listing-card__agents-name", "agents", 1)
	_, err := NewExtractor("").Premium(card(t, markup, premiumCardTag))
	require.Error(t, err)
	assert.True(t, apperrors.IsMalformedCard(err))

	var se *apperrors.ScrapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "premium", se.Source)
	assert.Equal(t, "agent", se.Field)
}

func TestPremiumMissingBothAgencies(t *testing.T) {
	markup := strings.Replace(premiumCard, "tm-property-premium-listing-card__top-agency-logo", "logo", 1)
	_, err := NewExtractor("").Premium(card(t, markup, premiumCardTag))
	require.Error(t, err)
	assert.True(t, apperrors.IsMalformedCard(err))
}

func TestNormalWithoutAgent(t *testing.T) {
	listing, err := NewExtractor("").Normal(card(t, normalCard, normalCardTag))
	require.NoError(t, err)

	assert.Equal(t, TierNormal, listing.Tier)
	assert.Equal(t, Sentinel(NoAgentProvided), listing.Agent)
	assert.Equal(t, Present("Private landlord"), listing.Agency, "agency text is used when there is no logo")
	assert.Equal(t, Present("Available: Now"), listing.Availability)
	assert.Equal(t, Absent(), listing.Address)
	assert.Equal(t, Sentinel(NotApplicable), listing.Parking)
}

func TestNormalWithAgentAndLogo(t *testing.T) {
	markup := strings.Replace(normalCard,
		`<div class="tm-property-search-card__agency-text ng-star-inserted">Private landlord</div>`,
		`<tm-property-search-card-agents-name>Sam Smith</tm-property-search-card-agents-name>
		 <img class="tm-property-search-card__agency-logo ng-star-inserted" alt="Tommy's Real Estate">`, 1)
	listing, err := NewExtractor("").Normal(card(t, markup, normalCardTag))
	require.NoError(t, err)
	assert.Equal(t, Present("Sam Smith"), listing.Agent)
	assert.Equal(t, Present("Tommy's Real Estate"), listing.Agency)
}

func TestNormalMissingAgencyFails(t *testing.T) {
	markup := strings.Replace(normalCard, "tm-property-search-card__agency-text", "other", 1)
	_, err := NewExtractor("").Normal(card(t, markup, normalCardTag))
	require.Error(t, err)
	assert.True(t, apperrors.IsMalformedCard(err))
}

func TestRequiredCommonFields(t *testing.T) {
	tests := []struct {
		name    string
		remove  string
		replace string
		field   string
	}{
		{"address", "tm-property-search-card-address-subtitle", "span", "address"},
		{"title", "tm-property-search-card-listing-title", "span", "title"},
		{"price", "tm-property-search-card-price-attribute__price", "x", "price"},
		{"features", `aria-label="1 bedroom. 1 bathroom."`, "", "features"},
		{"link", `<a href="/a/property/residential/rent/wellington/wellington/aro-valley/listing/4312223334">`, "<div>", "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markup := strings.ReplaceAll(normalCard, tt.remove, tt.replace)
			_, err := NewExtractor("").Normal(card(t, markup, normalCardTag))
			require.Error(t, err)

			var se *apperrors.ScrapeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, apperrors.ErrorTypeMalformedCard, se.Type)
			assert.Equal(t, tt.field, se.Field)
		})
	}
}

func TestParkingWithoutValueKeepsSentinel(t *testing.T) {
	markup := strings.Replace(superFeaturePrivateCard,
		`<span class="tm-property-search-card-attribute-icons__metric-value">1</span>`, "", 1)
	listing, err := NewExtractor("").SuperFeature(card(t, markup, superFeatureCardTag))
	require.NoError(t, err)
	assert.Equal(t, Sentinel(NotApplicable), listing.Parking)
}

func TestExtractionIsDeterministic(t *testing.T) {
	e := NewExtractor("")
	sel := card(t, premiumCard, premiumCardTag)

	first, err := e.Premium(sel)
	require.NoError(t, err)
	second, err := e.Premium(sel)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestCustomSiteURL(t *testing.T) {
	e := NewExtractor("http://127.0.0.1:8080/")
	listing, err := e.Normal(card(t, normalCard, normalCardTag))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/a/property/residential/rent/wellington/wellington/aro-valley/listing/4312223334", listing.Link)
}

func TestCardDispatch(t *testing.T) {
	e := NewExtractor("")
	listing, err := e.Card(TierNormal, card(t, normalCard, normalCardTag))
	require.NoError(t, err)
	assert.Equal(t, "Aro Valley studio", listing.Title)

	_, err = e.Card(Tier(0), card(t, normalCard, normalCardTag))
	assert.True(t, apperrors.IsValidation(err))
}
