package crawler

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const superFeatureRentCard = `
<tm-property-super-feature-card>
  <a href="/a/property/residential/rent/otago/clutha/balclutha/listing/4324246903?rsqid=054787bff49041ccbdc3d554927f200b-002">
    <tm-property-search-card-address-subtitle>Available: Fri, 20 Oct</tm-property-search-card-address-subtitle>
    <tm-property-search-card-listing-title>Balclutha</tm-property-search-card-listing-title>
    <div class="tm-property-search-card-price-attribute__price">$550 per week</div>
    <ul class="tm-property-search-card-attribute-icons__features" aria-label="3 bedrooms. 1 bathrooms.">
      <li class="tm-property-search-card-attribute-icons__metric ng-star-inserted">
        <tg-icon alt="Bedrooms"></tg-icon>
        <span class="tm-property-search-card-attribute-icons__metric-value">3</span>
      </li>
    </ul>
  </a>
  <tg-media-block-content class="tm-property-super-feature-card__agent-detail--simple o-media-block__content"> Marietta </tg-media-block-content>
  <img class="tm-property-super-feature-card__agent-detail--simple o-media-block__content" alt="Property Brokers Balclutha">
</tm-property-super-feature-card>`

const superFeaturePrivateCard = `
<tm-property-super-feature-card>
  <a href="property/residential/sale/wellington/wellington/newtown/listing/4301234567">
    <tm-property-search-card-address-subtitle>Newtown, Wellington</tm-property-search-card-address-subtitle>
    <tm-property-search-card-listing-title>Newtown Gem - Location and Opportunity</tm-property-search-card-listing-title>
    <div class="tm-property-search-card-price-attribute__price">Deadline sale</div>
    <ul class="tm-property-search-card-attribute-icons__features" aria-label="2 bedrooms. 1 bathroom.">
      <li class="tm-property-search-card-attribute-icons__metric">
        <tg-icon alt="Total Parking"></tg-icon>
        <span class="tm-property-search-card-attribute-icons__metric-value">1</span>
      </li>
    </ul>
  </a>
  <tg-media-block-content class="tm-property-super-feature-card__agent-detail--simple o-media-block__content">Jane Doe</tg-media-block-content>
</tm-property-super-feature-card>`

const premiumCard = `
<tm-property-premium-listing-card>
  <a href="/a/property/residential/sale/wellington/wellington/newtown/listing/4309876543">
    <tm-property-search-card-address-subtitle>12 Rintoul Street, Newtown, Wellington</tm-property-search-card-address-subtitle>
    <tm-property-search-card-listing-title>Sunny family home</tm-property-search-card-listing-title>
    <div class="tm-property-search-card-price-attribute__price">Asking price $899,000</div>
    <ul class="tm-property-search-card-attribute-icons__features" aria-label="4 bedrooms. 2 bathrooms. 180m2 floor area.">
      <li class="tm-property-search-card-attribute-icons__metric">
        <tg-icon alt="Bathrooms"></tg-icon>
        <span class="tm-property-search-card-attribute-icons__metric-value">2</span>
      </li>
      <li class="tm-property-search-card-attribute-icons__metric">
        <tg-icon alt="Total parking"></tg-icon>
        <span class="tm-property-search-card-attribute-icons__metric-value">2</span>
      </li>
    </ul>
  </a>
  <div class="tm-property-premium-listing-card__agents-name">Just Paterson</div>
  <img class="tm-property-premium-listing-card__top-agency-logo ng-star-inserted" alt="Just Paterson Real Estate Ltd MREINZ, (Licensed: REAA 2008)">
</tm-property-premium-listing-card>`

const normalCard = `
<tm-property-search-card>
  <a href="/a/property/residential/rent/wellington/wellington/aro-valley/listing/4312223334">
    <tm-property-search-card-address-subtitle>Available: Now</tm-property-search-card-address-subtitle>
    <tm-property-search-card-listing-title>Aro Valley studio</tm-property-search-card-listing-title>
    <div class="tm-property-search-card-price-attribute__price">$420 per week</div>
    <ul class="tm-property-search-card-attribute-icons__features" aria-label="1 bedroom. 1 bathroom."></ul>
  </a>
  <div class="tm-property-search-card__agency-text ng-star-inserted">Private landlord</div>
</tm-property-search-card>`

// card parses markup and returns the first element matching marker
func card(t *testing.T, markup, marker string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + markup + "</body></html>"))
	require.NoError(t, err)
	sel := doc.Find(marker).First()
	require.Equal(t, 1, sel.Length(), "fixture must contain %s", marker)
	return sel
}

func page(cards ...string) string {
	return "<html><body><div class=\"results\">" + strings.Join(cards, "\n") + "</div></body></html>"
}

const emptyPage = `<html><body><h2 class="tm-no-results__heading">No results found</h2></body></html>`
