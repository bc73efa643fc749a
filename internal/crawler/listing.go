package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"comprende-prod/trademe/helpers"
	apperrors "comprende-prod/trademe/pkg/errors"
)

const DefaultSiteURL = "https://www.trademe.co.nz"

// Extractor turns listing cards into Listings
type Extractor struct {
	// SiteURL is joined with each card's detail path to build Listing.Link
	SiteURL string
}

// NewExtractor creates an extractor resolving links against siteURL.
// An empty siteURL falls back to DefaultSiteURL.
func NewExtractor(siteURL string) *Extractor {
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}
	return &Extractor{SiteURL: strings.TrimRight(siteURL, "/")}
}

// Card extracts a single card of the given tier
func (e *Extractor) Card(tier Tier, card *goquery.Selection) (Listing, error) {
	switch tier {
	case TierSuperFeature:
		return e.SuperFeature(card)
	case TierPremium:
		return e.Premium(card)
	case TierNormal:
		return e.Normal(card)
	default:
		return Listing{}, apperrors.NewValidation("extractor", "unknown tier "+tier.String())
	}
}

// SuperFeature extracts a super feature card. Agency is missing on
// private listings and falls back to the PrivateListing sentinel.
func (e *Extractor) SuperFeature(card *goquery.Selection) (Listing, error) {
	listing, err := e.common(TierSuperFeature, card)
	if err != nil {
		return Listing{}, err
	}

	agent, ok := textOf(superFeatureAgentSelector)(card)
	if !ok {
		return Listing{}, malformed(TierSuperFeature, "agent", "agent detail not found")
	}
	listing.Agent = Present(agent)
	listing.Agency = orSentinel(card, attrOf(superFeatureAgencySelector, agencyAttr), PrivateListing)

	return listing, nil
}

// Premium extracts a premium card. The agency is read from the regular
// logo and then from the top agency badge.
func (e *Extractor) Premium(card *goquery.Selection) (Listing, error) {
	listing, err := e.common(TierPremium, card)
	if err != nil {
		return Listing{}, err
	}

	agent, ok := textOf(premiumAgentSelector)(card)
	if !ok {
		return Listing{}, malformed(TierPremium, "agent", "unrecognised premium layout, agent name not found")
	}
	listing.Agent = Present(agent)

	agency, ok := firstOf(
		attrOf(premiumAgencySelector, agencyAttr),
		attrOf(premiumTopAgencySelector, agencyAttr),
	)(card)
	if !ok {
		return Listing{}, malformed(TierPremium, "agency", "neither agency logo nor top agency badge found")
	}
	listing.Agency = Present(agency)

	return listing, nil
}

// Normal extracts a regular search card
func (e *Extractor) Normal(card *goquery.Selection) (Listing, error) {
	listing, err := e.common(TierNormal, card)
	if err != nil {
		return Listing{}, err
	}

	listing.Agent = orSentinel(card, textOf(normalAgentSelector), NoAgentProvided)

	agency, ok := firstOf(
		attrOf(normalAgencySelector, agencyAttr),
		textOf(normalAgencyTextSelector),
	)(card)
	if !ok {
		return Listing{}, malformed(TierNormal, "agency", "neither agency logo nor agency text found")
	}
	listing.Agency = Present(agency)

	return listing, nil
}

// common reads the fields every tier shares
func (e *Extractor) common(tier Tier, card *goquery.Selection) (Listing, error) {
	listing := Listing{
		Tier:         tier,
		Availability: Sentinel(NotApplicable),
		Parking:      Sentinel(NotApplicable),
	}

	// The same node holds the address of sale listings and the
	// availability of rentals.
	subtitle, ok := textOf(addressSelector)(card)
	if !ok {
		return Listing{}, malformed(tier, "address", "address/availability subtitle not found")
	}
	if helpers.ContainsFold(subtitle, "available") {
		listing.Availability = Present(subtitle)
		listing.Address = Absent()
	} else {
		listing.Address = Present(subtitle)
	}

	if listing.Title, ok = textOf(titleSelector)(card); !ok {
		return Listing{}, malformed(tier, "title", "title not found")
	}
	if listing.Price, ok = textOf(priceSelector)(card); !ok {
		return Listing{}, malformed(tier, "price", "price not found")
	}
	if listing.Features, ok = attrOf(featuresSelector, featuresAttr)(card); !ok {
		return Listing{}, malformed(tier, "features", "features list or its aria-label not found")
	}

	if parking, ok := parkingOf(card); ok {
		listing.Parking = Present(parking)
	}

	link, err := e.link(tier, card)
	if err != nil {
		return Listing{}, err
	}
	listing.Link = link

	return listing, nil
}

// parkingOf returns the value of the first metric whose icon is the parking icon.
// A parking metric without a value counts as no parking.
func parkingOf(card *goquery.Selection) (string, bool) {
	var parking *goquery.Selection
	card.Find(metricSelector).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		alt, _ := item.Find(metricIconSelector).First().Attr("alt")
		if strings.EqualFold(strings.TrimSpace(alt), parkingIconAlt) {
			parking = item
			return false
		}
		return true
	})
	if parking == nil {
		return "", false
	}
	return textOf(metricValueSelector)(parking)
}

// link builds the absolute detail page URL from the card's first anchor
func (e *Extractor) link(tier Tier, card *goquery.Selection) (string, error) {
	href, ok := attrOf(linkSelector, "href")(card)
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", malformed(tier, "link", "listing anchor not found")
	}
	if !strings.HasPrefix(href, detailPathPrefix) {
		href = detailPathPrefix + strings.TrimPrefix(href, "/")
	}
	return e.SiteURL + href, nil
}

func malformed(tier Tier, field, message string) error {
	return apperrors.NewMalformedCard(tier.String(), field, message)
}
