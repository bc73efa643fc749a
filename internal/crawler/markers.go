package crawler

// Card wrappers
const (
	superFeatureCardTag = "tm-property-super-feature-card"
	premiumCardTag      = "tm-property-premium-listing-card"
	normalCardTag       = "tm-property-search-card"
)

// Common card fields
const (
	addressSelector     = "tm-property-search-card-address-subtitle"
	titleSelector       = "tm-property-search-card-listing-title"
	priceSelector       = "div.tm-property-search-card-price-attribute__price"
	featuresSelector    = "ul.tm-property-search-card-attribute-icons__features"
	featuresAttr        = "aria-label"
	metricSelector      = "li.tm-property-search-card-attribute-icons__metric"
	metricIconSelector  = "tg-icon"
	metricValueSelector = "span.tm-property-search-card-attribute-icons__metric-value"
	parkingIconAlt      = "total parking"
	linkSelector        = "a"
	agencyAttr          = "alt"
	noResultsSelector   = "h2.tm-no-results__heading"
	noResultsPhrase     = "no results found"
	detailPathPrefix    = "/a/"
)

// Per-tier agent and agency markers
const (
	superFeatureAgentSelector  = "tg-media-block-content.tm-property-super-feature-card__agent-detail--simple.o-media-block__content"
	superFeatureAgencySelector = "img.tm-property-super-feature-card__agent-detail--simple.o-media-block__content"

	premiumAgentSelector     = "div.tm-property-premium-listing-card__agents-name"
	premiumAgencySelector    = "img.tm-property-premium-listing-card__agency-logo"
	premiumTopAgencySelector = "img.tm-property-premium-listing-card__top-agency-logo"

	normalAgentSelector      = "tm-property-search-card-agents-name"
	normalAgencySelector     = "img.tm-property-search-card__agency-logo"
	normalAgencyTextSelector = "div.tm-property-search-card__agency-text"
)
