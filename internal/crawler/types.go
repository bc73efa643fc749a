package crawler

import (
	"encoding/json"
	"slices"

	"comprende-prod/trademe/helpers"
)

// Tier is the placement tier of a listing card on a results page
type Tier int

const (
	TierSuperFeature Tier = iota + 1
	TierPremium
	TierNormal
)

// Tiers lists every tier in the order cards are read from a page
var Tiers = []Tier{TierSuperFeature, TierPremium, TierNormal}

func (t Tier) String() string {
	switch t {
	case TierSuperFeature:
		return "super_feature"
	case TierPremium:
		return "premium"
	case TierNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Marker returns the element name that wraps a card of this tier
func (t Tier) Marker() string {
	switch t {
	case TierSuperFeature:
		return superFeatureCardTag
	case TierPremium:
		return premiumCardTag
	case TierNormal:
		return normalCardTag
	default:
		return ""
	}
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// FieldState tells how an optional listing field was filled
type FieldState int

const (
	FieldAbsent FieldState = iota
	FieldPresent
	FieldSentinel
)

// Field is an optional listing value. A Sentinel carries a fixed
// placeholder used when the value is legitimately missing for the tier.
// The zero value is Absent.
type Field struct {
	state FieldState
	text  string
}

func Present(text string) Field    { return Field{state: FieldPresent, text: text} }
func Sentinel(reason string) Field { return Field{state: FieldSentinel, text: reason} }
func Absent() Field                { return Field{} }

func (f Field) State() FieldState { return f.state }

// Value returns the scraped text and true only when the field is Present
func (f Field) Value() (string, bool) {
	return f.text, f.state == FieldPresent
}

// Text collapses the field to plain text: the value, the sentinel, or ""
func (f Field) Text() string {
	return f.text
}

func (f Field) String() string {
	if f.state == FieldAbsent {
		return "<absent>"
	}
	return f.text
}

// MarshalJSON writes present and sentinel fields as strings and absent ones as null
func (f Field) MarshalJSON() ([]byte, error) {
	if f.state == FieldAbsent {
		return []byte("null"), nil
	}
	return json.Marshal(helpers.SquashSpace(f.text))
}

const (
	NotApplicable   = "n/a"
	NoAgentProvided = "No agent name provided."
	PrivateListing  = "Could not find agency. Probably a private listing."
)

// Listing is one property card read from a search results page.
// Title, Price, Features and Link are always set on a successfully
// extracted listing. Address and Availability are never both Present.
type Listing struct {
	Tier         Tier   `json:"tier"`
	Title        string `json:"title"`
	Address      Field  `json:"address"`
	Price        string `json:"price"`
	Features     string `json:"features"`
	Link         string `json:"link"`
	Availability Field  `json:"availability"`
	Parking      Field  `json:"parking"`
	Agent        Field  `json:"agent"`
	Agency       Field  `json:"agency"`
}

// MarshalJSON writes the listing with the whitespace of every text field
// collapsed. The Listing itself keeps the text as it was on the page.
func (l Listing) MarshalJSON() ([]byte, error) {
	type plain Listing
	p := plain(l)
	p.Title = helpers.SquashSpace(p.Title)
	p.Price = helpers.SquashSpace(p.Price)
	p.Features = helpers.SquashSpace(p.Features)
	p.Link = helpers.SquashSpace(p.Link)
	return json.Marshal(p)
}

// Equal reports whether every field of l and other match
func (l Listing) Equal(other Listing) bool {
	return l == other
}

// ContainsListing reports whether want is in listings
func ContainsListing(listings []Listing, want Listing) bool {
	return slices.Contains(listings, want)
}
