package crawler

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"comprende-prod/trademe/helpers"
	apperrors "comprende-prod/trademe/pkg/errors"
)

// ParseDocument parses raw page markup
func ParseDocument(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, apperrors.NewParsing("page", "failed to parse page markup", err)
	}
	return doc, nil
}

// HasResults reports whether the page carries any listing card and no
// "no results found" banner.
func HasResults(doc *goquery.Document) bool {
	if helpers.ContainsFold(doc.Find(noResultsSelector).First().Text(), noResultsPhrase) {
		return false
	}
	for _, tier := range Tiers {
		if doc.Find(tier.Marker()).Length() > 0 {
			return true
		}
	}
	return false
}

// ExtractPage extracts every card on the page: super feature cards, then
// premium, then normal, each in document order. One malformed card fails
// the whole page.
func (e *Extractor) ExtractPage(doc *goquery.Document) ([]Listing, error) {
	var listings []Listing
	for _, tier := range Tiers {
		var err error
		doc.Find(tier.Marker()).EachWithBreak(func(i int, card *goquery.Selection) bool {
			var listing Listing
			listing, err = e.Card(tier, card)
			if err != nil {
				err = fmt.Errorf("%s card %d: %w", tier, i, err)
				return false
			}
			listings = append(listings, listing)
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return listings, nil
}
