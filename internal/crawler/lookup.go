package crawler

import (
	"github.com/PuerkitoBio/goquery"
)

// lookup reads one optional value out of a card
type lookup func(*goquery.Selection) (string, bool)

// textOf looks up the text of the first node matching selector, as found.
// Whitespace is normalised when a listing is marshalled.
func textOf(selector string) lookup {
	return func(s *goquery.Selection) (string, bool) {
		node := s.Find(selector).First()
		if node.Length() == 0 {
			return "", false
		}
		return node.Text(), true
	}
}

// attrOf looks up attribute name on the first node matching selector
func attrOf(selector, name string) lookup {
	return func(s *goquery.Selection) (string, bool) {
		return s.Find(selector).First().Attr(name)
	}
}

// firstOf tries each lookup in order and returns the first hit
func firstOf(lookups ...lookup) lookup {
	return func(s *goquery.Selection) (string, bool) {
		for _, l := range lookups {
			if v, ok := l(s); ok {
				return v, true
			}
		}
		return "", false
	}
}

// orSentinel turns a missed lookup into a sentinel field
func orSentinel(s *goquery.Selection, l lookup, reason string) Field {
	if v, ok := l(s); ok {
		return Present(v)
	}
	return Sentinel(reason)
}
