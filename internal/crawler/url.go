package crawler

import (
	"fmt"
	"net/url"
	"strings"

	apperrors "comprende-prod/trademe/pkg/errors"
)

const DefaultSearchURL = "https://www.trademe.co.nz/a/property"

// Location narrows a search. Names use dashes for spaces, e.g. "aro-valley".
type Location struct {
	Region   string
	District string
	Suburb   string
}

// Validate accepts region+district+suburb, region+district, region
// alone, suburb alone, or no location at all.
func (l Location) Validate() error {
	r, d, s := l.Region != "", l.District != "", l.Suburb != ""
	switch {
	case r && d, r && !s, !r && !d:
		return nil
	default:
		return apperrors.NewValidation("url", fmt.Sprintf(
			"location must be region/district/suburb, region/district, region, suburb or empty; got %+v", l))
	}
}

func (l Location) segments() []string {
	var out []string
	for _, seg := range []string{l.Region, l.District, l.Suburb} {
		if seg != "" {
			out = append(out, strings.ToLower(seg))
		}
	}
	return out
}

// Param is one search query option, e.g. {"bedrooms_min", 2}
type Param struct {
	Key   string
	Value any
}

// MakeURL builds a residential search url:
//
//	<base>/residential/<sale|rent>[/<region>[/<district>[/<suburb>]]]/search?k1=v1&k2=v2
//
// Params keep the order they are given in.
func MakeURL(base, kind string, loc Location, params ...Param) (string, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != "sale" && kind != "rent" {
		return "", apperrors.NewValidation("url", fmt.Sprintf("kind must be sale or rent, got %q", kind))
	}
	if err := loc.Validate(); err != nil {
		return "", err
	}
	if base == "" {
		base = DefaultSearchURL
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	b.WriteString("/residential/")
	b.WriteString(kind)
	for _, seg := range loc.segments() {
		b.WriteString("/")
		b.WriteString(url.PathEscape(seg))
	}
	b.WriteString("/search?")
	for i, p := range params {
		if i > 0 {
			b.WriteString("&")
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(fmt.Sprint(p.Value)))
	}

	return b.String(), nil
}
