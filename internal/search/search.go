package search

import (
	"strings"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
)

type CityMatch int

const (
	// CitySubstring matches when the city contains the filter.
	CitySubstring CityMatch = iota
	// CityExact matches when the city equals the filter, ignoring case.
	CityExact
)

// Params holds optional filters. Set filters are combined with AND; Text
// matches the name or the body text.
type Params struct {
	City      string
	Text      string
	CityMatch CityMatch
}

func (p Params) Empty() bool {
	return strings.TrimSpace(p.City) == "" && strings.TrimSpace(p.Text) == ""
}

func Matches(o *obituary.Obituary, p Params) bool {
	if city := strings.TrimSpace(p.City); city != "" {
		switch p.CityMatch {
		case CityExact:
			if !strings.EqualFold(strings.TrimSpace(o.City), city) {
				return false
			}
		default:
			if !containsFold(o.City, city) {
				return false
			}
		}
	}
	if text := strings.TrimSpace(p.Text); text != "" {
		if !containsFold(o.Name, text) && !containsFold(o.BodyText, text) {
			return false
		}
	}
	return true
}

// Filter returns the matching records in their original order.
func Filter(obits []obituary.Obituary, p Params) []obituary.Obituary {
	out := make([]obituary.Obituary, 0, len(obits))
	if p.Empty() {
		return append(out, obits...)
	}
	for i := range obits {
		if Matches(&obits[i], p) {
			out = append(out, obits[i])
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
