package duplicates

import (
	"strings"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
)

// Group is a set of records that look like the same person.
type Group struct {
	Key string
	IDs []string
}

// NaturalKey is the lower-cased name with collapsed spaces and the death
// date.
func NaturalKey(o *obituary.Obituary) string {
	name := strings.ToLower(strings.Join(strings.Fields(o.Name), " "))
	death := ""
	if !o.DeathDate.IsZero() {
		death = o.DeathDate.Format("2006-01-02")
	}
	return name + "|" + death
}

// Find reports groups of two or more distinct ids sharing a natural key, in
// order of first appearance. Nothing is removed.
func Find(obits []obituary.Obituary) []Group {
	seen := make(map[string]int)
	var groups []Group
	for i := range obits {
		key := NaturalKey(&obits[i])
		idx, ok := seen[key]
		if !ok {
			seen[key] = len(groups)
			groups = append(groups, Group{Key: key, IDs: []string{obits[i].ID}})
			continue
		}
		if !contains(groups[idx].IDs, obits[i].ID) {
			groups[idx].IDs = append(groups[idx].IDs, obits[i].ID)
		}
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.IDs) > 1 {
			out = append(out, g)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
