package obituary

import (
	"strconv"
	"strings"
)

// prefixes recognised at the front of an id. The legacy ones still show up in
// deep links shared before the source tags were renamed.
var prefixes = []struct {
	prefix string
	source Source
}{
	{string(SourceRemote) + "_", SourceRemote},
	{string(SourceStatic) + "_", SourceStatic},
	{string(SourceLocal) + "_", SourceLocal},
	{"firebase_", SourceRemote},
	{"supabase_", SourceRemote},
	{"json_", SourceStatic},
	{"admin_", SourceLocal},
}

func BuildPrefixedID(src Source, rawID string) string {
	return string(src) + "_" + rawID
}

func StripSourcePrefix(id string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(id, p.prefix) {
			return id[len(p.prefix):]
		}
	}
	return id
}

// SourceOf reports the source encoded in a prefixed id.
func SourceOf(id string) (Source, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(id, p.prefix) {
			return p.source, true
		}
	}
	return "", false
}

// UpgradeLegacyID rewrites a legacy-prefixed id onto the current source tag.
// Ids without a legacy prefix are returned unchanged.
func UpgradeLegacyID(id string) string {
	src, ok := SourceOf(id)
	if !ok || strings.HasPrefix(id, string(src)+"_") {
		return id
	}
	return BuildPrefixedID(src, StripSourcePrefix(id))
}

// MatchID reports whether key names the record with id recordID. Keys may be
// the prefixed id, the bare id, a number equal to the bare id, or a legacy
// prefixed id.
func MatchID(recordID, key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	if recordID == key || recordID == UpgradeLegacyID(key) {
		return true
	}
	canonical := StripSourcePrefix(recordID)
	if canonical == key {
		return true
	}
	kn, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return false
	}
	cn, err := strconv.ParseFloat(canonical, 64)
	if err != nil {
		return false
	}
	return kn == cn
}
