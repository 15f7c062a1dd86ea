package domain

import "regexp"

// mappingEntryRegex matches `"<path>": "rbxassetid://<digits>"`. Whitespace
// around the colon is tolerated so both TS-literal and compact JSON output
// from the sync tooling are accepted.
var mappingEntryRegex = regexp.MustCompile(`"([^"]+)"\s*:\s*"rbxassetid://(\d+)"`)

// ParseMapping extracts asset entries from the raw text of a mapping document
// in document order. Anything that does not match the entry pattern is
// ignored. Duplicate paths are all returned; BuildIndex resolves them.
func ParseMapping(text string) []AssetEntry {
	matches := mappingEntryRegex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	entries := make([]AssetEntry, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, AssetEntry{Path: m[1], ID: m[2]})
	}
	return entries
}
