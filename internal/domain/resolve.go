package domain

// Resolution is the outcome of resolving a reference token. The zero value
// is Unresolved.
type Resolution struct {
	Entry    AssetEntry
	Resolved bool
}

// Unresolved is returned for unknown and ambiguous tokens
var Unresolved = Resolution{}

// Resolve maps a reference token to an asset. An exact path match wins.
// Otherwise the token's filename is accepted only if exactly one indexed
// asset carries that filename; ambiguous and unknown tokens are Unresolved.
func (idx *Index) Resolve(token string) Resolution {
	if idx == nil || token == "" {
		return Unresolved
	}

	if id, ok := idx.byPath[token]; ok {
		return Resolution{Entry: AssetEntry{Path: token, ID: id}, Resolved: true}
	}

	candidates := idx.byFilename[Basename(token)]
	if len(candidates) != 1 {
		return Unresolved
	}

	p := candidates[0]
	return Resolution{Entry: AssetEntry{Path: p, ID: idx.byPath[p]}, Resolved: true}
}
