package domain

import "regexp"

var (
	quotedRegex = regexp.MustCompile(`"[^"]+"`)
	callRegex   = regexp.MustCompile(`([A-Za-z0-9_]+)\("([^"]+)"\)`)
)

// Reference is an asset token found under the cursor on a source line
type Reference struct {
	Token  string // Call argument without quotes
	Callee string // Identifier of the call, e.g. getAsset
	Start  int    // Byte offset of the opening quote
	End    int    // Byte offset just past the closing quote
}

// ExtractReference finds the string argument of a call like
// getAsset("assets/logo.png") under the cursor. character is a byte offset
// into line; a cursor sitting on either quote, or just past the closing
// one, counts as inside the string.
func ExtractReference(line string, character int) (Reference, bool) {
	if character < 0 || character > len(line) {
		return Reference{}, false
	}

	start, end, ok := quotedSpanAt(line, character)
	if !ok {
		return Reference{}, false
	}

	for _, m := range callRegex.FindAllStringSubmatchIndex(line, -1) {
		// m[4]:m[5] is the argument; the quotes sit one byte either side
		argStart, argEnd := m[4]-1, m[5]+1
		if argStart < end && start < argEnd {
			return Reference{
				Token:  line[m[4]:m[5]],
				Callee: line[m[2]:m[3]],
				Start:  argStart,
				End:    argEnd,
			}, true
		}
	}

	return Reference{}, false
}

func quotedSpanAt(line string, character int) (int, int, bool) {
	for _, loc := range quotedRegex.FindAllStringIndex(line, -1) {
		if loc[0] <= character && character <= loc[1] {
			return loc[0], loc[1], true
		}
		if loc[0] > character {
			break
		}
	}
	return 0, 0, false
}
