package commands

// ClampOffset pins a cursor byte offset into [0, len(line)]. Clients that
// count UTF-16 units may overshoot on non-ASCII lines; a clamped cursor
// then simply finds no reference.
func ClampOffset(line string, character int) int {
	return max(0, min(character, len(line)))
}
