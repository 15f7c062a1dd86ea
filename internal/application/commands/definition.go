package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"rbxasset/internal/domain"
)

// Location is a jump target in a file
type Location struct {
	Path   string // Absolute path
	Line   int
	Column int
}

// DefinitionCommand resolves the reference under the cursor to the file it
// names literally. The index is not consulted; no filename fallback applies.
type DefinitionCommand struct {
	root      string
	Line      string
	Character int
}

// NewDefinitionCommand creates a new DefinitionCommand for a project root
func NewDefinitionCommand(root, line string, character int) *DefinitionCommand {
	return &DefinitionCommand{
		root:      root,
		Line:      line,
		Character: character,
	}
}

// Execute returns nil when there is no reference or the file does not
// exist. Character is a byte offset into Line and is clamped to the line.
func (c *DefinitionCommand) Execute(_ context.Context) (*Location, error) {
	ref, ok := domain.ExtractReference(c.Line, ClampOffset(c.Line, c.Character))
	if !ok {
		return nil, nil
	}

	assetPath := strings.Map(func(r rune) rune {
		switch r {
		case '\'', '"', '\\':
			return -1
		}
		return r
	}, ref.Token)
	if strings.TrimSpace(assetPath) == "" {
		return nil, nil
	}

	full := filepath.Join(c.root, filepath.FromSlash(assetPath))
	if _, err := os.Stat(full); err != nil {
		return nil, nil
	}

	return &Location{Path: full}, nil
}
