package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"rbxasset/internal/application"
	"rbxasset/internal/domain"
	"rbxasset/internal/ports"
)

// OpenCommand is the editor command the "open file" link invokes
const OpenCommand = "vscode.open"

// Hover is the rendered tooltip for an asset reference
type Hover struct {
	Markdown     string
	Reference    domain.Reference
	Entry        domain.AssetEntry
	Kind         domain.MediaKind
	AbsPath      string
	FileURI      string
	PreviewToken string // Set for audio assets; argument of the preview command
}

// HoverCommand renders a hover for the reference under the cursor
type HoverCommand struct {
	assets         ports.AssetResolver
	previewCommand string
	Line           string
	Character      int
}

// NewHoverCommand creates a new HoverCommand
func NewHoverCommand(assets ports.AssetResolver, previewCommand, line string, character int) *HoverCommand {
	return &HoverCommand{
		assets:         assets,
		previewCommand: previewCommand,
		Line:           line,
		Character:      character,
	}
}

// Execute returns nil when there is no reference under the cursor or it
// does not resolve. Character is a byte offset into Line and is clamped
// to the line.
func (c *HoverCommand) Execute(ctx context.Context) (*Hover, error) {
	if c.assets == nil {
		return nil, application.ErrNoCoordinator
	}

	ref, ok := domain.ExtractReference(c.Line, ClampOffset(c.Line, c.Character))
	if !ok || strings.TrimSpace(ref.Token) == "" {
		return nil, nil
	}

	res, err := c.assets.Resolve(ctx, ref.Token)
	if err != nil || !res.Resolved {
		return nil, err
	}

	return RenderHover(c.assets.Root(), c.previewCommand, ref, res.Entry), nil
}

// RenderHover builds the tooltip markdown for a resolved entry
func RenderHover(root, previewCommand string, ref domain.Reference, entry domain.AssetEntry) *Hover {
	abs := filepath.Join(root, filepath.FromSlash(entry.Path))
	uri := FileURI(abs)

	h := &Hover{
		Reference: ref,
		Entry:     entry,
		Kind:      entry.Kind(),
		AbsPath:   abs,
		FileURI:   uri,
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", entry.URI())
	fmt.Fprintf(&sb, "[📂 Open `%s`](command:%s?%s)\n\n", entry.Path, OpenCommand, commandArg(uri))

	switch h.Kind {
	case domain.MediaImage:
		fmt.Fprintf(&sb, "![preview](%s)\n", filepath.ToSlash(abs))
	case domain.MediaAudio:
		h.PreviewToken = commandArg(uri)
		fmt.Fprintf(&sb, "[▶️ Preview Audio](command:%s?%s)", previewCommand, h.PreviewToken)
	}

	h.Markdown = sb.String()
	return h
}

// FileURI returns the file:// URI for an absolute path
func FileURI(abs string) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive paths
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// commandArg encodes a single string argument for a command: link
func commandArg(s string) string {
	data, _ := json.Marshal(s)
	return strings.ReplaceAll(url.QueryEscape(string(data)), "+", "%20")
}
