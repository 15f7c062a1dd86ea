package domain

import (
	"path"
	"strings"
)

// AssetScheme is the prefix every asset id carries in a mapping document
const AssetScheme = "rbxassetid://"

// AssetEntry is one path → id pair declared in a mapping document
type AssetEntry struct {
	Path string // Project-relative, forward slashes, no leading slash
	ID   string // Numeric string, without the scheme prefix
}

// URI returns the id with its scheme, e.g. rbxassetid://111
func (e AssetEntry) URI() string {
	return AssetScheme + e.ID
}

// Filename returns the last path segment of the asset path
func (e AssetEntry) Filename() string {
	return Basename(e.Path)
}

// Kind classifies the asset by its extension
func (e AssetEntry) Kind() MediaKind {
	return ClassifyPath(e.Path)
}

// Basename returns the segment after the last slash. Unlike path.Base it
// never cleans the input, so "a/b/" yields "" and "logo.png" yields itself.
func Basename(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// MediaKind tells hover renderers which preview to offer
type MediaKind int

const (
	MediaOther MediaKind = iota
	MediaImage
	MediaAudio
)

func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaAudio:
		return "audio"
	default:
		return "other"
	}
}

var (
	imageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}
	audioExtensions = map[string]bool{".mp3": true, ".ogg": true, ".wav": true}
)

// ClassifyPath returns the media kind for a path, comparing the extension
// case-insensitively
func ClassifyPath(p string) MediaKind {
	ext := strings.ToLower(path.Ext(p))
	switch {
	case imageExtensions[ext]:
		return MediaImage
	case audioExtensions[ext]:
		return MediaAudio
	default:
		return MediaOther
	}
}
