package domain

import (
	"testing"
)

const scenarioMapping = `
export const assetMap = {
	"assets/icons/logo.png": "rbxassetid://111",
	"assets/sfx/click.ogg": "rbxassetid://333",
};
`

func TestResolve(t *testing.T) {
	single := BuildIndex(ParseMapping(scenarioMapping))
	ambiguous := BuildIndex(ParseMapping(scenarioMapping + `"assets/other/logo.png": "rbxassetid://222"`))

	tests := []struct {
		name     string
		idx      *Index
		token    string
		wantPath string
		wantID   string
	}{
		{"exact path", single, "assets/icons/logo.png", "assets/icons/logo.png", "111"},
		{"unique filename", single, "logo.png", "assets/icons/logo.png", "111"},
		{"unique partial path", single, "icons/logo.png", "assets/icons/logo.png", "111"},
		{"wrong directory, unique filename", single, "elsewhere/logo.png", "assets/icons/logo.png", "111"},
		{"ambiguous filename", ambiguous, "logo.png", "", ""},
		{"exact path beats ambiguity", ambiguous, "assets/other/logo.png", "assets/other/logo.png", "222"},
		{"unknown", single, "assets/x.png", "", ""},
		{"empty token", single, "", "", ""},
		{"nil index", nil, "logo.png", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.idx.Resolve(tt.token)
			if tt.wantPath == "" {
				if got.Resolved {
					t.Errorf("expected unresolved, got %+v", got.Entry)
				}
				return
			}
			if !got.Resolved {
				t.Fatalf("expected %s to resolve", tt.token)
			}
			if got.Entry.Path != tt.wantPath || got.Entry.ID != tt.wantID {
				t.Errorf("expected %s=%s, got %s=%s", tt.wantPath, tt.wantID, got.Entry.Path, got.Entry.ID)
			}
		})
	}
}

func TestResolve_EveryInsertedPath(t *testing.T) {
	entries := ParseMapping(`
		"a/one.png": "rbxassetid://1",
		"b/one.png": "rbxassetid://2",
		"c/two.mp3": "rbxassetid://3",
		"a/one.png": "rbxassetid://4",
	`)
	idx := BuildIndex(entries)

	last := map[string]string{}
	for _, e := range entries {
		last[e.Path] = e.ID
	}

	for p, id := range last {
		got := idx.Resolve(p)
		if !got.Resolved || got.Entry.ID != id {
			t.Errorf("Resolve(%s) = %+v, want id %s", p, got, id)
		}
	}
}

func TestEntryHelpers(t *testing.T) {
	e := AssetEntry{Path: "assets/icons/logo.png", ID: "111"}
	if e.URI() != "rbxassetid://111" {
		t.Errorf("unexpected URI %s", e.URI())
	}
	if e.Filename() != "logo.png" {
		t.Errorf("unexpected filename %s", e.Filename())
	}
	if e.Kind() != MediaImage {
		t.Errorf("unexpected kind %s", e.Kind())
	}
	if Basename("dir/") != "" {
		t.Errorf("expected empty basename for trailing slash")
	}
}
