package domain

import (
	"testing"
)

func TestBuildIndex_LastWriteWins(t *testing.T) {
	idx := BuildIndex([]AssetEntry{
		{Path: "assets/a.png", ID: "1"},
		{Path: "assets/b.png", ID: "2"},
		{Path: "assets/a.png", ID: "3"},
	})

	if idx.Len() != 2 {
		t.Fatalf("expected 2 paths, got %d", idx.Len())
	}
	if id, _ := idx.Lookup("assets/a.png"); id != "3" {
		t.Errorf("expected last id 3, got %s", id)
	}
	if c := idx.Candidates("a.png"); len(c) != 1 {
		t.Errorf("expected duplicate path to be indexed once by filename, got %v", c)
	}
}

func TestBuildIndex_FilenameOrder(t *testing.T) {
	idx := BuildIndex([]AssetEntry{
		{Path: "ui/logo.png", ID: "1"},
		{Path: "menu/logo.png", ID: "2"},
		{Path: "ui/logo.png", ID: "3"},
	})

	got := idx.Candidates("logo.png")
	if len(got) != 2 || got[0] != "ui/logo.png" || got[1] != "menu/logo.png" {
		t.Errorf("expected insertion order [ui/logo.png menu/logo.png], got %v", got)
	}

	entries := idx.Entries()
	if entries[0].ID != "3" {
		t.Errorf("expected entries to carry final id, got %+v", entries[0])
	}
}

func TestBuildIndex_FilenameDerivableFromPaths(t *testing.T) {
	idx := BuildIndex(ParseMapping(`
		"a/x.png": "rbxassetid://1",
		"b/x.png": "rbxassetid://2",
		"c/y.ogg": "rbxassetid://3",
		"a/x.png": "rbxassetid://4",
	`))

	count := 0
	for name, paths := range idx.byFilename {
		for _, p := range paths {
			if _, ok := idx.byPath[p]; !ok {
				t.Errorf("filename %s lists %s which is not in byPath", name, p)
			}
			if Basename(p) != name {
				t.Errorf("path %s filed under %s", p, name)
			}
			count++
		}
	}
	if count != idx.Len() {
		t.Errorf("expected %d filename entries, got %d", idx.Len(), count)
	}
}

func TestSortedEntries(t *testing.T) {
	idx := BuildIndex([]AssetEntry{
		{Path: "z.png", ID: "1"},
		{Path: "a.png", ID: "2"},
	})

	got := idx.SortedEntries()
	if got[0].Path != "a.png" || got[1].Path != "z.png" {
		t.Errorf("expected sorted paths, got %v", got)
	}
}

func TestEmptyIndex(t *testing.T) {
	idx := EmptyIndex()
	if idx.Len() != 0 {
		t.Errorf("expected empty index, got %d entries", idx.Len())
	}
	if r := idx.Resolve("assets/x.png"); r.Resolved {
		t.Errorf("expected unresolved on empty index, got %+v", r)
	}
}
