package commands

import (
	"context"
	"sort"
	"strings"

	"rbxasset/internal/application"
	"rbxasset/internal/domain"
	"rbxasset/internal/ports"
)

// MinQueryLength is the shortest query SearchCommand acts on
const MinQueryLength = 2

// SearchResult is an index entry with its relevance score
type SearchResult struct {
	domain.AssetEntry
	Score int
}

// SearchCommand ranks indexed assets against a free-text query
type SearchCommand struct {
	assets ports.AssetResolver
	Query  string
	Limit  int // 0 means no limit
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(assets ports.AssetResolver, query string, limit int) *SearchCommand {
	return &SearchCommand{
		assets: assets,
		Query:  query,
		Limit:  limit,
	}
}

// Execute returns matches sorted by score, best first
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < MinQueryLength {
		return nil, nil
	}
	if c.assets == nil {
		return nil, application.ErrNoCoordinator
	}

	idx, err := c.assets.Index(ctx)
	if err != nil {
		return nil, err
	}

	results := RankEntries(idx.Entries(), c.Query)
	if c.Limit > 0 && len(results) > c.Limit {
		results = results[:c.Limit]
	}
	return results, nil
}

// ScoreEntry rates how well an entry matches query; 0 means no match.
// Filename hits outrank directory hits, and any substring hit outranks a
// scattered subsequence.
func ScoreEntry(e domain.AssetEntry, query string) int {
	q := strings.ToLower(query)
	if q == "" {
		return 0
	}

	name := strings.ToLower(e.Filename())
	full := strings.ToLower(e.Path)

	switch {
	case name == q:
		return 200
	case e.ID == query:
		return 180
	case strings.HasPrefix(name, q):
		return 150
	case strings.Contains(name, q):
		return 120
	case strings.Contains(full, q):
		return 100
	}

	return subsequenceScore(full, q)
}

// subsequenceScore rewards query characters that appear in order, with
// bonuses for runs and for landing just after a separator
func subsequenceScore(target, q string) int {
	score, qi, prev := 0, 0, -2
	for i := 0; i < len(target) && qi < len(q); i++ {
		if target[i] != q[qi] {
			continue
		}
		score++
		if prev == i-1 {
			score += 5
		}
		if i == 0 || strings.IndexByte("/_-. ", target[i-1]) >= 0 {
			score += 5
		}
		prev = i
		qi++
	}
	if qi < len(q) {
		return 0
	}
	return min(score, 99)
}

// RankEntries scores and sorts entries, dropping non-matches. Ties keep
// path order so output is stable.
func RankEntries(entries []domain.AssetEntry, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(entries))
	for _, e := range entries {
		if s := ScoreEntry(e, query); s > 0 {
			scored = append(scored, SearchResult{AssetEntry: e, Score: s})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Path < scored[j].Path
	})
	return scored
}
