// Package search provides client-side matching over artworks and
// favorite IDs: highlighting query hits in result titles and filtering
// favorite object numbers.
package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/rijks/internal/domain"
)

// Result is an artwork that matched a query, with the matched rune
// positions in its title for highlighting.
type Result struct {
	Artwork        domain.Artwork
	Index          int   // Position in the source slice
	MatchedIndexes []int // Rune positions in Artwork.Title
	Score          int   // Higher is better
}

// TitleIndex implements sahilm/fuzzy.Source over artwork titles
type TitleIndex struct {
	items       []domain.Artwork
	lowerTitles []string
}

// NewTitleIndex pre-computes lowercase titles for items
func NewTitleIndex(items []domain.Artwork) *TitleIndex {
	lower := make([]string, len(items))
	for i, a := range items {
		lower[i] = strings.ToLower(a.Title)
	}
	return &TitleIndex{items: items, lowerTitles: lower}
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *TitleIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx *TitleIndex) Len() int { return len(idx.items) }

// Filter returns the artworks whose title fuzzy-matches query, best first.
// An empty query returns nil.
func (idx *TitleIndex) Filter(query string) []Result {
	query = strings.TrimSpace(query)
	if query == "" || idx.Len() == 0 {
		return nil
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), idx)
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Artwork:        idx.items[m.Index],
			Index:          m.Index,
			MatchedIndexes: runeIndexes(m.Str, m.MatchedIndexes),
			Score:          m.Score,
		}
	}
	return results
}

// Highlight returns the matched rune positions of query within title, or nil
// when the title does not match.
func Highlight(query, title string) []int {
	query = strings.TrimSpace(query)
	if query == "" || title == "" {
		return nil
	}
	lower := strings.ToLower(title)
	matches := fuzzy.Find(strings.ToLower(query), []string{lower})
	if len(matches) == 0 {
		return nil
	}
	return runeIndexes(lower, matches[0].MatchedIndexes)
}

// runeIndexes converts byte offsets in s to rune positions. ToLower maps
// rune for rune, so positions in the lowered title match the input title.
func runeIndexes(s string, offsets []int) []int {
	byteToRune := make(map[int]int, len(s))
	n := 0
	for i := range s {
		byteToRune[i] = n
		n++
	}
	out := make([]int, 0, len(offsets))
	for _, off := range offsets {
		if r, ok := byteToRune[off]; ok {
			out = append(out, r)
		}
	}
	return out
}

// MatchIDs returns the ids containing pattern as a case-insensitive fuzzy
// subsequence, closest first. An empty pattern returns ids unchanged.
func MatchIDs(pattern string, ids []string) []string {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return ids
	}

	ranks := lfuzzy.RankFindFold(pattern, ids)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].Target < ranks[j].Target
	})

	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}
