package candidate

import (
	"sort"
	"strings"
	"unicode"

	"course_assembler/internal/domain"
)

var stopWords = map[string]struct{}{
	"and": {}, "the": {}, "for": {}, "with": {}, "from": {}, "into": {},
	"your": {}, "you": {}, "how": {}, "what": {}, "why": {}, "are": {},
	"introduction": {}, "intro": {}, "basics": {}, "part": {}, "lesson": {},
}

// Keywords extracts the lower-cased significant words of a title.
func Keywords(title string) []string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})

	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 3 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// RankByKeywordOverlap picks the pool members whose titles share keywords
// with the lesson title, best overlap first, ties broken by MetaScore.
func RankByKeywordOverlap(pool []*domain.VideoCandidate, lessonTitle string, limit int) []*domain.VideoCandidate {
	keywords := Keywords(lessonTitle)
	if len(keywords) == 0 || len(pool) == 0 {
		return nil
	}

	type ranked struct {
		c       *domain.VideoCandidate
		overlap int
	}
	matches := make([]ranked, 0, len(pool))
	for _, c := range pool {
		titleWords := make(map[string]struct{})
		for _, w := range Keywords(c.Title) {
			titleWords[w] = struct{}{}
		}
		overlap := 0
		for _, k := range keywords {
			if _, ok := titleWords[k]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			matches = append(matches, ranked{c: c, overlap: overlap})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].overlap != matches[j].overlap {
			return matches[i].overlap > matches[j].overlap
		}
		return matches[i].c.MetaScore > matches[j].c.MetaScore
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]*domain.VideoCandidate, len(matches))
	for i, m := range matches {
		out[i] = m.c
	}
	return out
}
