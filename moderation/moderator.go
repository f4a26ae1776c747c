package moderation

import (
	"fmt"
	"log/slog"
	"sort"
	"unicode"

	"sentify/errors"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// wordBoundary replaces any run of whitespace in the normalized stream.
const wordBoundary = ' '

// DefaultKeywords is the bilingual negative vocabulary used when none is configured.
var DefaultKeywords = []string{
	"hate", "terrible", "awful", "horrible", "worst", "furious", "disgusting",
	"garbage", "trash", "useless", "hopeless", "miserable",
	"odio", "furioso", "pésimo", "basura", "asco", "inútil", "desastre",
}

// Moderator finds whole-word keyword occurrences, tolerant to case, leet speak and inner punctuation.
// A zero Moderator matches nothing.
type Moderator struct {
	matcher      *goahocorasick.Machine
	censoredChar rune
	log          *slog.Logger
}

type TextMapping struct {
	Normalized []rune
	OrigIdx    []int
}

// span is a match in original rune positions, end excluded.
type span struct {
	word       string
	start, end int
}

// NewModerator compiles the automaton from the normalized, deduplicated keywords.
// Empty keywords are ignored, an empty list yields a Moderator that never matches.
func NewModerator(keywords []string, censoredChar rune, log *slog.Logger) (Moderator, error) {
	patterns := lo.Uniq(lo.FilterMap(keywords, func(word string, _ int) (string, bool) {
		normalized := string(normalize(word, false).Normalized)
		return normalized, normalized != ""
	}))
	if len(patterns) == 0 {
		return Moderator{censoredChar: censoredChar, log: log}, nil
	}
	sort.Strings(patterns)

	m := new(goahocorasick.Machine)
	if err := m.Build(lo.Map(patterns, func(p string, _ int) []rune { return []rune(p) })); err != nil {
		return Moderator{}, fmt.Errorf("%w: %v", errors.ErrInvalidKeywords, err)
	}
	log.Debug("Safeguard automaton built", "patterns", len(patterns))
	return Moderator{matcher: m, censoredChar: censoredChar, log: log}, nil
}

// Matches returns every keyword found in text, in order of appearance.
func (m Moderator) Matches(text string) []string {
	return lo.Map(m.find(text), func(s span, _ int) string { return s.word })
}

func (m Moderator) Flagged(text string) bool {
	return len(m.find(text)) > 0
}

// Censor masks the original characters of every match while preserving whitespace.
func (m Moderator) Censor(original string) (string, []string) {
	spans := m.find(original)
	if len(spans) == 0 {
		return original, nil
	}

	origRunes := []rune(original)
	for _, s := range spans {
		for i := s.start; i < s.end; i++ {
			if !unicode.IsSpace(origRunes[i]) {
				origRunes[i] = m.censoredChar
			}
		}
	}
	return string(origRunes), lo.Map(spans, func(s span, _ int) string { return s.word })
}

// find scans text twice: once with punctuation read as a word boundary ("awful,terrible"),
// once with punctuation dropped ("B.4.d.g.€r"). Hits of both passes are merged by position.
func (m Moderator) find(text string) []span {
	if m.matcher == nil {
		return nil
	}
	seen := make(map[[2]int]struct{})
	var spans []span
	for _, splitOnPunct := range []bool{true, false} {
		mapping := normalize(text, splitOnPunct)
		for _, s := range m.search(mapping) {
			s.start, s.end = mapping.OrigIdx[s.start], mapping.OrigIdx[s.end-1]+1
			key := [2]int{s.start, s.end}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			spans = append(spans, s)
		}
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	return spans
}

// search returns the whole-word matches in normalized positions.
func (m Moderator) search(mapping TextMapping) []span {
	norm := mapping.Normalized
	if len(norm) == 0 {
		return nil
	}
	terms := m.matcher.MultiPatternSearch(norm, false)

	return lo.FilterMap(terms, func(term *goahocorasick.Term, _ int) (span, bool) {
		start, end := term.Pos, term.Pos+len(term.Word)
		if start < 0 || end > len(norm) {
			return span{}, false
		}
		// Only whole words: "hate" must not fire inside "whatever".
		leftOK := start == 0 || norm[start-1] == wordBoundary
		rightOK := end == len(norm) || norm[end] == wordBoundary
		return span{word: string(term.Word), start: start, end: end}, leftOK && rightOK
	})
}

// normalize transforms the input string into a searchable format and tracks original rune positions.
// With splitOnPunct, punctuation and symbols separate words, otherwise they are dropped.
func normalize(input string, splitOnPunct bool) TextMapping {
	origRunes := []rune(input)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		clean, keep := classify(r, splitOnPunct)
		if !keep {
			continue
		}
		if clean == wordBoundary && (len(norm) == 0 || norm[len(norm)-1] == wordBoundary) {
			continue
		}
		norm = append(norm, clean)
		origIdx = append(origIdx, i)
	}
	if n := len(norm); n > 0 && norm[n-1] == wordBoundary {
		norm, origIdx = norm[:n-1], origIdx[:n-1]
	}
	return TextMapping{Normalized: norm, OrigIdx: origIdx}
}

// classify lowers r, maps leet characters back to letters and turns whitespace into a boundary.
func classify(r rune, splitOnPunct bool) (rune, bool) {
	switch r {
	case '4', '@':
		return 'a', true
	case '3', '€':
		return 'e', true
	case '1':
		return 'i', true
	case '0':
		return 'o', true
	case '5', '$':
		return 's', true
	}
	switch {
	case unicode.IsSpace(r):
		return wordBoundary, true
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return wordBoundary, splitOnPunct
	default:
		return unicode.ToLower(r), true
	}
}
