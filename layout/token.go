package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/layoutkit/model"
)

// Gap factors, each scaled by the average font size of the two tokens.
const (
	upperJoinFactor       = 1.4  // two short uppercase runs
	letterJoinFactor      = 0.65 // two letter runs
	letterChunkJoinFactor = 1.10 // two letter runs of at most three letters
	initialJoinFactor     = 1.20 // uppercase initial followed by lowercase
	prepositionGlueFactor = 0.90 // preposition followed by letters
	upperCombineFactor    = 1.55 // uppercase post-combine pass

	defaultFontSize = 12.0
)

// Single-letter prepositions that never glue to the next word unless the
// result is one of prepositionWords.
var singlePrepositions = map[string]bool{"з": true, "в": true, "у": true, "і": true}

var prepositionWords = map[string]bool{"за": true, "зі": true, "із": true, "на": true, "та": true}

// placeholderGlyphs are the Latin and Cyrillic X used to mask form fields.
var placeholderGlyphs = map[rune]bool{'X': true, 'Х': true}

// token is one fragment of a line under reconstruction.
type token struct {
	text string
	raw  string
	len  int

	letters     bool
	upper       bool
	placeholder bool
	preposition bool
	space       bool

	trailingSpace bool
	forceSpace    bool

	x1, x2 float64
	size   float64
}

func allRunes(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

func toLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// isPlaceholder reports masked field runs: XX, digit runs of two or more, or
// uppercase runs of three or more.
func isPlaceholder(s string) bool {
	n := utf8.RuneCountInString(s)
	switch {
	case n >= 2 && allRunes(s, func(r rune) bool { return placeholderGlyphs[r] }):
		return true
	case n >= 2 && allRunes(s, unicode.IsDigit):
		return true
	case n >= 3 && allRunes(s, unicode.IsUpper):
		return true
	}
	return false
}

func isPreposition(s string) bool {
	return utf8.RuneCountInString(s) == 1 && singlePrepositions[toLower(s)]
}

func avgSize(a, b float64) float64 {
	if s := (a + b) / 2; s != 0 {
		return s
	}
	return defaultFontSize
}

func tokenize(items []model.TextFragment) []token {
	tokens := make([]token, 0, len(items))
	for _, it := range items {
		raw := it.Text
		if raw == "" {
			continue
		}
		last, _ := utf8.DecodeLastRuneInString(raw)
		t := token{
			raw:           raw,
			trailingSpace: unicode.IsSpace(last),
			x1:            it.X,
			x2:            it.X + it.Width,
			size:          it.FontSize,
		}

		if allRunes(raw, unicode.IsSpace) {
			t.space = true
			t.forceSpace = true
			tokens = append(tokens, t)
			continue
		}

		t.text = strings.TrimSpace(raw)
		t.len = utf8.RuneCountInString(t.text)
		t.letters = allRunes(t.text, unicode.IsLetter)
		t.upper = t.letters && allRunes(t.text, unicode.IsUpper)
		t.placeholder = isPlaceholder(t.text)
		t.preposition = isPreposition(t.text)
		t.forceSpace = t.trailingSpace
		tokens = append(tokens, t)
	}
	return tokens
}

// reorderEmbeddedPrepositions swaps a placeholder and the preposition that
// follows it when the preposition starts inside the placeholder's span.
func reorderEmbeddedPrepositions(tokens []token) []token {
	for i := 0; i+1 < len(tokens); i++ {
		a, b := tokens[i], tokens[i+1]
		if a.placeholder && b.preposition && b.x1 > a.x1 && b.x1 < a.x2 {
			tokens[i], tokens[i+1] = b, a
		}
	}
	return tokens
}

// mergeTokens glues adjacent tokens left to right. A token that is not
// glued onto its predecessor starts a new token; forceSpace on the
// predecessor then records that a space separates them.
func mergeTokens(tokens []token, config Config) []token {
	out := make([]token, 0, len(tokens))
	for _, t := range tokens {
		if t.space {
			if len(out) > 0 {
				out[len(out)-1].forceSpace = true
			}
			continue
		}
		if len(out) == 0 {
			out = append(out, t)
			continue
		}

		prev := &out[len(out)-1]
		gap := t.x1 - prev.x2
		if gap < 0 {
			gap = 0
		}
		avg := avgSize(prev.size, t.size)

		var join, space, glued bool
		if prev.forceSpace && config.ForceSpaceIfPrevTrailing {
			space = true
		}

		if !space && prev.preposition && !prev.placeholder &&
			t.letters && !t.placeholder && !t.preposition && !prev.forceSpace {
			if prepositionWords[toLower(prev.text+t.text)] && gap <= prepositionGlueFactor*avg {
				join, glued = true, true
			}
		}

		if !space && !join && prev.upper && prev.len == 1 &&
			t.letters && !t.upper && !prev.forceSpace && gap <= initialJoinFactor*avg {
			join = true
		}

		if !space && !join && prev.upper && t.upper &&
			!prev.placeholder && !t.placeholder && !prev.forceSpace &&
			prev.len <= 4 && t.len <= 4 && gap <= upperJoinFactor*avg {
			join = true
		}

		if !space && !join && prev.letters && t.letters &&
			!prev.placeholder && !t.placeholder && !prev.forceSpace {
			if gap <= letterJoinFactor*avg {
				join = true
			} else if prev.len <= 3 && t.len <= 3 && gap <= letterChunkJoinFactor*avg {
				join = true
			}
		}

		if prev.preposition && !glued && !join {
			space = true
		}
		if prev.placeholder && t.preposition {
			space = true
		}

		if !join && !space {
			if gap <= avg*config.CharGapFactor {
				join = true
			} else {
				space = true
			}
		}

		if join {
			if config.JoinRemoveTrailingSpace && prev.trailingSpace {
				prev.raw = strings.TrimRightFunc(prev.raw, unicode.IsSpace)
			}
			prev.text += t.text
			prev.raw += t.raw
			if t.x2 > prev.x2 {
				prev.x2 = t.x2
			}
			prev.len = utf8.RuneCountInString(prev.text)
			prev.letters = prev.letters && t.letters
			prev.upper = prev.upper && t.upper
			prev.placeholder = false
			if t.trailingSpace {
				prev.forceSpace = true
			}
			continue
		}
		if space {
			prev.forceSpace = true
		}
		out = append(out, t)
	}
	return out
}

// combineUppercase glues remaining adjacent uppercase tokens within a wider
// gap. Long placeholders stay apart.
func combineUppercase(tokens []token) []token {
	if len(tokens) == 0 {
		return tokens
	}
	out := make([]token, 0, len(tokens))
	cur := tokens[0]
	for _, t := range tokens[1:] {
		gap := t.x1 - cur.x2
		if gap < 0 {
			gap = 0
		}
		notPlaceholder := !cur.placeholder && !t.placeholder
		if cur.placeholder && utf8.RuneCountInString(cur.text) < 3 {
			notPlaceholder = true
		}

		if cur.upper && t.upper && notPlaceholder && !cur.forceSpace &&
			gap <= upperCombineFactor*avgSize(cur.size, t.size) {
			cur.text += t.text
			cur.raw += t.raw
			if t.x2 > cur.x2 {
				cur.x2 = t.x2
			}
			cur.len = utf8.RuneCountInString(cur.text)
			if t.forceSpace {
				cur.forceSpace = true
			}
			continue
		}
		out = append(out, cur)
		cur = t
	}
	return append(out, cur)
}

// lineText joins tokens, inserting a space after forced tokens and between
// two letter runs.
func lineText(tokens []token, config Config) string {
	var b strings.Builder
	for i, t := range tokens {
		if t.len == 0 {
			continue
		}
		if i > 0 {
			prev := tokens[i-1]
			if prev.forceSpace || (prev.letters && t.letters) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.text)
	}
	s := b.String()
	if !config.PreserveMultipleSpaces {
		s = collapseSpaces(s)
	}
	if config.TrimLineEdges {
		s = strings.TrimSpace(s)
	}
	return s
}

// collapseSpaces replaces runs of two or more ASCII spaces with one.
func collapseSpaces(s string) string {
	if !strings.Contains(s, "  ") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' && prevSpace {
			continue
		}
		prevSpace = c == ' '
		b.WriteByte(c)
	}
	return b.String()
}
