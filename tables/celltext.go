package tables

import (
	"sort"
	"strings"
	"unicode"

	"github.com/tsawler/layoutkit/model"
)

// cellSlack widens a grid cell when testing fragment origins.
const cellSlack = 0.5

// collectCellText joins the fragments whose origin lies inside box (plus
// slack) from left to right. Fragments closer than gapFactor times the
// average font size are glued without a space.
func collectCellText(frags []model.TextFragment, box model.BBox, gapFactor float64) string {
	var inside []model.TextFragment
	for _, f := range frags {
		if f.X >= box.X1-cellSlack && f.X <= box.X2+cellSlack &&
			f.Y >= box.Y1-cellSlack && f.Y <= box.Y2+cellSlack {
			inside = append(inside, f)
		}
	}
	if len(inside) == 0 {
		return ""
	}
	sort.SliceStable(inside, func(i, j int) bool { return inside[i].X < inside[j].X })

	var sb strings.Builder
	prev := inside[0]
	sb.WriteString(collapseSpaces(prev.Text))
	for _, f := range inside[1:] {
		raw := collapseSpaces(f.Text)
		gap := f.X - prev.Right()
		avg := (prev.FontSize + f.FontSize) / 2
		if avg == 0 {
			avg = defaultFontSize
		}
		noSpace := gap <= avg*gapFactor || gap < 0.1
		if noSpace {
			cur := strings.TrimRightFunc(sb.String(), unicode.IsSpace)
			sb.Reset()
			sb.WriteString(cur)
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteString(strings.TrimLeftFunc(raw, unicode.IsSpace))
		prev = f
	}
	return strings.TrimSpace(joinSingleCapitals(sb.String()))
}

// collapseSpaces replaces every whitespace run (line breaks included) with
// one space.
func collapseSpaces(s string) string {
	var sb strings.Builder
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				sb.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// joinSingleCapitals removes the spaces inside runs of standalone capital
// letters, turning "I B A N" into "IBAN". A letter only counts when it is
// not glued to other word characters.
func joinSingleCapitals(s string) string {
	rs := []rune(s)
	n := len(rs)
	standaloneEnd := func(i int) bool { return i+1 >= n || !isWordRune(rs[i+1]) }

	var out []rune
	i := 0
	for i < n {
		if !isASCIIUpper(rs[i]) || (i > 0 && isWordRune(rs[i-1])) {
			out = append(out, rs[i])
			i++
			continue
		}
		// letters holds the positions of the chained capitals
		letters := []int{i}
		j := i + 1
		for {
			k := j
			for k < n && unicode.IsSpace(rs[k]) {
				k++
			}
			if k == j || k >= n || !isASCIIUpper(rs[k]) {
				break
			}
			letters = append(letters, k)
			if !standaloneEnd(k) && !(k+1 < n && unicode.IsSpace(rs[k+1])) {
				break
			}
			j = k + 1
		}
		// the chain ends at the last letter not glued to a following word rune
		last := len(letters) - 1
		for last >= 0 && !standaloneEnd(letters[last]) {
			last--
		}
		if last < 1 {
			out = append(out, rs[i])
			i++
			continue
		}
		for _, p := range letters[:last+1] {
			out = append(out, rs[p])
		}
		i = letters[last] + 1
	}
	return string(out)
}
