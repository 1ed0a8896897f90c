package assemble

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/layoutkit/model"
)

const (
	// insideSlack is the edge tolerance when testing a text table against a
	// line table.
	insideSlack = 0.5

	minLabelRunes = 2
	maxLabelRunes = 12

	labelOverlapRatio  = 0.4
	labelMaxDistance   = 120.0
	letterOverlapRatio = 0.2
	letterMaxDistance  = 150.0
)

// dedupeTextVsLine drops text tables that repeat a line table on the same
// page: inside its box, with identical headers and only rows it also has.
func dedupeTextVsLine(ts []*model.RawTable) []*model.RawTable {
	var lines []*model.RawTable
	for _, t := range ts {
		if t.Origin == model.OriginLine {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		return ts
	}

	out := make([]*model.RawTable, 0, len(ts))
	for _, t := range ts {
		if t.Origin == model.OriginText && duplicatesAny(t, lines) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func duplicatesAny(t *model.RawTable, lines []*model.RawTable) bool {
	for _, lt := range lines {
		if t.Page != lt.Page {
			continue
		}
		if t.BBox.Inside(lt.BBox, insideSlack) && sameHeaders(t.Headers, lt.Headers) && rowsSubset(t.Rows, lt.Rows) {
			return true
		}
	}
	return false
}

func sameHeaders(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func rowsSubset(small, big []model.Row) bool {
	seen := make(map[string]bool, len(big))
	for _, r := range big {
		seen[r.Fingerprint()] = true
	}
	for _, r := range small {
		if !seen[r.Fingerprint()] {
			return false
		}
	}
	return true
}

func isUpperLabel(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// dedupeLabels removes repeated short uppercase labels from text
// components, keeping the topmost of each group on a page, and then single
// uppercase letters that echo a kept label close by.
func dedupeLabels(texts []model.Component) []model.Component {
	if len(texts) == 0 {
		return texts
	}

	byPage := make(map[int][]int)
	var pages []int
	for i, c := range texts {
		if _, ok := byPage[c.Page]; !ok {
			pages = append(pages, c.Page)
		}
		byPage[c.Page] = append(byPage[c.Page], i)
	}

	drop := make(map[int]bool)
	for _, page := range pages {
		indices := byPage[page]

		var labels []int
		groups := make(map[string][]int)
		var order []string
		for _, i := range indices {
			label := strings.TrimSpace(texts[i].String())
			n := utf8.RuneCountInString(label)
			if n < minLabelRunes || n > maxLabelRunes || !isUpperLabel(label) {
				continue
			}
			labels = append(labels, i)
			if _, ok := groups[label]; !ok {
				order = append(order, label)
			}
			groups[label] = append(groups[label], i)
		}

		for _, label := range order {
			g := groups[label]
			if len(g) < 2 {
				continue
			}
			sort.SliceStable(g, func(a, b int) bool {
				return texts[g[a]].Top() > texts[g[b]].Top()
			})
			keep := texts[g[0]].BBox
			for _, cand := range g[1:] {
				box := texts[cand].BBox
				if keep.HorizontalOverlapRatio(box) >= labelOverlapRatio && math.Abs(keep.Y2-box.Y2) < labelMaxDistance {
					drop[cand] = true
				}
			}
		}

		for _, i := range indices {
			if drop[i] {
				continue
			}
			letter := strings.TrimSpace(texts[i].String())
			if utf8.RuneCountInString(letter) != 1 || !isUpperLabel(letter) {
				continue
			}
			box := texts[i].BBox
			for _, li := range labels {
				if drop[li] {
					continue
				}
				if !strings.Contains(strings.TrimSpace(texts[li].String()), letter) {
					continue
				}
				other := texts[li].BBox
				if box.HorizontalOverlapRatio(other) >= letterOverlapRatio && math.Abs(box.Y2-other.Y2) < letterMaxDistance {
					drop[i] = true
					break
				}
			}
		}
	}

	if len(drop) == 0 {
		return texts
	}
	out := make([]model.Component, 0, len(texts)-len(drop))
	for i, c := range texts {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out
}
