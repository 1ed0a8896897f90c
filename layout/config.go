package layout

// Config holds the thresholds used to turn loose fragments into paragraphs.
type Config struct {
	// LineYToleranceFactor scales the larger of two font sizes to give the
	// vertical distance within which fragments share a line.
	// Default: 0.4
	LineYToleranceFactor float64

	// CharGapFactor scales the average font size of two tokens to give the
	// largest gap that is still glued without a space.
	// Default: 0.18
	CharGapFactor float64

	// WordGapFactor scales the average font size to give the gap of a normal
	// word space. Gaps above CharGapFactor always produce one space.
	// Default: 0.55
	WordGapFactor float64

	// ParagraphGapFactor scales the median line height. Consecutive lines
	// stay in one paragraph while their vertical gap is below it.
	// Default: 1.6
	ParagraphGapFactor float64

	// IndentTolerance is the largest left-edge difference between lines of
	// one paragraph.
	// Default: 12
	IndentTolerance float64

	// TrimLineEdges strips leading and trailing spaces of each line.
	// Default: true
	TrimLineEdges bool

	// PreserveMultipleSpaces keeps runs of spaces inside a line.
	// Default: false
	PreserveMultipleSpaces bool

	// ForceSpaceIfPrevTrailing always separates a token from one whose text
	// ended in whitespace.
	// Default: true
	ForceSpaceIfPrevTrailing bool

	// JoinRemoveTrailingSpace drops trailing whitespace from the raw text of
	// a token before gluing the next one onto it.
	// Default: true
	JoinRemoveTrailingSpace bool
}

// DefaultConfig returns the default assembler configuration.
func DefaultConfig() Config {
	return Config{
		LineYToleranceFactor:     0.4,
		CharGapFactor:            0.18,
		WordGapFactor:            0.55,
		ParagraphGapFactor:       1.6,
		IndentTolerance:          12,
		TrimLineEdges:            true,
		PreserveMultipleSpaces:   false,
		ForceSpaceIfPrevTrailing: true,
		JoinRemoveTrailingSpace:  true,
	}
}
