package tables

// Config holds the thresholds used by the detectors, the merger and the
// normalizers. Distances are in page units (points).
type Config struct {
	// YTolerance is the maximum vertical distance between a fragment and a
	// row for the fragment to join the row (default: 6.0)
	YTolerance float64

	// XTolerance is the maximum distance between an x position and a column
	// cluster center (default: 6.0)
	XTolerance float64

	// ColMergeTolerance is the center distance under which adjacent column
	// clusters are merged (default: 8.0)
	ColMergeTolerance float64

	// MaxMergeSpan caps the distance of merged column clusters (default: 50.0)
	MaxMergeSpan float64

	// LineXTolerance clusters vertical rulings into column boundaries (default: 1.5)
	LineXTolerance float64

	// LineYTolerance clusters horizontal rulings into row boundaries (default: 1.5)
	LineYTolerance float64

	// MinVerticalLength ignores shorter vertical segments (default: 10)
	MinVerticalLength float64

	// MinHorizontalLength ignores shorter horizontal segments (default: 10)
	MinHorizontalLength float64

	// MinCols is the minimum number of grid columns (default: 2)
	MinCols int

	// MinRows is the minimum number of grid rows (default: 2)
	MinRows int

	// MaxPageAreaRatio is the page share above which a sparsely filled grid
	// is treated as a decorative frame (default: 0.5)
	MaxPageAreaRatio float64

	// MinFilledCellsRatio is the filled-cell share below which a large grid
	// is treated as a decorative frame (default: 0.2)
	MinFilledCellsRatio float64

	// StripEmptyRows removes grid rows without any text (default: true)
	StripEmptyRows bool

	// CellCharGapFactor times the font size is the gap under which grid cell
	// fragments are joined without a space (default: 0.22)
	CellCharGapFactor float64

	// DisableTextTables drops every text-origin table (default: false)
	DisableTextTables bool

	// PreferLineTables lets line tables suppress conflicting text tables (default: true)
	PreferLineTables bool

	// ContainmentRatio is the share of a text table's area a line table must
	// cover for the containment rule (default: 0.9)
	ContainmentRatio float64

	// DropTextIfLineContains enables the containment rule (default: true)
	DropTextIfLineContains bool

	// DropTextIfLineMoreColumns enables the column-advantage rules (default: true)
	DropTextIfLineMoreColumns bool

	// ContainColumnsAdvantage is the column advantage required by the
	// containment rule (default: 0)
	ContainColumnsAdvantage int

	// MinColumnsAdvantage is the column advantage required by the coverage
	// rule (default: 1)
	MinColumnsAdvantage int

	// HorizontalCoverThreshold is the share of a text table's width a line
	// table must cover (default: 0.9)
	HorizontalCoverThreshold float64

	// VerticalOverlapThreshold is the share of a text table's height a line
	// table must overlap (default: 0.5)
	VerticalOverlapThreshold float64

	// IoUMin is the intersection over union that lets a wider line table win
	// (default: 0.3)
	IoUMin float64

	// DropNestedTextTables enables the nested rule (default: true)
	DropNestedTextTables bool

	// NestedAreaRatio is the containment required by the nested rule (default: 0.8)
	NestedAreaRatio float64

	// NestedRowOverlapRatio is the vertical overlap required by the nested
	// rule (default: 0.5)
	NestedRowOverlapRatio float64

	// TextTableNormalize enables the text table normalizer (default: true)
	TextTableNormalize bool

	// DisableCasting keeps every cell value as a string (default: false)
	DisableCasting bool
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		YTolerance:                6.0,
		XTolerance:                6.0,
		ColMergeTolerance:         8.0,
		MaxMergeSpan:              50.0,
		LineXTolerance:            1.5,
		LineYTolerance:            1.5,
		MinVerticalLength:         10,
		MinHorizontalLength:       10,
		MinCols:                   2,
		MinRows:                   2,
		MaxPageAreaRatio:          0.5,
		MinFilledCellsRatio:       0.2,
		StripEmptyRows:            true,
		CellCharGapFactor:         0.22,
		DisableTextTables:         false,
		PreferLineTables:          true,
		ContainmentRatio:          0.9,
		DropTextIfLineContains:    true,
		DropTextIfLineMoreColumns: true,
		ContainColumnsAdvantage:   0,
		MinColumnsAdvantage:       1,
		HorizontalCoverThreshold:  0.9,
		VerticalOverlapThreshold:  0.5,
		IoUMin:                    0.3,
		DropNestedTextTables:      true,
		NestedAreaRatio:           0.8,
		NestedRowOverlapRatio:     0.5,
		TextTableNormalize:        true,
		DisableCasting:            false,
	}
}
